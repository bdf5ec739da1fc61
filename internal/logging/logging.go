// Package logging configures the process-wide logrus logger.
//
// Setup runs once. It sets level and format, tags every record with the
// service name and a per-process instance id, and, when an Application
// Insights connection string is given, forwards records to it through a hook.
package logging

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/microsoft/ApplicationInsights-Go/appinsights"
	"github.com/sirupsen/logrus"
)

const flushTimeout = 10 * time.Second

type Options struct {
	Debug            bool
	JSON             bool
	Service          string
	ConnectionString string
	Output           io.Writer
}

var (
	once      sync.Once
	logger    *logrus.Logger
	telemetry appinsights.TelemetryClient
	setupErr  error
)

// Setup configures logrus.StandardLogger. Later calls return the first result
// and ignore their options.
func Setup(opts Options) (*logrus.Logger, error) {
	once.Do(func() {
		logger, telemetry, setupErr = configure(logrus.StandardLogger(), opts)
	})

	return logger, setupErr
}

// Flush waits for buffered telemetry to be sent. It is a no-op without a
// telemetry client.
func Flush() {
	if telemetry == nil {
		return
	}

	select {
	case <-telemetry.Channel().Close(flushTimeout):
	case <-time.After(flushTimeout):
		logger.Warning("telemetry flush timed out")
	}
}

func configure(log *logrus.Logger, opts Options) (*logrus.Logger, appinsights.TelemetryClient, error) {
	if opts.Output != nil {
		log.SetOutput(opts.Output)
	}

	log.SetLevel(logrus.InfoLevel)
	if opts.Debug {
		log.SetLevel(logrus.DebugLevel)
	}

	if opts.JSON {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	log.AddHook(NewFieldsHook(logrus.Fields{
		"service":  opts.Service,
		"instance": uuid.New().String(),
	}))

	if opts.ConnectionString == "" {
		return log, nil, nil
	}

	settings, err := ParseConnectionString(opts.ConnectionString)
	if err != nil {
		return log, nil, fmt.Errorf("ParseConnectionString: %w", err)
	}

	config := appinsights.NewTelemetryConfiguration(settings.InstrumentationKey)
	config.EndpointUrl = settings.TrackURL()

	client := appinsights.NewTelemetryClientFromConfig(config)
	client.Context().Tags.Cloud().SetRole(opts.Service)

	log.AddHook(NewTelemetryHook(client))

	return log, client, nil
}
