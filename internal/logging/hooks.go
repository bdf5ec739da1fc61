package logging

import (
	"fmt"

	"github.com/microsoft/ApplicationInsights-Go/appinsights"
	"github.com/microsoft/ApplicationInsights-Go/appinsights/contracts"
	"github.com/sirupsen/logrus"
)

type FieldsHook struct {
	fields logrus.Fields
}

func NewFieldsHook(fields logrus.Fields) *FieldsHook {
	return &FieldsHook{fields: fields}
}

func (h *FieldsHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *FieldsHook) Fire(entry *logrus.Entry) error {
	for key, value := range h.fields {
		if _, ok := entry.Data[key]; !ok {
			entry.Data[key] = value
		}
	}

	return nil
}

type Tracker interface {
	Track(telemetry appinsights.Telemetry)
}

// TelemetryHook sends each record to Application Insights as a trace.
type TelemetryHook struct {
	tracker Tracker
}

func NewTelemetryHook(tracker Tracker) *TelemetryHook {
	return &TelemetryHook{tracker: tracker}
}

func (h *TelemetryHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *TelemetryHook) Fire(entry *logrus.Entry) error {
	trace := appinsights.NewTraceTelemetry(entry.Message, severity(entry.Level))
	trace.Timestamp = entry.Time

	for key, value := range entry.Data {
		if err, ok := value.(error); ok {
			trace.Properties[key] = err.Error()

			continue
		}

		trace.Properties[key] = fmt.Sprint(value)
	}

	h.tracker.Track(trace)

	return nil
}

func severity(level logrus.Level) contracts.SeverityLevel {
	switch level {
	case logrus.PanicLevel, logrus.FatalLevel:
		return contracts.Critical
	case logrus.ErrorLevel:
		return contracts.Error
	case logrus.WarnLevel:
		return contracts.Warning
	case logrus.InfoLevel:
		return contracts.Information
	default:
		return contracts.Verbose
	}
}
