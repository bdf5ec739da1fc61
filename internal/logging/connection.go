package logging

import (
	"errors"
	"strings"
)

const defaultIngestionEndpoint = "https://dc.services.visualstudio.com/"

var ErrNoInstrumentationKey = errors.New("connection string has no InstrumentationKey")

type ConnectionSettings struct {
	InstrumentationKey string
	IngestionEndpoint  string
}

// ParseConnectionString reads "Key=Value;Key=Value" Application Insights
// connection strings. Keys are case-insensitive and unknown keys are ignored.
func ParseConnectionString(raw string) (ConnectionSettings, error) {
	settings := ConnectionSettings{IngestionEndpoint: defaultIngestionEndpoint}

	for _, part := range strings.Split(raw, ";") {
		key, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}

		switch strings.ToLower(strings.TrimSpace(key)) {
		case "instrumentationkey":
			settings.InstrumentationKey = strings.TrimSpace(value)
		case "ingestionendpoint":
			settings.IngestionEndpoint = strings.TrimSpace(value)
		}
	}

	if settings.InstrumentationKey == "" {
		return ConnectionSettings{}, ErrNoInstrumentationKey
	}

	return settings, nil
}

func (c ConnectionSettings) TrackURL() string {
	return strings.TrimSuffix(c.IngestionEndpoint, "/") + "/v2/track"
}
