package worldtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/AlexZav1327/word-of-the-day/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	DefaultURL     = "http://worldtimeapi.org/api/timezone/america/new_york"
	DefaultTimeout = 5 * time.Second

	// Unavailable is shown instead of the time whenever the public API fails.
	Unavailable = "Unavailable"
)

var (
	ErrUnexpectedStatus = errors.New("unexpected status code")
	ErrNoDatetime       = errors.New("datetime field is missing")
)

type Client struct {
	url        string
	httpClient *http.Client
	log        *logrus.Entry
	metrics    *metrics
}

func New(url string, timeout time.Duration, log *logrus.Logger) *Client {
	if url == "" {
		url = DefaultURL
	}

	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
		log:        log.WithField("module", "worldtime"),
		metrics:    clientMetrics,
	}
}

// Now never fails: every error is logged and resolved to Unavailable.
func (c *Client) Now(ctx context.Context) string {
	started := time.Now()
	defer func() {
		c.metrics.duration.Observe(time.Since(started).Seconds())
	}()

	datetime, err := c.query(ctx)
	if errors.Is(err, ErrUnexpectedStatus) {
		c.metrics.requests.WithLabelValues(resultBadStatus).Inc()
		c.log.Errorf("Error querying API: %s", err)

		return Unavailable
	}

	if err != nil {
		c.metrics.requests.WithLabelValues(resultError).Inc()
		c.log.WithError(err).Error("Failed to contact public api")

		return Unavailable
	}

	c.metrics.requests.WithLabelValues(resultOK).Inc()
	c.log.Info("Successfully queried public API")

	return datetime
}

func (c *Client) query(ctx context.Context) (string, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return "", fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	request.Header.Set("Accept", "application/json")

	response, err := c.httpClient.Do(request)
	if err != nil {
		return "", fmt.Errorf("httpClient.Do: %w", err)
	}

	defer func() {
		err = response.Body.Close()
		if err != nil {
			c.log.Warningf("response.Body.Close: %s", err)
		}
	}()

	if response.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %d", ErrUnexpectedStatus, response.StatusCode)
	}

	var worldTime models.WorldTime

	err = json.NewDecoder(response.Body).Decode(&worldTime)
	if err != nil {
		return "", fmt.Errorf("json.NewDecoder.Decode: %w", err)
	}

	if worldTime.Datetime == "" {
		return "", ErrNoDatetime
	}

	return worldTime.Datetime, nil
}
