package worldtime

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	timestub "github.com/AlexZav1327/word-of-the-day/internal/time-stub"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestNow(t *testing.T) {
	logger := logrus.New()

	t.Run("status 200 returns datetime", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"datetime": "2023-01-01T00:00:00Z"}`))
		}))
		defer srv.Close()

		require.Equal(t, "2023-01-01T00:00:00Z", New(srv.URL, time.Second, logger).Now(context.Background()))
	})

	t.Run("non-200 statuses return Unavailable", func(t *testing.T) {
		for _, code := range []int{
			http.StatusNoContent, http.StatusMovedPermanently, http.StatusNotFound,
			http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusServiceUnavailable,
		} {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(code)
				_, _ = w.Write([]byte(`{"datetime": "2023-01-01T00:00:00Z"}`))
			}))

			require.Equal(t, Unavailable, New(srv.URL, time.Second, logger).Now(context.Background()), code)

			srv.Close()
		}
	})

	t.Run("transport error returns Unavailable", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		require.Equal(t, Unavailable, New(url, time.Second, logger).Now(context.Background()))
	})

	t.Run("timeout returns Unavailable", func(t *testing.T) {
		release := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
			<-release
		}))
		defer srv.Close()
		defer close(release)

		require.Equal(t, Unavailable, New(srv.URL, 50*time.Millisecond, logger).Now(context.Background()))
	})

	t.Run("malformed body returns Unavailable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		}))
		defer srv.Close()

		require.Equal(t, Unavailable, New(srv.URL, time.Second, logger).Now(context.Background()))
	})

	t.Run("missing datetime returns Unavailable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"timezone": "America/New_York"}`))
		}))
		defer srv.Close()

		require.Equal(t, Unavailable, New(srv.URL, time.Second, logger).Now(context.Background()))
	})

	t.Run("time stub", func(t *testing.T) {
		fixed := time.Date(2023, time.January, 1, 5, 0, 0, 0, time.UTC)
		clock := timestub.NewClock(func() time.Time { return fixed }, logger)
		srv := httptest.NewServer(timestub.NewRouter(clock, logger))
		defer srv.Close()

		now := New(srv.URL+"/api/timezone/america/new_york", time.Second, logger).Now(context.Background())
		require.Equal(t, "2023-01-01T00:00:00.000000-05:00", now)
	})
}

func TestNewDefaults(t *testing.T) {
	c := New("", 0, logrus.New())

	require.Equal(t, DefaultURL, c.url)
	require.Equal(t, DefaultTimeout, c.httpClient.Timeout)
}
