package pageserver

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/AlexZav1327/word-of-the-day/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

const drainAddr = "127.0.0.1:5077"

type slowService struct {
	started chan struct{}
	release chan struct{}
}

func (s *slowService) Compose(_ context.Context, ip string) (models.Page, error) {
	close(s.started)
	<-s.release

	return models.Page{WordOfTheDay: "secret_value", Time: "t", IP: ip}, nil
}

func waitReady(t *testing.T, url string) {
	t.Helper()

	require.Eventually(t, func() bool {
		resp, err := http.Get(url) //nolint:noctx
		if err != nil {
			return false
		}

		_ = resp.Body.Close()

		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)
}

func TestRunDrainsInFlightRequests(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	service := &slowService{started: make(chan struct{}), release: make(chan struct{})}
	server := New(drainAddr, service, logger, false)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runErr := make(chan error, 1)

	go func() {
		runErr <- server.Run(ctx)
	}()

	waitReady(t, "http://"+drainAddr+"/healthz")

	type result struct {
		code int
		body string
		err  error
	}

	responses := make(chan result, 1)

	go func() {
		resp, err := http.Get("http://" + drainAddr + "/") //nolint:noctx
		if err != nil {
			responses <- result{err: err}

			return
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		responses <- result{code: resp.StatusCode, body: string(body), err: err}
	}()

	<-service.started
	cancel()

	select {
	case err := <-runErr:
		t.Fatalf("Run returned with a request in flight: %v", err)
	case <-time.After(200 * time.Millisecond):
	}

	close(service.release)

	res := <-responses
	require.NoError(t, res.err)
	require.Equal(t, http.StatusOK, res.code)
	require.Contains(t, res.body, "secret_value")

	select {
	case err := <-runErr:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after the drain")
	}
}
