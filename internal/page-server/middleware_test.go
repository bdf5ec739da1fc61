package pageserver

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AlexZav1327/word-of-the-day/internal/keyvault"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestMetricMiddleware(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	t.Run("numeric code and route pattern labels", func(t *testing.T) {
		counter := serverMetrics.requests.WithLabelValues("200", http.MethodGet, "/")
		before := testutil.ToFloat64(counter)

		_, _ = serve(t, NewRouter(&fakeService{word: "w", time: "t"}, logger, false), httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, before+1, testutil.ToFloat64(counter))
	})

	t.Run("secret failure counts as failed page", func(t *testing.T) {
		failed := serverMetrics.failedPages.WithLabelValues("/")
		before := testutil.ToFloat64(failed)

		resp, _ := serve(t, NewRouter(&fakeService{err: keyvault.ErrGetSecret}, logger, false),
			httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		require.Equal(t, before+1, testutil.ToFloat64(failed))
	})

	t.Run("healthz is not recorded", func(t *testing.T) {
		counter := serverMetrics.requests.WithLabelValues("200", http.MethodGet, "/healthz")
		before := testutil.ToFloat64(counter)

		_, _ = serve(t, NewRouter(&fakeService{}, logger, false), httptest.NewRequest(http.MethodGet, "/healthz", nil))

		require.Equal(t, before, testutil.ToFloat64(counter))
	})
}
