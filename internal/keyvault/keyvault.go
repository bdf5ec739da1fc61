// Package keyvault reads one named secret from a remote secret store.
//
// A lookup always goes through two steps: an Authenticator acquires a
// credential and returns a Session, then the Session fetches the secret.
// Failures in either step are logged with their cause and reported to the
// caller as ErrAccessToken or ErrGetSecret. Values are never cached or logged.
package keyvault

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	stageCredential = "credential"
	stageSecret     = "secret"
)

//nolint:stylecheck
var (
	ErrAccessToken = errors.New("Failed to obtain access token")
	ErrGetSecret   = errors.New("Failed to get secret")
)

type Authenticator interface {
	Authenticate(ctx context.Context) (Session, error)
}

type Session interface {
	Secret(ctx context.Context, name string) (string, error)
}

type Fetcher struct {
	auth    Authenticator
	name    string
	log     *logrus.Entry
	metrics *metrics
}

func New(auth Authenticator, secretName string, log *logrus.Logger) *Fetcher {
	return &Fetcher{
		auth:    auth,
		name:    secretName,
		log:     log.WithField("module", "keyvault"),
		metrics: fetcherMetrics,
	}
}

func (f *Fetcher) Get(ctx context.Context) (string, error) {
	started := time.Now()

	session, err := f.auth.Authenticate(ctx)
	f.metrics.duration.WithLabelValues(stageCredential).Observe(time.Since(started).Seconds())

	if err != nil {
		f.metrics.failures.WithLabelValues(stageCredential).Inc()
		f.log.WithError(err).Error(ErrAccessToken.Error())

		return "", ErrAccessToken
	}

	started = time.Now()

	value, err := session.Secret(ctx, f.name)
	f.metrics.duration.WithLabelValues(stageSecret).Observe(time.Since(started).Seconds())

	if err != nil {
		f.metrics.failures.WithLabelValues(stageSecret).Inc()
		f.log.WithError(err).WithField("secret", f.name).Error(ErrGetSecret.Error())

		return "", ErrGetSecret
	}

	return value, nil
}
