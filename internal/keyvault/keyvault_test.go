package keyvault

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

var (
	errToken  = errors.New("token error")
	errSecret = errors.New("secret error")
)

type fakeAuthenticator struct {
	session Session
	err     error
	calls   int
}

func (a *fakeAuthenticator) Authenticate(_ context.Context) (Session, error) {
	a.calls++

	return a.session, a.err
}

type fakeSession struct {
	values map[string]string
	err    error
	asked  []string
}

func (s *fakeSession) Secret(_ context.Context, name string) (string, error) {
	s.asked = append(s.asked, name)
	if s.err != nil {
		return "", s.err
	}

	return s.values[name], nil
}

func newLogger() (*logrus.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	logger := logrus.New()
	logger.SetOutput(buf)

	return logger, buf
}

func TestFetcherGet(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		logger, buf := newLogger()
		session := &fakeSession{values: map[string]string{"secrett": "secret_value"}}
		auth := &fakeAuthenticator{session: session}

		value, err := New(auth, "secrett", logger).Get(context.Background())
		require.NoError(t, err)
		require.Equal(t, "secret_value", value)
		require.Equal(t, []string{"secrett"}, session.asked)
		require.NotContains(t, buf.String(), "secret_value")
	})

	t.Run("credential failure", func(t *testing.T) {
		logger, buf := newLogger()
		session := &fakeSession{}
		auth := &fakeAuthenticator{session: session, err: errToken}

		_, err := New(auth, "secrett", logger).Get(context.Background())
		require.ErrorIs(t, err, ErrAccessToken)
		require.Contains(t, err.Error(), "Failed to obtain access token")
		require.NotContains(t, err.Error(), errToken.Error())
		require.Empty(t, session.asked)
		require.Contains(t, buf.String(), errToken.Error())
	})

	t.Run("retrieval failure", func(t *testing.T) {
		logger, buf := newLogger()
		auth := &fakeAuthenticator{session: &fakeSession{err: errSecret}}

		_, err := New(auth, "secrett", logger).Get(context.Background())
		require.ErrorIs(t, err, ErrGetSecret)
		require.Contains(t, err.Error(), "Failed to get secret")
		require.Contains(t, buf.String(), errSecret.Error())
	})

	t.Run("every call authenticates again", func(t *testing.T) {
		logger, _ := newLogger()
		auth := &fakeAuthenticator{session: &fakeSession{values: map[string]string{"secrett": "v"}}}
		fetcher := New(auth, "secrett", logger)

		for i := 0; i < 3; i++ {
			_, err := fetcher.Get(context.Background())
			require.NoError(t, err)
		}

		require.Equal(t, 3, auth.calls)
	})
}

func TestVaultURL(t *testing.T) {
	require.Equal(t, "https://hvlinhkey.vault.azure.net/", VaultURL("hvlinhkey"))
	require.Equal(t, "https://hvlinhkey.vault.azure.net/", NewAzure("hvlinhkey", "id").vaultURL)
}
