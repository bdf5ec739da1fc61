package pageservice

import (
	"context"
	"fmt"

	"github.com/AlexZav1327/word-of-the-day/internal/models"
	"github.com/sirupsen/logrus"
)

type Service struct {
	secrets SecretSource
	clock   TimeSource
	log     *logrus.Entry
}

type SecretSource interface {
	Get(ctx context.Context) (string, error)
}

type TimeSource interface {
	Now(ctx context.Context) string
}

func New(secrets SecretSource, clock TimeSource, log *logrus.Logger) *Service {
	return &Service{
		secrets: secrets,
		clock:   clock,
		log:     log.WithField("module", "service"),
	}
}

// Compose fetches the secret before the time. A secret failure aborts the page,
// the time is best effort.
func (s *Service) Compose(ctx context.Context, ip string) (models.Page, error) {
	word, err := s.secrets.Get(ctx)
	if err != nil {
		s.log.WithError(err).Warning("secret unavailable, page is not rendered")

		return models.Page{}, fmt.Errorf("secrets.Get: %w", err)
	}

	return models.Page{
		WordOfTheDay: word,
		Time:         s.clock.Now(ctx),
		IP:           ip,
	}, nil
}
