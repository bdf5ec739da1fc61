package timestub

import (
	"errors"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/AlexZav1327/word-of-the-day/internal/models"
	"github.com/sirupsen/logrus"
)

const datetimeLayout = "2006-01-02T15:04:05.000000-07:00"

var ErrUnknownZone = errors.New("unknown timezone")

var zones = map[string]string{
	"america/new_york":    "America/New_York",
	"america/los_angeles": "America/Los_Angeles",
	"europe/london":       "Europe/London",
	"europe/moscow":       "Europe/Moscow",
	"asia/ho_chi_minh":    "Asia/Ho_Chi_Minh",
	"asia/singapore":      "Asia/Singapore",
	"etc/utc":             "Etc/UTC",
}

type Clock struct {
	now func() time.Time
	log *logrus.Entry
}

func NewClock(now func() time.Time, log *logrus.Logger) *Clock {
	if now == nil {
		now = time.Now
	}

	return &Clock{
		now: now,
		log: log.WithField("module", "time_stub_service"),
	}
}

func (c *Clock) Current(area, location string) (models.WorldTime, error) {
	name, ok := zones[strings.ToLower(area+"/"+location)]
	if !ok {
		return models.WorldTime{}, ErrUnknownZone
	}

	zone, err := time.LoadLocation(name)
	if err != nil {
		c.log.Warningf("time.LoadLocation: %s", err)

		return models.WorldTime{}, ErrUnknownZone
	}

	now := c.now().In(zone)

	return models.WorldTime{
		Datetime:  now.Format(datetimeLayout),
		Timezone:  name,
		UnixTime:  now.Unix(),
		UTCOffset: now.Format("-07:00"),
	}, nil
}
