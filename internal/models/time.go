package models

type WorldTime struct {
	Datetime  string `json:"datetime"`
	Timezone  string `json:"timezone"`
	UnixTime  int64  `json:"unixtime"`
	UTCOffset string `json:"utc_offset"`
}
