package models

type Page struct {
	WordOfTheDay string
	Time         string
	IP           string
}
