package domain

import "time"

type Review struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	Rating    float64   `json:"rating"`
	CreatedAt time.Time `json:"createdAt"`
	HotelID   int64     `json:"hotel"`
	UserID    int64     `json:"user"`
}

// ReviewView is a review with its hotel expanded.
type ReviewView struct {
	ID        int64         `json:"id"`
	Title     string        `json:"title"`
	Text      string        `json:"text"`
	Rating    float64       `json:"rating"`
	CreatedAt time.Time     `json:"createdAt"`
	Hotel     *HotelSummary `json:"hotel"`
	UserID    int64         `json:"user"`
}
