package domain

import "time"

var RoomStars = []string{"3 star", "4 star", "5 star"}

type Room struct {
	ID          int64     `json:"id"`
	RoomType    string    `json:"roomtype"`
	Description string    `json:"description"`
	Area        float64   `json:"area"`
	DailyRent   float64   `json:"dailyrent"`
	Star        string    `json:"star"`
	AC          bool      `json:"ac"`
	CreatedAt   time.Time `json:"createdAt"`
	HotelID     int64     `json:"hotel"`
}
