package domain

import "time"

// Job and role enums accepted on hotels.
var (
	FrontOfficeJobs = []string{
		"Hotel Porter",
		"Front Desk Employee",
		"Front Desk Manager",
		"Maintenance & Cleaning",
		"Hotel Concierge",
		"Housekeeping Employee",
		"Housekeeping Manager",
	}
	ManagementJobs = []string{
		"Hotel / General Manager",
		"Marketing Manager",
		"Sales Manager",
		"Revenue Manager",
		"Accounting Manager",
		"Purchase Manager",
		"Human Resource Manager",
		"IT Manager",
	}
	FoodAndBeverageRoles = []string{
		"Waiting Staff",
		"Restaurant Manager",
		"Kitchen Staff",
		"Kitchen Manager",
		"Head Chef",
		"Room Service",
	}
)

const DefaultPhoto = "no-photo.jpg"

type Hotel struct {
	ID                   int64     `json:"id"`
	Name                 string    `json:"name"`
	Slug                 string    `json:"slug"`
	Description          string    `json:"description"`
	Website              *string   `json:"website,omitempty"`
	Phone                *string   `json:"phone,omitempty"`
	Email                *string   `json:"email,omitempty"`
	Location             *Location `json:"location,omitempty"`
	FrontOfficeJobs      []string  `json:"frontOfficeJobs"`
	ManagementJobs       []string  `json:"managementJobs"`
	FoodAndBeverageRoles []string  `json:"foodAndBeverageRoles"`
	AverageRating        *float64  `json:"averageRating,omitempty"`
	AverageCost          *float64  `json:"averageCost,omitempty"`
	Photo                string    `json:"photo"`
	BusinessFacilities   bool      `json:"businessFacilities"`
	Internet             bool      `json:"internet"`
	Activities           bool      `json:"activities"`
	PublicTransit        bool      `json:"publicTransit"`
	OutdoorPool          bool      `json:"outdoorPool"`
	PetFriendly          bool      `json:"petFriendly"`
	Garden               bool      `json:"garden"`
	CreatedAt            time.Time `json:"createdAt"`
	UserID               int64     `json:"user"`
}

// Location is a GeoJSON point plus the geocoder's locality fields.
// Coordinates are [longitude, latitude].
type Location struct {
	Type             string     `json:"type"`
	Coordinates      [2]float64 `json:"coordinates"`
	FormattedAddress string     `json:"formattedAddress,omitempty"`
	Street           string     `json:"street,omitempty"`
	City             string     `json:"city,omitempty"`
	State            string     `json:"state,omitempty"`
	Zipcode          string     `json:"zipcode,omitempty"`
	Country          string     `json:"country,omitempty"`
}

func (l Location) Lon() float64 { return l.Coordinates[0] }
func (l Location) Lat() float64 { return l.Coordinates[1] }

// HotelSummary is the projection embedded into rooms and reviews.
type HotelSummary struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
