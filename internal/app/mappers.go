package app

import (
	"strings"

	"hotel_directory/internal/domain"
)

// Request payloads. Tags drive validation; see validate.go for custom tags.

type HotelInput struct {
	Name                 string   `json:"name" validate:"required,max=50"`
	Description          string   `json:"description" validate:"required,max=500"`
	Website              *string  `json:"website" validate:"omitempty,http_url"`
	Phone                *string  `json:"phone" validate:"omitempty,max=20"`
	Email                *string  `json:"email" validate:"omitempty,email"`
	Address              string   `json:"address" validate:"required"`
	FrontOfficeJobs      []string `json:"frontOfficeJobs" validate:"required,min=1,dive,frontoffice"`
	ManagementJobs       []string `json:"managementJobs" validate:"required,min=1,dive,management"`
	FoodAndBeverageRoles []string `json:"foodAndBeverageRoles" validate:"required,min=1,dive,foodbeverage"`
	BusinessFacilities   bool     `json:"businessFacilities"`
	Internet             bool     `json:"internet"`
	Activities           bool     `json:"activities"`
	PublicTransit        bool     `json:"publicTransit"`
	OutdoorPool          bool     `json:"outdoorPool"`
	PetFriendly          bool     `json:"petFriendly"`
	Garden               bool     `json:"garden"`
}

// HotelPatch is a partial update; nil or empty fields are left unchanged.
type HotelPatch struct {
	Name                 *string  `json:"name" validate:"omitempty,min=1,max=50"`
	Description          *string  `json:"description" validate:"omitempty,min=1,max=500"`
	Website              *string  `json:"website" validate:"omitempty,http_url"`
	Phone                *string  `json:"phone" validate:"omitempty,max=20"`
	Email                *string  `json:"email" validate:"omitempty,email"`
	Address              *string  `json:"address"`
	FrontOfficeJobs      []string `json:"frontOfficeJobs" validate:"omitempty,dive,frontoffice"`
	ManagementJobs       []string `json:"managementJobs" validate:"omitempty,dive,management"`
	FoodAndBeverageRoles []string `json:"foodAndBeverageRoles" validate:"omitempty,dive,foodbeverage"`
	BusinessFacilities   *bool    `json:"businessFacilities"`
	Internet             *bool    `json:"internet"`
	Activities           *bool    `json:"activities"`
	PublicTransit        *bool    `json:"publicTransit"`
	OutdoorPool          *bool    `json:"outdoorPool"`
	PetFriendly          *bool    `json:"petFriendly"`
	Garden               *bool    `json:"garden"`
}

type RoomInput struct {
	RoomType    string  `json:"roomtype" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Area        float64 `json:"area" validate:"required,gt=0"`
	DailyRent   float64 `json:"dailyrent" validate:"required,gt=0"`
	Star        string  `json:"star" validate:"required,roomstar"`
	AC          bool    `json:"ac"`
}

type RoomPatch struct {
	RoomType    *string  `json:"roomtype" validate:"omitempty,min=1"`
	Description *string  `json:"description" validate:"omitempty,min=1"`
	Area        *float64 `json:"area" validate:"omitempty,gt=0"`
	DailyRent   *float64 `json:"dailyrent" validate:"omitempty,gt=0"`
	Star        *string  `json:"star" validate:"omitempty,roomstar"`
	AC          *bool    `json:"ac"`
}

type ReviewInput struct {
	Title  string  `json:"title" validate:"required,max=100"`
	Text   string  `json:"text" validate:"required"`
	Rating float64 `json:"rating" validate:"required,min=1,max=10"`
}

type ReviewPatch struct {
	Title  *string  `json:"title" validate:"omitempty,min=1,max=100"`
	Text   *string  `json:"text" validate:"omitempty,min=1"`
	Rating *float64 `json:"rating" validate:"omitempty,min=1,max=10"`
}

type RegisterInput struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=user publisher"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type DetailsInput struct {
	Name  string `json:"name" validate:"required,max=100"`
	Email string `json:"email" validate:"required,email"`
}

type PasswordInput struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

// UserInput is the admin-side create/update payload; admins may assign any role.
type UserInput struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"omitempty,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=user publisher admin"`
}

/********** input -> domain **********/

func hotelFromInput(in HotelInput, userID int64) domain.Hotel {
	return domain.Hotel{
		Name:                 strings.TrimSpace(in.Name),
		Slug:                 slugify(in.Name),
		Description:          in.Description,
		Website:              in.Website,
		Phone:                in.Phone,
		Email:                in.Email,
		FrontOfficeJobs:      in.FrontOfficeJobs,
		ManagementJobs:       in.ManagementJobs,
		FoodAndBeverageRoles: in.FoodAndBeverageRoles,
		Photo:                domain.DefaultPhoto,
		BusinessFacilities:   in.BusinessFacilities,
		Internet:             in.Internet,
		Activities:           in.Activities,
		PublicTransit:        in.PublicTransit,
		OutdoorPool:          in.OutdoorPool,
		PetFriendly:          in.PetFriendly,
		Garden:               in.Garden,
		UserID:               userID,
	}
}

func applyHotelPatch(h *domain.Hotel, p HotelPatch) {
	if p.Name != nil {
		h.Name = strings.TrimSpace(*p.Name)
		h.Slug = slugify(*p.Name)
	}
	if p.Description != nil {
		h.Description = *p.Description
	}
	if p.Website != nil {
		h.Website = p.Website
	}
	if p.Phone != nil {
		h.Phone = p.Phone
	}
	if p.Email != nil {
		h.Email = p.Email
	}
	if len(p.FrontOfficeJobs) > 0 {
		h.FrontOfficeJobs = p.FrontOfficeJobs
	}
	if len(p.ManagementJobs) > 0 {
		h.ManagementJobs = p.ManagementJobs
	}
	if len(p.FoodAndBeverageRoles) > 0 {
		h.FoodAndBeverageRoles = p.FoodAndBeverageRoles
	}
	setBool(&h.BusinessFacilities, p.BusinessFacilities)
	setBool(&h.Internet, p.Internet)
	setBool(&h.Activities, p.Activities)
	setBool(&h.PublicTransit, p.PublicTransit)
	setBool(&h.OutdoorPool, p.OutdoorPool)
	setBool(&h.PetFriendly, p.PetFriendly)
	setBool(&h.Garden, p.Garden)
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func locationFromGeo(g domain.GeoResult) *domain.Location {
	return &domain.Location{
		Type:             "Point",
		Coordinates:      [2]float64{g.Longitude, g.Latitude},
		FormattedAddress: g.FormattedAddress,
		Street:           g.StreetName,
		City:             g.City,
		State:            g.StateCode,
		Zipcode:          g.Zipcode,
		Country:          g.CountryCode,
	}
}

func roomFromInput(in RoomInput, hotelID int64) domain.Room {
	return domain.Room{
		RoomType:    strings.TrimSpace(in.RoomType),
		Description: in.Description,
		Area:        in.Area,
		DailyRent:   in.DailyRent,
		Star:        in.Star,
		AC:          in.AC,
		HotelID:     hotelID,
	}
}

func applyRoomPatch(r *domain.Room, p RoomPatch) {
	if p.RoomType != nil {
		r.RoomType = strings.TrimSpace(*p.RoomType)
	}
	if p.Description != nil {
		r.Description = *p.Description
	}
	if p.Area != nil {
		r.Area = *p.Area
	}
	if p.DailyRent != nil {
		r.DailyRent = *p.DailyRent
	}
	if p.Star != nil {
		r.Star = *p.Star
	}
	setBool(&r.AC, p.AC)
}

func applyReviewPatch(r *domain.Review, p ReviewPatch) {
	if p.Title != nil {
		r.Title = strings.TrimSpace(*p.Title)
	}
	if p.Text != nil {
		r.Text = *p.Text
	}
	if p.Rating != nil {
		r.Rating = *p.Rating
	}
}
