package domain

import (
	"context"
	"io"
	"time"
)

type HotelRepository interface {
	CreateHotel(ctx context.Context, h *Hotel) error
	GetHotel(ctx context.Context, id int64) (Hotel, error)
	UpdateHotel(ctx context.Context, h Hotel) error
	// DeleteHotel removes the hotel together with its rooms and reviews.
	DeleteHotel(ctx context.Context, id int64) error
	CountHotelsByUser(ctx context.Context, userID int64) (int, error)
	HotelsWithinRadius(ctx context.Context, lon, lat, radiusMiles float64) ([]Hotel, error)
	SetHotelPhoto(ctx context.Context, id int64, photo string) error
}

// RoomRepository write paths recompute the owning hotel's average cost.
type RoomRepository interface {
	ListRoomsByHotel(ctx context.Context, hotelID int64) ([]Room, error)
	GetRoom(ctx context.Context, id int64) (Room, error)
	CreateRoom(ctx context.Context, r *Room) error
	UpdateRoom(ctx context.Context, r Room) error
	DeleteRoom(ctx context.Context, id int64) error
}

// ReviewRepository write paths recompute the owning hotel's average rating.
type ReviewRepository interface {
	ListReviewsByHotel(ctx context.Context, hotelID int64) ([]Review, error)
	GetReview(ctx context.Context, id int64) (Review, error)
	GetReviewView(ctx context.Context, id int64) (ReviewView, error)
	CreateReview(ctx context.Context, r *Review) error
	UpdateReview(ctx context.Context, r Review) error
	DeleteReview(ctx context.Context, id int64) error
}

type UserRepository interface {
	CreateUser(ctx context.Context, u *User) error
	GetUser(ctx context.Context, id int64) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	UpdateUser(ctx context.Context, u User) error
	UpdatePassword(ctx context.Context, id int64, hash string) error
	DeleteUser(ctx context.Context, id int64) error
}

type Geocoder interface {
	Geocode(ctx context.Context, address string) (GeoResult, error)
}

type GeoResult struct {
	Latitude         float64
	Longitude        float64
	FormattedAddress string
	StreetName       string
	City             string
	StateCode        string
	Zipcode          string
	CountryCode      string
}

type PhotoStore interface {
	Put(ctx context.Context, name string, r io.Reader, size int64, contentType string) error
}

// Cache is a best-effort JSON read cache; callers treat errors as misses.
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}
