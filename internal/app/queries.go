package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"hotel_directory/internal/domain"
)

type HotelService struct {
	hotels    domain.HotelRepository
	geo       domain.Geocoder
	photos    domain.PhotoStore
	cache     domain.Cache
	cacheTTL  time.Duration
	maxUpload int64
}

type HotelDeps struct {
	Hotels    domain.HotelRepository
	Geocoder  domain.Geocoder
	Photos    domain.PhotoStore
	Cache     domain.Cache // optional
	CacheTTL  time.Duration
	MaxUpload int64
}

func NewHotelService(d HotelDeps) *HotelService {
	return &HotelService{
		hotels:    d.Hotels,
		geo:       d.Geocoder,
		photos:    d.Photos,
		cache:     d.Cache,
		cacheTTL:  d.CacheTTL,
		maxUpload: d.MaxUpload,
	}
}

func hotelKey(id int64) string { return fmt.Sprintf("hotel:%d", id) }

// GetHotel reads through the cache. Cache failures are logged and ignored.
func (s *HotelService) GetHotel(ctx context.Context, id int64) (domain.Hotel, error) {
	key := hotelKey(id)
	var h domain.Hotel
	if s.cache != nil {
		ok, err := s.cache.Get(ctx, key, &h)
		if err != nil {
			log.Warn().Err(err).Str("context", "hotel cache get").Int64("id", id).Send()
		} else if ok {
			return h, nil
		}
	}
	h, err := s.hotels.GetHotel(ctx, id)
	if err != nil {
		return domain.Hotel{}, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, h, s.cacheTTL); err != nil {
			log.Warn().Err(err).Str("context", "hotel cache set").Int64("id", id).Send()
		}
	}
	return h, nil
}

// HotelsInRadius returns hotels within distance miles of the zipcode's
// geocoded position.
func (s *HotelService) HotelsInRadius(ctx context.Context, zipcode string, distance float64) ([]domain.Hotel, error) {
	zipcode = strings.TrimSpace(zipcode)
	if zipcode == "" {
		return nil, fmt.Errorf("%w: zipcode is required", domain.ErrValidation)
	}
	if distance <= 0 {
		return nil, fmt.Errorf("%w: distance must be positive", domain.ErrValidation)
	}
	g, err := s.geo.Geocode(ctx, zipcode)
	if err != nil {
		return nil, fmt.Errorf("geocode zipcode %s: %w", zipcode, err)
	}
	return s.hotels.HotelsWithinRadius(ctx, g.Longitude, g.Latitude, distance)
}

func (s *HotelService) invalidate(ctx context.Context, id int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, hotelKey(id)); err != nil {
		log.Warn().Err(err).Str("context", "hotel cache del").Int64("id", id).Send()
	}
}
