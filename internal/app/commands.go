package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"hotel_directory/internal/domain"
)

// canModify reports whether actor may change a record owned by ownerID.
func canModify(actor domain.User, ownerID int64) bool {
	return actor.IsAdmin() || actor.ID == ownerID
}

func notOwner(actor domain.User, what string, id int64) error {
	return fmt.Errorf("%w: user %d is not authorized to modify %s %d", domain.ErrForbidden, actor.ID, what, id)
}

// CreateHotel validates in, geocodes its address and stores the hotel owned
// by actor. Publishers may own a single hotel; admins are unrestricted.
func (s *HotelService) CreateHotel(ctx context.Context, actor domain.User, in HotelInput) (domain.Hotel, error) {
	if err := check(in); err != nil {
		return domain.Hotel{}, err
	}
	if !actor.IsAdmin() {
		n, err := s.hotels.CountHotelsByUser(ctx, actor.ID)
		if err != nil {
			return domain.Hotel{}, err
		}
		if n > 0 {
			return domain.Hotel{}, fmt.Errorf("%w: user %d has already published a hotel", domain.ErrValidation, actor.ID)
		}
	}

	h := hotelFromInput(in, actor.ID)
	loc, err := s.locate(ctx, in.Address)
	if err != nil {
		return domain.Hotel{}, err
	}
	h.Location = loc
	if err := s.hotels.CreateHotel(ctx, &h); err != nil {
		return domain.Hotel{}, err
	}
	return h, nil
}

func (s *HotelService) UpdateHotel(ctx context.Context, actor domain.User, id int64, p HotelPatch) (domain.Hotel, error) {
	if err := check(p); err != nil {
		return domain.Hotel{}, err
	}
	h, err := s.hotels.GetHotel(ctx, id)
	if err != nil {
		return domain.Hotel{}, err
	}
	if !canModify(actor, h.UserID) {
		return domain.Hotel{}, notOwner(actor, "hotel", id)
	}
	applyHotelPatch(&h, p)
	if p.Address != nil && strings.TrimSpace(*p.Address) != "" {
		loc, err := s.locate(ctx, *p.Address)
		if err != nil {
			return domain.Hotel{}, err
		}
		if loc != nil {
			h.Location = loc
		}
	}
	if err := s.hotels.UpdateHotel(ctx, h); err != nil {
		return domain.Hotel{}, err
	}
	s.invalidate(ctx, id)
	return h, nil
}

// DeleteHotel removes the hotel; its rooms and reviews go with it.
func (s *HotelService) DeleteHotel(ctx context.Context, actor domain.User, id int64) error {
	h, err := s.hotels.GetHotel(ctx, id)
	if err != nil {
		return err
	}
	if !canModify(actor, h.UserID) {
		return notOwner(actor, "hotel", id)
	}
	if err := s.hotels.DeleteHotel(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

// Upload describes an incoming photo file.
type Upload struct {
	Body        io.Reader
	Size        int64
	ContentType string
	Filename    string
}

// UploadPhoto stores the file as photo_<id>_<uuid><ext> and records the name
// on the hotel.
func (s *HotelService) UploadPhoto(ctx context.Context, actor domain.User, id int64, up Upload) (string, error) {
	h, err := s.hotels.GetHotel(ctx, id)
	if err != nil {
		return "", err
	}
	if !canModify(actor, h.UserID) {
		return "", notOwner(actor, "hotel", id)
	}
	if !strings.HasPrefix(up.ContentType, "image") {
		return "", domain.ErrUnsupportedMedia
	}
	if s.maxUpload > 0 && up.Size > s.maxUpload {
		return "", fmt.Errorf("%w: please upload an image less than %d bytes", domain.ErrPayloadTooLarge, s.maxUpload)
	}

	name := fmt.Sprintf("photo_%d_%s%s", id, uuid.NewString(), strings.ToLower(filepath.Ext(up.Filename)))
	if err := s.photos.Put(ctx, name, up.Body, up.Size, up.ContentType); err != nil {
		return "", err
	}
	if err := s.hotels.SetHotelPhoto(ctx, id, name); err != nil {
		return "", err
	}
	s.invalidate(ctx, id)
	return name, nil
}

// locate geocodes address. An unknown address is a validation error; a
// geocoder outage leaves the hotel without a location.
func (s *HotelService) locate(ctx context.Context, address string) (*domain.Location, error) {
	g, err := s.geo.Geocode(ctx, address)
	switch {
	case err == nil:
		return locationFromGeo(g), nil
	case errors.Is(err, domain.ErrNotFound):
		return nil, fmt.Errorf("%w: address %q could not be located", domain.ErrValidation, address)
	case ctx.Err() != nil:
		return nil, ctx.Err()
	default:
		log.Warn().Err(err).Str("context", "geocode").Str("address", address).Msg("saving without location")
		return nil, nil
	}
}
