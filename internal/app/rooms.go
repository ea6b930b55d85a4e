package app

import (
	"context"

	"hotel_directory/internal/domain"
)

// RoomService manages rooms; only the owning hotel's publisher or an admin
// may change them.
type RoomService struct {
	rooms  domain.RoomRepository
	hotels *HotelService
}

func NewRoomService(rooms domain.RoomRepository, hotels *HotelService) *RoomService {
	return &RoomService{rooms: rooms, hotels: hotels}
}

func (s *RoomService) ListByHotel(ctx context.Context, hotelID int64) ([]domain.Room, error) {
	if _, err := s.hotels.hotels.GetHotel(ctx, hotelID); err != nil {
		return nil, err
	}
	return s.rooms.ListRoomsByHotel(ctx, hotelID)
}

func (s *RoomService) Get(ctx context.Context, id int64) (domain.Room, error) {
	return s.rooms.GetRoom(ctx, id)
}

func (s *RoomService) Add(ctx context.Context, actor domain.User, hotelID int64, in RoomInput) (domain.Room, error) {
	if err := check(in); err != nil {
		return domain.Room{}, err
	}
	h, err := s.hotels.hotels.GetHotel(ctx, hotelID)
	if err != nil {
		return domain.Room{}, err
	}
	if !canModify(actor, h.UserID) {
		return domain.Room{}, notOwner(actor, "hotel", hotelID)
	}
	r := roomFromInput(in, hotelID)
	if err := s.rooms.CreateRoom(ctx, &r); err != nil {
		return domain.Room{}, err
	}
	s.hotels.invalidate(ctx, hotelID)
	return r, nil
}

func (s *RoomService) Update(ctx context.Context, actor domain.User, id int64, p RoomPatch) (domain.Room, error) {
	if err := check(p); err != nil {
		return domain.Room{}, err
	}
	r, err := s.authorize(ctx, actor, id)
	if err != nil {
		return domain.Room{}, err
	}
	applyRoomPatch(&r, p)
	if err := s.rooms.UpdateRoom(ctx, r); err != nil {
		return domain.Room{}, err
	}
	s.hotels.invalidate(ctx, r.HotelID)
	return r, nil
}

func (s *RoomService) Delete(ctx context.Context, actor domain.User, id int64) error {
	r, err := s.authorize(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := s.rooms.DeleteRoom(ctx, id); err != nil {
		return err
	}
	s.hotels.invalidate(ctx, r.HotelID)
	return nil
}

func (s *RoomService) authorize(ctx context.Context, actor domain.User, id int64) (domain.Room, error) {
	r, err := s.rooms.GetRoom(ctx, id)
	if err != nil {
		return domain.Room{}, err
	}
	h, err := s.hotels.hotels.GetHotel(ctx, r.HotelID)
	if err != nil {
		return domain.Room{}, err
	}
	if !canModify(actor, h.UserID) {
		return domain.Room{}, notOwner(actor, "room", id)
	}
	return r, nil
}
