package app_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"hotel_directory/internal/domain"
)

// ---- repositories ----

type fakeHotels struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]domain.Hotel
	gets   int
}

func newFakeHotels() *fakeHotels { return &fakeHotels{byID: map[int64]domain.Hotel{}} }

func (f *fakeHotels) CreateHotel(ctx context.Context, h *domain.Hotel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.byID {
		if o.Name == h.Name {
			return domain.ErrDuplicate
		}
	}
	f.nextID++
	h.ID = f.nextID
	f.byID[h.ID] = *h
	return nil
}

func (f *fakeHotels) GetHotel(ctx context.Context, id int64) (domain.Hotel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	h, ok := f.byID[id]
	if !ok {
		return domain.Hotel{}, domain.ErrNotFound
	}
	return h, nil
}

func (f *fakeHotels) UpdateHotel(ctx context.Context, h domain.Hotel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[h.ID] = h
	return nil
}

func (f *fakeHotels) DeleteHotel(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeHotels) CountHotelsByUser(ctx context.Context, userID int64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, h := range f.byID {
		if h.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (f *fakeHotels) HotelsWithinRadius(ctx context.Context, lon, lat, radius float64) ([]domain.Hotel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.Hotel{}
	for _, h := range f.byID {
		if h.Location != nil && h.Location.Lon() == lon && h.Location.Lat() == lat {
			out = append(out, h)
		}
	}
	return out, nil
}

func (f *fakeHotels) SetHotelPhoto(ctx context.Context, id int64, photo string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	h := f.byID[id]
	h.Photo = photo
	f.byID[id] = h
	return nil
}

type fakeRooms struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]domain.Room
}

func newFakeRooms() *fakeRooms { return &fakeRooms{byID: map[int64]domain.Room{}} }

func (f *fakeRooms) ListRoomsByHotel(ctx context.Context, hotelID int64) ([]domain.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.Room{}
	for _, r := range f.byID {
		if r.HotelID == hotelID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRooms) GetRoom(ctx context.Context, id int64) (domain.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.byID[id]
	if !ok {
		return domain.Room{}, domain.ErrNotFound
	}
	return r, nil
}

func (f *fakeRooms) CreateRoom(ctx context.Context, r *domain.Room) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	r.ID = f.nextID
	f.byID[r.ID] = *r
	return nil
}

func (f *fakeRooms) UpdateRoom(ctx context.Context, r domain.Room) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[r.ID] = r
	return nil
}

func (f *fakeRooms) DeleteRoom(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.byID, id)
	return nil
}

type fakeReviews struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]domain.Review
}

func newFakeReviews() *fakeReviews { return &fakeReviews{byID: map[int64]domain.Review{}} }

func (f *fakeReviews) ListReviewsByHotel(ctx context.Context, hotelID int64) ([]domain.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.Review{}
	for _, r := range f.byID {
		if r.HotelID == hotelID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReviews) GetReview(ctx context.Context, id int64) (domain.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.byID[id]
	if !ok {
		return domain.Review{}, domain.ErrNotFound
	}
	return r, nil
}

func (f *fakeReviews) GetReviewView(ctx context.Context, id int64) (domain.ReviewView, error) {
	r, err := f.GetReview(ctx, id)
	if err != nil {
		return domain.ReviewView{}, err
	}
	return domain.ReviewView{ID: r.ID, Title: r.Title, Text: r.Text, Rating: r.Rating, UserID: r.UserID,
		Hotel: &domain.HotelSummary{ID: r.HotelID}}, nil
}

func (f *fakeReviews) CreateReview(ctx context.Context, r *domain.Review) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.byID {
		if o.HotelID == r.HotelID && o.UserID == r.UserID {
			return fmt.Errorf("%w: hotel/user", domain.ErrDuplicate)
		}
	}
	f.nextID++
	r.ID = f.nextID
	f.byID[r.ID] = *r
	return nil
}

func (f *fakeReviews) UpdateReview(ctx context.Context, r domain.Review) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[r.ID] = r
	return nil
}

func (f *fakeReviews) DeleteReview(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.byID, id)
	return nil
}

type fakeUsers struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]domain.User
	purged bool
}

func newFakeUsers() *fakeUsers { return &fakeUsers{byID: map[int64]domain.User{}} }

func (f *fakeUsers) CreateUser(ctx context.Context, u *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.byID {
		if o.Email == u.Email {
			return domain.ErrDuplicate
		}
	}
	f.nextID++
	u.ID = f.nextID
	f.byID[u.ID] = *u
	return nil
}

func (f *fakeUsers) GetUser(ctx context.Context, id int64) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrNotFound
}

func (f *fakeUsers) UpdateUser(ctx context.Context, u domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	old, ok := f.byID[u.ID]
	if !ok {
		return domain.ErrNotFound
	}
	u.PasswordHash = old.PasswordHash
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUsers) UpdatePassword(ctx context.Context, id int64, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := f.byID[id]
	u.PasswordHash = hash
	f.byID[id] = u
	return nil
}

func (f *fakeUsers) DeleteUser(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeUsers) Purge(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID = map[int64]domain.User{}
	f.purged = true
	return nil
}

// ---- collaborators ----

type fakeGeo struct {
	mu      sync.Mutex
	results map[string]domain.GeoResult
	err     error
}

func (g *fakeGeo) Geocode(ctx context.Context, address string) (domain.GeoResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.err != nil {
		return domain.GeoResult{}, g.err
	}
	r, ok := g.results[address]
	if !ok {
		return domain.GeoResult{}, domain.ErrNotFound
	}
	return r, nil
}

type fakePhotos struct {
	names []string
	err   error
}

func (p *fakePhotos) Put(ctx context.Context, name string, r io.Reader, size int64, contentType string) error {
	if p.err != nil {
		return p.err
	}
	_, _ = io.Copy(io.Discard, r)
	p.names = append(p.names, name)
	return nil
}

// fakeCache round-trips through JSON like the Redis adapter.
type fakeCache struct {
	mu    sync.Mutex
	store map[string][]byte
	dels  []string
}

func newFakeCache() *fakeCache { return &fakeCache{store: map[string][]byte{}} }

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.store[key] = b
	return nil
}

func (c *fakeCache) Del(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.store, k)
		c.dels = append(c.dels, k)
	}
	return nil
}
