package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"hotel_directory/internal/domain"
)

// Purger wipes every table the seeder writes.
type Purger interface {
	Purge(ctx context.Context) error
}

// Seed file records. IDs are local to the files and only link records
// across them.
type seedUser struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

type seedHotel struct {
	HotelInput
	ID   int64 `json:"id"`
	User int64 `json:"user"`
}

type seedRoom struct {
	RoomInput
	Hotel int64 `json:"hotel"`
}

type seedReview struct {
	ReviewInput
	Hotel int64 `json:"hotel"`
	User  int64 `json:"user"`
}

type SeedReport struct {
	Users, Hotels, Rooms, Reviews, Failed int
}

type Seeder struct {
	users   domain.UserRepository
	hotels  *HotelService
	rooms   domain.RoomRepository
	reviews domain.ReviewRepository
	purger  Purger
	workers int64
}

func NewSeeder(users domain.UserRepository, hotels *HotelService, rooms domain.RoomRepository,
	reviews domain.ReviewRepository, purger Purger, workers int) *Seeder {
	if workers <= 0 {
		workers = 4
	}
	return &Seeder{users: users, hotels: hotels, rooms: rooms, reviews: reviews, purger: purger, workers: int64(workers)}
}

func (s *Seeder) Destroy(ctx context.Context) error {
	return s.purger.Purge(ctx)
}

// Import loads users.json, hotels.json, rooms.json and reviews.json from dir.
// Users go in first; hotels, rooms and reviews each run through the worker
// pool once their parents exist. Individual failures are logged and counted.
func (s *Seeder) Import(ctx context.Context, dir string) (SeedReport, error) {
	var (
		users   []seedUser
		hotels  []seedHotel
		rooms   []seedRoom
		reviews []seedReview
		rep     SeedReport
	)
	for name, dst := range map[string]any{
		"users.json": &users, "hotels.json": &hotels, "rooms.json": &rooms, "reviews.json": &reviews,
	} {
		if err := readSeedFile(filepath.Join(dir, name), dst); err != nil {
			return rep, err
		}
	}

	userIDs := map[int64]int64{}
	for _, su := range users {
		hash, err := hashPassword(su.Password)
		if err != nil {
			return rep, err
		}
		u := domain.User{Name: su.Name, Email: su.Email, Role: roleOrDefault(su.Role), PasswordHash: hash}
		if err := s.users.CreateUser(ctx, &u); err != nil {
			log.Warn().Err(err).Str("email", su.Email).Msg("seed user failed")
			rep.Failed++
			continue
		}
		userIDs[su.ID] = u.ID
		rep.Users++
	}

	var mu sync.Mutex
	hotelIDs := map[int64]int64{}
	ok := s.run(ctx, len(hotels), func(i int) error {
		sh := hotels[i]
		owner, err := seedRef(userIDs, "user", sh.User)
		if err != nil {
			return fmt.Errorf("hotel %q: %w", sh.Name, err)
		}
		h := hotelFromInput(sh.HotelInput, owner)
		loc, err := s.hotels.locate(ctx, sh.Address)
		if err != nil {
			return err
		}
		h.Location = loc
		if err := s.hotels.hotels.CreateHotel(ctx, &h); err != nil {
			return fmt.Errorf("hotel %q: %w", sh.Name, err)
		}
		mu.Lock()
		hotelIDs[sh.ID] = h.ID
		mu.Unlock()
		return nil
	})
	rep.Hotels, rep.Failed = ok, rep.Failed+len(hotels)-ok

	ok = s.run(ctx, len(rooms), func(i int) error {
		hotelID, err := seedRef(hotelIDs, "hotel", rooms[i].Hotel)
		if err != nil {
			return fmt.Errorf("room %q: %w", rooms[i].RoomType, err)
		}
		r := roomFromInput(rooms[i].RoomInput, hotelID)
		return s.rooms.CreateRoom(ctx, &r)
	})
	rep.Rooms, rep.Failed = ok, rep.Failed+len(rooms)-ok

	ok = s.run(ctx, len(reviews), func(i int) error {
		sr := reviews[i]
		hotelID, err := seedRef(hotelIDs, "hotel", sr.Hotel)
		if err != nil {
			return fmt.Errorf("review %q: %w", sr.Title, err)
		}
		userID, err := seedRef(userIDs, "user", sr.User)
		if err != nil {
			return fmt.Errorf("review %q: %w", sr.Title, err)
		}
		r := domain.Review{
			Title: sr.Title, Text: sr.Text, Rating: sr.Rating,
			HotelID: hotelID, UserID: userID,
		}
		return s.reviews.CreateReview(ctx, &r)
	})
	rep.Reviews, rep.Failed = ok, rep.Failed+len(reviews)-ok

	return rep, ctx.Err()
}

// seedRef resolves a seed-file id to the id the store assigned. The maps are
// only read once the phase that filled them has finished.
func seedRef(ids map[int64]int64, kind string, seedID int64) (int64, error) {
	id, ok := ids[seedID]
	if !ok {
		return 0, fmt.Errorf("unknown or unseeded %s %d", kind, seedID)
	}
	return id, nil
}

// run executes fn(0..n-1) with at most s.workers in flight and returns how
// many succeeded.
func (s *Seeder) run(ctx context.Context, n int, fn func(i int) error) int {
	sem := semaphore.NewWeighted(s.workers)
	var (
		wg sync.WaitGroup
		mu sync.Mutex
		ok int
	)
	for i := 0; i < n; i++ {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			break
		}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer sem.Release(1)
			if err := fn(i); err != nil {
				log.Warn().Int("index", i).Err(err).Msg("seed record failed")
				return
			}
			mu.Lock()
			ok++
			mu.Unlock()
		}(i)
	}
	wg.Wait()
	return ok
}

func readSeedFile(path string, dst any) error {
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return nil
}
