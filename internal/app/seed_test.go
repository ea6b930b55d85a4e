package app_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel_directory/internal/app"
)

func writeSeed(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestSeeder_ImportAndDestroy(t *testing.T) {
	f := newFixture()
	dir := t.TempDir()
	writeSeed(t, dir, "users.json", `[
	  {"id": 1, "name": "Pat", "email": "pat@example.com", "role": "publisher", "password": "123456"},
	  {"id": 2, "name": "Sam", "email": "sam@example.com", "password": "123456"}
	]`)
	writeSeed(t, dir, "hotels.json", `[
	  {"id": 10, "user": 1, "name": "Harbor View", "description": "d", "address": "1 Beacon St Boston",
	   "frontOfficeJobs": ["Hotel Porter"], "managementJobs": ["IT Manager"], "foodAndBeverageRoles": ["Head Chef"]},
	  {"id": 11, "user": 1, "name": "Lost Lodge", "description": "d", "address": "nowhere",
	   "frontOfficeJobs": ["Hotel Porter"], "managementJobs": ["IT Manager"], "foodAndBeverageRoles": ["Head Chef"]}
	]`)
	writeSeed(t, dir, "rooms.json", `[
	  {"hotel": 10, "roomtype": "Double", "description": "d", "area": 20, "dailyrent": 99, "star": "3 star"},
	  {"hotel": 10, "roomtype": "Suite", "description": "d", "area": 40, "dailyrent": 300, "star": "5 star"}
	]`)
	writeSeed(t, dir, "reviews.json", `[{"hotel": 10, "user": 2, "title": "Nice", "text": "ok", "rating": 8}]`)

	seeder := app.NewSeeder(f.users, f.svc, f.rooms, f.reviews, f.users, 2)
	rep, err := seeder.Import(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, app.SeedReport{Users: 2, Hotels: 1, Rooms: 2, Reviews: 1, Failed: 1}, rep)

	var hotelID int64
	for id := range f.hotels.byID {
		hotelID = id
	}
	for _, r := range f.rooms.byID {
		assert.Equal(t, hotelID, r.HotelID)
	}
	for _, r := range f.reviews.byID {
		assert.Equal(t, hotelID, r.HotelID)
	}

	require.NoError(t, seeder.Destroy(context.Background()))
	assert.True(t, f.users.purged)
}

func TestSeeder_MissingFilesAreEmpty(t *testing.T) {
	f := newFixture()
	seeder := app.NewSeeder(f.users, f.svc, f.rooms, f.reviews, f.users, 0)
	rep, err := seeder.Import(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, app.SeedReport{}, rep)
}

func TestSeeder_BadJSON(t *testing.T) {
	f := newFixture()
	dir := t.TempDir()
	writeSeed(t, dir, "users.json", `{not json`)
	seeder := app.NewSeeder(f.users, f.svc, f.rooms, f.reviews, f.users, 1)
	_, err := seeder.Import(context.Background(), dir)
	assert.Error(t, err)
}

func TestSeeder_DanglingReferencesFail(t *testing.T) {
	f := newFixture()
	dir := t.TempDir()
	writeSeed(t, dir, "users.json", `[{"id": 1, "name": "Pat", "email": "pat@example.com", "password": "123456"}]`)
	writeSeed(t, dir, "hotels.json", `[
	  {"id": 10, "user": 1, "name": "Harbor View", "description": "d", "address": "1 Beacon St Boston",
	   "frontOfficeJobs": ["Hotel Porter"], "managementJobs": ["IT Manager"], "foodAndBeverageRoles": ["Head Chef"]},
	  {"id": 12, "user": 9, "name": "Orphan Inn", "description": "d", "address": "1 Beacon St Boston",
	   "frontOfficeJobs": ["Hotel Porter"], "managementJobs": ["IT Manager"], "foodAndBeverageRoles": ["Head Chef"]}
	]`)
	writeSeed(t, dir, "rooms.json", `[
	  {"hotel": 10, "roomtype": "Double", "description": "d", "area": 20, "dailyrent": 99, "star": "3 star"},
	  {"hotel": 12, "roomtype": "Suite", "description": "d", "area": 40, "dailyrent": 300, "star": "5 star"},
	  {"hotel": 99, "roomtype": "Single", "description": "d", "area": 12, "dailyrent": 50, "star": "2 star"}
	]`)
	writeSeed(t, dir, "reviews.json", `[
	  {"hotel": 10, "user": 1, "title": "Nice", "text": "ok", "rating": 8},
	  {"hotel": 10, "user": 7, "title": "Ghost", "text": "ok", "rating": 2},
	  {"hotel": 12, "user": 1, "title": "Nowhere", "text": "ok", "rating": 5}
	]`)

	seeder := app.NewSeeder(f.users, f.svc, f.rooms, f.reviews, f.users, 2)
	rep, err := seeder.Import(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, app.SeedReport{Users: 1, Hotels: 1, Rooms: 1, Reviews: 1, Failed: 5}, rep)

	for _, h := range f.hotels.byID {
		assert.NotZero(t, h.UserID)
	}
	for _, r := range f.rooms.byID {
		assert.NotZero(t, r.HotelID)
	}
	for _, r := range f.reviews.byID {
		assert.NotZero(t, r.HotelID)
		assert.NotZero(t, r.UserID)
	}
}
