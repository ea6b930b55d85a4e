package app_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel_directory/internal/app"
	"hotel_directory/internal/domain"
)

func TestCreateHotel_GeocodesAndSlugs(t *testing.T) {
	f := newFixture()
	h, err := f.svc.CreateHotel(context.Background(), publisher, validHotel("Hôtel  de la Plage!"))
	require.NoError(t, err)

	assert.Equal(t, "hotel-de-la-plage", h.Slug)
	assert.Equal(t, domain.DefaultPhoto, h.Photo)
	assert.Equal(t, publisher.ID, h.UserID)
	require.NotNil(t, h.Location)
	assert.Equal(t, "Point", h.Location.Type)
	assert.Equal(t, [2]float64{-71.0598, 42.3584}, h.Location.Coordinates)
	assert.Equal(t, "MA", h.Location.State)
}

func TestCreateHotel_Validation(t *testing.T) {
	f := newFixture()
	cases := map[string]func(*app.HotelInput){
		"missing name":     func(in *app.HotelInput) { in.Name = "" },
		"long name":        func(in *app.HotelInput) { in.Name = strings.Repeat("n", 51) },
		"bad website":      func(in *app.HotelInput) { s := "ftp://x"; in.Website = &s },
		"unknown job":      func(in *app.HotelInput) { in.FrontOfficeJobs = []string{"Astronaut"} },
		"no management":    func(in *app.HotelInput) { in.ManagementJobs = nil },
		"missing address":  func(in *app.HotelInput) { in.Address = "" },
		"long description": func(in *app.HotelInput) { in.Description = strings.Repeat("d", 501) },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := validHotel("Harbor View")
			mutate(&in)
			_, err := f.svc.CreateHotel(context.Background(), publisher, in)
			assert.True(t, errors.Is(err, domain.ErrValidation), "got %v", err)
		})
	}
}

func TestCreateHotel_OnePerPublisher(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, err := f.svc.CreateHotel(ctx, publisher, validHotel("First"))
	require.NoError(t, err)

	_, err = f.svc.CreateHotel(ctx, publisher, validHotel("Second"))
	assert.True(t, errors.Is(err, domain.ErrValidation))

	_, err = f.svc.CreateHotel(ctx, admin, validHotel("Admin One"))
	require.NoError(t, err)
	_, err = f.svc.CreateHotel(ctx, admin, validHotel("Admin Two"))
	require.NoError(t, err)
}

func TestCreateHotel_UnknownAddress(t *testing.T) {
	f := newFixture()
	in := validHotel("Nowhere Inn")
	in.Address = "middle of nowhere"
	_, err := f.svc.CreateHotel(context.Background(), publisher, in)
	assert.True(t, errors.Is(err, domain.ErrValidation))
}

func TestCreateHotel_GeocoderOutageSavesWithoutLocation(t *testing.T) {
	f := newFixture()
	f.geo.err = errors.New("connection refused")
	h, err := f.svc.CreateHotel(context.Background(), publisher, validHotel("Offline Inn"))
	require.NoError(t, err)
	assert.Nil(t, h.Location)
}

func TestUpdateHotel_OwnerOrAdmin(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	h, err := f.svc.CreateHotel(ctx, publisher, validHotel("Harbor View"))
	require.NoError(t, err)

	name := "Harbor View Grand"
	_, err = f.svc.UpdateHotel(ctx, stranger, h.ID, app.HotelPatch{Name: &name})
	assert.True(t, errors.Is(err, domain.ErrForbidden))

	got, err := f.svc.UpdateHotel(ctx, admin, h.ID, app.HotelPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "harbor-view-grand", got.Slug)
	assert.Equal(t, []string{"Sales Manager", "IT Manager"}, got.ManagementJobs)

	_, err = f.svc.UpdateHotel(ctx, publisher, 999, app.HotelPatch{Name: &name})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestDeleteHotel(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	h, err := f.svc.CreateHotel(ctx, publisher, validHotel("Harbor View"))
	require.NoError(t, err)

	assert.True(t, errors.Is(f.svc.DeleteHotel(ctx, stranger, h.ID), domain.ErrForbidden))
	require.NoError(t, f.svc.DeleteHotel(ctx, publisher, h.ID))
	_, err = f.svc.GetHotel(ctx, h.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestUploadPhoto(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	h, err := f.svc.CreateHotel(ctx, publisher, validHotel("Harbor View"))
	require.NoError(t, err)

	up := func(ct string, size int) app.Upload {
		return app.Upload{Body: strings.NewReader(strings.Repeat("x", size)), Size: int64(size), ContentType: ct, Filename: "Front.JPG"}
	}

	_, err = f.svc.UploadPhoto(ctx, publisher, h.ID, up("text/plain", 10))
	assert.True(t, errors.Is(err, domain.ErrUnsupportedMedia))

	_, err = f.svc.UploadPhoto(ctx, publisher, h.ID, up("image/jpeg", 1001))
	assert.True(t, errors.Is(err, domain.ErrPayloadTooLarge))

	_, err = f.svc.UploadPhoto(ctx, stranger, h.ID, up("image/jpeg", 10))
	assert.True(t, errors.Is(err, domain.ErrForbidden))

	name, err := f.svc.UploadPhoto(ctx, publisher, h.ID, up("image/jpeg", 10))
	require.NoError(t, err)
	assert.Regexp(t, `^photo_1_[0-9a-f-]{36}\.jpg$`, name)
	assert.Equal(t, []string{name}, f.photos.names)

	got, err := f.svc.GetHotel(ctx, h.ID)
	require.NoError(t, err)
	assert.Equal(t, name, got.Photo)
}

func TestUploadPhoto_StoreFailure(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	h, err := f.svc.CreateHotel(ctx, publisher, validHotel("Harbor View"))
	require.NoError(t, err)
	f.photos.err = errors.New("photo store not configured")

	_, err = f.svc.UploadPhoto(ctx, publisher, h.ID, app.Upload{Body: strings.NewReader("x"), Size: 1, ContentType: "image/png", Filename: "a.png"})
	require.Error(t, err)
	got, _ := f.svc.GetHotel(ctx, h.ID)
	assert.Equal(t, domain.DefaultPhoto, got.Photo)
}
