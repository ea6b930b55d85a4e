package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	gomysql "github.com/go-sql-driver/mysql"

	"hotel_directory/internal/domain"
)

func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func valF64(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

func valJSON(v []string) string {
	if v == nil {
		v = []string{}
	}
	b, _ := json.Marshal(v)
	return string(b)
}

func ptrNullStr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func ptrNullF64(nf sql.NullFloat64) *float64 {
	if !nf.Valid {
		return nil
	}
	f := nf.Float64
	return &f
}

// mapErr translates driver errors into domain sentinels.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	var me *gomysql.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case 1062: // ER_DUP_ENTRY
			return fmt.Errorf("%w: %s", domain.ErrDuplicate, me.Message)
		case 1452: // ER_NO_REFERENCED_ROW_2
			return fmt.Errorf("referenced record: %w", domain.ErrNotFound)
		}
	}
	return err
}

func affectedOrNotFound(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// withTx runs fn inside a transaction, rolling back on error.
func (r *Repo) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// -----------------------------------------------------------------------------
// HOTELS
// -----------------------------------------------------------------------------

type rowScanner interface {
	Scan(dest ...any) error
}

func locationArgs(l *domain.Location) []any {
	if l == nil {
		return []any{nil, nil, nil, nil, nil, nil, nil, nil}
	}
	return []any{l.Lon(), l.Lat(), l.FormattedAddress, l.Street, l.City, l.State, l.Zipcode, l.Country}
}

func (r *Repo) CreateHotel(ctx context.Context, h *domain.Hotel) error {
	if h.CreatedAt.IsZero() {
		h.CreatedAt = time.Now().UTC()
	}
	if h.Photo == "" {
		h.Photo = domain.DefaultPhoto
	}
	args := []any{h.Name, h.Slug, h.Description, valStr(h.Website), valStr(h.Phone), valStr(h.Email)}
	args = append(args, locationArgs(h.Location)...)
	args = append(args,
		valJSON(h.FrontOfficeJobs), valJSON(h.ManagementJobs), valJSON(h.FoodAndBeverageRoles), h.Photo,
		h.BusinessFacilities, h.Internet, h.Activities, h.PublicTransit, h.OutdoorPool, h.PetFriendly, h.Garden,
		h.CreatedAt, h.UserID,
	)
	res, err := r.db.ExecContext(ctx, insertHotelSQL, args...)
	if err != nil {
		return mapErr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	h.ID = id
	return nil
}

func (r *Repo) GetHotel(ctx context.Context, id int64) (domain.Hotel, error) {
	h, err := scanHotel(r.db.QueryRowContext(ctx, getHotelSQL, id))
	if err != nil {
		return domain.Hotel{}, mapErr(err)
	}
	return h, nil
}

func (r *Repo) UpdateHotel(ctx context.Context, h domain.Hotel) error {
	args := []any{h.Name, h.Slug, h.Description, valStr(h.Website), valStr(h.Phone), valStr(h.Email)}
	args = append(args, locationArgs(h.Location)...)
	args = append(args,
		valJSON(h.FrontOfficeJobs), valJSON(h.ManagementJobs), valJSON(h.FoodAndBeverageRoles),
		h.BusinessFacilities, h.Internet, h.Activities, h.PublicTransit, h.OutdoorPool, h.PetFriendly, h.Garden,
		h.ID,
	)
	_, err := r.db.ExecContext(ctx, updateHotelSQL, args...)
	return mapErr(err)
}

func (r *Repo) DeleteHotel(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, deleteHotelSQL, id)
	if err != nil {
		return mapErr(err)
	}
	return affectedOrNotFound(res)
}

func (r *Repo) CountHotelsByUser(ctx context.Context, userID int64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, countHotelsByUserSQL, userID).Scan(&n)
	return n, err
}

func (r *Repo) SetHotelPhoto(ctx context.Context, id int64, photo string) error {
	_, err := r.db.ExecContext(ctx, setHotelPhotoSQL, photo, id)
	return mapErr(err)
}

func (r *Repo) HotelsWithinRadius(ctx context.Context, lon, lat, radiusMiles float64) ([]domain.Hotel, error) {
	rows, err := r.db.QueryContext(ctx, hotelsWithinRadiusSQL, lon, lat, radiusMiles)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Hotel{}
	for rows.Next() {
		h, err := scanHotel(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func scanHotel(s rowScanner) (domain.Hotel, error) {
	var h domain.Hotel
	var (
		website, phone, email                            sql.NullString
		lon, lat                                         sql.NullFloat64
		formatted, street, city, state, zipcode, country sql.NullString
		frontOffice, management, foodAndBeverage         []byte
		avgRating, avgCost                               sql.NullFloat64
	)
	if err := s.Scan(
		&h.ID, &h.Name, &h.Slug, &h.Description, &website, &phone, &email,
		&lon, &lat, &formatted, &street, &city, &state, &zipcode, &country,
		&frontOffice, &management, &foodAndBeverage,
		&avgRating, &avgCost, &h.Photo,
		&h.BusinessFacilities, &h.Internet, &h.Activities, &h.PublicTransit, &h.OutdoorPool, &h.PetFriendly, &h.Garden,
		&h.CreatedAt, &h.UserID,
	); err != nil {
		return domain.Hotel{}, err
	}
	h.Website, h.Phone, h.Email = ptrNullStr(website), ptrNullStr(phone), ptrNullStr(email)
	if lon.Valid && lat.Valid {
		h.Location = &domain.Location{
			Type:             "Point",
			Coordinates:      [2]float64{lon.Float64, lat.Float64},
			FormattedAddress: formatted.String,
			Street:           street.String,
			City:             city.String,
			State:            state.String,
			Zipcode:          zipcode.String,
			Country:          country.String,
		}
	}
	for _, l := range []struct {
		column string
		raw    []byte
		dst    *[]string
	}{
		{"front_office_jobs", frontOffice, &h.FrontOfficeJobs},
		{"management_jobs", management, &h.ManagementJobs},
		{"food_and_beverage_roles", foodAndBeverage, &h.FoodAndBeverageRoles},
	} {
		if err := json.Unmarshal(l.raw, l.dst); err != nil {
			return domain.Hotel{}, fmt.Errorf("hotel %d: decode %s: %w", h.ID, l.column, err)
		}
	}
	h.AverageRating, h.AverageCost = ptrNullF64(avgRating), ptrNullF64(avgCost)
	return h, nil
}

// -----------------------------------------------------------------------------
// ROOMS
// -----------------------------------------------------------------------------

func scanRoom(s rowScanner) (domain.Room, error) {
	var rm domain.Room
	err := s.Scan(&rm.ID, &rm.RoomType, &rm.Description, &rm.Area, &rm.DailyRent, &rm.Star, &rm.AC, &rm.CreatedAt, &rm.HotelID)
	return rm, err
}

func (r *Repo) ListRoomsByHotel(ctx context.Context, hotelID int64) ([]domain.Room, error) {
	rows, err := r.db.QueryContext(ctx, listRoomsByHotelSQL, hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Room{}
	for rows.Next() {
		rm, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rm)
	}
	return out, rows.Err()
}

func (r *Repo) GetRoom(ctx context.Context, id int64) (domain.Room, error) {
	rm, err := scanRoom(r.db.QueryRowContext(ctx, getRoomSQL, id))
	if err != nil {
		return domain.Room{}, mapErr(err)
	}
	return rm, nil
}

func (r *Repo) CreateRoom(ctx context.Context, rm *domain.Room) error {
	if rm.CreatedAt.IsZero() {
		rm.CreatedAt = time.Now().UTC()
	}
	return r.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, insertRoomSQL,
			rm.RoomType, rm.Description, rm.Area, rm.DailyRent, rm.Star, rm.AC, rm.CreatedAt, rm.HotelID)
		if err != nil {
			return mapErr(err)
		}
		if rm.ID, err = res.LastInsertId(); err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, refreshAverageCostSQL, rm.HotelID, rm.HotelID)
		return err
	})
}

func (r *Repo) UpdateRoom(ctx context.Context, rm domain.Room) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, updateRoomSQL,
			rm.RoomType, rm.Description, rm.Area, rm.DailyRent, rm.Star, rm.AC, rm.ID); err != nil {
			return mapErr(err)
		}
		_, err := tx.ExecContext(ctx, refreshAverageCostSQL, rm.HotelID, rm.HotelID)
		return err
	})
}

func (r *Repo) DeleteRoom(ctx context.Context, id int64) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		rm, err := scanRoom(tx.QueryRowContext(ctx, getRoomSQL, id))
		if err != nil {
			return mapErr(err)
		}
		if _, err := tx.ExecContext(ctx, deleteRoomSQL, id); err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, refreshAverageCostSQL, rm.HotelID, rm.HotelID)
		return err
	})
}

// -----------------------------------------------------------------------------
// REVIEWS
// -----------------------------------------------------------------------------

func scanReview(s rowScanner) (domain.Review, error) {
	var rv domain.Review
	err := s.Scan(&rv.ID, &rv.Title, &rv.Text, &rv.Rating, &rv.CreatedAt, &rv.HotelID, &rv.UserID)
	return rv, err
}

func (r *Repo) ListReviewsByHotel(ctx context.Context, hotelID int64) ([]domain.Review, error) {
	rows, err := r.db.QueryContext(ctx, listReviewsByHotelSQL, hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Review{}
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

func (r *Repo) GetReview(ctx context.Context, id int64) (domain.Review, error) {
	rv, err := scanReview(r.db.QueryRowContext(ctx, getReviewSQL, id))
	if err != nil {
		return domain.Review{}, mapErr(err)
	}
	return rv, nil
}

func (r *Repo) GetReviewView(ctx context.Context, id int64) (domain.ReviewView, error) {
	var v domain.ReviewView
	var hotelID sql.NullInt64
	var hotelName, hotelDesc sql.NullString
	err := r.db.QueryRowContext(ctx, getReviewViewSQL, id).Scan(
		&v.ID, &v.Title, &v.Text, &v.Rating, &v.CreatedAt, &v.UserID,
		&hotelID, &hotelName, &hotelDesc,
	)
	if err != nil {
		return domain.ReviewView{}, mapErr(err)
	}
	if hotelID.Valid {
		v.Hotel = &domain.HotelSummary{ID: hotelID.Int64, Name: hotelName.String, Description: hotelDesc.String}
	}
	return v, nil
}

func (r *Repo) CreateReview(ctx context.Context, rv *domain.Review) error {
	if rv.CreatedAt.IsZero() {
		rv.CreatedAt = time.Now().UTC()
	}
	return r.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, insertReviewSQL,
			rv.Title, rv.Text, rv.Rating, rv.CreatedAt, rv.HotelID, rv.UserID)
		if err != nil {
			return mapErr(err)
		}
		if rv.ID, err = res.LastInsertId(); err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, refreshAverageRatingSQL, rv.HotelID, rv.HotelID)
		return err
	})
}

func (r *Repo) UpdateReview(ctx context.Context, rv domain.Review) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, updateReviewSQL, rv.Title, rv.Text, rv.Rating, rv.ID); err != nil {
			return mapErr(err)
		}
		_, err := tx.ExecContext(ctx, refreshAverageRatingSQL, rv.HotelID, rv.HotelID)
		return err
	})
}

func (r *Repo) DeleteReview(ctx context.Context, id int64) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		rv, err := scanReview(tx.QueryRowContext(ctx, getReviewSQL, id))
		if err != nil {
			return mapErr(err)
		}
		if _, err := tx.ExecContext(ctx, deleteReviewSQL, id); err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, refreshAverageRatingSQL, rv.HotelID, rv.HotelID)
		return err
	})
}

// -----------------------------------------------------------------------------
// USERS
// -----------------------------------------------------------------------------

func scanUser(s rowScanner) (domain.User, error) {
	var u domain.User
	err := s.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.PasswordHash, &u.CreatedAt)
	return u, err
}

func (r *Repo) CreateUser(ctx context.Context, u *domain.User) error {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	res, err := r.db.ExecContext(ctx, insertUserSQL, u.Name, u.Email, u.Role, u.PasswordHash, u.CreatedAt)
	if err != nil {
		return mapErr(err)
	}
	u.ID, err = res.LastInsertId()
	return err
}

func (r *Repo) GetUser(ctx context.Context, id int64) (domain.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, getUserSQL, id))
	if err != nil {
		return domain.User{}, mapErr(err)
	}
	return u, nil
}

func (r *Repo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, getUserByEmailSQL, email))
	if err != nil {
		return domain.User{}, mapErr(err)
	}
	return u, nil
}

func (r *Repo) UpdateUser(ctx context.Context, u domain.User) error {
	_, err := r.db.ExecContext(ctx, updateUserSQL, u.Name, u.Email, u.Role, u.ID)
	return mapErr(err)
}

func (r *Repo) UpdatePassword(ctx context.Context, id int64, hash string) error {
	_, err := r.db.ExecContext(ctx, updatePasswordSQL, hash, id)
	return mapErr(err)
}

func (r *Repo) DeleteUser(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, deleteUserSQL, id)
	if err != nil {
		return mapErr(err)
	}
	return affectedOrNotFound(res)
}

// Purge removes every row the API owns; used by the seeder.
func (r *Repo) Purge(ctx context.Context) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		for _, stmt := range purgeSQL {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return err
			}
		}
		return nil
	})
}
