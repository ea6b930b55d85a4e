package httpserver

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"hotel_directory/internal/app"
	"hotel_directory/internal/domain"
	"hotel_directory/internal/query"
)

// Service surfaces consumed by the handlers.

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (domain.User, error)
}

type AuthAPI interface {
	Authenticator
	Register(ctx context.Context, in app.RegisterInput) (domain.User, string, error)
	Login(ctx context.Context, in app.LoginInput) (domain.User, string, error)
	Me(ctx context.Context, id int64) (domain.User, error)
	UpdateDetails(ctx context.Context, id int64, in app.DetailsInput) (domain.User, error)
	UpdatePassword(ctx context.Context, id int64, in app.PasswordInput) (string, error)
	TokenTTL() time.Duration
}

type HotelAPI interface {
	GetHotel(ctx context.Context, id int64) (domain.Hotel, error)
	HotelsInRadius(ctx context.Context, zipcode string, distance float64) ([]domain.Hotel, error)
	CreateHotel(ctx context.Context, actor domain.User, in app.HotelInput) (domain.Hotel, error)
	UpdateHotel(ctx context.Context, actor domain.User, id int64, p app.HotelPatch) (domain.Hotel, error)
	DeleteHotel(ctx context.Context, actor domain.User, id int64) error
	UploadPhoto(ctx context.Context, actor domain.User, id int64, up app.Upload) (string, error)
}

type RoomAPI interface {
	ListByHotel(ctx context.Context, hotelID int64) ([]domain.Room, error)
	Get(ctx context.Context, id int64) (domain.Room, error)
	Add(ctx context.Context, actor domain.User, hotelID int64, in app.RoomInput) (domain.Room, error)
	Update(ctx context.Context, actor domain.User, id int64, p app.RoomPatch) (domain.Room, error)
	Delete(ctx context.Context, actor domain.User, id int64) error
}

type ReviewAPI interface {
	ListByHotel(ctx context.Context, hotelID int64) ([]domain.Review, error)
	Get(ctx context.Context, id int64) (domain.ReviewView, error)
	Add(ctx context.Context, actor domain.User, hotelID int64, in app.ReviewInput) (domain.Review, error)
	Update(ctx context.Context, actor domain.User, id int64, p app.ReviewPatch) (domain.Review, error)
	Delete(ctx context.Context, actor domain.User, id int64) error
}

type UserAPI interface {
	Get(ctx context.Context, id int64) (domain.User, error)
	Create(ctx context.Context, in app.UserInput) (domain.User, error)
	Update(ctx context.Context, id int64, in app.UserInput) (domain.User, error)
	Delete(ctx context.Context, id int64) error
}

// Collections back the filtered list endpoints.
type Collections struct {
	Hotels, Rooms, Reviews, Users query.Collection
}

type Handlers struct {
	Auth    AuthAPI
	Hotels  HotelAPI
	Rooms   RoomAPI
	Reviews ReviewAPI
	Users   UserAPI
	Lists   Collections

	MaxUpload    int64
	SecureCookie bool
}

var hotelSummary = &query.Populate{Field: "hotel", Select: []string{"name", "description"}}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	protect := Protect(h.Auth)
	publishers := Authorize(domain.RolePublisher, domain.RoleAdmin)
	reviewers := Authorize(domain.RoleUser, domain.RoleAdmin)

	s.mux.Route("/api/v1", func(r chi.Router) {
		r.Route("/hotels", func(r chi.Router) {
			r.With(query.AdvancedResults(h.Lists.Hotels, nil, respondErr)).Get("/", h.listAdvanced)
			r.With(protect, publishers).Post("/", h.createHotel)
			r.Get("/radius/{zipcode}/{distance}", h.hotelsInRadius)
			r.Get("/{id}", h.getHotel)
			r.With(protect, publishers).Put("/{id}", h.updateHotel)
			r.With(protect, publishers).Delete("/{id}", h.deleteHotel)
			r.With(protect, publishers).Put("/{id}/photo", h.uploadPhoto)

			r.Get("/{id}/rooms", h.listHotelRooms)
			r.With(protect, publishers).Post("/{id}/rooms", h.addRoom)
			r.Get("/{id}/reviews", h.listHotelReviews)
			r.With(protect, reviewers).Post("/{id}/reviews", h.addReview)
		})

		r.Route("/rooms", func(r chi.Router) {
			r.With(query.AdvancedResults(h.Lists.Rooms, hotelSummary, respondErr)).Get("/", h.listAdvanced)
			r.Get("/{id}", h.getRoom)
			r.With(protect, publishers).Put("/{id}", h.updateRoom)
			r.With(protect, publishers).Delete("/{id}", h.deleteRoom)
		})

		r.Route("/reviews", func(r chi.Router) {
			r.With(query.AdvancedResults(h.Lists.Reviews, hotelSummary, respondErr)).Get("/", h.listAdvanced)
			r.Get("/{id}", h.getReview)
			r.With(protect, reviewers).Put("/{id}", h.updateReview)
			r.With(protect, reviewers).Delete("/{id}", h.deleteReview)
		})

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.register)
			r.Post("/login", h.login)
			r.Get("/logout", h.logout)
			r.With(protect).Get("/me", h.me)
			r.With(protect).Put("/updatedetails", h.updateDetails)
			r.With(protect).Put("/updatepassword", h.updatePassword)
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(protect, Authorize(domain.RoleAdmin))
			r.With(query.AdvancedResults(h.Lists.Users, nil, respondErr)).Get("/", h.listAdvanced)
			r.Post("/", h.createUser)
			r.Get("/{id}", h.getUser)
			r.Put("/{id}", h.updateUser)
			r.Delete("/{id}", h.deleteUser)
		})
	})
}

// listAdvanced returns the envelope computed by AdvancedResults verbatim.
func (h *Handlers) listAdvanced(w http.ResponseWriter, r *http.Request) {
	env, found := query.FromContext(r.Context())
	if !found {
		writeProblem(w, http.StatusInternalServerError, "Server Error", "an unexpected error occurred")
		return
	}
	writeJSON(w, http.StatusOK, env)
}

// ---- hotels ----

func (h *Handlers) getHotel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondErr(w, r, err)
		return
	}
	hotel, err := h.Hotels.GetHotel(r.Context(), id)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	ok(w, http.StatusOK, hotel)
}

func (h *Handlers) hotelsInRadius(w http.ResponseWriter, r *http.Request) {
	distance, err := strconv.ParseFloat(chi.URLParam(r, "distance"), 64)
	if err != nil || distance <= 0 {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "distance must be a positive number of miles")
		return
	}
	hotels, err := h.Hotels.HotelsInRadius(r.Context(), chi.URLParam(r, "zipcode"), distance)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Success: true, Count: len(hotels), Data: hotels})
}

func (h *Handlers) createHotel(w http.ResponseWriter, r *http.Request) {
	actor, _ := currentUser(r.Context())
	var in app.HotelInput
	if err := decodeJSON(r, &in); err != nil {
		respondErr(w, r, err)
		return
	}
	hotel, err := h.Hotels.CreateHotel(r.Context(), actor, in)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	ok(w, http.StatusCreated, hotel)
}

func (h *Handlers) updateHotel(w http.ResponseWriter, r *http.Request) {
	actor, _ := currentUser(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		respondErr(w, r, err)
		return
	}
	var p app.HotelPatch
	if err := decodeJSON(r, &p); err != nil {
		respondErr(w, r, err)
		return
	}
	hotel, err := h.Hotels.UpdateHotel(r.Context(), actor, id, p)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	ok(w, http.StatusOK, hotel)
}

func (h *Handlers) deleteHotel(w http.ResponseWriter, r *http.Request) {
	actor, _ := currentUser(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		respondErr(w, r, err)
		return
	}
	if err := h.Hotels.DeleteHotel(r.Context(), actor, id); err != nil {
		respondErr(w, r, err)
		return
	}
	ok(w, http.StatusOK, struct{}{})
}
