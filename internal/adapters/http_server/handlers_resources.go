package httpserver

import (
	"errors"
	"fmt"
	"net/http"

	"hotel_directory/internal/app"
	"hotel_directory/internal/domain"
)

const multipartMemory = 8 << 20

// uploadPhoto accepts a multipart form with the image in field "file".
func (h *Handlers) uploadPhoto(w http.ResponseWriter, r *http.Request) {
	actor, _ := currentUser(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		respondErr(w, r, err)
		return
	}
	if h.MaxUpload > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.MaxUpload+multipartMemory)
	}
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			respondErr(w, r, domain.ErrPayloadTooLarge)
			return
		}
		respondErr(w, r, fmt.Errorf("%w: please upload a file", domain.ErrValidation))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		respondErr(w, r, fmt.Errorf("%w: please upload a file", domain.ErrValidation))
		return
	}
	defer file.Close()

	name, err := h.Hotels.UploadPhoto(r.Context(), actor, id, app.Upload{
		Body:        file,
		Size:        header.Size,
		ContentType: header.Header.Get("Content-Type"),
		Filename:    header.Filename,
	})
	if err != nil {
		respondErr(w, r, err)
		return
	}
	ok(w, http.StatusOK, name)
}

// ---- rooms ----

func (h *Handlers) listHotelRooms(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondErr(w, r, err)
		return
	}
	rooms, err := h.Rooms.ListByHotel(r.Context(), id)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Success: true, Count: len(rooms), Data: rooms})
}

func (h *Handlers) getRoom(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondErr(w, r, err)
		return
	}
	room, err := h.Rooms.Get(r.Context(), id)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	ok(w, http.StatusOK, room)
}

func (h *Handlers) addRoom(w http.ResponseWriter, r *http.Request) {
	actor, _ := currentUser(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		respondErr(w, r, err)
		return
	}
	var in app.RoomInput
	if err := decodeJSON(r, &in); err != nil {
		respondErr(w, r, err)
		return
	}
	room, err := h.Rooms.Add(r.Context(), actor, id, in)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	ok(w, http.StatusCreated, room)
}

func (h *Handlers) updateRoom(w http.ResponseWriter, r *http.Request) {
	actor, _ := currentUser(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		respondErr(w, r, err)
		return
	}
	var p app.RoomPatch
	if err := decodeJSON(r, &p); err != nil {
		respondErr(w, r, err)
		return
	}
	room, err := h.Rooms.Update(r.Context(), actor, id, p)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	ok(w, http.StatusOK, room)
}

func (h *Handlers) deleteRoom(w http.ResponseWriter, r *http.Request) {
	actor, _ := currentUser(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		respondErr(w, r, err)
		return
	}
	if err := h.Rooms.Delete(r.Context(), actor, id); err != nil {
		respondErr(w, r, err)
		return
	}
	ok(w, http.StatusOK, struct{}{})
}

// ---- reviews ----

func (h *Handlers) listHotelReviews(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondErr(w, r, err)
		return
	}
	reviews, err := h.Reviews.ListByHotel(r.Context(), id)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Success: true, Count: len(reviews), Data: reviews})
}

func (h *Handlers) getReview(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondErr(w, r, err)
		return
	}
	review, err := h.Reviews.Get(r.Context(), id)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	ok(w, http.StatusOK, review)
}

func (h *Handlers) addReview(w http.ResponseWriter, r *http.Request) {
	actor, _ := currentUser(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		respondErr(w, r, err)
		return
	}
	var in app.ReviewInput
	if err := decodeJSON(r, &in); err != nil {
		respondErr(w, r, err)
		return
	}
	review, err := h.Reviews.Add(r.Context(), actor, id, in)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	ok(w, http.StatusCreated, review)
}

func (h *Handlers) updateReview(w http.ResponseWriter, r *http.Request) {
	actor, _ := currentUser(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		respondErr(w, r, err)
		return
	}
	var p app.ReviewPatch
	if err := decodeJSON(r, &p); err != nil {
		respondErr(w, r, err)
		return
	}
	review, err := h.Reviews.Update(r.Context(), actor, id, p)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	ok(w, http.StatusOK, review)
}

func (h *Handlers) deleteReview(w http.ResponseWriter, r *http.Request) {
	actor, _ := currentUser(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		respondErr(w, r, err)
		return
	}
	if err := h.Reviews.Delete(r.Context(), actor, id); err != nil {
		respondErr(w, r, err)
		return
	}
	ok(w, http.StatusOK, struct{}{})
}
