package httpserver

import (
	"net/http"
	"time"

	"hotel_directory/internal/app"
)

type tokenResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

// sendToken answers with the token in the body and as an HTTP-only cookie.
func (h *Handlers) sendToken(w http.ResponseWriter, status int, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.Auth.TokenTTL()),
		HttpOnly: true,
		Secure:   h.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, status, tokenResponse{Success: true, Token: token})
}

func (h *Handlers) register(w http.ResponseWriter, r *http.Request) {
	var in app.RegisterInput
	if err := decodeJSON(r, &in); err != nil {
		respondErr(w, r, err)
		return
	}
	_, tok, err := h.Auth.Register(r.Context(), in)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	h.sendToken(w, http.StatusOK, tok)
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	var in app.LoginInput
	if err := decodeJSON(r, &in); err != nil {
		respondErr(w, r, err)
		return
	}
	_, tok, err := h.Auth.Login(r.Context(), in)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	h.sendToken(w, http.StatusOK, tok)
}

// logout overwrites the cookie with a short-lived placeholder.
func (h *Handlers) logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     tokenCookie,
		Value:    "none",
		Path:     "/",
		Expires:  time.Now().Add(10 * time.Second),
		HttpOnly: true,
		Secure:   h.SecureCookie,
	})
	ok(w, http.StatusOK, struct{}{})
}

func (h *Handlers) me(w http.ResponseWriter, r *http.Request) {
	actor, _ := currentUser(r.Context())
	u, err := h.Auth.Me(r.Context(), actor.ID)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	ok(w, http.StatusOK, u)
}

func (h *Handlers) updateDetails(w http.ResponseWriter, r *http.Request) {
	actor, _ := currentUser(r.Context())
	var in app.DetailsInput
	if err := decodeJSON(r, &in); err != nil {
		respondErr(w, r, err)
		return
	}
	u, err := h.Auth.UpdateDetails(r.Context(), actor.ID, in)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	ok(w, http.StatusOK, u)
}

func (h *Handlers) updatePassword(w http.ResponseWriter, r *http.Request) {
	actor, _ := currentUser(r.Context())
	var in app.PasswordInput
	if err := decodeJSON(r, &in); err != nil {
		respondErr(w, r, err)
		return
	}
	tok, err := h.Auth.UpdatePassword(r.Context(), actor.ID, in)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	h.sendToken(w, http.StatusOK, tok)
}

// ---- users (admin) ----

func (h *Handlers) getUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondErr(w, r, err)
		return
	}
	u, err := h.Users.Get(r.Context(), id)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	ok(w, http.StatusOK, u)
}

func (h *Handlers) createUser(w http.ResponseWriter, r *http.Request) {
	var in app.UserInput
	if err := decodeJSON(r, &in); err != nil {
		respondErr(w, r, err)
		return
	}
	u, err := h.Users.Create(r.Context(), in)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	ok(w, http.StatusCreated, u)
}

func (h *Handlers) updateUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondErr(w, r, err)
		return
	}
	var in app.UserInput
	if err := decodeJSON(r, &in); err != nil {
		respondErr(w, r, err)
		return
	}
	u, err := h.Users.Update(r.Context(), id, in)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	ok(w, http.StatusOK, u)
}

func (h *Handlers) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondErr(w, r, err)
		return
	}
	if err := h.Users.Delete(r.Context(), id); err != nil {
		respondErr(w, r, err)
		return
	}
	ok(w, http.StatusOK, struct{}{})
}
