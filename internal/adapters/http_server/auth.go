package httpserver

import (
	"context"
	"net/http"
	"slices"
	"strings"

	"hotel_directory/internal/domain"
)

const tokenCookie = "token"

type userKey struct{}

func withUser(ctx context.Context, u domain.User) context.Context {
	return context.WithValue(ctx, userKey{}, u)
}

// currentUser returns the user resolved by Protect.
func currentUser(ctx context.Context) (domain.User, bool) {
	u, ok := ctx.Value(userKey{}).(domain.User)
	return u, ok
}

// bearerToken reads "Authorization: Bearer <t>" and falls back to the token
// cookie.
func bearerToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	if c, err := r.Cookie(tokenCookie); err == nil && c.Value != "none" {
		return c.Value
	}
	return ""
}

// Protect rejects requests without a valid token and stores the user in the
// request context.
func Protect(auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok := bearerToken(r)
			if tok == "" {
				respondErr(w, r, domain.ErrUnauthorized)
				return
			}
			u, err := auth.Authenticate(r.Context(), tok)
			if err != nil {
				respondErr(w, r, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(withUser(r.Context(), u)))
		})
	}
}

// Authorize admits only the listed roles. It must run after Protect.
func Authorize(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := currentUser(r.Context())
			if !ok {
				respondErr(w, r, domain.ErrUnauthorized)
				return
			}
			if !slices.Contains(roles, u.Role) {
				writeProblem(w, http.StatusForbidden, "Forbidden",
					"user role "+u.Role+" is not authorized to access this route")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
