package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel_directory/internal/domain"
)

func TestRespondErr_Mapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		title  string
	}{
		{fmt.Errorf("%w: name is required", domain.ErrValidation), 400, "Bad Request"},
		{fmt.Errorf("hotels.name: %w", domain.ErrDuplicate), 400, "Duplicate field value entered"},
		{fmt.Errorf("hotel 3: %w", domain.ErrNotFound), 404, "Not Found"},
		{domain.ErrInvalidCredentials, 401, "Unauthorized"},
		{domain.ErrUnauthorized, 401, "Unauthorized"},
		{domain.ErrForbidden, 403, "Forbidden"},
		{domain.ErrPayloadTooLarge, 413, "Payload Too Large"},
		{domain.ErrUnsupportedMedia, 415, "Unsupported Media Type"},
	}
	for _, tc := range cases {
		t.Run(tc.title, func(t *testing.T) {
			rec := httptest.NewRecorder()
			respondErr(rec, httptest.NewRequest(http.MethodGet, "/", nil), tc.err)
			assert.Equal(t, tc.status, rec.Code)
			var p problem
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
			assert.Equal(t, tc.title, p.Title)
			assert.Equal(t, tc.err.Error(), p.Detail)
		})
	}
}

func TestRespondErr_HidesInternalCause(t *testing.T) {
	rec := httptest.NewRecorder()
	respondErr(rec, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("dial tcp 10.0.0.3:3306: refused"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "10.0.0.3")
	assert.Contains(t, rec.Body.String(), "an unexpected error occurred")
}

func TestBearerToken(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, bearerToken(r))

	r.AddCookie(&http.Cookie{Name: tokenCookie, Value: "from-cookie"})
	assert.Equal(t, "from-cookie", bearerToken(r))

	r.Header.Set("Authorization", "Bearer from-header")
	assert.Equal(t, "from-header", bearerToken(r))
}
