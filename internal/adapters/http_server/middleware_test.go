package httpserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_RecordsRouteAndStatus(t *testing.T) {
	var buf bytes.Buffer
	r := chi.NewRouter()
	r.Use(Logger(zerolog.New(&buf)))
	r.Get("/hotels/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	r.Get("/boom", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/hotels/12", nil))
	var ev map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &ev))
	assert.Equal(t, "info", ev["level"])
	assert.Equal(t, "/hotels/{id}", ev["route"])
	assert.Equal(t, float64(http.StatusTeapot), ev["status"])

	buf.Reset()
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.NoError(t, json.Unmarshal(buf.Bytes(), &ev))
	assert.Equal(t, "error", ev["level"])
}

func TestServed_ImplicitOK(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("hi")) })
	rec := httptest.NewRecorder()
	assert.Equal(t, http.StatusOK, served(h, rec, httptest.NewRequest(http.MethodGet, "/", nil)))

	silent := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})
	assert.Equal(t, http.StatusOK, served(silent, httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil)))
}

func TestTimeout_SilentHandlerGetsProblem(t *testing.T) {
	slow := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})
	rec := httptest.NewRecorder()
	Timeout(10*time.Millisecond)(slow).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
	var p problem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, errTimedOut, p.Detail)
}

func TestTimeout_FastHandlerUntouched(t *testing.T) {
	fast := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusCreated, map[string]bool{"success": true})
	})
	rec := httptest.NewRecorder()
	Timeout(time.Second)(fast).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
}

// A handler whose store call hits the deadline reports it through respondErr;
// the access log sees the 503 because Timeout sits inside Logger.
func TestServer_TimeoutIsLoggedAs503(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })

	s := New(Options{RequestTimeout: 10 * time.Millisecond})
	s.mux.Get("/slow/{id}", func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
		respondErr(w, r, fmt.Errorf("query hotels: %w", r.Context().Err()))
	})

	rec := httptest.NewRecorder()
	s.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/slow/3", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))

	var ev map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &ev))
	assert.Equal(t, "/slow/{id}", ev["route"])
	assert.Equal(t, float64(http.StatusServiceUnavailable), ev["status"])
}

func TestRemoteIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.1.2.3:5555"
	assert.Equal(t, "10.1.2.3", remoteIP(r))
	r.RemoteAddr = "pipe"
	assert.Equal(t, "pipe", remoteIP(r))
}
