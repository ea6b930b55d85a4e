package observability_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hotel_directory/internal/adapters/observability"
)

func TestMetricsRegistryAndHandler(t *testing.T) {
	reg := observability.InitRegistry()

	// record samples so the vectors are exported
	observability.ObserveHTTP("/api/v1/hotels", "GET", 200, 12*time.Millisecond)
	observability.ObserveQuery("hotels", 25, nil, 3*time.Millisecond)
	observability.ObserveQuery("rooms", 0, errors.New("bad filter"), time.Millisecond)
	observability.ObserveExternal("geocoder", "address", 200, 40*time.Millisecond)

	mh := observability.MetricsHandler(reg)
	req := httptest.NewRequest("GET", "/metrics", nil)
	rr := httptest.NewRecorder()
	mh.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("metrics status: %d", rr.Code)
	}
	body, _ := io.ReadAll(rr.Body)
	out := string(body)
	for _, name := range []string{
		"hotels_http_requests_total",
		"hotels_list_query_duration_seconds",
		"hotels_external_requests_total",
		`hotels_list_page_records_count{collection="hotels"} 1`,
		`hotels_list_query_duration_seconds_count{collection="rooms",outcome="error"} 1`,
	} {
		if !strings.Contains(out, name) {
			t.Fatalf("expected %s in output", name)
		}
	}
}
