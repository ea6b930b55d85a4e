// Package geocoder resolves free-form addresses through a MapQuest-compatible
// geocoding API.
package geocoder

import (
	"context"
	crand "crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"hotel_directory/internal/adapters/observability"
	"hotel_directory/internal/domain"
)

const maxAttempts = 4

var ErrUnauthorized = errors.New("geocoder: unauthorized")

type Client struct {
	base string
	hc   *http.Client
	key  string
	rl   *rate.Limiter
}

func New(base, key string, rps float64) (*Client, error) {
	if base == "" {
		return nil, fmt.Errorf("geocoder base URL is required")
	}
	if rps <= 0 {
		rps = 5
	}
	burst := int(rps)
	if burst < 1 {
		burst = 1
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 10 * time.Second},
		key:  key,
		rl:   rate.NewLimiter(rate.Limit(rps), burst),
	}, nil
}

type latLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type location struct {
	Street     string `json:"street"`
	AdminArea5 string `json:"adminArea5"` // city
	AdminArea3 string `json:"adminArea3"` // state
	AdminArea1 string `json:"adminArea1"` // country
	PostalCode string `json:"postalCode"`
	LatLng     latLng `json:"latLng"`
}

type addressResponse struct {
	Results []struct {
		Locations []location `json:"locations"`
	} `json:"results"`
}

// Geocode returns the best match for address, or domain.ErrNotFound.
func (c *Client) Geocode(ctx context.Context, address string) (domain.GeoResult, error) {
	q := url.Values{}
	q.Set("key", c.key)
	q.Set("location", address)
	q.Set("maxResults", "1")

	var resp addressResponse
	if err := c.get(ctx, c.base+"/address?"+q.Encode(), &resp); err != nil {
		return domain.GeoResult{}, err
	}
	if len(resp.Results) == 0 || len(resp.Results[0].Locations) == 0 {
		return domain.GeoResult{}, fmt.Errorf("geocode %q: %w", address, domain.ErrNotFound)
	}
	loc := resp.Results[0].Locations[0]
	return domain.GeoResult{
		Latitude:         loc.LatLng.Lat,
		Longitude:        loc.LatLng.Lng,
		FormattedAddress: formatAddress(loc),
		StreetName:       loc.Street,
		City:             loc.AdminArea5,
		StateCode:        loc.AdminArea3,
		Zipcode:          loc.PostalCode,
		CountryCode:      loc.AdminArea1,
	}, nil
}

// formatAddress renders "street, city, state zip, country", skipping blanks.
func formatAddress(l location) string {
	stateZip := strings.TrimSpace(l.AdminArea3 + " " + l.PostalCode)
	var parts []string
	for _, p := range []string{l.Street, l.AdminArea5, stateZip, l.AdminArea1} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// get performs a rate-limited GET and decodes JSON into out. 429 and transient
// 5xx responses are retried, honoring Retry-After when present.
func (c *Client) get(ctx context.Context, u string, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "hotel-directory/1.0")

		start := time.Now()
		resp, err := c.hc.Do(req)
		if err != nil {
			observability.ObserveExternal("geocoder", "address", 0, time.Since(start))
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
			if i < maxAttempts-1 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr
		}
		observability.ObserveExternal("geocoder", "address", resp.StatusCode, time.Since(start))

		switch resp.StatusCode {
		case http.StatusOK:
			err := json.NewDecoder(resp.Body).Decode(out)
			resp.Body.Close()
			return err

		case http.StatusNotFound:
			resp.Body.Close()
			return domain.ErrNotFound

		case http.StatusUnauthorized, http.StatusForbidden:
			resp.Body.Close()
			return ErrUnauthorized

		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			wait := retryAfter(resp)
			resp.Body.Close()
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = fmt.Errorf("geocoder: remote %d", resp.StatusCode)
			if i < maxAttempts-1 && sleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return lastErr

		default:
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			return fmt.Errorf("geocoder: bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
		}
	}
	return lastErr
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After (seconds or HTTP-date); 0 when absent.
func retryAfter(resp *http.Response) time.Duration {
	h := strings.TrimSpace(resp.Header.Get("Retry-After"))
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(h); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff doubles from 100ms per attempt with up to +50% jitter.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 100 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	return base + time.Duration(0.5*float64(b[0])/255.0*float64(base))
}
