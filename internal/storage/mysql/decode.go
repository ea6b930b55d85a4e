package mysql

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// The driver hands back typed values for prepared statements and []byte for
// text-protocol results; the helpers below accept both.

func asString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case []byte:
		return string(t), true
	case nil:
		return "", false
	default:
		return fmt.Sprint(t), true
	}
}

func asInt64(v any) (int64, bool) {
	switch t := v.(type) {
	case int64:
		return t, true
	case int32:
		return int64(t), true
	case int:
		return int64(t), true
	case uint64:
		return int64(t), true
	case []byte:
		n, err := strconv.ParseInt(string(t), 10, 64)
		return n, err == nil
	}
	return 0, false
}

func asFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int64:
		return float64(t), true
	case []byte:
		f, err := strconv.ParseFloat(string(t), 64)
		return f, err == nil
	}
	return 0, false
}

func asTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case []byte:
		ts, err := time.ParseInLocation("2006-01-02 15:04:05.999999", string(t), time.UTC)
		return ts, err == nil
	}
	return time.Time{}, false
}

func decodeValue(k kind, v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	switch k {
	case kindInt, kindRef:
		if n, ok := asInt64(v); ok {
			return n, nil
		}
	case kindFloat:
		if f, ok := asFloat(v); ok {
			return f, nil
		}
	case kindBool:
		if n, ok := asInt64(v); ok {
			return n != 0, nil
		}
	case kindTime:
		if ts, ok := asTime(v); ok {
			return ts, nil
		}
	case kindString:
		s, _ := asString(v)
		return s, nil
	case kindStrings:
		s, _ := asString(v)
		var out []string
		if err := json.Unmarshal([]byte(s), &out); err != nil {
			return nil, fmt.Errorf("decode list: %w", err)
		}
		if out == nil {
			out = []string{}
		}
		return out, nil
	}
	return nil, fmt.Errorf("cannot decode %T", v)
}

// decodeLocation builds the GeoJSON-style location object from the
// locationColumns values, or nil when the hotel has no coordinates.
func decodeLocation(vals []any) any {
	lon, okLon := asFloat(vals[0])
	lat, okLat := asFloat(vals[1])
	if !okLon || !okLat {
		return nil
	}
	loc := map[string]any{
		"type":        "Point",
		"coordinates": []float64{lon, lat},
	}
	for i, key := range []string{"formattedAddress", "street", "city", "state", "zipcode", "country"} {
		if s, ok := asString(vals[i+2]); ok {
			loc[key] = s
		}
	}
	return loc
}

// coerce converts query-string operands into the column's type; a failure is
// a malformed filter value.
func coerce(f field, raw string) (any, error) {
	switch f.kind {
	case kindInt, kindRef:
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("cast to number failed for value %q at path %q", raw, f.name)
		}
		return n, nil
	case kindFloat:
		x, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("cast to number failed for value %q at path %q", raw, f.name)
		}
		return x, nil
	case kindBool:
		b, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("cast to boolean failed for value %q at path %q", raw, f.name)
		}
		return b, nil
	case kindTime:
		for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
			if ts, err := time.Parse(layout, strings.TrimSpace(raw)); err == nil {
				return ts.UTC(), nil
			}
		}
		return nil, fmt.Errorf("cast to date failed for value %q at path %q", raw, f.name)
	}
	return raw, nil
}
