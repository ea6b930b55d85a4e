package app

import "testing"

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Harbor View":          "harbor-view",
		"  Hôtel Ünïcode  ":    "hotel-unicode",
		"Bed & Breakfast #1":   "bed-breakfast-1",
		"already-slugged-name": "already-slugged-name",
		"!!!":                  "",
	}
	for in, want := range cases {
		if got := slugify(in); got != want {
			t.Errorf("slugify(%q) = %q, want %q", in, got, want)
		}
	}
}
