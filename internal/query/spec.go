// Package query turns an inbound query-string into a filtered, sorted,
// projected and paginated fetch against a Collection, and shapes the
// uniform list envelope returned by the API.
package query

import (
	"math"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

const (
	DefaultPage      = 1
	DefaultLimit     = 25
	DefaultSortField = "createdAt"
)

// Reserved query keys; never treated as filters.
const (
	keySelect = "select"
	keySort   = "sort"
	keyPage   = "page"
	keyLimit  = "limit"
)

// Op is the comparison carried by a filter clause.
type Op int

const (
	Equals Op = iota
	GreaterThan
	GreaterOrEqual
	LessThan
	LessOrEqual
	In
)

var opTokens = map[string]Op{
	"gt":  GreaterThan,
	"gte": GreaterOrEqual,
	"lt":  LessThan,
	"lte": LessOrEqual,
	"in":  In,
}

func (o Op) String() string {
	switch o {
	case GreaterThan:
		return "gt"
	case GreaterOrEqual:
		return "gte"
	case LessThan:
		return "lt"
	case LessOrEqual:
		return "lte"
	case In:
		return "in"
	default:
		return "eq"
	}
}

// field[op] with op one of the recognised tokens.
var opKey = regexp.MustCompile(`^(.+)\[(gt|gte|lt|lte|in)\]$`)

// Clause is a single field comparison. Values holds one element for every
// operator except In.
type Clause struct {
	Field  string
	Op     Op
	Values []string
}

// Value returns the operand of a single-valued clause.
func (c Clause) Value() string {
	if len(c.Values) == 0 {
		return ""
	}
	return c.Values[0]
}

// Key renders the clause back into its query-string key.
func (c Clause) Key() string {
	if c.Op == Equals {
		return c.Field
	}
	return c.Field + "[" + c.Op.String() + "]"
}

type SortKey struct {
	Field string
	Desc  bool
}

// Spec is the query plan derived once per request.
type Spec struct {
	Filters []Clause
	Select  []string
	Sort    []SortKey
	Page    int
	Limit   int
}

// Skip is the index of the first record on the requested page. It saturates
// at math.MaxInt instead of overflowing.
func (s Spec) Skip() int { return saturatedMul(s.Page-1, s.Limit) }

// End is the index one past the last record on the requested page. It
// saturates like Skip.
func (s Spec) End() int { return saturatedMul(s.Page, s.Limit) }

// saturatedMul multiplies non-negative a and b, clamping to math.MaxInt.
func saturatedMul(a, b int) int {
	if a <= 0 || b <= 0 {
		return 0
	}
	if a > math.MaxInt/b {
		return math.MaxInt
	}
	return a * b
}

// Parse builds a Spec from raw query values. Malformed page/limit values fall
// back to defaults; it never fails.
func Parse(raw url.Values) Spec {
	spec := Spec{
		Page:  positiveInt(raw.Get(keyPage), DefaultPage),
		Limit: positiveInt(raw.Get(keyLimit), DefaultLimit),
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		switch k {
		case keySelect, keySort, keyPage, keyLimit:
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		spec.Filters = append(spec.Filters, ParseClause(k, raw[k]))
	}

	if _, ok := raw[keySelect]; ok {
		spec.Select = splitList(raw.Get(keySelect))
	}
	if _, ok := raw[keySort]; ok {
		spec.Sort = parseSort(raw.Get(keySort))
	}
	if len(spec.Sort) == 0 {
		spec.Sort = []SortKey{{Field: DefaultSortField, Desc: true}}
	}
	return spec
}

// ParseClause parses a single "field" or "field[op]" key with its values.
// Keys without a recognised operator suffix are exact-match equality on the
// whole key. Only the first value of a repeated key is used, except for In,
// where every value is split on commas.
func ParseClause(key string, values []string) Clause {
	c := Clause{Field: key, Op: Equals}
	if m := opKey.FindStringSubmatch(key); m != nil {
		c.Field = m[1]
		c.Op = opTokens[m[2]]
	}
	if c.Op == In {
		for _, v := range values {
			c.Values = append(c.Values, splitList(v)...)
		}
		return c
	}
	if len(values) > 0 {
		c.Values = []string{values[0]}
	}
	return c
}

func parseSort(s string) []SortKey {
	var keys []SortKey
	for _, f := range splitList(s) {
		k := SortKey{Field: f}
		if strings.HasPrefix(f, "-") {
			k = SortKey{Field: strings.TrimPrefix(f, "-"), Desc: true}
		}
		if k.Field != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

// splitList splits on commas, trimming blanks and dropping duplicates while
// keeping first-seen order.
func splitList(s string) []string {
	var out []string
	seen := map[string]struct{}{}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if _, dup := seen[part]; dup {
			continue
		}
		seen[part] = struct{}{}
		out = append(out, part)
	}
	return out
}

func positiveInt(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return def
	}
	return n
}
