package query

import (
	"context"
	"net/url"
	"time"

	"golang.org/x/sync/errgroup"

	"hotel_directory/internal/adapters/observability"
)

// Record is a projected row. Keys are API field names.
type Record = map[string]any

// Populate asks for a foreign-key field to be replaced by (a projection of)
// the referenced record.
type Populate struct {
	Field  string
	Select []string
}

type FindOptions struct {
	Filters []Clause
	Select  []string
	Sort    []SortKey
	Skip    int
	Limit   int
}

// Collection is the store surface the paginator needs.
type Collection interface {
	Name() string
	Count(ctx context.Context, filters []Clause) (int, error)
	Find(ctx context.Context, opts FindOptions) ([]Record, error)
	Expand(ctx context.Context, records []Record, p Populate) ([]Record, error)
}

type PageRef struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

type Pagination struct {
	Next *PageRef `json:"next,omitempty"`
	Prev *PageRef `json:"prev,omitempty"`
}

// Envelope is the uniform list response.
type Envelope struct {
	Success    bool       `json:"success"`
	Count      int        `json:"count"`
	Pagination Pagination `json:"pagination"`
	Data       []Record   `json:"data"`
}

// Run parses raw and executes the resulting plan against coll.
func Run(ctx context.Context, raw url.Values, coll Collection, pop *Populate) (Envelope, error) {
	return Execute(ctx, Parse(raw), coll, pop)
}

// Execute issues one count and one data query (concurrently) and, when pop is
// set, one expansion query. Store errors are returned unmodified.
func Execute(ctx context.Context, spec Spec, coll Collection, pop *Populate) (env Envelope, err error) {
	start := time.Now()
	defer func() { observability.ObserveQuery(coll.Name(), env.Count, err, time.Since(start)) }()

	var (
		total   int
		records []Record
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := coll.Count(gctx, spec.Filters)
		total = n
		return err
	})
	g.Go(func() error {
		rs, err := coll.Find(gctx, FindOptions{
			Filters: spec.Filters,
			Select:  spec.Select,
			Sort:    spec.Sort,
			Skip:    spec.Skip(),
			Limit:   spec.Limit,
		})
		records = rs
		return err
	})
	if err := g.Wait(); err != nil {
		return Envelope{}, err
	}

	if pop != nil && len(records) > 0 {
		expanded, err := coll.Expand(ctx, records, *pop)
		if err != nil {
			return Envelope{}, err
		}
		records = expanded
	}
	if records == nil {
		records = []Record{}
	}

	env = Envelope{Success: true, Count: len(records), Data: records}
	if spec.End() < total {
		env.Pagination.Next = &PageRef{Page: spec.Page + 1, Limit: spec.Limit}
	}
	if spec.Skip() > 0 {
		env.Pagination.Prev = &PageRef{Page: spec.Page - 1, Limit: spec.Limit}
	}
	return env, nil
}
