package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"hotel_directory/internal/query"
)

// Collection serves filtered list queries for one table.
type Collection struct {
	db *sql.DB
	s  *schema
}

// Collection returns the handle for a named collection
// (hotels, rooms, reviews, users).
func (r *Repo) Collection(name string) (*Collection, error) {
	s, ok := schemas[name]
	if !ok {
		return nil, fmt.Errorf("unknown collection %q", name)
	}
	return &Collection{db: r.db, s: s}, nil
}

func (c *Collection) Name() string { return c.s.name }

func (c *Collection) Count(ctx context.Context, filters []query.Clause) (int, error) {
	b := sq.Select("COUNT(*)").From(quote(c.s.table))
	b, err := c.s.where(b, filters)
	if err != nil {
		return 0, err
	}
	sqlStr, args, err := b.ToSql()
	if err != nil {
		return 0, err
	}
	var n int
	if err := c.db.QueryRowContext(ctx, sqlStr, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (c *Collection) Find(ctx context.Context, opts query.FindOptions) ([]query.Record, error) {
	b, fields, err := c.s.findQuery(opts)
	if err != nil {
		return nil, err
	}
	return c.fetch(ctx, b, fields)
}

// Expand replaces each record's relation field with the referenced record
// projected to p.Select (all fields when empty). Dangling references become
// nil; records without the field (not projected) are left alone.
func (c *Collection) Expand(ctx context.Context, records []query.Record, p query.Populate) ([]query.Record, error) {
	f, ok := c.s.byName[p.Field]
	if !ok || f.kind != kindRef {
		return nil, fmt.Errorf("field %q of %s is not a relation", p.Field, c.s.name)
	}
	target := schemas[f.ref]

	seen := map[int64]struct{}{}
	var ids []int64
	for _, r := range records {
		if id, ok := r[p.Field].(int64); ok {
			if _, dup := seen[id]; !dup {
				seen[id] = struct{}{}
				ids = append(ids, id)
			}
		}
	}
	if len(ids) == 0 {
		return records, nil
	}

	fields, err := target.projection(p.Select)
	if err != nil {
		return nil, err
	}
	b := sq.Select(selectColumns(fields)...).
		From(quote(target.table)).
		Where(sq.Eq{quote("id"): ids})
	related, err := (&Collection{db: c.db, s: target}).fetch(ctx, b, fields)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]query.Record, len(related))
	for _, rel := range related {
		if id, ok := rel["id"].(int64); ok {
			byID[id] = rel
		}
	}

	for _, r := range records {
		id, ok := r[p.Field].(int64)
		if !ok {
			continue
		}
		if rel, found := byID[id]; found {
			r[p.Field] = rel
		} else {
			r[p.Field] = nil
		}
	}
	return records, nil
}

func (c *Collection) fetch(ctx context.Context, b sq.SelectBuilder, fields []field) ([]query.Record, error) {
	sqlStr, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := c.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []query.Record
	for rows.Next() {
		rec, err := scanRecord(rows, fields)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanRecord(rows *sql.Rows, fields []field) (query.Record, error) {
	var n int
	for _, f := range fields {
		n += len(f.columns())
	}
	vals := make([]any, n)
	dest := make([]any, n)
	for i := range vals {
		dest[i] = &vals[i]
	}
	if err := rows.Scan(dest...); err != nil {
		return nil, err
	}

	rec := make(query.Record, len(fields))
	i := 0
	for _, f := range fields {
		width := len(f.columns())
		if f.kind == kindLocation {
			rec[f.name] = decodeLocation(vals[i : i+width])
		} else {
			v, err := decodeValue(f.kind, vals[i])
			if err != nil {
				return nil, fmt.Errorf("%s: %w", f.name, err)
			}
			rec[f.name] = v
		}
		i += width
	}
	return rec, nil
}

// ---- query construction ----

func (s *schema) findQuery(opts query.FindOptions) (sq.SelectBuilder, []field, error) {
	fields, err := s.projection(opts.Select)
	if err != nil {
		return sq.SelectBuilder{}, nil, err
	}
	b := sq.Select(selectColumns(fields)...).From(quote(s.table))
	if b, err = s.where(b, opts.Filters); err != nil {
		return sq.SelectBuilder{}, nil, err
	}
	order, err := s.orderBy(opts.Sort)
	if err != nil {
		return sq.SelectBuilder{}, nil, err
	}
	b = b.OrderBy(order...).
		Limit(uint64(opts.Limit)).
		Offset(uint64(opts.Skip))
	return b, fields, nil
}

// projection resolves selected names to fields; id is always included.
// An empty selection yields every regular field.
func (s *schema) projection(sel []string) ([]field, error) {
	if len(sel) == 0 {
		out := make([]field, 0, len(s.fields))
		for _, f := range s.fields {
			if !f.filterOnly {
				out = append(out, f)
			}
		}
		return out, nil
	}
	out := []field{idField}
	for _, name := range sel {
		if name == "id" {
			continue
		}
		f, ok := s.byName[name]
		if !ok || f.filterOnly {
			return nil, fmt.Errorf("unknown field %q in %s", name, s.name)
		}
		out = append(out, f)
	}
	return out, nil
}

func (s *schema) where(b sq.SelectBuilder, filters []query.Clause) (sq.SelectBuilder, error) {
	if len(filters) == 0 {
		return b, nil
	}
	conds := make(sq.And, 0, len(filters))
	for _, c := range filters {
		cond, err := s.condition(c)
		if err != nil {
			return b, err
		}
		conds = append(conds, cond)
	}
	return b.Where(conds), nil
}

func (s *schema) condition(c query.Clause) (sq.Sqlizer, error) {
	f, ok := s.byName[c.Field]
	if !ok {
		return nil, fmt.Errorf("unknown field %q in %s", c.Field, s.name)
	}
	col := quote(f.column)

	switch f.kind {
	case kindLocation:
		return nil, fmt.Errorf("field %q cannot be filtered", c.Field)
	case kindStrings:
		switch c.Op {
		case query.Equals:
			return sq.Expr("JSON_CONTAINS("+col+", JSON_QUOTE(?))", c.Value()), nil
		case query.In:
			b, err := json.Marshal(c.Values)
			if err != nil {
				return nil, err
			}
			return sq.Expr("JSON_OVERLAPS("+col+", ?)", string(b)), nil
		default:
			return nil, fmt.Errorf("operator %s not supported on list field %q", c.Op, c.Field)
		}
	}

	if c.Op == query.In {
		vals := make([]any, 0, len(c.Values))
		for _, raw := range c.Values {
			v, err := coerce(f, raw)
			if err != nil {
				return nil, err
			}
			vals = append(vals, v)
		}
		return sq.Eq{col: vals}, nil
	}

	v, err := coerce(f, c.Value())
	if err != nil {
		return nil, err
	}
	switch c.Op {
	case query.GreaterThan:
		return sq.Gt{col: v}, nil
	case query.GreaterOrEqual:
		return sq.GtOrEq{col: v}, nil
	case query.LessThan:
		return sq.Lt{col: v}, nil
	case query.LessOrEqual:
		return sq.LtOrEq{col: v}, nil
	default:
		return sq.Eq{col: v}, nil
	}
}

// orderBy renders sort keys and appends id as the final tie-breaker so equal
// keys keep a stable order across pages.
func (s *schema) orderBy(keys []query.SortKey) ([]string, error) {
	out := make([]string, 0, len(keys)+1)
	hasID := false
	for _, k := range keys {
		f, ok := s.byName[k.Field]
		if !ok || !f.scalar() {
			return nil, fmt.Errorf("cannot sort %s by %q", s.name, k.Field)
		}
		dir := "ASC"
		if k.Desc {
			dir = "DESC"
		}
		out = append(out, quote(f.column)+" "+dir)
		hasID = hasID || f.name == "id"
	}
	if !hasID {
		out = append(out, quote("id")+" ASC")
	}
	return out, nil
}

func selectColumns(fields []field) []string {
	var cols []string
	for _, f := range fields {
		for _, c := range f.columns() {
			cols = append(cols, quote(c))
		}
	}
	return cols
}

func quote(ident string) string { return "`" + ident + "`" }
