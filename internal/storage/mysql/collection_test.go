package mysql

import (
	"math"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel_directory/internal/query"
)

func TestFindQuery_DefaultProjectionAndPaging(t *testing.T) {
	b, fields, err := roomSchema.findQuery(query.FindOptions{
		Sort:  []query.SortKey{{Field: "createdAt", Desc: true}},
		Skip:  25,
		Limit: 25,
	})
	require.NoError(t, err)
	assert.Len(t, fields, len(roomSchema.fields))

	sqlStr, args, err := b.ToSql()
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT `id`, `room_type`, `description`, `area`, `daily_rent`, `star`, `ac`, `created_at`, `hotel_id` "+
			"FROM `rooms` ORDER BY `created_at` DESC, `id` ASC LIMIT 25 OFFSET 25",
		sqlStr)
	assert.Empty(t, args)
}

func TestFindQuery_HugePageOffset(t *testing.T) {
	spec := query.Parse(url.Values{"page": {"4611686018427387905"}, "limit": {"4"}})
	b, _, err := roomSchema.findQuery(query.FindOptions{Sort: spec.Sort, Skip: spec.Skip(), Limit: spec.Limit})
	require.NoError(t, err)

	sqlStr, _, err := b.ToSql()
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(sqlStr, "LIMIT 4 OFFSET "+strconv.Itoa(math.MaxInt)), sqlStr)
}

func TestFindQuery_RangeFilterCoercesOperands(t *testing.T) {
	b, _, err := roomSchema.findQuery(query.FindOptions{
		Filters: []query.Clause{
			{Field: "dailyrent", Op: query.GreaterOrEqual, Values: []string{"100"}},
			{Field: "dailyrent", Op: query.LessThan, Values: []string{"200.5"}},
		},
		Limit: 10,
	})
	require.NoError(t, err)

	sqlStr, args, err := b.ToSql()
	require.NoError(t, err)
	assert.Contains(t, sqlStr, "WHERE (`daily_rent` >= ? AND `daily_rent` < ?)")
	assert.Equal(t, []any{100.0, 200.5}, args)
}

func TestCondition_In(t *testing.T) {
	cond, err := hotelSchema.condition(query.Clause{Field: "location.city", Op: query.In, Values: []string{"Boston", "Lowell"}})
	require.NoError(t, err)
	sqlStr, args, err := cond.ToSql()
	require.NoError(t, err)
	assert.Equal(t, "`city` IN (?,?)", sqlStr)
	assert.Equal(t, []any{"Boston", "Lowell"}, args)
}

func TestCondition_ListFields(t *testing.T) {
	eq, err := hotelSchema.condition(query.Clause{Field: "managementJobs", Op: query.Equals, Values: []string{"Hotel Manager"}})
	require.NoError(t, err)
	sqlStr, args, err := eq.ToSql()
	require.NoError(t, err)
	assert.Equal(t, "JSON_CONTAINS(`management_jobs`, JSON_QUOTE(?))", sqlStr)
	assert.Equal(t, []any{"Hotel Manager"}, args)

	in, err := hotelSchema.condition(query.Clause{Field: "managementJobs", Op: query.In, Values: []string{"Chef", "Host"}})
	require.NoError(t, err)
	sqlStr, args, err = in.ToSql()
	require.NoError(t, err)
	assert.Equal(t, "JSON_OVERLAPS(`management_jobs`, ?)", sqlStr)
	assert.Equal(t, []any{`["Chef","Host"]`}, args)

	_, err = hotelSchema.condition(query.Clause{Field: "managementJobs", Op: query.GreaterThan, Values: []string{"x"}})
	assert.Error(t, err)
}

func TestCondition_Rejections(t *testing.T) {
	cases := []query.Clause{
		{Field: "nope", Op: query.Equals, Values: []string{"1"}},
		{Field: "dailyrent", Op: query.GreaterThan, Values: []string{"cheap"}},
		{Field: "ac", Op: query.Equals, Values: []string{"maybe"}},
		{Field: "createdAt", Op: query.LessThan, Values: []string{"yesterday"}},
	}
	for _, c := range cases {
		t.Run(c.Key(), func(t *testing.T) {
			_, err := roomSchema.condition(c)
			assert.Error(t, err)
		})
	}

	_, err := hotelSchema.condition(query.Clause{Field: "location", Op: query.Equals, Values: []string{"x"}})
	assert.Error(t, err)
}

func TestProjection(t *testing.T) {
	fields, err := hotelSchema.projection([]string{"name", "id", "averageCost"})
	require.NoError(t, err)
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.name)
	}
	assert.Equal(t, []string{"id", "name", "averageCost"}, names)

	_, err = hotelSchema.projection([]string{"location.city"})
	assert.Error(t, err)
	_, err = userSchema.projection([]string{"password"})
	assert.Error(t, err)

	all, err := hotelSchema.projection(nil)
	require.NoError(t, err)
	for _, f := range all {
		assert.False(t, f.filterOnly, f.name)
	}
	assert.Len(t, selectColumns(all), len(all)-1+len(locationColumns))
}

func TestOrderBy(t *testing.T) {
	order, err := hotelSchema.orderBy([]query.SortKey{{Field: "averageCost"}, {Field: "name", Desc: true}})
	require.NoError(t, err)
	assert.Equal(t, []string{"`average_cost` ASC", "`name` DESC", "`id` ASC"}, order)

	order, err = hotelSchema.orderBy([]query.SortKey{{Field: "id", Desc: true}})
	require.NoError(t, err)
	assert.Equal(t, []string{"`id` DESC"}, order)

	_, err = hotelSchema.orderBy([]query.SortKey{{Field: "location"}})
	assert.Error(t, err)
	_, err = hotelSchema.orderBy([]query.SortKey{{Field: "frontOfficeJobs"}})
	assert.Error(t, err)
}

func TestCoerce(t *testing.T) {
	v, err := coerce(field{name: "createdAt", kind: kindTime}, "2020-01-02")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC), v)

	v, err = coerce(field{name: "ac", kind: kindBool}, "true")
	require.NoError(t, err)
	assert.Equal(t, true, v)

	v, err = coerce(field{name: "hotel", kind: kindRef}, " 42 ")
	require.NoError(t, err)
	assert.Equal(t, int64(42), v)

	v, err = coerce(field{name: "name", kind: kindString}, "Ritz")
	require.NoError(t, err)
	assert.Equal(t, "Ritz", v)
}

func TestDecodeValue(t *testing.T) {
	v, err := decodeValue(kindStrings, []byte(`["Chef","Host"]`))
	require.NoError(t, err)
	assert.Equal(t, []string{"Chef", "Host"}, v)

	v, err = decodeValue(kindBool, int64(1))
	require.NoError(t, err)
	assert.Equal(t, true, v)

	v, err = decodeValue(kindFloat, []byte("12.5"))
	require.NoError(t, err)
	assert.Equal(t, 12.5, v)

	v, err = decodeValue(kindFloat, nil)
	require.NoError(t, err)
	assert.Nil(t, v)

	assert.Nil(t, decodeLocation(make([]any, len(locationColumns))))
	loc := decodeLocation([]any{-71.06, 42.36, []byte("1 Main St"), nil, []byte("Boston"), nil, nil, nil})
	assert.Equal(t, map[string]any{
		"type":             "Point",
		"coordinates":      []float64{-71.06, 42.36},
		"formattedAddress": "1 Main St",
		"city":             "Boston",
	}, loc)
}
