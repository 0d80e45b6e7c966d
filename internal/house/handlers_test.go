package house

import (
	"net/url"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFilterFromQuery(t *testing.T) {
	q := url.Values{}
	q.Set("location", "Woliso")
	q.Set("num_rooms", "3")
	q.Set("min_price", "1000")
	q.Set("max_price", "5000.50")
	q.Set("status", "available")

	f, err := FilterFromQuery(q)
	assert.NoError(t, err)
	assert.Equal(t, "Woliso", f.Location)
	assert.Equal(t, 3, f.NumRooms)
	assert.Equal(t, StatusAvailable, f.Status)
	assert.True(t, f.MinPrice.Equal(decimal.NewFromInt(1000)))
	assert.True(t, f.MaxPrice.Equal(decimal.RequireFromString("5000.50")))
}

func TestFilterFromQuery_Empty(t *testing.T) {
	f, err := FilterFromQuery(url.Values{})
	assert.NoError(t, err)
	assert.Equal(t, Filter{}, f)
}

func TestFilterFromQuery_Invalid(t *testing.T) {
	cases := []url.Values{
		{"num_rooms": {"abc"}},
		{"num_rooms": {"0"}},
		{"num_rooms": {"-1"}},
		{"min_price": {"not-a-number"}},
		{"status": {"sold"}},
	}
	for _, q := range cases {
		_, err := FilterFromQuery(q)
		assert.Error(t, err, "query %v should be rejected", q)
	}
}

func TestBuildListQuery(t *testing.T) {
	min := decimal.NewFromInt(1000)
	q, args := buildListQuery("SELECT * FROM houses", Filter{
		Status:   StatusAvailable,
		Location: "Woliso",
		MinPrice: &min,
	})
	assert.Equal(t, "SELECT * FROM houses WHERE status = $1 AND location ILIKE $2 AND price_per_month >= $3 ORDER BY created_at ASC", q)
	assert.Equal(t, []any{"available", "%Woliso%", "1000"}, args)
}

func TestBuildListQuery_NoFilters(t *testing.T) {
	q, args := buildListQuery("SELECT * FROM houses", Filter{})
	assert.Equal(t, "SELECT * FROM houses ORDER BY created_at ASC", q)
	assert.Empty(t, args)
}
