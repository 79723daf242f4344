package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockCatalogContents(t *testing.T) {
	catalog := MockCatalog()
	require.Len(t, catalog, 4)

	titles := make([]string, 0, len(catalog))
	for _, p := range catalog {
		titles = append(titles, p.Title)
		assert.False(t, p.ID.IsZero())
		assert.True(t, p.InStock)
		assert.Equal(t, 10, p.StockCount)
		assert.Equal(t, 4.5, p.Rating)
		assert.NotEmpty(t, p.Ingredients)
	}
	assert.Equal(t, []string{
		"Kumkumadi Radiance Serum",
		"Neem & Tea Tree Cleanser",
		"Bhringraj Hair Oil",
		"Ubtan Body Scrub",
	}, titles)
}

func TestMockCatalogReturnsFreshSlice(t *testing.T) {
	a := MockCatalog()
	a[0].Title = "mutated"

	b := MockCatalog()
	assert.Equal(t, "Kumkumadi Radiance Serum", b[0].Title)
}

func TestProductJSONShape(t *testing.T) {
	p := MockCatalog()[0]

	raw, err := json.Marshal(p)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))

	assert.Equal(t, "000000000000000000000001", m["id"])
	assert.Equal(t, 29.99, m["price"])
	assert.Contains(t, m, "image_url")
	assert.Contains(t, m, "in_stock")
	assert.Contains(t, m, "reviews_count")
}

func TestOrderJSONShape(t *testing.T) {
	o := Order{
		UserID: "u1",
		Items:  []OrderItem{{ProductID: "p1", Title: "Ubtan Body Scrub", Price: 12.00, Quantity: 2}},
		Total:  24.00,
		Status: "pending",
	}

	raw, err := json.Marshal(o)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.Equal(t, "pending", m["status"])

	var u User
	require.NoError(t, json.Unmarshal([]byte(`{"email":"a@b.c","name":"A"}`), &u))
	assert.Equal(t, "a@b.c", u.Email)
}
