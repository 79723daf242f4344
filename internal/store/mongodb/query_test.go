package mongodb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/ayurbloom/catalog-service/internal/store"
)

func TestFilterToBSON_Empty(t *testing.T) {
	assert.Equal(t, bson.M{}, filterToBSON(nil))
	assert.Equal(t, bson.M{}, filterToBSON(store.Filter{}))
}

func TestFilterToBSON_Equal(t *testing.T) {
	f := store.Filter{store.Eq("category", "Face Care")}

	assert.Equal(t, bson.M{"category": "Face Care"}, filterToBSON(f))
}

func TestFilterToBSON_Contains(t *testing.T) {
	f := store.Filter{store.Contains("title", "serum")}

	assert.Equal(t, bson.M{
		"title": bson.M{"$regex": "serum", "$options": "i"},
	}, filterToBSON(f))
}

func TestFilterToBSON_ElemContains(t *testing.T) {
	f := store.Filter{store.ElemContains("ingredients", "neem")}

	assert.Equal(t, bson.M{
		"ingredients": bson.M{"$elemMatch": bson.M{"$regex": "neem", "$options": "i"}},
	}, filterToBSON(f))
}

func TestFilterToBSON_PriceBoundsMerge(t *testing.T) {
	f := store.Filter{
		store.GTE("price", 10.0),
		store.LTE("price", 25.0),
	}

	assert.Equal(t, bson.M{
		"price": bson.M{"$gte": 10.0, "$lte": 25.0},
	}, filterToBSON(f))
}

func TestFilterToBSON_SingleBound(t *testing.T) {
	f := store.Filter{store.LTE("price", 15.0)}

	assert.Equal(t, bson.M{"price": bson.M{"$lte": 15.0}}, filterToBSON(f))
}

func TestFilterToBSON_OrGroup(t *testing.T) {
	f := store.Filter{
		store.Or(
			store.Contains("title", "glow"),
			store.ElemContains("tags", "glow"),
		),
	}

	assert.Equal(t, bson.M{
		"$or": []bson.M{
			{"title": bson.M{"$regex": "glow", "$options": "i"}},
			{"tags": bson.M{"$elemMatch": bson.M{"$regex": "glow", "$options": "i"}}},
		},
	}, filterToBSON(f))
}

func TestFilterToBSON_CombinedConditions(t *testing.T) {
	f := store.Filter{
		store.Or(
			store.Contains("title", "oil"),
			store.ElemContains("tags", "oil"),
		),
		store.Eq("category", "Hair Care"),
		store.GTE("price", 5.0),
		store.LTE("price", 30.0),
	}

	got := filterToBSON(f)
	assert.Len(t, got, 3)
	assert.Equal(t, "Hair Care", got["category"])
	assert.Equal(t, bson.M{"$gte": 5.0, "$lte": 30.0}, got["price"])
	assert.Contains(t, got, "$or")
}

func TestSortToBSON(t *testing.T) {
	asc := sortToBSON(store.Sort{Field: "price"})
	assert.Equal(t, bson.D{{Key: "price", Value: 1}}, asc)

	desc := sortToBSON(store.Sort{Field: "popularity", Descending: true})
	assert.Equal(t, bson.D{{Key: "popularity", Value: -1}}, desc)
}
