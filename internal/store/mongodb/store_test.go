package mongodb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type sampleDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     string             `bson:"title"`
	Price     float64            `bson:"price"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func TestToDocument(t *testing.T) {
	m, err := toDocument(sampleDoc{Title: "Kumkumadi Serum", Price: 29.99})
	require.NoError(t, err)

	assert.Equal(t, "Kumkumadi Serum", m["title"])
	assert.Equal(t, 29.99, m["price"])
	// Omitted zero ObjectID must not produce an _id key.
	_, hasID := m["_id"]
	assert.False(t, hasID)
}

func TestStampIfUnset(t *testing.T) {
	now := time.Now().UTC()

	m := bson.M{}
	stampIfUnset(m, "created_at", now)
	assert.Equal(t, now, m["created_at"])

	existing := primitive.NewDateTimeFromTime(now.Add(-time.Hour))
	m = bson.M{"created_at": existing}
	stampIfUnset(m, "created_at", now)
	assert.Equal(t, existing, m["created_at"])
}

func TestIsUnsetTime(t *testing.T) {
	assert.True(t, isUnsetTime(nil))
	assert.True(t, isUnsetTime(time.Time{}))
	assert.True(t, isUnsetTime(primitive.NewDateTimeFromTime(time.Time{})))
	assert.True(t, isUnsetTime(primitive.DateTime(0)))

	assert.False(t, isUnsetTime(time.Now()))
	assert.False(t, isUnsetTime(primitive.NewDateTimeFromTime(time.Now())))
	assert.False(t, isUnsetTime("2024-01-01"))
}

func TestToDocumentRoundTripPreservesTimestamps(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	m, err := toDocument(sampleDoc{Title: "X", CreatedAt: ts, UpdatedAt: ts})
	require.NoError(t, err)

	assert.False(t, isUnsetTime(m["created_at"]))
	assert.False(t, isUnsetTime(m["updated_at"]))
}
