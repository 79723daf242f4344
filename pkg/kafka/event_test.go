package kafka

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	payload := map[string]string{"id": "6561d2e9a1b2c3d4e5f60718", "title": "Ubtan Body Scrub"}

	event, err := NewEvent("catalog.product.created", "6561d2e9a1b2c3d4e5f60718", "product", "catalog-service", payload)

	require.NoError(t, err)
	assert.NotEmpty(t, event.EventID)
	assert.Equal(t, "catalog.product.created", event.EventType)
	assert.Equal(t, "product", event.AggregateType)
	assert.Equal(t, 1, event.Version)
	assert.False(t, event.Timestamp.IsZero())

	var decoded map[string]string
	require.NoError(t, event.UnmarshalData(&decoded))
	assert.Equal(t, payload, decoded)
}

func TestEvent_MarshalRoundTrip(t *testing.T) {
	event, err := NewEvent("catalog.product.deleted", "abc", "product", "catalog-service", map[string]string{"id": "abc"})
	require.NoError(t, err)
	event.WithCorrelationID("req-9")

	data, err := event.Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"correlation_id":"req-9"`)
}
