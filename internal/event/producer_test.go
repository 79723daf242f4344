package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ayurbloom/catalog-service/internal/domain"
)

func TestProductData(t *testing.T) {
	oid := primitive.NewObjectID()
	product := &domain.Product{
		ID:         oid,
		Title:      "Bhringraj Hair Oil",
		Category:   "Hair Care",
		Price:      19.99,
		InStock:    true,
		StockCount: 10,
		Tags:       []string{"hair", "oil"},
	}

	data := productData(product)

	assert.Equal(t, oid.Hex(), data.ID)
	assert.Equal(t, "Bhringraj Hair Oil", data.Title)
	assert.Equal(t, "Hair Care", data.Category)
	assert.Equal(t, 19.99, data.Price)
	assert.True(t, data.InStock)
	assert.Equal(t, 10, data.StockCount)
	assert.Equal(t, []string{"hair", "oil"}, data.Tags)
}

func TestTopicNames(t *testing.T) {
	assert.Equal(t, "catalog.product.created", TopicProductCreated)
	assert.Equal(t, "catalog.product.updated", TopicProductUpdated)
	assert.Equal(t, "catalog.product.deleted", TopicProductDeleted)
}
