// Package domain holds the core catalog entities shared across services,
// handlers and the persistence layer.
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a catalog item. The bson tags define the stored document
// shape; json tags define the API representation. The ObjectID serializes
// to its hex form in JSON.
type Product struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title        string             `bson:"title" json:"title"`
	Description  string             `bson:"description" json:"description"`
	Price        float64            `bson:"price" json:"price"`
	Category     string             `bson:"category" json:"category"`
	Ingredients  []string           `bson:"ingredients" json:"ingredients"`
	ImageURL     string             `bson:"image_url" json:"image_url"`
	Gallery      []string           `bson:"gallery" json:"gallery"`
	InStock      bool               `bson:"in_stock" json:"in_stock"`
	StockCount   int                `bson:"stock_count" json:"stock_count"`
	Rating       float64            `bson:"rating" json:"rating"`
	ReviewsCount int                `bson:"reviews_count" json:"reviews_count"`
	Popularity   int                `bson:"popularity" json:"popularity"`
	Tags         []string           `bson:"tags" json:"tags"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

// Sort field values accepted by the listing endpoint.
const (
	SortPriceAsc       = "price_asc"
	SortPriceDesc      = "price_desc"
	SortNameAsc        = "name_asc"
	SortNameDesc       = "name_desc"
	SortPopularityDesc = "popularity_desc"
)
