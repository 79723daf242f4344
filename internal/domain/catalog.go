package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// mockIDs are fixed so the degraded-mode catalog stays stable across
// requests and restarts.
var mockIDs = []string{
	"000000000000000000000001",
	"000000000000000000000002",
	"000000000000000000000003",
	"000000000000000000000004",
}

func mustObjectID(hex string) primitive.ObjectID {
	oid, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		panic(err)
	}
	return oid
}

// MockCatalog returns the static product set served when the document
// store is unreachable. Callers receive a fresh slice on every call.
func MockCatalog() []Product {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return []Product{
		{
			ID:           mustObjectID(mockIDs[0]),
			Title:        "Kumkumadi Radiance Serum",
			Description:  "Classic kumkumadi oil blend for an even, radiant complexion.",
			Price:        29.99,
			Category:     "Face Care",
			Ingredients:  []string{"Saffron", "Sandalwood", "Manjistha"},
			ImageURL:     "https://cdn.ayurbloom.example/products/kumkumadi-serum.jpg",
			Gallery:      []string{},
			InStock:      true,
			StockCount:   10,
			Rating:       4.5,
			ReviewsCount: 120,
			Popularity:   95,
			Tags:         []string{"glow", "serum", "saffron"},
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		{
			ID:           mustObjectID(mockIDs[1]),
			Title:        "Neem & Tea Tree Cleanser",
			Description:  "Purifying face wash for oily and acne-prone skin.",
			Price:        14.50,
			Category:     "Face Care",
			Ingredients:  []string{"Neem", "Tea Tree", "Tulsi"},
			ImageURL:     "https://cdn.ayurbloom.example/products/neem-cleanser.jpg",
			Gallery:      []string{},
			InStock:      true,
			StockCount:   10,
			Rating:       4.5,
			ReviewsCount: 86,
			Popularity:   80,
			Tags:         []string{"cleanser", "acne"},
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		{
			ID:           mustObjectID(mockIDs[2]),
			Title:        "Bhringraj Hair Oil",
			Description:  "Strengthening scalp and hair oil with cold-pressed bhringraj.",
			Price:        19.99,
			Category:     "Hair Care",
			Ingredients:  []string{"Bhringraj", "Amla", "Coconut"},
			ImageURL:     "https://cdn.ayurbloom.example/products/bhringraj-oil.jpg",
			Gallery:      []string{},
			InStock:      true,
			StockCount:   10,
			Rating:       4.5,
			ReviewsCount: 104,
			Popularity:   88,
			Tags:         []string{"hair", "oil"},
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		{
			ID:           mustObjectID(mockIDs[3]),
			Title:        "Ubtan Body Scrub",
			Description:  "Traditional ubtan exfoliant with turmeric and rose.",
			Price:        12.00,
			Category:     "Body Care",
			Ingredients:  []string{"Turmeric", "Chickpea", "Rose"},
			ImageURL:     "https://cdn.ayurbloom.example/products/ubtan-scrub.jpg",
			Gallery:      []string{},
			InStock:      true,
			StockCount:   10,
			Rating:       4.5,
			ReviewsCount: 58,
			Popularity:   70,
			Tags:         []string{"ubtan", "scrub"},
			CreatedAt:    now,
			UpdatedAt:    now,
		},
	}
}
