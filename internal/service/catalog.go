// Package service implements the catalog business logic: query building,
// graceful degradation, seeding and diagnostics.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ayurbloom/catalog-service/internal/domain"
	"github.com/ayurbloom/catalog-service/internal/event"
	"github.com/ayurbloom/catalog-service/internal/store"
	apperrors "github.com/ayurbloom/catalog-service/pkg/errors"
)

// productCollection is the collection products live in.
const productCollection = "product"

// Listing limits. A zero requested limit falls back to the default.
const (
	DefaultLimit = 50
	MaxLimit     = 100
)

// maxDiagnosticCollections caps the collection names reported by Diagnose.
const maxDiagnosticCollections = 10

// maxDiagnosticErrorLen caps the error text reported by Diagnose.
const maxDiagnosticErrorLen = 80

// sortSpecs maps the public sort keys to store sort orders.
var sortSpecs = map[string]store.Sort{
	domain.SortPriceAsc:       {Field: "price"},
	domain.SortPriceDesc:      {Field: "price", Descending: true},
	domain.SortNameAsc:        {Field: "title"},
	domain.SortNameDesc:       {Field: "title", Descending: true},
	domain.SortPopularityDesc: {Field: "popularity", Descending: true},
}

// defaultSort is applied for an absent or unknown sort key.
var defaultSort = store.Sort{Field: "popularity", Descending: true}

// CatalogService implements the business logic for catalog operations.
type CatalogService struct {
	store  store.Store
	events event.Publisher
	logger *slog.Logger
}

// NewCatalogService creates a new catalog service. events may be nil when
// event publishing is disabled.
func NewCatalogService(st store.Store, events event.Publisher, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		store:  st,
		events: events,
		logger: logger,
	}
}

// ListParams holds the optional product listing parameters. All filters are
// combined; nil pointer fields mean "not provided".
type ListParams struct {
	Query      string
	Category   string
	Ingredient string
	MinPrice   *float64
	MaxPrice   *float64
	Sort       string
	Limit      int64
}

// ProductInput holds the client-supplied fields for creating or replacing a
// product. Pointer fields default when absent.
type ProductInput struct {
	Title        string
	Description  string
	Price        float64
	Category     string
	Ingredients  []string
	ImageURL     string
	Gallery      []string
	InStock      *bool
	StockCount   *int
	Rating       *float64
	ReviewsCount int
	Popularity   int
	Tags         []string
}

func (in *ProductInput) toDomain() domain.Product {
	p := domain.Product{
		Title:        in.Title,
		Description:  in.Description,
		Price:        in.Price,
		Category:     in.Category,
		Ingredients:  in.Ingredients,
		ImageURL:     in.ImageURL,
		Gallery:      in.Gallery,
		InStock:      true,
		StockCount:   10,
		Rating:       4.5,
		ReviewsCount: in.ReviewsCount,
		Popularity:   in.Popularity,
		Tags:         in.Tags,
	}
	if in.InStock != nil {
		p.InStock = *in.InStock
	}
	if in.StockCount != nil {
		p.StockCount = *in.StockCount
	}
	if in.Rating != nil {
		p.Rating = *in.Rating
	}
	if p.Ingredients == nil {
		p.Ingredients = []string{}
	}
	if p.Gallery == nil {
		p.Gallery = []string{}
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return p
}

func (in *ProductInput) validate() error {
	if in.Title == "" {
		return apperrors.InvalidInput("product title is required")
	}
	if in.Category == "" {
		return apperrors.InvalidInput("product category is required")
	}
	if in.Price < 0 {
		return apperrors.InvalidInput("price must not be negative")
	}
	if in.StockCount != nil && *in.StockCount < 0 {
		return apperrors.InvalidInput("stock count must not be negative")
	}
	if in.Rating != nil && (*in.Rating < 0 || *in.Rating > 5) {
		return apperrors.InvalidInput("rating must be between 0 and 5")
	}
	return nil
}

func buildFilter(p ListParams) store.Filter {
	f := store.Filter{}
	if p.Query != "" {
		f = append(f, store.Or(
			store.Contains("title", p.Query),
			store.ElemContains("tags", p.Query),
		))
	}
	if p.Category != "" {
		f = append(f, store.Eq("category", p.Category))
	}
	if p.Ingredient != "" {
		f = append(f, store.ElemContains("ingredients", p.Ingredient))
	}
	if p.MinPrice != nil {
		f = append(f, store.GTE("price", *p.MinPrice))
	}
	if p.MaxPrice != nil {
		f = append(f, store.LTE("price", *p.MaxPrice))
	}
	return f
}

func sortSpec(key string) store.Sort {
	if s, ok := sortSpecs[key]; ok {
		return s
	}
	return defaultSort
}

// ListProducts returns products matching the given parameters. The read path
// degrades instead of failing: if the sorted query errors, the filter is
// re-run without a sort order and results are sorted in memory; if the store
// is unreachable, the static mock catalog is served.
func (s *CatalogService) ListProducts(ctx context.Context, params ListParams) ([]domain.Product, error) {
	limit := params.Limit
	if limit == 0 {
		limit = DefaultLimit
	}

	filter := buildFilter(params)
	spec := sortSpec(params.Sort)

	var products []domain.Product
	err := s.store.Find(ctx, productCollection, store.Query{
		Filter: filter,
		Sort:   &spec,
		Limit:  limit,
	}, &products)
	if err == nil {
		return products, nil
	}

	if errors.Is(err, store.ErrUnavailable) {
		s.logger.WarnContext(ctx, "store unavailable, serving mock catalog",
			slog.String("error", err.Error()),
		)
		return domain.MockCatalog(), nil
	}

	// Sorted query failed against a reachable store. Retry without the sort
	// order and sort in memory.
	s.logger.WarnContext(ctx, "sorted query failed, retrying without sort",
		slog.String("sort_field", spec.Field),
		slog.String("error", err.Error()),
	)

	err = s.store.Find(ctx, productCollection, store.Query{
		Filter: filter,
		Limit:  limit,
	}, &products)
	if err != nil {
		s.logger.WarnContext(ctx, "fallback query failed, serving mock catalog",
			slog.String("error", err.Error()),
		)
		return domain.MockCatalog(), nil
	}

	sortProducts(products, spec)
	return products, nil
}

// sortProducts orders products in memory by the given spec. Unset values
// sort as their zero value.
func sortProducts(products []domain.Product, spec store.Sort) {
	less := func(a, b domain.Product) bool {
		switch spec.Field {
		case "price":
			return a.Price < b.Price
		case "title":
			return a.Title < b.Title
		default:
			return a.Popularity < b.Popularity
		}
	}
	sort.SliceStable(products, func(i, j int) bool {
		if spec.Descending {
			return less(products[j], products[i])
		}
		return less(products[i], products[j])
	})
}

// GetProduct retrieves a single product by its id.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	var product domain.Product
	err := s.store.FindByID(ctx, productCollection, id, &product)
	switch {
	case err == nil:
		return &product, nil
	case errors.Is(err, store.ErrNotFound):
		return nil, apperrors.NotFound("product", id)
	case errors.Is(err, store.ErrUnavailable):
		return nil, apperrors.Unavailable("database unavailable")
	default:
		return nil, fmt.Errorf("get product by id: %w", err)
	}
}

// CreateProduct validates the input, applies defaults and stores the new
// product, returning it with its assigned id.
func (s *CatalogService) CreateProduct(ctx context.Context, input *ProductInput) (*domain.Product, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	product := input.toDomain()

	id, err := s.store.Insert(ctx, productCollection, &product)
	if err != nil {
		if errors.Is(err, store.ErrUnavailable) {
			return nil, apperrors.Unavailable("database unavailable")
		}
		return nil, fmt.Errorf("create product: %w", err)
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("parse inserted id %q: %w", id, err)
	}
	product.ID = oid

	s.publish(ctx, "product.created", func(ctx context.Context) error {
		return s.events.PublishProductCreated(ctx, &product)
	})

	s.logger.InfoContext(ctx, "product created",
		slog.String("product_id", id),
		slog.String("title", product.Title),
	)

	return &product, nil
}

// UpdateProduct replaces the identified product's stored fields. It returns
// ErrNotFound when nothing was modified, which covers both an unknown id and
// a replacement identical to the stored document.
func (s *CatalogService) UpdateProduct(ctx context.Context, id string, input *ProductInput) error {
	if err := input.validate(); err != nil {
		return err
	}

	product := input.toDomain()

	modified, err := s.store.ReplaceByID(ctx, productCollection, id, &product)
	if err != nil {
		if errors.Is(err, store.ErrUnavailable) {
			return apperrors.Unavailable("database unavailable")
		}
		return fmt.Errorf("update product: %w", err)
	}
	if !modified {
		return apperrors.NotFound("product", id)
	}

	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		product.ID = oid
	}
	s.publish(ctx, "product.updated", func(ctx context.Context) error {
		return s.events.PublishProductUpdated(ctx, &product)
	})

	s.logger.InfoContext(ctx, "product updated", slog.String("product_id", id))
	return nil
}

// DeleteProduct removes the identified product.
func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	deleted, err := s.store.DeleteByID(ctx, productCollection, id)
	if err != nil {
		if errors.Is(err, store.ErrUnavailable) {
			return apperrors.Unavailable("database unavailable")
		}
		return fmt.Errorf("delete product: %w", err)
	}
	if !deleted {
		return apperrors.NotFound("product", id)
	}

	s.publish(ctx, "product.deleted", func(ctx context.Context) error {
		return s.events.PublishProductDeleted(ctx, id)
	})

	s.logger.InfoContext(ctx, "product deleted", slog.String("product_id", id))
	return nil
}

// publish runs fn best-effort. Event publishing never fails the operation.
func (s *CatalogService) publish(ctx context.Context, eventType string, fn func(context.Context) error) {
	if s.events == nil {
		return
	}
	if err := fn(ctx); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish event",
			slog.String("event_type", eventType),
			slog.String("error", err.Error()),
		)
	}
}

// SeedResult reports the outcome of a seed request.
type SeedResult struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// Seed statuses.
const (
	SeedStatusUnavailable = "db_unavailable"
	SeedStatusExists      = "exists"
	SeedStatusSeeded      = "seeded"
)

// SeedCatalog inserts the mock catalog into an empty product collection.
// It is idempotent: a non-empty collection is left untouched.
func (s *CatalogService) SeedCatalog(ctx context.Context) (*SeedResult, error) {
	count, err := s.store.Count(ctx, productCollection)
	if err != nil {
		if errors.Is(err, store.ErrUnavailable) {
			return &SeedResult{Status: SeedStatusUnavailable}, nil
		}
		return nil, fmt.Errorf("count products: %w", err)
	}
	if count > 0 {
		return &SeedResult{Status: SeedStatusExists, Count: count}, nil
	}

	catalog := domain.MockCatalog()
	for i := range catalog {
		catalog[i].ID = primitive.NilObjectID
		if _, err := s.store.Insert(ctx, productCollection, &catalog[i]); err != nil {
			return nil, fmt.Errorf("seed product %q: %w", catalog[i].Title, err)
		}
	}

	s.logger.InfoContext(ctx, "catalog seeded", slog.Int("count", len(catalog)))
	return &SeedResult{Status: SeedStatusSeeded, Count: int64(len(catalog))}, nil
}

// Diagnostics is the report returned by the connectivity probe.
type Diagnostics struct {
	Status      string   `json:"status"`
	Database    string   `json:"database"`
	Collections []string `json:"collections,omitempty"`
	Error       string   `json:"error,omitempty"`
}

// Database states reported by Diagnose.
const (
	DatabaseConnected   = "connected"
	DatabaseUnavailable = "unavailable"
	DatabaseError       = "error"
)

// Diagnose probes store connectivity. It always returns a report, never an
// error: failures are folded into the report with truncated error text.
func (s *CatalogService) Diagnose(ctx context.Context) *Diagnostics {
	report := &Diagnostics{Status: "ok"}

	if err := s.store.Ping(ctx); err != nil {
		if errors.Is(err, store.ErrUnavailable) {
			report.Database = DatabaseUnavailable
		} else {
			report.Database = DatabaseError
			report.Error = truncate(err.Error(), maxDiagnosticErrorLen)
		}
		return report
	}

	report.Database = DatabaseConnected

	names, err := s.store.Collections(ctx)
	if err != nil {
		report.Database = DatabaseError
		report.Error = truncate(err.Error(), maxDiagnosticErrorLen)
		return report
	}
	if len(names) > maxDiagnosticCollections {
		names = names[:maxDiagnosticCollections]
	}
	report.Collections = names

	return report
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
