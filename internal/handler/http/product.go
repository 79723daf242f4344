package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ayurbloom/catalog-service/internal/service"
	"github.com/ayurbloom/catalog-service/pkg/httputil"
	"github.com/ayurbloom/catalog-service/pkg/validator"
)

// ProductHandler handles HTTP requests for product endpoints.
type ProductHandler struct {
	service *service.CatalogService
	logger  *slog.Logger
}

// NewProductHandler creates a new product HTTP handler.
func NewProductHandler(svc *service.CatalogService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service: svc,
		logger:  logger,
	}
}

// ProductRequest is the JSON request body for creating or replacing a
// product. Pointer fields fall back to server-side defaults when omitted.
type ProductRequest struct {
	Title        string   `json:"title" validate:"required,min=1,max=500"`
	Description  string   `json:"description"`
	Price        float64  `json:"price" validate:"gte=0"`
	Category     string   `json:"category" validate:"required"`
	Ingredients  []string `json:"ingredients"`
	ImageURL     string   `json:"image_url" validate:"omitempty,url"`
	Gallery      []string `json:"gallery"`
	InStock      *bool    `json:"in_stock"`
	StockCount   *int     `json:"stock_count" validate:"omitempty,gte=0"`
	Rating       *float64 `json:"rating" validate:"omitempty,gte=0,lte=5"`
	ReviewsCount int      `json:"reviews_count" validate:"gte=0"`
	Popularity   int      `json:"popularity"`
	Tags         []string `json:"tags"`
}

func (req *ProductRequest) toInput() *service.ProductInput {
	return &service.ProductInput{
		Title:        req.Title,
		Description:  req.Description,
		Price:        req.Price,
		Category:     req.Category,
		Ingredients:  req.Ingredients,
		ImageURL:     req.ImageURL,
		Gallery:      req.Gallery,
		InStock:      req.InStock,
		StockCount:   req.StockCount,
		Rating:       req.Rating,
		ReviewsCount: req.ReviewsCount,
		Popularity:   req.Popularity,
		Tags:         req.Tags,
	}
}

// ListProducts handles GET /api/products. Filters combine; an unknown sort
// key silently falls back to popularity ordering.
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	params := service.ListParams{}
	query := r.URL.Query()

	params.Query = query.Get("q")
	params.Category = query.Get("category")
	params.Ingredient = query.Get("ingredient")
	params.Sort = query.Get("sort")

	if v := query.Get("min_price"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil || price < 0 {
			httputil.WriteInvalidParameter(w, "min_price must be a number greater than or equal to 0")
			return
		}
		params.MinPrice = &price
	}
	if v := query.Get("max_price"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil || price < 0 {
			httputil.WriteInvalidParameter(w, "max_price must be a number greater than or equal to 0")
			return
		}
		params.MaxPrice = &price
	}
	if v := query.Get("limit"); v != "" {
		limit, err := strconv.ParseInt(v, 10, 64)
		if err != nil || limit < 1 || limit > service.MaxLimit {
			httputil.WriteInvalidParameter(w, "limit must be an integer between 1 and 100")
			return
		}
		params.Limit = limit
	}

	products, err := h.service.ListProducts(r.Context(), params)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, products)
}

// GetProduct handles GET /api/products/{id}.
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, err := h.service.GetProduct(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, product)
}

// CreateProduct handles POST /api/products. The response body is the new
// product's id as a JSON string.
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteInvalidParameter(w, "invalid JSON body")
		return
	}

	if err := validator.Validate(&req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	product, err := h.service.CreateProduct(r.Context(), req.toInput())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, product.ID.Hex())
}

// UpdateProduct handles PUT /api/products/{id}, a whole-record replace.
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteInvalidParameter(w, "invalid JSON body")
		return
	}

	if err := validator.Validate(&req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	if err := h.service.UpdateProduct(r.Context(), id, req.toInput()); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// DeleteProduct handles DELETE /api/products/{id}.
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.DeleteProduct(r.Context(), id); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
