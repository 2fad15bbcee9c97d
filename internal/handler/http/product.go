// Package http exposes the catalog over HTTP. Handlers decode and validate
// requests, call the service, and shape responses; no business logic lives
// here.
package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/petdailykit/catalog/internal/domain"
	"github.com/petdailykit/catalog/internal/service"
	"github.com/petdailykit/catalog/pkg/httputil"
	"github.com/petdailykit/catalog/pkg/validator"
)

// ProductHandler handles HTTP requests for product CRUD endpoints.
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

// --- Request DTOs ---

// ProductRequest is the JSON request body for creating or updating a
// product. Field names follow the store's column names.
type ProductRequest struct {
	Title            string `json:"product_title" validate:"required,min=1,max=500"`
	CategoryID       int64  `json:"category_id" validate:"required,gt=0"`
	SubcategoryID    int64  `json:"subcategory_id" validate:"required,gt=0"`
	SKU              string `json:"SKU" validate:"required,min=1,max=100"`
	ShortDescription string `json:"short_description" validate:"max=1000"`
	LongDescription  string `json:"long_description"`
}

func (req *ProductRequest) toDomain() *domain.Product {
	return &domain.Product{
		Title:            req.Title,
		CategoryID:       req.CategoryID,
		SubcategoryID:    req.SubcategoryID,
		SKU:              req.SKU,
		ShortDescription: req.ShortDescription,
		LongDescription:  req.LongDescription,
	}
}

// --- Handlers ---

// ListProducts handles GET /shop. The response is a bare JSON array,
// newest product first.
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.List(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, products)
}

// GetProduct handles GET /shop/{id}. An unknown id is a 404.
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	product, err := h.service.Get(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, product)
}

// CreateProduct handles POST /shop and responds 201 with the new id.
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorBody{Error: "invalid request body"})
		return
	}
	if err := validator.Validate(&req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	product := req.toDomain()
	if err := h.service.Create(r.Context(), product); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, map[string]int64{"id": product.ID})
}

// UpdateProduct handles PUT /shop/{id} and responds with the updated product.
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorBody{Error: "invalid request body"})
		return
	}
	if err := validator.Validate(&req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	product := req.toDomain()
	product.ID = id
	if err := h.service.Update(r.Context(), product); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, product)
}

// DeleteProduct handles DELETE /shop/{id} and responds 204 on success.
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
