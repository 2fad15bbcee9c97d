package http

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/petdailykit/catalog/internal/domain"
	"github.com/petdailykit/catalog/internal/service"
	"github.com/petdailykit/catalog/pkg/httputil"
)

// CatalogHandler serves the aggregated product views. Both endpoints run
// the same aggregation; they differ only in the response field names.
type CatalogHandler struct {
	service *service.CatalogService
	logger  *slog.Logger
}

// NewCatalogHandler creates a new catalog HTTP handler.
func NewCatalogHandler(svc *service.CatalogService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: svc,
		logger:  logger,
	}
}

// detailsResponse is the renamed-field shape of the aggregated view served
// by GET /api/shop/{id}/details.
type detailsResponse struct {
	Title            string                `json:"title"`
	MinPrice         *float64              `json:"minPrice"`
	MaxPrice         *float64              `json:"maxPrice"`
	SKU              string                `json:"sku"`
	ShortDescription string                `json:"shortDescription"`
	LongDescription  string                `json:"longDescription"`
	Category         int64                 `json:"category"`
	Subcategory      int64                 `json:"subcategory"`
	MainImage        *string               `json:"mainImage"`
	GalleryImages    []string              `json:"galleryImages"`
	Sizes            []domain.SizeVariants `json:"sizes"`
}

func toDetailsResponse(agg *domain.ProductAggregate) detailsResponse {
	return detailsResponse{
		Title:            agg.Title,
		MinPrice:         agg.PriceMin,
		MaxPrice:         agg.PriceMax,
		SKU:              agg.SKU,
		ShortDescription: agg.ShortDescription,
		LongDescription:  agg.LongDescription,
		Category:         agg.CategoryID,
		Subcategory:      agg.SubcategoryID,
		MainImage:        agg.MainImage,
		GalleryImages:    agg.GalleryImages,
		Sizes:            agg.Sizes,
	}
}

// GetAggregateByTitle handles GET /api/shop/title/{title}. The aggregate is
// returned as-is: product columns at the top level plus price range, images,
// and nested sizes.
func (h *CatalogHandler) GetAggregateByTitle(w http.ResponseWriter, r *http.Request) {
	title, err := url.PathUnescape(chi.URLParam(r, "title"))
	if err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorBody{Error: "invalid product title"})
		return
	}
	if title == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorBody{Error: "product title is required"})
		return
	}

	agg, err := h.service.GetAggregateByTitle(r.Context(), title)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, agg)
}

// GetProductDetails handles GET /api/shop/{id}/details, the renamed-field
// variant of the aggregated view.
func (h *CatalogHandler) GetProductDetails(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	agg, err := h.service.GetAggregateByID(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toDetailsResponse(agg))
}
