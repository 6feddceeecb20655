package catalog

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/blackroad/product-catalog/internal/platform/httpx"
)

// Handler exposes the catalog as a local JSON API.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler builds a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service}
}

// Routes mounts the catalog endpoints.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/api/products", h.List)
	r.Post("/api/products", h.Add)
	r.Get("/api/products/search", h.Search)
	r.Post("/api/products/{sku}/inventory", h.AdjustInventory)
	r.Get("/api/stats", h.Stats)
	r.Get("/api/export.csv", h.ExportCSV)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filter := ListFilter{
		Category:        r.URL.Query().Get("category"),
		IncludeInactive: r.URL.Query().Get("include_inactive") == "true",
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			httpx.Problem(w, http.StatusBadRequest, "Invalid Limit", "limit must be a positive integer")
			return
		}
		filter.Limit = limit
	}

	products, err := h.service.List(r.Context(), filter)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"products": products})
}

func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	var input AddInput
	if err := httpx.DecodeJSON(r, &input); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", "request body must be JSON")
		return
	}

	product, err := h.service.Add(r.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, ErrDuplicateSKU):
			httpx.Problem(w, http.StatusConflict, "Duplicate SKU", err.Error())
		case isValidationError(err):
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		default:
			h.serverError(w, r, err)
		}
		return
	}
	httpx.JSON(w, http.StatusCreated, product)
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"products": products})
}

func (h *Handler) AdjustInventory(w http.ResponseWriter, r *http.Request) {
	sku := chi.URLParam(r, "sku")

	var body struct {
		Delta int64 `json:"delta"`
	}
	if err := httpx.DecodeJSON(r, &body); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", "request body must be JSON")
		return
	}

	product, err := h.service.AdjustInventory(r.Context(), sku, body.Delta)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	if product == nil {
		httpx.Problem(w, http.StatusNotFound, "Not Found", "sku not found")
		return
	}
	httpx.JSON(w, http.StatusOK, product)
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, stats)
}

func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	content, err := h.service.ExportCSV(r.Context(), "")
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	filename := fmt.Sprintf("product-catalog-%s.csv", uuid.NewString())
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	_, _ = w.Write([]byte(content))
}

func (h *Handler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("catalog request failed",
		slog.String("path", r.URL.Path),
		slog.Any("error", err))
	httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
}

func isValidationError(err error) bool {
	var verrs validator.ValidationErrors
	return errors.As(err, &verrs)
}
