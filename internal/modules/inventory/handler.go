package inventory

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/inventory-saas-codexia/petmark-inventory/internal/modules/auth"
)

// Handler exposes inventory HTTP endpoints.
type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Route("/api/v1/inventory", func(r chi.Router) {
		r.Post("/batches", h.intake)
		r.Get("/batches", h.listBatches)
		r.Get("/kpi", h.kpi)
		r.Get("/export", h.exportCSV)
	})
}

func (h *Handler) intake(w http.ResponseWriter, r *http.Request) {
	caller := auth.ProfileFromContext(r.Context())
	if caller == nil {
		http.Error(w, auth.ErrNotAuthenticated.Error(), http.StatusUnauthorized)
		return
	}

	var req IntakeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	b, err := h.service.Intake(r.Context(), caller, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrStoreDenied):
			http.Error(w, err.Error(), http.StatusForbidden)
		case errors.Is(err, ErrNoStore):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			h.logger.Error("batch intake failed", zap.Error(err))
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(b)
}

func (h *Handler) listBatches(w http.ResponseWriter, r *http.Request) {
	caller := auth.ProfileFromContext(r.Context())
	if caller == nil {
		http.Error(w, auth.ErrNotAuthenticated.Error(), http.StatusUnauthorized)
		return
	}

	items, err := h.fetchItems(w, r)
	if err != nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(items)
}

func (h *Handler) kpi(w http.ResponseWriter, r *http.Request) {
	caller := auth.ProfileFromContext(r.Context())
	if caller == nil {
		http.Error(w, auth.ErrNotAuthenticated.Error(), http.StatusUnauthorized)
		return
	}

	kpi, err := h.service.Kpi(r.Context(), caller, queryParam(r, "areaId"), queryParam(r, "storeId"))
	if err != nil {
		h.logger.Error("kpi aggregation failed", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(kpi)
}

func (h *Handler) exportCSV(w http.ResponseWriter, r *http.Request) {
	caller := auth.ProfileFromContext(r.Context())
	if caller == nil {
		http.Error(w, auth.ErrNotAuthenticated.Error(), http.StatusUnauthorized)
		return
	}

	items, err := h.fetchItems(w, r)
	if err != nil {
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="expiry-export.csv"`)
	if err := WriteExportCSV(w, items); err != nil {
		h.logger.Error("csv export failed", zap.Error(err))
	}
}

// fetchItems runs the scoped listing shared by the JSON view and the
// CSV export, writing the error response itself when the fetch fails.
func (h *Handler) fetchItems(w http.ResponseWriter, r *http.Request) ([]*Item, error) {
	caller := auth.ProfileFromContext(r.Context())

	items, err := h.service.ListInventory(r.Context(), caller, queryParam(r, "storeId"))
	if err != nil {
		if errors.Is(err, ErrStoreDenied) {
			http.Error(w, err.Error(), http.StatusForbidden)
		} else {
			h.logger.Error("list inventory failed", zap.Error(err))
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return nil, err
	}
	if items == nil {
		items = []*Item{}
	}
	return items, nil
}

func queryParam(r *http.Request, name string) *string {
	value := r.URL.Query().Get(name)
	if value == "" {
		return nil
	}
	return &value
}
