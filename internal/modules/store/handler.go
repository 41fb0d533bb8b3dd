package store

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/inventory-saas-codexia/petmark-inventory/internal/modules/auth"
)

// Handler exposes store and area read endpoints.
type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/api/v1/stores", h.listStores)
	router.Get("/api/v1/areas", h.listAreas)
	router.Get("/api/v1/names", h.lookupNames)
}

func (h *Handler) listStores(w http.ResponseWriter, r *http.Request) {
	caller := auth.ProfileFromContext(r.Context())
	if caller == nil {
		http.Error(w, auth.ErrNotAuthenticated.Error(), http.StatusUnauthorized)
		return
	}

	stores, err := h.service.ListStores(r.Context(), caller)
	if err != nil {
		h.logger.Error("list stores failed", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if stores == nil {
		stores = []*Info{}
	}
	respond(w, http.StatusOK, stores)
}

func (h *Handler) listAreas(w http.ResponseWriter, r *http.Request) {
	caller := auth.ProfileFromContext(r.Context())
	if caller == nil {
		http.Error(w, auth.ErrNotAuthenticated.Error(), http.StatusUnauthorized)
		return
	}

	areas, err := h.service.ListAreas(r.Context(), caller.OrganizationID.String())
	if err != nil {
		h.logger.Error("list areas failed", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if areas == nil {
		areas = []*Area{}
	}
	respond(w, http.StatusOK, areas)
}

func (h *Handler) lookupNames(w http.ResponseWriter, r *http.Request) {
	caller := auth.ProfileFromContext(r.Context())
	if caller == nil {
		http.Error(w, auth.ErrNotAuthenticated.Error(), http.StatusUnauthorized)
		return
	}

	var storeID, areaID *string
	if caller.StoreID != nil {
		id := caller.StoreID.String()
		storeID = &id
	}
	if caller.AreaID != nil {
		id := caller.AreaID.String()
		areaID = &id
	}

	names, err := h.service.LookupNames(r.Context(), caller.OrganizationID.String(), storeID, areaID)
	if err != nil {
		h.logger.Error("name lookup failed", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respond(w, http.StatusOK, names)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
