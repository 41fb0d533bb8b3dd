package catalog

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/inventory-saas-codexia/petmark-inventory/internal/modules/auth"
)

// maxImportSize bounds the uploaded CSV at 10 MiB.
const maxImportSize = 10 << 20

// Handler exposes catalog and import HTTP endpoints.
type Handler struct {
	service  Service
	importer *ImportService
	logger   *zap.Logger
}

func NewHandler(service Service, importer *ImportService, logger *zap.Logger) *Handler {
	return &Handler{service: service, importer: importer, logger: logger}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Route("/api/v1/catalog", func(r chi.Router) {
		r.Get("/products", h.listProducts)
		r.Get("/products/{sku}", h.getProduct)
		r.Post("/products", h.saveProduct)
	})
}

// RegisterImportRoutes mounts the CSV import endpoint. Kept separate
// so the caller can put it behind the admin role guard.
func (h *Handler) RegisterImportRoutes(router chi.Router) {
	router.Post("/api/import-products", h.importProducts)
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	caller := auth.ProfileFromContext(r.Context())
	if caller == nil {
		http.Error(w, auth.ErrNotAuthenticated.Error(), http.StatusUnauthorized)
		return
	}

	products, err := h.service.ListProducts(r.Context(), caller.OrganizationID.String())
	if err != nil {
		h.logger.Error("list products failed", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if products == nil {
		products = []*Product{}
	}
	respond(w, http.StatusOK, products)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	caller := auth.ProfileFromContext(r.Context())
	if caller == nil {
		http.Error(w, auth.ErrNotAuthenticated.Error(), http.StatusUnauthorized)
		return
	}

	sku := chi.URLParam(r, "sku")
	p, err := h.service.GetProduct(r.Context(), caller.OrganizationID.String(), sku)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	respond(w, http.StatusOK, p)
}

func (h *Handler) saveProduct(w http.ResponseWriter, r *http.Request) {
	caller := auth.ProfileFromContext(r.Context())
	if caller == nil {
		http.Error(w, auth.ErrNotAuthenticated.Error(), http.StatusUnauthorized)
		return
	}

	var req SaveProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	req.OrganizationID = caller.OrganizationID.String()

	p, err := h.service.SaveProduct(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrProductInvalid) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.logger.Error("save product failed", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respond(w, http.StatusCreated, p)
}

// importProducts accepts a multipart form with a `file` CSV and an
// `organization_id` field and answers with the import report. The form
// organization must be the caller's own; the import always writes into
// the caller's catalog.
func (h *Handler) importProducts(w http.ResponseWriter, r *http.Request) {
	caller := auth.ProfileFromContext(r.Context())
	if caller == nil {
		http.Error(w, auth.ErrNotAuthenticated.Error(), http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		http.Error(w, "multipart form required (file, organization_id)", http.StatusBadRequest)
		return
	}

	orgID := caller.OrganizationID.String()
	if formOrg := r.FormValue("organization_id"); formOrg != "" && formOrg != orgID {
		http.Error(w, auth.ErrForbidden.Error(), http.StatusForbidden)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "CSV file is required (field name: file)", http.StatusBadRequest)
		return
	}
	defer file.Close()

	report, err := h.importer.ImportCatalog(r.Context(), orgID, file)

	type response struct {
		OK        bool         `json:"ok"`
		Processed int          `json:"processed"`
		Skipped   int          `json:"skipped"`
		Errors    []SkippedRow `json:"errors"`
		Detail    string       `json:"detail,omitempty"`
	}

	resp := response{OK: err == nil}
	if report != nil {
		resp.Processed = report.Processed
		resp.Skipped = len(report.Skipped)
		resp.Errors = report.Skipped
	}
	if resp.Errors == nil {
		resp.Errors = []SkippedRow{}
	}

	switch {
	case err == nil:
		respond(w, http.StatusOK, resp)
	case errors.Is(err, ErrEmptyImport), errors.Is(err, ErrMalformedCSV):
		resp.Detail = err.Error()
		respond(w, http.StatusBadRequest, resp)
	default:
		// Storage failure, possibly after some batches were applied.
		h.logger.Error("catalog import failed",
			zap.String("organization_id", orgID),
			zap.Int("processed", resp.Processed),
			zap.Error(err))
		resp.Detail = err.Error()
		respond(w, http.StatusInternalServerError, resp)
	}
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
