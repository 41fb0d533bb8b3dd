package admin

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/inventory-saas-codexia/petmark-inventory/internal/modules/auth"
)

// Handler exposes the admin panel endpoints. Route-level role guards
// are applied by the caller when mounting.
type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/api/admin/users", h.listUsers)
	router.Post("/api/admin/create-user", h.createUser)
	router.Post("/api/admin/users", h.dispatchAction)
	router.Patch("/api/admin/users", h.patchProfile)
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	caller := auth.ProfileFromContext(r.Context())
	if caller == nil {
		http.Error(w, auth.ErrNotAuthenticated.Error(), http.StatusUnauthorized)
		return
	}

	// orgId is accepted for compatibility but the caller can only ever
	// list their own organization.
	orgID := r.URL.Query().Get("orgId")
	if orgID != "" && orgID != caller.OrganizationID.String() {
		http.Error(w, auth.ErrForbidden.Error(), http.StatusForbidden)
		return
	}

	rows, err := h.service.ListAccounts(r.Context(), caller.OrganizationID.String())
	if err != nil {
		h.logger.Error("list accounts failed", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{"users": rows})
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	caller := auth.ProfileFromContext(r.Context())
	if caller == nil {
		http.Error(w, auth.ErrNotAuthenticated.Error(), http.StatusUnauthorized)
		return
	}

	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	row, err := h.service.CreateAccount(r.Context(), caller, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrRoleNotAssignable):
			http.Error(w, err.Error(), http.StatusForbidden)
		case errors.Is(err, ErrStoreRequired):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			h.logger.Error("create account failed", zap.Error(err))
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	respond(w, http.StatusCreated, map[string]interface{}{"ok": true, "user_id": row.ID, "email": row.Email})
}

func (h *Handler) dispatchAction(w http.ResponseWriter, r *http.Request) {
	caller := auth.ProfileFromContext(r.Context())
	if caller == nil {
		http.Error(w, auth.ErrNotAuthenticated.Error(), http.StatusUnauthorized)
		return
	}

	var req ActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.UserID == "" {
		http.Error(w, "user_id is required", http.StatusBadRequest)
		return
	}

	var err error
	switch req.Action {
	case "toggleActive":
		if req.Disabled == nil {
			http.Error(w, "disabled is required for toggleActive", http.StatusBadRequest)
			return
		}
		err = h.service.SetAccountDisabled(r.Context(), caller, req.UserID, *req.Disabled)
	case "updateProfile":
		if req.Role == nil {
			http.Error(w, "role is required for updateProfile", http.StatusBadRequest)
			return
		}
		err = h.service.UpdateAccountProfile(r.Context(), caller, req.UserID, *req.Role, req.StoreID)
	case "resetPassword":
		if req.NewPassword == nil || *req.NewPassword == "" {
			http.Error(w, "new_password is required for resetPassword", http.StatusBadRequest)
			return
		}
		err = h.service.ResetPassword(r.Context(), caller, req.UserID, *req.NewPassword)
	case "deleteUser":
		err = h.service.DeleteAccount(r.Context(), caller, req.UserID)
	default:
		http.Error(w, "unknown action", http.StatusBadRequest)
		return
	}

	if err != nil {
		switch {
		case errors.Is(err, ErrRoleNotAssignable), errors.Is(err, ErrTargetForbidden):
			http.Error(w, err.Error(), http.StatusForbidden)
		case errors.Is(err, ErrUserNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		default:
			h.logger.Error("admin action failed",
				zap.String("action", req.Action),
				zap.String("user_id", req.UserID),
				zap.Error(err))
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	respond(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handler) patchProfile(w http.ResponseWriter, r *http.Request) {
	caller := auth.ProfileFromContext(r.Context())
	if caller == nil {
		http.Error(w, auth.ErrNotAuthenticated.Error(), http.StatusUnauthorized)
		return
	}

	var req PatchProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.ID == "" {
		http.Error(w, "id is required", http.StatusBadRequest)
		return
	}

	if err := h.service.UpdateAccountProfile(r.Context(), caller, req.ID, req.Role, req.StoreID); err != nil {
		if errors.Is(err, ErrRoleNotAssignable) || errors.Is(err, ErrTargetForbidden) {
			http.Error(w, err.Error(), http.StatusForbidden)
			return
		}
		h.logger.Error("patch profile failed", zap.String("user_id", req.ID), zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respond(w, http.StatusOK, map[string]bool{"ok": true})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
