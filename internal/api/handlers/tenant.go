package handlers

import (
	"errors"
	"net/http"

	"github.com/Harshitk-cp/notely/internal/api/middleware"
	"github.com/Harshitk-cp/notely/internal/domain"
	"github.com/Harshitk-cp/notely/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TenantHandler struct {
	svc    *service.TenantService
	logger *zap.Logger
}

func NewTenantHandler(svc *service.TenantService, logger *zap.Logger) *TenantHandler {
	return &TenantHandler{svc: svc, logger: logger}
}

type tenantInfoResponse struct {
	Slug string      `json:"slug"`
	Plan domain.Plan `json:"plan"`
}

type inviteRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

type inviteResponse struct {
	User              userSummary `json:"user"`
	TemporaryPassword string      `json:"temporaryPassword"`
}

type changeRoleRequest struct {
	Role string `json:"role"`
}

type roleChangedUser struct {
	ID    uuid.UUID   `json:"id"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

type upgradedTenant struct {
	ID   uuid.UUID   `json:"id"`
	Slug string      `json:"slug"`
	Plan domain.Plan `json:"plan"`
}

func (h *TenantHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	tenant, err := h.svc.GetInfo(r.Context(), p, chi.URLParam(r, "slug"))
	if err != nil {
		h.writeTenantError(w, "get tenant", err)
		return
	}

	writeJSON(w, http.StatusOK, tenantInfoResponse{Slug: tenant.Slug, Plan: tenant.Plan})
}

func (h *TenantHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	users, err := h.svc.ListUsers(r.Context(), p, chi.URLParam(r, "slug"))
	if err != nil {
		h.writeTenantError(w, "list users", err)
		return
	}

	out := make([]userSummary, 0, len(users))
	for i := range users {
		out = append(out, summarizeUser(&users[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *TenantHandler) Invite(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req inviteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	res, err := h.svc.InviteUser(r.Context(), p, chi.URLParam(r, "slug"), req.Email, req.Role)
	if err != nil {
		h.writeTenantError(w, "invite user", err)
		return
	}

	writeJSON(w, http.StatusCreated, inviteResponse{
		User:              summarizeUser(res.User),
		TemporaryPassword: res.TemporaryPassword,
	})
}

func (h *TenantHandler) ChangeRole(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req changeRoleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.svc.ChangeUserRole(r.Context(), p, chi.URLParam(r, "slug"), chi.URLParam(r, "userId"), req.Role)
	if err != nil {
		h.writeTenantError(w, "change role", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]roleChangedUser{
		"user": {ID: user.ID, Email: user.Email, Role: user.Role},
	})
}

func (h *TenantHandler) RemoveUser(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.svc.RemoveUser(r.Context(), p, chi.URLParam(r, "slug"), chi.URLParam(r, "userId")); err != nil {
		h.writeTenantError(w, "remove user", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *TenantHandler) Upgrade(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	tenant, err := h.svc.UpgradePlan(r.Context(), p, chi.URLParam(r, "slug"))
	if err != nil {
		h.writeTenantError(w, "upgrade plan", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]upgradedTenant{
		"tenant": {ID: tenant.ID, Slug: tenant.Slug, Plan: tenant.Plan},
	})
}

func (h *TenantHandler) writeTenantError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, service.ErrEmailRequired),
		errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrSelfDeletion),
		errors.Is(err, service.ErrAlreadyOnPlan):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrForbidden):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrTenantNotFound),
		errors.Is(err, service.ErrUserNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrUserExists):
		writeError(w, http.StatusConflict, err.Error())
	default:
		h.logger.Error(op+" failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to "+op)
	}
}
