package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/Harshitk-cp/notely/internal/api/middleware"
	"github.com/Harshitk-cp/notely/internal/domain"
	"github.com/Harshitk-cp/notely/internal/service"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthHandler struct {
	svc    *service.AuthService
	logger *zap.Logger
}

func NewAuthHandler(svc *service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, logger: logger}
}

type registerRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	TenantSlug string `json:"tenantSlug"`
}

type registerResponse struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	TenantID uuid.UUID `json:"tenantId"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.svc.Register(r.Context(), service.RegisterInput{
		Email:      req.Email,
		Password:   req.Password,
		TenantSlug: req.TenantSlug,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRegisterFieldsRequired),
			errors.Is(err, service.ErrInvalidTenantSlug),
			errors.Is(err, service.ErrUserExists):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error("register failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to register user")
		}
		return
	}

	writeJSON(w, http.StatusCreated, registerResponse{
		ID:       user.ID,
		Email:    user.Email,
		TenantID: user.TenantID,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expiresAt"`
	User      *domain.User   `json:"user"`
	Tenant    *domain.Tenant `json:"tenant"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	res, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCredentialsRequired),
			errors.Is(err, service.ErrInvalidCredentials),
			errors.Is(err, service.ErrTenantNotFound):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error("login failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to log in")
		}
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Token:     res.Token,
		ExpiresAt: res.ExpiresAt,
		User:      res.User,
		Tenant:    res.Tenant,
	})
}

type meResponse struct {
	UserID     uuid.UUID   `json:"userId"`
	Role       domain.Role `json:"role"`
	TenantID   uuid.UUID   `json:"tenantId"`
	TenantSlug string      `json:"tenantSlug"`
	Plan       domain.Plan `json:"plan"`
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, tenant, err := h.svc.Me(r.Context(), p)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound),
			errors.Is(err, service.ErrTenantNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		default:
			h.logger.Error("me failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to load user")
		}
		return
	}

	writeJSON(w, http.StatusOK, meResponse{
		UserID:     user.ID,
		Role:       user.Role,
		TenantID:   user.TenantID,
		TenantSlug: tenant.Slug,
		Plan:       tenant.Plan,
	})
}
