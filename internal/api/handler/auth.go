package handler

import (
	"errors"
	"log/slog"
	"net/http"

	mw "github.com/iconidentify/blogsmith/internal/api/middleware"
	"github.com/iconidentify/blogsmith/internal/domain"
	"github.com/iconidentify/blogsmith/internal/service"
	"github.com/iconidentify/blogsmith/internal/validator"
)

// AuthHandler handles registration, login and profile requests.
type AuthHandler struct {
	svc      *service.AuthService
	validate *validator.Validator
	logger   *slog.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(svc *service.AuthService, validate *validator.Validator, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		svc:      svc,
		validate: validate,
		logger:   logger,
	}
}

// UserResponse wraps a user.
type UserResponse struct {
	User *domain.User `json:"user"`
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validate.ValidateRegister(&req); err != nil {
		writeError(w, http.StatusBadRequest, validator.Message(err))
		return
	}

	res, err := h.svc.Register(r.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		h.logger.Error("register failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Server error during registration")
		return
	}

	writeJSON(w, http.StatusCreated, res)
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validate.ValidateLogin(&req); err != nil {
		writeError(w, http.StatusBadRequest, validator.Message(err))
		return
	}

	res, err := h.svc.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		h.logger.Error("login failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Server error during login")
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, _ := mw.UserIDFromContext(r.Context())

	user, err := h.svc.Me(r.Context(), userID)
	if err != nil {
		h.writeUserError(w, err, "get profile")
		return
	}

	writeJSON(w, http.StatusOK, UserResponse{User: user})
}

// UpdateProfile handles PUT /api/auth/profile
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, _ := mw.UserIDFromContext(r.Context())

	var req domain.ProfileUpdate
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.validate.ValidateProfileUpdate(&req); err != nil {
		writeError(w, http.StatusBadRequest, validator.Message(err))
		return
	}

	user, err := h.svc.UpdateProfile(r.Context(), userID, req)
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			writeError(w, http.StatusConflict, "Email is already in use")
			return
		}
		h.writeUserError(w, err, "update profile")
		return
	}

	writeJSON(w, http.StatusOK, UserResponse{User: user})
}

func (h *AuthHandler) writeUserError(w http.ResponseWriter, err error, op string) {
	if errors.Is(err, domain.ErrUserNotFound) {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}
	h.logger.Error(op+" failed", "error", err)
	writeError(w, http.StatusInternalServerError, "Server error")
}
