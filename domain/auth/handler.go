package auth

import (
	"errors"
	"net/mail"
	"strings"

	"prayer-circle/pkg/apperrors"
	"prayer-circle/pkg/logger"
	"prayer-circle/utils"

	"github.com/labstack/echo/v4"
)

// Handler exposes register/login/me over HTTP.
type Handler struct {
	store Store
	log   logger.Logger
}

// NewHandler wires the auth handlers.
func NewHandler(store Store) *Handler {
	return &Handler{store: store, log: logger.Get().WithComponent("auth")}
}

// RegisterHandler creates an account and returns a signed token.
func (h *Handler) RegisterHandler(c echo.Context) error {
	req := new(RegisterRequest)
	if err := c.Bind(req); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidInput, "Invalid request payload.",
		))
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed, "Invalid email address.",
		))
	}
	if len(req.Password) < 8 {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed, "Password must be at least 8 characters.",
		))
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeUnexpectedError, "Internal server error.", err,
		))
	}

	user, err := h.store.Create(c.Request().Context(), User{
		Email:        req.Email,
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: hash,
	})
	if errors.Is(err, ErrEmailTaken) {
		return apperrors.RespondWithError(c, apperrors.NewConflict(
			apperrors.ErrCodeResourceExists, "Email already registered.",
		))
	}
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError, "Internal server error.", err,
		))
	}

	token, err := utils.GenerateJWT(user.ID, user.Email, user.Role)
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeUnexpectedError, "Internal server error.", err,
		))
	}

	h.log.Info("User registered", logger.UserID(user.ID))
	return apperrors.RespondWithCreated(c, LoginResponse{Token: token, User: user})
}

// LoginHandler exchanges credentials for a token. Unknown emails and wrong
// passwords produce the same response.
func (h *Handler) LoginHandler(c echo.Context) error {
	req := new(LoginRequest)
	if err := c.Bind(req); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidInput, "Invalid request payload.",
		))
	}

	user, err := h.store.GetByEmail(c.Request().Context(), strings.TrimSpace(strings.ToLower(req.Email)))
	if errors.Is(err, ErrNotFound) || (err == nil && !utils.CheckPasswordHash(req.Password, user.PasswordHash)) {
		return apperrors.RespondWithError(c, apperrors.NewUnauthorized(
			apperrors.ErrCodeInvalidCredentials, "Invalid email or password.",
		))
	}
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError, "Internal server error.", err,
		))
	}

	token, err := utils.GenerateJWT(user.ID, user.Email, user.Role)
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeUnexpectedError, "Internal server error.", err,
		))
	}

	h.log.Info("User logged in", logger.UserID(user.ID))
	return apperrors.RespondWithSuccess(c, LoginResponse{Token: token, User: user})
}

// MeHandler returns the authenticated account.
func (h *Handler) MeHandler(c echo.Context) error {
	userID, _ := c.Get("user_id").(int64)

	user, err := h.store.GetByID(c.Request().Context(), userID)
	if errors.Is(err, ErrNotFound) {
		return apperrors.RespondWithError(c, apperrors.NewNotFound(
			apperrors.ErrCodeUserNotFound, "User not found.",
		))
	}
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError, "Internal server error.", err,
		))
	}
	return apperrors.RespondWithSuccess(c, user)
}
