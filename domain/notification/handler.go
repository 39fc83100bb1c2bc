package notification

import (
	"strconv"

	"prayer-circle/pkg/apperrors"

	"github.com/labstack/echo/v4"
)

// Handler exposes the operator-facing activity feed.
type Handler struct {
	svc *Service
}

// NewHandler creates the feed handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// ListHandler returns recent moderation events, newest first.
func (h *Handler) ListHandler(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	events, err := h.svc.List(c.Request().Context(), limit)
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	return apperrors.RespondWithSuccess(c, events)
}
