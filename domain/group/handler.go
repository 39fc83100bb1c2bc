package group

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"prayer-circle/domain/church"
	"prayer-circle/domain/notification"
	"prayer-circle/pkg/apperrors"
	"prayer-circle/pkg/logger"

	"github.com/labstack/echo/v4"
)

// EventRecorder is the slice of the notification service the group handlers
// need for membership events.
type EventRecorder interface {
	Record(ctx context.Context, kind notification.Kind, title, message string, meta map[string]any) (notification.Event, error)
}

// Handler exposes group operations. Creating a group requires membership in
// the church it belongs to.
type Handler struct {
	store    Store
	churches church.Store
	events   EventRecorder
	log      logger.Logger
}

// NewHandler wires the group handlers. events may be nil.
func NewHandler(store Store, churches church.Store, events EventRecorder) *Handler {
	return &Handler{
		store:    store,
		churches: churches,
		events:   events,
		log:      logger.Get().WithComponent("group"),
	}
}

// CreateHandler starts a new group. The caller must be a member of the
// church.
func (h *Handler) CreateHandler(c echo.Context) error {
	req := new(CreateRequest)
	if err := c.Bind(req); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidInput, "Invalid request payload.",
		))
	}
	if strings.TrimSpace(req.Name) == "" {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed, "Name is required.",
		))
	}
	if req.ChurchID == 0 {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeMissingField, "church_id is required.",
		))
	}

	userID, _ := c.Get("user_id").(int64)
	if _, err := h.churches.GetMember(c.Request().Context(), req.ChurchID, userID); err != nil {
		if errors.Is(err, church.ErrNotFound) {
			return apperrors.RespondWithError(c, apperrors.NewForbidden(
				apperrors.ErrCodeForbidden, "Church membership required.",
			))
		}
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError, "Internal server error.", err,
		))
	}

	created, err := h.store.Create(c.Request().Context(), Group{
		ChurchID:    req.ChurchID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		CreatedBy:   &userID,
	})
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError, "Internal server error.", err,
		))
	}

	// The creator is automatically the first member.
	if _, err := h.store.AddMember(c.Request().Context(), Member{GroupID: created.ID, UserID: userID}); err != nil {
		h.log.Warn("Failed to add group creator as member", logger.Err(err), logger.GroupID(created.ID))
	}

	h.log.Info("Group created", logger.GroupID(created.ID), logger.ChurchID(created.ChurchID))
	return apperrors.RespondWithCreated(c, created)
}

// ListHandler lists a church's groups, name ascending.
func (h *Handler) ListHandler(c echo.Context) error {
	churchID, err := strconv.ParseInt(c.QueryParam("church_id"), 10, 64)
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeMissingField, "Query parameter church_id is required.",
		))
	}

	groups, err := h.store.ListByChurch(c.Request().Context(), churchID)
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError, "Internal server error.", err,
		))
	}
	return apperrors.RespondWithSuccess(c, groups)
}

// GetHandler returns a single group.
func (h *Handler) GetHandler(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidInput, "Invalid group id.",
		))
	}

	g, err := h.store.GetByID(c.Request().Context(), id)
	if errors.Is(err, ErrNotFound) {
		return apperrors.RespondWithError(c, apperrors.NewNotFound(
			apperrors.ErrCodeGroupNotFound, "Group not found.",
		))
	}
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError, "Internal server error.", err,
		))
	}
	return apperrors.RespondWithSuccess(c, g)
}

// JoinHandler adds the caller to a group.
func (h *Handler) JoinHandler(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidInput, "Invalid group id.",
		))
	}
	userID, _ := c.Get("user_id").(int64)

	g, err := h.store.GetByID(c.Request().Context(), id)
	if errors.Is(err, ErrNotFound) {
		return apperrors.RespondWithError(c, apperrors.NewNotFound(
			apperrors.ErrCodeGroupNotFound, "Group not found.",
		))
	}
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError, "Internal server error.", err,
		))
	}

	if _, err := h.churches.GetMember(c.Request().Context(), g.ChurchID, userID); err != nil {
		if errors.Is(err, church.ErrNotFound) {
			return apperrors.RespondWithError(c, apperrors.NewForbidden(
				apperrors.ErrCodeForbidden, "Church membership required.",
			))
		}
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError, "Internal server error.", err,
		))
	}

	member, err := h.store.AddMember(c.Request().Context(), Member{GroupID: id, UserID: userID})
	if errors.Is(err, ErrAlreadyMember) {
		return apperrors.RespondWithError(c, apperrors.NewConflict(
			apperrors.ErrCodeResourceExists, "Already a member of this group.",
		))
	}
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError, "Internal server error.", err,
		))
	}

	if h.events != nil {
		_, err := h.events.Record(c.Request().Context(), notification.KindMembershipChanged,
			"Group membership changed",
			fmt.Sprintf("User %d joined group %q.", userID, g.Name),
			map[string]any{
				"group_id":  g.ID,
				"church_id": g.ChurchID,
				"user_id":   userID,
			},
		)
		if err != nil {
			h.log.Warn("Failed to record membership event", logger.Err(err), logger.GroupID(g.ID))
		}
	}

	return apperrors.RespondWithCreated(c, member)
}

// MembersHandler lists a group's members, oldest first.
func (h *Handler) MembersHandler(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidInput, "Invalid group id.",
		))
	}

	members, err := h.store.ListMembers(c.Request().Context(), id)
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError, "Internal server error.", err,
		))
	}
	return apperrors.RespondWithSuccess(c, members)
}
