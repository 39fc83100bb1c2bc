package church

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"prayer-circle/domain/notification"
	"prayer-circle/pkg/apperrors"
	"prayer-circle/pkg/logger"

	"github.com/labstack/echo/v4"
)

// EventRecorder is the slice of the notification service the church handlers
// need for membership events.
type EventRecorder interface {
	Record(ctx context.Context, kind notification.Kind, title, message string, meta map[string]any) (notification.Event, error)
}

// Handler exposes the church directory and membership operations.
type Handler struct {
	store  Store
	events EventRecorder
	log    logger.Logger
}

// NewHandler wires the church handlers. events may be nil.
func NewHandler(store Store, events EventRecorder) *Handler {
	return &Handler{store: store, events: events, log: logger.Get().WithComponent("church")}
}

// SubmitHandler proposes a new church listing; it stays pending until an
// operator approves it.
func (h *Handler) SubmitHandler(c echo.Context) error {
	req := new(SubmitRequest)
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

	var createdBy *int64
	if id, ok := c.Get("user_id").(int64); ok {
		createdBy = &id
	}

	created, err := h.store.Create(c.Request().Context(), Church{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Address:     req.Address,
		City:        req.City,
		Website:     req.Website,
		Status:      StatusPending,
		CreatedBy:   createdBy,
	})
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError, "Internal server error.", err,
		))
	}

	h.log.Info("Church submitted", logger.ChurchID(created.ID))
	return apperrors.RespondWithCreated(c, created)
}

// ListHandler returns approved churches by default. Pass ?status= to list
// another review state; only admins see non-approved listings.
func (h *Handler) ListHandler(c echo.Context) error {
	status := StatusApproved
	if v := c.QueryParam("status"); v != "" {
		role, _ := c.Get("role").(string)
		if role != "admin" {
			return apperrors.RespondWithError(c, apperrors.NewForbidden(
				apperrors.ErrCodeForbidden, "Not authorized.",
			))
		}
		status = Status(v)
	}

	churches, err := h.store.List(c.Request().Context(), status)
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError, "Internal server error.", err,
		))
	}
	return apperrors.RespondWithSuccess(c, churches)
}

// GetHandler returns a single church.
func (h *Handler) GetHandler(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidInput, "Invalid church id.",
		))
	}

	church, err := h.store.GetByID(c.Request().Context(), id)
	if errors.Is(err, ErrNotFound) {
		return apperrors.RespondWithError(c, apperrors.NewNotFound(
			apperrors.ErrCodeChurchNotFound, "Church not found.",
		))
	}
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError, "Internal server error.", err,
		))
	}
	return apperrors.RespondWithSuccess(c, church)
}

// ReviewHandler is the operator decision on a pending listing.
func (h *Handler) ReviewHandler(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidInput, "Invalid church id.",
		))
	}

	req := new(ReviewRequest)
	if err := c.Bind(req); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidInput, "Invalid request payload.",
		))
	}
	if req.Status != StatusApproved && req.Status != StatusRejected {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed, "Status must be approved or rejected.",
		))
	}

	updated, err := h.store.UpdateStatus(c.Request().Context(), id, req.Status)
	if errors.Is(err, ErrNotFound) {
		return apperrors.RespondWithError(c, apperrors.NewNotFound(
			apperrors.ErrCodeChurchNotFound, "Church not found.",
		))
	}
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError, "Internal server error.", err,
		))
	}

	h.log.Info("Church reviewed", logger.ChurchID(updated.ID), logger.String("status", string(updated.Status)))
	return apperrors.RespondWithSuccess(c, updated)
}

// JoinHandler adds the caller to a church as an unverified member.
func (h *Handler) JoinHandler(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidInput, "Invalid church id.",
		))
	}
	userID, _ := c.Get("user_id").(int64)

	church, err := h.store.GetByID(c.Request().Context(), id)
	if errors.Is(err, ErrNotFound) {
		return apperrors.RespondWithError(c, apperrors.NewNotFound(
			apperrors.ErrCodeChurchNotFound, "Church not found.",
		))
	}
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError, "Internal server error.", err,
		))
	}
	if church.Status != StatusApproved {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed, "Church is not approved.",
		))
	}

	member, err := h.store.AddMember(c.Request().Context(), Member{ChurchID: id, UserID: userID})
	if errors.Is(err, ErrAlreadyMember) {
		return apperrors.RespondWithError(c, apperrors.NewConflict(
			apperrors.ErrCodeResourceExists, "Already a member of this church.",
		))
	}
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError, "Internal server error.", err,
		))
	}

	h.recordMembershipEvent(c.Request().Context(), church, member, "joined")
	return apperrors.RespondWithCreated(c, member)
}

// MembersHandler lists a church's members, oldest first.
func (h *Handler) MembersHandler(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidInput, "Invalid church id.",
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

// VerifyMemberHandler marks a membership as verified.
func (h *Handler) VerifyMemberHandler(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidInput, "Invalid church id.",
		))
	}
	userID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidInput, "Invalid user id.",
		))
	}

	member, err := h.store.VerifyMember(c.Request().Context(), id, userID)
	if errors.Is(err, ErrNotFound) {
		return apperrors.RespondWithError(c, apperrors.NewNotFound(
			apperrors.ErrCodeUserNotFound, "Membership not found.",
		))
	}
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError, "Internal server error.", err,
		))
	}

	church, err := h.store.GetByID(c.Request().Context(), id)
	if err == nil {
		h.recordMembershipEvent(c.Request().Context(), church, member, "was verified in")
	}
	return apperrors.RespondWithSuccess(c, member)
}

// recordMembershipEvent appends a membership-changed event, logging instead
// of failing when the emitter is unavailable.
func (h *Handler) recordMembershipEvent(ctx context.Context, church Church, member Member, verb string) {
	if h.events == nil {
		return
	}
	_, err := h.events.Record(ctx, notification.KindMembershipChanged,
		"Church membership changed",
		fmt.Sprintf("User %d %s %q.", member.UserID, verb, church.Name),
		map[string]any{
			"church_id": church.ID,
			"user_id":   member.UserID,
			"verified":  member.Verified,
		},
	)
	if err != nil {
		h.log.Warn("Failed to record membership event", logger.Err(err), logger.ChurchID(church.ID))
	}
}
