package prayer

import (
	"errors"
	"strconv"

	"prayer-circle/domain/church"
	"prayer-circle/pkg/apperrors"
	"prayer-circle/pkg/logger"

	"github.com/labstack/echo/v4"
)

// Handler exposes the prayer operations over HTTP.
type Handler struct {
	svc      *Service
	search   *SearchService
	insights *InsightsService
	store    Store
	churches church.Store
}

// NewHandler wires the prayer handlers.
func NewHandler(svc *Service, search *SearchService, insights *InsightsService, store Store, churches church.Store) *Handler {
	return &Handler{svc: svc, search: search, insights: insights, store: store, churches: churches}
}

// SubmitHandler accepts a prayer submission. The submitter always receives a
// successful "submitted" outcome unless input validation fails; the
// moderation outcome is an asynchronous, operator-facing concern.
func (h *Handler) SubmitHandler(c echo.Context) error {
	log := logger.Get().WithComponent("prayer")

	req := new(SubmitRequest)
	if err := c.Bind(req); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidInput,
			"Invalid request payload.",
		))
	}

	var userID *int64
	if id, ok := c.Get("user_id").(int64); ok {
		userID = &id
	}

	created, err := h.svc.Submit(c.Request().Context(), *req, userID)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			return apperrors.RespondWithError(c, apperrors.NewBadRequest(
				apperrors.ErrCodeValidationFailed,
				err.Error(),
			))
		}
		log.Error("Failed to persist prayer submission", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	log.Info("Prayer submitted", logger.PrayerID(created.ID), logger.ModerationStatus(string(created.ModerationStatus)))

	return apperrors.RespondWithCreated(c, map[string]interface{}{
		"id":      created.ID,
		"message": "Prayer request submitted.",
	})
}

// ListHandler returns approved public prayers, newest first, with optional
// church/group/status/category/urgency filters and pagination.
func (h *Handler) ListHandler(c echo.Context) error {
	filter := Filter{
		PublicOnly:       true,
		ModerationStatus: ModerationApproved,
	}

	if v := c.QueryParam("church_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return apperrors.RespondWithError(c, apperrors.NewBadRequest(
				apperrors.ErrCodeInvalidInput, "Invalid church_id.",
			))
		}
		filter.ChurchID = &id
	}
	if v := c.QueryParam("group_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return apperrors.RespondWithError(c, apperrors.NewBadRequest(
				apperrors.ErrCodeInvalidInput, "Invalid group_id.",
			))
		}
		filter.GroupID = &id
	}
	if v := c.QueryParam("status"); v != "" {
		filter.Status = Status(v)
	}
	filter.Limit, _ = strconv.Atoi(c.QueryParam("limit"))
	filter.Offset, _ = strconv.Atoi(c.QueryParam("offset"))

	items, err := h.store.List(c.Request().Context(), filter)
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError, "Internal server error.", err,
		))
	}

	items = FilterByCategory(items, c.QueryParam("category"))
	items = FilterByUrgency(items, Urgency(c.QueryParam("urgency")))

	return apperrors.RespondWithSuccess(c, items)
}

// GetHandler returns a single prayer by id.
func (h *Handler) GetHandler(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidInput, "Invalid prayer id.",
		))
	}

	p, err := h.store.GetByID(c.Request().Context(), id)
	if errors.Is(err, ErrNotFound) {
		return apperrors.RespondWithError(c, apperrors.NewNotFound(
			apperrors.ErrCodePrayerNotFound, "Prayer not found.",
		))
	}
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError, "Internal server error.", err,
		))
	}

	return apperrors.RespondWithSuccess(c, p)
}

// UpdateStatusHandler moves the display status forward. Requires the
// submitter or an admin.
func (h *Handler) UpdateStatusHandler(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidInput, "Invalid prayer id.",
		))
	}

	req := new(UpdateStatusRequest)
	if err := c.Bind(req); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidInput, "Invalid request payload.",
		))
	}

	callerID, _ := c.Get("user_id").(int64)
	role, _ := c.Get("role").(string)

	updated, err := h.svc.UpdateStatus(c.Request().Context(), id, req.Status, callerID, role == "admin")
	switch {
	case errors.Is(err, ErrNotFound):
		return apperrors.RespondWithError(c, apperrors.NewNotFound(
			apperrors.ErrCodePrayerNotFound, "Prayer not found.",
		))
	case errors.Is(err, ErrForbidden):
		return apperrors.RespondWithError(c, apperrors.NewForbidden(
			apperrors.ErrCodeForbidden, "Not authorized.",
		))
	case errors.Is(err, ErrValidation):
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed, err.Error(),
		))
	case err != nil:
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError, "Internal server error.", err,
		))
	}

	return apperrors.RespondWithSuccess(c, updated)
}

// UpdateModerationHandler is the operator override; gated to admins by the
// role middleware.
func (h *Handler) UpdateModerationHandler(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidInput, "Invalid prayer id.",
		))
	}

	req := new(UpdateModerationRequest)
	if err := c.Bind(req); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidInput, "Invalid request payload.",
		))
	}

	moderatorID, _ := c.Get("user_id").(int64)

	updated, err := h.svc.UpdateModeration(c.Request().Context(), id, req.ModerationStatus, moderatorID, req.Notes)
	switch {
	case errors.Is(err, ErrNotFound):
		return apperrors.RespondWithError(c, apperrors.NewNotFound(
			apperrors.ErrCodePrayerNotFound, "Prayer not found.",
		))
	case errors.Is(err, ErrValidation):
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed, err.Error(),
		))
	case err != nil:
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError, "Internal server error.", err,
		))
	}

	return apperrors.RespondWithSuccess(c, updated)
}

// SearchHandler runs relevance search over approved public prayers.
func (h *Handler) SearchHandler(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeMissingField, "Query parameter q is required.",
		))
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	results, err := h.search.Search(c.Request().Context(), query, limit)
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError, "Internal server error.", err,
		))
	}

	return apperrors.RespondWithSuccess(c, results)
}

// CategoriesHandler returns the category labels present on approved public
// prayers.
func (h *Handler) CategoriesHandler(c echo.Context) error {
	categories, err := h.search.Categories(c.Request().Context())
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError, "Internal server error.", err,
		))
	}
	return apperrors.RespondWithSuccess(c, categories)
}

// ChurchInsightsHandler summarizes a church's recent prayers for its
// leaders. Aggregate themes only; individual prayers stay in the listings.
func (h *Handler) ChurchInsightsHandler(c echo.Context) error {
	churchID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidInput, "Invalid church id.",
		))
	}

	if _, err := h.churches.GetByID(c.Request().Context(), churchID); err != nil {
		if errors.Is(err, church.ErrNotFound) {
			return apperrors.RespondWithError(c, apperrors.NewNotFound(
				apperrors.ErrCodeChurchNotFound, "Church not found.",
			))
		}
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError, "Internal server error.", err,
		))
	}

	insights, err := h.insights.ForChurch(c.Request().Context(), churchID)
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError, "Internal server error.", err,
		))
	}
	return apperrors.RespondWithSuccess(c, insights)
}

// RespondHandler adds a response to a prayer.
func (h *Handler) RespondHandler(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidInput, "Invalid prayer id.",
		))
	}

	req := new(RespondRequest)
	if err := c.Bind(req); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidInput, "Invalid request payload.",
		))
	}

	var userID *int64
	if uid, ok := c.Get("user_id").(int64); ok {
		userID = &uid
	}

	created, err := h.svc.Respond(c.Request().Context(), id, userID, *req)
	switch {
	case errors.Is(err, ErrNotFound):
		return apperrors.RespondWithError(c, apperrors.NewNotFound(
			apperrors.ErrCodePrayerNotFound, "Prayer not found.",
		))
	case errors.Is(err, ErrValidation):
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed, err.Error(),
		))
	case err != nil:
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError, "Internal server error.", err,
		))
	}

	return apperrors.RespondWithCreated(c, created)
}

// ListResponsesHandler returns a prayer's responses, oldest first.
func (h *Handler) ListResponsesHandler(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeInvalidInput, "Invalid prayer id.",
		))
	}

	responses, err := h.svc.ListResponses(c.Request().Context(), id)
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError, "Internal server error.", err,
		))
	}
	return apperrors.RespondWithSuccess(c, responses)
}
