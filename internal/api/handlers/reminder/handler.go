package reminder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/plannerd/reminderd/internal/api/respond"
	"github.com/plannerd/reminderd/internal/config"
	"github.com/plannerd/reminderd/internal/idempotency"
	"github.com/plannerd/reminderd/internal/model"
	"github.com/plannerd/reminderd/internal/recurrence"
	reminderrepo "github.com/plannerd/reminderd/internal/repository/reminder"
	remindersvc "github.com/plannerd/reminderd/internal/service/reminder"
)

// reminderService defines the interface that the Handler depends on.
//
// It abstracts the business logic for creating, snoozing, cancelling and
// listing reminders and for querying their delivery history.
//
//go:generate mockgen -source=handler.go -destination=../../../mocks/api/handlers/reminder/mock.go -package=mocks
type reminderService interface {
	Create(ctx context.Context, strategy retry.Strategy, in remindersvc.CreateInput) (remindersvc.CreateResult, error)
	Snooze(ctx context.Context, strategy retry.Strategy, ownerID, id uuid.UUID, duration time.Duration) (time.Time, error)
	Cancel(ctx context.Context, strategy retry.Strategy, ownerID, id uuid.UUID) error
	Patch(ctx context.Context, strategy retry.Strategy, ownerID, id uuid.UUID, in remindersvc.PatchInput) error
	List(ctx context.Context, ownerID uuid.UUID) ([]model.Reminder, error)
	GetStatus(ctx context.Context, strategy retry.Strategy, ownerID, id uuid.UUID) (string, error)
	ListDeliveries(ctx context.Context, ownerID, id uuid.UUID) ([]model.DeliveryAttempt, error)
}

// Handler handles HTTP requests related to reminders.
type Handler struct {
	service   reminderService
	validator *validator.Validate
	cfg       *config.Config
}

// NewHandler creates a new Handler instance.
func NewHandler(s reminderService, v *validator.Validate, cfg *config.Config) *Handler {
	return &Handler{service: s, validator: v, cfg: cfg}
}

// CreateRequest represents the JSON body expected in a reminder creation
// request. DueAtLocal and Timezone are stored verbatim as a display pair.
type CreateRequest struct {
	Title          string     `json:"title" validate:"required"`
	Body           string     `json:"body"`
	DueAtUTC       string     `json:"due_at_utc" validate:"required"`
	DueAtLocal     string     `json:"due_at_local" validate:"required"`
	Timezone       string     `json:"timezone" validate:"required"`
	RecurrenceRule string     `json:"recurrence_rule"`
	LinkedNoteID   *uuid.UUID `json:"linked_note_id"`
	LinkedEventID  *uuid.UUID `json:"linked_event_id"`
}

// SnoozeRequest represents the JSON body of a snooze request.
type SnoozeRequest struct {
	DurationMinutes int `json:"duration_minutes" validate:"required,gt=0"`
}

// PatchRequest represents the JSON body of a partial update.
type PatchRequest struct {
	Status          *string    `json:"status"`
	CalendarEventID *uuid.UUID `json:"calendar_event_id"`
}

// ownerID extracts the caller's owner id from the X-Owner-ID header set by
// the auth collaborator. Every route is scoped to it.
func ownerID(c *ginext.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.GetHeader("X-Owner-ID"))
	if err != nil || id == uuid.Nil {
		respond.Fail(c.Writer, http.StatusUnauthorized, fmt.Errorf("missing or invalid owner"))
		return uuid.Nil, false
	}
	return id, true
}

// Create handles POST requests to create a new reminder.
//
// An Idempotency-Key header routes the request through the idempotency
// ledger; a replayed response is marked with X-Idempotency-Replay.
func (h *Handler) Create(c *ginext.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	var req CreateRequest
	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to decode request body")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid request body"))
		return
	}

	if err := h.validator.Struct(req); err != nil {
		zlog.Logger.Warn().Err(err).Msg("failed to validate request body")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("validation error: %s", err.Error()))
		return
	}

	dueAt, err := time.Parse(time.RFC3339, req.DueAtUTC)
	if err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to parse due_at_utc")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid due_at_utc format, want RFC 3339"))
		return
	}

	result, err := h.service.Create(c.Request.Context(), h.cfg.Retry, remindersvc.CreateInput{
		OwnerID:        owner,
		Title:          req.Title,
		Body:           req.Body,
		DueAtUTC:       dueAt.UTC(),
		DueAtLocal:     req.DueAtLocal,
		Timezone:       req.Timezone,
		RecurrenceRule: req.RecurrenceRule,
		LinkedNoteID:   req.LinkedNoteID,
		LinkedEventID:  req.LinkedEventID,
		IdempotencyKey: c.GetHeader("Idempotency-Key"),
	})
	if err != nil {
		h.fail(c, err, "failed to create reminder")
		return
	}

	if result.Replayed {
		c.Writer.Header().Set("X-Idempotency-Replay", "true")
		respond.OK(c.Writer, result)
		return
	}

	respond.Created(c.Writer, result)
}

// Snooze handles POST requests to push a reminder's due time forward.
func (h *Handler) Snooze(c *ginext.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req SnoozeRequest
	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to decode request body")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid request body"))
		return
	}

	if err := h.validator.Struct(req); err != nil {
		zlog.Logger.Warn().Err(err).Msg("failed to validate request body")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("validation error: %s", err.Error()))
		return
	}

	newDue, err := h.service.Snooze(
		c.Request.Context(), h.cfg.Retry, owner, id,
		time.Duration(req.DurationMinutes)*time.Minute,
	)
	if err != nil {
		h.fail(c, err, "failed to snooze reminder")
		return
	}

	respond.OK(c.Writer, map[string]interface{}{
		"new_due_at_utc": newDue.Format(time.RFC3339),
	})
}

// Cancel handles DELETE requests to cancel a reminder.
func (h *Handler) Cancel(c *ginext.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	id, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.service.Cancel(c.Request.Context(), h.cfg.Retry, owner, id); err != nil {
		h.fail(c, err, "failed to cancel reminder")
		return
	}

	respond.OK(c.Writer, "reminder cancelled")
}

// Patch handles PATCH requests for partial updates.
func (h *Handler) Patch(c *ginext.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req PatchRequest
	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to decode request body")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid request body"))
		return
	}

	err := h.service.Patch(c.Request.Context(), h.cfg.Retry, owner, id, remindersvc.PatchInput{
		Status:          req.Status,
		CalendarEventID: req.CalendarEventID,
	})
	if err != nil {
		h.fail(c, err, "failed to patch reminder")
		return
	}

	respond.OK(c.Writer, "reminder updated")
}

// List handles GET requests for the caller's reminders.
func (h *Handler) List(c *ginext.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	reminders, err := h.service.List(c.Request.Context(), owner)
	if err != nil {
		h.fail(c, err, "failed to list reminders")
		return
	}

	respond.OK(c.Writer, reminders)
}

// GetStatus handles GET requests for one reminder's current status.
func (h *Handler) GetStatus(c *ginext.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	id, ok := h.pathID(c)
	if !ok {
		return
	}

	status, err := h.service.GetStatus(c.Request.Context(), h.cfg.Retry, owner, id)
	if err != nil {
		h.fail(c, err, "failed to get reminder status")
		return
	}

	respond.OK(c.Writer, status)
}

// ListDeliveries handles GET requests for a reminder's delivery history.
func (h *Handler) ListDeliveries(c *ginext.Context) {
	owner, ok := ownerID(c)
	if !ok {
		return
	}

	id, ok := h.pathID(c)
	if !ok {
		return
	}

	attempts, err := h.service.ListDeliveries(c.Request.Context(), owner, id)
	if err != nil {
		h.fail(c, err, "failed to list delivery attempts")
		return
	}

	respond.OK(c.Writer, attempts)
}

func (h *Handler) pathID(c *ginext.Context) (uuid.UUID, bool) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil || id == uuid.Nil {
		zlog.Logger.Warn().Interface("idStr", idStr).Msg("invalid reminder id")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid id"))
		return uuid.Nil, false
	}
	return id, true
}

// fail maps the service error taxonomy onto HTTP statuses. A foreign
// reminder id maps to 404, never 403, to avoid existence leakage.
func (h *Handler) fail(c *ginext.Context, err error, msg string) {
	switch {
	case errors.Is(err, recurrence.ErrInvalidRule), errors.Is(err, remindersvc.ErrInvalidDueTime):
		zlog.Logger.Warn().Err(err).Msg(msg)
		respond.Fail(c.Writer, http.StatusBadRequest, err)
	case errors.Is(err, idempotency.ErrKeyConflict):
		zlog.Logger.Warn().Err(err).Msg(msg)
		respond.Fail(c.Writer, http.StatusConflict, err)
	case errors.Is(err, remindersvc.ErrTerminalState), errors.Is(err, remindersvc.ErrInvalidTransition):
		zlog.Logger.Warn().Err(err).Msg(msg)
		respond.Fail(c.Writer, http.StatusConflict, err)
	case errors.Is(err, reminderrepo.ErrReminderNotFound):
		zlog.Logger.Warn().Err(err).Msg(msg)
		respond.Fail(c.Writer, http.StatusNotFound, fmt.Errorf("reminder not found"))
	default:
		zlog.Logger.Error().Err(err).Msg(msg)
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
	}
}
