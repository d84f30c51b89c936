package device

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/zlog"

	"github.com/plannerd/reminderd/internal/api/respond"
	"github.com/plannerd/reminderd/internal/model"
	devicesvc "github.com/plannerd/reminderd/internal/service/device"
)

//go:generate mockgen -source=handler.go -destination=../../../mocks/api/handlers/device/mock.go -package=mocks
type deviceService interface {
	Register(ctx context.Context, d model.Device) (uuid.UUID, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]model.Device, error)
}

// Handler handles HTTP requests for device registration.
type Handler struct {
	service   deviceService
	validator *validator.Validate
}

// NewHandler creates a new Handler instance.
func NewHandler(s deviceService, v *validator.Validate) *Handler {
	return &Handler{service: s, validator: v}
}

// RegisterRequest represents the JSON body of a device registration.
type RegisterRequest struct {
	Channel string `json:"channel" validate:"required"`
	Address string `json:"address" validate:"required"`
}

// Register handles POST requests to register a delivery endpoint.
func (h *Handler) Register(c *ginext.Context) {
	owner, err := uuid.Parse(c.GetHeader("X-Owner-ID"))
	if err != nil || owner == uuid.Nil {
		respond.Fail(c.Writer, http.StatusUnauthorized, fmt.Errorf("missing or invalid owner"))
		return
	}

	var req RegisterRequest
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

	id, err := h.service.Register(c.Request.Context(), model.Device{
		OwnerID: owner,
		Channel: req.Channel,
		Address: req.Address,
	})
	if err != nil {
		if errors.Is(err, devicesvc.ErrUnknownChannel) {
			zlog.Logger.Warn().Err(err).Msg("failed to register device")
			respond.Fail(c.Writer, http.StatusBadRequest, err)
			return
		}

		zlog.Logger.Error().Err(err).Msg("failed to register device")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.Created(c.Writer, id)
}

// List handles GET requests for the caller's registered devices.
func (h *Handler) List(c *ginext.Context) {
	owner, err := uuid.Parse(c.GetHeader("X-Owner-ID"))
	if err != nil || owner == uuid.Nil {
		respond.Fail(c.Writer, http.StatusUnauthorized, fmt.Errorf("missing or invalid owner"))
		return
	}

	devices, err := h.service.List(c.Request.Context(), owner)
	if err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to list devices")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, devices)
}
