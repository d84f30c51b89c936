package device

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/plannerd/reminderd/internal/model"
)

// ErrUnknownChannel rejects device registrations for channels no transport
// is configured for.
var ErrUnknownChannel = errors.New("unknown delivery channel")

//go:generate mockgen -source=service.go -destination=../../mocks/service/device/mock.go -package=mocks
type deviceRepository interface {
	CreateDevice(ctx context.Context, d model.Device) (uuid.UUID, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Device, error)
}

// Service exposes the minimal device surface this subsystem needs: device
// lifecycle proper belongs to the user-management collaborator.
type Service struct {
	repo     deviceRepository
	channels map[string]bool
}

// NewService creates the device service. channels lists the transports the
// deployment actually carries.
func NewService(repo deviceRepository, channels []string) *Service {
	known := make(map[string]bool, len(channels))
	for _, c := range channels {
		known[c] = true
	}
	return &Service{repo: repo, channels: known}
}

// Register stores a delivery endpoint for an owner.
func (s *Service) Register(ctx context.Context, d model.Device) (uuid.UUID, error) {
	if !s.channels[d.Channel] {
		return uuid.Nil, fmt.Errorf("%w: %s", ErrUnknownChannel, d.Channel)
	}

	id, err := s.repo.CreateDevice(ctx, d)
	if err != nil {
		return uuid.Nil, fmt.Errorf("register device: %w", err)
	}

	return id, nil
}

// List returns the owner's registered devices.
func (s *Service) List(ctx context.Context, ownerID uuid.UUID) ([]model.Device, error) {
	devices, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list devices: %w", err)
	}

	return devices, nil
}
