package device

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/dbpg"

	"github.com/plannerd/reminderd/internal/model"
)

var ErrDeviceNotFound = errors.New("device not found")

// Repository provides methods to interact with the devices table. Device
// lifecycle belongs to the user-management collaborator; this subsystem
// registers test devices and reads them for delivery fan-out.
type Repository struct {
	db *dbpg.DB
}

// NewRepository creates a new device repository.
func NewRepository(db *dbpg.DB) *Repository {
	return &Repository{db: db}
}

// CreateDevice registers a delivery endpoint for an owner and returns its ID.
func (r *Repository) CreateDevice(ctx context.Context, d model.Device) (uuid.UUID, error) {
	query := `
		INSERT INTO devices (owner_id, channel, address)
		VALUES ($1, $2, $3)
		RETURNING id;
    `

	err := r.db.QueryRowContext(ctx, query, d.OwnerID, d.Channel, d.Address).Scan(&d.ID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create device: %w", err)
	}

	return d.ID, nil
}

// ListByOwner retrieves every device registered by one owner.
func (r *Repository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Device, error) {
	query := `
		SELECT id, owner_id, channel, address, created_at
		FROM devices
		WHERE owner_id = $1
		ORDER BY created_at ASC;
    `

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}
	defer rows.Close()

	var devices []model.Device
	for rows.Next() {
		var d model.Device
		if err := rows.Scan(&d.ID, &d.OwnerID, &d.Channel, &d.Address, &d.CreatedAt); err != nil {
			return nil, err
		}

		devices = append(devices, d)
	}

	return devices, rows.Err()
}
