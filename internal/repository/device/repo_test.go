package device

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/wb-go/wbf/dbpg"

	"github.com/plannerd/reminderd/internal/model"
)

func setupMockDB(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open mock db: %v", err)
	}

	wrappedDB := &dbpg.DB{Master: db}
	repo := NewRepository(wrappedDB)

	return repo, mock
}

func TestCreateDevice(t *testing.T) {
	repo, mock := setupMockDB(t)

	deviceID := uuid.New()
	d := model.Device{
		OwnerID: uuid.New(),
		Channel: model.ChannelTelegram,
		Address: "128500341",
	}

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO devices`)).
		WithArgs(d.OwnerID, d.Channel, d.Address).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(deviceID))

	id, err := repo.CreateDevice(context.Background(), d)
	assert.NoError(t, err)
	assert.Equal(t, deviceID, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByOwner(t *testing.T) {
	repo, mock := setupMockDB(t)

	ownerID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM devices`)).
		WithArgs(ownerID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "channel", "address", "created_at"}).
			AddRow(uuid.New(), ownerID, model.ChannelPush, "https://push.example.com/dev-1", now).
			AddRow(uuid.New(), ownerID, model.ChannelEmail, "user@example.com", now))

	devices, err := repo.ListByOwner(context.Background(), ownerID)
	assert.NoError(t, err)
	assert.Len(t, devices, 2)
	assert.Equal(t, model.ChannelPush, devices[0].Channel)
	assert.Equal(t, model.ChannelEmail, devices[1].Channel)
	assert.NoError(t, mock.ExpectationsWereMet())
}
