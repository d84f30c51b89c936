package firing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/wb-go/wbf/retry"

	"github.com/plannerd/reminderd/internal/metrics"
	mocks "github.com/plannerd/reminderd/internal/mocks/firing"
	"github.com/plannerd/reminderd/internal/model"
)

type pipelineMocks struct {
	reminders *mocks.MockreminderRepository
	devices   *mocks.MockdeviceRepository
	delivery  *mocks.Mockdeliverer
	cache     *mocks.MockstatusCache
	metrics   *metrics.Recorder
}

func setupPipeline(t *testing.T) (*Pipeline, pipelineMocks) {
	ctrl := gomock.NewController(t)

	m := pipelineMocks{
		reminders: mocks.NewMockreminderRepository(ctrl),
		devices:   mocks.NewMockdeviceRepository(ctrl),
		delivery:  mocks.NewMockdeliverer(ctrl),
		cache:     mocks.NewMockstatusCache(ctrl),
		metrics:   metrics.NewRecorder(),
	}

	p := NewPipeline(m.reminders, m.devices, m.delivery, m.cache, retry.Strategy{}, m.metrics)
	return p, m
}

func TestPipeline_Fire_OneShotReminder(t *testing.T) {
	p, m := setupPipeline(t)

	ownerID := uuid.New()
	dueAt := time.Now().Add(-time.Second)
	rem := model.Reminder{ID: uuid.New(), OwnerID: ownerID, Title: "stand-up", Status: model.StatusActive, DueAtUTC: dueAt}
	dev := model.Device{ID: uuid.New(), OwnerID: ownerID, Channel: model.ChannelPush, Address: "https://push.example.com/dev-1"}

	m.reminders.EXPECT().GetReminderByID(gomock.Any(), rem.ID).Return(rem, nil).Times(2)
	m.reminders.EXPECT().MarkOccurrenceFired(gomock.Any(), rem.ID, dueAt).Return(false, nil)
	m.devices.EXPECT().ListByOwner(gomock.Any(), ownerID).Return([]model.Device{dev}, nil)
	m.delivery.EXPECT().Deliver(gomock.Any(), rem, dev).Return(model.DeliveryAttempt{Status: model.AttemptDelivered}, nil)
	m.reminders.EXPECT().UpdateStatus(gomock.Any(), rem.ID, model.StatusDone).Return(nil)
	m.cache.EXPECT().SetWithRetry(gomock.Any(), gomock.Any(), rem.ID.String(), model.StatusDone).Return(nil)

	_, hasNext := p.Fire(context.Background(), rem.ID, dueAt)

	assert.False(t, hasNext)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.metrics.RemindersFired))
	assert.Equal(t, 1, testutil.CollectAndCount(m.metrics.FireLag))
}

func TestPipeline_Fire_AlreadyFiredOccurrenceSkipsDelivery(t *testing.T) {
	p, m := setupPipeline(t)

	dueAt := time.Now().Add(-time.Minute)
	rem := model.Reminder{ID: uuid.New(), OwnerID: uuid.New(), Status: model.StatusActive, DueAtUTC: dueAt}

	// A crash after the occurrence insert but before the done transition
	// leaves the reminder active with a past due time. The re-fire after
	// restart must not deliver again, but it must finish the bookkeeping
	// or the reminder stays stranded forever.
	m.reminders.EXPECT().GetReminderByID(gomock.Any(), rem.ID).Return(rem, nil)
	m.reminders.EXPECT().MarkOccurrenceFired(gomock.Any(), rem.ID, dueAt).Return(true, nil)
	m.reminders.EXPECT().UpdateStatus(gomock.Any(), rem.ID, model.StatusDone).Return(nil)
	m.cache.EXPECT().SetWithRetry(gomock.Any(), gomock.Any(), rem.ID.String(), model.StatusDone).Return(nil)

	_, hasNext := p.Fire(context.Background(), rem.ID, dueAt)

	assert.False(t, hasNext)
	assert.Equal(t, float64(0), testutil.ToFloat64(m.metrics.RemindersFired))
}

func TestPipeline_Fire_AlreadyFiredRecurringStillAdvances(t *testing.T) {
	p, m := setupPipeline(t)

	dueAt := time.Date(2025, 9, 15, 10, 0, 0, 0, time.UTC)
	rem := model.Reminder{
		ID:             uuid.New(),
		OwnerID:        uuid.New(),
		Status:         model.StatusActive,
		DueAtUTC:       dueAt,
		RecurrenceRule: "FREQ=DAILY;COUNT=5",
	}
	expectedNext := dueAt.Add(24 * time.Hour)

	m.reminders.EXPECT().GetReminderByID(gomock.Any(), rem.ID).Return(rem, nil)
	m.reminders.EXPECT().MarkOccurrenceFired(gomock.Any(), rem.ID, dueAt).Return(true, nil)
	m.reminders.EXPECT().CountFiredOccurrences(gomock.Any(), rem.ID).Return(2, nil)
	m.reminders.EXPECT().AdvanceDue(gomock.Any(), rem.ID, expectedNext).Return(nil)
	m.cache.EXPECT().SetWithRetry(gomock.Any(), gomock.Any(), rem.ID.String(), model.StatusActive).Return(nil)

	next, hasNext := p.Fire(context.Background(), rem.ID, dueAt)

	assert.True(t, hasNext)
	assert.Equal(t, expectedNext, next)
	assert.Equal(t, float64(0), testutil.ToFloat64(m.metrics.RemindersFired))
}

func TestPipeline_Fire_TerminalReminderSkipped(t *testing.T) {
	p, m := setupPipeline(t)

	rem := model.Reminder{ID: uuid.New(), Status: model.StatusCancelled}

	m.reminders.EXPECT().GetReminderByID(gomock.Any(), rem.ID).Return(rem, nil)

	_, hasNext := p.Fire(context.Background(), rem.ID, time.Now())

	assert.False(t, hasNext)
	assert.Equal(t, float64(0), testutil.ToFloat64(m.metrics.RemindersFired))
}

func TestPipeline_Fire_RecurringReminderAdvances(t *testing.T) {
	p, m := setupPipeline(t)

	ownerID := uuid.New()
	dueAt := time.Date(2025, 9, 15, 10, 0, 0, 0, time.UTC)
	rem := model.Reminder{
		ID:             uuid.New(),
		OwnerID:        ownerID,
		Status:         model.StatusActive,
		DueAtUTC:       dueAt,
		RecurrenceRule: "FREQ=DAILY;COUNT=5",
	}
	expectedNext := dueAt.Add(24 * time.Hour)

	m.reminders.EXPECT().GetReminderByID(gomock.Any(), rem.ID).Return(rem, nil).Times(2)
	m.reminders.EXPECT().MarkOccurrenceFired(gomock.Any(), rem.ID, dueAt).Return(false, nil)
	m.reminders.EXPECT().CountFiredOccurrences(gomock.Any(), rem.ID).Return(2, nil)
	m.reminders.EXPECT().AdvanceDue(gomock.Any(), rem.ID, expectedNext).Return(nil)
	m.cache.EXPECT().SetWithRetry(gomock.Any(), gomock.Any(), rem.ID.String(), model.StatusActive).Return(nil)
	m.devices.EXPECT().ListByOwner(gomock.Any(), ownerID).Return(nil, nil)

	next, hasNext := p.Fire(context.Background(), rem.ID, dueAt)

	assert.True(t, hasNext)
	assert.Equal(t, expectedNext, next)
}

func TestPipeline_Fire_RecurringCountExhausted(t *testing.T) {
	p, m := setupPipeline(t)

	ownerID := uuid.New()
	dueAt := time.Date(2025, 9, 15, 10, 0, 0, 0, time.UTC)
	rem := model.Reminder{
		ID:             uuid.New(),
		OwnerID:        ownerID,
		Status:         model.StatusActive,
		DueAtUTC:       dueAt,
		RecurrenceRule: "FREQ=DAILY;COUNT=3",
	}

	m.reminders.EXPECT().GetReminderByID(gomock.Any(), rem.ID).Return(rem, nil).Times(2)
	m.reminders.EXPECT().MarkOccurrenceFired(gomock.Any(), rem.ID, dueAt).Return(false, nil)
	// The just-fired occurrence is the third of three: no next occurrence.
	m.reminders.EXPECT().CountFiredOccurrences(gomock.Any(), rem.ID).Return(3, nil)
	m.devices.EXPECT().ListByOwner(gomock.Any(), ownerID).Return(nil, nil)
	m.reminders.EXPECT().UpdateStatus(gomock.Any(), rem.ID, model.StatusDone).Return(nil)
	m.cache.EXPECT().SetWithRetry(gomock.Any(), gomock.Any(), rem.ID.String(), model.StatusDone).Return(nil)

	_, hasNext := p.Fire(context.Background(), rem.ID, dueAt)

	assert.False(t, hasNext)
}

func TestPipeline_Fire_CancelledBeforeDispatch(t *testing.T) {
	p, m := setupPipeline(t)

	dueAt := time.Now()
	active := model.Reminder{ID: uuid.New(), Status: model.StatusActive, DueAtUTC: dueAt}
	cancelled := active
	cancelled.Status = model.StatusCancelled

	gomock.InOrder(
		m.reminders.EXPECT().GetReminderByID(gomock.Any(), active.ID).Return(active, nil),
		m.reminders.EXPECT().MarkOccurrenceFired(gomock.Any(), active.ID, dueAt).Return(false, nil),
		// The re-check before dispatch observes the cancellation: no device
		// listing, no delivery.
		m.reminders.EXPECT().GetReminderByID(gomock.Any(), active.ID).Return(cancelled, nil),
		// The terminal guard in the store rejects the done transition.
		m.reminders.EXPECT().UpdateStatus(gomock.Any(), active.ID, model.StatusDone).Return(errors.New("reminder not found")),
	)

	_, hasNext := p.Fire(context.Background(), active.ID, dueAt)

	assert.False(t, hasNext)
}

func TestPipeline_Fire_LoadErrorIsNoop(t *testing.T) {
	p, m := setupPipeline(t)

	id := uuid.New()
	m.reminders.EXPECT().GetReminderByID(gomock.Any(), id).Return(model.Reminder{}, errors.New("connection refused"))

	_, hasNext := p.Fire(context.Background(), id, time.Now())

	assert.False(t, hasNext)
}
