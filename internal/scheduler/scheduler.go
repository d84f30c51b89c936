// Package scheduler holds the due-time index over pending reminder
// occurrences and the watch loop that hands each one to the firing
// pipeline exactly once.
//
// The index is a min-heap guarded by one mutex; the watch loop is the
// single sequencer that pops due entries, while the actual firing work runs
// on a bounded worker pool. The index is rebuilt from the reminder store on
// startup; the store, not the heap, is the source of truth.
package scheduler

import (
	"container/heap"
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/zlog"

	"github.com/plannerd/reminderd/internal/model"
)

// FireFunc handles one due occurrence. Implemented by the firing pipeline.
// It returns the next occurrence to index when the reminder recurs.
type FireFunc func(ctx context.Context, reminderID uuid.UUID, dueAt time.Time) (next time.Time, reschedule bool)

// pendingLister is the slice of the reminder store the scheduler needs for
// startup rehydration.
type pendingLister interface {
	ListPending(ctx context.Context) ([]model.Reminder, error)
}

// occurrence is a popped heap entry on its way to a worker.
type occurrence struct {
	reminderID uuid.UUID
	dueAt      time.Time
}

// Scheduler is the process-wide due-time index. One instance per process.
type Scheduler struct {
	mu   sync.Mutex
	heap entryHeap
	byID map[uuid.UUID]*entry

	wake chan struct{}
	fire FireFunc
	repo pendingLister
}

// New creates a scheduler dispatching due occurrences to fire.
func New(repo pendingLister, fire FireFunc) *Scheduler {
	return &Scheduler{
		byID: make(map[uuid.UUID]*entry),
		wake: make(chan struct{}, 1),
		fire: fire,
		repo: repo,
	}
}

// Schedule indexes one occurrence of a reminder. Scheduling an id that is
// already indexed moves its due time instead of adding a second entry.
func (s *Scheduler) Schedule(reminderID uuid.UUID, dueAt time.Time) {
	s.mu.Lock()
	if e, ok := s.byID[reminderID]; ok {
		e.dueAt = dueAt
		heap.Fix(&s.heap, e.index)
	} else {
		e := &entry{reminderID: reminderID, dueAt: dueAt}
		heap.Push(&s.heap, e)
		s.byID[reminderID] = e
	}
	s.mu.Unlock()

	zlog.Logger.Info().
		Str("event", "reminder_scheduled").
		Str("reminder_id", reminderID.String()).
		Time("due_at", dueAt).
		Msg("reminder scheduled")

	s.notify()
}

// Reschedule atomically moves a reminder's pending entry to a new due time.
// The index never holds two entries for one reminder.
func (s *Scheduler) Reschedule(reminderID uuid.UUID, newDueAt time.Time) {
	s.Schedule(reminderID, newDueAt)
}

// Cancel removes a reminder's pending entry, if any. Returns whether an
// entry was removed.
func (s *Scheduler) Cancel(reminderID uuid.UUID) bool {
	s.mu.Lock()
	e, ok := s.byID[reminderID]
	if ok {
		heap.Remove(&s.heap, e.index)
		delete(s.byID, reminderID)
	}
	s.mu.Unlock()

	if ok {
		s.notify()
	}

	return ok
}

// Pending returns the number of indexed occurrences.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.heap.Len()
}

// Rehydrate rebuilds the index from the reminder store. Overdue reminders
// are scheduled at their original due instant, so the watch loop fires them
// immediately; they are logged as recovered, distinctly from live fires.
func (s *Scheduler) Rehydrate(ctx context.Context) error {
	reminders, err := s.repo.ListPending(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	recovered := 0
	for _, rem := range reminders {
		if rem.DueAtUTC.Before(now) {
			recovered++
			zlog.Logger.Info().
				Str("event", "reminder_recovered").
				Str("reminder_id", rem.ID.String()).
				Time("due_at", rem.DueAtUTC).
				Msg("overdue reminder recovered on restart, firing immediately")
		}
		s.Schedule(rem.ID, rem.DueAtUTC)
	}

	zlog.Logger.Info().
		Int("pending", len(reminders)).
		Int("recovered", recovered).
		Msg("scheduler rehydrated from store")

	return nil
}

// Run drives the watch loop until ctx is cancelled. Due occurrences are
// popped by the loop (the single sequencer, so no occurrence fires twice)
// and processed by workerCount workers so one slow delivery never blocks
// the evaluation of other due reminders.
func (s *Scheduler) Run(ctx context.Context, workerCount int) {
	var wg sync.WaitGroup
	occChan := make(chan occurrence, workerCount*10)

	wg.Add(workerCount)
	for i := 0; i < workerCount; i++ {
		go func(id int) {
			defer wg.Done()

			zlog.Logger.Printf("fire worker-%d started", id)

			for {
				select {
				case <-ctx.Done():
					zlog.Logger.Printf("fire worker-%d shutting down", id)
					return
				case occ, ok := <-occChan:
					if !ok {
						return
					}
					if next, reschedule := s.fire(ctx, occ.reminderID, occ.dueAt); reschedule {
						s.Schedule(occ.reminderID, next)
					}
				}
			}
		}(i)
	}

	for {
		due, wait := s.popDue()

		for _, occ := range due {
			select {
			case occChan <- occ:
			case <-ctx.Done():
				wg.Wait()
				return
			}
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			wg.Wait()
			zlog.Logger.Print("scheduler stopped")
			return
		case <-s.wake:
			timer.Stop()
		case <-timer.C:
		}
	}
}

// popDue removes every entry whose due instant has passed and returns the
// wait until the next pending entry (or a long idle wait for an empty heap).
func (s *Scheduler) popDue() ([]occurrence, time.Duration) {
	const idleWait = time.Hour

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	var due []occurrence
	for s.heap.Len() > 0 {
		head := s.heap[0]
		if head.dueAt.After(now) {
			return due, head.dueAt.Sub(now)
		}

		e := heap.Pop(&s.heap).(*entry)
		delete(s.byID, e.reminderID)
		due = append(due, occurrence{reminderID: e.reminderID, dueAt: e.dueAt})
	}

	return due, idleWait
}

// notify nudges the watch loop after a mutation that may have changed the
// earliest entry. The buffered channel coalesces bursts.
func (s *Scheduler) notify() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}
