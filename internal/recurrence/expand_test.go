package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var anchor = time.Date(2025, 9, 15, 10, 0, 0, 0, time.UTC) // a Monday

func mustParse(t *testing.T, s string) Rule {
	t.Helper()
	r, err := Parse(s)
	require.NoError(t, err)
	return r
}

func TestExpand_DailyCount(t *testing.T) {
	r := mustParse(t, "FREQ=DAILY;COUNT=7")

	got := r.Expand(anchor, anchor.AddDate(0, 1, 0))
	require.Len(t, got, 7)
	for i, occ := range got {
		assert.Equal(t, anchor.AddDate(0, 0, i), occ)
	}
}

func TestExpand_DeterministicAndRestartable(t *testing.T) {
	r := mustParse(t, "FREQ=DAILY;COUNT=7")
	horizon := anchor.AddDate(0, 1, 0)

	first := r.Expand(anchor, horizon)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, r.Expand(anchor, horizon))
	}
}

func TestExpand_WeeklyByDayCount(t *testing.T) {
	r := mustParse(t, "FREQ=WEEKLY;BYDAY=MO;COUNT=4")

	// 5-week listing window must contain exactly 4 occurrences, no 5th.
	got := r.Expand(anchor, anchor.AddDate(0, 0, 35))
	require.Len(t, got, 4)
	for i, occ := range got {
		assert.Equal(t, time.Monday, occ.Weekday())
		assert.Equal(t, anchor.AddDate(0, 0, 7*i), occ)
	}
}

func TestExpand_WeeklyByDayMultiple(t *testing.T) {
	r := mustParse(t, "FREQ=WEEKLY;BYDAY=MO,WE;COUNT=5")

	got := r.Expand(anchor, anchor.AddDate(0, 2, 0))
	require.Len(t, got, 5)
	want := []time.Time{
		anchor,                    // Mon
		anchor.AddDate(0, 0, 2),   // Wed
		anchor.AddDate(0, 0, 7),   // Mon
		anchor.AddDate(0, 0, 9),   // Wed
		anchor.AddDate(0, 0, 14),  // Mon
	}
	assert.Equal(t, want, got)
}

func TestExpand_WeeklyInterval(t *testing.T) {
	r := mustParse(t, "FREQ=WEEKLY;INTERVAL=2;COUNT=3")

	got := r.Expand(anchor, anchor.AddDate(0, 3, 0))
	require.Len(t, got, 3)
	assert.Equal(t, anchor.AddDate(0, 0, 14), got[1])
	assert.Equal(t, anchor.AddDate(0, 0, 28), got[2])
}

func TestExpand_MonthlyByMonthDay(t *testing.T) {
	// Anchored mid-month with a later BYMONTHDAY: the first repetition
	// falls in the anchor's own month.
	r := mustParse(t, "FREQ=MONTHLY;BYMONTHDAY=20;COUNT=3")

	got := r.Expand(anchor, anchor.AddDate(1, 0, 0))
	require.Len(t, got, 3)
	assert.Equal(t, anchor, got[0])
	assert.Equal(t, time.Date(2025, 9, 20, 10, 0, 0, 0, time.UTC), got[1])
	assert.Equal(t, time.Date(2025, 10, 20, 10, 0, 0, 0, time.UTC), got[2])
}

func TestExpand_MonthlySkipsShortMonths(t *testing.T) {
	jan31 := time.Date(2025, 1, 31, 9, 0, 0, 0, time.UTC)
	r := mustParse(t, "FREQ=MONTHLY;COUNT=4")

	got := r.Expand(jan31, jan31.AddDate(1, 0, 0))
	require.Len(t, got, 4)
	// February has no 31st: the series skips it instead of normalizing
	// into early March.
	want := []time.Time{
		jan31,
		time.Date(2025, 3, 31, 9, 0, 0, 0, time.UTC),
		time.Date(2025, 5, 31, 9, 0, 0, 0, time.UTC),
		time.Date(2025, 7, 31, 9, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, want, got)
}

func TestExpand_HorizonBoundsUnboundedRule(t *testing.T) {
	r := mustParse(t, "FREQ=DAILY")

	got := r.Expand(anchor, anchor.AddDate(0, 0, 9))
	assert.Len(t, got, 10)
}

func TestNext_Incremental(t *testing.T) {
	r := mustParse(t, "FREQ=DAILY;COUNT=3")

	next, ok := r.Next(anchor, anchor)
	require.True(t, ok)
	assert.Equal(t, anchor.AddDate(0, 0, 1), next)

	next, ok = r.Next(anchor, next)
	require.True(t, ok)
	assert.Equal(t, anchor.AddDate(0, 0, 2), next)

	_, ok = r.Next(anchor, next)
	assert.False(t, ok, "count exhausted")
}

func TestNext_SkipsPastOccurrences(t *testing.T) {
	r := mustParse(t, "FREQ=WEEKLY;BYDAY=MO")

	next, ok := r.Next(anchor, anchor.AddDate(0, 0, 16))
	require.True(t, ok)
	assert.Equal(t, anchor.AddDate(0, 0, 21), next)
}
