package recurrence

import "time"

// Iter walks the occurrences of a rule anchored at a fixed instant, in due
// order. The anchor itself is always the first occurrence: it is the due
// time the client explicitly asked for, the rule only governs repetitions.
// Iteration is deterministic and restartable: two iterators over the same
// rule and anchor yield identical sequences.
type Iter struct {
	rule    Rule
	anchor  time.Time
	yielded int
	cursor  time.Time // weekly-BYDAY day scan position
	step    int       // daily/weekly/monthly step counter
}

// Iterate returns a fresh iterator over the rule's occurrences.
func (r Rule) Iterate(anchor time.Time) *Iter {
	return &Iter{rule: r, anchor: anchor, cursor: anchor}
}

// Next returns the next occurrence, or ok=false when the rule's COUNT is
// exhausted. Unbounded rules never exhaust; callers bound them by horizon.
func (it *Iter) Next() (time.Time, bool) {
	if it.rule.Count > 0 && it.yielded >= it.rule.Count {
		return time.Time{}, false
	}

	if it.yielded == 0 {
		it.yielded++
		return it.anchor, true
	}

	var next time.Time
	switch {
	case it.rule.Freq == Daily:
		it.step++
		next = it.anchor.AddDate(0, 0, it.step*it.rule.Interval)

	case it.rule.Freq == Weekly && len(it.rule.ByDay) == 0:
		it.step++
		next = it.anchor.AddDate(0, 0, it.step*7*it.rule.Interval)

	case it.rule.Freq == Weekly:
		next = it.nextByDay()

	default: // Monthly
		next = it.nextMonthly()
	}

	it.yielded++
	return next, true
}

// nextByDay scans forward one day at a time until it hits a weekday listed
// in BYDAY that falls in a week selected by INTERVAL. Weeks start on Monday.
func (it *Iter) nextByDay() time.Time {
	anchorWeek := startOfWeek(it.anchor)
	for {
		it.cursor = it.cursor.AddDate(0, 0, 1)

		if !containsWeekday(it.rule.ByDay, it.cursor.Weekday()) {
			continue
		}
		days := int(startOfWeek(it.cursor).Sub(anchorWeek).Round(24*time.Hour).Hours()) / 24
		weeks := days / 7
		if weeks%it.rule.Interval != 0 {
			continue
		}
		return it.cursor
	}
}

// nextMonthly steps month by month, skipping months that lack the target
// day (e.g. BYMONTHDAY=31 in February) rather than normalizing into the
// following month.
func (it *Iter) nextMonthly() time.Time {
	day := it.rule.ByMonthDay
	if day == 0 {
		day = it.anchor.Day()
	}

	for {
		y, m, _ := it.anchor.AddDate(0, it.step*it.rule.Interval, 0).Date()
		it.step++

		h, min, sec := it.anchor.Clock()
		candidate := time.Date(y, m, day, h, min, sec, it.anchor.Nanosecond(), it.anchor.Location())
		if candidate.Day() != day {
			continue // month does not have this day
		}
		if !candidate.After(it.anchor) {
			continue
		}
		return candidate
	}
}

// Next returns the earliest occurrence strictly after the given instant, or
// ok=false when the rule has no occurrence left past it. This is the
// incremental entry point the scheduler uses: only one occurrence is ever
// materialized at a time.
func (r Rule) Next(anchor, after time.Time) (time.Time, bool) {
	it := r.Iterate(anchor)
	for {
		t, ok := it.Next()
		if !ok {
			return time.Time{}, false
		}
		if t.After(after) {
			return t, true
		}
	}
}

// Expand returns every occurrence up to and including horizon, bounded by
// the rule's COUNT. The result is a pure function of rule and anchor.
func (r Rule) Expand(anchor, horizon time.Time) []time.Time {
	var out []time.Time
	it := r.Iterate(anchor)
	for {
		t, ok := it.Next()
		if !ok || t.After(horizon) {
			return out
		}
		out = append(out, t)
	}
}

func startOfWeek(t time.Time) time.Time {
	y, m, d := t.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	offset := (int(t.Weekday()) + 6) % 7 // Monday = 0
	return midnight.AddDate(0, 0, -offset)
}

func containsWeekday(days []time.Weekday, wd time.Weekday) bool {
	for _, d := range days {
		if d == wd {
			return true
		}
	}
	return false
}
