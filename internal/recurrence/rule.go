// Package recurrence parses recurrence rule strings into a bounded,
// validated form and expands them into concrete occurrence instants.
//
// The grammar is a subset of RFC 5545 RRULE: FREQ=DAILY|WEEKLY|MONTHLY with
// optional INTERVAL, COUNT, BYDAY (weekly) and BYMONTHDAY (monthly) parts.
// Invalid combinations are rejected at parse time, never at expansion time.
package recurrence

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidRule is returned for rules that cannot be parsed or that
// combine parts illegally. Handlers map it to a 400 response.
var ErrInvalidRule = errors.New("invalid recurrence rule")

// MaxCount is the ceiling for the COUNT part. Rules above it are rejected,
// never silently clamped.
const MaxCount = 366

// MaxInterval bounds the INTERVAL part.
const MaxInterval = 365

// Frequency is the base repetition unit of a rule.
type Frequency int

const (
	Daily Frequency = iota
	Weekly
	Monthly
)

// String returns the RRULE token for the frequency.
func (f Frequency) String() string {
	switch f {
	case Daily:
		return "DAILY"
	case Weekly:
		return "WEEKLY"
	case Monthly:
		return "MONTHLY"
	default:
		return "UNKNOWN"
	}
}

// Rule is a parsed, validated recurrence rule. It is a pure value: expansion
// is a function of the rule and an anchor instant, with no hidden state.
type Rule struct {
	Freq       Frequency
	Interval   int            // repetition step in Freq units, >= 1
	ByDay      []time.Weekday // weekly only: weekdays the rule fires on
	ByMonthDay int            // monthly only: day of month 1..31, 0 when unset
	Count      int            // total occurrences including the anchor, 0 = unbounded
}

var weekdayTokens = map[string]time.Weekday{
	"MO": time.Monday,
	"TU": time.Tuesday,
	"WE": time.Wednesday,
	"TH": time.Thursday,
	"FR": time.Friday,
	"SA": time.Saturday,
	"SU": time.Sunday,
}

// Parse parses a rule string such as "FREQ=WEEKLY;BYDAY=MO;COUNT=4".
//
// Unknown parts, unknown frequency tokens, out-of-range numeric values and
// parts applied to the wrong frequency all yield ErrInvalidRule.
func Parse(s string) (Rule, error) {
	r := Rule{Interval: 1, ByMonthDay: 0}

	if strings.TrimSpace(s) == "" {
		return Rule{}, fmt.Errorf("%w: empty rule", ErrInvalidRule)
	}

	seenFreq := false
	for _, part := range strings.Split(s, ";") {
		key, value, found := strings.Cut(part, "=")
		if !found || value == "" {
			return Rule{}, fmt.Errorf("%w: malformed part %q", ErrInvalidRule, part)
		}

		switch strings.ToUpper(strings.TrimSpace(key)) {
		case "FREQ":
			switch strings.ToUpper(value) {
			case "DAILY":
				r.Freq = Daily
			case "WEEKLY":
				r.Freq = Weekly
			case "MONTHLY":
				r.Freq = Monthly
			default:
				return Rule{}, fmt.Errorf("%w: unsupported frequency %q", ErrInvalidRule, value)
			}
			seenFreq = true

		case "INTERVAL":
			n, err := strconv.Atoi(value)
			if err != nil || n < 1 || n > MaxInterval {
				return Rule{}, fmt.Errorf("%w: interval %q out of range", ErrInvalidRule, value)
			}
			r.Interval = n

		case "COUNT":
			n, err := strconv.Atoi(value)
			if err != nil || n < 1 {
				return Rule{}, fmt.Errorf("%w: count %q out of range", ErrInvalidRule, value)
			}
			if n > MaxCount {
				return Rule{}, fmt.Errorf("%w: count %d exceeds maximum %d", ErrInvalidRule, n, MaxCount)
			}
			r.Count = n

		case "BYDAY":
			for _, tok := range strings.Split(value, ",") {
				wd, ok := weekdayTokens[strings.ToUpper(strings.TrimSpace(tok))]
				if !ok {
					return Rule{}, fmt.Errorf("%w: unknown weekday %q", ErrInvalidRule, tok)
				}
				r.ByDay = append(r.ByDay, wd)
			}

		case "BYMONTHDAY":
			n, err := strconv.Atoi(value)
			if err != nil || n < 1 || n > 31 {
				return Rule{}, fmt.Errorf("%w: month day %q out of range", ErrInvalidRule, value)
			}
			r.ByMonthDay = n

		default:
			return Rule{}, fmt.Errorf("%w: unknown part %q", ErrInvalidRule, key)
		}
	}

	if !seenFreq {
		return Rule{}, fmt.Errorf("%w: missing FREQ", ErrInvalidRule)
	}
	if len(r.ByDay) > 0 && r.Freq != Weekly {
		return Rule{}, fmt.Errorf("%w: BYDAY requires FREQ=WEEKLY", ErrInvalidRule)
	}
	if r.ByMonthDay != 0 && r.Freq != Monthly {
		return Rule{}, fmt.Errorf("%w: BYMONTHDAY requires FREQ=MONTHLY", ErrInvalidRule)
	}

	return r, nil
}
