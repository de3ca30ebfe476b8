package model

import (
	"fmt"
	"time"
)

// ClockTime is a local time-of-day with minute resolution, e.g. "18:00".
type ClockTime struct {
	Hour   int
	Minute int
}

// ParseClockTime parses an "HH:MM" string.
func ParseClockTime(s string) (ClockTime, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%2d:%2d", &h, &m); err != nil {
		return ClockTime{}, fmt.Errorf("invalid HH:MM %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return ClockTime{}, fmt.Errorf("invalid HH:MM %q: out of range", s)
	}
	return ClockTime{Hour: h, Minute: m}, nil
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Minutes returns the number of minutes since local midnight.
func (c ClockTime) Minutes() int { return c.Hour*60 + c.Minute }

func (c ClockTime) Equal(o ClockTime) bool { return c.Minutes() == o.Minutes() }

// On returns the instant on day (interpreted in day's own location) at
// this clock time.
func (c ClockTime) On(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), c.Hour, c.Minute, 0, 0, day.Location())
}

// Window is a local time-of-day window, [Start, End). Start > End means the
// window crosses midnight: "from Start today until End tomorrow" (I5).
type Window struct {
	Start ClockTime
	End   ClockTime
}

// CrossesMidnight reports whether the window spans midnight.
func (w Window) CrossesMidnight() bool { return w.Start.Minutes() > w.End.Minutes() }

// Empty reports whether the window has zero width (Start == End), which is
// invalid for HardWindow curves per I8 but permitted as "no window" on Task.
func (w Window) Empty() bool { return w.Start.Equal(w.End) }

// Contains reports whether t's local time-of-day falls inside the window.
// Start is inclusive; End is exclusive (I5, midnight-crossing semantics).
func (w Window) Contains(t time.Time) bool {
	if w.Empty() {
		return true
	}
	nowMin := t.Hour()*60 + t.Minute()
	startMin := w.Start.Minutes()
	endMin := w.End.Minutes()
	if !w.CrossesMidnight() {
		return nowMin >= startMin && nowMin < endMin
	}
	// crosses midnight: active from start..24:00 and 00:00..end
	return nowMin >= startMin || nowMin < endMin
}
