package pricing

import (
	"fmt"
	"strconv"
	"strings"
)

// clock is a wall-clock time of day with no date attached.
type clock struct {
	hour   int
	minute int
}

// parseClock accepts "H:MM" or "HH:MM" with hour 0-23 and minute 0-59.
func parseClock(field, s string) (clock, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return clock{}, invalid(field, s, "expected HH:MM")
	}
	h, ok := atoiDigits(parts[0], 2)
	if !ok || h > 23 {
		return clock{}, invalid(field, s, "hour must be 00-23")
	}
	m, ok := atoiDigits(parts[1], 2)
	if !ok || len(parts[1]) != 2 || m > 59 {
		return clock{}, invalid(field, s, "minute must be 00-59")
	}
	return clock{hour: h, minute: m}, nil
}

// atoiDigits parses a short run of ASCII digits; signs and spaces are rejected.
func atoiDigits(s string, maxLen int) (int, bool) {
	if s == "" || len(s) > maxLen {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	return n, err == nil
}

func (c clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.hour, c.minute)
}

// onGrid reports whether c is a slot boundary.
func (c clock) onGrid() bool {
	return c.minute%SlotMinutes == 0
}

// next advances by one slot. A minute overflow resets to :00 of the next
// hour and hour 24 wraps to 00 so grids can run past midnight.
func (c clock) next() clock {
	c.minute += SlotMinutes
	if c.minute >= 60 {
		c.minute = 0
		c.hour++
	}
	if c.hour >= 24 {
		c.hour = 0
	}
	return c
}
