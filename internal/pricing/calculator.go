package pricing

import (
	"sort"
)

// MaxLoyaltyDiscount caps the loyalty discount of a single booking.
const MaxLoyaltyDiscount = 50

// Totals is the price breakdown of a selection.
type Totals struct {
	Duration  float64 `json:"duration"` // hours
	BasePrice int64   `json:"basePrice"`
	Discount  int64   `json:"discount"`
	Total     int64   `json:"total"`
}

// Window is the time span covered by a selection. EndTime is the end of the
// last selected half hour.
type Window struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// ComputeTotals prices a sorted selection against a generated grid. A
// selected time that is not on the grid contributes nothing. The loyalty
// balance is only read; spending it is the caller's business. The total
// never goes below zero.
func ComputeTotals(selected []string, slots []TimeSlot, loyaltyPoints int, useLoyalty bool) Totals {
	prices := make(map[string]int64, len(slots))
	for _, s := range slots {
		if _, dup := prices[s.Time]; !dup {
			prices[s.Time] = s.Price
		}
	}

	var t Totals
	t.Duration = float64(len(selected)) * float64(SlotMinutes) / 60
	for _, sel := range selected {
		t.BasePrice += prices[sel]
	}
	if useLoyalty && loyaltyPoints > 0 {
		t.Discount = int64(min(MaxLoyaltyDiscount, loyaltyPoints))
	}
	t.Total = max(t.BasePrice-t.Discount, 0)
	return t
}

// DeriveBookingWindow returns the first selected time and the last one
// advanced by a single slot, wrapping past midnight.
func DeriveBookingWindow(selected []string) (Window, error) {
	if len(selected) == 0 {
		return Window{}, ErrInvalidArgument
	}
	start, err := parseClock("start_time", selected[0])
	if err != nil {
		return Window{}, err
	}
	last, err := parseClock("end_time", selected[len(selected)-1])
	if err != nil {
		return Window{}, err
	}
	return Window{StartTime: start.String(), EndTime: last.next().String()}, nil
}

// ToggleSelection adds t to the selection, or removes it when already
// present. The result is a new slice sorted ascending.
func ToggleSelection(selected []string, t string) []string {
	out := make([]string, 0, len(selected)+1)
	found := false
	for _, s := range selected {
		if s == t {
			found = true
			continue
		}
		out = append(out, s)
	}
	if !found {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
