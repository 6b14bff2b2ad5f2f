package service

import (
	"sort"

	"github.com/iliyamo/turf-booking/internal/pricing"
)

// orderSelection normalises the submitted times, drops duplicates and
// orders them the way the ground's grid runs.  For a grid that crosses
// midnight that puts 00:00 after 23:30, which plain string order would not.
// Every time must be on the grid.
func orderSelection(selection []string, grid []pricing.TimeSlot) ([]string, error) {
	if len(selection) == 0 {
		return nil, &pricing.ValidationError{Field: "slots", Reason: "select at least one slot"}
	}
	pos := make(map[string]int, len(grid))
	for i, s := range grid {
		if _, dup := pos[s.Time]; !dup {
			pos[s.Time] = i
		}
	}

	seen := make(map[string]bool, len(selection))
	out := make([]string, 0, len(selection))
	for _, raw := range selection {
		t, err := pricing.NormalizeTime(raw)
		if err != nil {
			return nil, err
		}
		if _, ok := pos[t]; !ok {
			return nil, &pricing.ValidationError{Field: "slots", Value: raw, Reason: "not offered by this ground"}
		}
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return pos[out[i]] < pos[out[j]] })
	return out, nil
}
