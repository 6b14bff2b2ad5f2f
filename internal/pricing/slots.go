package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	// SlotMinutes is the length of one bookable unit.
	SlotMinutes = 30
	// MaxSlots bounds a single grid. A ground whose close time is never hit
	// by the cursor (open 10:01, close 10:00) stops here instead of looping.
	MaxSlots = 50
)

// Demand is the coarse demand tier of a slot.
type Demand string

const (
	DemandHigh Demand = "high"
	DemandLow  Demand = "low"
)

// Valid reports whether d is a known tier.
func (d Demand) Valid() bool {
	return d == DemandHigh || d == DemandLow
}

// Rule prices one time slot of a ground. TimeSlot is matched against the
// generated "HH:MM" strings by exact equality.
type Rule struct {
	TimeSlot   string
	Demand     Demand
	Multiplier decimal.Decimal
}

// TimeSlot is one generated half-hour unit of a ground's grid.
type TimeSlot struct {
	Time      string `json:"time"`
	Demand    Demand `json:"demand"`
	Price     int64  `json:"price"`
	Available bool   `json:"available"`
}

var one = decimal.NewFromInt(1)

// Generate walks from openTime in 30 minute steps until the cursor lands
// exactly on closeTime, pricing each slot from the matching rule. Slots
// without a rule are low demand at 1.0x. The stop check runs after the
// cursor advances; open == close yields a single slot and a close the
// cursor never hits runs to MaxSlots. ValidateHours rejects the latter.
//
// Prices are basePrice*multiplier rounded half away from zero, which for
// the positive values accepted here is round-half-up: 1000*1.25 = 1250 and
// 1001*1.25 = 1251.25 -> 1251, 1002*1.25 = 1252.5 -> 1253.
func Generate(openTime, closeTime string, basePrice decimal.Decimal, rules []Rule) ([]TimeSlot, error) {
	open, err := parseClock("open_time", openTime)
	if err != nil {
		return nil, err
	}
	closing, err := parseClock("close_time", closeTime)
	if err != nil {
		return nil, err
	}
	if !basePrice.IsPositive() {
		return nil, invalid("base_price", basePrice.String(), "must be positive")
	}
	byTime, err := indexRules(rules)
	if err != nil {
		return nil, err
	}

	times, _ := walk(open, closing)
	slots := make([]TimeSlot, 0, len(times))
	for _, c := range times {
		t := c.String()
		demand, mult := DemandLow, one
		if r, ok := byTime[t]; ok {
			demand, mult = r.Demand, r.Multiplier
		}
		slots = append(slots, TimeSlot{
			Time:      t,
			Demand:    demand,
			Price:     SlotPrice(basePrice, mult),
			Available: true,
		})
	}
	return slots, nil
}

// walk lists the grid times from open until the cursor lands on closing,
// capped at MaxSlots.  It reports whether closing was reached.  Open equal
// to close is a single slot.
func walk(open, closing clock) ([]clock, bool) {
	out := make([]clock, 0, 32)
	cur := open
	for len(out) < MaxSlots {
		out = append(out, cur)
		cur = cur.next()
		if cur == closing || open == closing {
			return out, true
		}
	}
	return out, false
}

// ValidateHours is the check applied to a ground's opening hours before
// they are stored.  Both times must sit on the half-hour lattice the cursor
// walks, and the grid must reach the close time within MaxSlots.
func ValidateHours(openTime, closeTime string) error {
	open, err := parseClock("open_time", openTime)
	if err != nil {
		return err
	}
	closing, err := parseClock("close_time", closeTime)
	if err != nil {
		return err
	}
	if !open.onGrid() {
		return invalid("open_time", openTime, "minute must be 00 or 30")
	}
	if !closing.onGrid() {
		return invalid("close_time", closeTime, "minute must be 00 or 30")
	}
	if _, closed := walk(open, closing); !closed {
		return invalid("close_time", closeTime, fmt.Sprintf("not reached within %d slots", MaxSlots))
	}
	return nil
}

// SlotPrice applies a multiplier to a base price and rounds to a whole
// currency unit.
func SlotPrice(basePrice, multiplier decimal.Decimal) int64 {
	return basePrice.Mul(multiplier).Round(0).IntPart()
}

// indexRules keys rules by time slot. The first rule for a slot wins.
func indexRules(rules []Rule) (map[string]Rule, error) {
	out := make(map[string]Rule, len(rules))
	for _, r := range rules {
		if err := checkRule(r); err != nil {
			return nil, err
		}
		if _, dup := out[r.TimeSlot]; !dup {
			out[r.TimeSlot] = r
		}
	}
	return out, nil
}

func checkRule(r Rule) error {
	if !r.Multiplier.IsPositive() {
		return invalid("multiplier", r.Multiplier.String(), "must be positive")
	}
	if !r.Demand.Valid() {
		return invalid("demand", string(r.Demand), "must be high or low")
	}
	return nil
}

// ValidateRule is the stricter check applied before a rule is stored: on
// top of what Generate requires, the time slot must pass ValidateTimeSlot.
func ValidateRule(r Rule) error {
	if err := ValidateTimeSlot(r.TimeSlot); err != nil {
		return err
	}
	return checkRule(r)
}

// ValidateTimeSlot requires the canonical zero-padded form on the half-hour
// lattice; anything else could never match a generated slot.
func ValidateTimeSlot(s string) error {
	c, err := parseClock("time_slot", s)
	if err != nil {
		return err
	}
	if c.String() != s {
		return invalid("time_slot", s, "must be zero-padded HH:MM")
	}
	if !c.onGrid() {
		return invalid("time_slot", s, "minute must be 00 or 30")
	}
	return nil
}

// NormalizeTime returns s in the zero-padded HH:MM form used by generated
// slots.
func NormalizeTime(s string) (string, error) {
	c, err := parseClock("time", s)
	if err != nil {
		return "", err
	}
	return c.String(), nil
}
