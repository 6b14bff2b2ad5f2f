package model

import (
    "github.com/shopspring/decimal"

    "github.com/iliyamo/turf-booking/internal/pricing"
)

// PricingRule sets the demand tier and price multiplier of one time slot
// of a ground.  There is at most one rule per (ground, time slot); slots
// without a rule are priced as low demand at 1.0x.
type PricingRule struct {
    ID         uint64          // slot_pricing.id
    GroundID   uint64          // slot_pricing.ground_id
    TimeSlot   string          // slot_pricing.time_slot ("HH:MM")
    Demand     string          // slot_pricing.demand (high, low)
    Multiplier decimal.Decimal // slot_pricing.multiplier
}

// Rule converts the stored row into the form used by the slot generator.
func (p PricingRule) Rule() pricing.Rule {
    return pricing.Rule{
        TimeSlot:   p.TimeSlot,
        Demand:     pricing.Demand(p.Demand),
        Multiplier: p.Multiplier,
    }
}

// Rules converts a ground's stored rules in order.
func Rules(rows []PricingRule) []pricing.Rule {
    out := make([]pricing.Rule, 0, len(rows))
    for _, r := range rows {
        out = append(out, r.Rule())
    }
    return out
}
