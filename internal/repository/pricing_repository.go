package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/turf-booking/internal/model"
)

// ErrRuleNotFound indicates that no pricing rule exists for a ground slot.
var ErrRuleNotFound = errors.New("pricing rule not found")

// PricingRepo provides access to the slot_pricing table.  A ground has
// at most one rule per time slot (unique key ground_id, time_slot).
type PricingRepo struct {
	db *sql.DB
}

// NewPricingRepo returns a new PricingRepo bound to the provided database.
func NewPricingRepo(db *sql.DB) *PricingRepo { return &PricingRepo{db: db} }

// ListByGround returns the rules of a ground in insertion order.  A
// ground without rules yields an empty slice.
func (r *PricingRepo) ListByGround(ctx context.Context, groundID uint64) ([]model.PricingRule, error) {
	const q = `SELECT id, ground_id, time_slot, demand, multiplier
               FROM slot_pricing
               WHERE ground_id = ?
               ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, q, groundID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.PricingRule{}
	for rows.Next() {
		var p model.PricingRule
		if err := rows.Scan(&p.ID, &p.GroundID, &p.TimeSlot, &p.Demand, &p.Multiplier); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Upsert creates the rule for (GroundID, TimeSlot) or replaces the demand
// and multiplier of the existing one.  The row ID is written back to p in
// both cases.
func (r *PricingRepo) Upsert(ctx context.Context, p *model.PricingRule) error {
	const q = `INSERT INTO slot_pricing (ground_id, time_slot, demand, multiplier)
               VALUES (?, ?, ?, ?)
               ON DUPLICATE KEY UPDATE demand = VALUES(demand), multiplier = VALUES(multiplier), id = LAST_INSERT_ID(id)`
	res, err := r.db.ExecContext(ctx, q, p.GroundID, p.TimeSlot, p.Demand, p.Multiplier)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)
	return nil
}

// Delete removes the rule for a ground slot, which puts the slot back on
// the low-demand 1.0x default.
func (r *PricingRepo) Delete(ctx context.Context, groundID uint64, timeSlot string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM slot_pricing WHERE ground_id = ? AND time_slot = ?`, groundID, timeSlot)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRuleNotFound
	}
	return nil
}
