// Package seed loads the demo catalog: three grounds with evening peak
// pricing, an admin and a customer with a loyalty balance.  Running it
// twice changes nothing.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/turf-booking/internal/model"
	"github.com/iliyamo/turf-booking/internal/pricing"
	"github.com/iliyamo/turf-booking/internal/repository"
)

// Users is the subset of repository.UserRepo the seeder needs.
type Users interface {
	Create(ctx context.Context, u repository.NewUser, cost int) (uint64, error)
	SetLoyaltyPoints(ctx context.Context, id uint64, points int) error
}

// Grounds is the subset of repository.GroundRepo the seeder needs.
type Grounds interface {
	ListAll(ctx context.Context, f repository.GroundFilter) ([]model.Ground, error)
	Create(ctx context.Context, g *model.Ground) error
}

// Rules is the subset of repository.PricingRepo the seeder needs.
type Rules interface {
	Upsert(ctx context.Context, p *model.PricingRule) error
}

type demoUser struct {
	user   repository.NewUser
	points int
}

var demoUsers = []demoUser{
	{repository.NewUser{Username: "admin", Email: "admin@finovaturfs.com", Name: "Admin User", Password: "admin123", Role: model.RoleAdmin}, 0},
	{repository.NewUser{Username: "ahmed", Email: "ahmed@example.com", Name: "Ahmed Khan", Password: "password123", Role: model.RoleCustomer}, 150},
}

func strPtr(s string) *string { return &s }

// DemoGrounds returns the seeded grounds, all open 10:00 to 01:00.
func DemoGrounds() []model.Ground {
	return []model.Ground{
		{Name: "Victory Sports Complex", Location: "Defence, Karachi", City: "Karachi", Sports: []string{"football", "cricket"},
			BasePrice: decimal.RequireFromString("2000.00"), Rating: decimal.RequireFromString("4.8"), OpenTime: "10:00", CloseTime: "01:00",
			ImageURL: strPtr("https://images.unsplash.com/photo-1556056504-5c7696c4c28d")},
		{Name: "Elite Football Arena", Location: "Gulberg, Lahore", City: "Lahore", Sports: []string{"football"},
			BasePrice: decimal.RequireFromString("1800.00"), Rating: decimal.RequireFromString("4.6"), OpenTime: "10:00", CloseTime: "01:00",
			ImageURL: strPtr("https://images.unsplash.com/photo-1577223625816-7546f13df25d")},
		{Name: "Champions Cricket Ground", Location: "F-10, Islamabad", City: "Islamabad", Sports: []string{"cricket"},
			BasePrice: decimal.RequireFromString("2500.00"), Rating: decimal.RequireFromString("4.9"), OpenTime: "10:00", CloseTime: "01:00",
			ImageURL: strPtr("https://images.unsplash.com/photo-1540747913346-19e32dc3e97e")},
	}
}

// peak runs 17:00 through the 20:00 slot.
var peak = map[string]bool{"17:00": true, "17:30": true, "18:00": true, "18:30": true, "19:00": true, "19:30": true, "20:00": true}

// DemoRules returns one rule per generated slot of g: high at 1.3x in the
// evening peak, low at 1.0x otherwise.
func DemoRules(g model.Ground) ([]model.PricingRule, error) {
	slots, err := pricing.Generate(g.OpenTime, g.CloseTime, g.BasePrice, nil)
	if err != nil {
		return nil, err
	}
	out := make([]model.PricingRule, 0, len(slots))
	for _, s := range slots {
		r := model.PricingRule{GroundID: g.ID, TimeSlot: s.Time, Demand: string(pricing.DemandLow), Multiplier: decimal.NewFromInt(1)}
		if peak[s.Time] {
			r.Demand, r.Multiplier = string(pricing.DemandHigh), decimal.RequireFromString("1.3")
		}
		out = append(out, r)
	}
	return out, nil
}

// Run seeds users, then grounds and their rules when no grounds exist yet.
func Run(ctx context.Context, users Users, grounds Grounds, rules Rules, bcryptCost int) error {
	for _, du := range demoUsers {
		id, err := users.Create(ctx, du.user, bcryptCost)
		if errors.Is(err, repository.ErrUsernameExists) {
			log.Printf("seed: user %s exists, skipping", du.user.Username)
			continue
		}
		if err != nil {
			return fmt.Errorf("seed user %s: %w", du.user.Username, err)
		}
		if du.points > 0 {
			if err := users.SetLoyaltyPoints(ctx, id, du.points); err != nil {
				return fmt.Errorf("seed loyalty for %s: %w", du.user.Username, err)
			}
		}
	}

	existing, err := grounds.ListAll(ctx, repository.GroundFilter{})
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		log.Printf("seed: %d grounds present, skipping catalog", len(existing))
		return nil
	}
	for _, g := range DemoGrounds() {
		g := g
		if err := grounds.Create(ctx, &g); err != nil {
			return fmt.Errorf("seed ground %s: %w", g.Name, err)
		}
		rs, err := DemoRules(g)
		if err != nil {
			return err
		}
		for i := range rs {
			if err := rules.Upsert(ctx, &rs[i]); err != nil {
				return fmt.Errorf("seed rule %s@%s: %w", rs[i].TimeSlot, g.Name, err)
			}
		}
	}
	return nil
}
