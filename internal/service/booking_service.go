// Package service holds the booking use cases.  It joins the pure slot and
// pricing engine with the catalog, booking store and event publisher, which
// are injected as interfaces so tests can swap them for fakes.
package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/turf-booking/internal/model"
	"github.com/iliyamo/turf-booking/internal/pricing"
	"github.com/iliyamo/turf-booking/internal/queue"
	"github.com/iliyamo/turf-booking/internal/repository"
)

// DateLayout is the wire and storage format of a booking date.
const DateLayout = "2006-01-02"

// Catalog reads grounds and their pricing rules.
type Catalog interface {
	Ground(ctx context.Context, id uint64) (*model.Ground, error)
	Rules(ctx context.Context, groundID uint64) ([]model.PricingRule, error)
}

// BookingStore persists bookings.
type BookingStore interface {
	Create(ctx context.Context, b *model.Booking) error
	GetByID(ctx context.Context, id uint64) (*model.Booking, error)
	ListByUser(ctx context.Context, userID uint64) ([]model.Booking, error)
	Transition(ctx context.Context, id, userID uint64, to string) error
}

// UserLookup resolves the booking user, mainly for the loyalty balance.
type UserLookup interface {
	GetByID(ctx context.Context, id uint64) (model.User, error)
}

// EventPublisher announces confirmed bookings.
type EventPublisher interface {
	PublishBookingConfirmed(ctx context.Context, ev queue.BookingConfirmedEvent) error
}

// RepoCatalog adapts the MySQL repositories to Catalog.
type RepoCatalog struct {
	Grounds *repository.GroundRepo
	Pricing *repository.PricingRepo
}

func (c RepoCatalog) Ground(ctx context.Context, id uint64) (*model.Ground, error) {
	return c.Grounds.GetByID(ctx, id)
}

func (c RepoCatalog) Rules(ctx context.Context, groundID uint64) ([]model.PricingRule, error) {
	return c.Pricing.ListByGround(ctx, groundID)
}

// BookingService implements slot browsing, quoting and booking.
type BookingService struct {
	catalog   Catalog
	bookings  BookingStore
	users     UserLookup
	publisher EventPublisher // optional
	now       func() time.Time
}

func NewBookingService(catalog Catalog, bookings BookingStore, users UserLookup, publisher EventPublisher) *BookingService {
	return &BookingService{
		catalog:   catalog,
		bookings:  bookings,
		users:     users,
		publisher: publisher,
		now:       time.Now,
	}
}

// Grid is a ground together with its generated slots.
type Grid struct {
	Ground *model.Ground
	Slots  []pricing.TimeSlot
}

// Quote is the server-side price of a selection.
type Quote struct {
	pricing.Totals
	pricing.Window
	// Slots is the ordered selection in grid order, so 00:00 follows
	// 23:30 on a ground open past midnight.
	Slots []string `json:"slots"`
}

// BookRequest is a customer's booking submission.
type BookRequest struct {
	GroundID   uint64
	Date       string
	Slots      []string
	UseLoyalty bool
}

// BookingView is a booking with its ground attached.  Ground is nil when
// the ground has since been removed.
type BookingView struct {
	model.Booking
	Ground *model.Ground
}

// Slots generates the current slot grid of a ground.
func (s *BookingService) Slots(ctx context.Context, groundID uint64) (*Grid, error) {
	g, err := s.catalog.Ground(ctx, groundID)
	if err != nil {
		return nil, err
	}
	rules, err := s.catalog.Rules(ctx, groundID)
	if err != nil {
		return nil, err
	}
	slots, err := pricing.Generate(g.OpenTime, g.CloseTime, g.BasePrice, model.Rules(rules))
	if err != nil {
		return nil, err
	}
	return &Grid{Ground: g, Slots: slots}, nil
}

// Quote prices a selection for userID without storing anything.
func (s *BookingService) Quote(ctx context.Context, userID, groundID uint64, selection []string, useLoyalty bool) (*Quote, error) {
	grid, err := s.Slots(ctx, groundID)
	if err != nil {
		return nil, err
	}
	return s.quote(ctx, userID, grid, selection, useLoyalty)
}

func (s *BookingService) quote(ctx context.Context, userID uint64, grid *Grid, selection []string, useLoyalty bool) (*Quote, error) {
	sel, err := orderSelection(selection, grid.Slots)
	if err != nil {
		return nil, err
	}
	points := 0
	if useLoyalty {
		u, err := s.users.GetByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		points = u.LoyaltyPoints
	}
	window, err := pricing.DeriveBookingWindow(sel)
	if err != nil {
		return nil, err
	}
	return &Quote{
		Totals: pricing.ComputeTotals(sel, grid.Slots, points, useLoyalty),
		Window: window,
		Slots:  sel,
	}, nil
}

// Book validates req, prices it from the stored rules and persists a
// confirmed booking.  A failed event publish is logged and otherwise
// ignored; the booking stands.
func (s *BookingService) Book(ctx context.Context, userID uint64, req BookRequest) (*model.Booking, error) {
	day, err := time.Parse(DateLayout, req.Date)
	if err != nil {
		return nil, &pricing.ValidationError{Field: "date", Value: req.Date, Reason: "expected YYYY-MM-DD"}
	}
	grid, err := s.Slots(ctx, req.GroundID)
	if err != nil {
		return nil, err
	}
	q, err := s.quote(ctx, userID, grid, req.Slots, req.UseLoyalty)
	if err != nil {
		return nil, err
	}

	b := &model.Booking{
		UserID:            userID,
		GroundID:          req.GroundID,
		Date:              day.Format(DateLayout),
		StartTime:         q.StartTime,
		EndTime:           q.EndTime,
		Duration:          decimal.NewFromFloat(q.Duration),
		TotalPrice:        decimal.NewFromInt(q.Total),
		UsedLoyaltyPoints: q.Discount > 0,
		Status:            model.BookingConfirmed,
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, err
	}
	s.publish(ctx, b, grid.Ground, q.Discount)
	return b, nil
}

func (s *BookingService) publish(ctx context.Context, b *model.Booking, g *model.Ground, discount int64) {
	if s.publisher == nil {
		return
	}
	ev := queue.BookingConfirmedEvent{
		BookingID:         b.ID,
		UserID:            b.UserID,
		GroundID:          b.GroundID,
		GroundName:        g.Name,
		City:              g.City,
		Date:              b.Date,
		StartTime:         b.StartTime,
		EndTime:           b.EndTime,
		Duration:          b.Duration.String(),
		TotalPrice:        b.TotalPrice.String(),
		UsedLoyaltyPoints: int(discount),
		ConfirmedAt:       s.now().UTC().Format(time.RFC3339),
	}
	if err := s.publisher.PublishBookingConfirmed(ctx, ev); err != nil {
		log.Printf("booking %d: publish booking.confirmed failed: %v", b.ID, err)
	}
}

// Get returns a booking visible to userID.  Admins pass userID 0 to skip
// the ownership check.
func (s *BookingService) Get(ctx context.Context, userID, bookingID uint64) (*BookingView, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if userID != 0 && b.UserID != userID {
		return nil, repository.ErrForbidden
	}
	g, err := s.catalog.Ground(ctx, b.GroundID)
	if err != nil && !errors.Is(err, repository.ErrGroundNotFound) {
		return nil, err
	}
	return &BookingView{Booking: *b, Ground: g}, nil
}

// Cancel moves the caller's confirmed booking to cancelled.
func (s *BookingService) Cancel(ctx context.Context, userID, bookingID uint64) error {
	return s.bookings.Transition(ctx, bookingID, userID, model.BookingCancelled)
}

// ListForUser returns the user's bookings newest first, each with its ground.
func (s *BookingService) ListForUser(ctx context.Context, userID uint64) ([]BookingView, error) {
	rows, err := s.bookings.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	grounds := map[uint64]*model.Ground{}
	out := make([]BookingView, 0, len(rows))
	for _, b := range rows {
		g, seen := grounds[b.GroundID]
		if !seen {
			g, err = s.catalog.Ground(ctx, b.GroundID)
			if err != nil && !errors.Is(err, repository.ErrGroundNotFound) {
				return nil, err
			}
			grounds[b.GroundID] = g
		}
		out = append(out, BookingView{Booking: b, Ground: g})
	}
	return out, nil
}
