package handler

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/turf-booking/internal/model"
	"github.com/iliyamo/turf-booking/internal/repository"
	"github.com/iliyamo/turf-booking/internal/utils"
)

type memUsers struct {
	mu   sync.Mutex
	rows []model.User
}

func (m *memUsers) Create(_ context.Context, u repository.NewUser, cost int) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.Username == u.Username || r.Email == u.Email {
			return 0, repository.ErrUsernameExists
		}
	}
	hash, err := utils.HashPassword(u.Password, cost)
	if err != nil {
		return 0, err
	}
	id := uint64(len(m.rows) + 1)
	m.rows = append(m.rows, model.User{ID: id, Username: u.Username, Email: u.Email, Name: u.Name, PasswordHash: hash, Role: u.Role})
	return id, nil
}

func (m *memUsers) GetByUsername(_ context.Context, username string) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.Username == username {
			return r, nil
		}
	}
	return model.User{}, repository.ErrUserNotFound
}

func (m *memUsers) GetByID(_ context.Context, id uint64) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.ID == id {
			return r, nil
		}
	}
	return model.User{}, repository.ErrUserNotFound
}

type memTokens struct {
	mu   sync.Mutex
	rows map[string]*tokenRow
}

type tokenRow struct {
	userID  uint64
	exp     time.Time
	revoked bool
}

func newMemTokens() *memTokens { return &memTokens{rows: map[string]*tokenRow{}} }

func (m *memTokens) StoreRefresh(_ context.Context, userID uint64, hash string, exp time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[hash] = &tokenRow{userID: userID, exp: exp}
	return nil
}

func (m *memTokens) ValidateRefresh(_ context.Context, hash string) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rows[hash]
	if !ok || r.revoked || time.Now().After(r.exp) {
		return 0, repository.ErrInvalidRefresh
	}
	return r.userID, nil
}

func (m *memTokens) RevokeByHash(_ context.Context, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.rows[hash]; ok {
		r.revoked = true
	}
	return nil
}

func (m *memTokens) RevokeAllForUser(_ context.Context, userID uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.userID == userID {
			r.revoked = true
		}
	}
	return nil
}

func (m *memTokens) live(userID uint64) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, r := range m.rows {
		if r.userID == userID && !r.revoked {
			n++
		}
	}
	return n
}

type memGrounds struct {
	rows  []model.Ground
	rules map[uint64][]model.PricingRule
}

func (m *memGrounds) ListAll(_ context.Context, f repository.GroundFilter) ([]model.Ground, error) {
	out := []model.Ground{}
	for _, g := range m.rows {
		if f.City != "" && g.City != f.City {
			continue
		}
		if f.Sport != "" && !g.SupportsSport(f.Sport) {
			continue
		}
		out = append(out, g)
	}
	return out, nil
}

func (m *memGrounds) GetByID(_ context.Context, id uint64) (*model.Ground, error) {
	for _, g := range m.rows {
		if g.ID == id {
			g := g
			return &g, nil
		}
	}
	return nil, repository.ErrGroundNotFound
}

func (m *memGrounds) Create(_ context.Context, g *model.Ground) error {
	g.ID = uint64(len(m.rows) + 1)
	m.rows = append(m.rows, *g)
	return nil
}

// Ground and Rules make memGrounds a service.Catalog.
func (m *memGrounds) Ground(ctx context.Context, id uint64) (*model.Ground, error) {
	return m.GetByID(ctx, id)
}

func (m *memGrounds) Rules(_ context.Context, groundID uint64) ([]model.PricingRule, error) {
	return m.rules[groundID], nil
}

func (m *memGrounds) ListByGround(_ context.Context, groundID uint64) ([]model.PricingRule, error) {
	return append([]model.PricingRule{}, m.rules[groundID]...), nil
}

func (m *memGrounds) Upsert(_ context.Context, p *model.PricingRule) error {
	rules := m.rules[p.GroundID]
	for i := range rules {
		if rules[i].TimeSlot == p.TimeSlot {
			rules[i].Demand, rules[i].Multiplier = p.Demand, p.Multiplier
			p.ID = rules[i].ID
			return nil
		}
	}
	p.ID = uint64(100 + len(rules))
	m.rules[p.GroundID] = append(rules, *p)
	return nil
}

func (m *memGrounds) Delete(_ context.Context, groundID uint64, slot string) error {
	rules := m.rules[groundID]
	for i := range rules {
		if rules[i].TimeSlot == slot {
			m.rules[groundID] = append(rules[:i], rules[i+1:]...)
			return nil
		}
	}
	return repository.ErrRuleNotFound
}

type memBookings struct {
	rows []model.Booking
}

func (m *memBookings) Create(_ context.Context, b *model.Booking) error {
	b.ID = uint64(len(m.rows) + 1)
	b.CreatedAt = time.Date(2026, 10, 15, 9, 0, int(b.ID), 0, time.UTC)
	m.rows = append(m.rows, *b)
	return nil
}

func (m *memBookings) GetByID(_ context.Context, id uint64) (*model.Booking, error) {
	for _, b := range m.rows {
		if b.ID == id {
			b := b
			return &b, nil
		}
	}
	return nil, repository.ErrBookingNotFound
}

func (m *memBookings) ListByUser(_ context.Context, userID uint64) ([]model.Booking, error) {
	out := []model.Booking{}
	for _, b := range m.rows {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *memBookings) Transition(_ context.Context, id, userID uint64, to string) error {
	for i := range m.rows {
		if m.rows[i].ID != id {
			continue
		}
		if userID != 0 && m.rows[i].UserID != userID {
			return repository.ErrForbidden
		}
		if m.rows[i].Status != model.BookingConfirmed {
			return repository.ErrConflict
		}
		m.rows[i].Status = to
		return nil
	}
	return repository.ErrBookingNotFound
}

type memReports struct {
	bookings *memBookings
	lastQ    repository.AdminBookingQuery
}

func (m *memReports) Stats(context.Context) (repository.Stats, error) {
	s := repository.Stats{Revenue: decimal.Zero}
	users := map[uint64]bool{}
	for _, b := range m.bookings.rows {
		s.Bookings++
		users[b.UserID] = true
		if b.Status != model.BookingCancelled {
			s.Revenue = s.Revenue.Add(b.TotalPrice)
		}
	}
	s.ActiveUsers = int64(len(users))
	return s, nil
}

func (m *memReports) ListBookings(_ context.Context, q repository.AdminBookingQuery) ([]repository.AdminBookingRow, int64, error) {
	m.lastQ = q
	out := []repository.AdminBookingRow{}
	for _, b := range m.bookings.rows {
		if q.Status != "" && b.Status != q.Status {
			continue
		}
		out = append(out, repository.AdminBookingRow{ID: b.ID, UserID: b.UserID, GroundID: b.GroundID, Status: b.Status, TotalPrice: b.TotalPrice})
	}
	return out, int64(len(out)), nil
}
