package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// ReportRepo serves the admin dashboard.  It reads across bookings, users
// and grounds and scans straight into the response rows with sqlx.
type ReportRepo struct {
	db *sqlx.DB
}

// NewReportRepo wraps an existing MySQL handle.
func NewReportRepo(db *sql.DB) *ReportRepo {
	return &ReportRepo{db: sqlx.NewDb(db, "mysql")}
}

// Stats summarises all bookings.  Revenue ignores cancelled bookings;
// ActiveUsers counts users with at least one booking.
type Stats struct {
	Revenue     decimal.Decimal `db:"revenue" json:"revenue"`
	Bookings    int64           `db:"bookings" json:"bookings"`
	ActiveUsers int64           `db:"active_users" json:"activeUsers"`
}

// Stats computes the dashboard totals in a single query.
func (r *ReportRepo) Stats(ctx context.Context) (Stats, error) {
	const q = `SELECT
			COALESCE(SUM(CASE WHEN status <> 'cancelled' THEN total_price END), 0) AS revenue,
			COUNT(*) AS bookings,
			COUNT(DISTINCT user_id) AS active_users
		FROM bookings`
	var s Stats
	if err := r.db.GetContext(ctx, &s, q); err != nil {
		return Stats{}, err
	}
	return s, nil
}

// AdminBookingRow is a booking joined with its user and ground.
type AdminBookingRow struct {
	ID                uint64          `db:"id" json:"id"`
	UserID            uint64          `db:"user_id" json:"userId"`
	GroundID          uint64          `db:"ground_id" json:"groundId"`
	Date              string          `db:"date" json:"date"`
	StartTime         string          `db:"start_time" json:"startTime"`
	EndTime           string          `db:"end_time" json:"endTime"`
	Duration          decimal.Decimal `db:"duration" json:"duration"`
	TotalPrice        decimal.Decimal `db:"total_price" json:"totalPrice"`
	UsedLoyaltyPoints bool            `db:"used_loyalty_points" json:"usedLoyaltyPoints"`
	Status            string          `db:"status" json:"status"`
	CreatedAt         time.Time       `db:"created_at" json:"createdAt"`
	Username          string          `db:"username" json:"username"`
	UserName          string          `db:"user_name" json:"userName"`
	UserEmail         string          `db:"user_email" json:"userEmail"`
	GroundName        string          `db:"ground_name" json:"groundName"`
	GroundCity        string          `db:"ground_city" json:"groundCity"`
}

// AdminBookingQuery filters and paginates ListBookings.
type AdminBookingQuery struct {
	Status   string
	GroundID uint64
	Date     string
	Page     int
	PageSize int
}

// ListBookings returns one page of bookings, newest first, plus the total
// number of matching rows.
func (r *ReportRepo) ListBookings(ctx context.Context, q AdminBookingQuery) ([]AdminBookingRow, int64, error) {
	where := []string{}
	args := []any{}
	if q.Status != "" {
		where = append(where, "b.status = ?")
		args = append(args, q.Status)
	}
	if q.GroundID != 0 {
		where = append(where, "b.ground_id = ?")
		args = append(args, q.GroundID)
	}
	if q.Date != "" {
		where = append(where, "b.date = ?")
		args = append(args, q.Date)
	}
	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM bookings b WHERE `+cond, args...); err != nil {
		return nil, 0, err
	}

	dataSQL := `SELECT
			b.id, b.user_id, b.ground_id, b.date, b.start_time, b.end_time,
			b.duration, b.total_price, b.used_loyalty_points, b.status, b.created_at,
			u.username, u.name AS user_name, u.email AS user_email,
			g.name AS ground_name, g.city AS ground_city
		FROM bookings b
		JOIN users u   ON u.id = b.user_id
		JOIN grounds g ON g.id = b.ground_id
		WHERE ` + cond + `
		ORDER BY b.created_at DESC, b.id DESC
		LIMIT ? OFFSET ?`
	argsData := append(append([]any{}, args...), q.PageSize, (q.Page-1)*q.PageSize)

	out := []AdminBookingRow{}
	if err := r.db.SelectContext(ctx, &out, dataSQL, argsData...); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
