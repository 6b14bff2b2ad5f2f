package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/turf-booking/internal/model"
)

// ErrBookingNotFound indicates that a booking was not located in the DB.
var ErrBookingNotFound = errors.New("booking not found")

// BookingRepo provides persistence for bookings.  All timestamp fields
// are assumed to be stored in UTC.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

const bookingColumns = `id, user_id, ground_id, date, start_time, end_time, duration, total_price, used_loyalty_points, status, created_at`

func scanBooking(row interface{ Scan(...any) error }, b *model.Booking) error {
	return row.Scan(&b.ID, &b.UserID, &b.GroundID, &b.Date, &b.StartTime, &b.EndTime,
		&b.Duration, &b.TotalPrice, &b.UsedLoyaltyPoints, &b.Status, &b.CreatedAt)
}

// Create inserts a booking and populates its generated ID and created_at.
// Status defaults to confirmed when empty.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	if b.Status == "" {
		b.Status = model.BookingConfirmed
	}
	const q = `INSERT INTO bookings (user_id, ground_id, date, start_time, end_time, duration, total_price, used_loyalty_points, status)
               VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, b.UserID, b.GroundID, b.Date, b.StartTime, b.EndTime,
		b.Duration, b.TotalPrice, b.UsedLoyaltyPoints, b.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	// Read back created_at, which the DB fills in.
	return r.db.QueryRowContext(ctx, `SELECT created_at FROM bookings WHERE id = ?`, b.ID).Scan(&b.CreatedAt)
}

// GetByID returns a booking or ErrBookingNotFound.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
	var b model.Booking
	err := scanBooking(r.db.QueryRowContext(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = ?`, id), &b)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &b, nil
}

// ListByUser returns a user's bookings, newest first.  When the user has no
// bookings it returns an empty slice and nil error.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Booking, error) {
	q := `SELECT ` + bookingColumns + ` FROM bookings WHERE user_id = ? ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Booking{}
	for rows.Next() {
		var b model.Booking
		if err := scanBooking(rows, &b); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Transition moves a confirmed booking to cancelled or completed.  When
// userID is non-zero the booking must belong to that user, otherwise
// ErrForbidden is returned; admins pass zero.  Any status other than
// confirmed yields ErrConflict.  The read and the update run in one
// transaction with the row locked.
func (r *BookingRepo) Transition(ctx context.Context, id, userID uint64, to string) (err error) {
	if to != model.BookingCancelled && to != model.BookingCompleted {
		return ErrConflict
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()
	var (
		owner  uint64
		status string
	)
	err = tx.QueryRowContext(ctx, `SELECT user_id, status FROM bookings WHERE id = ? FOR UPDATE`, id).Scan(&owner, &status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrBookingNotFound
		}
		return err
	}
	if userID != 0 && owner != userID {
		return ErrForbidden
	}
	if status != model.BookingConfirmed {
		return ErrConflict
	}
	_, err = tx.ExecContext(ctx, `UPDATE bookings SET status = ? WHERE id = ?`, to, id)
	return err
}
