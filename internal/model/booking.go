package model

import (
    "time"

    "github.com/shopspring/decimal"
)

// Booking statuses.
const (
    BookingConfirmed = "confirmed"
    BookingCompleted = "completed"
    BookingCancelled = "cancelled"
)

// Booking is a confirmed reservation of consecutive or scattered slots on
// one ground for one date.  StartTime is the first selected slot and
// EndTime the end of the last one, so EndTime may be "earlier" than
// StartTime for bookings that run past midnight.
//
// Fields:
//  ID                – primary key identifier.
//  UserID            – user who made the booking.
//  GroundID          – ground being booked.
//  Date              – booking day ("YYYY-MM-DD").
//  StartTime         – first slot ("HH:MM").
//  EndTime           – end of the last slot ("HH:MM").
//  Duration          – hours, a multiple of 0.5.
//  TotalPrice        – amount charged after any loyalty discount.
//  UsedLoyaltyPoints – whether the loyalty discount was applied.
//  Status            – confirmed, completed or cancelled.
//  CreatedAt         – creation timestamp.
type Booking struct {
    ID                uint64          // bookings.id
    UserID            uint64          // bookings.user_id
    GroundID          uint64          // bookings.ground_id
    Date              string          // bookings.date
    StartTime         string          // bookings.start_time
    EndTime           string          // bookings.end_time
    Duration          decimal.Decimal // bookings.duration
    TotalPrice        decimal.Decimal // bookings.total_price
    UsedLoyaltyPoints bool            // bookings.used_loyalty_points
    Status            string          // bookings.status
    CreatedAt         time.Time       // bookings.created_at
}
