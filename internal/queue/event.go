// Package queue defines the booking.confirmed message and the RabbitMQ
// publisher and consumer that exchange it.
package queue

// BookingConfirmedEvent is published when a booking is stored. It carries
// enough of the booking and its ground for consumers to log or notify
// without querying the primary database.
type BookingConfirmedEvent struct {
    BookingID         uint64 `json:"booking_id"`
    UserID            uint64 `json:"user_id"`
    GroundID          uint64 `json:"ground_id"`
    GroundName        string `json:"ground_name"`
    City              string `json:"city"`
    Date              string `json:"date"`
    StartTime         string `json:"start_time"`
    EndTime           string `json:"end_time"`
    Duration          string `json:"duration"`
    TotalPrice        string `json:"total_price"`
    UsedLoyaltyPoints int    `json:"used_loyalty_points"`
    ConfirmedAt       string `json:"confirmed_at"`
}
