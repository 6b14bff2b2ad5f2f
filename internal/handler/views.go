package handler

import (
    "time"

    "github.com/shopspring/decimal"

    "github.com/iliyamo/turf-booking/internal/model"
    "github.com/iliyamo/turf-booking/internal/service"
)

// groundView is the public JSON shape of a ground.  Decimals are sent as
// strings, e.g. "2000.00".
type groundView struct {
    ID        uint64          `json:"id"`
    Name      string          `json:"name"`
    Location  string          `json:"location"`
    City      string          `json:"city"`
    Sports    []string        `json:"sports"`
    BasePrice decimal.Decimal `json:"basePrice"`
    Rating    decimal.Decimal `json:"rating"`
    OpenTime  string          `json:"openTime"`
    CloseTime string          `json:"closeTime"`
    ImageURL  *string         `json:"imageUrl,omitempty"`
}

func toGroundView(g *model.Ground) *groundView {
    if g == nil {
        return nil
    }
    sports := g.Sports
    if sports == nil {
        sports = []string{}
    }
    return &groundView{
        ID: g.ID, Name: g.Name, Location: g.Location, City: g.City, Sports: sports,
        BasePrice: g.BasePrice, Rating: g.Rating, OpenTime: g.OpenTime, CloseTime: g.CloseTime,
        ImageURL: g.ImageURL,
    }
}

// bookingView keeps the field names existing clients already read.
type bookingView struct {
    ID                uint64          `json:"id"`
    UserID            uint64          `json:"userId"`
    GroundID          uint64          `json:"groundId"`
    Date              string          `json:"date"`
    StartTime         string          `json:"startTime"`
    EndTime           string          `json:"endTime"`
    Duration          decimal.Decimal `json:"duration"`
    TotalPrice        decimal.Decimal `json:"totalPrice"`
    UsedLoyaltyPoints bool            `json:"usedLoyaltyPoints"`
    Status            string          `json:"status"`
    CreatedAt         time.Time       `json:"createdAt"`
    Ground            *groundView     `json:"ground,omitempty"`
}

func toBookingView(b model.Booking, g *model.Ground) bookingView {
    return bookingView{
        ID: b.ID, UserID: b.UserID, GroundID: b.GroundID, Date: b.Date,
        StartTime: b.StartTime, EndTime: b.EndTime, Duration: b.Duration, TotalPrice: b.TotalPrice,
        UsedLoyaltyPoints: b.UsedLoyaltyPoints, Status: b.Status, CreatedAt: b.CreatedAt,
        Ground: toGroundView(g),
    }
}

func toBookingViews(rows []service.BookingView) []bookingView {
    out := make([]bookingView, 0, len(rows))
    for _, r := range rows {
        out = append(out, toBookingView(r.Booking, r.Ground))
    }
    return out
}

type ruleView struct {
    ID         uint64          `json:"id"`
    GroundID   uint64          `json:"groundId"`
    TimeSlot   string          `json:"timeSlot"`
    Demand     string          `json:"demand"`
    Multiplier decimal.Decimal `json:"multiplier"`
}

func toRuleView(p model.PricingRule) ruleView {
    return ruleView{ID: p.ID, GroundID: p.GroundID, TimeSlot: p.TimeSlot, Demand: p.Demand, Multiplier: p.Multiplier}
}
