package model

import "github.com/shopspring/decimal"

// Ground represents a bookable sports venue.  Grounds are read-only for the
// booking flow; only admins create them.  OpenTime and CloseTime are
// wall-clock "HH:MM" strings and CloseTime may be earlier than OpenTime when
// the ground stays open past midnight.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – display name of the ground.
//  Location  – neighbourhood / address line.
//  City      – city used for filtering.
//  Sports    – supported sports (never empty).
//  BasePrice – hourly base price.
//  OpenTime  – first bookable slot.
//  CloseTime – end of the last bookable slot.
//  Rating    – average rating, 0–5.
//  ImageURL  – optional cover image.
type Ground struct {
    ID        uint64          // grounds.id
    Name      string          // grounds.name
    Location  string          // grounds.location
    City      string          // grounds.city
    Sports    []string        // grounds.sports (JSON array)
    BasePrice decimal.Decimal // grounds.base_price
    OpenTime  string          // grounds.open_time
    CloseTime string          // grounds.close_time
    Rating    decimal.Decimal // grounds.rating
    ImageURL  *string         // grounds.image_url (nullable)
}

// SupportsSport reports whether the ground lists the given sport.
func (g Ground) SupportsSport(sport string) bool {
    for _, s := range g.Sports {
        if s == sport {
            return true
        }
    }
    return false
}
