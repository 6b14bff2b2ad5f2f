// Package handler exposes HTTP handlers for both authenticated and public endpoints.
// This file defines the public browsing API: unauthenticated users list
// grounds, open one and see its priced slot grid.

package handler

import (
    "context"
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/turf-booking/internal/model"
    "github.com/iliyamo/turf-booking/internal/repository"
    "github.com/iliyamo/turf-booking/internal/service"
)

// GroundReader lists and loads grounds.
type GroundReader interface {
    ListAll(ctx context.Context, f repository.GroundFilter) ([]model.Ground, error)
    GetByID(ctx context.Context, id uint64) (*model.Ground, error)
}

// PublicHandler serves the unauthenticated catalog routes.
type PublicHandler struct {
    Grounds  GroundReader
    Bookings *service.BookingService
}

func NewPublicHandler(grounds GroundReader, bookings *service.BookingService) *PublicHandler {
    return &PublicHandler{Grounds: grounds, Bookings: bookings}
}

// ListGrounds handles GET /v1/grounds?city=&sport=.  Response JSON
// contains an "items" array.
func (h *PublicHandler) ListGrounds(c echo.Context) error {
    f := repository.GroundFilter{
        City:  strings.TrimSpace(c.QueryParam("city")),
        Sport: strings.ToLower(strings.TrimSpace(c.QueryParam("sport"))),
    }
    grounds, err := h.Grounds.ListAll(c.Request().Context(), f)
    if err != nil {
        return respondError(c, err)
    }
    out := make([]*groundView, 0, len(grounds))
    for i := range grounds {
        out = append(out, toGroundView(&grounds[i]))
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetGround handles GET /v1/grounds/:id.
func (h *PublicHandler) GetGround(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return badID(c, "ground")
    }
    g, err := h.Grounds.GetByID(c.Request().Context(), id)
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, toGroundView(g))
}

// Slots handles GET /v1/grounds/:id/slots and returns the ground's grid
// priced from its current rules.
func (h *PublicHandler) Slots(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return badID(c, "ground")
    }
    grid, err := h.Bookings.Slots(c.Request().Context(), id)
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{
        "ground":    toGroundView(grid.Ground),
        "openTime":  grid.Ground.OpenTime,
        "closeTime": grid.Ground.CloseTime,
        "slots":     grid.Slots,
    })
}
