package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/turf-booking/internal/middleware"
    "github.com/iliyamo/turf-booking/internal/service"
)

// CustomerHandler serves quoting and booking for signed-in users.  All
// methods assume JWTAuth and RequireRole already ran.
type CustomerHandler struct {
    Bookings *service.BookingService
}

func NewCustomerHandler(bookings *service.BookingService) *CustomerHandler {
    return &CustomerHandler{Bookings: bookings}
}

type quoteReq struct {
    Slots      []string `json:"slots"`
    UseLoyalty bool     `json:"useLoyalty"`
}

type createBookingReq struct {
    GroundID   uint64   `json:"groundId"`
    Date       string   `json:"date"`
    Slots      []string `json:"slots"`
    UseLoyalty bool     `json:"useLoyalty"`
}

// Quote handles POST /v1/grounds/:id/quote.  It prices the selection the
// same way booking does but stores nothing.
func (h *CustomerHandler) Quote(c echo.Context) error {
    uid, ok := middleware.UserID(c)
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    groundID, ok := pathID(c, "id")
    if !ok {
        return badID(c, "ground")
    }
    var req quoteReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    q, err := h.Bookings.Quote(c.Request().Context(), uid, groundID, req.Slots, req.UseLoyalty)
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, q)
}

// Create handles POST /v1/bookings.  The price is always recomputed on the
// server; any client-side total is ignored.
func (h *CustomerHandler) Create(c echo.Context) error {
    uid, ok := middleware.UserID(c)
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var req createBookingReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if req.GroundID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "groundId required", "field": "groundId"})
    }
    b, err := h.Bookings.Book(c.Request().Context(), uid, service.BookRequest{
        GroundID:   req.GroundID,
        Date:       req.Date,
        Slots:      req.Slots,
        UseLoyalty: req.UseLoyalty,
    })
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusCreated, echo.Map{
        "id":      b.ID,
        "status":  b.Status,
        "message": "Booking confirmed",
        "booking": toBookingView(*b, nil),
    })
}

// List handles GET /v1/bookings: the caller's bookings, newest first.
func (h *CustomerHandler) List(c echo.Context) error {
    uid, ok := middleware.UserID(c)
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    rows, err := h.Bookings.ListForUser(c.Request().Context(), uid)
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"items": toBookingViews(rows)})
}

// Get handles GET /v1/bookings/:id.  Customers see only their own
// bookings; admins see any.
func (h *CustomerHandler) Get(c echo.Context) error {
    uid, ok := middleware.UserID(c)
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, ok := pathID(c, "id")
    if !ok {
        return badID(c, "booking")
    }
    owner := uid
    if isAdmin(c) {
        owner = 0
    }
    v, err := h.Bookings.Get(c.Request().Context(), owner, id)
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, toBookingView(v.Booking, v.Ground))
}

// Cancel handles DELETE /v1/bookings/:id.  Only the owner can cancel and
// only while the booking is confirmed.
func (h *CustomerHandler) Cancel(c echo.Context) error {
    uid, ok := middleware.UserID(c)
    if !ok {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    id, ok := pathID(c, "id")
    if !ok {
        return badID(c, "booking")
    }
    if err := h.Bookings.Cancel(c.Request().Context(), uid, id); err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"id": id, "status": "cancelled"})
}
