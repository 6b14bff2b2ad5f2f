package handler

import (
    "context"
    "net/http"
    "strconv"
    "strings"

    "github.com/labstack/echo/v4"
    "github.com/shopspring/decimal"

    "github.com/iliyamo/turf-booking/internal/middleware"
    "github.com/iliyamo/turf-booking/internal/model"
    "github.com/iliyamo/turf-booking/internal/pricing"
    "github.com/iliyamo/turf-booking/internal/repository"
)

// ReportReader serves the dashboard queries.
type ReportReader interface {
    Stats(ctx context.Context) (repository.Stats, error)
    ListBookings(ctx context.Context, q repository.AdminBookingQuery) ([]repository.AdminBookingRow, int64, error)
}

// GroundWriter creates grounds and checks they exist.
type GroundWriter interface {
    Create(ctx context.Context, g *model.Ground) error
    GetByID(ctx context.Context, id uint64) (*model.Ground, error)
}

// PricingStore manages per-slot pricing rules.
type PricingStore interface {
    ListByGround(ctx context.Context, groundID uint64) ([]model.PricingRule, error)
    Upsert(ctx context.Context, p *model.PricingRule) error
    Delete(ctx context.Context, groundID uint64, timeSlot string) error
}

// AdminHandler serves the /v1/admin routes.
type AdminHandler struct {
    Reports ReportReader
    Grounds GroundWriter
    Pricing PricingStore
}

func NewAdminHandler(reports ReportReader, grounds GroundWriter, pricing PricingStore) *AdminHandler {
    return &AdminHandler{Reports: reports, Grounds: grounds, Pricing: pricing}
}

func isAdmin(c echo.Context) bool {
    role, _ := middleware.Role(c)
    return role == model.RoleAdmin
}

// Stats handles GET /v1/admin/stats.
func (h *AdminHandler) Stats(c echo.Context) error {
    s, err := h.Reports.Stats(c.Request().Context())
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, s)
}

// Bookings handles GET /v1/admin/bookings?status=&groundId=&date=&page=&pageSize=.
func (h *AdminHandler) Bookings(c echo.Context) error {
    q := repository.AdminBookingQuery{
        Status:   strings.ToLower(strings.TrimSpace(c.QueryParam("status"))),
        Date:     strings.TrimSpace(c.QueryParam("date")),
        Page:     1,
        PageSize: 20,
    }
    switch q.Status {
    case "", model.BookingConfirmed, model.BookingCompleted, model.BookingCancelled:
    default:
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status", "field": "status"})
    }
    if v := c.QueryParam("groundId"); v != "" {
        id, err := strconv.ParseUint(v, 10, 64)
        if err != nil || id == 0 {
            return badID(c, "ground")
        }
        q.GroundID = id
    }
    if v, err := strconv.Atoi(c.QueryParam("page")); err == nil && v > 0 {
        q.Page = v
    }
    if v, err := strconv.Atoi(c.QueryParam("pageSize")); err == nil && v > 0 {
        q.PageSize = min(v, 100)
    }

    rows, total, err := h.Reports.ListBookings(c.Request().Context(), q)
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{
        "items":    rows,
        "page":     q.Page,
        "pageSize": q.PageSize,
        "total":    total,
    })
}

type createGroundReq struct {
    Name      string          `json:"name"`
    Location  string          `json:"location"`
    City      string          `json:"city"`
    Sports    []string        `json:"sports"`
    BasePrice decimal.Decimal `json:"basePrice"`
    Rating    decimal.Decimal `json:"rating"`
    OpenTime  string          `json:"openTime"`
    CloseTime string          `json:"closeTime"`
    ImageURL  *string         `json:"imageUrl"`
}

// CreateGround handles POST /v1/admin/grounds.  Hours are normalised to
// HH:MM and must sit on the half hour with a grid that reaches the close.
func (h *AdminHandler) CreateGround(c echo.Context) error {
    var req createGroundReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    g := model.Ground{
        Name:      strings.TrimSpace(req.Name),
        Location:  strings.TrimSpace(req.Location),
        City:      strings.TrimSpace(req.City),
        BasePrice: req.BasePrice,
        Rating:    req.Rating,
        ImageURL:  req.ImageURL,
    }
    if g.Name == "" || g.City == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and city required"})
    }
    for _, s := range req.Sports {
        if s = strings.ToLower(strings.TrimSpace(s)); s != "" && !g.SupportsSport(s) {
            g.Sports = append(g.Sports, s)
        }
    }
    if len(g.Sports) == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "at least one sport required", "field": "sports"})
    }
    if g.Rating.IsNegative() || g.Rating.GreaterThan(decimal.NewFromInt(5)) {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "rating must be 0-5", "field": "rating"})
    }
    var err error
    if g.OpenTime, err = pricing.NormalizeTime(req.OpenTime); err != nil {
        return respondError(c, err)
    }
    if g.CloseTime, err = pricing.NormalizeTime(req.CloseTime); err != nil {
        return respondError(c, err)
    }
    if err := pricing.ValidateHours(g.OpenTime, g.CloseTime); err != nil {
        return respondError(c, err)
    }
    if _, err := pricing.Generate(g.OpenTime, g.CloseTime, g.BasePrice, nil); err != nil {
        return respondError(c, err)
    }

    if err := h.Grounds.Create(c.Request().Context(), &g); err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusCreated, toGroundView(&g))
}

// ListPricing handles GET /v1/admin/grounds/:id/pricing.
func (h *AdminHandler) ListPricing(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return badID(c, "ground")
    }
    ctx := c.Request().Context()
    if _, err := h.Grounds.GetByID(ctx, id); err != nil {
        return respondError(c, err)
    }
    rules, err := h.Pricing.ListByGround(ctx, id)
    if err != nil {
        return respondError(c, err)
    }
    out := make([]ruleView, 0, len(rules))
    for _, r := range rules {
        out = append(out, toRuleView(r))
    }
    return c.JSON(http.StatusOK, echo.Map{"items": out})
}

type upsertRuleReq struct {
    Demand     string          `json:"demand"`
    Multiplier decimal.Decimal `json:"multiplier"`
}

// UpsertPricing handles PUT /v1/admin/grounds/:id/pricing/:slot.  The slot
// is given as HH:MM (e.g. 18:00) and the body carries demand and multiplier.
func (h *AdminHandler) UpsertPricing(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return badID(c, "ground")
    }
    var req upsertRuleReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    rule := model.PricingRule{
        GroundID:   id,
        TimeSlot:   c.Param("slot"),
        Demand:     strings.ToLower(strings.TrimSpace(req.Demand)),
        Multiplier: req.Multiplier,
    }
    if err := pricing.ValidateRule(rule.Rule()); err != nil {
        return respondError(c, err)
    }
    ctx := c.Request().Context()
    if _, err := h.Grounds.GetByID(ctx, id); err != nil {
        return respondError(c, err)
    }
    if err := h.Pricing.Upsert(ctx, &rule); err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, toRuleView(rule))
}

// DeletePricing handles DELETE /v1/admin/grounds/:id/pricing/:slot.  The
// slot falls back to low demand at 1.0x.  The slot is validated like
// UpsertPricing's.
func (h *AdminHandler) DeletePricing(c echo.Context) error {
    id, ok := pathID(c, "id")
    if !ok {
        return badID(c, "ground")
    }
    slot := c.Param("slot")
    if err := pricing.ValidateTimeSlot(slot); err != nil {
        return respondError(c, err)
    }
    if err := h.Pricing.Delete(c.Request().Context(), id, slot); err != nil {
        return respondError(c, err)
    }
    return c.NoContent(http.StatusNoContent)
}
