package router

import (
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/turf-booking/internal/config"
	"github.com/iliyamo/turf-booking/internal/handler"
	"github.com/iliyamo/turf-booking/internal/service"
)

func TestRouteTable(t *testing.T) {
	e := echo.New()
	const secret = "s"
	RegisterRoutes(e, nil)
	RegisterAuth(e, handler.NewAuthHandler(config.Config{JWTSecret: secret}, nil, nil), secret)
	svc := service.NewBookingService(nil, nil, nil, nil)
	RegisterPublic(e, handler.NewPublicHandler(nil, svc), nil)
	RegisterCustomer(e, handler.NewCustomerHandler(svc), secret)
	RegisterAdmin(e, handler.NewAdminHandler(nil, nil, nil), secret)

	// Groups with middleware also register catch-all not-found routes.
	methods := map[string]bool{http.MethodGet: true, http.MethodPost: true, http.MethodPut: true, http.MethodDelete: true}
	var got []string
	for _, r := range e.Routes() {
		if methods[r.Method] {
			got = append(got, r.Method+" "+r.Path)
		}
	}
	sort.Strings(got)
	want := []string{
		"DELETE /v1/admin/grounds/:id/pricing/:slot",
		"DELETE /v1/bookings/:id",
		"GET /healthz",
		"GET /v1/admin/bookings",
		"GET /v1/admin/grounds/:id/pricing",
		"GET /v1/admin/stats",
		"GET /v1/bookings",
		"GET /v1/bookings/:id",
		"GET /v1/grounds",
		"GET /v1/grounds/:id",
		"GET /v1/grounds/:id/slots",
		"GET /v1/me",
		"POST /v1/admin/grounds",
		"POST /v1/auth/login",
		"POST /v1/auth/logout",
		"POST /v1/auth/refresh",
		"POST /v1/auth/refresh-access",
		"POST /v1/auth/register",
		"POST /v1/bookings",
		"POST /v1/grounds/:id/quote",
		"PUT /v1/admin/grounds/:id/pricing/:slot",
	}
	assert.Equal(t, want, got)
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	e := echo.New()
	svc := service.NewBookingService(nil, nil, nil, nil)
	RegisterCustomer(e, handler.NewCustomerHandler(svc), "s")
	RegisterAdmin(e, handler.NewAdminHandler(nil, nil, nil), "s")

	for _, path := range []string{"/v1/bookings", "/v1/admin/stats"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}
