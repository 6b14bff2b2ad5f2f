package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/turf-booking/internal/config"
	"github.com/iliyamo/turf-booking/internal/utils"
)

const secret = "test-secret"

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func do(e *echo.Echo, method, path, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestJWTAuthAndRole(t *testing.T) {
	e := echo.New()
	admin := e.Group("/admin", JWTAuth(secret), RequireRole("ADMIN"))
	admin.GET("/ping", func(c echo.Context) error {
		id, ok := UserID(c)
		require.True(t, ok)
		return c.JSON(http.StatusOK, echo.Map{"id": id})
	})

	adminTok, err := utils.NewAccessToken(secret, 1, "ADMIN", 5)
	require.NoError(t, err)
	customerTok, err := utils.NewAccessToken(secret, 2, "CUSTOMER", 5)
	require.NoError(t, err)
	foreign, err := utils.NewAccessToken("other", 1, "ADMIN", 5)
	require.NoError(t, err)

	rec := do(e, http.MethodGet, "/admin/ping", adminTok.Token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":1}`, rec.Body.String())

	assert.Equal(t, http.StatusForbidden, do(e, http.MethodGet, "/admin/ping", customerTok.Token).Code)
	assert.Equal(t, http.StatusUnauthorized, do(e, http.MethodGet, "/admin/ping", foreign.Token).Code)
	assert.Equal(t, http.StatusUnauthorized, do(e, http.MethodGet, "/admin/ping", "").Code)
}

func TestRequireRole_WithoutAuth(t *testing.T) {
	e := echo.New()
	e.GET("/x", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, RequireRole("ADMIN"))
	assert.Equal(t, http.StatusForbidden, do(e, http.MethodGet, "/x", "").Code)
}

func rateConfig() config.RateLimitConfig {
	return config.RateLimitConfig{
		Enabled:        true,
		Capacity:       2,
		RefillTokens:   1,
		RefillInterval: time.Hour,
		TTL:            5 * time.Hour,
		KeyStrategy:    "ip",
		Prefix:         "test:rl",
	}
}

func limitedEcho(mw echo.MiddlewareFunc) *echo.Echo {
	e := echo.New()
	e.Use(mw)
	e.GET("/v1/grounds", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	return e
}

func TestTokenBucket_Redis(t *testing.T) {
	mr, rdb := newRedis(t)
	e := limitedEcho(NewTokenBucket(rateConfig(), rdb, secret))

	first := do(e, http.MethodGet, "/v1/grounds", "")
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/v1/grounds", "").Code)

	blocked := do(e, http.MethodGet, "/v1/grounds", "")
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)
	assert.NotEmpty(t, blocked.Header().Get("Retry-After"))
	assert.NotEmpty(t, mr.Keys())
}

func TestTokenBucket_LocalFallback(t *testing.T) {
	e := limitedEcho(NewTokenBucket(rateConfig(), nil, secret))
	assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/v1/grounds", "").Code)
	assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/v1/grounds", "").Code)

	blocked := do(e, http.MethodGet, "/v1/grounds", "")
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)
	assert.Equal(t, "3600", blocked.Header().Get("Retry-After"))
}

func TestTokenBucket_RedisDownFallsBack(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond, MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })
	e := limitedEcho(NewTokenBucket(rateConfig(), rdb, secret))
	assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/v1/grounds", "").Code)
	assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/v1/grounds", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, do(e, http.MethodGet, "/v1/grounds", "").Code)
}

func TestTokenBucket_PerUserBuckets(t *testing.T) {
	cfg := rateConfig()
	cfg.KeyStrategy = "user"
	_, rdb := newRedis(t)

	ahmed, err := utils.NewAccessToken(secret, 2, "CUSTOMER", 5)
	require.NoError(t, err)
	sara, err := utils.NewAccessToken(secret, 3, "CUSTOMER", 5)
	require.NoError(t, err)

	for name, mw := range map[string]echo.MiddlewareFunc{
		"redis": NewTokenBucket(cfg, rdb, secret),
		"local": NewTokenBucket(cfg, nil, secret),
	} {
		t.Run(name, func(t *testing.T) {
			e := limitedEcho(mw)
			assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/v1/grounds", ahmed.Token).Code)
			assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/v1/grounds", ahmed.Token).Code)
			assert.Equal(t, http.StatusTooManyRequests, do(e, http.MethodGet, "/v1/grounds", ahmed.Token).Code)

			assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/v1/grounds", sara.Token).Code)
			assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/v1/grounds", "").Code)
		})
	}
}

func TestCurrentUserID(t *testing.T) {
	tok, err := utils.NewAccessToken(secret, 7, "CUSTOMER", 5)
	require.NoError(t, err)
	forged, err := utils.NewAccessToken("other", 8, "CUSTOMER", 5)
	require.NoError(t, err)

	e := echo.New()
	ctx := func(bearer string) echo.Context {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if bearer != "" {
			req.Header.Set("Authorization", "Bearer "+bearer)
		}
		return e.NewContext(req, httptest.NewRecorder())
	}
	assert.Equal(t, "7", currentUserID(ctx(tok.Token), secret))
	assert.Equal(t, "anon", currentUserID(ctx(forged.Token), secret))
	assert.Equal(t, "anon", currentUserID(ctx(""), secret))

	authed := ctx("")
	authed.Set(ctxUserID, uint64(9))
	assert.Equal(t, "9", currentUserID(authed, secret))
}

func TestTokenBucket_Disabled(t *testing.T) {
	cfg := rateConfig()
	cfg.Enabled = false
	e := limitedEcho(NewTokenBucket(cfg, nil, secret))
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/v1/grounds", "").Code)
	}
}

func cacheConfig() config.CacheConfig {
	return config.CacheConfig{
		Enabled:     true,
		Methods:     []string{"GET"},
		TTL:         time.Minute,
		KeyStrategy: "route_query",
		Prefix:      "test:cache",
	}
}

func TestRedisCache(t *testing.T) {
	mr, rdb := newRedis(t)
	calls := 0
	e := echo.New()
	e.GET("/v1/grounds/:id/slots", func(c echo.Context) error {
		calls++
		return c.JSON(http.StatusOK, echo.Map{"ground": c.Param("id")})
	}, NewRedisCache(cacheConfig(), rdb))

	miss := do(e, http.MethodGet, "/v1/grounds/1/slots", "")
	assert.Equal(t, "MISS", miss.Header().Get("X-Cache"))
	hit := do(e, http.MethodGet, "/v1/grounds/1/slots", "")
	assert.Equal(t, "HIT", hit.Header().Get("X-Cache"))
	assert.Equal(t, miss.Body.String(), hit.Body.String())
	assert.Equal(t, echo.MIMEApplicationJSON, hit.Header().Get(echo.HeaderContentType))
	assert.Equal(t, 1, calls)

	other := do(e, http.MethodGet, "/v1/grounds/2/slots", "")
	assert.Equal(t, "MISS", other.Header().Get("X-Cache"))
	assert.JSONEq(t, `{"ground":"2"}`, other.Body.String())
	assert.Equal(t, 2, calls)

	mr.FastForward(2 * time.Minute)
	assert.Equal(t, "MISS", do(e, http.MethodGet, "/v1/grounds/1/slots", "").Header().Get("X-Cache"))
	assert.Equal(t, 3, calls)
}

func TestRedisCache_SkipsErrors(t *testing.T) {
	_, rdb := newRedis(t)
	calls := 0
	e := echo.New()
	e.GET("/v1/grounds/:id", func(c echo.Context) error {
		calls++
		return c.JSON(http.StatusNotFound, echo.Map{"error": "ground not found"})
	}, NewRedisCache(cacheConfig(), rdb))

	do(e, http.MethodGet, "/v1/grounds/9", "")
	do(e, http.MethodGet, "/v1/grounds/9", "")
	assert.Equal(t, 2, calls)
}

func TestPayloadRoundTrip(t *testing.T) {
	hdr := http.Header{"Content-Type": {"application/json"}}
	bs, err := encodePayload(http.StatusOK, hdr, []byte(`{"a":1}`))
	require.NoError(t, err)
	status, gotHdr, body, ok := decodePayload(bs)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, hdr, gotHdr)
	assert.Equal(t, `{"a":1}`, string(body))

	_, _, _, ok = decodePayload([]byte{0, 0, 0})
	assert.False(t, ok)
}
