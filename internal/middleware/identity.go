package middleware

// identity.go reads back what JWTAuth stored in the Echo context.

import (
    "strconv"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/turf-booking/internal/utils"
)

// UserID returns the authenticated user's ID.
func UserID(c echo.Context) (uint64, bool) {
    id, ok := c.Get(ctxUserID).(uint64)
    return id, ok && id != 0
}

// Role returns the authenticated user's role.
func Role(c echo.Context) (string, bool) {
    r, ok := c.Get(ctxRole).(string)
    return r, ok && r != ""
}

// currentUserID is the user part of rate limit keys.  It prefers the ID
// JWTAuth stored and otherwise reads the bearer token; "anon" when neither
// yields a user.
func currentUserID(c echo.Context, secret string) string {
    if id, ok := UserID(c); ok {
        return strconv.FormatUint(id, 10)
    }
    auth := c.Request().Header.Get("Authorization")
    if secret == "" || !strings.HasPrefix(auth, "Bearer ") {
        return "anon"
    }
    claims, err := utils.ParseAccessToken(secret, strings.TrimSpace(strings.TrimPrefix(auth, "Bearer ")))
    if err != nil || claims.UserID == 0 {
        return "anon"
    }
    return strconv.FormatUint(claims.UserID, 10)
}
