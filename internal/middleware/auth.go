package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
    "context"  // context with timeout around store lookups
    "net/http" // HTTP status codes for responses
    "time"     // timeout duration

    "github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

    "github.com/iliyamo/user-auth-service/internal/auth"
)

// ContextUsername is the echo context key under which the gate stores the
// authenticated username for downstream handlers.
const ContextUsername = "username"

// SessionAuth returns an Echo middleware that gates protected routes on a
// valid, unexpired session cookie. On success the session's username is
// injected into the request context via c.Set(ContextUsername); on failure
// the protected handler is never invoked. Missing and invalid cookies
// yield the same generic 401 so the response reveals nothing beyond the
// failure itself.
func SessionAuth(svc *auth.Service, cookieName string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            cookie, err := c.Cookie(cookieName)
            if err != nil || cookie.Value == "" {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
            }

            ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
            defer cancel()

            username, ok, err := svc.CheckSession(ctx, cookie.Value)
            if err != nil {
                return c.JSON(http.StatusInternalServerError, echo.Map{"error": "auth check failed"})
            }
            if !ok {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
            }

            c.Set(ContextUsername, username)
            return next(c)
        }
    }
}

// BasicAuth returns an Echo middleware gating protected routes on HTTP
// Basic credentials. The full password verify runs against the user store
// on every request; nothing is cached. Unlike the session gate this one
// distinguishes "no credentials supplied" (400) from "credentials invalid"
// (401): with Basic auth the absence of the header is a malformed request,
// not a failed authentication attempt.
func BasicAuth(svc *auth.Service) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            username, password, ok := c.Request().BasicAuth()
            if !ok {
                return c.JSON(http.StatusBadRequest, echo.Map{"error": "credentials required"})
            }

            ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
            defer cancel()

            valid, err := svc.CheckPassword(ctx, username, password)
            if err != nil {
                return c.JSON(http.StatusInternalServerError, echo.Map{"error": "auth check failed"})
            }
            if !valid {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
            }

            c.Set(ContextUsername, username)
            return next(c)
        }
    }
}
