package handler

import (
    "context"  // provides context with cancellation for store calls
    "errors"   // sentinel error matching
    "net/http" // HTTP status codes and cookie primitives
    "strings"  // string manipulation utilities
    "time"     // timeouts for store calls

    "github.com/labstack/echo/v4" // Echo framework for HTTP routing

    "github.com/iliyamo/user-auth-service/internal/auth"
    "github.com/iliyamo/user-auth-service/internal/config"
    "github.com/iliyamo/user-auth-service/internal/queue"
    "github.com/iliyamo/user-auth-service/internal/repository"
)

// AuthHandler bundles dependencies for the auth endpoints.
type AuthHandler struct {
	Cfg    config.Config
	Svc    *auth.Service
	Events *queue.Publisher
}

func NewAuthHandler(cfg config.Config, svc *auth.Service, events *queue.Publisher) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Svc: svc, Events: events}
}

// ----- DTOs -----

type credentialsReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// userPart is the outward shape of a user record. The password hash is
// stripped here, before serialization, never left to the caller to omit.
type userPart struct {
	ID        uint64    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// Register: create the user and return the stored record with the hash
// redacted. When session-on-register is enabled under the cookie strategy,
// the new user also receives a session cookie right away.
func (h *AuthHandler) Register(c echo.Context) error {
	var req credentialsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Svc.Register(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, repository.ErrUsernameExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "username already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}

	if h.Cfg.SessionOnRegister && h.Cfg.AuthStrategy == config.AuthStrategyCookie {
		sid, err := h.Svc.IssueSession(ctx, u.Username)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create session failed"})
		}
		h.setSessionCookie(c, sid)
	}

	h.Events.Publish(queue.AuthEvent{
		Type:     queue.EventUserRegistered,
		Username: u.Username,
		At:       time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, userPart{ID: u.ID, Username: u.Username, CreatedAt: u.CreatedAt})
}

// Login: verify credentials and, under the cookie strategy, deliver the
// session token as an HttpOnly cookie. Unknown username and wrong password
// produce the same response.
func (h *AuthHandler) Login(c echo.Context) error {
	var req credentialsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	sid, u, err := h.Svc.Login(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid Credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login failed"})
	}

	if h.Cfg.AuthStrategy == config.AuthStrategyCookie {
		h.setSessionCookie(c, sid)
	}

	h.Events.Publish(queue.AuthEvent{
		Type:     queue.EventUserLogin,
		Username: u.Username,
		At:       time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusOK, echo.Map{"message": "welcome back, " + u.Username})
}

// Logout: destroy the session named by the cookie and expire the cookie.
// A missing or already-destroyed session still reports success; only a
// store failure does not.
func (h *AuthHandler) Logout(c echo.Context) error {
	sid := ""
	if cookie, err := c.Cookie(h.Cfg.SessionCookieName); err == nil {
		sid = cookie.Value
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Svc.Logout(ctx, sid); err != nil {
		return c.String(http.StatusInternalServerError, "logout failed")
	}
	h.clearSessionCookie(c)

	if sid != "" {
		h.Events.Publish(queue.AuthEvent{
			Type: queue.EventUserLogout,
			At:   time.Now().UTC().Format(time.RFC3339),
		})
	}
	return c.String(http.StatusOK, "goodbye")
}

// setSessionCookie attaches the session token. HttpOnly keeps it away from
// page scripts; Secure is enforced in prod where transport is encrypted.
func (h *AuthHandler) setSessionCookie(c echo.Context, sid string) {
	c.SetCookie(&http.Cookie{
		Name:     h.Cfg.SessionCookieName,
		Value:    sid,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.Cfg.Env == "prod",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(h.Cfg.SessionMaxAge / time.Second),
	})
}

func (h *AuthHandler) clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     h.Cfg.SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.Cfg.Env == "prod",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
