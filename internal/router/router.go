package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/user-auth-service/internal/auth"
	"github.com/iliyamo/user-auth-service/internal/config"
	"github.com/iliyamo/user-auth-service/internal/handler"
	"github.com/iliyamo/user-auth-service/internal/middleware"
)

// RegisterRoutes wires every endpoint onto the Echo instance. The access
// gate for the protected routes is chosen once from the configured
// credential-presentation strategy (validated at startup, so anything that
// is not "header" is the cookie strategy here); strategies are never mixed
// within one deployment. The gate is attached per protected route rather
// than on the /api group so unknown paths under /api still fall through to
// the 404 handler instead of being intercepted by the gate.
//
//	GET  /              liveness
//	POST /api/register  create a user
//	POST /api/login     authenticate, issue session (cookie strategy)
//	GET  /api/logout    destroy session (cookie strategy only)
//	GET  /api/users     protected listing
func RegisterRoutes(e *echo.Echo, cfg config.Config, h *handler.AuthHandler, svc *auth.Service) {
	e.GET("/", handler.Health)

	api := e.Group("/api")
	api.POST("/register", h.Register)
	api.POST("/login", h.Login)

	var gate echo.MiddlewareFunc
	if cfg.AuthStrategy == config.AuthStrategyHeader {
		gate = middleware.BasicAuth(svc)
	} else {
		gate = middleware.SessionAuth(svc, cfg.SessionCookieName)
		// Logout only makes sense when a server-side session exists.
		api.GET("/logout", h.Logout)
	}

	// The gate runs before the handler; unauthenticated callers never
	// reach it.
	api.GET("/users", h.Users, gate)
}
