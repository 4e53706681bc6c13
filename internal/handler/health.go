package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health is the plain-text liveness probe served at the root path. Load
// balancers and monitoring systems can use it to verify the service is up.
func Health(c echo.Context) error {
	return c.String(http.StatusOK, "auth service up")
}
