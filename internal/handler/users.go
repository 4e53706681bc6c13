package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// Users lists every registered user. The route sits behind the access
// gate, so by the time this runs the caller has already proven identity.
// Password hashes are shaped out of the response here.
func (h *AuthHandler) Users(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	users, err := h.Svc.ListUsers(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list users failed"})
	}

	out := make([]userPart, 0, len(users))
	for _, u := range users {
		out = append(out, userPart{ID: u.ID, Username: u.Username, CreatedAt: u.CreatedAt})
	}
	return c.JSON(http.StatusOK, out)
}
