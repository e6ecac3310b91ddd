package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/agendavista/task-api/internal/api/middleware"
)

// identity is the authenticated caller attached by the Auth middleware.
type identity struct {
	ID    string
	Email string
	Name  string
}

// ctxIdentity extracts the identity injected by the Auth middleware. An empty
// user id means the middleware did not run on this route; reject rather than
// proceed unauthenticated.
func ctxIdentity(c echo.Context) (identity, error) {
	id, _ := c.Get(middleware.CtxUserID).(string)
	if id == "" {
		return identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	email, _ := c.Get(middleware.CtxEmail).(string)
	name, _ := c.Get(middleware.CtxName).(string)
	return identity{ID: id, Email: email, Name: name}, nil
}
