package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxIdentity extracts the identity injected by the session gate and
// performs a fast-fail check before rendering: a non-empty username and role
// prove the gate ran for this request.
func ctxIdentity(c echo.Context) (username, role string, err error) {
	username, _ = c.Get("username").(string)
	role, _ = c.Get("role").(string)
	if username == "" || role == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing session identity")
	}
	return username, role, nil
}
