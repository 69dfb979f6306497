package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// PageHandler serves the protected page stubs behind the session gate. The
// real restaurant views (menu, orders, reservations, feedback, gallery) are
// external collaborators; the gateway's job ends at proving who is asking.
type PageHandler struct{}

func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

type pageResponse struct {
	Page     string `json:"page"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Serve answers any protected path with the authenticated identity, showing
// downstream handlers what the gate makes available.
func (h *PageHandler) Serve(c echo.Context) error {
	username, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pageResponse{
		Page:     c.Request().URL.Path,
		Username: username,
		Role:     role,
	})
}
