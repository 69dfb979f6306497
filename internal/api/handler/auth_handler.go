package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/abc-restaurant/restaurant-gateway/internal/api/metrics"
	"github.com/abc-restaurant/restaurant-gateway/internal/api/middleware"
	"github.com/abc-restaurant/restaurant-gateway/internal/core/domain"
	"github.com/abc-restaurant/restaurant-gateway/internal/core/ports"
	"github.com/abc-restaurant/restaurant-gateway/internal/core/token"
)

// AuthHandler serves registration, login, and logout for every partition.
// The same handlers are registered three times with different roles; the
// partition-specific pieces (login page, landing page) come from the route
// table.
type AuthHandler struct {
	auth  ports.AuthService
	codec *token.Codec
	table *domain.RouteTable
}

func NewAuthHandler(auth ports.AuthService, codec *token.Codec, table *domain.RouteTable) *AuthHandler {
	return &AuthHandler{auth: auth, codec: codec, table: table}
}

type signupRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
	Email    string `json:"email" form:"email" validate:"omitempty,email"`
	FullName string `json:"full_name" form:"full_name"`
}

type loginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// Signup returns the registration handler for one partition.
//
// @Summary      Register a new account in a role partition
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Account details"
// @Success      200   {object}  domain.UserAccount
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /req/signup [post]
func (h *AuthHandler) Signup(role domain.Role) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req signupRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}

		account, err := h.auth.Register(c.Request().Context(), role, ports.RegisterInput{
			Username: req.Username,
			Password: req.Password,
			Email:    req.Email,
			FullName: req.FullName,
		})
		if err != nil {
			status := http.StatusInternalServerError
			switch err {
			case domain.ErrUserExists:
				status = http.StatusConflict
			case domain.ErrValidation:
				status = http.StatusBadRequest
			}
			return c.JSON(status, map[string]string{"error": err.Error()})
		}

		metrics.SignupsTotal.WithLabelValues(string(role)).Inc()

		// The stored hash stays server-side: UserAccount tags PasswordHash
		// with json:"-".
		return c.JSON(http.StatusOK, account)
	}
}

// Login returns the credential-submission handler for one partition. On
// success it sets the signed session cookie and redirects to the partition's
// landing page; on failure it answers 401 without distinguishing unknown
// usernames from wrong passwords.
//
// @Summary      Authenticate against a role partition
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      302
// @Failure      401   {object}  map[string]string
// @Router       /login [post]
func (h *AuthHandler) Login(role domain.Role) echo.HandlerFunc {
	rule, _ := h.table.Rule(role)
	return func(c echo.Context) error {
		var req loginRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		}

		session, err := h.auth.Login(c.Request().Context(), role, req.Username, req.Password)
		if err != nil {
			metrics.LoginsTotal.WithLabelValues(string(role), "failure").Inc()
			status := http.StatusInternalServerError
			if err == domain.ErrInvalidCredentials {
				status = http.StatusUnauthorized
			}
			return c.JSON(status, map[string]string{"error": "invalid credentials"})
		}

		signed, err := h.codec.Encode(session)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		}

		c.SetCookie(&http.Cookie{
			Name:     middleware.SessionCookie,
			Value:    signed,
			Path:     "/",
			Expires:  session.ExpiresAt,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		metrics.LoginsTotal.WithLabelValues(string(role), "success").Inc()
		return c.Redirect(http.StatusFound, rule.LandingPage)
	}
}

// Logout destroys the current session, clears the cookie, and redirects to
// the login page of the partition the session belonged to. Repeated logouts
// are harmless.
func (h *AuthHandler) Logout(c echo.Context) error {
	loginPage := "/login"

	if cookie, err := c.Cookie(middleware.SessionCookie); err == nil && cookie.Value != "" {
		if claims, err := h.codec.Decode(cookie.Value); err == nil {
			if rule, ok := h.table.Rule(claims.Role); ok {
				loginPage = rule.LoginPage
			}
			if err := h.auth.Logout(c.Request().Context(), claims.SessionID); err != nil {
				return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
			}
		}
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
	})

	return c.Redirect(http.StatusFound, loginPage)
}

// LoginPage returns the public login form for one partition. View rendering
// lives elsewhere; this serves the minimal form the redirect targets need.
func (h *AuthHandler) LoginPage(role domain.Role) echo.HandlerFunc {
	rule, _ := h.table.Rule(role)
	return func(c echo.Context) error {
		return c.HTML(http.StatusOK,
			`<!DOCTYPE html><html><body><form method="post" action="`+rule.LoginPage+`">`+
				`<input name="username" placeholder="username">`+
				`<input name="password" type="password" placeholder="password">`+
				`<button type="submit">Sign in</button></form></body></html>`)
	}
}
