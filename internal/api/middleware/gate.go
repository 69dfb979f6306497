package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/abc-restaurant/restaurant-gateway/internal/api/metrics"
	"github.com/abc-restaurant/restaurant-gateway/internal/core/domain"
	"github.com/abc-restaurant/restaurant-gateway/internal/core/ports"
	"github.com/abc-restaurant/restaurant-gateway/internal/core/token"
)

// SessionCookie is the name of the signed session cookie.
const SessionCookie = "restaurant_session"

// SessionGate classifies every request path against the route table and
// enforces partition-scoped authentication. Register it with e.Pre so it
// runs before routing:
//
//   - public paths pass through untouched
//   - unmatched paths are rejected with 404
//   - protected paths require a valid signed cookie whose session still
//     exists server-side AND belongs to the partition owning the path;
//     otherwise the request is redirected to that partition's login page
//
// On success the authenticated identity is injected into the echo context
// for downstream handlers ("username", "role", "session_id").
func SessionGate(table *domain.RouteTable, codec *token.Codec, sessions ports.SessionStore, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			cls := table.Classify(path)

			switch cls.Kind {
			case domain.RoutePublic:
				return next(c)
			case domain.RouteUnmatched:
				metrics.UnmatchedRequestsTotal.Inc()
				return echo.NewHTTPError(http.StatusNotFound, "not found")
			}

			rule, ok := table.Rule(cls.Role)
			if !ok {
				// Classify never returns a partition absent from the table.
				return echo.NewHTTPError(http.StatusNotFound, "not found")
			}

			session, err := resolveSession(c, codec, sessions)
			if err != nil || session.Role != cls.Role {
				metrics.GateDecisionsTotal.WithLabelValues(string(cls.Role), "redirected").Inc()
				log.Debug().
					Str("path", path).
					Str("partition", string(cls.Role)).
					Msg("unauthenticated request redirected to login")
				return c.Redirect(http.StatusFound, rule.LoginPage)
			}

			c.Set("username", session.Username)
			c.Set("role", string(session.Role))
			c.Set("session_id", session.ID)

			metrics.GateDecisionsTotal.WithLabelValues(string(cls.Role), "allowed").Inc()
			return next(c)
		}
	}
}

// resolveSession verifies the cookie signature and loads the live session
// from the store. The cookie's own claims are revalidated against the stored
// record; a mismatch means the cookie no longer describes a real session.
func resolveSession(c echo.Context, codec *token.Codec, sessions ports.SessionStore) (*domain.Session, error) {
	cookie, err := c.Cookie(SessionCookie)
	if err != nil || cookie.Value == "" {
		return nil, domain.ErrUnauthenticated
	}

	claims, err := codec.Decode(cookie.Value)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}

	session, err := sessions.Get(c.Request().Context(), claims.SessionID)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}
	if session.Username != claims.Username || session.Role != claims.Role {
		return nil, domain.ErrUnauthenticated
	}

	return session, nil
}
