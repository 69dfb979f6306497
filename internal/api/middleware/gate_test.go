package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/abc-restaurant/restaurant-gateway/internal/core/domain"
	"github.com/abc-restaurant/restaurant-gateway/internal/core/token"
)

type stubSessionStore struct {
	sessions map[string]*domain.Session
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]*domain.Session)}
}

func (s *stubSessionStore) Save(_ context.Context, session *domain.Session, _ time.Duration) error {
	clone := *session
	s.sessions[session.ID] = &clone
	return nil
}

func (s *stubSessionStore) Get(_ context.Context, id string) (*domain.Session, error) {
	if sess, ok := s.sessions[id]; ok {
		clone := *sess
		return &clone, nil
	}
	return nil, domain.ErrSessionNotFound
}

func (s *stubSessionStore) Delete(_ context.Context, id string) error {
	delete(s.sessions, id)
	return nil
}

type gateFixture struct {
	e     *echo.Echo
	codec *token.Codec
	store *stubSessionStore
	mw    echo.MiddlewareFunc
}

func newGateFixture() *gateFixture {
	codec := token.NewCodec("test-secret")
	store := newStubSessionStore()
	return &gateFixture{
		e:     echo.New(),
		codec: codec,
		store: store,
		mw:    SessionGate(domain.DefaultRouteTable(), codec, store, zerolog.Nop()),
	}
}

// loginAs stores a live session for the role and returns its signed cookie.
func (f *gateFixture) loginAs(t *testing.T, role domain.Role) *http.Cookie {
	t.Helper()
	now := time.Now().UTC()
	session := &domain.Session{
		ID:        "sid-" + string(role),
		Username:  "tester",
		Role:      role,
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}
	if err := f.store.Save(context.Background(), session, time.Hour); err != nil {
		t.Fatalf("save session: %v", err)
	}
	signed, err := f.codec.Encode(session)
	if err != nil {
		t.Fatalf("encode session: %v", err)
	}
	return &http.Cookie{Name: SessionCookie, Value: signed}
}

func (f *gateFixture) request(t *testing.T, path string, cookie *http.Cookie) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	c := f.e.NewContext(req, rec)

	called := false
	handler := f.mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		f.e.HTTPErrorHandler(err, c)
	}
	return rec, called
}

func TestSessionGate_PublicPassesWithoutSession(t *testing.T) {
	f := newGateFixture()

	for _, path := range []string{"/css/app.css", "/login", "/req/signup", "/health"} {
		rec, called := f.request(t, path, nil)
		if !called || rec.Code != http.StatusOK {
			t.Fatalf("%s: expected pass-through, got code=%d called=%v", path, rec.Code, called)
		}
	}
}

func TestSessionGate_UnmatchedRejected(t *testing.T) {
	f := newGateFixture()

	rec, called := f.request(t, "/nowhere", nil)
	if called {
		t.Fatalf("next must not run for unmatched paths")
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestSessionGate_UnauthenticatedRedirectsToPartitionLogin(t *testing.T) {
	f := newGateFixture()

	cases := []struct {
		path     string
		location string
	}{
		{"/admin", "/adminlogin"},
		{"/index", "/login"},
		{"/staffdashboard/staff", "/stafflogin"},
	}
	for _, tc := range cases {
		rec, called := f.request(t, tc.path, nil)
		if called {
			t.Fatalf("%s: next must not run without a session", tc.path)
		}
		if rec.Code != http.StatusFound {
			t.Fatalf("%s: expected 302, got %d", tc.path, rec.Code)
		}
		if loc := rec.Header().Get(echo.HeaderLocation); loc != tc.location {
			t.Fatalf("%s: expected redirect to %s, got %s", tc.path, tc.location, loc)
		}
	}
}

func TestSessionGate_ValidSessionAllowsAndInjectsIdentity(t *testing.T) {
	f := newGateFixture()
	cookie := f.loginAs(t, domain.RoleAdmin)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	c := f.e.NewContext(req, rec)

	handler := f.mw(func(c echo.Context) error {
		if c.Get("username") != "tester" {
			t.Fatalf("username not injected")
		}
		if c.Get("role") != string(domain.RoleAdmin) {
			t.Fatalf("role not injected")
		}
		if c.Get("session_id") != "sid-admin" {
			t.Fatalf("session_id not injected")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestSessionGate_CrossPartitionSessionRejected(t *testing.T) {
	f := newGateFixture()

	adminCookie := f.loginAs(t, domain.RoleAdmin)
	rec, called := f.request(t, "/index", adminCookie)
	if called {
		t.Fatalf("admin session must not open user routes")
	}
	if rec.Code != http.StatusFound || rec.Header().Get(echo.HeaderLocation) != "/login" {
		t.Fatalf("expected 302 to /login, got %d %s", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}

	userCookie := f.loginAs(t, domain.RoleUser)
	rec, called = f.request(t, "/admin", userCookie)
	if called {
		t.Fatalf("user session must not open admin routes")
	}
	if rec.Code != http.StatusFound || rec.Header().Get(echo.HeaderLocation) != "/adminlogin" {
		t.Fatalf("expected 302 to /adminlogin, got %d %s", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}
}

func TestSessionGate_RevokedSessionRedirects(t *testing.T) {
	f := newGateFixture()
	cookie := f.loginAs(t, domain.RoleUser)

	// Logout happened: the cookie still verifies but the session is gone.
	if err := f.store.Delete(context.Background(), "sid-user"); err != nil {
		t.Fatalf("delete session: %v", err)
	}

	rec, called := f.request(t, "/index", cookie)
	if called {
		t.Fatalf("revoked session must not pass the gate")
	}
	if rec.Code != http.StatusFound || rec.Header().Get(echo.HeaderLocation) != "/login" {
		t.Fatalf("expected 302 to /login, got %d %s", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}
}

func TestSessionGate_TamperedCookieRedirects(t *testing.T) {
	f := newGateFixture()
	cookie := f.loginAs(t, domain.RoleAdmin)
	cookie.Value = cookie.Value[:len(cookie.Value)-2] + "xx"

	rec, called := f.request(t, "/admin", cookie)
	if called {
		t.Fatalf("tampered cookie must not pass the gate")
	}
	if rec.Code != http.StatusFound || rec.Header().Get(echo.HeaderLocation) != "/adminlogin" {
		t.Fatalf("expected 302 to /adminlogin, got %d %s", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}
}
