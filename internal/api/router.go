package api

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/abc-restaurant/restaurant-gateway/internal/api/handler"
	"github.com/abc-restaurant/restaurant-gateway/internal/api/middleware"
	"github.com/abc-restaurant/restaurant-gateway/internal/core/domain"
	"github.com/abc-restaurant/restaurant-gateway/internal/core/service"
	"github.com/abc-restaurant/restaurant-gateway/internal/core/token"
	"github.com/abc-restaurant/restaurant-gateway/internal/infrastructure/config"
	mongostore "github.com/abc-restaurant/restaurant-gateway/internal/infrastructure/db/mongo"
	redisstore "github.com/abc-restaurant/restaurant-gateway/internal/infrastructure/db/redis"
)

// NewRouter builds the Echo instance with the session gate and all routes
// registered. The three partitions share one pipeline; only the role passed
// to each handler differs.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("restaurant"))

	// --- Dependencies ---
	userRepo := mongostore.NewUserRepository(db)
	ensureCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := userRepo.EnsureIndexes(ensureCtx); err != nil {
		return nil, fmt.Errorf("ensure indexes: %w", err)
	}

	sessionStore := redisstore.NewSessionStore(rdb)
	hasher := service.NewBcryptHasher(cfg.BcryptCost)
	authService := service.NewAuthService(userRepo, sessionStore, hasher, cfg.SessionTTL)
	codec := token.NewCodec(cfg.SessionSecret)
	table := domain.DefaultRouteTable()

	authHandler := handler.NewAuthHandler(authService, codec, table)
	pageHandler := handler.NewPageHandler()

	// --- Session gate (pre-router: classifies every path) ---
	e.Pre(middleware.SessionGate(table, codec, sessionStore, log))

	// --- Registration endpoints (public) ---
	e.POST("/req/signup", authHandler.Signup(domain.RoleUser))
	e.POST("/req/adminsignup", authHandler.Signup(domain.RoleAdmin))
	e.POST("/req/staffsignup", authHandler.Signup(domain.RoleStaff))

	// --- Login pages and credential submission (public) ---
	e.GET("/login", authHandler.LoginPage(domain.RoleUser))
	e.POST("/login", authHandler.Login(domain.RoleUser))
	e.GET("/adminlogin", authHandler.LoginPage(domain.RoleAdmin))
	e.POST("/adminlogin", authHandler.Login(domain.RoleAdmin))
	e.GET("/stafflogin", authHandler.LoginPage(domain.RoleStaff))
	e.POST("/stafflogin", authHandler.Login(domain.RoleStaff))

	e.GET("/logout", authHandler.Logout)
	e.POST("/logout", authHandler.Logout)

	// --- Static assets (public under every partition) ---
	e.Static("/css", filepath.Join(cfg.StaticDir, "css"))
	e.Static("/js", filepath.Join(cfg.StaticDir, "js"))
	e.Static("/images", filepath.Join(cfg.StaticDir, "images"))

	// --- Protected pages: one stub handler behind the gate per prefix ---
	for _, rule := range table.Rules() {
		for _, prefix := range rule.Prefixes {
			e.Any(prefix, pageHandler.Serve)
			e.Any(prefix+"/*", pageHandler.Serve)
		}
	}

	// --- Observability (no auth required) ---
	e.GET("/metrics", echoprometheus.NewHandler())

	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	return e, nil
}
