package main

import (
	"fmt"
	"log"
	"time"

	"github.com/getguardrail/guardrail/api"
	"github.com/getguardrail/guardrail/authz"
	"github.com/getguardrail/guardrail/config"
	"github.com/getguardrail/guardrail/flow"
	"github.com/getguardrail/guardrail/logger"
	"github.com/getguardrail/guardrail/persistence"
	"github.com/getguardrail/guardrail/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger.InitLogger(cfg.LogLevel)
	defer logger.Log.Sync()

	if cfg.SessionSecret == "" {
		logger.Log.Fatal("SESSION_SECRET must be set: refusing to sign session tokens with an empty key")
	}

	logger.Log.Info("Starting Guardrail Authorization Service",
		zap.Int("port", cfg.Port),
		zap.String("dsn", cfg.DSN),
	)

	storage, err := persistence.NewStorage(cfg.DBType, cfg.DSN, nil)
	if err != nil {
		logger.Log.Fatal("failed to initialize storage", zap.Error(err))
	}

	// Session manager doubles as the authentication filter.
	sessions := session.NewManager(storage, session.NewHS256Codec(cfg.SessionSecret))
	sessions.SetTTL(time.Duration(cfg.SessionTTLHours) * time.Hour)

	engine := authz.NewEngine(storage, storage)
	engine.SetAdminRole(cfg.AdminRole)
	engine.SetLogger(logger.Log)

	evaluator := authz.NewEvaluator(authz.NewHeaderSecret(cfg.BypassSecret))

	guard := authz.NewMiddleware(engine, evaluator, sessions)
	guard.SetLogger(logger.Log)
	if cfg.LoginURL != "" {
		guard.SetRedirectPolicy(&authz.HTMLRedirect{URL: cfg.LoginURL})
	}

	login := flow.NewLoginManager(storage, flow.NewBcryptHasher(flow.DefaultBcryptCost))

	h := api.NewHandler(login, sessions, guard)

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	g := e.Group("/api/v1")
	h.RegisterRoutes(g)

	logger.Log.Info("Server is starting", zap.Int("port", cfg.Port))
	if err := e.Start(fmt.Sprintf(":%d", cfg.Port)); err != nil {
		logger.Log.Fatal("server stopped", zap.Error(err))
	}
}
