package main

import (
	"fmt"

	app "github.com/EliwtFdez/ClusterWeb/internal/application/community"
	"github.com/EliwtFdez/ClusterWeb/internal/domain/shared"
	"github.com/EliwtFdez/ClusterWeb/internal/infrastructure/config"
	"github.com/EliwtFdez/ClusterWeb/internal/infrastructure/logger"
	"github.com/EliwtFdez/ClusterWeb/internal/infrastructure/persistence"
	"github.com/EliwtFdez/ClusterWeb/internal/infrastructure/telemetry"
	"github.com/EliwtFdez/ClusterWeb/internal/interfaces/http/handler"
	"github.com/EliwtFdez/ClusterWeb/internal/interfaces/http/middleware"
	"github.com/EliwtFdez/ClusterWeb/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/EliwtFdez/ClusterWeb/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// dependencies are the runtime collaborators of the HTTP engine.
// idempotency is nil when Idempotency-Key handling is disabled.
type dependencies struct {
	db          *persistence.Database
	metrics     app.Metrics
	idempotency shared.IdempotencyStore
}

// newEngine builds the gin engine with the middleware chain and every route
func newEngine(cfg *config.Config, log *zap.Logger, mp *telemetry.MeterProvider, deps dependencies) (*gin.Engine, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.Tracing(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.SpanAttributes())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.HTTPMetrics(mp))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  cfg.HTTP.CORSAllowOrigins,
		AllowMethods:  cfg.HTTP.CORSAllowMethods,
		AllowHeaders:  cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders: []string{middleware.RequestIDHeader, "Location"},
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	engine.GET("/health", handler.NewHealthHandler(deps.db).Check)
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	houseRepo := persistence.NewGormHouseRepository(deps.db.DB)
	residentRepo := persistence.NewGormResidentRepository(deps.db.DB)
	dueRepo := persistence.NewGormDueRepository(deps.db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(deps.db.DB)
	txManager := persistence.NewGormTransactionManager(deps.db.DB)

	var onCreate []gin.HandlerFunc
	if deps.idempotency != nil {
		onCreate = append(onCreate, middleware.Idempotency(deps.idempotency, cfg.Idempotency.TTL))
	}

	houses := handler.NewHouseHandler(app.NewHouseService(houseRepo, residentRepo, dueRepo, txManager, deps.metrics))
	residents := handler.NewResidentHandler(app.NewResidentService(residentRepo, houseRepo, txManager, deps.metrics))
	dues := handler.NewDueHandler(app.NewDueService(dueRepo, houseRepo, residentRepo, txManager, deps.metrics))
	payments := handler.NewPaymentHandler(app.NewPaymentService(paymentRepo, dueRepo, houseRepo, residentRepo, txManager, deps.metrics))

	system := handler.NewSystemHandler(cfg.App.Name, cfg.App.Version)
	systemRoutes := router.NewDomainGroup("system", "/system").
		GET("/info", system.GetSystemInfo).
		GET("/ping", system.Ping)

	router.NewRouter(engine, router.WithAPIVersion("v1")).
		Register(router.NewResourceGroup("houses", "/houses", houses, onCreate...)).
		Register(router.NewResourceGroup("residents", "/residents", residents, onCreate...)).
		Register(router.NewResourceGroup("dues", "/dues", dues, onCreate...)).
		Register(router.NewResourceGroup("payments", "/payments", payments, onCreate...)).
		Register(systemRoutes).
		Setup()

	return engine, nil
}
