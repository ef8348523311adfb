package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	contractapp "github.com/buildledger/backend/internal/application/contract"
	identityapp "github.com/buildledger/backend/internal/application/identity"
	ledgerapp "github.com/buildledger/backend/internal/application/ledger"
	projectapp "github.com/buildledger/backend/internal/application/project"
	"github.com/buildledger/backend/internal/domain/project"
	"github.com/buildledger/backend/internal/infrastructure/auth"
	"github.com/buildledger/backend/internal/infrastructure/config"
	"github.com/buildledger/backend/internal/infrastructure/logger"
	"github.com/buildledger/backend/internal/infrastructure/persistence"
	"github.com/buildledger/backend/internal/interfaces/http/handler"
	"github.com/buildledger/backend/internal/interfaces/http/middleware"
	"github.com/buildledger/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting BuildLedger Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))

	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Token blacklist backed by redis; logout degrades to a no-op when no
	// redis host is configured.
	var blacklist auth.TokenBlacklist = auth.NoopTokenBlacklist{}
	if cfg.Redis.Host != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
		blacklist = auth.NewRedisTokenBlacklist(redisClient)
		log.Info("Token blacklist enabled", zap.String("redis", cfg.Redis.Addr()))
	} else {
		log.Warn("Redis not configured, token revocation disabled")
	}

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	projectRepo := persistence.NewGormProjectRepository(db.DB)
	projectRoleRepo := persistence.NewGormProjectRoleRepository(db.DB)
	vatRateRepo := persistence.NewGormVatRateRepository(db.DB)
	accountRepo := persistence.NewGormAccountRepository(db.DB)
	transactionRepo := persistence.NewGormTransactionRepository(db.DB)
	variationRepo := persistence.NewGormVariationRepository(db.DB)
	certificateRepo := persistence.NewGormCertificateRepository(db.DB)
	itemRepo := persistence.NewGormItemRepository(db.DB)
	dialogRepo := persistence.NewGormDialogRepository(db.DB)
	forecastRepo := persistence.NewGormForecastRepository(db.DB)
	structureRepo := persistence.NewGormStructureRepository(db.DB)

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist)
	projectService := projectapp.NewProjectService(projectRepo, projectRoleRepo, accountRepo)
	roleService := projectapp.NewRoleService(projectRoleRepo)
	structureService := projectapp.NewStructureService(structureRepo)
	accessResolver := projectapp.NewAccessResolver(projectRepo, projectRoleRepo)
	vatService := ledgerapp.NewVatRateService(vatRateRepo)
	ledgerService := ledgerapp.NewLedgerService(projectRepo, accountRepo, transactionRepo, vatRateRepo)
	variationService := contractapp.NewVariationService(projectRepo, variationRepo)
	certificateService := contractapp.NewCertificateService(certificateRepo, itemRepo)
	correspondenceService := contractapp.NewCorrespondenceService(dialogRepo)
	forecastService := contractapp.NewForecastService(forecastRepo)

	// Project role gate shared by all project-scoped handlers
	gate := handler.Gate(func(allowed ...project.Role) gin.HandlerFunc {
		return middleware.RequireProjectRole(accessResolver, middleware.DefaultProjectRoleConfig(), allowed...)
	})

	// HTTP handlers
	authHandler := handler.NewAuthHandler(authService, cfg.JWT.RefreshTokenExpiration)
	projectHandler := handler.NewProjectHandler(projectService, roleService, gate)
	vatRateHandler := handler.NewVatRateHandler(vatService)
	ledgerHandler := handler.NewLedgerHandler(ledgerService, gate)
	variationHandler := handler.NewVariationHandler(variationService, projectService, gate)
	certificateHandler := handler.NewCertificateHandler(certificateService, projectService, gate)
	correspondenceHandler := handler.NewCorrespondenceHandler(correspondenceService, projectService, gate)
	forecastHandler := handler.NewForecastHandler(forecastService, gate)
	structureHandler := handler.NewStructureHandler(structureService, projectService, gate)
	systemHandler := handler.NewSystemHandler(db)

	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	jwtConfig := middleware.DefaultJWTConfig(jwtService)
	jwtConfig.TokenBlacklist = blacklist
	jwtConfig.Logger = log
	engine.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	// Unversioned health endpoint for load balancer probes
	engine.GET("/health", systemHandler.Health)

	router.NewRouter(engine, router.WithAPIVersion("v1")).
		Register(systemHandler).
		Register(authHandler).
		Register(projectHandler).
		Register(vatRateHandler).
		Register(ledgerHandler).
		Register(variationHandler).
		Register(certificateHandler).
		Register(correspondenceHandler).
		Register(forecastHandler).
		Register(structureHandler).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownTimeout := cfg.HTTP.ShutdownTimeout
	if shutdownTimeout == 0 {
		shutdownTimeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
