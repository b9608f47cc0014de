package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"ideaboard/docs"
	"ideaboard/internal/auth"
	"ideaboard/internal/cache"
	"ideaboard/internal/config"
	"ideaboard/internal/db"
	"ideaboard/internal/handler"
	"ideaboard/internal/logger"
	"ideaboard/internal/repository"
	"ideaboard/internal/router"
	"ideaboard/internal/service"
)

const shutdownTimeout = 10 * time.Second

// @title Ideas API
// @version 1.0
// @description Ideas board API with JWT authentication and owner-only mutations.
// @host localhost:8800
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		// logger config is not known yet
		bootLog := logger.New("info", false)
		bootLog.Fatal().Err(err).Msg("load config")
	}

	log := logger.New(cfg.LogLevel, cfg.IsProduction())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("database init")
	}

	if cfg.ResetDB {
		log.Warn().Msg("RESET_DB=true detected, dropping all tables")
	}
	if err := db.Migrate(gormDB, cfg.ResetDB); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 2*time.Second)
	if err := cacheClient.Ping(pingCtx); err != nil {
		log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unavailable, idea reads go straight to the database")
	}
	cancelPing()

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	ideaRepo := repository.NewIdeaRepository(gormDB)

	// Initialize services
	jwtService := auth.NewJWTService(cfg.SigningKey(), auth.WithAccessTTL(cfg.AccessTokenTTL))
	authService := service.NewAuthService(userRepo, jwtService)
	ideaService := service.NewIdeaService(ideaRepo, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, cfg.IsProduction())
	ideaHandler := handler.NewIdeaHandler(ideaService)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	if err := router.Register(e, cfg, log, authHandler, ideaHandler, authService); err != nil {
		log.Fatal().Err(err).Msg("register routes")
	}

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = strings.TrimPrefix(strings.TrimPrefix(cfg.SwaggerHost, "https://"), "http://")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := ":" + cfg.ServerPort
	go func() {
		log.Info().
			Str("addr", addr).
			Str("swagger", "http://"+docs.SwaggerInfo.Host+"/swagger/index.html").
			Msg("server listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server start")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
}
