package routes

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	_ "furniture_estimates/docs" // swagger docs
	"furniture_estimates/internal/adapter/http/middleware"
	"furniture_estimates/internal/infrastructure/config"
	"furniture_estimates/internal/infrastructure/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

const shutdownTimeout = 15 * time.Second

// Run will start the server and block until SIGINT or SIGTERM.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer func() { _ = log.Sync() }()

	if cfg.LogFormat == "json" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps, err := buildDependencies(ctx, cfg, log)
	if err != nil {
		log.Error("[server][routes] failed to build dependencies", zap.Error(err))
		return err
	}
	defer deps.Close()

	router := NewRouter(cfg, log, deps.Handlers)
	if cfg.StorageBackend == "local" {
		router.Static("/"+filepath.Base(cfg.UploadsDir), cfg.UploadsDir)
	}

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("[server][routes] listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Error("[server][routes] failed to startup the application", zap.Error(err))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("[server][routes] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := deps.Handlers.Estimates.Wait(shutdownCtx); err != nil {
		log.Warn("[server][routes] background estimates still running at shutdown", zap.Error(err))
	}
	return nil
}

// NewRouter mounts every route on a fresh engine.
func NewRouter(cfg *config.Config, log *zap.Logger, h Handlers) *gin.Engine {
	router := gin.New()
	setMiddlewares(router, cfg, log)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/v1")
	addPingRoutes(v1)

	authed := v1.Group("", middleware.Auth(cfg.JWTSecret))
	addEstimateRoutes(authed, h)

	stream := v1.Group("", middleware.AuthWithQueryToken(cfg.JWTSecret))
	addEventRoutes(stream, h)

	admin := authed.Group(PathAdmin, middleware.RequireRole(middleware.RoleAdmin))
	addAdminRoutes(admin, h)

	return router
}

func setMiddlewares(router *gin.Engine, cfg *config.Config, log *zap.Logger) {
	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.CORS(cfg.FrontendURL))
}
