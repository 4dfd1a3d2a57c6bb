// File: internal/app/server.go
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"nutrisnap_gateway/internal/auth"
	"nutrisnap_gateway/internal/common"
	"nutrisnap_gateway/internal/config"
	"nutrisnap_gateway/internal/jobs"
	"nutrisnap_gateway/internal/middleware"
	"nutrisnap_gateway/internal/pin"
	"nutrisnap_gateway/internal/session"
	"nutrisnap_gateway/internal/user"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server struct holds the dependencies for the HTTP server.
type Server struct {
	httpServer *http.Server
	router     *gin.Engine
	cfg        *config.Config
	logger     *zap.Logger

	// Handlers
	authHandler *auth.Handler
	userHandler *user.Handler
	pinHandler  *pin.Handler

	// Jobs
	maintenanceJob *jobs.MaintenanceJob
}

// NewServer creates a new instance of our application server.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	authHandler *auth.Handler,
	userHandler *user.Handler,
	pinHandler *pin.Handler,
	sessions *session.Manager,
	blocklist session.Blocklist,
	maintenanceJob *jobs.MaintenanceJob,
) (*Server, error) {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.HandleMethodNotAllowed = true

	// --- Global Middleware ---
	router.Use(middleware.ZapLogger(logger, cfg))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Recovery(logger.Named("Recovery")))
	router.Use(cors.New(corsConfig(cfg)))

	router.NoRoute(middleware.NotFound())
	router.NoMethod(middleware.MethodNotAllowed())

	// --- Setup Routes ---
	router.GET("/health", func(c *gin.Context) {
		common.Respond(c, common.OK(http.StatusOK, "NutriSnap gateway is healthy", gin.H{"status": "UP"}))
	})

	rateLimitMW := middleware.RateLimit(cfg)
	sessionMW := middleware.SessionContext(sessions, logger.Named("SessionMiddleware"))
	bearerMW := middleware.RequireBearer(blocklist, logger.Named("AuthMiddleware"))

	api := router.Group("/api", rateLimitMW, sessionMW)
	v1 := router.Group("/api/v1", rateLimitMW, sessionMW)

	authHandler.RegisterRoutes(api, v1)
	userHandler.RegisterRoutes(api, bearerMW)
	pinHandler.RegisterRoutes(api)

	addr := fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.UpstreamTimeout + 15*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		httpServer:     httpServer,
		router:         router,
		cfg:            cfg,
		logger:         logger,
		authHandler:    authHandler,
		userHandler:    userHandler,
		pinHandler:     pinHandler,
		maintenanceJob: maintenanceJob,
	}, nil
}

func corsConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept", common.AuthorizationHeader, common.RequestIDHeader}
	corsCfg.ExposeHeaders = []string{"Content-Length", common.RequestIDHeader, "Retry-After"}

	for _, origin := range cfg.CORSAllowedOrigins {
		if origin == "*" {
			corsCfg.AllowAllOrigins = true
			return corsCfg
		}
	}
	corsCfg.AllowOrigins = cfg.CORSAllowedOrigins
	if len(corsCfg.AllowOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
		return corsCfg
	}
	corsCfg.AllowCredentials = true
	return corsCfg
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	if s.maintenanceJob != nil {
		if err := s.maintenanceJob.SetupAndStart(); err != nil {
			s.logger.Error("Failed to setup and start maintenance job", zap.Error(err))
		}
	} else {
		s.logger.Info("Maintenance job is not configured, skipping start.")
	}

	s.logger.Info("HTTP Server starting",
		zap.String("address", s.httpServer.Addr),
		zap.String("gin_mode", s.cfg.GinMode),
		zap.String("upstream", s.cfg.UpstreamBaseURL),
	)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.logger.Error("Failed to start HTTP server", zap.Error(err))
		return err
	}
	s.logger.Info("HTTP Server stopped")
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Attempting graceful server shutdown...")
	if s.maintenanceJob != nil {
		s.maintenanceJob.Stop()
	}
	return s.httpServer.Shutdown(ctx)
}
