package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"friendchat/config"
	"friendchat/internal/handler"
	"friendchat/internal/middleware"
	"friendchat/internal/storage"
	"friendchat/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	config     *config.Config
	logger     *logger.Logger
}

var (
	ReleaseMode = "release"
	DebugMode   = "debug"
	TestMode    = "test"
)

const serviceName = "friendchat"

// multipart overhead allowed on top of the upload limit
const formOverheadBytes = 1 << 20

type Handlers struct {
	Auth        *handler.AuthHandler
	Users       *handler.UserHandler
	Friendships *handler.FriendshipHandler
	Messages    *handler.MessageHandler
	Health      *handler.HealthHandler
	// StaticDir is served under /files when uploads are kept on local disk.
	StaticDir string
}

func New(cfg *config.Config, l *logger.Logger) *Server {
	if cfg.AppMode == ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	} else if cfg.AppMode == TestMode {
		gin.SetMode(gin.TestMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%s", cfg.AppPort),
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
		engine: engine,
		config: cfg,
		logger: l,
	}
}

// Engine exposes the router, mainly for httptest.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) SetupRoutes(handlers *Handlers, tokens middleware.TokenParser) {
	s.engine.Use(middleware.RequestIDMiddleware())
	s.engine.Use(middleware.PrometheusMiddleware(serviceName))
	s.engine.Use(middleware.LoggingMiddleware(s.logger))
	s.engine.Use(middleware.ErrorHandler(s.logger))

	s.engine.GET("/health", handlers.Health.Health)
	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if handlers.StaticDir != "" {
		s.engine.Static("/"+storage.RoutePrefix, handlers.StaticDir)
	}

	s.engine.POST("/register", handlers.Auth.Register)
	s.engine.POST("/login", handlers.Auth.Login)

	api := s.engine.Group("/")
	if s.config.AuthRequired {
		api.Use(middleware.AuthMiddleware(tokens))
	}
	{
		api.GET("/users/:userId", handlers.Users.ListOthers)
		api.GET("/user/:userId", handlers.Users.GetProfile)

		api.POST("/friend-request", handlers.Friendships.SendRequest)
		api.GET("/friend-request/:userId", handlers.Friendships.ListIncoming)
		api.POST("/friend-request/accept", handlers.Friendships.Accept)
		api.GET("/friend-requests/sent/:userId", handlers.Friendships.ListOutgoing)
		api.GET("/accepted-friends/:userId", handlers.Friendships.ListFriends)
		api.GET("/friends/:userId", handlers.Friendships.ListFriendIDs)

		api.POST("/messages", middleware.BodyLimit(s.config.UploadMaxBytes+formOverheadBytes), handlers.Messages.Send)
		api.GET("/messages/:senderId/:recepientId", handlers.Messages.List)
		api.POST("/deleteMessages", handlers.Messages.DeleteMany)
	}
}

func (s *Server) Start() error {
	errCh := make(chan error, 1)
	go func() {
		if s.logger != nil {
			s.logger.Infof("Starting the server on port %s...", s.config.AppPort)
		}
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		if s.logger != nil {
			s.logger.Errorf("Error in starting the server: %s", err)
		}
		return err
	case <-quit:
	}

	if s.logger != nil {
		s.logger.Infof("Quitting signal received.. Shutting down after 5 seconds")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		if s.logger != nil {
			s.logger.Infof("Error in the graceful shutdown of the server: %s", err)
		}
		return err
	}

	if s.logger != nil {
		s.logger.Infof("Server stopped gracefully")
	}

	return nil
}
