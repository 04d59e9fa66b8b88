// Package server assembles the gin router and the HTTP server lifecycle.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	authhandler "github.com/Toronto-Scrum-Team/registration-backend/internal/auth/handler"
	authservice "github.com/Toronto-Scrum-Team/registration-backend/internal/auth/service"
	"github.com/Toronto-Scrum-Team/registration-backend/internal/server/middleware"
	sessionhandler "github.com/Toronto-Scrum-Team/registration-backend/internal/session/handler"
	sessionservice "github.com/Toronto-Scrum-Team/registration-backend/internal/session/service"
	"github.com/Toronto-Scrum-Team/registration-backend/internal/telemetry"
)

// Server wraps the gin engine and the underlying http.Server.
type Server struct {
	engine *gin.Engine
	http   *http.Server
}

// New builds the router with all routes and middleware wired and returns a
// Server listening on addr when Start is called.
func New(addr string, auth *authservice.AuthService, sessions *sessionservice.Manager, emitter telemetry.EventEmitter) *Server {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS())
	engine.Use(middleware.RequestTelemetry(emitter))

	registerRoutes(engine, auth, sessions, emitter)

	return &Server{
		engine: engine,
		http: &http.Server{
			Addr:              addr,
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

func registerRoutes(engine *gin.Engine, auth *authservice.AuthService, sessions *sessionservice.Manager, emitter telemetry.EventEmitter) {
	authH := authhandler.NewAuthHandler(auth, emitter)
	sessionH := sessionhandler.NewSessionHandler(sessions, emitter)
	gate := middleware.RequireAuth(auth)

	engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "registration-backend",
			"status":  "running",
		})
	})
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	authGroup := engine.Group("/auth")
	{
		authGroup.POST("/register", authH.Register)
		authGroup.POST("/login", authH.Login)
		authGroup.GET("/me", gate, authH.Me)
		authGroup.POST("/logout", gate, authH.Logout)
	}

	sessionGroup := engine.Group("/sessions", gate)
	{
		sessionGroup.GET("/", sessionH.List)
		sessionGroup.DELETE("/terminate", sessionH.Terminate)
		sessionGroup.DELETE("/terminate-all", sessionH.TerminateAll)
		sessionGroup.DELETE("/terminate-others", sessionH.TerminateOthers)
		sessionGroup.POST("/cleanup", sessionH.Cleanup)
	}
}

// Engine exposes the router, mainly for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Start serves HTTP until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	return s.http.ListenAndServe()
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
