// Package hostbridge exposes the form handlers over HTTP so a CRM page can raise form events
// and poll for the notifications they produce.
package hostbridge

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	"github.com/OpenNSW/formflow/internal/config"
	"github.com/OpenNSW/formflow/internal/handler"
)

type Server struct {
	router   *gin.Engine
	cors     *cors.Cors
	inbox    *Inbox
	handlers map[handler.Type]handler.Handler
}

// NewServer builds a handler for every known type. Types whose endpoint is not configured
// are left out and answer 404.
func NewServer(factory handler.Factory, inbox *Inbox, corsCfg config.CORSConfig) (*Server, error) {
	handlers := make(map[handler.Type]handler.Handler)
	for _, t := range handler.Types() {
		h, err := factory.Build(t)
		if err != nil {
			if errors.Is(err, handler.ErrUnknownType) {
				return nil, err
			}
			slog.Warn("form handler disabled", "handler", t, "error", err)
			continue
		}
		handlers[t] = h
	}
	if len(handlers) == 0 {
		return nil, errors.New("no form handler has a configured endpoint")
	}

	gin.SetMode(gin.ReleaseMode)
	s := &Server{
		router:   gin.New(),
		inbox:    inbox,
		handlers: handlers,
		cors: cors.New(cors.Options{
			AllowedOrigins:   corsCfg.AllowedOrigins,
			AllowedMethods:   corsCfg.AllowedMethods,
			AllowedHeaders:   corsCfg.AllowedHeaders,
			AllowCredentials: corsCfg.AllowCredentials,
			MaxAge:           corsCfg.MaxAge,
		}),
	}
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	s.router.Use(gin.Recovery())
	s.router.Use(loggingMiddleware())

	s.router.GET("/health", s.handleHealth)
	s.router.GET("/metrics", s.handleMetrics)

	api := s.router.Group("/api")
	api.POST("/forms/:handler/events", s.handleFormEvent)
	api.GET("/notifications", s.handleNotifications)
}

// Handler returns the router wrapped with CORS.
func (s *Server) Handler() http.Handler {
	return s.cors.Handler(s.router)
}

func loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		slog.DebugContext(c.Request.Context(), "http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status())
	}
}
