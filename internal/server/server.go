// Package server exposes the facectl status/metrics HTTP surface.
package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/glucolink/facectl/internal/link"
	"github.com/glucolink/facectl/internal/observability"
)

type Server struct {
	Node     string
	Addr     string
	Session  *link.Session
	Appeared time.Time

	router *gin.Engine
}

func New(node, addr string, corsOrigins []string, session *link.Session) *Server {
	observability.RegisterMetrics()
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.Instrument(node, log.Logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins: normalizeOrigins(corsOrigins),
		AllowMethods: []string{"GET"},
		AllowHeaders: []string{"Origin", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}))
	_ = r.SetTrustedProxies([]string{"127.0.0.1", "::1"})

	return &Server{
		Node:     node,
		Addr:     addr,
		Session:  session,
		Appeared: time.Now(),
		router:   r,
	}
}

func (s *Server) RegisterRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"uptime":  time.Since(s.Appeared).String(),
			"node":    s.Node,
			"version": "0.0.1",
		})
	})

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s.router.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"ready":     true,
			"connected": s.Session.Connected(),
			"uptime":    time.Since(s.Appeared).String(),
			"node":      s.Node,
		})
	})

	s.router.GET("/status", func(c *gin.Context) {
		now := time.Now()
		snap := s.Session.Snapshot(now)
		c.JSON(http.StatusOK, gin.H{
			"node":            s.Node,
			"connected":       s.Session.Connected(),
			"last_message_at": s.Session.LastMessageAt(),
			"display":         snap,
		})
	})
}

func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) Serve() error {
	s.RegisterRoutes()
	return s.router.Run(s.Addr)
}

func normalizeOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"http://localhost:3000"}
	}
	return origins
}
