package server

import (
	"net/http"

	"honeypot-backend/internal/handler"
	"honeypot-backend/internal/middleware"
	"honeypot-backend/internal/pipeline"
	"honeypot-backend/internal/repository"
	"honeypot-backend/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	router *gin.Engine
	logger *zap.Logger
}

// Deps holds everything the HTTP surface needs, passed at construction rather
// than looked up from globals.
type Deps struct {
	Conversations repository.ConversationRepository
	Messages      repository.MessageRepository
	Intelligence  repository.IntelligenceRepository
	APIKeys       repository.APIKeyRepository
	Pipeline      *pipeline.Pipeline
	Stats         *service.StatsAggregator
}

func NewServer(deps Deps, logger *zap.Logger) *Server {
	router := gin.Default()

	s := &Server{
		router: router,
		logger: logger,
	}

	s.setupRoutes(deps)

	return s
}

func (s *Server) setupRoutes(deps Deps) {
	scamHandler := handler.NewScamHandler(deps.Pipeline, s.logger)
	convHandler := handler.NewConversationHandler(deps.Conversations, deps.Messages, deps.Intelligence, s.logger)
	statsHandler := handler.NewStatsHandler(deps.Stats, s.logger)

	// Ping route for health check
	s.router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// Only the honeypot analysis endpoint requires an API key; the dashboard
	// routes are open.
	s.router.POST("/api/check-scam", middleware.APIKeyAuth(deps.APIKeys, s.logger), scamHandler.CheckScam)

	s.router.GET("/api/conversations", convHandler.GetAllConversations)
	s.router.GET("/api/conversations/:id", convHandler.GetConversationByID)
	s.router.DELETE("/api/conversations/:id", convHandler.DeleteConversation)
	s.router.GET("/api/stats", statsHandler.GetStats)
}

// Router exposes the underlying engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) Run(addr string) {
	s.logger.Info("Server starting", zap.String("addr", addr))
	if err := s.router.Run(addr); err != nil {
		s.logger.Fatal("Server failed to start", zap.Error(err))
	}
}
