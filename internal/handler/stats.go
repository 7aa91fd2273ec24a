package handler

import (
	"net/http"

	"honeypot-backend/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type StatsHandler interface {
	GetStats(c *gin.Context)
}

type statsHandler struct {
	stats  *service.StatsAggregator
	logger *zap.Logger
}

func NewStatsHandler(stats *service.StatsAggregator, logger *zap.Logger) StatsHandler {
	return &statsHandler{stats: stats, logger: logger}
}

// GetStats handles GET /api/stats
func (h *statsHandler) GetStats(c *gin.Context) {
	stats, err := h.stats.ComputeStats()
	if err != nil {
		h.logger.Error("Failed to compute dashboard stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}
