package handler

import (
	"net/http"

	"honeypot-backend/internal/pipeline"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ScamHandler interface {
	CheckScam(c *gin.Context)
}

type scamHandler struct {
	pipeline *pipeline.Pipeline
	logger   *zap.Logger
}

func NewScamHandler(p *pipeline.Pipeline, logger *zap.Logger) ScamHandler {
	return &scamHandler{pipeline: p, logger: logger}
}

// CheckScamRequest is the body of POST /api/check-scam.
type CheckScamRequest struct {
	ConversationID string `json:"conversation_id"`
	Message        string `json:"message"`
}

// CheckScam handles POST /api/check-scam
func (h *scamHandler) CheckScam(c *gin.Context) {
	var req CheckScamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Failed to bind check-scam request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required", "field": "message"})
		return
	}

	resp, err := h.pipeline.Handle(c.Request.Context(), req.ConversationID, req.Message)
	if err != nil {
		h.logger.Error("Ingest pipeline failed",
			zap.String("external_id", req.ConversationID),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, resp)
}
