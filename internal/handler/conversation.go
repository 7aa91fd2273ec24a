package handler

import (
	"net/http"
	"strconv"

	"honeypot-backend/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ConversationHandler interface {
	GetAllConversations(c *gin.Context)
	GetConversationByID(c *gin.Context)
	DeleteConversation(c *gin.Context)
}

type conversationHandler struct {
	convRepo  repository.ConversationRepository
	msgRepo   repository.MessageRepository
	intelRepo repository.IntelligenceRepository
	logger    *zap.Logger
}

func NewConversationHandler(convRepo repository.ConversationRepository, msgRepo repository.MessageRepository, intelRepo repository.IntelligenceRepository, logger *zap.Logger) ConversationHandler {
	return &conversationHandler{convRepo: convRepo, msgRepo: msgRepo, intelRepo: intelRepo, logger: logger}
}

// GetAllConversations handles GET /api/conversations
func (h *conversationHandler) GetAllConversations(c *gin.Context) {
	convs, err := h.convRepo.GetAll()
	if err != nil {
		h.logger.Error("Failed to get conversations", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve conversations"})
		return
	}

	c.JSON(http.StatusOK, convs)
}

// GetConversationByID handles GET /api/conversations/:id
func (h *conversationHandler) GetConversationByID(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.logger.Error("Invalid conversation ID", zap.String("id", idStr), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid conversation ID"})
		return
	}

	conv, err := h.convRepo.GetByID(id)
	if err != nil {
		h.logger.Error("Failed to get conversation", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve conversation"})
		return
	}

	if conv == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Conversation not found"})
		return
	}

	messages, err := h.msgRepo.GetByConversation(id)
	if err != nil {
		h.logger.Error("Failed to get messages", zap.Int64("conversation_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve conversation"})
		return
	}

	intel, err := h.intelRepo.GetByConversation(id)
	if err != nil {
		h.logger.Error("Failed to get intelligence", zap.Int64("conversation_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve conversation"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"conversation": conv,
		"messages":     messages,
		"intelligence": intel,
	})
}

// DeleteConversation handles DELETE /api/conversations/:id. Deletion cascades
// to messages and intelligence; deleting an unknown id still returns 204.
func (h *conversationHandler) DeleteConversation(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.logger.Error("Invalid conversation ID", zap.String("id", idStr), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid conversation ID"})
		return
	}

	if err := h.convRepo.Delete(id); err != nil {
		h.logger.Error("Failed to delete conversation", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete conversation"})
		return
	}

	c.Status(http.StatusNoContent)
}
