package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"honeypot-backend/internal/extractor"
	"honeypot-backend/internal/pipeline"
	"honeypot-backend/internal/repository"
	"honeypot-backend/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T) (*gin.Engine, *repository.MemoryRepositories) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	mem := repository.NewMemoryRepositories()
	if err := repository.SeedAPIKey(mem.APIKeys, logger); err != nil {
		t.Fatalf("seed api key: %v", err)
	}

	resolver := pipeline.NewSessionResolver(mem.Conversations, logger)
	pipe := pipeline.NewPipeline(resolver, mem.Conversations, mem.Messages, mem.Intelligence,
		extractor.NewMock(), logger, time.Second, 90)
	stats := service.NewStatsAggregator(mem.Conversations, mem.Intelligence, logger)

	srv := NewServer(Deps{
		Conversations: mem.Conversations,
		Messages:      mem.Messages,
		Intelligence:  mem.Intelligence,
		APIKeys:       mem.APIKeys,
		Pipeline:      pipe,
		Stats:         stats,
	}, logger)

	return srv.Router(), mem
}

func checkScam(router *gin.Engine, authHeader, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/check-scam", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCheckScamRequiresAPIKey(t *testing.T) {
	router, _ := newTestServer(t)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"malformed header", "Token abc"},
		{"unknown key", "Bearer not-a-real-key"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := checkScam(router, tt.header, `{"message": "hello"}`)
			if w.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d: %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestCheckScamRejectsMissingMessage(t *testing.T) {
	router, _ := newTestServer(t)

	w := checkScam(router, "Bearer "+repository.DefaultAPIKey, `{"conversation_id": "s1"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCheckScamDetectsAndRecords(t *testing.T) {
	router, mem := newTestServer(t)

	w := checkScam(router, "Bearer "+repository.DefaultAPIKey,
		`{"conversation_id": "s1", "message": "Send $ to my wallet 0x123"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp pipeline.ScamCheckResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.ScamDetected {
		t.Fatal("expected scam_detected true")
	}
	if resp.AgentMode != pipeline.AgentModeHoneypot {
		t.Fatalf("expected honeypot_active, got %q", resp.AgentMode)
	}
	if resp.Confidence != 0.9 {
		t.Fatalf("expected confidence 0.9, got %v", resp.Confidence)
	}
	if len(resp.ExtractedIntelligence.Wallets) != 1 {
		t.Fatalf("expected one wallet, got %+v", resp.ExtractedIntelligence)
	}

	conv, err := mem.Conversations.GetByExternalID("s1")
	if err != nil || conv == nil {
		t.Fatalf("conversation not created: %v", err)
	}
	if !conv.ScamDetected {
		t.Fatal("conversation detection state not persisted")
	}
}

func TestConversationReadAndDelete(t *testing.T) {
	router, mem := newTestServer(t)

	w := checkScam(router, "Bearer "+repository.DefaultAPIKey,
		`{"conversation_id": "s2", "message": "WhatsApp me at +1234567890"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("check-scam failed: %d %s", w.Code, w.Body.String())
	}
	conv, err := mem.Conversations.GetByExternalID("s2")
	if err != nil || conv == nil {
		t.Fatalf("conversation not created: %v", err)
	}

	// List
	req := httptest.NewRequest(http.MethodGet, "/api/conversations", nil)
	lw := httptest.NewRecorder()
	router.ServeHTTP(lw, req)
	if lw.Code != http.StatusOK {
		t.Fatalf("list failed: %d", lw.Code)
	}
	var list []json.RawMessage
	if err := json.Unmarshal(lw.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 conversation, got %d", len(list))
	}

	// Get by id
	req = httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/conversations/%d", conv.ID), nil)
	gw := httptest.NewRecorder()
	router.ServeHTTP(gw, req)
	if gw.Code != http.StatusOK {
		t.Fatalf("get failed: %d %s", gw.Code, gw.Body.String())
	}
	var detail struct {
		Conversation json.RawMessage   `json:"conversation"`
		Messages     []json.RawMessage `json:"messages"`
		Intelligence []json.RawMessage `json:"intelligence"`
	}
	if err := json.Unmarshal(gw.Body.Bytes(), &detail); err != nil {
		t.Fatalf("decode detail: %v", err)
	}
	if len(detail.Messages) != 2 {
		t.Fatalf("expected inbound + reply, got %d messages", len(detail.Messages))
	}
	if len(detail.Intelligence) != 1 {
		t.Fatalf("expected 1 intelligence row, got %d", len(detail.Intelligence))
	}

	// Unknown id
	req = httptest.NewRequest(http.MethodGet, "/api/conversations/99999", nil)
	nw := httptest.NewRecorder()
	router.ServeHTTP(nw, req)
	if nw.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown id, got %d", nw.Code)
	}

	// Delete cascades
	req = httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/conversations/%d", conv.ID), nil)
	dw := httptest.NewRecorder()
	router.ServeHTTP(dw, req)
	if dw.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", dw.Code)
	}
	msgs, err := mem.Messages.GetByConversation(conv.ID)
	if err != nil {
		t.Fatalf("get messages: %v", err)
	}
	if len(msgs) != 0 {
		t.Fatalf("delete left %d orphan messages", len(msgs))
	}
	intel, err := mem.Intelligence.GetByConversation(conv.ID)
	if err != nil {
		t.Fatalf("get intelligence: %v", err)
	}
	if len(intel) != 0 {
		t.Fatalf("delete left %d orphan intelligence rows", len(intel))
	}

	// Deleting again is still 204
	req = httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/conversations/%d", conv.ID), nil)
	dw2 := httptest.NewRecorder()
	router.ServeHTTP(dw2, req)
	if dw2.Code != http.StatusNoContent {
		t.Fatalf("expected idempotent 204, got %d", dw2.Code)
	}
}

func TestStatsEndpoint(t *testing.T) {
	router, _ := newTestServer(t)

	w := checkScam(router, "Bearer "+repository.DefaultAPIKey,
		`{"conversation_id": "s3", "message": "invest in my wallet scheme"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("check-scam failed: %d", w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	sw := httptest.NewRecorder()
	router.ServeHTTP(sw, req)
	if sw.Code != http.StatusOK {
		t.Fatalf("stats failed: %d", sw.Code)
	}

	var stats service.DashboardStats
	if err := json.Unmarshal(sw.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if stats.TotalConversations != 1 || stats.ScamsDetected != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if len(stats.TopScamTypes) != 1 || stats.TopScamTypes[0].Type != "Crypto" {
		t.Fatalf("unexpected top scam types: %+v", stats.TopScamTypes)
	}
}
