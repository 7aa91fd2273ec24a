package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"honeypot-backend/internal/extractor"
	"honeypot-backend/internal/models"
	"honeypot-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx/types"
	"go.uber.org/zap"
)

// Agent modes reported in the check-scam response.
const (
	AgentModeHoneypot = "honeypot_active"
	AgentModeNeutral  = "neutral"
)

// Metrics carries per-call engagement numbers.
type Metrics struct {
	TurnCount         int   `json:"turn_count"`
	EngagementTimeSec int64 `json:"engagement_time_sec"`
}

// ScamCheckResponse is the payload returned to the check-scam caller.
type ScamCheckResponse struct {
	ScamDetected          bool                          `json:"scam_detected"`
	Confidence            float64                       `json:"confidence"`
	AgentMode             string                        `json:"agent_mode"`
	Reply                 string                        `json:"reply"`
	Metrics               Metrics                       `json:"metrics"`
	ExtractedIntelligence extractor.ExtractedIndicators `json:"extracted_intelligence"`
}

// Pipeline orchestrates a single inbound message: resolve the session, record
// the message, analyze it, fan out the derived writes, and build the response.
// The write sequence is not transactional; the inbound message is durable once
// written even when a later step fails.
type Pipeline struct {
	resolver   *SessionResolver
	convs      repository.ConversationRepository
	msgs       repository.MessageRepository
	intel      repository.IntelligenceRepository
	extractor  extractor.Extractor
	logger     *zap.Logger
	timeout    time.Duration
	confidence int
}

func NewPipeline(
	resolver *SessionResolver,
	convs repository.ConversationRepository,
	msgs repository.MessageRepository,
	intel repository.IntelligenceRepository,
	ext extractor.Extractor,
	logger *zap.Logger,
	timeout time.Duration,
	defaultConfidence int,
) *Pipeline {
	return &Pipeline{
		resolver:   resolver,
		convs:      convs,
		msgs:       msgs,
		intel:      intel,
		extractor:  ext,
		logger:     logger,
		timeout:    timeout,
		confidence: defaultConfidence,
	}
}

// RenderHistory renders a transcript as "ROLE: content" lines in chronological
// order, role uppercased.
func RenderHistory(history []*models.Message) string {
	lines := make([]string, 0, len(history))
	for _, m := range history {
		lines = append(lines, strings.ToUpper(m.Role)+": "+m.Content)
	}
	return strings.Join(lines, "\n")
}

// Handle runs the ingest pipeline for one inbound message. An empty externalID
// gets a synthesized one; such sessions cannot be resolved by future calls.
func (p *Pipeline) Handle(ctx context.Context, externalID, message string) (*ScamCheckResponse, error) {
	if externalID == "" {
		externalID = "anon-" + uuid.New().String()
	}

	conv, err := p.resolver.Resolve(externalID)
	if err != nil {
		return nil, fmt.Errorf("resolve session: %w", err)
	}

	inbound := &models.Message{
		ConversationID: conv.ID,
		Role:           models.RoleScammer,
		Content:        message,
	}
	if err := p.msgs.SaveMessage(inbound); err != nil {
		return nil, fmt.Errorf("save inbound message: %w", err)
	}

	// History is loaded after the insert so the inbound message appears once,
	// as the final transcript line.
	history, err := p.msgs.GetByConversation(conv.ID)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	result := p.analyze(ctx, conv.ID, message, RenderHistory(history))

	// Sticky detection: a negative verdict never clears an earlier positive,
	// so conversation state is only touched on detection.
	if result.ScamDetected {
		if err := p.convs.UpdateDetection(conv.ID, result.ScamScore, result.ScamType); err != nil {
			return nil, fmt.Errorf("update conversation %d: %w", conv.ID, err)
		}
	}

	if err := p.saveIntelligence(conv.ID, result.Extracted); err != nil {
		return nil, err
	}

	if result.Reply != "" {
		metadata, _ := json.Marshal(map[string]int{"confidence": result.ScamScore})
		reply := &models.Message{
			ConversationID: conv.ID,
			Role:           models.RoleAgent,
			Content:        result.Reply,
			Metadata:       types.JSONText(metadata),
		}
		if err := p.msgs.SaveMessage(reply); err != nil {
			return nil, fmt.Errorf("save agent reply for conversation %d: %w", conv.ID, err)
		}
	}

	agentMode := AgentModeNeutral
	if result.ScamDetected {
		agentMode = AgentModeHoneypot
	}

	// history already includes the inbound message: prior + 1 turns, plus the
	// agent reply when there is one.
	turnCount := len(history)
	if result.Reply != "" {
		turnCount++
	}

	return &ScamCheckResponse{
		ScamDetected: result.ScamDetected,
		Confidence:   float64(result.ScamScore) / 100,
		AgentMode:    agentMode,
		Reply:        result.Reply,
		Metrics: Metrics{
			TurnCount:         turnCount,
			EngagementTimeSec: int64(time.Since(conv.CreatedAt).Seconds()),
		},
		ExtractedIntelligence: result.Extracted,
	}, nil
}

// analyze invokes the extractor under a timeout. Any failure, including
// unparseable model output, degrades to the safe default rather than
// propagating to the caller.
func (p *Pipeline) analyze(ctx context.Context, conversationID int64, message, historyText string) *extractor.AnalysisResult {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	result, err := p.extractor.Analyze(ctx, message, historyText)
	if err != nil {
		p.logger.Warn("Extractor call failed, substituting safe default",
			zap.Int64("conversation_id", conversationID),
			zap.Error(err))
		return extractor.SafeDefault()
	}
	extractor.Normalize(result)
	return result
}

// saveIntelligence persists one row per extracted value. The category-to-type
// mapping is an explicit, total table; values are not deduplicated.
func (p *Pipeline) saveIntelligence(conversationID int64, extracted extractor.ExtractedIndicators) error {
	categories := []struct {
		intelType string
		values    []string
	}{
		{models.IntelUPI, extracted.UPIIDs},
		{models.IntelBankAccount, extracted.BankAccounts},
		{models.IntelURL, extracted.URLs},
		{models.IntelPhone, extracted.Phones},
		{models.IntelWallet, extracted.Wallets},
	}

	for _, cat := range categories {
		for _, value := range cat.values {
			row := &models.Intelligence{
				ConversationID: conversationID,
				Type:           cat.intelType,
				Value:          value,
				Confidence:     p.confidence,
			}
			if err := p.intel.SaveIntelligence(row); err != nil {
				return fmt.Errorf("save %s intelligence for conversation %d: %w", cat.intelType, conversationID, err)
			}
		}
	}
	return nil
}
