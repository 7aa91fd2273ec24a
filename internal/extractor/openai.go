package extractor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

const systemPrompt = `You are an AI Scambaiter Agent. Your goal is to detect scams, engage scammers, and extract intelligence.

Analyze the incoming message and the conversation history.

1. **Detection**: Is this a scam? (0-100 score). What type? (UPI, Bank, Job, Romance, Crypto, etc.)
2. **Action**: If it's a scam, engage the scammer. Pretend to be a naive, confused, but cooperative victim.
   - Ask clarifying questions.
   - Delay payments with realistic excuses (tech issues, busy).
   - Try to get them to send UPI IDs, Bank Details, or Links.
   If it's NOT a scam, reply neutrally.
3. **Extraction**: Identify any phone numbers, UPI IDs, URLs, bank details, or crypto wallets in the message.

Respond in JSON format:
{
  "scam_detected": boolean,
  "scam_score": number (0-100),
  "scam_type": stringOrNull,
  "reply": string (your response to the scammer),
  "extracted": {
    "upi_ids": [], "bank_accounts": [], "urls": [], "phones": [], "wallets": []
  }
}`

// OpenAIConfig holds configuration for the LLM-backed extractor.
type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// OpenAI is an Extractor backed by an OpenAI-compatible chat completion API.
type OpenAI struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

func NewOpenAI(cfg OpenAIConfig, logger *zap.Logger) *OpenAI {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	logger.Info("OpenAI extractor initialized", zap.String("model", cfg.Model))

	return &OpenAI{
		client: openai.NewClientWithConfig(clientConfig),
		model:  cfg.Model,
		logger: logger,
	}
}

// Analyze asks the model for a verdict on the inbound message. The returned
// result is validated and normalized; a malformed model response is an error,
// which the pipeline degrades to a safe default.
func (e *OpenAI) Analyze(ctx context.Context, message, historyText string) (*AnalysisResult, error) {
	req := openai.ChatCompletionRequest{
		Model: e.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf("New Message: %q\n\nHistory:\n%s", message, historyText)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	resp, err := e.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices in completion response")
	}

	content := resp.Choices[0].Message.Content

	// Strip markdown code fences if present
	cleanJSON := strings.TrimSpace(content)
	cleanJSON = strings.TrimPrefix(cleanJSON, "```json")
	cleanJSON = strings.TrimPrefix(cleanJSON, "```")
	cleanJSON = strings.TrimSuffix(cleanJSON, "```")
	cleanJSON = strings.TrimSpace(cleanJSON)

	var result AnalysisResult
	if err := json.Unmarshal([]byte(cleanJSON), &result); err != nil {
		e.logger.Error("Failed to parse model response",
			zap.Error(err),
			zap.String("response", content))
		return nil, fmt.Errorf("failed to parse model response: %w", err)
	}

	Normalize(&result)
	return &result, nil
}
