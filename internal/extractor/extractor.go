package extractor

import "context"

// ExtractedIndicators groups the indicator values pulled from a message, keyed
// by extraction category.
type ExtractedIndicators struct {
	UPIIDs       []string `json:"upi_ids"`
	BankAccounts []string `json:"bank_accounts"`
	URLs         []string `json:"urls"`
	Phones       []string `json:"phones"`
	Wallets      []string `json:"wallets"`
}

// AnalysisResult is the structured output of an analysis call.
type AnalysisResult struct {
	ScamDetected bool                `json:"scam_detected"`
	ScamScore    int                 `json:"scam_score"`
	ScamType     *string             `json:"scam_type"`
	Reply        string              `json:"reply"`
	Extracted    ExtractedIndicators `json:"extracted"`
}

// Extractor analyzes an inbound message against the prior transcript. The
// history text carries the full transcript as "ROLE: content" lines in
// chronological order, including the inbound message as the final line.
// Implementations may be non-deterministic.
type Extractor interface {
	Analyze(ctx context.Context, message, historyText string) (*AnalysisResult, error)
}

// SafeDefault returns the degraded result substituted when an extractor call
// fails, times out, or returns output that cannot be parsed. The caller-facing
// endpoint must never 500 on a flaky model response.
func SafeDefault() *AnalysisResult {
	result := &AnalysisResult{Reply: "..."}
	Normalize(result)
	return result
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// Normalize makes a result safe to consume: the score is clamped to [0,100]
// and every extraction category is a non-nil slice.
func Normalize(result *AnalysisResult) {
	result.ScamScore = clampScore(result.ScamScore)
	if result.Extracted.UPIIDs == nil {
		result.Extracted.UPIIDs = []string{}
	}
	if result.Extracted.BankAccounts == nil {
		result.Extracted.BankAccounts = []string{}
	}
	if result.Extracted.URLs == nil {
		result.Extracted.URLs = []string{}
	}
	if result.Extracted.Phones == nil {
		result.Extracted.Phones = []string{}
	}
	if result.Extracted.Wallets == nil {
		result.Extracted.Wallets = []string{}
	}
}
