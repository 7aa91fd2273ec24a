package extractor

import (
	"context"
	"regexp"
	"strings"
)

var (
	walletRe = regexp.MustCompile(`0x[0-9a-fA-F]{3,}`)
	phoneRe  = regexp.MustCompile(`\+\d{10,}`)
	urlRe    = regexp.MustCompile(`https?://[^\s"']+`)
	upiRe    = regexp.MustCompile(`[a-zA-Z0-9.\-_]+@[a-z]{2,}`)
)

// Mock is a deterministic rule-based extractor for development and tests.
// Keyword triggers decide the verdict; indicators are pulled from the message
// text itself.
type Mock struct{}

func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) Analyze(_ context.Context, message, _ string) (*AnalysisResult, error) {
	result := &AnalysisResult{Reply: "Hmm, okay!"}

	lower := strings.ToLower(message)

	switch {
	case strings.Contains(lower, "wallet") || strings.Contains(message, "$"):
		result.ScamDetected = true
		result.ScamScore = 90
		scamType := "Crypto"
		result.ScamType = &scamType
		result.Reply = "Wow, that sounds interesting, can you explain more?"
		result.Extracted.Wallets = walletRe.FindAllString(message, -1)
		result.Extracted.URLs = urlRe.FindAllString(message, -1)
		result.Extracted.UPIIDs = upiRe.FindAllString(message, -1)
	case strings.Contains(lower, "whatsapp") || phoneRe.MatchString(message):
		result.ScamDetected = true
		result.ScamScore = 85
		scamType := "Job"
		result.ScamType = &scamType
		result.Reply = "I am interested! What do I need to do?"
		result.Extracted.Phones = phoneRe.FindAllString(message, -1)
		result.Extracted.URLs = urlRe.FindAllString(message, -1)
	}

	Normalize(result)
	return result, nil
}
