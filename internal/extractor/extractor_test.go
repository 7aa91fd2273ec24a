package extractor

import (
	"context"
	"testing"
)

func TestNormalizeClampsScoreAndFillsSlices(t *testing.T) {
	tests := []struct {
		name  string
		score int
		want  int
	}{
		{"negative", -5, 0},
		{"in range", 42, 42},
		{"above range", 250, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := &AnalysisResult{ScamScore: tt.score}
			Normalize(result)
			if result.ScamScore != tt.want {
				t.Fatalf("expected score %d, got %d", tt.want, result.ScamScore)
			}
			if result.Extracted.UPIIDs == nil || result.Extracted.BankAccounts == nil ||
				result.Extracted.URLs == nil || result.Extracted.Phones == nil ||
				result.Extracted.Wallets == nil {
				t.Fatal("normalize must leave no nil category slice")
			}
		})
	}
}

func TestSafeDefault(t *testing.T) {
	result := SafeDefault()
	if result.ScamDetected {
		t.Fatal("safe default must not report a scam")
	}
	if result.ScamScore != 0 {
		t.Fatalf("safe default score should be 0, got %d", result.ScamScore)
	}
	if result.ScamType != nil {
		t.Fatalf("safe default scam type should be nil, got %v", result.ScamType)
	}
	if result.Reply == "" {
		t.Fatal("safe default reply should be non-empty")
	}
	if len(result.Extracted.Wallets) != 0 || result.Extracted.Wallets == nil {
		t.Fatal("safe default categories should be empty, non-nil slices")
	}
}

func TestMockDetectsCryptoScam(t *testing.T) {
	result, err := NewMock().Analyze(context.Background(), "Send $1000 to this wallet: 0x123abc now", "")
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if !result.ScamDetected {
		t.Fatal("crypto message not detected")
	}
	if result.ScamType == nil || *result.ScamType != "Crypto" {
		t.Fatalf("expected Crypto, got %v", result.ScamType)
	}
	if result.ScamScore != 90 {
		t.Fatalf("expected score 90, got %d", result.ScamScore)
	}
	if len(result.Extracted.Wallets) != 1 || result.Extracted.Wallets[0] != "0x123abc" {
		t.Fatalf("expected wallet 0x123abc, got %v", result.Extracted.Wallets)
	}
}

func TestMockDetectsJobScam(t *testing.T) {
	result, err := NewMock().Analyze(context.Background(), "We are hiring! WhatsApp me at +1234567890", "")
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if !result.ScamDetected {
		t.Fatal("job message not detected")
	}
	if result.ScamType == nil || *result.ScamType != "Job" {
		t.Fatalf("expected Job, got %v", result.ScamType)
	}
	if len(result.Extracted.Phones) != 1 || result.Extracted.Phones[0] != "+1234567890" {
		t.Fatalf("expected phone +1234567890, got %v", result.Extracted.Phones)
	}
}

func TestMockBenignMessage(t *testing.T) {
	result, err := NewMock().Analyze(context.Background(), "hey mom just checking in", "")
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if result.ScamDetected {
		t.Fatal("benign message flagged as scam")
	}
	if result.ScamScore != 0 {
		t.Fatalf("expected score 0, got %d", result.ScamScore)
	}
	if result.Reply == "" {
		t.Fatal("benign reply should still be non-empty")
	}
	total := len(result.Extracted.UPIIDs) + len(result.Extracted.BankAccounts) +
		len(result.Extracted.URLs) + len(result.Extracted.Phones) + len(result.Extracted.Wallets)
	if total != 0 {
		t.Fatalf("benign message extracted indicators: %+v", result.Extracted)
	}
}
