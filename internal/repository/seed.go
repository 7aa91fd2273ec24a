package repository

import (
	"honeypot-backend/internal/models"

	"go.uber.org/zap"
)

// DefaultAPIKey is inserted when the key table is empty so the check-scam
// endpoint is usable out of the box.
const DefaultAPIKey = "guvi-hackathon-2026-secret-key"

func strPtr(s string) *string { return &s }

// SeedAPIKey inserts the default reviewer key if no keys exist.
func SeedAPIKey(keys APIKeyRepository, logger *zap.Logger) error {
	count, err := keys.CountKeys()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	key := &models.APIKey{
		Key:         DefaultAPIKey,
		Description: "HCL Hackathon Reviewer Key",
	}
	if err := keys.CreateKey(key); err != nil {
		return err
	}
	logger.Info("Seeded default API key")
	return nil
}

// SeedDemoData inserts three example conversations (crypto scam, job scam,
// benign) when the conversation table is empty. Fixture data for the
// dashboard demo, not a production concern.
func SeedDemoData(convs ConversationRepository, msgs MessageRepository, intel IntelligenceRepository, logger *zap.Logger) error {
	count, err := convs.CountAll()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	c1 := &models.Conversation{
		ExternalID:   "user-123-crypto",
		Title:        "External: user-123-crypto",
		ScamScore:    95,
		ScamDetected: true,
		ScamType:     strPtr("Crypto"),
		Status:       "active",
	}
	if err := convs.Create(c1); err != nil {
		return err
	}
	demoMessages := []*models.Message{
		{ConversationID: c1.ID, Role: models.RoleScammer, Content: "Hello friend, do you want to earn 500% returns in 24 hours? Invest in BitScam now!"},
		{ConversationID: c1.ID, Role: models.RoleAgent, Content: "Wow, 500%? That sounds amazing but also a bit scary. Is it safe?"},
		{ConversationID: c1.ID, Role: models.RoleScammer, Content: "100% safe. Send $1000 to this wallet: 0x123abc..."},
	}
	for _, m := range demoMessages {
		if err := msgs.SaveMessage(m); err != nil {
			return err
		}
	}
	if err := intel.SaveIntelligence(&models.Intelligence{ConversationID: c1.ID, Type: models.IntelWallet, Value: "0x123abc...", Confidence: 100}); err != nil {
		return err
	}

	c2 := &models.Conversation{
		ExternalID:   "user-456-job",
		Title:        "External: user-456-job",
		ScamScore:    88,
		ScamDetected: true,
		ScamType:     strPtr("Job"),
		Status:       "active",
	}
	if err := convs.Create(c2); err != nil {
		return err
	}
	demoMessages = []*models.Message{
		{ConversationID: c2.ID, Role: models.RoleScammer, Content: "We are hiring part-time optimization managers. Pay is $500/day. WhatsApp me at +1234567890"},
		{ConversationID: c2.ID, Role: models.RoleAgent, Content: "I am looking for a job! What do I need to do?"},
	}
	for _, m := range demoMessages {
		if err := msgs.SaveMessage(m); err != nil {
			return err
		}
	}
	if err := intel.SaveIntelligence(&models.Intelligence{ConversationID: c2.ID, Type: models.IntelPhone, Value: "+1234567890", Confidence: 95}); err != nil {
		return err
	}

	c3 := &models.Conversation{
		ExternalID:   "user-789-normal",
		Title:        "External: user-789-normal",
		ScamScore:    5,
		ScamDetected: false,
		Status:       "active",
	}
	if err := convs.Create(c3); err != nil {
		return err
	}
	demoMessages = []*models.Message{
		{ConversationID: c3.ID, Role: models.RoleScammer, Content: "Hey mom, just checking in."},
		{ConversationID: c3.ID, Role: models.RoleAgent, Content: "I think you have the wrong number."},
	}
	for _, m := range demoMessages {
		if err := msgs.SaveMessage(m); err != nil {
			return err
		}
	}

	logger.Info("Seeded demo conversations", zap.Int("count", 3))
	return nil
}
