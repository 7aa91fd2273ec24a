package pipeline

import (
	"fmt"
	"sync"

	"honeypot-backend/internal/models"
	"honeypot-backend/internal/repository"

	"go.uber.org/zap"
)

// SessionResolver maps an opaque external session id to an internal
// conversation, creating one if absent. Resolution is serialized per external
// id, and the store's unique index closes the remaining create race: a
// duplicate insert falls back to reading the existing row.
type SessionResolver struct {
	convs  repository.ConversationRepository
	logger *zap.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewSessionResolver(convs repository.ConversationRepository, logger *zap.Logger) *SessionResolver {
	return &SessionResolver{
		convs:  convs,
		logger: logger,
		locks:  make(map[string]*sync.Mutex),
	}
}

func (r *SessionResolver) lockFor(externalID string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	lock, ok := r.locks[externalID]
	if !ok {
		lock = &sync.Mutex{}
		r.locks[externalID] = lock
	}
	return lock
}

// Resolve returns the conversation correlated with externalID, creating it
// with zeroed scam state when no conversation exists yet.
func (r *SessionResolver) Resolve(externalID string) (*models.Conversation, error) {
	lock := r.lockFor(externalID)
	lock.Lock()
	defer lock.Unlock()

	conv, err := r.convs.GetByExternalID(externalID)
	if err != nil {
		return nil, err
	}
	if conv != nil {
		return conv, nil
	}

	conv = &models.Conversation{
		ExternalID:   externalID,
		Title:        "External: " + externalID,
		ScamScore:    0,
		ScamDetected: false,
		Status:       "active",
	}
	err = r.convs.Create(conv)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			// Another writer won the race; use its row.
			existing, getErr := r.convs.GetByExternalID(externalID)
			if getErr != nil {
				return nil, getErr
			}
			if existing == nil {
				return nil, fmt.Errorf("conversation for external id %q vanished after duplicate insert", externalID)
			}
			return existing, nil
		}
		return nil, err
	}

	r.logger.Info("Created conversation for new session",
		zap.Int64("conversation_id", conv.ID),
		zap.String("external_id", externalID))
	return conv, nil
}
