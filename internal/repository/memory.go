package repository

import (
	"sort"
	"sync"
	"time"

	"honeypot-backend/internal/models"
)

// memoryDB is the shared state behind the in-memory repositories. It backs the
// "memory" database driver and the test doubles; behavior mirrors the Postgres
// repositories, including the unique external-id constraint.
type memoryDB struct {
	mu            sync.Mutex
	nextConvID    int64
	nextMsgID     int64
	nextIntelID   int64
	nextKeyID     int64
	conversations []*models.Conversation
	messages      []*models.Message
	intelligence  []*models.Intelligence
	apiKeys       []*models.APIKey
}

// MemoryRepositories bundles in-memory implementations of all repositories
// over one shared store.
type MemoryRepositories struct {
	Conversations ConversationRepository
	Messages      MessageRepository
	Intelligence  IntelligenceRepository
	APIKeys       APIKeyRepository
}

func NewMemoryRepositories() *MemoryRepositories {
	db := &memoryDB{}
	return &MemoryRepositories{
		Conversations: &memoryConversationRepository{db: db},
		Messages:      &memoryMessageRepository{db: db},
		Intelligence:  &memoryIntelligenceRepository{db: db},
		APIKeys:       &memoryAPIKeyRepository{db: db},
	}
}

type memoryConversationRepository struct {
	db *memoryDB
}

func (r *memoryConversationRepository) GetByExternalID(externalID string) (*models.Conversation, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, c := range r.db.conversations {
		if c.ExternalID == externalID {
			out := *c
			return &out, nil
		}
	}
	return nil, nil
}

func (r *memoryConversationRepository) GetByID(id int64) (*models.Conversation, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, c := range r.db.conversations {
		if c.ID == id {
			out := *c
			return &out, nil
		}
	}
	return nil, nil
}

func (r *memoryConversationRepository) GetAll() ([]*models.Conversation, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	convs := make([]*models.Conversation, 0, len(r.db.conversations))
	for _, c := range r.db.conversations {
		out := *c
		convs = append(convs, &out)
	}
	sort.SliceStable(convs, func(i, j int) bool {
		if convs[i].UpdatedAt.Equal(convs[j].UpdatedAt) {
			return convs[i].ID > convs[j].ID
		}
		return convs[i].UpdatedAt.After(convs[j].UpdatedAt)
	})
	return convs, nil
}

func (r *memoryConversationRepository) Create(conv *models.Conversation) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, c := range r.db.conversations {
		if c.ExternalID == conv.ExternalID {
			return ErrDuplicateExternalID
		}
	}
	r.db.nextConvID++
	conv.ID = r.db.nextConvID
	now := time.Now()
	conv.CreatedAt = now
	conv.UpdatedAt = now
	stored := *conv
	r.db.conversations = append(r.db.conversations, &stored)
	return nil
}

func (r *memoryConversationRepository) UpdateDetection(id int64, scamScore int, scamType *string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, c := range r.db.conversations {
		if c.ID == id {
			c.ScamDetected = true
			c.ScamScore = scamScore
			c.ScamType = scamType
			c.UpdatedAt = time.Now()
			return nil
		}
	}
	return nil
}

func (r *memoryConversationRepository) Delete(id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	intel := r.db.intelligence[:0]
	for _, i := range r.db.intelligence {
		if i.ConversationID != id {
			intel = append(intel, i)
		}
	}
	r.db.intelligence = intel
	msgs := r.db.messages[:0]
	for _, m := range r.db.messages {
		if m.ConversationID != id {
			msgs = append(msgs, m)
		}
	}
	r.db.messages = msgs
	convs := r.db.conversations[:0]
	for _, c := range r.db.conversations {
		if c.ID != id {
			convs = append(convs, c)
		}
	}
	r.db.conversations = convs
	return nil
}

func (r *memoryConversationRepository) CountAll() (int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return len(r.db.conversations), nil
}

func (r *memoryConversationRepository) CountByStatus(status string) (int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	count := 0
	for _, c := range r.db.conversations {
		if c.Status == status {
			count++
		}
	}
	return count, nil
}

func (r *memoryConversationRepository) CountScamDetected() (int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	count := 0
	for _, c := range r.db.conversations {
		if c.ScamDetected {
			count++
		}
	}
	return count, nil
}

func (r *memoryConversationRepository) TopScamTypes(limit int) ([]ScamTypeCount, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	counts := make(map[string]int)
	for _, c := range r.db.conversations {
		if c.ScamType != nil {
			counts[*c.ScamType]++
		}
	}
	rows := make([]ScamTypeCount, 0, len(counts))
	for t, n := range counts {
		rows = append(rows, ScamTypeCount{Type: t, Count: n})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count == rows[j].Count {
			return rows[i].Type < rows[j].Type
		}
		return rows[i].Count > rows[j].Count
	})
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

type memoryMessageRepository struct {
	db *memoryDB
}

func (r *memoryMessageRepository) SaveMessage(msg *models.Message) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.nextMsgID++
	msg.ID = r.db.nextMsgID
	msg.CreatedAt = time.Now()
	stored := *msg
	r.db.messages = append(r.db.messages, &stored)
	return nil
}

func (r *memoryMessageRepository) GetByConversation(conversationID int64) ([]*models.Message, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var msgs []*models.Message
	for _, m := range r.db.messages {
		if m.ConversationID == conversationID {
			out := *m
			msgs = append(msgs, &out)
		}
	}
	// Insertion order equals (created_at, id) order
	return msgs, nil
}

type memoryIntelligenceRepository struct {
	db *memoryDB
}

func (r *memoryIntelligenceRepository) SaveIntelligence(intel *models.Intelligence) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.nextIntelID++
	intel.ID = r.db.nextIntelID
	intel.CreatedAt = time.Now()
	stored := *intel
	r.db.intelligence = append(r.db.intelligence, &stored)
	return nil
}

func (r *memoryIntelligenceRepository) GetByConversation(conversationID int64) ([]*models.Intelligence, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var intel []*models.Intelligence
	for _, i := range r.db.intelligence {
		if i.ConversationID == conversationID {
			out := *i
			intel = append(intel, &out)
		}
	}
	return intel, nil
}

func (r *memoryIntelligenceRepository) CountAll() (int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return len(r.db.intelligence), nil
}

type memoryAPIKeyRepository struct {
	db *memoryDB
}

func (r *memoryAPIKeyRepository) CreateKey(key *models.APIKey) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.nextKeyID++
	key.ID = r.db.nextKeyID
	key.CreatedAt = time.Now()
	stored := *key
	r.db.apiKeys = append(r.db.apiKeys, &stored)
	return nil
}

func (r *memoryAPIKeyRepository) KeyExists(key string) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, k := range r.db.apiKeys {
		if k.Key == key {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryAPIKeyRepository) CountKeys() (int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return len(r.db.apiKeys), nil
}
