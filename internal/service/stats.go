package service

import (
	"honeypot-backend/internal/repository"

	"go.uber.org/zap"
)

// DashboardStats represents the statistics for the dashboard. Derived, never
// stored; recomputed per request. The individual counts are not read in one
// snapshot, which is acceptable for a monitoring view.
type DashboardStats struct {
	TotalConversations int                        `json:"totalConversations"`
	ActiveHoneypots    int                        `json:"activeHoneypots"`
	ScamsDetected      int                        `json:"scamsDetected"`
	IntelligenceCount  int                        `json:"intelligenceCount"`
	TopScamTypes       []repository.ScamTypeCount `json:"topScamTypes"`
}

type StatsAggregator struct {
	convs  repository.ConversationRepository
	intel  repository.IntelligenceRepository
	logger *zap.Logger
}

func NewStatsAggregator(convs repository.ConversationRepository, intel repository.IntelligenceRepository, logger *zap.Logger) *StatsAggregator {
	return &StatsAggregator{convs: convs, intel: intel, logger: logger}
}

func (s *StatsAggregator) ComputeStats() (*DashboardStats, error) {
	total, err := s.convs.CountAll()
	if err != nil {
		return nil, err
	}

	active, err := s.convs.CountByStatus("active")
	if err != nil {
		return nil, err
	}

	detected, err := s.convs.CountScamDetected()
	if err != nil {
		return nil, err
	}

	intelCount, err := s.intel.CountAll()
	if err != nil {
		return nil, err
	}

	topTypes, err := s.convs.TopScamTypes(5)
	if err != nil {
		return nil, err
	}
	if topTypes == nil {
		topTypes = []repository.ScamTypeCount{}
	}

	return &DashboardStats{
		TotalConversations: total,
		ActiveHoneypots:    active,
		ScamsDetected:      detected,
		IntelligenceCount:  intelCount,
		TopScamTypes:       topTypes,
	}, nil
}
