package dashboard

import (
	"context"
	"fmt"

	"github.com/clientdesk/portal/internal/session"
)

// Stats is the set of counters shown on the portal landing page, all scoped
// to the caller's tenant.
type Stats struct {
	PhotoCount    int64 `json:"photoCount"`
	DocumentCount int64 `json:"documentCount"`
	MemberCount   int64 `json:"memberCount"`
	StorageBytes  int64 `json:"storageBytes"`
}

// Service aggregates dashboard statistics.
type Service struct {
	repo Repository
}

// NewService creates a new dashboard Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Stats gathers all counters for the caller's scope.
func (s *Service) Stats(ctx context.Context, caller session.Identity) (*Stats, error) {
	photoCount, storageBytes, err := s.repo.PhotoStats(ctx, caller)
	if err != nil {
		return nil, fmt.Errorf("gather photo stats: %w", err)
	}

	docCount, err := s.repo.DocumentCount(ctx, caller)
	if err != nil {
		return nil, fmt.Errorf("gather document count: %w", err)
	}

	memberCount, err := s.repo.MemberCount(ctx, caller)
	if err != nil {
		return nil, fmt.Errorf("gather member count: %w", err)
	}

	return &Stats{
		PhotoCount:    photoCount,
		DocumentCount: docCount,
		MemberCount:   memberCount,
		StorageBytes:  storageBytes,
	}, nil
}
