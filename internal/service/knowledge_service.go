package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/triage-assistant/internal/domain"
	"github.com/spec-kit/triage-assistant/internal/events"
	"github.com/spec-kit/triage-assistant/internal/repository"
)

// KnowledgeService handles knowledge-base lookups.
type KnowledgeService struct {
	articles   repository.KnowledgeRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewKnowledgeService creates the service.
func NewKnowledgeService(articles repository.KnowledgeRepository, dispatcher events.Dispatcher, logger *zap.Logger) *KnowledgeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &KnowledgeService{
		articles:   articles,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Search returns matching articles in index order and records the lookup in
// the activity feed.
func (s *KnowledgeService) Search(ctx context.Context, query string) ([]domain.KnowledgeArticle, error) {
	results, err := s.articles.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	if s.dispatcher != nil {
		if err := s.dispatcher.Publish(ctx, events.Event{
			Type: events.EventKnowledgeSearched,
			Payload: events.KnowledgeSearchedPayload{
				Query:   query,
				Results: len(results),
			},
		}); err != nil {
			s.logger.Warn("event publish failed", zap.Error(err))
		}
	}
	return results, nil
}
