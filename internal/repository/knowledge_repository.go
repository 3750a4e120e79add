package repository

import (
	"context"
	"strings"

	"github.com/spec-kit/triage-assistant/internal/domain"
)

// KnowledgeRepository provides keyword search over a fixed article list.
type KnowledgeRepository interface {
	Search(ctx context.Context, query string) ([]domain.KnowledgeArticle, error)
	All(ctx context.Context) ([]domain.KnowledgeArticle, error)
}

type staticKnowledgeRepository struct {
	articles []domain.KnowledgeArticle
}

// NewStaticKnowledgeRepository instantiates a read-only repository over the
// given articles, preserving their order.
func NewStaticKnowledgeRepository(articles []domain.KnowledgeArticle) KnowledgeRepository {
	return &staticKnowledgeRepository{articles: articles}
}

// Search returns articles whose title, category, or tags contain the query as
// a case-insensitive substring, in list order. An empty query matches all.
func (r *staticKnowledgeRepository) Search(ctx context.Context, query string) ([]domain.KnowledgeArticle, error) {
	needle := strings.ToLower(strings.TrimSpace(query))

	out := make([]domain.KnowledgeArticle, 0, len(r.articles))
	for _, article := range r.articles {
		if articleMatches(article, needle) {
			out = append(out, article)
		}
	}
	return out, nil
}

func (r *staticKnowledgeRepository) All(ctx context.Context) ([]domain.KnowledgeArticle, error) {
	out := make([]domain.KnowledgeArticle, len(r.articles))
	copy(out, r.articles)
	return out, nil
}

func articleMatches(article domain.KnowledgeArticle, needle string) bool {
	if needle == "" {
		return true
	}
	if strings.Contains(strings.ToLower(article.Title), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(article.Category), needle) {
		return true
	}
	for _, tag := range article.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

// DefaultKnowledgeArticles returns the built-in article set.
func DefaultKnowledgeArticles() []domain.KnowledgeArticle {
	return []domain.KnowledgeArticle{
		{
			ID:       "KB-001",
			Title:    "Payment Processing Troubleshooting",
			Content:  "Common issues: Check gateway connectivity, verify API keys, review transaction logs.",
			Category: "Payments",
			Tags:     []string{"payment", "checkout", "gateway"},
		},
		{
			ID:       "KB-002",
			Title:    "Payment Gateway Integration Guide",
			Content:  "Step-by-step guide for integrating payment gateways. Requires API credentials.",
			Category: "Payments",
			Tags:     []string{"payment", "integration"},
		},
		{
			ID:       "KB-003",
			Title:    "Login Issues Resolution",
			Content:  "Reset password, clear cache, check session timeout settings (default: 30 min).",
			Category: "Authentication",
			Tags:     []string{"login", "password", "session"},
		},
		{
			ID:       "KB-004",
			Title:    "SSO Configuration",
			Content:  "Single Sign-On setup requires SAML 2.0 configuration and certificate management.",
			Category: "Authentication",
			Tags:     []string{"login", "sso", "saml"},
		},
		{
			ID:       "KB-005",
			Title:    "Performance Optimization Checklist",
			Content:  "1. Check database query performance 2. Review CDN cache settings 3. Monitor API response times.",
			Category: "Performance",
			Tags:     []string{"performance", "latency", "slow"},
		},
		{
			ID:       "KB-006",
			Title:    "API Rate Limiting",
			Content:  "Default rate limit: 1000 requests/hour per API key. Contact support for increases.",
			Category: "API",
			Tags:     []string{"api", "rate limit"},
		},
		{
			ID:       "KB-007",
			Title:    "Enabling Dark Mode",
			Content:  "Dark mode is available under Settings > Appearance. Theme preference is stored per user.",
			Category: "UI",
			Tags:     []string{"dark mode", "theme", "appearance"},
		},
	}
}
