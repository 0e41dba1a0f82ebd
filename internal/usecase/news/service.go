package news

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/simaogato/cryptodash-backend/internal/domain"
)

// CategoryAll disables category filtering
const CategoryAll = "all"

// categoryKeywords matches an article to a category by title/summary words
var categoryKeywords = map[string][]string{
	"bitcoin":    {"bitcoin", "btc"},
	"ethereum":   {"ethereum", "eth"},
	"defi":       {"defi", "yield", "swap", "liquidity"},
	"nft":        {"nft", "collectible"},
	"regulation": {"regulation", "sec", "regulatory", "law"},
}

// Categories lists the accepted category names, "all" first
func Categories() []string {
	out := make([]string, 0, len(categoryKeywords))
	for c := range categoryKeywords {
		out = append(out, c)
	}
	sort.Strings(out)
	return append([]string{CategoryAll}, out...)
}

// NewsService filters the news feed
type NewsService struct {
	Source domain.NewsSource
}

// NewNewsService creates a new NewsService instance
func NewNewsService(source domain.NewsSource) *NewsService {
	return &NewsService{Source: source}
}

// Search returns articles matching query and category, newest first
// Logic:
//   - query matches title or summary, case-insensitive; empty matches all
//   - category "all" (or empty) skips the keyword filter
//   - an unknown category matches nothing
func (s *NewsService) Search(ctx context.Context, query, category string) ([]domain.NewsArticle, error) {
	articles, err := s.Source.Articles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load news: %w", err)
	}

	query = strings.ToLower(strings.TrimSpace(query))
	category = strings.ToLower(strings.TrimSpace(category))

	out := make([]domain.NewsArticle, 0, len(articles))
	for _, a := range articles {
		title := strings.ToLower(a.Title)
		summary := strings.ToLower(a.Summary)

		if !strings.Contains(title, query) && !strings.Contains(summary, query) {
			continue
		}
		if category != "" && category != CategoryAll && !matchesCategory(title, summary, category) {
			continue
		}
		out = append(out, a)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].PublishedAt.After(out[j].PublishedAt) })
	return out, nil
}

func matchesCategory(title, summary, category string) bool {
	for _, kw := range categoryKeywords[category] {
		if strings.Contains(title, kw) || strings.Contains(summary, kw) {
			return true
		}
	}
	return false
}
