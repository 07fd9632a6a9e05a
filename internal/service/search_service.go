package service

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"xelar/internal/genai"
)

// SearchService synthesizes search results through the generative service,
// degrading to empty results on failure.
type SearchService interface {
	Search(ctx context.Context, query string) *genai.SearchResults
}

type searchService struct {
	gen    genai.Generator
	logger *logrus.Logger
}

func NewSearchService(gen genai.Generator, logger *logrus.Logger) SearchService {
	if logger == nil {
		logger = logrus.New()
	}
	return &searchService{gen: gen, logger: logger}
}

func (s *searchService) Search(ctx context.Context, query string) *genai.SearchResults {
	empty := &genai.SearchResults{}
	query = strings.TrimSpace(query)
	if query == "" || s.gen == nil {
		return empty
	}

	results, err := s.gen.Search(ctx, query)
	if err != nil {
		s.logger.Warnf("search %q: %v", query, err)
		return empty
	}
	return results
}
