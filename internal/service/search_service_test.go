package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xelar/internal/domain"
	"xelar/internal/genai"
)

func TestSearchReturnsResults(t *testing.T) {
	gen := &genStub{results: &genai.SearchResults{
		Users: []domain.User{{ID: "u1", Name: "Dr. Ada", Handle: "@ada"}},
		Posts: []domain.Post{{ID: "p1", Content: "On computable numbers."}},
	}}
	svc := NewSearchService(gen, nil)

	results := svc.Search(context.Background(), "computability")
	require.NotNil(t, results)
	assert.Len(t, results.Users, 1)
	assert.Len(t, results.Posts, 1)
}

func TestSearchDegradesToEmpty(t *testing.T) {
	svc := NewSearchService(&genStub{err: errors.New("timeout")}, nil)
	results := svc.Search(context.Background(), "anything")
	require.NotNil(t, results)
	assert.Empty(t, results.Users)
	assert.Empty(t, results.Posts)

	// blank queries never reach the generator
	gen := &genStub{}
	svc = NewSearchService(gen, nil)
	results = svc.Search(context.Background(), "   ")
	require.NotNil(t, results)
	assert.Empty(t, results.Users)
	assert.Zero(t, gen.calls)

	svc = NewSearchService(nil, nil)
	assert.NotNil(t, svc.Search(context.Background(), "anything"))
}
