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

// genStub is a scripted Generator for service tests.
type genStub struct {
	history    []domain.ChatMessage
	suggestion string
	results    *genai.SearchResults
	err        error

	calls int
}

func (g *genStub) ChatHistory(ctx context.Context, contact domain.User) ([]domain.ChatMessage, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	return g.history, nil
}

func (g *genStub) PostSuggestion(ctx context.Context, topic string) (string, error) {
	g.calls++
	if g.err != nil {
		return "", g.err
	}
	return g.suggestion, nil
}

func (g *genStub) Search(ctx context.Context, query string) (*genai.SearchResults, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	return g.results, nil
}

func feedAuthor() domain.User {
	return domain.User{ID: "author-1", Name: "Kuny", Handle: "@Kuny"}
}

func TestCreatePostPrepends(t *testing.T) {
	svc := NewFeedService(nil, nil)
	before := svc.ListPosts(context.Background())

	post, err := svc.CreatePost(context.Background(), feedAuthor(), "Hello Xelar!", "")
	require.NoError(t, err)
	assert.NotEmpty(t, post.ID)
	assert.Equal(t, "Just now", post.Timestamp)

	after := svc.ListPosts(context.Background())
	require.Len(t, after, len(before)+1)
	assert.Equal(t, post.ID, after[0].ID)

	_, err = svc.CreatePost(context.Background(), feedAuthor(), "", "")
	assert.Error(t, err)
}

func TestUpdatePostAuthorOnly(t *testing.T) {
	svc := NewFeedService(nil, nil)
	post, err := svc.CreatePost(context.Background(), feedAuthor(), "draft", "")
	require.NoError(t, err)

	updated, err := svc.UpdatePost(context.Background(), "author-1", post.ID, "final")
	require.NoError(t, err)
	assert.Equal(t, "final", updated.Content)

	_, err = svc.UpdatePost(context.Background(), "someone-else", post.ID, "hijack")
	assert.ErrorIs(t, err, ErrNotPostAuthor)

	_, err = svc.UpdatePost(context.Background(), "author-1", "missing", "text")
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestDeletePost(t *testing.T) {
	svc := NewFeedService(nil, nil)
	post, err := svc.CreatePost(context.Background(), feedAuthor(), "to be removed", "")
	require.NoError(t, err)

	err = svc.DeletePost(context.Background(), "someone-else", post.ID)
	assert.ErrorIs(t, err, ErrNotPostAuthor)

	require.NoError(t, svc.DeletePost(context.Background(), "author-1", post.ID))
	assert.ErrorIs(t, svc.DeletePost(context.Background(), "author-1", post.ID), ErrPostNotFound)
}

func TestToggleLike(t *testing.T) {
	svc := NewFeedService(nil, nil)
	posts := svc.ListPosts(context.Background())
	require.NotEmpty(t, posts)
	target := posts[len(posts)-1]
	require.False(t, target.IsLiked)

	liked, err := svc.ToggleLike(context.Background(), target.ID)
	require.NoError(t, err)
	assert.True(t, liked.IsLiked)
	assert.Equal(t, target.Likes+1, liked.Likes)

	unliked, err := svc.ToggleLike(context.Background(), target.ID)
	require.NoError(t, err)
	assert.False(t, unliked.IsLiked)
	assert.Equal(t, target.Likes, unliked.Likes)

	_, err = svc.ToggleLike(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestSuggestPost(t *testing.T) {
	gen := &genStub{suggestion: "Excited about graph neural networks? Let's talk. #GNN"}
	svc := NewFeedService(gen, nil)
	assert.Equal(t, gen.suggestion, svc.SuggestPost(context.Background(), "GNNs"))
}

func TestSuggestPostFallsBack(t *testing.T) {
	svc := NewFeedService(nil, nil)
	assert.Equal(t, suggestionFallback, svc.SuggestPost(context.Background(), "anything"))

	svc = NewFeedService(&genStub{err: errors.New("quota exceeded")}, nil)
	assert.Equal(t, suggestionFallback, svc.SuggestPost(context.Background(), "anything"))
}
