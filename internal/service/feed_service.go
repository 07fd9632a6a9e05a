package service

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"xelar/internal/domain"
	"xelar/internal/genai"
)

var (
	// ErrPostNotFound is returned when no post matches the id.
	ErrPostNotFound = errors.New("post not found")
	// ErrNotPostAuthor is returned when mutating a post owned by someone else.
	ErrNotPostAuthor = errors.New("not the post author")
)

// suggestionFallback is returned when the generative service cannot produce
// a post suggestion.
const suggestionFallback = "Could not generate a suggestion at this time."

// FeedService owns the home feed: posts, stories, and AI-assisted post
// composition.
type FeedService interface {
	ListPosts(ctx context.Context) []domain.Post
	ListStories(ctx context.Context) []domain.Story
	CreatePost(ctx context.Context, author domain.User, content, imageURL string) (*domain.Post, error)
	UpdatePost(ctx context.Context, authorID, postID, content string) (*domain.Post, error)
	DeletePost(ctx context.Context, authorID, postID string) error
	ToggleLike(ctx context.Context, postID string) (*domain.Post, error)
	SuggestPost(ctx context.Context, topic string) string
}

type feedService struct {
	gen    genai.Generator
	logger *logrus.Logger

	mu      sync.Mutex
	posts   []domain.Post
	stories []domain.Story
}

func NewFeedService(gen genai.Generator, logger *logrus.Logger) FeedService {
	if logger == nil {
		logger = logrus.New()
	}
	return &feedService{
		gen:     gen,
		logger:  logger,
		posts:   seedPosts(),
		stories: seedStories(),
	}
}

// ListPosts returns the feed, newest first.
func (s *feedService) ListPosts(ctx context.Context) []domain.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Post, len(s.posts))
	copy(out, s.posts)
	return out
}

func (s *feedService) ListStories(ctx context.Context) []domain.Story {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Story, len(s.stories))
	copy(out, s.stories)
	return out
}

func (s *feedService) CreatePost(ctx context.Context, author domain.User, content, imageURL string) (*domain.Post, error) {
	if content == "" {
		return nil, errors.New("post content is required")
	}

	post := domain.Post{
		ID:        uuid.NewString(),
		Author:    author,
		Content:   content,
		ImageURL:  imageURL,
		Timestamp: "Just now",
	}

	s.mu.Lock()
	s.posts = append([]domain.Post{post}, s.posts...)
	s.mu.Unlock()
	return &post, nil
}

func (s *feedService) UpdatePost(ctx context.Context, authorID, postID, content string) (*domain.Post, error) {
	if content == "" {
		return nil, errors.New("post content is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].ID != postID {
			continue
		}
		if s.posts[i].Author.ID != authorID {
			return nil, ErrNotPostAuthor
		}
		s.posts[i].Content = content
		post := s.posts[i]
		return &post, nil
	}
	return nil, ErrPostNotFound
}

func (s *feedService) DeletePost(ctx context.Context, authorID, postID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].ID != postID {
			continue
		}
		if s.posts[i].Author.ID != authorID {
			return ErrNotPostAuthor
		}
		s.posts = append(s.posts[:i], s.posts[i+1:]...)
		return nil
	}
	return ErrPostNotFound
}

func (s *feedService) ToggleLike(ctx context.Context, postID string) (*domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].ID != postID {
			continue
		}
		if s.posts[i].IsLiked {
			s.posts[i].IsLiked = false
			s.posts[i].Likes--
		} else {
			s.posts[i].IsLiked = true
			s.posts[i].Likes++
		}
		post := s.posts[i]
		return &post, nil
	}
	return nil, ErrPostNotFound
}

// SuggestPost asks the generative service for post text. Failures degrade to
// a canned message; they are never surfaced as errors.
func (s *feedService) SuggestPost(ctx context.Context, topic string) string {
	if s.gen == nil {
		return suggestionFallback
	}
	suggestion, err := s.gen.PostSuggestion(ctx, topic)
	if err != nil {
		s.logger.Warnf("generate post suggestion: %v", err)
		return suggestionFallback
	}
	return suggestion
}
