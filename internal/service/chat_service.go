package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"xelar/internal/domain"
	"xelar/internal/genai"
)

// ErrContactNotFound is returned when no chat contact matches the id.
var ErrContactNotFound = errors.New("contact not found")

// ChatService owns direct-message contacts and conversation histories.
// Histories are synthesized by the generative service on first open and
// cached; on failure a canned conversation is used instead.
type ChatService interface {
	Contacts(ctx context.Context) []domain.ChatContact
	History(ctx context.Context, contactID string) ([]domain.ChatMessage, error)
	Send(ctx context.Context, contactID, text string) (*domain.ChatMessage, error)
}

type chatService struct {
	gen    genai.Generator
	logger *logrus.Logger

	mu        sync.Mutex
	contacts  []domain.ChatContact
	histories map[string][]domain.ChatMessage
}

func NewChatService(gen genai.Generator, logger *logrus.Logger) ChatService {
	if logger == nil {
		logger = logrus.New()
	}
	return &chatService{
		gen:       gen,
		logger:    logger,
		contacts:  seedContacts(),
		histories: make(map[string][]domain.ChatMessage),
	}
}

func (s *chatService) Contacts(ctx context.Context) []domain.ChatContact {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.ChatContact, len(s.contacts))
	copy(out, s.contacts)
	return out
}

func (s *chatService) History(ctx context.Context, contactID string) ([]domain.ChatMessage, error) {
	s.mu.Lock()
	contact := s.findContactLocked(contactID)
	if contact == nil {
		s.mu.Unlock()
		return nil, ErrContactNotFound
	}
	if cached, ok := s.histories[contactID]; ok {
		out := make([]domain.ChatMessage, len(cached))
		copy(out, cached)
		s.mu.Unlock()
		return out, nil
	}
	contactUser := contact.User
	s.mu.Unlock()

	history := s.synthesizeHistory(ctx, contactUser)

	s.mu.Lock()
	defer s.mu.Unlock()
	// another request may have filled the cache meanwhile; first one wins
	if cached, ok := s.histories[contactID]; ok {
		history = cached
	} else {
		s.histories[contactID] = history
	}
	out := make([]domain.ChatMessage, len(history))
	copy(out, history)
	return out, nil
}

func (s *chatService) Send(ctx context.Context, contactID, text string) (*domain.ChatMessage, error) {
	if text == "" {
		return nil, errors.New("message text is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	contact := s.findContactLocked(contactID)
	if contact == nil {
		return nil, ErrContactNotFound
	}

	msg := domain.ChatMessage{
		ID:        uuid.NewString(),
		Text:      text,
		Sender:    domain.SenderMe,
		Timestamp: time.Now().Format("3:04 PM"),
	}
	s.histories[contactID] = append(s.histories[contactID], msg)
	contact.LastMessage = text
	contact.LastMessageTimestamp = msg.Timestamp
	return &msg, nil
}

func (s *chatService) synthesizeHistory(ctx context.Context, contact domain.User) []domain.ChatMessage {
	if s.gen != nil {
		history, err := s.gen.ChatHistory(ctx, contact)
		if err == nil {
			return history
		}
		s.logger.Warnf("generate chat history for %s: %v", contact.ID, err)
	}
	return cannedHistory(contact)
}

// cannedHistory is the deterministic fallback conversation used when the
// generative service fails.
func cannedHistory(contact domain.User) []domain.ChatMessage {
	return []domain.ChatMessage{
		{ID: "1", Text: fmt.Sprintf("Hi %s, loved your latest paper on quantum computing!", contact.Name), Sender: domain.SenderMe, Timestamp: "10:30 PM"},
		{ID: "2", Text: "Thank you! I am glad you enjoyed it.", Sender: contact.ID, Timestamp: "10:31 PM"},
		{ID: "3", Text: "I had a question about the methodology on page 5, are you free for a quick chat sometime this week?", Sender: domain.SenderMe, Timestamp: "10:32 PM"},
	}
}

// findContactLocked returns a pointer into the contacts slice. Caller must
// hold the lock.
func (s *chatService) findContactLocked(contactID string) *domain.ChatContact {
	for i := range s.contacts {
		if s.contacts[i].ID == contactID {
			return &s.contacts[i]
		}
	}
	return nil
}
