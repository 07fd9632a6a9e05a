// Package genai is a typed client for the external generative content
// service. The service is treated as unreliable: every response is validated
// against the expected shape and any violation is surfaced as an error so
// callers can fall back to canned data.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/sirupsen/logrus"

	"xelar/internal/domain"
)

// SearchResults is the validated shape of a synthesized search response.
type SearchResults struct {
	Users []domain.User `json:"users"`
	Posts []domain.Post `json:"posts"`
}

// Generator produces synthesized content for the chat, feed, and search
// surfaces.
type Generator interface {
	ChatHistory(ctx context.Context, contact domain.User) ([]domain.ChatMessage, error)
	PostSuggestion(ctx context.Context, topic string) (string, error)
	Search(ctx context.Context, query string) (*SearchResults, error)
}

type Config struct {
	APIKey     string
	Model      string
	BaseURL    string
	Timeout    time.Duration
	Logger     *logrus.Logger
	HTTPClient *http.Client
}

// Client calls a generateContent-style REST endpoint.
type Client struct {
	cfg  Config
	http *http.Client
}

var _ Generator = (*Client)(nil)

func NewClient(cfg Config) *Client {
	if cfg.Model == "" {
		cfg.Model = "gemini-2.5-flash"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://generativelanguage.googleapis.com"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.New()
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{cfg: cfg, http: httpClient}
}

func (c *Client) ChatHistory(ctx context.Context, contact domain.User) ([]domain.ChatMessage, error) {
	prompt := fmt.Sprintf(
		"You are a helpful assistant on Xelar, a social platform for academics. "+
			"Generate a short, friendly, and plausible chat history of 5 messages between me (the user) and %s (%s), who is a %s. "+
			"The conversation should be about a topic relevant to academia, like a recent publication, a conference, or a shared research interest. "+
			"My user ID is 'me' and their user ID is '%s'. Alternate speakers. "+
			"Respond with a JSON array of objects with keys id, text, sender, timestamp.",
		contact.Name, contact.Handle, contact.Role, contact.ID,
	)

	raw, err := c.generate(ctx, prompt, true)
	if err != nil {
		return nil, err
	}

	var history []domain.ChatMessage
	if err := json.Unmarshal([]byte(raw), &history); err != nil {
		return nil, fmt.Errorf("decode chat history: %w", err)
	}
	if len(history) == 0 {
		return nil, fmt.Errorf("chat history is empty")
	}
	for i := range history {
		if history[i].Text == "" {
			return nil, fmt.Errorf("chat history message %d has no text", i)
		}
		if history[i].Sender != contact.ID {
			history[i].Sender = domain.SenderMe
		}
	}
	return history, nil
}

func (c *Client) PostSuggestion(ctx context.Context, topic string) (string, error) {
	prompt := fmt.Sprintf(
		"Write a short, engaging social media post for an academic platform called Xelar about the following topic: %q. "+
			"The post should be concise and spark discussion. Maximum 280 characters.",
		topic,
	)

	text, err := c.generate(ctx, prompt, false)
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("suggestion is empty")
	}
	return text, nil
}

func (c *Client) Search(ctx context.Context, query string) (*SearchResults, error) {
	prompt := fmt.Sprintf(
		"You are a search engine for Xelar, a social platform for academics. A user has searched for %q. "+
			"Provide a list of 3 fictional but plausible user profiles and 3 fictional but plausible posts that match this query. "+
			"Provide realistic-looking data. "+
			"Respond with a JSON object with keys users (id, name, handle, avatarUrl, role, bio) and posts (id, content, imageUrl, author, timestamp).",
		query,
	)

	raw, err := c.generate(ctx, prompt, true)
	if err != nil {
		return nil, err
	}

	var results SearchResults
	if err := json.Unmarshal([]byte(raw), &results); err != nil {
		return nil, fmt.Errorf("decode search results: %w", err)
	}
	for i, u := range results.Users {
		if u.Name == "" || u.Handle == "" {
			return nil, fmt.Errorf("search user %d is missing name or handle", i)
		}
	}
	for i, p := range results.Posts {
		if p.Content == "" {
			return nil, fmt.Errorf("search post %d has no content", i)
		}
	}
	return &results, nil
}

// generateRequest / generateResponse mirror the generateContent wire format.
type generateRequest struct {
	Contents         []requestContent  `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type requestContent struct {
	Parts []requestPart `json:"parts"`
}

type requestPart struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMIMEType string `json:"responseMimeType,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// generate runs one prompt and returns the first candidate's text. Transport
// level failures are retried with capped exponential backoff; schema
// violations are not.
func (c *Client) generate(ctx context.Context, prompt string, wantJSON bool) (string, error) {
	reqBody := generateRequest{
		Contents: []requestContent{{Parts: []requestPart{{Text: prompt}}}},
	}
	if wantJSON {
		reqBody.GenerationConfig = &generationConfig{ResponseMIMEType: "application/json"}
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		strings.TrimRight(c.cfg.BaseURL, "/"), c.cfg.Model, url.QueryEscape(c.cfg.APIKey))

	var body []byte
	backoff := retry.WithMaxRetries(2, retry.NewExponential(250*time.Millisecond))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		if err != nil {
			return retry.RetryableError(err)
		}
		if resp.StatusCode >= 500 {
			return retry.RetryableError(fmt.Errorf("generate content: status %d", resp.StatusCode))
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("generate content: status %d", resp.StatusCode)
		}
		body = data
		return nil
	})
	if err != nil {
		return "", err
	}

	var envelope generateResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return "", fmt.Errorf("decode response envelope: %w", err)
	}
	if len(envelope.Candidates) == 0 || len(envelope.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("response has no candidates")
	}
	text := strings.TrimSpace(envelope.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return "", fmt.Errorf("response candidate is empty")
	}
	return text, nil
}
