package genai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xelar/internal/domain"
)

func envelope(text string) string {
	payload, _ := json.Marshal(map[string]any{
		"candidates": []map[string]any{{
			"content": map[string]any{
				"parts": []map[string]any{{"text": text}},
			},
		}},
	})
	return string(payload)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(Config{APIKey: "test-key", BaseURL: server.URL})
}

func testContact() domain.User {
	return domain.User{ID: "user-1", Name: "Dr. Emily Carter", Handle: "@emilycarter", Role: domain.RoleProfessor}
}

func TestChatHistory(t *testing.T) {
	history := `[
  {"id":"1","text":"Hi there!","sender":"me","timestamp":"9:00 AM"},
  {"id":"2","text":"Hello!","sender":"user-1","timestamp":"9:01 AM"},
  {"id":"3","text":"How is the review going?","sender":"rogue-id","timestamp":"9:02 AM"}
]`
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		assert.Contains(t, req.Contents[0].Parts[0].Text, "Dr. Emily Carter")
		require.NotNil(t, req.GenerationConfig)
		assert.Equal(t, "application/json", req.GenerationConfig.ResponseMIMEType)

		fmt.Fprint(w, envelope(history))
	})

	got, err := client.ChatHistory(context.Background(), testContact())
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, domain.SenderMe, got[0].Sender)
	assert.Equal(t, "user-1", got[1].Sender)
	// senders the contact does not own collapse to the local user
	assert.Equal(t, domain.SenderMe, got[2].Sender)
}

func TestChatHistoryRejectsMalformedPayload(t *testing.T) {
	for name, text := range map[string]string{
		"not json":   "once upon a time",
		"empty list": "[]",
		"blank text": `[{"id":"1","text":"","sender":"me","timestamp":"9:00 AM"}]`,
	} {
		t.Run(name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, envelope(text))
			})
			_, err := client.ChatHistory(context.Background(), testContact())
			assert.Error(t, err)
		})
	}
}

func TestPostSuggestion(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, envelope("  What if peer review were open by default? #OpenScience  "))
	})

	text, err := client.PostSuggestion(context.Background(), "open peer review")
	require.NoError(t, err)
	assert.Equal(t, "What if peer review were open by default? #OpenScience", text)
}

func TestSearchValidatesShape(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, envelope(`{
  "users":[{"id":"u1","name":"Dr. Ada Lovelace","handle":"@ada","role":"Professor"}],
  "posts":[{"id":"p1","content":"On computable numbers."}]
}`))
	})

	results, err := client.Search(context.Background(), "computability")
	require.NoError(t, err)
	require.Len(t, results.Users, 1)
	assert.Equal(t, "@ada", results.Users[0].Handle)
	require.Len(t, results.Posts, 1)

	client = newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, envelope(`{"users":[{"id":"u1","name":"","handle":"@ghost"}],"posts":[]}`))
	})
	_, err = client.Search(context.Background(), "ghosts")
	assert.Error(t, err)
}

func TestGenerateRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "overloaded", http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, envelope("second time lucky"))
	})

	text, err := client.PostSuggestion(context.Background(), "resilience")
	require.NoError(t, err)
	assert.Equal(t, "second time lucky", text)
	assert.Equal(t, int32(2), calls.Load())
}

func TestGenerateDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "bad key", http.StatusForbidden)
	})

	_, err := client.PostSuggestion(context.Background(), "anything")
	assert.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestGenerateRejectsEmptyEnvelope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"candidates":[]}`)
	})
	_, err := client.PostSuggestion(context.Background(), "anything")
	assert.Error(t, err)
}
