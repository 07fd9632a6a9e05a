package domain

// ChatContact is a user the current account can message, plus presence info.
type ChatContact struct {
	ID                   string `json:"id"`
	User                 User   `json:"user"`
	Online               bool   `json:"online"`
	LastMessage          string `json:"lastMessage,omitempty"`
	LastMessageTimestamp string `json:"lastMessageTimestamp,omitempty"`
}

// ChatFile describes an attachment carried by a chat message.
type ChatFile struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Size string `json:"size"`
}

// SenderMe marks messages authored by the current user; any other sender
// value is the contact's user id.
const SenderMe = "me"

// ChatMessage is a single direct message in a conversation.
type ChatMessage struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Sender    string    `json:"sender"`
	Timestamp string    `json:"timestamp"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	File      *ChatFile `json:"file,omitempty"`
}
