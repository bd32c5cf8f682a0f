package models

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// WelcomeMessage opens every new or cleared transcript.
const WelcomeMessage = "Hello! Ask me anything in any language, and I'll try to answer in your preferred output language."

type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// Message is one entry of the chat transcript.
type Message struct {
	Role    Role
	Content string
	// Language is the code the content is written in, empty when unknown.
	Language string
}

// Transcript holds the chat messages of a single session. It is append-only until cleared.
type Transcript struct {
	Messages []Message
}

// NewTranscript creates a transcript seeded with the welcome message.
func NewTranscript() *Transcript {
	t := &Transcript{Messages: nil}
	t.Clear()
	return t
}

// Append adds a message to the end of the transcript.
func (t *Transcript) Append(role Role, content, language string) {
	t.Messages = append(t.Messages, Message{Role: role, Content: content, Language: language})
}

// Clear drops every message and re-seeds the welcome message.
func (t *Transcript) Clear() {
	t.Messages = []Message{{Role: RoleBot, Content: WelcomeMessage, Language: "en"}}
}

// Message returns the message at index i.
func (t *Transcript) Message(i int) (Message, bool) {
	if i < 0 || i >= len(t.Messages) {
		return Message{}, false
	}
	return t.Messages[i], true
}

// Export renders the transcript as "Role: content" paragraphs separated by blank lines.
func (t *Transcript) Export() string {
	var sb strings.Builder
	for _, m := range t.Messages {
		fmt.Fprintf(&sb, "%s: %s\n\n", m.Role.Title(), m.Content)
	}
	return sb.String()
}

// Title capitalizes the role for display.
func (r Role) Title() string {
	first, size := utf8.DecodeRuneInString(string(r))
	if first == utf8.RuneError {
		return string(r)
	}
	return string(unicode.ToUpper(first)) + string(r)[size:]
}

// DownloadFilename names the exported transcript after the export time.
func DownloadFilename(t time.Time) string {
	return fmt.Sprintf("chatbot_history_%s.txt", t.Format("20060102_150405"))
}
