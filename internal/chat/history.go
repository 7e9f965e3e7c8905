// Package chat tracks conversation state for a voice chat session.
package chat

import "github.com/hammamikhairi/vocalis/internal/realtime"

// DefaultSystemPrompt steers the assistant toward short spoken answers.
const DefaultSystemPrompt = "You are a helpful assistant. Keep your responses concise and natural."

// History is an ordered conversation transcript: one system prompt
// followed by alternating user and assistant turns. Turns are transient —
// nothing is persisted across runs.
type History struct {
	messages []realtime.Message
}

// NewHistory creates a history seeded with the given system prompt.
// An empty prompt falls back to DefaultSystemPrompt.
func NewHistory(systemPrompt string) *History {
	if systemPrompt == "" {
		systemPrompt = DefaultSystemPrompt
	}
	return &History{
		messages: []realtime.Message{
			{Role: realtime.RoleSystem, Content: systemPrompt},
		},
	}
}

// AddUser appends a user turn.
func (h *History) AddUser(text string) {
	h.messages = append(h.messages, realtime.Message{Role: realtime.RoleUser, Content: text})
}

// AddAssistant appends an assistant turn.
func (h *History) AddAssistant(text string) {
	h.messages = append(h.messages, realtime.Message{Role: realtime.RoleAssistant, Content: text})
}

// Messages returns a copy of the transcript in order, system prompt first.
func (h *History) Messages() []realtime.Message {
	out := make([]realtime.Message, len(h.messages))
	copy(out, h.messages)
	return out
}

// Len returns the number of messages including the system prompt.
func (h *History) Len() int { return len(h.messages) }
