package realtime

// Wire types for the realtime protocol. Only the events this client
// sends and reads are modelled; everything else is ignored by type.

// Role constants for conversation messages.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of conversation history, as the caller tracks it.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Server event types this client reacts to.
const (
	eventSessionCreated = "session.created"
	eventItemCreated    = "conversation.item.created"
	eventResponseDone   = "response.done"
	eventError          = "error"
)

// ── Outbound events ──────────────────────────────────────────────

// inputContent is a single content block of a conversation item.
type inputContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// conversationItem is the message payload of conversation.item.create.
type conversationItem struct {
	Type    string         `json:"type"`
	Role    string         `json:"role"`
	Content []inputContent `json:"content"`
}

// itemCreate is the conversation.item.create client event.
type itemCreate struct {
	Type string           `json:"type"`
	Item conversationItem `json:"item"`
}

// responseCreate is the response.create client event. The empty response
// object asks the service for its default modalities.
type responseCreate struct {
	Type     string   `json:"type"`
	Response struct{} `json:"response"`
}

// ── Inbound events ───────────────────────────────────────────────

// APIError is the error payload attached to server events.
type APIError struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// sessionInfo is the session payload of session.created.
type sessionInfo struct {
	ID string `json:"id"`
}

// outputContent is one content block of an assistant output item. Audio
// blocks carry the spoken reply's transcript; text blocks carry plain text.
type outputContent struct {
	Type       string `json:"type"`
	Text       string `json:"text"`
	Transcript string `json:"transcript"`
}

// outputItem is one item of a completed response's output.
type outputItem struct {
	Type    string          `json:"type"`
	Role    string          `json:"role"`
	Content []outputContent `json:"content"`
}

// responseResult is the response payload of response.done.
type responseResult struct {
	Output []outputItem `json:"output"`
}

// serverEvent is the envelope for every event the service sends.
type serverEvent struct {
	Type     string          `json:"type"`
	Error    *APIError       `json:"error,omitempty"`
	Session  *sessionInfo    `json:"session,omitempty"`
	Response *responseResult `json:"response,omitempty"`
}

// replyText extracts the assistant's reply from a completed response:
// the transcript of the first audio content block, falling back to the
// first non-empty text block.
func (r *responseResult) replyText() string {
	if r == nil {
		return ""
	}
	var textFallback string
	for _, item := range r.Output {
		if item.Type != "message" || item.Role != RoleAssistant {
			continue
		}
		for _, content := range item.Content {
			switch content.Type {
			case "audio":
				if content.Transcript != "" {
					return content.Transcript
				}
			case "text":
				if textFallback == "" {
					textFallback = content.Text
				}
			}
		}
	}
	return textFallback
}
