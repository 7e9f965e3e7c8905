// Package realtime implements the thin WebSocket client for Azure
// OpenAI's realtime chat endpoint.
//
// Each completion is a short-lived session: dial, wait for
// session.created, create one conversation item holding the full
// history, request a response, and read events until response.done.
// The protocol itself — turn detection, audio streaming, rate limits —
// lives on the service side; this client only drives the handful of
// events a text completion needs.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/hammamikhairi/vocalis/internal/logger"
)

// DefaultAPIVersion is the realtime API version this client speaks.
const DefaultAPIVersion = "2024-10-01-preview"

// Option configures the Client.
type Option func(*Client)

// WithAPIVersion overrides the api-version query parameter.
func WithAPIVersion(v string) Option {
	return func(c *Client) { c.apiVersion = v }
}

// WithDialTimeout sets the WebSocket handshake timeout.
func WithDialTimeout(d time.Duration) Option {
	return func(c *Client) { c.dialer.HandshakeTimeout = d }
}

// Client talks to an Azure OpenAI realtime deployment.
type Client struct {
	endpoint   string // the resource's realtime URL (https or wss)
	deployment string
	apiKey     string
	apiVersion string
	dialer     *websocket.Dialer
	log        *logger.Logger
}

// NewClient creates a realtime chat client.
//   - endpoint:   the realtime endpoint URL, e.g.
//     "https://<resource>.openai.azure.com/openai/realtime"
//   - deployment: the model deployment name
//   - apiKey:     the Azure OpenAI API key
func NewClient(endpoint, deployment, apiKey string, log *logger.Logger, opts ...Option) *Client {
	c := &Client{
		endpoint:   endpoint,
		deployment: deployment,
		apiKey:     apiKey,
		apiVersion: DefaultAPIVersion,
		dialer: &websocket.Dialer{
			HandshakeTimeout: 30 * time.Second,
		},
		log: log,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// wsURL converts the configured endpoint to a WebSocket URL with the
// api-version and deployment query parameters attached.
func (c *Client) wsURL() (string, error) {
	e := c.endpoint
	switch {
	case strings.HasPrefix(e, "https://"):
		e = "wss://" + strings.TrimPrefix(e, "https://")
	case strings.HasPrefix(e, "http://"):
		e = "ws://" + strings.TrimPrefix(e, "http://")
	case strings.HasPrefix(e, "wss://"), strings.HasPrefix(e, "ws://"):
		// already a websocket URL
	case e == "":
		return "", &ConfigError{Field: "endpoint", Message: "must not be empty"}
	default:
		e = "wss://" + e
	}

	sep := "?"
	if strings.Contains(e, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%sapi-version=%s&deployment=%s", e, sep, c.apiVersion, c.deployment), nil
}

// Complete sends the conversation history to the realtime endpoint and
// returns the assistant's reply text. Blocks until the response is done
// or ctx expires.
func (c *Client) Complete(ctx context.Context, messages []Message) (string, error) {
	u, err := c.wsURL()
	if err != nil {
		return "", err
	}

	header := http.Header{}
	header.Set("api-key", c.apiKey)
	header.Set("Authorization", "Bearer "+c.apiKey)

	c.log.Debug("realtime: dialing %s", u)
	conn, resp, err := c.dialer.DialContext(ctx, u, header)
	if err != nil {
		if resp != nil {
			return "", &ConnectionError{Operation: "dial", Cause: fmt.Errorf("%s: %w", resp.Status, err)}
		}
		return "", &ConnectionError{Operation: "dial", Cause: err}
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		conn.SetReadDeadline(deadline)
		conn.SetWriteDeadline(deadline)
	}

	// The service opens the conversation with session.created.
	ev, err := c.readEvent(conn)
	if err != nil {
		return "", err
	}
	if ev.Type != eventSessionCreated {
		return "", &ProtocolError{Expected: eventSessionCreated, Got: ev.Type}
	}
	if ev.Session != nil {
		c.log.Debug("realtime: session %s created", ev.Session.ID)
	}

	// One conversation item carrying the whole history as input_text
	// blocks.
	content := make([]inputContent, 0, len(messages))
	for _, m := range messages {
		content = append(content, inputContent{Type: "input_text", Text: m.Content})
	}
	if err := c.writeEvent(conn, itemCreate{
		Type: "conversation.item.create",
		Item: conversationItem{Type: "message", Role: RoleUser, Content: content},
	}); err != nil {
		return "", err
	}

	ev, err = c.readEvent(conn)
	if err != nil {
		return "", err
	}
	if ev.Type != eventItemCreated {
		return "", &ProtocolError{Expected: eventItemCreated, Got: ev.Type}
	}

	if err := c.writeEvent(conn, responseCreate{Type: "response.create"}); err != nil {
		return "", err
	}

	// Stream events until the response completes.
	for {
		ev, err = c.readEvent(conn)
		if err != nil {
			return "", err
		}
		if ev.Type == eventResponseDone {
			break
		}
		c.log.Debug("realtime: skipping %s event", ev.Type)
	}

	reply := ev.Response.replyText()
	if reply == "" {
		return "", fmt.Errorf("realtime: response contained no reply text")
	}
	c.log.Debug("realtime: reply (%d chars)", len(reply))
	return reply, nil
}

// writeEvent marshals and sends one client event.
func (c *Client) writeEvent(conn *websocket.Conn, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("realtime: marshal event: %w", err)
	}
	c.log.Debug("realtime: send %s", data)
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return &ConnectionError{Operation: "write", Cause: err}
	}
	return nil
}

// readEvent reads and parses one server event, turning error events into
// a ProtocolError.
func (c *Client) readEvent(conn *websocket.Conn) (*serverEvent, error) {
	_, data, err := conn.ReadMessage()
	if err != nil {
		return nil, &ConnectionError{Operation: "read", Cause: err}
	}
	c.log.Debug("realtime: recv %s", data)

	var ev serverEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, fmt.Errorf("realtime: parse event: %w", err)
	}
	if ev.Type == eventError || ev.Error != nil {
		return nil, &ProtocolError{Got: ev.Type, API: ev.Error}
	}
	return &ev, nil
}
