package realtime

import "fmt"

// ConfigError reports an invalid client configuration field.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("realtime: config %s: %s", e.Field, e.Message)
}

// ConnectionError reports a failed WebSocket operation.
type ConnectionError struct {
	Operation string // "dial", "read", "write"
	Cause     error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("realtime: %s: %v", e.Operation, e.Cause)
}

func (e *ConnectionError) Unwrap() error { return e.Cause }

// ProtocolError reports an unexpected event sequence or a service-side
// error event.
type ProtocolError struct {
	Expected string // event type we were waiting for, "" for error events
	Got      string
	API      *APIError // non-nil when the service sent an error payload
}

func (e *ProtocolError) Error() string {
	if e.API != nil {
		return fmt.Sprintf("realtime: service error %s: %s", e.API.Code, e.API.Message)
	}
	if e.Expected == "" {
		return fmt.Sprintf("realtime: service sent %s event", e.Got)
	}
	return fmt.Sprintf("realtime: expected %s event, got %s", e.Expected, e.Got)
}
