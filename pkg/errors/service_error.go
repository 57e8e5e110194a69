package errors

import (
	"bytes"
	"encoding/json"
	stdErrors "errors"
	"fmt"
	"strings"
)

// MessageKind tags the shape of the error payload a remote service returned.
type MessageKind string

const (
	KindPlainText   MessageKind = "plain_text"
	KindMessageList MessageKind = "message_list"
	KindNested      MessageKind = "nested"
)

// MessagePayload is the decoded form of a service error body. It is decoded
// exactly once, when the ServiceError is built, so callers never branch on
// raw JSON shapes themselves.
type MessagePayload struct {
	Kind MessageKind
	Text string
	List []string
}

// Display renders the payload for user-facing surfaces. Message lists are
// joined with a line break for multi-line display.
func (p MessagePayload) Display() string {
	if p.Kind == KindMessageList {
		return strings.Join(p.List, "\n")
	}
	return p.Text
}

// ServiceError reports a reachable endpoint that answered with a non-success
// status and a structured JSON payload. The raw payload is preserved
// verbatim for callers that want to pass it through.
type ServiceError struct {
	Status     int
	RawMessage json.RawMessage

	payload MessagePayload
}

// NewServiceError decodes the response body into a tagged payload and wraps
// it with the HTTP status the service answered with.
func NewServiceError(status int, raw json.RawMessage) *ServiceError {
	return &ServiceError{
		Status:     status,
		RawMessage: raw,
		payload:    decodeMessagePayload(raw),
	}
}

func (e *ServiceError) Payload() MessagePayload {
	if e == nil {
		return MessagePayload{}
	}
	return e.payload
}

func (e *ServiceError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("service error (status %d): %s", e.Status, e.payload.Display())
}

// AsService unwraps err into a ServiceError, or returns nil.
func AsService(err error) *ServiceError {
	if err == nil {
		return nil
	}
	var typed *ServiceError
	if stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}

func decodeMessagePayload(raw json.RawMessage) MessagePayload {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return MessagePayload{Kind: KindPlainText}
	}

	switch trimmed[0] {
	case '"':
		var text string
		if err := json.Unmarshal(trimmed, &text); err == nil {
			return MessagePayload{Kind: KindPlainText, Text: text}
		}
	case '[':
		var list []string
		if err := json.Unmarshal(trimmed, &list); err == nil {
			return MessagePayload{Kind: KindMessageList, List: list}
		}
	case '{':
		var nested struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(trimmed, &nested); err == nil && nested.Message != "" {
			return MessagePayload{Kind: KindNested, Text: nested.Message}
		}
	}

	return MessagePayload{Kind: KindPlainText, Text: string(trimmed)}
}
