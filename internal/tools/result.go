package tools

import (
	"encoding/json"
	"fmt"
)

// ErrorKind classifies a failed tool call at the domain boundary.
type ErrorKind string

const (
	// ErrRemote covers transport failures and non-2xx API responses.
	ErrRemote ErrorKind = "remote_error"
	// ErrDecode covers malformed JSON in an otherwise successful response.
	ErrDecode ErrorKind = "decode_error"
	// ErrInput covers missing or invalid tool arguments.
	ErrInput ErrorKind = "invalid_input"
)

// Result is the outcome of one fallback tool call: either a JSON-renderable
// value or a classified error. Errors never leave the tool layer as Go
// errors; they are serialized to text at the protocol edge.
type Result struct {
	Value   any
	Kind    ErrorKind
	Message string
}

// OK wraps a successful value.
func OK(value any) Result {
	return Result{Value: value}
}

// Errf builds an error result with a classified kind.
func Errf(kind ErrorKind, format string, args ...any) Result {
	return Result{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// IsError reports whether the result carries an error.
func (r Result) IsError() bool {
	return r.Kind != ""
}

// Render serializes the result for the tool protocol: values become
// indented JSON, errors become a readable "Error (<kind>): ..." line.
func (r Result) Render() string {
	if r.IsError() {
		return fmt.Sprintf("Error (%s): %s", r.Kind, r.Message)
	}
	switch v := r.Value.(type) {
	case string:
		return v
	default:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Sprintf("Error (%s): failed to render result: %v", ErrDecode, err)
		}
		return string(data)
	}
}
