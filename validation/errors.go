package validation

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformedBody marks request bodies that could not be decoded at all.
var ErrMalformedBody = errors.New("invalid request body")

// Errors maps JSON field names to their messages, keeping fields in the
// order they were added.
type Errors struct {
	fields   []string
	messages map[string][]string
}

func NewErrors() *Errors {
	return &Errors{messages: map[string][]string{}}
}

func (e *Errors) Add(field, message string) {
	if _, ok := e.messages[field]; !ok {
		e.fields = append(e.fields, field)
	}
	e.messages[field] = append(e.messages[field], message)
}

func (e *Errors) Empty() bool {
	return len(e.fields) == 0
}

func (e *Errors) Fields() map[string][]string {
	out := make(map[string][]string, len(e.messages))
	for field, messages := range e.messages {
		out[field] = append([]string(nil), messages...)
	}
	return out
}

// First returns the first message recorded for field, or "".
func (e *Errors) First(field string) string {
	if messages := e.messages[field]; len(messages) > 0 {
		return messages[0]
	}
	return ""
}

// Message summarizes the errors as "<first message> (and N more errors)".
func (e *Errors) Message() string {
	if e.Empty() {
		return ""
	}
	first := e.messages[e.fields[0]][0]

	total := 0
	for _, messages := range e.messages {
		total += len(messages)
	}
	switch rest := total - 1; rest {
	case 0:
		return first
	case 1:
		return fmt.Sprintf("%s (and 1 more error)", first)
	default:
		return fmt.Sprintf("%s (and %d more errors)", first, rest)
	}
}

func (e *Errors) Error() string {
	return e.Message()
}

func (e *Errors) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.messages)
}
