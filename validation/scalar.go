package validation

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
)

// Scalar is a request value that may arrive as a JSON string, number, bool
// or null. Strings are trimmed and null decodes to the empty string, so form
// style clients and typed JSON clients validate the same way.
type Scalar string

var scalarType = reflect.TypeOf(Scalar(""))

func (s *Scalar) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*s = ""
	case data[0] == '"':
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = Scalar(strings.TrimSpace(str))
	case data[0] == '{':
		return &json.UnmarshalTypeError{Value: "object", Type: scalarType}
	case data[0] == '[':
		return &json.UnmarshalTypeError{Value: "array", Type: scalarType}
	default:
		*s = Scalar(data)
	}
	return nil
}

func (s Scalar) String() string {
	return string(s)
}

// nullableText trims s and maps blank input to nil.
func nullableText(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
