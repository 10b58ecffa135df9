package glacier

import (
	"fmt"
	"strings"
)

// ErrorCode classifies codec failures. Every code marks an immediate,
// non-retryable condition: either the selection and the codec disagree
// (a codec-generation or call-site bug) or the wire value violates the
// contract the codec expects (a malformed response).
type ErrorCode string

const (
	// ErrUnknownField reports a selection field absent from the codec.
	ErrUnknownField ErrorCode = "unknown field"
	// ErrMissingSubCodec reports an object sub-selection on a field whose
	// descriptor carries no sub-codec.
	ErrMissingSubCodec ErrorCode = "missing sub-codec"
	// ErrMissingArgsCodec reports an argumented selection on a field whose
	// descriptor carries no argument encoders.
	ErrMissingArgsCodec ErrorCode = "missing args codec"
	// ErrUnknownArgument reports an argument key the field's args map does
	// not recognize.
	ErrUnknownArgument ErrorCode = "unknown argument"
	// ErrInvalidSelectionShape reports a selection value that is neither the
	// scalar sentinel, a Call, nor a Sel.
	ErrInvalidSelectionShape ErrorCode = "invalid selection shape"
	// ErrExpectedObject reports a wire value that should have been a keyed
	// object but was not.
	ErrExpectedObject ErrorCode = "expected object"
	// ErrExpectedArray reports a wire value that should have been an array
	// but was not.
	ErrExpectedArray ErrorCode = "expected array"
	// ErrMissingDecoder reports a response field the codec has no entry for.
	ErrMissingDecoder ErrorCode = "missing decoder"
	// ErrMissingEncoder reports an input field the encoder has no entry for.
	ErrMissingEncoder ErrorCode = "missing encoder"
	// ErrWrongScalarType reports a scalar value whose dynamic type does not
	// match the registered conversion.
	ErrWrongScalarType ErrorCode = "wrong scalar type"
)

// Error is the failure surface of the codec runtime. Code tells what went
// wrong, Name identifies the offending field, argument, or type, and Value
// carries the rejected value when one exists.
type Error struct {
	Code  ErrorCode
	Name  string
	Value any
}

func (e *Error) Error() string {
	switch e.Code {
	case ErrInvalidSelectionShape, ErrExpectedObject, ErrExpectedArray, ErrWrongScalarType:
		if e.Name == "" {
			return fmt.Sprintf("glacier: %s, got %T", e.Code, e.Value)
		}
		return fmt.Sprintf("glacier: %s at %q, got %T", e.Code, e.Name, e.Value)
	default:
		return fmt.Sprintf("glacier: %s %q", e.Code, e.Name)
	}
}

// ResponseError carries the errors a GraphQL endpoint returned alongside or
// instead of data.
type ResponseError struct {
	Errors []ResponseErrorItem
}

// ResponseErrorItem is one entry of a response's errors array.
type ResponseErrorItem struct {
	Message string `json:"message"`
	Path    []any  `json:"path,omitempty"`
}

func (e *ResponseError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, item := range e.Errors {
		msgs[i] = item.Message
	}
	return "glacier: server returned errors: " + strings.Join(msgs, "; ")
}
