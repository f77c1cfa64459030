package opendata

import (
	"errors"
	"fmt"
)

// ParseKind classifies why a document was rejected.
type ParseKind string

const (
	KindSyntax             ParseKind = "syntax"
	KindMissingConnections ParseKind = "missing-connections"
	KindWrongType          ParseKind = "wrong-type"
	KindMalformedRecord    ParseKind = "malformed-record"
)

// ParseError reports a document that could not be turned into departure records.
type ParseError struct {
	Kind   ParseKind
	Detail string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("opendata: %s", e.Kind)
	}
	return fmt.Sprintf("opendata: %s: %s", e.Kind, e.Detail)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// AsParseError attempts to unwrap an error into a ParseError.
func AsParseError(err error) (*ParseError, bool) {
	var pErr *ParseError
	if errors.As(err, &pErr) {
		return pErr, true
	}
	return nil, false
}

func parseErr(kind ParseKind, format string, args ...any) *ParseError {
	return &ParseError{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

var errNotObject = errors.New("not an object")

type fieldError struct {
	field string
	got   string
	want  string
}

func (e *fieldError) Error() string {
	return fmt.Sprintf("%s is %s, want %s", e.field, e.got, e.want)
}
