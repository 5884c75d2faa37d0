package errors

import (
	"errors"
	"strings"
)

// Kind classifies a content build failure.
type Kind string

const (
	KindIO                      Kind = "io"
	KindEncoding                Kind = "encoding"
	KindEmptyCorpus             Kind = "empty_corpus"
	KindMissingOpeningDelimiter Kind = "missing_opening_delimiter"
	KindMissingClosingDelimiter Kind = "missing_closing_delimiter"
	KindEmptyBody               Kind = "empty_body"
	KindInvalidYAML             Kind = "invalid_yaml"
	KindMissingField            Kind = "missing_field"
	KindDuplicateSlug           Kind = "duplicate_slug"
	KindUnknownCategory         Kind = "unknown_category"
	KindUnknownTag              Kind = "unknown_tag"
	KindConflictingAuthor       Kind = "conflicting_author"
	KindConflictingCategory     Kind = "conflicting_category"
	KindConflictingTag          Kind = "conflicting_tag"
	KindInternal                Kind = "internal"
)

// ContentError is returned by every stage of the content pipeline.
// Path is the source file, Field the frontmatter field path, and Key the
// entity key (slug or email) involved.
type ContentError struct {
	Kind  Kind
	Path  string
	Field string
	Key   string
	Msg   string
	Err   error
}

func (e *ContentError) Error() string {
	var b strings.Builder
	if e.Path != "" {
		b.WriteString(e.Path)
		b.WriteString(": ")
	}
	b.WriteString(string(e.Kind))
	if e.Field != "" {
		b.WriteString(" `")
		b.WriteString(e.Field)
		b.WriteString("`")
	}
	if e.Key != "" {
		b.WriteString(" '")
		b.WriteString(e.Key)
		b.WriteString("'")
	}
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *ContentError) Unwrap() error { return e.Err }

// Is matches another *ContentError by kind, so callers can compare
// against values like &ContentError{Kind: KindDuplicateSlug}.
func (e *ContentError) Is(target error) bool {
	t, ok := target.(*ContentError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// WithPath returns a copy of e carrying path, unless it already has one.
func (e *ContentError) WithPath(path string) *ContentError {
	if e.Path != "" {
		return e
	}
	cp := *e
	cp.Path = path
	return &cp
}

func New(kind Kind, msg string) *ContentError {
	return &ContentError{Kind: kind, Msg: msg}
}

// KindOf returns the kind of the first ContentError in err's chain, or "".
func KindOf(err error) Kind {
	var ce *ContentError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return ""
}

// IsContent reports whether err carries a ContentError.
func IsContent(err error) bool {
	var ce *ContentError
	return errors.As(err, &ce)
}
