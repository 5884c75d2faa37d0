package errors

import (
	"errors"
	"strings"
)

// ErrInvalid matches every ValidationError.
var ErrInvalid = errors.New("invalid")

// FieldError is one rejected setting, keyed by its dotted config path
// (for example "log.level").
type FieldError struct {
	Path    string
	Message string
}

func (e FieldError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return e.Path + " " + e.Message
}

// ValidationError collects every rejected setting from one pass over a
// configuration, so a user sees all of them at once.
type ValidationError struct {
	Items []FieldError
}

// Error renders a single line suitable for a log field:
//
//	invalid configuration: index.path must not be empty; watch.debounce must be positive
func (e ValidationError) Error() string {
	if len(e.Items) == 0 {
		return "invalid configuration"
	}
	var b strings.Builder
	b.WriteString("invalid configuration: ")
	for i, item := range e.Items {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(item.Error())
	}
	return b.String()
}

// Check records msg against path when ok is false.
func (e *ValidationError) Check(ok bool, path, msg string) {
	if ok {
		return
	}
	e.Items = append(e.Items, FieldError{Path: path, Message: msg})
}

// Err returns e when it holds at least one item and nil otherwise.
func (e ValidationError) Err() error {
	if len(e.Items) == 0 {
		return nil
	}
	return e
}

// Paths lists the rejected config paths in the order they were checked.
func (e ValidationError) Paths() []string {
	out := make([]string, len(e.Items))
	for i, item := range e.Items {
		out[i] = item.Path
	}
	return out
}

func (e ValidationError) Is(target error) bool {
	return target == ErrInvalid
}
