// Package kgerr defines the error type returned by the toolkit's libraries
// and by command handlers: a message, ordered key/value context and the stack
// trace of the place it was created.
package kgerr

import (
	"errors"
	"fmt"
	"io"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

// Error is a domain failure with human-readable context. Create one with New.
type Error struct {
	msg    string
	keys   []string
	values map[string]any
	stack  error
}

// New returns an Error with msg and key/value pairs given in slog style:
//
//	kgerr.New("row wrong length", "expected", 3, "actual", 2)
//
// A trailing key without a value is recorded under "!BADKEY".
func New(msg string, kv ...any) *Error {
	e := &Error{
		msg:    msg,
		values: map[string]any{},
		stack:  pkgerrors.New(msg),
	}
	e.add(kv)
	return e
}

func (e *Error) add(kv []any) {
	for i := 0; i < len(kv); i += 2 {
		var key string
		var val any
		if i+1 >= len(kv) {
			key, val = "!BADKEY", kv[i]
		} else {
			key, val = fmt.Sprint(kv[i]), kv[i+1]
		}
		if _, ok := e.values[key]; !ok {
			e.keys = append(e.keys, key)
		}
		e.values[key] = val
	}
}

// Message is the error message without context.
func (e *Error) Message() string { return e.msg }

// Val returns the context value stored under key, or nil.
func (e *Error) Val(key string) any {
	return e.values[key]
}

// Keys returns the context keys in insertion order.
func (e *Error) Keys() []string {
	return append([]string(nil), e.keys...)
}

// Attach returns a copy of e with additional context. Existing keys are
// overwritten in place.
func (e *Error) Attach(kv ...any) *Error {
	c := &Error{
		msg:    e.msg,
		keys:   append([]string(nil), e.keys...),
		values: make(map[string]any, len(e.values)),
		stack:  e.stack,
	}
	for k, v := range e.values {
		c.values[k] = v
	}
	c.add(kv)
	return c
}

func (e *Error) Error() string {
	if len(e.keys) == 0 {
		return e.msg
	}
	var parts []string
	for _, k := range e.keys {
		parts = append(parts, fmt.Sprintf("%s=%#v", k, e.values[k]))
	}
	return fmt.Sprintf("%s (%s)", e.msg, strings.Join(parts, ", "))
}

// HumanString renders the message followed by one indented "key: value"
// line per context entry.
func (e *Error) HumanString() string {
	var b strings.Builder
	b.WriteString(e.msg)
	for _, k := range e.keys {
		fmt.Fprintf(&b, "\n  %s: %#v", k, e.values[k])
	}
	return b.String()
}

// Format supports %+v, which adds the stack trace.
func (e *Error) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			io.WriteString(s, e.Error())
			if st, ok := e.stack.(interface{ StackTrace() pkgerrors.StackTrace }); ok {
				fmt.Fprintf(s, "%+v", st.StackTrace())
			}
			return
		}
		io.WriteString(s, e.Error())
	case 's':
		io.WriteString(s, e.Error())
	case 'q':
		fmt.Fprintf(s, "%q", e.Error())
	}
}

// As returns the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}
