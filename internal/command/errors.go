package command

import (
	"errors"
	"fmt"
)

// SpecError reports a parameter list that cannot be turned into a command.
// It is a programming error and is meant to be fatal at startup.
type SpecError struct {
	Msg string
	// Name is the offending argument or subcommand name, if any.
	Name string
	// Func and Param locate the parameter when the error came from FromFunc.
	// Param is empty for errors about the command as a whole.
	Func  string
	Param string
}

func specErr(msg string) *SpecError { return &SpecError{Msg: msg} }

func specErrName(msg, name string) *SpecError { return &SpecError{Msg: msg, Name: name} }

func (e *SpecError) Error() string {
	s := e.Msg
	if e.Name != "" {
		s += ": " + e.Name
	}
	switch {
	case e.Param != "":
		s += fmt.Sprintf(" (function: %s, param: %s)", e.Func, e.Param)
	case e.Func != "":
		s += fmt.Sprintf(" (function: %s)", e.Func)
	}
	return s
}

// ParseError reports a command line that does not match its command.
type ParseError struct {
	Msg string
	Err error
}

func parseErr(format string, args ...any) *ParseError {
	return &ParseError{Msg: fmt.Sprintf(format, args...)}
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *ParseError) Unwrap() error { return e.Err }

// HelpRequest is returned by Parse when help should be shown instead of
// running a handler. Node is the command or group whose help applies and
// Index the position in argv where parsing stopped. A non-empty Message
// means the help is shown because of a usage mistake.
type HelpRequest struct {
	Node    Node
	Index   int
	Message string
}

func (h *HelpRequest) Error() string {
	if h.Message != "" {
		return h.Message
	}
	return "help requested"
}

// ErrVersion is returned by Parse when the version should be printed.
var ErrVersion = errors.New("version requested")
