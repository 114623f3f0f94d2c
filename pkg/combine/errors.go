package combine

import (
	"errors"
	"fmt"
)

// Kind classifies the errors that abort a combine run.
type Kind int

const (
	KindInvalidPattern Kind = iota + 1 // an ignore glob failed to compile
	KindPathNotFound                   // a root path does not exist
	KindDecode                         // a classification sample is not valid UTF-8
	KindEmptyResult                    // nothing survived filtering
)

// Sentinels for errors.Is. Every *Error unwraps to the sentinel of its Kind.
var (
	ErrInvalidPattern = errors.New("invalid ignore pattern")
	ErrPathNotFound   = errors.New("path not found")
	ErrDecode         = errors.New("non-UTF-8 content")
	ErrEmptyResult    = errors.New("no readable text files found")
)

func (k Kind) String() string {
	switch k {
	case KindInvalidPattern:
		return "InvalidPattern"
	case KindPathNotFound:
		return "PathNotFound"
	case KindDecode:
		return "DecodeError"
	case KindEmptyResult:
		return "EmptyResult"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindInvalidPattern:
		return ErrInvalidPattern
	case KindPathNotFound:
		return ErrPathNotFound
	case KindDecode:
		return ErrDecode
	case KindEmptyResult:
		return ErrEmptyResult
	default:
		return nil
	}
}

// Error is the terminal error of a combine run.
type Error struct {
	Kind Kind
	Path string // root, file or pattern the error refers to
	Err  error  // underlying cause, may be nil
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if s := e.Kind.sentinel(); s != nil {
		msg = s.Error()
	}
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Path)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap exposes both the Kind sentinel and the cause.
func (e *Error) Unwrap() []error {
	var errs []error
	if s := e.Kind.sentinel(); s != nil {
		errs = append(errs, s)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// KindOf returns the Kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return 0
}
