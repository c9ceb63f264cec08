/*
Package shared - shared kernel of the domain layer

Error design:
 1. Every failure belongs to one of a few kinds (sentinels below), which the outer layers map
    to transport concepts. The domain never knows about HTTP status codes.
 2. Each subdomain declares its own specific sentinels (order.ErrOrderNotFound, ...).
 3. DomainError unwraps to both the specific sentinel and its kind, so errors.Is() works at
    either granularity.
 4. The stack is captured when the error is created and formatted lazily (Stack()).
*/
package shared

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// ============================================================================
// Error kinds (sentinel errors)
// ============================================================================

var (
	// ErrNotFound no row matches the requested id
	ErrNotFound = errors.New("not found")

	// ErrOutOfStock the requested quantity exceeds what is available
	ErrOutOfStock = errors.New("out of stock")

	// ErrInvalidState the operation is not allowed in the current state
	ErrInvalidState = errors.New("invalid state")

	// ErrInvalidInput an argument violates a precondition
	ErrInvalidInput = errors.New("invalid input")
)

// ============================================================================
// DomainError
// ============================================================================

// DomainError domain error carrying business context and the creation-site stack
type DomainError struct {
	// Kind one of the kind sentinels above
	Kind error

	// Err the subdomain sentinel (may be nil)
	Err error

	// Entity name of the entity involved ("order", "item", ...)
	Entity string

	// Message human readable description
	Message string

	stack []uintptr
}

// Error implements error
func (e *DomainError) Error() string {
	return e.Message
}

// Unwrap exposes both the specific sentinel and the kind to errors.Is / errors.As
func (e *DomainError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Err, e.Kind}
}

// Stack formats the captured stack on demand
func (e *DomainError) Stack() []string {
	return FormatStack(e.stack)
}

// NewError creates a DomainError of the given kind.
// The stack is captured from the caller of NewError.
func NewError(kind, sentinel error, entity, message string) error {
	return &DomainError{
		Kind:    kind,
		Err:     sentinel,
		Entity:  entity,
		Message: message,
		stack:   CaptureStack(3),
	}
}

// Errorf is NewError with a formatted message
func Errorf(kind, sentinel error, entity, format string, args ...any) error {
	return &DomainError{
		Kind:    kind,
		Err:     sentinel,
		Entity:  entity,
		Message: fmt.Sprintf(format, args...),
		stack:   CaptureStack(3),
	}
}

// ============================================================================
// Stack helpers
// ============================================================================

// CaptureStack captures the current call stack.
// skip: frames to skip (usually 3: Callers, CaptureStack, the constructor)
func CaptureStack(skip int) []uintptr {
	var pcs [32]uintptr
	n := runtime.Callers(skip, pcs[:])
	return pcs[:n]
}

// FormatStack formats at most 10 non-runtime frames
func FormatStack(stack []uintptr) []string {
	if len(stack) == 0 {
		return nil
	}

	frames := runtime.CallersFrames(stack)
	var result []string
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.File, "runtime/") {
			result = append(result, fmt.Sprintf("%s:%d %s", frame.File, frame.Line, frame.Function))
		}
		if !more || len(result) >= 10 {
			break
		}
	}
	return result
}

// Stacker errors that can report where they were created
type Stacker interface {
	Stack() []string
}
