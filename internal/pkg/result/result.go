package result

import "fmt"

// Kind identifies the active variant of a Result.
type Kind int

const (
	// KindSuccess marks a successful outcome that carries a value.
	KindSuccess Kind = iota
	// KindValidationFailed marks malformed caller input.
	KindValidationFailed
	// KindPreconditionFailed marks a state precondition that was not met.
	KindPreconditionFailed
	// KindDependencyFailed marks a failing external dependency (store, network).
	KindDependencyFailed
	// KindUnauthorized marks a caller that is not permitted.
	KindUnauthorized
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "SUCCESS"
	case KindValidationFailed:
		return "VALIDATION_FAILED"
	case KindPreconditionFailed:
		return "PRECONDITION_FAILED"
	case KindDependencyFailed:
		return "DEPENDENCY_FAILED"
	case KindUnauthorized:
		return "UNAUTHORIZED"
	default:
		return "UNKNOWN"
	}
}

const successMessage = "The operation was successful."

// None is the value carried by a value-erased Result.
type None struct{}

// ValidationError is a single field-level failure. Keys are not required to be unique.
type ValidationError struct {
	Key     string
	Message string
}

// Result is a closed tagged union over the five outcome variants.
//
// The zero value is a Success carrying the zero T. Build values through the
// named constructors; the fields are unexported so a Result can never hold
// two variants at once.
type Result[T any] struct {
	kind         Kind
	value        T
	errors       []ValidationError
	precondition PreconditionFailedReason
	dependency   DependencyFailedReason
	message      string
}

// Success wraps value in a successful Result.
func Success[T any](value T) Result[T] {
	return Result[T]{kind: KindSuccess, value: value}
}

// ValidationFailed builds a failed Result from an ordered list of field errors.
func ValidationFailed[T any](errs ...ValidationError) Result[T] {
	cp := make([]ValidationError, len(errs))
	copy(cp, errs)
	return Result[T]{kind: KindValidationFailed, errors: cp}
}

// PreconditionFailed builds a failed Result for an expected resource or state
// that is absent. An empty message falls back to the reason's message.
func PreconditionFailed[T any](reason PreconditionFailedReason, message string) Result[T] {
	return Result[T]{kind: KindPreconditionFailed, precondition: reason, message: message}
}

// DependencyFailed builds a failed Result for a broken dependency. An empty
// message falls back to the reason name.
func DependencyFailed[T any](reason DependencyFailedReason, message string) Result[T] {
	return Result[T]{kind: KindDependencyFailed, dependency: reason, message: message}
}

// Unauthorized builds a failed Result for a caller that is not permitted.
func Unauthorized[T any](message string) Result[T] {
	return Result[T]{kind: KindUnauthorized, message: message}
}

// Kind returns the active variant.
func (r Result[T]) Kind() Kind {
	return r.kind
}

// IsSuccess reports whether the active variant is Success.
func (r Result[T]) IsSuccess() bool {
	return r.kind == KindSuccess
}

// Message returns the human readable message of the active variant.
func (r Result[T]) Message() string {
	switch r.kind {
	case KindSuccess:
		return successMessage
	case KindValidationFailed:
		if r.message != "" {
			return r.message
		}
		return "One or more validation errors occurred."
	case KindPreconditionFailed:
		if r.message != "" {
			return r.message
		}
		return r.precondition.Message()
	case KindDependencyFailed:
		if r.message != "" {
			return r.message
		}
		return r.dependency.String()
	default:
		return r.message
	}
}

// Value returns the carried value and true when the Result is a Success.
func (r Result[T]) Value() (T, bool) {
	if r.kind != KindSuccess {
		var zero T
		return zero, false
	}
	return r.value, true
}

// Errors returns a copy of the field errors of a ValidationFailed Result.
func (r Result[T]) Errors() []ValidationError {
	if len(r.errors) == 0 {
		return nil
	}
	cp := make([]ValidationError, len(r.errors))
	copy(cp, r.errors)
	return cp
}

// PreconditionReason returns the reason of a PreconditionFailed Result.
func (r Result[T]) PreconditionReason() PreconditionFailedReason {
	return r.precondition
}

// DependencyReason returns the reason of a DependencyFailed Result.
func (r Result[T]) DependencyReason() DependencyFailedReason {
	return r.dependency
}

// Map erases the value of r while keeping the variant and its payload.
func (r Result[T]) Map() Result[None] {
	return Result[None]{
		kind:         r.kind,
		errors:       r.errors,
		precondition: r.precondition,
		dependency:   r.dependency,
		message:      r.message,
	}
}

// Err returns nil for a Success and a *Error wrapping the erased Result otherwise.
func (r Result[T]) Err() error {
	if r.kind == KindSuccess {
		return nil
	}
	return &Error{res: r.Map()}
}

// String returns a verbose representation for logs.
func (r Result[T]) String() string {
	switch r.kind {
	case KindValidationFailed:
		return fmt.Sprintf("%s: %v", r.kind, r.errors)
	case KindPreconditionFailed:
		return fmt.Sprintf("%s(%s): %s", r.kind, r.precondition, r.Message())
	case KindDependencyFailed:
		return fmt.Sprintf("%s(%s): %s", r.kind, r.dependency, r.Message())
	default:
		return fmt.Sprintf("%s: %s", r.kind, r.Message())
	}
}

// Propagate reports a failed inner Result through an outer Result of a
// different value type. Calling it with a Success is a programming error.
func Propagate[U, T any](r Result[T]) Result[U] {
	if r.kind == KindSuccess {
		panic("result: cannot propagate a successful result")
	}
	return Result[U]{
		kind:         r.kind,
		errors:       r.errors,
		precondition: r.precondition,
		dependency:   r.dependency,
		message:      r.message,
	}
}

// Then converts the value of a successful Result with fn; failures pass
// through untouched.
func Then[T, U any](r Result[T], fn func(T) U) Result[U] {
	if r.kind != KindSuccess {
		return Propagate[U](r)
	}
	return Success(fn(r.value))
}

// Cases holds one branch per variant. Match panics when a branch is missing so
// that every consumption site handles every variant.
type Cases[T, U any] struct {
	Success            func(value T) U
	ValidationFailed   func(errs []ValidationError) U
	PreconditionFailed func(reason PreconditionFailedReason, message string) U
	DependencyFailed   func(reason DependencyFailedReason, message string) U
	Unauthorized       func(message string) U
}

// Match dispatches r to the branch of its active variant.
func Match[T, U any](r Result[T], c Cases[T, U]) U {
	if c.Success == nil || c.ValidationFailed == nil || c.PreconditionFailed == nil ||
		c.DependencyFailed == nil || c.Unauthorized == nil {
		panic("result: match requires a branch for every variant")
	}

	switch r.kind {
	case KindSuccess:
		return c.Success(r.value)
	case KindValidationFailed:
		return c.ValidationFailed(r.Errors())
	case KindPreconditionFailed:
		return c.PreconditionFailed(r.precondition, r.Message())
	case KindDependencyFailed:
		return c.DependencyFailed(r.dependency, r.Message())
	case KindUnauthorized:
		return c.Unauthorized(r.Message())
	default:
		panic(fmt.Sprintf("result: unknown kind %d", r.kind))
	}
}
