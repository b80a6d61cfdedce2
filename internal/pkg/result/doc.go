// Package result models the outcome of a use case without panics or errors
// crossing component boundaries.
//
// A Result is one of Success, ValidationFailed, PreconditionFailed,
// DependencyFailed or Unauthorized. Callers branch on Kind (or use Match to be
// forced to handle every variant) instead of inspecting error strings. Map
// erases the success value so an inner outcome can be reported through an
// outer operation with a different value type.
package result
