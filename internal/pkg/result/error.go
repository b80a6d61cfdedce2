package result

import "github.com/samber/lo"

// Error carries a failed, value-erased Result across an error boundary such as
// an HTTP handler signature.
type Error struct {
	res Result[None]
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.res.String()
}

// Result returns the erased Result carried by the error.
func (e *Error) Result() Result[None] {
	return e.res
}

// ErrorDictionary groups validation errors by key, keeping the order of
// messages for repeated keys.
func ErrorDictionary(errs []ValidationError) map[string][]string {
	if len(errs) == 0 {
		return nil
	}

	grouped := lo.GroupBy(errs, func(e ValidationError) string { return e.Key })

	return lo.MapValues(grouped, func(v []ValidationError, _ string) []string {
		return lo.Map(v, func(e ValidationError, _ int) string { return e.Message })
	})
}
