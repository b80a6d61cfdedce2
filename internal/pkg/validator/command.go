package validator

import (
	"github.com/shandysiswandi/otpgate/internal/pkg/result"
)

// Rule is one constraint on a field: a validator tag and the message reported
// when the tag does not hold.
type Rule struct {
	Tag     string
	Message string
}

// Field describes how to read one field of a command and which rules apply to
// it. Rules run in order and stop at the first failure.
type Field[C any] struct {
	Key   string
	Value func(cmd C) string
	Rules []Rule
}

// Command validates commands of type C field by field.
type Command[C any] struct {
	v      Validator
	fields []Field[C]
}

// NewCommand builds a Command from an ordered list of fields. It panics when v
// is nil or a field has no accessor.
func NewCommand[C any](v Validator, fields ...Field[C]) *Command[C] {
	if v == nil {
		panic("validator: nil validator")
	}
	for _, f := range fields {
		if f.Value == nil {
			panic("validator: field " + f.Key + " has no value accessor")
		}
	}

	return &Command[C]{v: v, fields: fields}
}

// Validate returns Success when every field passes, otherwise ValidationFailed
// with at most one error per field, in field order.
func (c *Command[C]) Validate(cmd C) result.Result[result.None] {
	var errs []result.ValidationError
	for _, f := range c.fields {
		value := f.Value(cmd)
		for _, rule := range f.Rules {
			if c.v.Check(value, rule.Tag) {
				continue
			}
			errs = append(errs, result.ValidationError{Key: f.Key, Message: rule.Message})
			break
		}
	}

	if len(errs) > 0 {
		return result.ValidationFailed[result.None](errs...)
	}

	return result.Success(result.None{})
}
