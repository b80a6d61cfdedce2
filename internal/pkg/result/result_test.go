package result

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuccess(t *testing.T) {
	r := Success(42)

	assert.True(t, r.IsSuccess())
	assert.Equal(t, KindSuccess, r.Kind())
	assert.Equal(t, "The operation was successful.", r.Message())

	v, ok := r.Value()
	assert.True(t, ok)
	assert.Equal(t, 42, v)
	assert.NoError(t, r.Err())
}

func TestZeroValueIsSuccess(t *testing.T) {
	var r Result[string]

	assert.True(t, r.IsSuccess())
	v, ok := r.Value()
	assert.True(t, ok)
	assert.Empty(t, v)
}

func TestValidationFailed(t *testing.T) {
	errs := []ValidationError{
		{Key: "Email", Message: "Email address is required."},
		{Key: "Otp", Message: "One time password is required."},
	}
	r := ValidationFailed[int](errs...)

	assert.False(t, r.IsSuccess())
	assert.Equal(t, KindValidationFailed, r.Kind())
	assert.Equal(t, errs, r.Errors())
	assert.Equal(t, "One or more validation errors occurred.", r.Message())

	_, ok := r.Value()
	assert.False(t, ok)

	// mutating the input or the returned copy must not affect the result
	errs[0].Message = "changed"
	got := r.Errors()
	got[1].Key = "changed"
	assert.Equal(t, "Email address is required.", r.Errors()[0].Message)
	assert.Equal(t, "Otp", r.Errors()[1].Key)
}

func TestPreconditionFailed(t *testing.T) {
	tests := []struct {
		name    string
		reason  PreconditionFailedReason
		message string
		want    string
	}{
		{name: "ExplicitMessage", reason: PreconditionNotFound, message: "gone", want: "gone"},
		{name: "NotFoundDefault", reason: PreconditionNotFound, want: PreconditionNotFound.Message()},
		{name: "ConflictDefault", reason: PreconditionConflict, want: PreconditionConflict.Message()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := PreconditionFailed[int](tt.reason, tt.message)

			assert.Equal(t, KindPreconditionFailed, r.Kind())
			assert.Equal(t, tt.reason, r.PreconditionReason())
			assert.Equal(t, tt.want, r.Message())
		})
	}
}

func TestDependencyFailed(t *testing.T) {
	r := DependencyFailed[int](DependencyTimeout, "")
	assert.Equal(t, KindDependencyFailed, r.Kind())
	assert.Equal(t, DependencyTimeout, r.DependencyReason())
	assert.Equal(t, "Timeout", r.Message())

	r = DependencyFailed[int](DependencyUnavailable, "store is down")
	assert.Equal(t, "store is down", r.Message())
}

func TestUnauthorized(t *testing.T) {
	r := Unauthorized[int]("nope")

	assert.Equal(t, KindUnauthorized, r.Kind())
	assert.Equal(t, "nope", r.Message())
}

func TestMapKeepsVariantAndPayload(t *testing.T) {
	tests := []struct {
		name string
		in   Result[int]
	}{
		{name: "Success", in: Success(7)},
		{name: "ValidationFailed", in: ValidationFailed[int](ValidationError{Key: "Otp", Message: "bad"})},
		{name: "PreconditionFailed", in: PreconditionFailed[int](PreconditionConflict, "busy")},
		{name: "DependencyFailed", in: DependencyFailed[int](DependencyUnavailable, "down")},
		{name: "Unauthorized", in: Unauthorized[int]("denied")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := tt.in.Map()

			assert.Equal(t, tt.in.Kind(), out.Kind())
			assert.Equal(t, tt.in.IsSuccess(), out.IsSuccess())
			assert.Equal(t, tt.in.Message(), out.Message())
			assert.Equal(t, tt.in.Errors(), out.Errors())
			assert.Equal(t, tt.in.PreconditionReason(), out.PreconditionReason())
			assert.Equal(t, tt.in.DependencyReason(), out.DependencyReason())
		})
	}
}

func TestPropagate(t *testing.T) {
	in := DependencyFailed[int](DependencyTimeout, "slow")
	out := Propagate[string](in)

	assert.Equal(t, KindDependencyFailed, out.Kind())
	assert.Equal(t, "slow", out.Message())

	assert.Panics(t, func() { Propagate[string](Success(1)) })
}

func TestThen(t *testing.T) {
	double := func(v int) int { return v * 2 }

	v, ok := Then(Success(4), double).Value()
	assert.True(t, ok)
	assert.Equal(t, 8, v)

	failed := Then(Unauthorized[int]("no"), double)
	assert.Equal(t, KindUnauthorized, failed.Kind())
}

func TestMatch(t *testing.T) {
	cases := Cases[int, string]{
		Success:            func(v int) string { return "ok" },
		ValidationFailed:   func(errs []ValidationError) string { return errs[0].Key },
		PreconditionFailed: func(r PreconditionFailedReason, _ string) string { return r.String() },
		DependencyFailed:   func(r DependencyFailedReason, _ string) string { return r.String() },
		Unauthorized:       func(msg string) string { return msg },
	}

	assert.Equal(t, "ok", Match(Success(1), cases))
	assert.Equal(t, "Otp", Match(ValidationFailed[int](ValidationError{Key: "Otp"}), cases))
	assert.Equal(t, "NotFound", Match(PreconditionFailed[int](PreconditionNotFound, ""), cases))
	assert.Equal(t, "Unavailable", Match(DependencyFailed[int](DependencyUnavailable, ""), cases))
	assert.Equal(t, "denied", Match(Unauthorized[int]("denied"), cases))

	assert.Panics(t, func() {
		Match(Success(1), Cases[int, string]{Success: cases.Success})
	})
}

func TestErr(t *testing.T) {
	err := PreconditionFailed[int](PreconditionNotFound, "").Err()
	require.Error(t, err)

	var rerr *Error
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, KindPreconditionFailed, rerr.Result().Kind())
	assert.Contains(t, err.Error(), "PRECONDITION_FAILED")
}

func TestErrorDictionary(t *testing.T) {
	dict := ErrorDictionary([]ValidationError{
		{Key: "Email", Message: "Email address is required."},
		{Key: "Otp", Message: "One time password is required."},
		{Key: "Email", Message: "Invalid email format."},
	})

	assert.Equal(t, map[string][]string{
		"Email": {"Email address is required.", "Invalid email format."},
		"Otp":   {"One time password is required."},
	}, dict)
	assert.Nil(t, ErrorDictionary(nil))
}
