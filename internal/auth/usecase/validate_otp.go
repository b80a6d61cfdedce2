package usecase

import (
	"context"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/trace"

	"github.com/shandysiswandi/otpgate/internal/pkg/result"
	"github.com/shandysiswandi/otpgate/internal/pkg/validator"
)

type ValidateOtpInput struct {
	Email string
	Otp   string
}

func newValidateOtpCommand(v validator.Validator) *validator.Command[ValidateOtpInput] {
	return validator.NewCommand(v,
		emailField(func(in ValidateOtpInput) string { return in.Email }),
		validator.Field[ValidateOtpInput]{
			Key:   "Otp",
			Value: func(in ValidateOtpInput) string { return in.Otp },
			Rules: []validator.Rule{
				{Tag: "required", Message: msgOtpRequired},
				{Tag: "len=6", Message: msgOtpLength},
			},
		},
	)
}

// ValidateOtp checks in.Otp against the live code of in.Email. A missing,
// expired or different code produce the same failure.
func (s *Usecase) ValidateOtp(ctx context.Context, in ValidateOtpInput) (res result.Result[result.None]) {
	ctx, span := s.startSpan(ctx, "ValidateOtp")
	defer span.End()
	defer func() { s.count(ctx, s.validations, res.Kind()) }()

	in.Email = strings.TrimSpace(in.Email)

	if vr := s.validateCmd.Validate(in); !vr.IsSuccess() {
		slog.WarnContext(ctx, "otp validation failed validation", "email", in.Email, "errors", vr.Errors())
		return vr
	}

	if s.cfg.GetBool("modules.auth.otp.single_use") {
		return s.consumeOtp(ctx, in)
	}

	stored, err := s.repoStore.Fetch(ctx, in.Email)
	if err != nil {
		span.RecordError(err)
		slog.ErrorContext(ctx, "failed to repo fetch otp code", "email", in.Email, "error", err)
		return result.DependencyFailed[result.None](result.DependencyTimeout, msgValidateFailed)
	}

	if stored == nil || !stored.IsCodeValid(in.Otp, s.clock.Now()) {
		slog.WarnContext(ctx, "otp code rejected", "email", in.Email, "found", stored != nil)
		return result.ValidationFailed[result.None](result.ValidationError{Key: "Otp", Message: msgOtpInvalid})
	}

	return result.Success(result.None{})
}

// consumeOtp checks and removes the code in one store call, so a code can be
// redeemed only once even by concurrent requests.
func (s *Usecase) consumeOtp(ctx context.Context, in ValidateOtpInput) result.Result[result.None] {
	ok, err := s.repoStore.Consume(ctx, in.Email, in.Otp)
	if err != nil {
		trace.SpanFromContext(ctx).RecordError(err)
		slog.ErrorContext(ctx, "failed to repo consume otp code", "email", in.Email, "error", err)
		return result.DependencyFailed[result.None](result.DependencyTimeout, msgValidateFailed)
	}

	if !ok {
		slog.WarnContext(ctx, "otp code rejected", "email", in.Email, "single_use", true)
		return result.ValidationFailed[result.None](result.ValidationError{Key: "Otp", Message: msgOtpInvalid})
	}

	return result.Success(result.None{})
}
