package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/shandysiswandi/otpgate/internal/auth/entity"
	"github.com/shandysiswandi/otpgate/internal/pkg/result"
	"github.com/shandysiswandi/otpgate/internal/pkg/validator"
)

type RequestOtpInput struct {
	Email string
}

type RequestOtpOutput struct {
	ExpiresAt time.Time
}

func newRequestOtpCommand(v validator.Validator) *validator.Command[RequestOtpInput] {
	return validator.NewCommand(v,
		emailField(func(in RequestOtpInput) string { return in.Email }),
	)
}

// RequestOtp issues a code for in.Email and emails it. When a live code
// already exists for the address, that code is resent instead of a new one.
func (s *Usecase) RequestOtp(ctx context.Context, in RequestOtpInput) (res result.Result[RequestOtpOutput]) {
	ctx, span := s.startSpan(ctx, "RequestOtp")
	defer span.End()
	defer func() { s.count(ctx, s.requests, res.Kind()) }()

	in.Email = strings.TrimSpace(in.Email)

	if vr := s.requestCmd.Validate(in); !vr.IsSuccess() {
		slog.WarnContext(ctx, "otp request failed validation", "email", in.Email, "errors", vr.Errors())
		return result.Propagate[RequestOtpOutput](vr)
	}

	raw, err := s.generator.Generate()
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate otp code", "email", in.Email, "error", err)
		return result.DependencyFailed[RequestOtpOutput](result.DependencyTimeout, msgRequestFailed)
	}

	code, err := entity.NewOtpCode(raw, in.Email, s.clock.Now(), s.validity())
	if err != nil {
		slog.ErrorContext(ctx, "failed to build otp code", "email", in.Email, "error", err)
		return result.DependencyFailed[RequestOtpOutput](result.DependencyTimeout, msgRequestFailed)
	}

	live, err := s.repoStore.Save(ctx, code)
	if err != nil {
		span.RecordError(err)
		slog.ErrorContext(ctx, "failed to repo save otp code", "email", in.Email, "error", err)
		return result.DependencyFailed[RequestOtpOutput](result.DependencyTimeout, msgRequestFailed)
	}

	if err := s.repoSender.SendOtp(ctx, in.Email, live.Code); err != nil {
		span.RecordError(err)
		slog.ErrorContext(ctx, "failed to send otp email", "email", in.Email, "error", err)
		return result.DependencyFailed[RequestOtpOutput](result.DependencyTimeout, msgRequestFailed)
	}

	return result.Success(RequestOtpOutput{ExpiresAt: live.ExpiresAt})
}
