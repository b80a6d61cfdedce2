package usecase

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/shandysiswandi/otpgate/internal/auth/entity"
	"github.com/shandysiswandi/otpgate/internal/pkg/clock"
	"github.com/shandysiswandi/otpgate/internal/pkg/config"
	"github.com/shandysiswandi/otpgate/internal/pkg/instrument"
	"github.com/shandysiswandi/otpgate/internal/pkg/otp"
	"github.com/shandysiswandi/otpgate/internal/pkg/result"
	"github.com/shandysiswandi/otpgate/internal/pkg/validator"
)

const (
	msgEmailRequired = "Email address is required."
	msgEmailFormat   = "Invalid email format."
	msgOtpRequired   = "One time password is required."
	msgOtpLength     = "One time password must be exactly six characters."
	msgOtpInvalid    = "invalid or expired code"

	msgRequestFailed  = "An error occurred while processing the OTP request."
	msgValidateFailed = "An error occurred while validating the OTP."
)

// repoStore keeps at most one live code per identity.
type repoStore interface {
	// Save stores code unless a live code already exists for its identity,
	// and returns whichever code is live afterwards.
	Save(ctx context.Context, code entity.OtpCode) (entity.OtpCode, error)
	// Fetch returns the live code for identity, or nil when there is none.
	Fetch(ctx context.Context, identity string) (*entity.OtpCode, error)
	// Consume removes the live code of identity when candidate matches it,
	// and reports whether it did. Only one concurrent caller can succeed.
	Consume(ctx context.Context, identity, candidate string) (bool, error)
	// Delete removes any code for identity.
	Delete(ctx context.Context, identity string) error
}

type repoSender interface {
	SendOtp(ctx context.Context, address, code string) error
}

type Usecase struct {
	repoStore  repoStore
	repoSender repoSender
	generator  otp.Generator
	cfg        config.Config
	clock      clock.Clocker
	ins        instrument.Instrumentation

	requestCmd  *validator.Command[RequestOtpInput]
	validateCmd *validator.Command[ValidateOtpInput]

	requests    metric.Int64Counter
	validations metric.Int64Counter
}

type Dependency struct {
	RepoStore  repoStore
	RepoSender repoSender
	Generator  otp.Generator
	Validator  validator.Validator
	Config     config.Config
	Clock      clock.Clocker
	Instrument instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	meter := dep.Instrument.Meter("auth.usecase")

	requests, err := meter.Int64Counter("auth.otp.requests",
		metric.WithDescription("Number of OTP requests by result kind"))
	if err != nil {
		slog.Error("failed to create otp request counter", "error", err)
	}
	validations, err := meter.Int64Counter("auth.otp.validations",
		metric.WithDescription("Number of OTP validations by result kind"))
	if err != nil {
		slog.Error("failed to create otp validation counter", "error", err)
	}

	return &Usecase{
		repoStore:   dep.RepoStore,
		repoSender:  dep.RepoSender,
		generator:   dep.Generator,
		cfg:         dep.Config,
		clock:       dep.Clock,
		ins:         dep.Instrument,
		requestCmd:  newRequestOtpCommand(dep.Validator),
		validateCmd: newValidateOtpCommand(dep.Validator),
		requests:    requests,
		validations: validations,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("auth.usecase").Start(ctx, name)
}

func (s *Usecase) count(ctx context.Context, c metric.Int64Counter, kind result.Kind) {
	if c == nil {
		return
	}
	c.Add(ctx, 1, metric.WithAttributes(attribute.String("result", kind.String())))
}

func (s *Usecase) validity() time.Duration {
	if d := s.cfg.GetMinute("modules.auth.otp.validity_minutes"); d > 0 {
		return d
	}
	return entity.DefaultValidity
}

func emailField[C any](get func(C) string) validator.Field[C] {
	return validator.Field[C]{
		Key:   "Email",
		Value: get,
		Rules: []validator.Rule{
			{Tag: "required", Message: msgEmailRequired},
			{Tag: "email", Message: msgEmailFormat},
		},
	}
}
