// Package auth wires the email one time password flow: the code store, the
// email sender, the use cases and their HTTP endpoints.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/shandysiswandi/otpgate/internal/auth/entity"
	"github.com/shandysiswandi/otpgate/internal/auth/inbound"
	"github.com/shandysiswandi/otpgate/internal/auth/outbound/cache"
	"github.com/shandysiswandi/otpgate/internal/auth/outbound/email"
	"github.com/shandysiswandi/otpgate/internal/auth/usecase"
	"github.com/shandysiswandi/otpgate/internal/pkg/clock"
	"github.com/shandysiswandi/otpgate/internal/pkg/config"
	"github.com/shandysiswandi/otpgate/internal/pkg/hash"
	"github.com/shandysiswandi/otpgate/internal/pkg/instrument"
	"github.com/shandysiswandi/otpgate/internal/pkg/mail"
	"github.com/shandysiswandi/otpgate/internal/pkg/otp"
	"github.com/shandysiswandi/otpgate/internal/pkg/router"
	"github.com/shandysiswandi/otpgate/internal/pkg/validator"
)

// Store drivers accepted by modules.auth.otp.store.driver.
const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
)

var ErrCacheConnRequired = errors.New("auth: redis store requires a cache connection")

type Dependency struct {
	// CacheConn is only needed by the redis store driver.
	CacheConn  *redis.Client
	Router     *router.Router             `validate:"required"`
	Mail       mail.Mail                  `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	HMAC       hash.Hasher                `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Generator  otp.Generator              `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	store, err := newStore(dep)
	if err != nil {
		return err
	}

	sender := email.New(dep.Mail, email.Settings{
		SenderEmail: dep.Config.GetString("modules.auth.otp.email.sender"),
		Subject:     dep.Config.GetString("modules.auth.otp.email.subject"),
		HTMLPreOtp:  dep.Config.GetString("modules.auth.otp.email.html_pre_otp"),
		HTMLPostOtp: dep.Config.GetString("modules.auth.otp.email.html_post_otp"),
	}, dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoStore:  store,
		RepoSender: sender,
		Generator:  dep.Generator,
		Validator:  dep.Validator,
		Config:     dep.Config,
		Clock:      dep.Clock,
		Instrument: dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}

type otpStore interface {
	Save(ctx context.Context, code entity.OtpCode) (entity.OtpCode, error)
	Fetch(ctx context.Context, identity string) (*entity.OtpCode, error)
	Consume(ctx context.Context, identity, candidate string) (bool, error)
	Delete(ctx context.Context, identity string) error
}

func newStore(dep Dependency) (otpStore, error) {
	driver := strings.ToLower(strings.TrimSpace(dep.Config.GetString("modules.auth.otp.store.driver")))

	switch driver {
	case "", DriverMemory:
		return cache.NewMemory(dep.Clock, dep.Instrument), nil
	case DriverRedis:
		if dep.CacheConn == nil {
			return nil, ErrCacheConnRequired
		}
		prefix := dep.Config.GetString("modules.auth.otp.store.redis.key_prefix")
		return cache.NewRedis(dep.CacheConn, prefix, dep.HMAC, dep.Clock, dep.Instrument), nil
	default:
		return nil, fmt.Errorf("auth: unknown otp store driver %q", driver)
	}
}
