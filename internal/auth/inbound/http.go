package inbound

import (
	"context"

	"github.com/shandysiswandi/otpgate/internal/auth/usecase"
	"github.com/shandysiswandi/otpgate/internal/pkg/result"
	"github.com/shandysiswandi/otpgate/internal/pkg/router"
)

type uc interface {
	RequestOtp(ctx context.Context, in usecase.RequestOtpInput) result.Result[usecase.RequestOtpOutput]
	ValidateOtp(ctx context.Context, in usecase.ValidateOtpInput) result.Result[result.None]
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/api/v1/auth/otp/request", end.RequestOtp)
	r.POST("/api/v1/auth/otp/validate", end.ValidateOtp)
}
