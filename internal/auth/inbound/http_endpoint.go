package inbound

import (
	"github.com/shandysiswandi/otpgate/internal/auth/usecase"
	"github.com/shandysiswandi/otpgate/internal/pkg/router"
)

// HTTPEndpoint exposes the OTP use cases over HTTP.
type HTTPEndpoint struct {
	uc uc
}

// RequestOtp issues a one time password for an email address.
func (h *HTTPEndpoint) RequestOtp(r *router.Request) (any, error) {
	var req RequestOtpRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	res := h.uc.RequestOtp(r.Context(), usecase.RequestOtpInput{Email: req.Email})
	if err := res.Err(); err != nil {
		return nil, err
	}

	out, _ := res.Value()

	return RequestOtpResponse{ExpiresAt: out.ExpiresAt}, nil
}

// ValidateOtp checks a one time password for an email address.
func (h *HTTPEndpoint) ValidateOtp(r *router.Request) (any, error) {
	var req ValidateOtpRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	res := h.uc.ValidateOtp(r.Context(), usecase.ValidateOtpInput{Email: req.Email, Otp: req.Otp})
	if err := res.Err(); err != nil {
		return nil, err
	}

	return ValidateOtpResponse{Valid: true}, nil
}
