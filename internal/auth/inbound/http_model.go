package inbound

import "time"

type RequestOtpRequest struct {
	Email string `json:"email"`
}

type RequestOtpResponse struct {
	ExpiresAt time.Time `json:"expires_at"`
}

func (RequestOtpResponse) Message() string {
	return "A one time password has been sent to your email address."
}

type ValidateOtpRequest struct {
	Email string `json:"email"`
	Otp   string `json:"otp"`
}

type ValidateOtpResponse struct {
	Valid bool `json:"valid"`
}

func (ValidateOtpResponse) Message() string {
	return "The one time password is valid."
}
