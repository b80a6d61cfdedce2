package entity

import (
	"errors"
	"strings"
	"time"
)

// DefaultValidity is used when no positive validity window is configured.
const DefaultValidity = 10 * time.Minute

const codeLength = 6

// ErrInvalidCode is returned when a code is not exactly six ASCII digits.
var ErrInvalidCode = errors.New("auth: otp code must be six ascii digits")

// OtpCode is a generated one time password bound to an identity (an email
// address, kept as given).
type OtpCode struct {
	Code      string
	Identity  string
	ExpiresAt time.Time
}

// NewOtpCode builds a code that expires validity after now. A non positive
// validity falls back to DefaultValidity.
func NewOtpCode(code, identity string, now time.Time, validity time.Duration) (OtpCode, error) {
	if !isSixDigits(code) {
		return OtpCode{}, ErrInvalidCode
	}
	if validity <= 0 {
		validity = DefaultValidity
	}

	return OtpCode{
		Code:      code,
		Identity:  identity,
		ExpiresAt: now.Add(validity),
	}, nil
}

// IsLive reports whether the code has not expired at now. The expiry instant
// itself is still live.
func (c OtpCode) IsLive(now time.Time) bool {
	return !now.After(c.ExpiresAt)
}

// IsCodeValid reports whether candidate matches the code, ignoring case, and
// the code is live at now.
func (c OtpCode) IsCodeValid(candidate string, now time.Time) bool {
	return strings.EqualFold(c.Code, candidate) && c.IsLive(now)
}

func isSixDigits(s string) bool {
	if len(s) != codeLength {
		return false
	}
	for i := range len(s) {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
