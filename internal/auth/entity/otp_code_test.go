package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestNewOtpCode(t *testing.T) {
	c, err := NewOtpCode("123456", "User@Example.com", now, 5*time.Minute)
	require.NoError(t, err)

	assert.Equal(t, "123456", c.Code)
	assert.Equal(t, "User@Example.com", c.Identity)
	assert.Equal(t, now.Add(5*time.Minute), c.ExpiresAt)

	c, err = NewOtpCode("123456", "a@b.c", now, 0)
	require.NoError(t, err)
	assert.Equal(t, now.Add(DefaultValidity), c.ExpiresAt)
}

func TestNewOtpCode_Invalid(t *testing.T) {
	for _, code := range []string{"", "12345", "1234567", "12345a", "１２３４５６", " 12345"} {
		_, err := NewOtpCode(code, "a@b.c", now, time.Minute)
		assert.ErrorIs(t, err, ErrInvalidCode, code)
	}
}

func TestOtpCode_IsCodeValid(t *testing.T) {
	c, err := NewOtpCode("123456", "a@b.c", now, 10*time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name      string
		candidate string
		at        time.Time
		want      bool
	}{
		{name: "Match", candidate: "123456", at: now, want: true},
		{name: "AtExpiry", candidate: "123456", at: c.ExpiresAt, want: true},
		{name: "OneNanosecondAfterExpiry", candidate: "123456", at: c.ExpiresAt.Add(time.Nanosecond), want: false},
		{name: "Mismatch", candidate: "654321", at: now, want: false},
		{name: "Empty", candidate: "", at: now, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.IsCodeValid(tt.candidate, tt.at))
		})
	}
}

func TestOtpCode_IsCodeValid_IgnoresCase(t *testing.T) {
	c := OtpCode{Code: "ABCdef", ExpiresAt: now.Add(time.Minute)}

	assert.True(t, c.IsCodeValid("abcDEF", now))
	assert.False(t, c.IsCodeValid("abcDEG", now))
}

func TestOtpCode_IsLive(t *testing.T) {
	c := OtpCode{ExpiresAt: now}

	assert.True(t, c.IsLive(now.Add(-time.Second)))
	assert.True(t, c.IsLive(now))
	assert.False(t, c.IsLive(now.Add(time.Millisecond)))
}
