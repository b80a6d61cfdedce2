// Package config reads service settings by dotted key, for example
// "modules.auth.otp.validity_minutes".
package config

import (
	"io"
	"time"
)

// Config defines the read-only view of configuration used across the service.
// Missing keys and unconvertible values yield the zero value (or the
// registered default).
type Config interface {
	io.Closer

	GetBool(key string) bool
	GetInt(key string) int
	GetString(key string) string
	GetFloat64(key string) float64

	// GetSecond reads an integer key as a number of seconds.
	GetSecond(key string) time.Duration
	// GetMinute reads an integer key as a number of minutes.
	GetMinute(key string) time.Duration

	// GetArray reads a comma separated value, trimming blanks and dropping
	// empty elements.
	GetArray(key string) []string
}

// Defaults are applied before any file is read.
var Defaults = map[string]any{
	"app.tz":                                  "UTC",
	"app.server.http.address":                 ":8080",
	"app.server.http.read_timeout_seconds":    10,
	"app.server.http.write_timeout_seconds":   10,
	"app.server.http.idle_timeout_seconds":    60,
	"app.server.http.shutdown_seconds":        10,
	"instrument.service_name":                 "otpgate",
	"instrument.sampling_ratio":               1,
	"instrument.metric_interval_seconds":      30,
	"instrument.log_mask_fields":              "otp,code,password,secret",
	"redis.connect_attempts":                  5,
	"modules.auth.enabled":                    true,
	"modules.auth.otp.validity_minutes":       10,
	"modules.auth.otp.single_use":             false,
	"modules.auth.otp.store.driver":           "memory",
	"modules.auth.otp.store.redis.key_prefix": "otp:",
	"modules.auth.otp.email.subject":          "Your one time password",
}
