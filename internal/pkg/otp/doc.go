// Package otp generates the numeric one-time passwords sent to users.
//
// Codes are six decimal digits drawn uniformly from [100000, 999999] using
// crypto/rand. The generator is stateless; every call is independent.
package otp
