package otp

import (
	"crypto/rand"
	"io"
	"math/big"
	"strconv"
)

const (
	minCode = 100000
	maxCode = 999999
)

var codeSpan = big.NewInt(maxCode - minCode + 1)

// Generator defines the contract for code generation.
type Generator interface {
	// Generate returns a fresh six digit code.
	Generate() (string, error)
}

// Numeric generates six digit numeric codes from a cryptographic source.
type Numeric struct {
	rand io.Reader
}

// NewNumeric returns a Numeric generator backed by crypto/rand.
func NewNumeric() *Numeric {
	return &Numeric{rand: rand.Reader}
}

// Generate returns a code in [100000, 999999].
func (n *Numeric) Generate() (string, error) {
	v, err := rand.Int(n.rand, codeSpan)
	if err != nil {
		return "", err
	}

	return strconv.FormatInt(v.Int64()+minCode, 10), nil
}
