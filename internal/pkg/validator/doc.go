// Package validator checks commands and dependency structs before they reach
// business logic.
//
// Commands are described with explicit per-field rules (Field) and validated
// into a result.Result, so a failing command never surfaces as an error.
// Struct tag validation (Validate) is kept for wiring-time checks such as
// module dependencies. Both sit on go-playground/validator v10.
package validator
