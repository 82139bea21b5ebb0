package isa

import "errors"

// Encoding errors, forming the closed set described in §4.1.
var (
	ErrUnknownMnemonic = errors.New("unknown mnemonic")
	ErrOperandCount    = errors.New("wrong number of operands")
	ErrRegisterRange   = errors.New("register out of range 0..15")
	ErrImmediateRange  = errors.New("immediate out of range")
)
