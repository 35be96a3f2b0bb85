package errors

import (
	"starledger/jsonx"
)

// LedgerErrorCode represents standardized error codes for ledger operations
type LedgerErrorCode string

const (
	// General errors
	ErrCodeInternal LedgerErrorCode = "internal_error"

	// Request validation errors
	ErrCodeInvalidRequest LedgerErrorCode = "invalid_request"
	ErrCodeInvalidAddress LedgerErrorCode = "invalid_address"
	ErrCodeInvalidPayload LedgerErrorCode = "invalid_payload"

	// Chain errors
	ErrCodeChainInvalid LedgerErrorCode = "chain_invalid"
	ErrCodeBlockInvalid LedgerErrorCode = "block_invalid"

	// Ownership errors
	ErrCodeChallengeExpired   LedgerErrorCode = "challenge_expired"
	ErrCodeMalformedChallenge LedgerErrorCode = "malformed_challenge"
	ErrCodeSignatureInvalid   LedgerErrorCode = "signature_invalid"
)

// LedgerError represents a standardized ledger error
type LedgerError struct {
	Code    LedgerErrorCode `json:"code"`
	Message string          `json:"message"`
}

// Error implements the error interface
func (e *LedgerError) Error() string {
	err, _ := jsonx.Marshal(LedgerError{
		Code:    e.Code,
		Message: e.Message,
	})
	return string(err)
}

// Error message constants - user-friendly and concise
const (
	ErrMsgInternal           = "Server error, please try again"
	ErrMsgInvalidRequest     = "Request format is invalid"
	ErrMsgInvalidAddress     = "Wallet address is invalid"
	ErrMsgInvalidPayload     = "Star payload is invalid"
	ErrMsgChainInvalid       = "Chain failed validation, refusing to append"
	ErrMsgBlockInvalid       = "Sealed block failed its well-formedness check"
	ErrMsgChallengeExpired   = "Challenge has expired, request a new one"
	ErrMsgMalformedChallenge = "Challenge string could not be parsed"
	ErrMsgSignatureInvalid   = "Signature does not match the challenge"
)

// NewError creates a new LedgerError and returns it as error interface
func NewError(code LedgerErrorCode, message string) error {
	return &LedgerError{
		Code:    code,
		Message: message,
	}
}

// IsCode reports whether err is a LedgerError carrying the given code.
func IsCode(err error, code LedgerErrorCode) bool {
	le, ok := err.(*LedgerError)
	return ok && le.Code == code
}
