package repositories

import "errors"

// Repository sentinel errors. Services translate these into domain errors
// before they reach a caller.
var (
	ErrAccountNotFound      = errors.New("account not found")
	ErrInsufficientBalance  = errors.New("insufficient balance")
	ErrChargeRuleNotFound   = errors.New("charge rule not found")
	ErrReserveExhausted     = errors.New("reserve pool exhausted")
	ErrTournamentNotFound   = errors.New("tournament not found")
	ErrParticipantNotFound  = errors.New("participant not found")
	ErrDuplicateParticipant = errors.New("participant already exists")
)
