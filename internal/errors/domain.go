package errors

import "net/http"

// Authentication and authorization
var (
	ErrUnauthorized = &DomainError{
		Code:    "UNAUTHORIZED",
		Message: "missing or invalid credentials",
		Status:  http.StatusUnauthorized,
	}
	ErrStaleAuth = &DomainError{
		Code:    "STALE_AUTH",
		Message: "please re-authenticate and try again",
		Status:  http.StatusUnauthorized,
	}
	ErrForbidden = &DomainError{
		Code:    "FORBIDDEN",
		Message: "admin access required",
		Status:  http.StatusForbidden,
	}
)

// Validation
var (
	ErrInvalidAmount = &DomainError{
		Code:    "INVALID_AMOUNT",
		Message: "amount must be a positive number",
		Status:  http.StatusBadRequest,
	}
	ErrInvalidPin = &DomainError{
		Code:    "INVALID_PIN",
		Message: "PIN must be exactly 4 digits",
		Status:  http.StatusBadRequest,
	}
	ErrMissingReference = &DomainError{
		Code:    "MISSING_REFERENCE",
		Message: "an external transaction reference is required",
		Status:  http.StatusBadRequest,
	}
	ErrSelfTransfer = &DomainError{
		Code:    "SELF_TRANSFER",
		Message: "you cannot send money to yourself",
		Status:  http.StatusBadRequest,
	}
)

// Lookups
var (
	ErrAccountNotFound = &DomainError{
		Code:    "ACCOUNT_NOT_FOUND",
		Message: "account not found",
		Status:  http.StatusNotFound,
	}
	ErrRecipientNotFound = &DomainError{
		Code:    "RECIPIENT_NOT_FOUND",
		Message: "recipient not found",
		Status:  http.StatusNotFound,
	}
	ErrTournamentNotFound = &DomainError{
		Code:    "TOURNAMENT_NOT_FOUND",
		Message: "tournament not found",
		Status:  http.StatusNotFound,
	}
	ErrNotJoined = &DomainError{
		Code:    "NOT_JOINED",
		Message: "you have not joined this tournament",
		Status:  http.StatusNotFound,
	}
)

// Business-rule conflicts. PIN, balance and duplicate failures surface
// as 400 so clients can show them inline.
var (
	ErrPinNotSet = &DomainError{
		Code:    "PIN_NOT_SET",
		Message: "no transaction PIN is configured for this account",
		Status:  http.StatusBadRequest,
	}
	ErrPinAlreadySet = &DomainError{
		Code:    "PIN_ALREADY_SET",
		Message: "a PIN is already configured; use change PIN instead",
		Status:  http.StatusBadRequest,
	}
	ErrPinMismatch = &DomainError{
		Code:    "PIN_MISMATCH",
		Message: "your PIN is not correct",
		Status:  http.StatusBadRequest,
	}
	ErrInsufficientBalance = &DomainError{
		Code:    "INSUFFICIENT_BALANCE",
		Message: "insufficient account balance",
		Status:  http.StatusBadRequest,
	}
	ErrDuplicateReference = &DomainError{
		Code:    "DUPLICATE_REFERENCE",
		Message: "this transaction reference has already been submitted",
		Status:  http.StatusBadRequest,
	}
	ErrAccountExists = &DomainError{
		Code:    "ACCOUNT_EXISTS",
		Message: "an account with this email or mobile already exists",
		Status:  http.StatusBadRequest,
	}
	ErrMobileInUse = &DomainError{
		Code:    "MOBILE_IN_USE",
		Message: "this mobile number is already in use",
		Status:  http.StatusBadRequest,
	}
	ErrTournamentInactive = &DomainError{
		Code:    "TOURNAMENT_INACTIVE",
		Message: "this tournament is not open for joining",
		Status:  http.StatusBadRequest,
	}
	ErrTournamentFull = &DomainError{
		Code:    "TOURNAMENT_FULL",
		Message: "this tournament is already full",
		Status:  http.StatusBadRequest,
	}
	ErrAlreadyJoined = &DomainError{
		Code:    "ALREADY_JOINED",
		Message: "you have already joined this tournament",
		Status:  http.StatusBadRequest,
	}
	ErrInvalidEntryFee = &DomainError{
		Code:    "INVALID_ENTRY_FEE",
		Message: "tournament entry fee is not valid",
		Status:  http.StatusBadRequest,
	}
	ErrPrizesDistributed = &DomainError{
		Code:    "PRIZES_DISTRIBUTED",
		Message: "prizes for this tournament have already been distributed",
		Status:  http.StatusBadRequest,
	}
	ErrReserveConflict = &DomainError{
		Code:    "RESERVE_CONFLICT",
		Message: "reserve pool changed concurrently, please retry",
		Status:  http.StatusConflict,
	}
)
