// Package errors defines the typed failures surfaced by the ledger core.
// Every failure a caller can act on carries a stable code and an HTTP
// status, so handlers never string-match messages and clients never see a
// bare stack trace.
package errors

// DomainError is a business-rule or lookup failure.
type DomainError struct {
	Code    string
	Message string
	Status  int
}

func (e *DomainError) Error() string { return e.Message }

// New builds a DomainError. Prefer the predeclared errors below; New is for
// one-off wrapping at the edges.
func New(code, message string, status int) *DomainError {
	return &DomainError{Code: code, Message: message, Status: status}
}
