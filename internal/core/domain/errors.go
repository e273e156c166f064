package domain

import "errors"

// Rejection kinds. Every *RejectionError unwraps to one of these so callers can
// classify with errors.Is without parsing the French message.
var (
	ErrFrozen            = errors.New("account frozen")
	ErrNonPositiveAmount = errors.New("amount must be positive")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidPIN        = errors.New("invalid pin")
	ErrInvalidClientData = errors.New("invalid client information")
	ErrAccountExists     = errors.New("account already created")
	ErrNoAccount         = errors.New("client has no account")
	ErrFreezeDisabled    = errors.New("freeze not supported")
)

var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrClientNotFound     = errors.New("client not found")
	ErrCompanyNotFound    = errors.New("company not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrForbidden          = errors.New("access forbidden")
	ErrDuplicateRequest   = errors.New("duplicate request")
)

// RejectionError is a refused operation. Message is the text shown to the
// customer; Kind is the sentinel it matches.
type RejectionError struct {
	Op      string
	Kind    error
	Message string
}

func (e *RejectionError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}

func (e *RejectionError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Kind
}

func reject(op string, kind error, msg string) *RejectionError {
	return &RejectionError{Op: op, Kind: kind, Message: msg}
}

// ValidationError reports the first client field that failed verification.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidClientData
}

// Message returns the customer-facing text of err: the French message for
// domain rejections, err.Error() otherwise.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var re *RejectionError
	if errors.As(err, &re) {
		return re.Message
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	return err.Error()
}
