package errors

import (
	"fmt"
)

type ErrorCode string

const (
	InvalidInput          ErrorCode = "invalid_input"
	InsufficientFunds     ErrorCode = "insufficient_funds"
	ExceedsOverdraftLimit ErrorCode = "exceeds_overdraft_limit"
	DuplicateCPF          ErrorCode = "duplicate_cpf"
	Underage              ErrorCode = "underage"
	AccountExists         ErrorCode = "account_exists"
	AccountNotFound       ErrorCode = "account_not_found"
	CustomerNotFound      ErrorCode = "customer_not_found"
	LockedOut             ErrorCode = "locked_out"
	StorageUnavailable    ErrorCode = "storage_unavailable"
	InternalError         ErrorCode = "internal_error"
)

type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

func (e AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewAppError(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

func NewAppErrorf(code ErrorCode, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

func (e *AppError) WithDetails(details string) *AppError {
	return &AppError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
	}
}

// Is lets callers match against the predefined instances with errors.Is
// regardless of attached details.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// Recoverable reports whether the caller may re-prompt after this error.
// Lockout is terminal for the session; storage failures abort the operation.
func (e *AppError) Recoverable() bool {
	switch e.Code {
	case LockedOut, StorageUnavailable, InternalError:
		return false
	}
	return true
}

// Predefined errors for common cases
var (
	ErrInvalidInput          = NewAppError(InvalidInput, "invalid input")
	ErrInvalidAmount         = NewAppError(InvalidInput, "amount must be greater than zero")
	ErrInsufficientFunds     = NewAppError(InsufficientFunds, "insufficient funds to withdraw this amount")
	ErrExceedsOverdraftLimit = NewAppError(ExceedsOverdraftLimit, "amount exceeds balance and overdraft limit")
	ErrDuplicateCPF          = NewAppError(DuplicateCPF, "this CPF is already registered")
	ErrUnderage              = NewAppError(Underage, "you need to be 18 or older to create an account")
	ErrAccountExists         = NewAppError(AccountExists, "account slot is already occupied")
	ErrAccountNotFound       = NewAppError(AccountNotFound, "account not found")
	ErrCustomerNotFound      = NewAppError(CustomerNotFound, "CPF not found")
	ErrLockedOut             = NewAppError(LockedOut, "you ran out of attempts, login failed")
	ErrStorageUnavailable    = NewAppError(StorageUnavailable, "customer database is unavailable")
)
