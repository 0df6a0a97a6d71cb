package service

import (
	"github.com/google/uuid"

	"xavier-bank/internal/domain"
	"xavier-bank/internal/errors"
	"xavier-bank/internal/identity"
)

// maxPINAttempts is how many wrong PINs a login tolerates before the
// session locks out.
const maxPINAttempts = 4

// LoginState tracks the progress of one login session.
type LoginState int

const (
	AwaitingID LoginState = iota
	AwaitingPIN
	Authenticated
	LockedOut
)

// Login is the per-session authentication state machine:
//
//	AwaitingID -> AwaitingPIN -> {Authenticated, LockedOut}
//
// A wrong id leaves the machine in AwaitingID (re-enterable); wrong
// PINs burn attempts until lockout, which is terminal.
type Login struct {
	service   *BankService
	state     LoginState
	position  int
	attempts  int
	sessionID uuid.UUID
}

// BeginLogin starts a fresh login session against the current view.
func (s *BankService) BeginLogin() *Login {
	return &Login{
		service:  s,
		state:    AwaitingID,
		position: -1,
		attempts: maxPINAttempts,
	}
}

func (l *Login) State() LoginState {
	return l.state
}

// RemainingAttempts reports how many PIN attempts are left.
func (l *Login) RemainingAttempts() int {
	return l.attempts
}

// SessionID identifies an authenticated session; zero until then.
func (l *Login) SessionID() uuid.UUID {
	return l.sessionID
}

// Position returns the authenticated customer's index in the view.
func (l *Login) Position() int {
	return l.position
}

// SubmitID looks the id up in the current view. A malformed id is
// InvalidInput, an unknown one CustomerNotFound; both keep the machine
// in AwaitingID so the caller can re-prompt or send the user off to
// register.
func (l *Login) SubmitID(input string) error {
	if l.state != AwaitingID {
		return errors.NewAppError(errors.InternalError, "login is not awaiting an id")
	}
	if len(input) != 11 || !isNumeric(input) {
		return errors.ErrInvalidInput
	}
	for i, rec := range l.service.records {
		if rec.CPF == input {
			l.position = i
			l.state = AwaitingPIN
			return nil
		}
	}
	return errors.ErrCustomerNotFound
}

// SubmitPIN checks the PIN against the record found by SubmitID. Each
// wrong PIN burns one attempt; the machine reports the remaining count
// and locks out when it reaches zero. A malformed PIN still burns no
// attempt.
func (l *Login) SubmitPIN(input string) (*domain.Customer, error) {
	switch l.state {
	case LockedOut:
		return nil, errors.ErrLockedOut
	case AwaitingPIN:
	default:
		return nil, errors.NewAppError(errors.InternalError, "login is not awaiting a PIN")
	}

	if err := identity.ValidatePIN(input); err != nil {
		return nil, err
	}

	record := l.service.records[l.position]
	if record.PIN == input {
		l.state = Authenticated
		l.sessionID = uuid.New()
		l.service.logger.Info("Customer logged in", "cpf", record.CPF, "session_id", l.sessionID)
		return record.ToCustomer(), nil
	}

	l.attempts--
	if l.attempts <= 0 {
		l.state = LockedOut
		l.service.logger.Warn("Login locked out", "cpf", record.CPF)
		return nil, errors.ErrLockedOut
	}
	l.service.logger.Info("Wrong PIN", "cpf", record.CPF, "attempts_left", l.attempts)
	return nil, errors.NewAppErrorf(errors.InvalidInput, "wrong PIN, you have %d attempts left", l.attempts)
}

func isNumeric(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
