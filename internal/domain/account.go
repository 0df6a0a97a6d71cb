package domain

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/shopspring/decimal"

	"xavier-bank/internal/errors"
)

// AccountKind is the closed set of account variants.
type AccountKind string

const (
	// KindPlain accounts never go below zero.
	KindPlain AccountKind = "plain"
	// KindOverdraft accounts may go negative down to -OverdraftLimit,
	// but only with explicit confirmation from the customer.
	KindOverdraft AccountKind = "overdraft"
)

// DefaultOverdraftLimit applies when an overdraft account is opened
// without an explicit limit.
var DefaultOverdraftLimit = decimal.NewFromInt(1000)

// Account holds a balance and the identifiers printed on statements.
// The persisted form lives in the store package; this type carries the
// behavior.
type Account struct {
	Number         int
	Digit          int
	Branch         int
	FullAccount    string
	Balance        decimal.Decimal
	Kind           AccountKind
	OverdraftLimit decimal.Decimal
}

// WithdrawOutcome tags the result of a successful Withdraw call.
type WithdrawOutcome int

const (
	// WithdrawCommitted means the balance was updated.
	WithdrawCommitted WithdrawOutcome = iota
	// OverdraftConfirmationRequired means the withdrawal would dip into
	// the overdraft; the balance is untouched until the caller commits
	// it with ConfirmOverdraftWithdrawal. Declining is simply not
	// calling back, it is not an error.
	OverdraftConfirmationRequired
)

// WithdrawResult reports what Withdraw decided. Projected carries the
// balance the account would reach, meaningful for both outcomes.
type WithdrawResult struct {
	Outcome   WithdrawOutcome
	Projected decimal.Decimal
}

// issuedNumbers guards against handing out the same account number twice
// within the process. Not cryptographic, and not meant to be.
var (
	issuedMu      sync.Mutex
	issuedNumbers = make(map[int]bool)
)

func nextAccountNumber() int {
	issuedMu.Lock()
	defer issuedMu.Unlock()
	for {
		n := 1000000 + rand.Intn(9000000)
		if !issuedNumbers[n] {
			issuedNumbers[n] = true
			return n
		}
	}
}

// OpenAccount creates a zero-balance account of the given kind with a
// freshly issued number, check digit and branch.
func OpenAccount(kind AccountKind) *Account {
	return OpenAccountWithLimit(kind, DefaultOverdraftLimit)
}

// OpenAccountWithLimit is OpenAccount with an explicit overdraft limit.
// The limit is ignored for plain accounts.
func OpenAccountWithLimit(kind AccountKind, overdraftLimit decimal.Decimal) *Account {
	number := nextAccountNumber()
	digit := rand.Intn(10)
	a := &Account{
		Number:      number,
		Digit:       digit,
		Branch:      1000 + rand.Intn(9000),
		FullAccount: fmt.Sprintf("%d-%d", number, digit),
		Balance:     decimal.Zero,
		Kind:        kind,
	}
	if kind == KindOverdraft {
		a.OverdraftLimit = overdraftLimit
	}
	return a
}

// Deposit adds amount to the balance. Non-positive amounts are rejected
// without touching the account.
func (a *Account) Deposit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return errors.ErrInvalidAmount
	}
	a.Balance = a.Balance.Add(amount)
	return nil
}

// Withdraw applies the overdraft decision tree:
//
//	plain:     new < 0                    -> insufficient funds
//	overdraft: new >= 0                   -> commit
//	           -limit <= new < 0          -> confirmation required, no mutation
//	           new < -limit               -> exceeds overdraft limit
//
// The account is only mutated on a committed outcome.
func (a *Account) Withdraw(amount decimal.Decimal) (WithdrawResult, error) {
	if !amount.IsPositive() {
		return WithdrawResult{}, errors.ErrInvalidAmount
	}

	projected := a.Balance.Sub(amount)

	if projected.GreaterThanOrEqual(decimal.Zero) {
		a.Balance = projected
		return WithdrawResult{Outcome: WithdrawCommitted, Projected: projected}, nil
	}

	if a.Kind != KindOverdraft {
		return WithdrawResult{}, errors.ErrInsufficientFunds
	}

	if projected.GreaterThanOrEqual(a.OverdraftLimit.Neg()) {
		return WithdrawResult{Outcome: OverdraftConfirmationRequired, Projected: projected}, nil
	}

	return WithdrawResult{}, errors.ErrExceedsOverdraftLimit
}

// ConfirmOverdraftWithdrawal commits a withdrawal previously reported as
// OverdraftConfirmationRequired. The amount is revalidated against the
// current balance so a stale confirmation cannot break the invariant.
func (a *Account) ConfirmOverdraftWithdrawal(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return errors.ErrInvalidAmount
	}
	if a.Kind != KindOverdraft {
		return errors.ErrInsufficientFunds
	}
	projected := a.Balance.Sub(amount)
	if projected.LessThan(a.OverdraftLimit.Neg()) {
		return errors.ErrExceedsOverdraftLimit
	}
	a.Balance = projected
	return nil
}
