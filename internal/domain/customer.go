package domain

import (
	"github.com/shopspring/decimal"

	"xavier-bank/internal/errors"
)

// AccountSlot addresses one of the two fixed account positions a
// customer owns. Slots are an explicit enum, never a string lookup.
type AccountSlot int

const (
	SlotChecking AccountSlot = iota
	SlotSavings
)

func (s AccountSlot) String() string {
	if s == SlotChecking {
		return "checking"
	}
	return "savings"
}

// Kind returns the account variant opened in this slot: checking
// accounts carry an overdraft, savings accounts do not.
func (s AccountSlot) Kind() AccountKind {
	if s == SlotChecking {
		return KindOverdraft
	}
	return KindPlain
}

// Customer aggregates an identity with up to one account per slot.
// Accounts are owned exclusively; nil means the slot is empty.
type Customer struct {
	Identity Identity
	Checking *Account
	Savings  *Account
}

func NewCustomer(identity Identity) *Customer {
	return &Customer{Identity: identity}
}

// Account returns the account in the given slot, or nil.
func (c *Customer) Account(slot AccountSlot) *Account {
	if slot == SlotChecking {
		return c.Checking
	}
	return c.Savings
}

// OpenAccount creates a new account in the given slot. Opening an
// occupied slot is an error and leaves the customer unchanged.
func (c *Customer) OpenAccount(slot AccountSlot) (*Account, error) {
	return c.OpenAccountWithLimit(slot, DefaultOverdraftLimit)
}

// OpenAccountWithLimit is OpenAccount with an explicit overdraft limit
// for slots that open overdraft accounts.
func (c *Customer) OpenAccountWithLimit(slot AccountSlot, overdraftLimit decimal.Decimal) (*Account, error) {
	if c.Account(slot) != nil {
		return nil, errors.ErrAccountExists
	}
	account := OpenAccountWithLimit(slot.Kind(), overdraftLimit)
	c.setAccount(slot, account)
	return account, nil
}

// CloseAccount empties the slot. Closing an already empty slot is a
// no-op.
func (c *Customer) CloseAccount(slot AccountSlot) {
	c.setAccount(slot, nil)
}

func (c *Customer) setAccount(slot AccountSlot, account *Account) {
	if slot == SlotChecking {
		c.Checking = account
		return
	}
	c.Savings = account
}
