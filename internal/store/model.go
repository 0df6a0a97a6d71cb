package store

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"xavier-bank/internal/domain"
)

func init() {
	// The legacy data file stores balances as plain JSON numbers; keep
	// emitting them that way so old files and new files interleave.
	decimal.MarshalJSONWithoutQuotes = true
}

// AccountRecord is the flat persisted form of an account. Field names
// match the legacy file layout exactly.
type AccountRecord struct {
	Balance        decimal.Decimal  `json:"balance"`
	Number         int              `json:"number"`
	Digit          int              `json:"digit"`
	FullAccount    string           `json:"full_account"`
	Branch         int              `json:"branch"`
	OverdraftLimit *decimal.Decimal `json:"overdraft_limit,omitempty"`
}

// AccountSlot wraps an optional AccountRecord. The legacy layout writes
// an empty object, not null, for an absent account, so (un)marshalling
// is customized around that.
type AccountSlot struct {
	Record *AccountRecord
}

func (s AccountSlot) MarshalJSON() ([]byte, error) {
	if s.Record == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(s.Record)
}

func (s *AccountSlot) UnmarshalJSON(data []byte) error {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	if len(probe) == 0 {
		s.Record = nil
		return nil
	}
	var rec AccountRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	s.Record = &rec
	return nil
}

// CustomerRecord is the persisted form of a customer, one element of
// the snapshot array. Keyed by CPF.
type CustomerRecord struct {
	FirstName       string      `json:"first_name"`
	LastName        string      `json:"last_name"`
	Age             int         `json:"age"`
	CPF             string      `json:"cpf"`
	PIN             string      `json:"pin"`
	CheckingAccount AccountSlot `json:"checking_account"`
	SavingsAccount  AccountSlot `json:"savings_account"`
}

// RecordFromAccount flattens an account for persistence.
func RecordFromAccount(a *domain.Account) *AccountRecord {
	if a == nil {
		return nil
	}
	rec := &AccountRecord{
		Balance:     a.Balance,
		Number:      a.Number,
		Digit:       a.Digit,
		FullAccount: a.FullAccount,
		Branch:      a.Branch,
	}
	if a.Kind == domain.KindOverdraft {
		limit := a.OverdraftLimit
		rec.OverdraftLimit = &limit
	}
	return rec
}

// ToAccount rebuilds the domain account. The variant is recovered from
// the presence of an overdraft limit.
func (r *AccountRecord) ToAccount() *domain.Account {
	if r == nil {
		return nil
	}
	a := &domain.Account{
		Balance:     r.Balance,
		Number:      r.Number,
		Digit:       r.Digit,
		FullAccount: r.FullAccount,
		Branch:      r.Branch,
		Kind:        domain.KindPlain,
	}
	if r.OverdraftLimit != nil {
		a.Kind = domain.KindOverdraft
		a.OverdraftLimit = *r.OverdraftLimit
	}
	return a
}

// RecordFromCustomer produces the full flat snapshot of a customer,
// nested account records included.
func RecordFromCustomer(c *domain.Customer) CustomerRecord {
	return CustomerRecord{
		FirstName:       c.Identity.FirstName,
		LastName:        c.Identity.LastName,
		Age:             c.Identity.Age,
		CPF:             c.Identity.CPF,
		PIN:             c.Identity.PIN,
		CheckingAccount: AccountSlot{Record: RecordFromAccount(c.Checking)},
		SavingsAccount:  AccountSlot{Record: RecordFromAccount(c.Savings)},
	}
}

// ToCustomer rebuilds the domain customer, tolerating absent slots.
func (r CustomerRecord) ToCustomer() *domain.Customer {
	return &domain.Customer{
		Identity: domain.Identity{
			FirstName: r.FirstName,
			LastName:  r.LastName,
			Age:       r.Age,
			CPF:       r.CPF,
			PIN:       r.PIN,
		},
		Checking: r.CheckingAccount.Record.ToAccount(),
		Savings:  r.SavingsAccount.Record.ToAccount(),
	}
}
