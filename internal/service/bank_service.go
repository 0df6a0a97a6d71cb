// Package service orchestrates registration, login and persistence on
// top of the record store. The store's Load is the single source of
// truth; the service's cached view is refreshed after every write.
package service

import (
	"log/slog"

	"xavier-bank/internal/domain"
	"xavier-bank/internal/errors"
	"xavier-bank/internal/identity"
	"xavier-bank/internal/store"
)

type BankService struct {
	store   *store.Store
	logger  *slog.Logger
	records []store.CustomerRecord
}

func NewBankService(st *store.Store, logger *slog.Logger) *BankService {
	svc := &BankService{
		store:  st,
		logger: logger,
	}
	svc.refresh()
	return svc
}

// refresh reloads the cached view from disk. A corrupt store degrades
// to an empty view; the store already logged the cause.
func (s *BankService) refresh() {
	records, err := s.store.Load()
	if err != nil {
		s.logger.Warn("Proceeding with empty customer view", "error", err)
	}
	s.records = records
}

// Records returns the current view of all customer records.
func (s *BankService) Records() []store.CustomerRecord {
	return s.records
}

// CustomerAt rebuilds the customer at the given position in the view.
func (s *BankService) CustomerAt(position int) (*domain.Customer, error) {
	if position < 0 || position >= len(s.records) {
		return nil, errors.ErrCustomerNotFound
	}
	return s.records[position].ToCustomer(), nil
}

// RegistrationAnswers carries the raw answers of a registration flow,
// in the order the questions are asked.
type RegistrationAnswers struct {
	FullName  string
	Age       string
	CPF       string
	PIN       string
	PINRepeat string
}

// ExistingCPFs returns the set of registered ids, the uniqueness input
// for CPF validation.
func (s *BankService) ExistingCPFs() map[string]bool {
	existing := make(map[string]bool, len(s.records))
	for _, rec := range s.records {
		existing[rec.CPF] = true
	}
	return existing
}

// Register runs the validators in question order over the answers,
// creates the customer and appends it to the store. An underage answer
// aborts with no record created; any other validation failure is
// returned as a recoverable error for the caller to re-prompt on.
func (s *BankService) Register(answers RegistrationAnswers) (*domain.Customer, error) {
	var reg identity.Registration

	first, last, err := identity.ParseFullName(answers.FullName)
	if err != nil {
		return nil, err
	}
	reg.FirstName, reg.LastName = first, last

	age, underage, err := identity.ParseAge(answers.Age)
	if err != nil {
		return nil, err
	}
	reg.Age, reg.Underage = age, underage
	if reg.Underage {
		s.logger.Info("Registration aborted, underage applicant", "age", age)
		return nil, errors.ErrUnderage
	}

	if err := identity.ValidateCPF(s.ExistingCPFs(), answers.CPF); err != nil {
		return nil, err
	}
	reg.CPF = answers.CPF

	if err := identity.ValidatePIN(answers.PIN); err != nil {
		return nil, err
	}
	if !identity.ConfirmPIN(answers.PIN, answers.PINRepeat) {
		return nil, errors.ErrInvalidInput
	}
	reg.PIN = answers.PIN

	if err := reg.Complete(); err != nil {
		return nil, err
	}

	customer := domain.NewCustomer(domain.Identity{
		FirstName: reg.FirstName,
		LastName:  reg.LastName,
		Age:       reg.Age,
		CPF:       reg.CPF,
		PIN:       reg.PIN,
	})

	if err := s.store.Append(store.RecordFromCustomer(customer)); err != nil {
		return nil, err
	}
	s.refresh()

	s.logger.Info("Customer registered", "cpf", customer.Identity.CPF)
	return customer, nil
}

// Persist writes the customer's current full record back to the store
// and refreshes the view from a fresh load.
func (s *BankService) Persist(customer *domain.Customer) error {
	if err := s.store.Update(store.RecordFromCustomer(customer)); err != nil {
		return err
	}
	s.refresh()
	return nil
}

// DeleteCustomer removes the record at the given position, bypassing
// the keyed update. Any session for that customer is invalid afterward.
func (s *BankService) DeleteCustomer(position int) error {
	if err := s.store.Delete(position); err != nil {
		return err
	}
	s.refresh()
	s.logger.Info("Customer profile deleted", "position", position)
	return nil
}
