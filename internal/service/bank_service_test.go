package service

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xavier-bank/internal/domain"
	apperrors "xavier-bank/internal/errors"
	"xavier-bank/internal/store"
)

func newTestService(t *testing.T) *BankService {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st := store.New(filepath.Join(t.TempDir(), "customers_database.json"), logger)
	return NewBankService(st, logger)
}

func validAnswers() RegistrationAnswers {
	return RegistrationAnswers{
		FullName:  "Charles Xavier",
		Age:       "90",
		CPF:       "11144477735",
		PIN:       "1234",
		PINRepeat: "1234",
	}
}

func TestRegisterCreatesRecord(t *testing.T) {
	svc := newTestService(t)

	customer, err := svc.Register(validAnswers())
	require.NoError(t, err)
	assert.Equal(t, "Charles", customer.Identity.FirstName)
	assert.Equal(t, "Xavier", customer.Identity.LastName)
	assert.Equal(t, 90, customer.Identity.Age)
	assert.Nil(t, customer.Checking)
	assert.Nil(t, customer.Savings)

	records := svc.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "11144477735", records[0].CPF)
}

func TestRegisterAbortsOnUnderage(t *testing.T) {
	svc := newTestService(t)

	answers := validAnswers()
	answers.Age = "17"
	_, err := svc.Register(answers)
	assert.ErrorIs(t, err, apperrors.ErrUnderage)
	assert.Empty(t, svc.Records(), "underage registration must not create a record")
}

func TestRegisterRejectsDuplicateCPF(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Register(validAnswers())
	require.NoError(t, err)

	answers := validAnswers()
	answers.FullName = "James Howlett"
	_, err = svc.Register(answers)
	assert.ErrorIs(t, err, apperrors.ErrDuplicateCPF)
	assert.Len(t, svc.Records(), 1)
}

func TestRegisterValidationFailures(t *testing.T) {
	svc := newTestService(t)

	cases := map[string]RegistrationAnswers{
		"single name":   {FullName: "Charles", Age: "90", CPF: "11144477735", PIN: "1234", PINRepeat: "1234"},
		"bad age":       {FullName: "Charles Xavier", Age: "old", CPF: "11144477735", PIN: "1234", PINRepeat: "1234"},
		"bad checksum":  {FullName: "Charles Xavier", Age: "90", CPF: "11144477736", PIN: "1234", PINRepeat: "1234"},
		"bad pin":       {FullName: "Charles Xavier", Age: "90", CPF: "11144477735", PIN: "12", PINRepeat: "12"},
		"pin mismatch":  {FullName: "Charles Xavier", Age: "90", CPF: "11144477735", PIN: "1234", PINRepeat: "4321"},
		"negative age":  {FullName: "Charles Xavier", Age: "-3", CPF: "11144477735", PIN: "1234", PINRepeat: "1234"},
		"alphabetic id": {FullName: "Charles Xavier", Age: "90", CPF: "1114447773a", PIN: "1234", PINRepeat: "1234"},
	}
	for name, answers := range cases {
		_, err := svc.Register(answers)
		assert.Error(t, err, name)
		assert.Empty(t, svc.Records(), name)
	}
}

func TestLoginLockout(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Register(validAnswers())
	require.NoError(t, err)

	login := svc.BeginLogin()
	assert.Equal(t, AwaitingID, login.State())

	require.NoError(t, login.SubmitID("11144477735"))
	assert.Equal(t, AwaitingPIN, login.State())

	// three wrong PINs report decreasing remaining counts
	for _, want := range []int{3, 2, 1} {
		_, err := login.SubmitPIN("9999")
		require.Error(t, err)
		assert.NotErrorIs(t, err, apperrors.ErrLockedOut)
		assert.Equal(t, want, login.RemainingAttempts())
	}

	// the fourth wrong PIN locks out, never the fifth
	_, err = login.SubmitPIN("9999")
	assert.ErrorIs(t, err, apperrors.ErrLockedOut)
	assert.Equal(t, LockedOut, login.State())

	// lockout is terminal: even the right PIN is refused now
	_, err = login.SubmitPIN("1234")
	assert.ErrorIs(t, err, apperrors.ErrLockedOut)
}

func TestLoginMalformedPINBurnsNoAttempt(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Register(validAnswers())
	require.NoError(t, err)

	login := svc.BeginLogin()
	require.NoError(t, login.SubmitID("11144477735"))

	_, err = login.SubmitPIN("12x4")
	require.Error(t, err)
	assert.Equal(t, 4, login.RemainingAttempts())
}

func TestLoginSuccess(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Register(validAnswers())
	require.NoError(t, err)

	login := svc.BeginLogin()

	assert.ErrorIs(t, login.SubmitID("123"), apperrors.ErrInvalidInput)
	assert.ErrorIs(t, login.SubmitID("52998224725"), apperrors.ErrCustomerNotFound)
	assert.Equal(t, AwaitingID, login.State())

	require.NoError(t, login.SubmitID("11144477735"))

	_, err = login.SubmitPIN("4321")
	require.Error(t, err)

	customer, err := login.SubmitPIN("1234")
	require.NoError(t, err)
	assert.Equal(t, Authenticated, login.State())
	assert.Equal(t, "Charles", customer.Identity.FirstName)
	assert.Equal(t, 0, login.Position())
	assert.NotZero(t, login.SessionID())
}

func TestPersistRoundTripsMutations(t *testing.T) {
	svc := newTestService(t)
	customer, err := svc.Register(validAnswers())
	require.NoError(t, err)

	account, err := customer.OpenAccount(domain.SlotSavings)
	require.NoError(t, err)
	require.NoError(t, account.Deposit(decimal.NewFromInt(250)))
	require.NoError(t, svc.Persist(customer))

	reloaded, err := svc.CustomerAt(0)
	require.NoError(t, err)
	require.NotNil(t, reloaded.Savings)
	assert.True(t, reloaded.Savings.Balance.Equal(decimal.NewFromInt(250)))
	assert.Nil(t, reloaded.Checking)
}

func TestDeleteCustomer(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Register(validAnswers())
	require.NoError(t, err)

	second := validAnswers()
	second.FullName = "Jean Grey"
	second.CPF = "52998224725"
	_, err = svc.Register(second)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCustomer(0))
	records := svc.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "52998224725", records[0].CPF)

	assert.ErrorIs(t, svc.DeleteCustomer(7), apperrors.ErrCustomerNotFound)
}

// TestOverdraftLifecycle walks the full scenario: register, open
// checking, deposit 500, withdraw 1500 against a 1000 limit (confirm),
// then fail to withdraw one more dollar.
func TestOverdraftLifecycle(t *testing.T) {
	svc := newTestService(t)
	customer, err := svc.Register(validAnswers())
	require.NoError(t, err)

	checking, err := customer.OpenAccount(domain.SlotChecking)
	require.NoError(t, err)
	require.True(t, checking.OverdraftLimit.Equal(decimal.NewFromInt(1000)))
	require.NoError(t, svc.Persist(customer))

	require.NoError(t, checking.Deposit(decimal.NewFromInt(500)))
	require.NoError(t, svc.Persist(customer))

	res, err := checking.Withdraw(decimal.NewFromInt(1500))
	require.NoError(t, err)
	require.Equal(t, domain.OverdraftConfirmationRequired, res.Outcome)
	require.NoError(t, checking.ConfirmOverdraftWithdrawal(decimal.NewFromInt(1500)))
	require.NoError(t, svc.Persist(customer))

	reloaded, err := svc.CustomerAt(0)
	require.NoError(t, err)
	assert.True(t, reloaded.Checking.Balance.Equal(decimal.NewFromInt(-1000)))

	_, err = reloaded.Checking.Withdraw(decimal.NewFromInt(1))
	assert.ErrorIs(t, err, apperrors.ErrExceedsOverdraftLimit)
	assert.True(t, reloaded.Checking.Balance.Equal(decimal.NewFromInt(-1000)))
}
