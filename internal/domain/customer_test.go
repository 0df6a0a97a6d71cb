package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "xavier-bank/internal/errors"
)

func testIdentity() Identity {
	return Identity{
		FirstName: "Ororo",
		LastName:  "Munroe",
		Age:       30,
		CPF:       "11144477735",
		PIN:       "1234",
	}
}

func TestSlotKinds(t *testing.T) {
	assert.Equal(t, KindOverdraft, SlotChecking.Kind())
	assert.Equal(t, KindPlain, SlotSavings.Kind())
	assert.Equal(t, "checking", SlotChecking.String())
	assert.Equal(t, "savings", SlotSavings.String())
}

func TestOpenAccountSlots(t *testing.T) {
	c := NewCustomer(testIdentity())
	require.Nil(t, c.Account(SlotChecking))
	require.Nil(t, c.Account(SlotSavings))

	checking, err := c.OpenAccount(SlotChecking)
	require.NoError(t, err)
	assert.Equal(t, KindOverdraft, checking.Kind)
	assert.Same(t, checking, c.Checking)

	// occupied slot rejects a second open and keeps the original
	_, err = c.OpenAccount(SlotChecking)
	assert.ErrorIs(t, err, apperrors.ErrAccountExists)
	assert.Same(t, checking, c.Checking)

	savings, err := c.OpenAccount(SlotSavings)
	require.NoError(t, err)
	assert.Equal(t, KindPlain, savings.Kind)
	assert.Same(t, savings, c.Savings)
}

func TestCloseAccountIsIdempotent(t *testing.T) {
	c := NewCustomer(testIdentity())
	_, err := c.OpenAccount(SlotSavings)
	require.NoError(t, err)

	c.CloseAccount(SlotSavings)
	assert.Nil(t, c.Savings)

	c.CloseAccount(SlotSavings)
	assert.Nil(t, c.Savings)

	// a closed slot can be reopened
	_, err = c.OpenAccount(SlotSavings)
	assert.NoError(t, err)
}
