package ui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"

	"xavier-bank/internal/domain"
)

var (
	green = color.New(color.FgGreen).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
)

const (
	promptChoice = "\nType the number correspondent to your choice: "
	invalidInput = "Invalid input, try again\n"
)

const initialMenu = `------- XAVIER BANK -------
1 - Create new account
2 - Log in your account
3 - Exit`

func loginMenu(firstName string) string {
	return fmt.Sprintf(`Welcome %s!
1 - Manage checking account
2 - Manage savings account
3 - Logout
4 - Danger zone`, firstName)
}

func askCreateAccount(slot domain.AccountSlot) string {
	return fmt.Sprintf(`You do not have a %s account yet.
Do you want to create one?
1 - Yes
2 - No`, slot)
}

func accountMenu(slot domain.AccountSlot) string {
	return fmt.Sprintf(`----- %s ACCOUNT -----
1 - Check account details
2 - Deposit
3 - Withdraw
4 - Back to menu`, strings.ToUpper(slot.String()))
}

const dangerZoneMenu = `Danger zone: these actions cannot be reversed
1 - Delete your checking account
2 - Delete your savings account
3 - Delete your profile
4 - Go back to menu`

const areYouSure = `Are you sure you want to delete?
This action cannot be undone.
1 - Yes, continue
2 - No, cancel`

// formatBalance renders a balance green when non-negative and red with
// a leading minus sign when negative, the way the original statements
// read.
func formatBalance(balance decimal.Decimal) string {
	if balance.Sign() >= 0 {
		return green("$" + balance.String())
	}
	return red("-$" + balance.Neg().String())
}
