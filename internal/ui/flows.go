package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"xavier-bank/internal/domain"
	apperrors "xavier-bank/internal/errors"
	"xavier-bank/internal/identity"
	"xavier-bank/internal/service"
)

// registerFlow walks the registration questions, re-prompting on
// recoverable validation failures, and hands the collected answers to
// the service. An underage answer aborts the whole flow.
func (u *UI) registerFlow() {
	var answers service.RegistrationAnswers
	var err error

	answers.FullName, err = u.ask("Enter your full name: ", func(in string) error {
		_, _, nameErr := identity.ParseFullName(in)
		return nameErr
	})
	if err != nil {
		return
	}

	answers.Age, err = u.ask("Enter your age: ", func(in string) error {
		_, underage, ageErr := identity.ParseAge(in)
		if ageErr != nil {
			return ageErr
		}
		if underage {
			return apperrors.ErrUnderage
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrUnderage) {
			fmt.Fprintln(u.out, "You need to be 18 or older to create an account")
			fmt.Fprintln(u.out)
		}
		return
	}

	existing := u.svc.ExistingCPFs()
	answers.CPF, err = u.ask("Enter your CPF: ", func(in string) error {
		return identity.ValidateCPF(existing, in)
	})
	if err != nil {
		return
	}

	answers.PIN, err = u.ask("Create a 4-digit PIN: ", identity.ValidatePIN)
	if err != nil {
		return
	}

	answers.PINRepeat, err = u.ask("Repeat your 4-digit PIN: ", func(in string) error {
		if !identity.ConfirmPIN(answers.PIN, in) {
			return apperrors.ErrInvalidInput
		}
		return nil
	})
	if err != nil {
		return
	}

	if _, err := u.svc.Register(answers); err != nil {
		u.report(err)
		return
	}
	fmt.Fprintln(u.out, "\nAccount created with success. Log in your account in the menu.")
	fmt.Fprintln(u.out)
}

// loginFlow runs the id/PIN state machine and, on success, enters the
// customer menu. Lockout returns to the top-level menu.
func (u *UI) loginFlow() {
	login := u.svc.BeginLogin()

	_, err := u.ask("Enter your CPF: ", login.SubmitID)
	if err != nil {
		return
	}

	var customer *domain.Customer
	for {
		pin, ok := u.prompt("Enter your 4-digit PIN: ")
		if !ok {
			return
		}
		customer, err = login.SubmitPIN(pin)
		if err == nil {
			break
		}
		u.report(err)
		if login.State() == service.LockedOut {
			return
		}
	}

	fmt.Fprintln(u.out, "Logged in with success!")
	fmt.Fprintln(u.out)
	u.customerMenu(customer, login.Position())
}

// customerMenu is the post-login hub. It keeps the customer in memory
// and persists after every mutation.
func (u *UI) customerMenu(customer *domain.Customer, position int) {
	for {
		fmt.Fprintln(u.out, loginMenu(customer.Identity.FirstName))
		choice, ok := u.prompt(promptChoice)
		if !ok {
			return
		}
		fmt.Fprintln(u.out)

		switch choice {
		case "1":
			u.slotMenu(customer, domain.SlotChecking)
		case "2":
			u.slotMenu(customer, domain.SlotSavings)
		case "3":
			fmt.Fprintln(u.out, "Logged out.")
			fmt.Fprintln(u.out)
			return
		case "4":
			if deleted := u.dangerZone(customer, position); deleted {
				return
			}
		default:
			fmt.Fprint(u.out, invalidInput)
		}
	}
}

// slotMenu manages one account slot: offers to open it when empty,
// otherwise shows the details/deposit/withdraw menu.
func (u *UI) slotMenu(customer *domain.Customer, slot domain.AccountSlot) {
	if customer.Account(slot) == nil {
		u.offerToOpen(customer, slot)
		return
	}

	account := customer.Account(slot)
	for {
		fmt.Fprintln(u.out, accountMenu(slot))
		choice, ok := u.prompt(promptChoice)
		if !ok {
			return
		}
		fmt.Fprintln(u.out)

		switch choice {
		case "1":
			u.printAccountDetails(slot, account)
		case "2":
			u.depositFlow(customer, account)
		case "3":
			u.withdrawFlow(customer, account)
		case "4":
			fmt.Fprintln(u.out, "Returning to menu")
			fmt.Fprintln(u.out)
			return
		default:
			fmt.Fprint(u.out, invalidInput)
		}
	}
}

func (u *UI) offerToOpen(customer *domain.Customer, slot domain.AccountSlot) {
	for {
		fmt.Fprintln(u.out, askCreateAccount(slot))
		choice, ok := u.prompt(promptChoice)
		if !ok {
			return
		}
		fmt.Fprintln(u.out)

		switch choice {
		case "1":
			if _, err := customer.OpenAccount(slot); err != nil {
				u.report(err)
				return
			}
			if err := u.svc.Persist(customer); err != nil {
				u.report(err)
				return
			}
			fmt.Fprintf(u.out, "Your %s account was created with success!\n\n", slot)
			return
		case "2":
			fmt.Fprintln(u.out, "Returning to menu")
			fmt.Fprintln(u.out)
			return
		default:
			fmt.Fprint(u.out, invalidInput)
		}
	}
}

func (u *UI) printAccountDetails(slot domain.AccountSlot, account *domain.Account) {
	fmt.Fprintf(u.out, "%s account details:\n", capitalize(slot.String()))
	fmt.Fprintf(u.out, "Account number: %s\n", account.FullAccount)
	fmt.Fprintf(u.out, "Account branch: %d\n", account.Branch)
	fmt.Fprintf(u.out, "Balance: %s\n", formatBalance(account.Balance))
	if account.Kind == domain.KindOverdraft {
		fmt.Fprintf(u.out, "Overdraft limit: %s\n", red("$"+account.OverdraftLimit.String()))
	}
	fmt.Fprintln(u.out)
}

// promptAmount re-prompts until the operator types a positive decimal.
func (u *UI) promptAmount(question string, verb string) (decimal.Decimal, bool) {
	for {
		answer, ok := u.prompt(question)
		if !ok {
			return decimal.Zero, false
		}
		amount, err := decimal.NewFromString(answer)
		if err != nil {
			fmt.Fprint(u.out, invalidInput)
			continue
		}
		if !amount.IsPositive() {
			fmt.Fprintf(u.out, "Your %s must be above $0\n\n", verb)
			continue
		}
		return amount, true
	}
}

func (u *UI) depositFlow(customer *domain.Customer, account *domain.Account) {
	amount, ok := u.promptAmount("Type how much you want to deposit: ", "deposit")
	if !ok {
		return
	}
	if err := account.Deposit(amount); err != nil {
		u.report(err)
		return
	}
	if err := u.svc.Persist(customer); err != nil {
		u.report(err)
		return
	}
	fmt.Fprintf(u.out, "Operation processed.\nYour balance is now %s\n\n", formatBalance(account.Balance))
}

func (u *UI) withdrawFlow(customer *domain.Customer, account *domain.Account) {
	amount, ok := u.promptAmount("Type how much you want to withdraw: ", "withdraw")
	if !ok {
		return
	}

	result, err := account.Withdraw(amount)
	if err != nil {
		fmt.Fprintln(u.out, "Operation not processed.")
		u.report(err)
		return
	}

	if result.Outcome == domain.OverdraftConfirmationRequired {
		if !u.confirmOverdraft(result.Projected) {
			fmt.Fprintln(u.out, "Operation canceled.")
			fmt.Fprintln(u.out)
			return
		}
		if err := account.ConfirmOverdraftWithdrawal(amount); err != nil {
			fmt.Fprintln(u.out, "Operation not processed.")
			u.report(err)
			return
		}
	}

	if err := u.svc.Persist(customer); err != nil {
		u.report(err)
		return
	}
	fmt.Fprintf(u.out, "Operation processed.\nYour balance is now %s\n\n", formatBalance(account.Balance))
}

func (u *UI) confirmOverdraft(projected decimal.Decimal) bool {
	for {
		fmt.Fprintf(u.out, `You do not have sufficient funds to withdraw this amount.
You can use your overdraft to get a loan:
Your balance will be: %s
Do you wish to use the overdraft?
1 - Yes
2 - No`, formatBalance(projected))
		choice, ok := u.prompt(promptChoice)
		if !ok {
			return false
		}
		fmt.Fprintln(u.out)

		switch choice {
		case "1":
			return true
		case "2":
			return false
		default:
			fmt.Fprint(u.out, invalidInput)
		}
	}
}

// dangerZone hosts the destructive actions. It reports true when the
// profile itself was deleted, which ends the session.
func (u *UI) dangerZone(customer *domain.Customer, position int) bool {
	for {
		fmt.Fprintln(u.out, dangerZoneMenu)
		choice, ok := u.prompt(promptChoice)
		if !ok {
			return false
		}
		fmt.Fprintln(u.out)

		switch choice {
		case "1", "2":
			slot := domain.SlotChecking
			if choice == "2" {
				slot = domain.SlotSavings
			}
			if !u.confirmDeletion() {
				continue
			}
			customer.CloseAccount(slot)
			if err := u.svc.Persist(customer); err != nil {
				u.report(err)
				return false
			}
			fmt.Fprintf(u.out, "Your %s account was deleted.\n\n", slot)
		case "3":
			if !u.confirmDeletion() {
				continue
			}
			if err := u.svc.DeleteCustomer(position); err != nil {
				u.report(err)
				return false
			}
			fmt.Fprintln(u.out, "Your profile was deleted.")
			fmt.Fprintln(u.out)
			return true
		case "4":
			fmt.Fprintln(u.out, "Returning to menu")
			fmt.Fprintln(u.out)
			return false
		default:
			fmt.Fprint(u.out, invalidInput)
		}
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func (u *UI) confirmDeletion() bool {
	for {
		fmt.Fprintln(u.out, areYouSure)
		choice, ok := u.prompt(promptChoice)
		if !ok {
			return false
		}
		fmt.Fprintln(u.out)

		switch choice {
		case "1":
			return true
		case "2":
			fmt.Fprintln(u.out, "Deletion canceled.")
			fmt.Fprintln(u.out)
			return false
		default:
			fmt.Fprint(u.out, invalidInput)
		}
	}
}
