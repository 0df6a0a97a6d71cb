// Package ui drives the interactive terminal menus. It owns all
// prompting, re-prompting and rendering; every decision is delegated to
// the service and domain layers as plain request/response calls. Input
// and output streams are injected so the whole loop runs against
// buffers in tests.
package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	apperrors "xavier-bank/internal/errors"
	"xavier-bank/internal/service"
)

type UI struct {
	svc *service.BankService
	in  *bufio.Scanner
	out io.Writer
}

func New(svc *service.BankService, in io.Reader, out io.Writer) *UI {
	return &UI{
		svc: svc,
		in:  bufio.NewScanner(in),
		out: out,
	}
}

// Run executes the top-level menu loop until the operator exits or
// input ends.
func (u *UI) Run() {
	for {
		fmt.Fprintln(u.out, initialMenu)
		choice, ok := u.prompt(promptChoice)
		if !ok {
			return
		}
		fmt.Fprintln(u.out)

		switch choice {
		case "1":
			u.registerFlow()
		case "2":
			u.loginFlow()
		case "3":
			fmt.Fprintln(u.out, "Goodbye!")
			return
		default:
			fmt.Fprint(u.out, invalidInput)
		}
	}
}

// prompt prints the question and reads one input line. ok is false when
// the input stream is exhausted, which ends the program.
func (u *UI) prompt(question string) (string, bool) {
	fmt.Fprint(u.out, question)
	if !u.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(u.in.Text()), true
}

// ask re-prompts until the validator accepts the answer. Recoverable
// failures print their message and loop; anything else aborts the flow
// and is handed back to the caller.
func (u *UI) ask(question string, validate func(string) error) (string, error) {
	for {
		answer, ok := u.prompt(question)
		if !ok {
			return "", io.EOF
		}
		err := validate(answer)
		if err == nil {
			return answer, nil
		}
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Recoverable() && appErr.Code != apperrors.Underage {
			fmt.Fprintf(u.out, "%s\n\n", appErr.Message)
			continue
		}
		return answer, err
	}
}

// report prints the human-readable form of an error.
func (u *UI) report(err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		fmt.Fprintf(u.out, "%s\n\n", appErr.Message)
		return
	}
	fmt.Fprint(u.out, invalidInput)
}
