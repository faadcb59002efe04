package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/storekeeper/internal/common"
	"github.com/google/uuid"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials once. It returns common.ErrorUnauthorized
// when they are rejected. On success the session logger is tagged with a
// fresh session id.
func (a *App) Login(ctx context.Context) error {
	fmt.Fprintln(a.out, "===== Login =====")

	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return inputError(err)
	}

	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return inputError(err)
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Verify(ctx, userName, password); err != nil {
		return err
	}

	a.userName = userName
	a.log = a.log.With("session", uuid.NewString(), "user", userName)
	a.log.Info(ctx, "operator logged in")
	return nil
}

// loginLoop repeats Login until it succeeds. Input errors (EOF included)
// end the loop.
func (a *App) loginLoop(ctx context.Context) error {
	for {
		err := a.Login(ctx)
		switch {
		case err == nil:
			fmt.Fprintln(a.out, "Login successful!")
			return nil
		case errors.Is(err, common.ErrorUnauthorized):
			a.log.Warn(ctx, "login rejected")
			fmt.Fprintln(a.out, "Invalid credentials. Please try again.")
		case isInputError(err):
			return err
		default:
			a.log.Error(ctx, "login failed", "error", err)
			fmt.Fprintf(a.out, "Login failed: %v\n", err)
		}
	}
}

// Logout ends the session.
func (a *App) Logout(ctx context.Context) {
	a.log.Info(ctx, "operator logged out")
	a.userName = ""
	fmt.Fprintln(a.out, "Logged out.")
}
