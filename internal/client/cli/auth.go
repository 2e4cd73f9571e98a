package cli

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/filesmanager/internal/common"
	"github.com/dmitrijs2005/filesmanager/internal/netx"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for an email and a password and creates the account.
// The password is wiped before returning.
func (a *App) Register(ctx context.Context, _ []string) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.api.Register(ctx, email, password)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Registered %s (%s)\n", u.Email, u.ID)
	return nil
}

// Login exchanges credentials for a session token and stores it in the
// session file so later runs stay logged in.
func (a *App) Login(ctx context.Context, _ []string) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	token, err := a.api.Connect(ctx, email, password)
	if err != nil {
		return err
	}

	a.setToken(token)
	a.path = nil
	if err := a.saveSession(); err != nil {
		fmt.Fprintln(a.out, "Logged in, but the session could not be saved:", err)
		return nil
	}

	fmt.Fprintln(a.out, "Login successful")
	return nil
}

// Logout revokes the session on the server and forgets it locally. A 401
// means the server already dropped it, which is fine.
func (a *App) Logout(ctx context.Context, _ []string) error {
	err := a.api.Disconnect(ctx)
	a.clearSession()
	if err != nil && !netx.IsStatus(err, http.StatusUnauthorized) {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) WhoAmI(ctx context.Context, _ []string) error {
	u, err := a.api.Me(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s (%s)\n", u.Email, u.ID)
	return nil
}
