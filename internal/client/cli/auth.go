package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/fittrack/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

func (a *App) Register(ctx context.Context) error {
	email, password, err := a.promptCredentials(ctx)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.session.Register(ctx, email, string(password))
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Registered as %s\n", u.Email)
	return a.goals.Refresh(ctx)
}

// Login prompts for credentials, prefilling the email of the last
// successful login.
func (a *App) Login(ctx context.Context) error {
	email, password, err := a.promptCredentials(ctx)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.session.Login(ctx, email, string(password))
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Logged in as %s\n", u.Email)
	return a.goals.Refresh(ctx)
}

func (a *App) promptCredentials(ctx context.Context) (string, []byte, error) {
	last, err := a.store.LastEmail(ctx)
	if err != nil {
		a.logger.Debug(ctx, "could not read last email", "error", err)
	}

	prompt := "Enter email"
	if last != "" {
		prompt = fmt.Sprintf("Enter email [%s]", last)
	}
	email, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return "", nil, err
	}
	if email == "" {
		email = last
	}

	password, err := getPassword(a.out)
	if err != nil {
		return "", nil, err
	}
	return email, password, nil
}

// Logout always leaves the CLI logged out, even if the server call failed.
func (a *App) Logout(ctx context.Context) error {
	err := a.session.Logout(ctx)
	a.goals.Reset()
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	u := a.session.CurrentUser()
	if u == nil {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}
	fmt.Fprintf(a.out, "%s <%s> id=%s\n", u.Name, u.Email, u.ID)
	return nil
}
