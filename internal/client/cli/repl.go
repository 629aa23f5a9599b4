package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/fittrack/internal/common"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	ListGoals(ctx context.Context) error
	RefreshGoals(ctx context.Context) error
	AddGoal(ctx context.Context) error
	EditGoal(ctx context.Context, args []string) error
	DeleteGoal(ctx context.Context, args []string) error
	TrackProgress(ctx context.Context, args []string) error
	ShareGoal(ctx context.Context, args []string) error
	Summary(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the fittrack CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command and the rest as its arguments, and dispatches to methods on 'a'.
// The loop exits on scanner EOF or when the user types "exit" or "quit".
//
// Prompt & Commands
//
//	Not logged in:
//	  - help                   show available commands
//	  - register               create an account
//	  - login                  authenticate
//	  - exit | quit            leave the program
//
//	Logged in:
//	  - goals | l              list goals
//	  - refresh                re-fetch goals from the server
//	  - addgoal                create a goal
//	  - editgoal <id>          change fields of a goal
//	  - delgoal <id>           delete a goal
//	  - progress <id> <value>  record progress
//	  - share <id>             share a goal
//	  - summary                completed vs total
//	  - whoami                 show the current user
//	  - logout                 log out
//
// Handler errors are printed and the loop carries on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("fittrack %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var err error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: goals (l), refresh, addgoal, editgoal, delgoal, progress, share, summary, whoami, logout, exit")
			} else {
				printlnFn("Available commands: register, login, whoami, exit")
			}

		case "register":
			err = a.Register(ctx)

		case "login":
			err = a.Login(ctx)

		case "whoami":
			err = a.WhoAmI(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		case "logout", "goals", "l", "refresh", "addgoal", "editgoal", "delgoal", "progress", "share", "summary":
			if !a.isLoggedIn() {
				printlnFn("Please login first")
				continue
			}
			err = dispatchLoggedIn(ctx, a, cmd, args)

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printError(err)
		}
	}
}

func dispatchLoggedIn(ctx context.Context, a execIface, cmd string, args []string) error {
	switch cmd {
	case "logout":
		return a.Logout(ctx)
	case "goals", "l":
		return a.ListGoals(ctx)
	case "refresh":
		return a.RefreshGoals(ctx)
	case "addgoal":
		return a.AddGoal(ctx)
	case "editgoal":
		return a.EditGoal(ctx, args)
	case "delgoal":
		return a.DeleteGoal(ctx, args)
	case "progress":
		return a.TrackProgress(ctx, args)
	case "share":
		return a.ShareGoal(ctx, args)
	case "summary":
		return a.Summary(ctx)
	}
	return nil
}

func printError(err error) {
	var appErr common.Error
	if errors.As(err, &appErr) {
		printlnFn("Error:", common.Message(err))
		return
	}
	printlnFn("Error:", err.Error())
}
