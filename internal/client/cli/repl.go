package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

type command func(ctx context.Context, args []string) error

// execIface is the command surface the REPL drives. App satisfies it;
// tests provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context, args []string) error
	Login(ctx context.Context, args []string) error
	Logout(ctx context.Context, args []string) error
	WhoAmI(ctx context.Context, args []string) error
	Mkdir(ctx context.Context, args []string) error
	Upload(ctx context.Context, args []string) error
	List(ctx context.Context, args []string) error
	Cd(ctx context.Context, args []string) error
	Info(ctx context.Context, args []string) error
	Publish(ctx context.Context, args []string) error
	Unpublish(ctx context.Context, args []string) error
	Get(ctx context.Context, args []string) error
}

// runREPL reads commands from scanner until EOF or "exit"/"quit". Commands
// that need a session are refused while logged out. Handler errors are
// printed and the loop goes on.
//
//	Not logged in:
//	  register, login, exit
//
//	Logged in:
//	  whoami, mkdir, upload, ls, cd, info, publish, unpublish, get, logout, exit
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	public := map[string]command{
		"register": a.Register,
		"login":    a.Login,
	}
	private := map[string]command{
		"logout":    a.Logout,
		"whoami":    a.WhoAmI,
		"mkdir":     a.Mkdir,
		"upload":    a.Upload,
		"ls":        a.List,
		"list":      a.List,
		"cd":        a.Cd,
		"info":      a.Info,
		"publish":   a.Publish,
		"unpublish": a.Unpublish,
		"get":       a.Get,
	}

	for {
		printlnFn(fmt.Sprintf("fm %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: whoami, mkdir, upload, ls, cd, info, publish, unpublish, get, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		fn, ok := public[cmd]
		if !ok {
			if fn, ok = private[cmd]; ok && !a.isLoggedIn() {
				printlnFn("Please login first")
				continue
			}
		}
		if !ok {
			printlnFn("Unknown command:", cmd)
			continue
		}

		if err := fn(ctx, args); err != nil {
			printlnFn("Error:", err.Error())
		}
	}
}
