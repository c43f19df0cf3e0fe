package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// execIface is the command surface the REPL dispatches to.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	List(ctx context.Context) error
	Show(ctx context.Context, arg string) error
	Search(ctx context.Context, text string) error
	Sort(ctx context.Context, arg string) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, arg string) error
	Copy(ctx context.Context, arg string) error
	Delete(ctx context.Context, arg string) error
	Export(ctx context.Context) error
}

const (
	helpSignedOut = "Available commands: register, login, exit"
	helpSignedIn  = "Available commands: (l)ist, show N, search [text], sort [latest|oldest|alphabetical], add, edit N, copy N, delete N, export, logout, exit"
)

// runREPL reads one command per line and dispatches it. It returns on EOF
// or on "exit"/"quit". Handler errors are reported by the handlers.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		fmt.Fprintf(w, "copyit %s> ", statusFn())

		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(w)
			return
		}

		cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
		arg = strings.TrimSpace(arg)
		if cmd == "" {
			continue
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(w, helpSignedIn)
			} else {
				fmt.Fprintln(w, helpSignedOut)
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return

		default:
			if !a.isLoggedIn() {
				if isEntryCommand(cmd) {
					fmt.Fprintln(w, "Please sign in first.")
				} else {
					fmt.Fprintln(w, "Unknown command:", cmd)
				}
				continue
			}
			dispatch(ctx, a, cmd, arg, w)
		}
	}
}

func isEntryCommand(cmd string) bool {
	switch cmd {
	case "logout", "l", "list", "show", "search", "sort", "add", "edit", "copy", "delete", "export":
		return true
	}
	return false
}

func dispatch(ctx context.Context, a execIface, cmd, arg string, w io.Writer) {
	switch cmd {
	case "logout":
		_ = a.Logout(ctx)
	case "l", "list":
		_ = a.List(ctx)
	case "show":
		_ = a.Show(ctx, arg)
	case "search":
		_ = a.Search(ctx, arg)
	case "sort":
		_ = a.Sort(ctx, arg)
	case "add":
		_ = a.Add(ctx)
	case "edit":
		_ = a.Edit(ctx, arg)
	case "copy":
		_ = a.Copy(ctx, arg)
	case "delete":
		_ = a.Delete(ctx, arg)
	case "export":
		_ = a.Export(ctx)
	default:
		fmt.Fprintln(w, "Unknown command:", cmd)
	}
}
