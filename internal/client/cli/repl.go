package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Status(ctx context.Context) error
	List(ctx context.Context) error
	Next(ctx context.Context) error
	Prev(ctx context.Context) error
	Page(ctx context.Context, n string) error
	Size(ctx context.Context, n string) error
	Show(ctx context.Context, id string) error
	New(ctx context.Context) error
	Edit(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

const (
	helpLoggedOut = "Available commands: login, status, exit"
	helpLoggedIn  = "Available commands: (l)ist, (n)ext, (p)rev, page <n>, size <n>, show <id>, new, edit <id>, delete <id>, status, logout, exit"
)

// runREPL reads commands line by line from r and dispatches them to a.
//
// The first token is the command; commands that take an argument print a
// usage line when it is missing. The loop exits on EOF or when the user
// types "exit" or "quit".
//
// Errors returned by handlers are not printed here; handlers report their
// own outcome through the shared status line.
func runREPL(ctx context.Context, a execIface, statusFn func() string, r *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("syspark %s> ", statusFn()))
		line, err := r.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		arg := func(usage string) (string, bool) {
			if len(args) == 0 {
				printlnFn("Usage:", usage)
				return "", false
			}
			return args[0], true
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "status":
			_ = a.Status(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "n", "next":
			_ = a.Next(ctx)

		case "p", "prev":
			_ = a.Prev(ctx)

		case "page":
			if n, ok := arg("page <n>"); ok {
				_ = a.Page(ctx, n)
			}

		case "size":
			if n, ok := arg("size <n>"); ok {
				_ = a.Size(ctx, n)
			}

		case "show":
			if id, ok := arg("show <id>"); ok {
				_ = a.Show(ctx, id)
			}

		case "new":
			_ = a.New(ctx)

		case "edit":
			if id, ok := arg("edit <id>"); ok {
				_ = a.Edit(ctx, id)
			}

		case "delete":
			if id, ok := arg("delete <id>"); ok {
				_ = a.Delete(ctx, id)
			}

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			return
		}
	}
}
