package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	ValidateOTP(ctx context.Context) error
	Logout(ctx context.Context) error
	Sync(ctx context.Context) error
	Dashboard(ctx context.Context) error
	Menu(ctx context.Context) error
	Notices(ctx context.Context) error
	CheckIn(ctx context.Context) error
	CheckOut(ctx context.Context) error
	PostOrder(ctx context.Context) error
	UpdateToken(ctx context.Context) error
}

// runREPL starts a read-eval-print loop: it reads a line from the scanner,
// parses the first token as the command and dispatches to methods on 'a'.
// Unknown commands are reported back to the user. The loop exits on scanner
// EOF or when the user types "exit" or "quit".
//
// Errors returned by command handlers are ignored here; handlers log their
// own errors. This keeps the loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("ff> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: (d)ashboard, menu, notices, sync, checkin, checkout, postorder, token, logout, exit")
			} else {
				printlnFn("Available commands: login, otp, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "otp":
			_ = a.ValidateOTP(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "sync":
			_ = a.Sync(ctx)

		case "d", "dashboard":
			_ = a.Dashboard(ctx)

		case "menu":
			_ = a.Menu(ctx)

		case "notices":
			_ = a.Notices(ctx)

		case "checkin":
			_ = a.CheckIn(ctx)

		case "checkout":
			_ = a.CheckOut(ctx)

		case "postorder":
			_ = a.PostOrder(ctx)

		case "token":
			_ = a.UpdateToken(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func (a *App) getStatus() string {
	s := ""
	if a.empID != "" {
		s = a.empID
	}
	if a.isLoggedIn() {
		s += " online"
	}
	return strings.TrimSpace(s)
}

func (a *App) Root(ctx context.Context) {
	fmt.Println("Field Force CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
