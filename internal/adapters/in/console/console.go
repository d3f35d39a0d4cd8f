// Package console holds the line-oriented front ends of the MedEx command line
// tools: the driver console, the vendor dashboard and the public tracker.
//
// Each console reads one command per line and writes plain text. They keep no
// state of their own beyond the last listing, so every action refetches from
// the backend.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"medex/internal/adapters/out/medexapi"
)

var (
	// ErrQuit ends a console loop without logging out.
	ErrQuit = errors.New("quit")

	ErrRoleNotAllowed = errors.New("account role not allowed")
)

type authenticator interface {
	Login(ctx context.Context, email, password string) (medexapi.User, error)
	Logout()
	Claims() (medexapi.Claims, error)
	Me(ctx context.Context) (medexapi.User, error)
}

// requireRole checks the role carried by the fresh access token.
func requireRole(auth authenticator, console string, allowed ...string) error {
	claims, err := auth.Claims()
	if err != nil {
		return fmt.Errorf("read access token: %w", err)
	}
	if !slices.Contains(allowed, claims.Role) {
		return fmt.Errorf("%w: %q accounts cannot use the %s console", ErrRoleNotAllowed, claims.Role, console)
	}
	return nil
}

// showAccount prints the account as the backend sees it and when the access
// token runs out. Requests after that refresh it.
func showAccount(ctx context.Context, auth authenticator, out io.Writer) error {
	user, err := auth.Me(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s <%s>  role %s\n", user.FullName, user.Email, user.Role)
	printTokenExpiry(auth, out)
	return nil
}

func printTokenExpiry(auth authenticator, out io.Writer) {
	claims, err := auth.Claims()
	if err != nil || claims.ExpiresAt.IsZero() {
		return
	}
	fmt.Fprintf(out, "access token valid until %s\n", claims.ExpiresAt.Format("2006-01-02 15:04 MST"))
}

type handlerFunc func(ctx context.Context, args []string) error

// loop reads commands from in until EOF, ctx cancellation or a handler returns
// ErrQuit. Handler errors other than ErrQuit are printed and the loop goes on.
func loop(ctx context.Context, in io.Reader, out io.Writer, prompt string, commands map[string]handlerFunc) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, prompt)

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return err
			}
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		handler, ok := commands[strings.ToLower(fields[0])]
		if !ok {
			fmt.Fprintf(out, "unknown command %q, try help\n", fields[0])
			continue
		}

		if err := handler(ctx, fields[1:]); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			fmt.Fprintf(out, "error: %v\n", err)
		}
	}
}

// pick resolves a 1-based listing index.
func pick(args []string, size int) (int, error) {
	if len(args) == 0 {
		return 0, errors.New("which one? give the number from the last listing")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > size {
		return 0, fmt.Errorf("no entry %q in the last listing", args[0])
	}
	return n - 1, nil
}
