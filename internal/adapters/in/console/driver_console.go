package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"medex/internal/core/application/usecases/commands"
	"medex/internal/core/application/usecases/queries"
	"medex/internal/core/domain/model/driver"
	"medex/internal/core/domain/model/vendor"
)

type driverProfileQueryHandler interface {
	Handle(ctx context.Context, query queries.GetDriverProfileQuery) (*driver.Driver, error)
}

type vendorQueryHandler interface {
	Handle(ctx context.Context, query queries.GetVendorQuery) (vendor.Vendor, error)
}

type driverOrdersQueryHandler interface {
	Handle(ctx context.Context, query queries.GetDriverOrdersQuery) ([]queries.DriverOrderView, error)
}

type changeOrderStatusCommandHandler interface {
	Handle(ctx context.Context, cmd commands.ChangeOrderStatusCommand) error
}

type toggleDriverPresenceCommandHandler interface {
	Handle(ctx context.Context, cmd commands.ToggleDriverPresenceCommand) (driver.Status, error)
}

// DriverConsole is the driver's view: profile, active orders with their single
// next action, and the online toggle that drives location reporting.
type DriverConsole struct {
	auth      authenticator
	profileQ  driverProfileQueryHandler
	vendorQ   vendorQueryHandler
	ordersQ   driverOrdersQueryHandler
	status    changeOrderStatusCommandHandler
	presence  toggleDriverPresenceCommandHandler
	reporting commands.LocationReporting
	out       io.Writer
	logger    *slog.Logger

	profile  *driver.Driver
	employer string
	listed   []queries.DriverOrderView
}

func NewDriverConsole(
	auth authenticator,
	profileQ driverProfileQueryHandler,
	vendorQ vendorQueryHandler,
	ordersQ driverOrdersQueryHandler,
	status changeOrderStatusCommandHandler,
	presence toggleDriverPresenceCommandHandler,
	reporting commands.LocationReporting,
	out io.Writer,
	logger *slog.Logger,
) *DriverConsole {
	return &DriverConsole{
		auth:      auth,
		profileQ:  profileQ,
		vendorQ:   vendorQ,
		ordersQ:   ordersQ,
		status:    status,
		presence:  presence,
		reporting: reporting,
		out:       out,
		logger:    logger.With("component", "driver_console"),
	}
}

// SignIn logs in and loads the driver record that belongs to the user. Only
// driver accounts are let in. Failing to load the vendor's name is not fatal.
func (c *DriverConsole) SignIn(ctx context.Context, email, password string) error {
	user, err := c.auth.Login(ctx, email, password)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if err = requireRole(c.auth, "driver", "driver"); err != nil {
		c.auth.Logout()
		return err
	}

	query, err := queries.NewGetDriverProfileQuery(user.ID)
	if err != nil {
		return err
	}
	profile, err := c.profileQ.Handle(ctx, query)
	if err != nil {
		c.auth.Logout()
		return fmt.Errorf("load driver profile: %w", err)
	}

	c.profile = profile
	c.employer = c.vendorName(ctx, profile.VendorID())
	fmt.Fprintf(c.out, "Signed in as %s (%s)\n", profile.FullName(), profile.Status())
	return nil
}

func (c *DriverConsole) vendorName(ctx context.Context, vendorID int64) string {
	query, err := queries.NewGetVendorQuery(vendorID)
	if err != nil {
		return ""
	}
	v, err := c.vendorQ.Handle(ctx, query)
	if err != nil {
		c.logger.WarnContext(ctx, "Failed to load vendor", "vendor_id", vendorID, "error", err)
		return ""
	}
	return v.BusinessName
}

// Profile is the loaded driver record, nil before SignIn.
func (c *DriverConsole) Profile() *driver.Driver {
	return c.profile
}

// Run serves commands read from in until quit, logout or EOF.
func (c *DriverConsole) Run(ctx context.Context, in io.Reader) error {
	if c.profile == nil {
		return errors.New("sign in first")
	}

	return loop(ctx, in, c.out, "driver> ", map[string]handlerFunc{
		"help":    c.help,
		"profile": c.showProfile,
		"account": c.account,
		"orders":  c.orders,
		"next":    c.next,
		"toggle":  c.toggle,
		"logout":  c.logout,
		"quit":    func(context.Context, []string) error { return ErrQuit },
	})
}

func (c *DriverConsole) help(context.Context, []string) error {
	fmt.Fprintln(c.out, "profile          show your driver record")
	fmt.Fprintln(c.out, "account          show your account and session")
	fmt.Fprintln(c.out, "orders           list active orders")
	fmt.Fprintln(c.out, "next <n>         apply the next action to order n")
	fmt.Fprintln(c.out, "toggle           go online or offline")
	fmt.Fprintln(c.out, "logout           stop reporting and sign out")
	fmt.Fprintln(c.out, "quit             leave without signing out")
	return nil
}

func (c *DriverConsole) showProfile(context.Context, []string) error {
	p := c.profile
	fmt.Fprintf(c.out, "%s  phone %s  status %s\n", p.FullName(), p.Phone(), p.Status())
	if c.employer != "" {
		fmt.Fprintf(c.out, "driving for %s\n", c.employer)
	}
	if at, when := p.LastLocation(); at != nil && when != nil {
		fmt.Fprintf(c.out, "last location %s at %s\n", at, when.Format("15:04:05"))
	}
	printTokenExpiry(c.auth, c.out)
	return nil
}

func (c *DriverConsole) account(ctx context.Context, _ []string) error {
	return showAccount(ctx, c.auth, c.out)
}

// Orders fetches and prints the active orders; the listing numbers feed next.
func (c *DriverConsole) orders(ctx context.Context, _ []string) error {
	query, err := queries.NewGetDriverOrdersQuery(c.profile.ID())
	if err != nil {
		return err
	}
	views, err := c.ordersQ.Handle(ctx, query)
	if err != nil {
		return err
	}

	c.listed = views
	if len(views) == 0 {
		fmt.Fprintln(c.out, "No active orders")
		return nil
	}
	for i, v := range views {
		o := v.Order
		fmt.Fprintf(c.out, "[%d] %s  %-16s  %s -> %s\n    [%s]\n",
			i+1, o.Number(), o.Status().Label(), o.CustomerName(), o.DeliveryAddress(), v.Action.Label)
	}
	return nil
}

// next applies the listed order's action and refetches. A rejected change
// leaves the listing as it was.
func (c *DriverConsole) next(ctx context.Context, args []string) error {
	i, err := pick(args, len(c.listed))
	if err != nil {
		return err
	}

	o := c.listed[i].Order
	cmd, err := commands.NewDriverActionCommand(o)
	if err != nil {
		return err
	}
	if err = c.status.Handle(ctx, cmd); err != nil {
		return err
	}

	fmt.Fprintf(c.out, "%s is now %s\n", o.Number(), cmd.To().Label())
	return c.orders(ctx, nil)
}

func (c *DriverConsole) toggle(ctx context.Context, _ []string) error {
	status, err := c.presence.Handle(ctx, commands.NewToggleDriverPresenceCommand(c.profile))
	if err != nil {
		return err
	}
	if status.IsOnline() {
		fmt.Fprintln(c.out, "You are online; reporting location")
	} else {
		fmt.Fprintln(c.out, "You are offline")
	}
	return nil
}

func (c *DriverConsole) logout(context.Context, []string) error {
	c.reporting.Stop()
	c.auth.Logout()
	c.profile = nil
	c.employer = ""
	c.listed = nil
	c.logger.Info("Signed out")
	fmt.Fprintln(c.out, "Signed out")
	return ErrQuit
}
