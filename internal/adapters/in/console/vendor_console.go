package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"medex/internal/core/application/usecases/commands"
	"medex/internal/core/application/usecases/queries"
	"medex/internal/core/domain/model/order"
	"medex/internal/core/ports"
)

type vendorDashboardQueryHandler interface {
	Handle(ctx context.Context, query queries.GetVendorDashboardQuery) (queries.VendorDashboard, error)
}

type assignDriverCommandHandler interface {
	Handle(ctx context.Context, cmd commands.AssignDriverCommand) (int64, error)
}

type createOrderCommandHandler interface {
	Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
}

// VendorConsole is the vendor dashboard: stat cards, the order list with its
// actions, driver assignment and manual order creation.
type VendorConsole struct {
	auth        authenticator
	dashboardQ  vendorDashboardQueryHandler
	status      changeOrderStatusCommandHandler
	assign      assignDriverCommandHandler
	createOrder createOrderCommandHandler
	out         io.Writer
	logger      *slog.Logger

	userID    int64
	dashboard queries.VendorDashboard
}

func NewVendorConsole(
	auth authenticator,
	dashboardQ vendorDashboardQueryHandler,
	status changeOrderStatusCommandHandler,
	assign assignDriverCommandHandler,
	createOrder createOrderCommandHandler,
	out io.Writer,
	logger *slog.Logger,
) *VendorConsole {
	return &VendorConsole{
		auth:        auth,
		dashboardQ:  dashboardQ,
		status:      status,
		assign:      assign,
		createOrder: createOrder,
		out:         out,
		logger:      logger.With("component", "vendor_console"),
	}
}

// SignIn logs in and loads the dashboard of the vendor owned by the user.
func (c *VendorConsole) SignIn(ctx context.Context, email, password string) error {
	user, err := c.auth.Login(ctx, email, password)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if err = requireRole(c.auth, "vendor", "vendor", "admin"); err != nil {
		c.auth.Logout()
		return err
	}
	c.userID = user.ID

	if err = c.refresh(ctx); err != nil {
		c.auth.Logout()
		c.userID = 0
		return fmt.Errorf("load vendor dashboard: %w", err)
	}

	fmt.Fprintf(c.out, "Signed in to %s\n", c.dashboard.Vendor.BusinessName)
	return nil
}

// Run serves commands read from in until quit, logout or EOF.
func (c *VendorConsole) Run(ctx context.Context, in io.Reader) error {
	if c.userID == 0 {
		return errors.New("sign in first")
	}

	return loop(ctx, in, c.out, "vendor> ", map[string]handlerFunc{
		"help":    c.help,
		"dash":    c.showDashboard,
		"account": c.account,
		"accept":  c.transition(order.Accepted),
		"cancel":  c.transition(order.Cancelled),
		"assign":  c.assignDriver,
		"create":  c.create,
		"logout":  c.logout,
		"quit":    func(context.Context, []string) error { return ErrQuit },
	})
}

func (c *VendorConsole) help(context.Context, []string) error {
	fmt.Fprintln(c.out, "dash                    refresh stats, orders and drivers")
	fmt.Fprintln(c.out, "account                 show your account and session")
	fmt.Fprintln(c.out, "accept <n>              accept pending order n")
	fmt.Fprintln(c.out, "cancel <n>              cancel order n")
	fmt.Fprintln(c.out, "assign <n> [driver_id]  assign a driver, or the suggested one")
	fmt.Fprintln(c.out, "create name | phone | address | item xQTY @PRICE, ... | fee")
	fmt.Fprintln(c.out, "logout                  sign out")
	return nil
}

func (c *VendorConsole) account(ctx context.Context, _ []string) error {
	return showAccount(ctx, c.auth, c.out)
}

func (c *VendorConsole) refresh(ctx context.Context) error {
	query, err := queries.NewGetVendorDashboardQuery(c.userID)
	if err != nil {
		return err
	}
	dashboard, err := c.dashboardQ.Handle(ctx, query)
	if err != nil {
		return err
	}
	c.dashboard = dashboard
	return nil
}

func (c *VendorConsole) showDashboard(ctx context.Context, _ []string) error {
	if err := c.refresh(ctx); err != nil {
		return err
	}

	d := c.dashboard
	fmt.Fprintf(c.out, "%s\n", d.Vendor.BusinessName)
	fmt.Fprintf(c.out, "total orders %d | active drivers %d | completed today %d\n",
		d.Stats.TotalOrders, d.Stats.ActiveDrivers, d.Stats.CompletedToday)

	for i, v := range d.Orders {
		o := v.Order
		labels := make([]string, 0, len(v.Actions)+1)
		for _, a := range v.Actions {
			labels = append(labels, a.Label)
		}
		if v.CanAssign {
			labels = append(labels, "Assign Driver")
		}
		fmt.Fprintf(c.out, "[%d] %s  %-16s  %s  %s\n", i+1, o.Number(), o.Status().Label(), o.CustomerName(),
			strings.Join(labels, ", "))
	}

	if len(d.Drivers) > 0 {
		fmt.Fprintln(c.out, "drivers:")
	}
	for _, drv := range d.Drivers {
		fmt.Fprintf(c.out, "  #%d %s (%s)\n", drv.ID(), drv.FullName(), drv.Status())
	}
	return nil
}

func (c *VendorConsole) listedOrder(args []string) (*order.Order, error) {
	i, err := pick(args, len(c.dashboard.Orders))
	if err != nil {
		return nil, err
	}
	return c.dashboard.Orders[i].Order, nil
}

func (c *VendorConsole) transition(next order.Status) handlerFunc {
	return func(ctx context.Context, args []string) error {
		o, err := c.listedOrder(args)
		if err != nil {
			return err
		}

		cmd, err := commands.NewChangeOrderStatusCommand(o.ID(), o.Status(), next, order.ActorVendor)
		if err != nil {
			return err
		}
		if err = c.status.Handle(ctx, cmd); err != nil {
			return err
		}

		fmt.Fprintf(c.out, "%s is now %s\n", o.Number(), next.Label())
		return c.refresh(ctx)
	}
}

func (c *VendorConsole) assignDriver(ctx context.Context, args []string) error {
	o, err := c.listedOrder(args)
	if err != nil {
		return err
	}

	var driverID int64
	if len(args) > 1 {
		driverID, err = strconv.ParseInt(args[1], 10, 64)
		if err != nil || driverID <= 0 {
			return fmt.Errorf("invalid driver id %q", args[1])
		}
	}

	cmd, err := commands.NewAssignDriverCommand(o, driverID)
	if err != nil {
		return err
	}
	assigned, err := c.assign.Handle(ctx, cmd)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "Driver #%d assigned to %s\n", assigned, o.Number())
	return c.refresh(ctx)
}

func (c *VendorConsole) create(ctx context.Context, args []string) error {
	in, err := parseNewOrder(strings.Join(args, " "))
	if err != nil {
		return err
	}
	in.VendorID = c.dashboard.Vendor.ID
	in.PickupAddress = c.dashboard.Vendor.Address

	cmd, err := commands.NewCreateOrderCommand(in)
	if err != nil {
		return err
	}
	created, err := c.createOrder.Handle(ctx, cmd)
	if err != nil {
		return err
	}

	c.logger.InfoContext(ctx, "Order created", "order_id", created.ID(), "number", created.Number())
	fmt.Fprintf(c.out, "Created %s, tracking token %s\n", created.Number(), created.TrackingToken())
	return c.refresh(ctx)
}

func (c *VendorConsole) logout(context.Context, []string) error {
	c.auth.Logout()
	c.userID = 0
	c.dashboard = queries.VendorDashboard{}
	fmt.Fprintln(c.out, "Signed out")
	return ErrQuit
}

// parseNewOrder reads "name | phone | address | items | fee"; phone and fee may be blank.
func parseNewOrder(line string) (ports.NewOrder, error) {
	parts := strings.Split(line, "|")
	if len(parts) < 4 {
		return ports.NewOrder{}, errors.New("expected name | phone | address | items [| fee]")
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	items, err := parseItems(parts[3])
	if err != nil {
		return ports.NewOrder{}, err
	}

	in := ports.NewOrder{
		CustomerName:    parts[0],
		CustomerPhone:   parts[1],
		DeliveryAddress: parts[2],
		Items:           items,
	}
	if len(parts) > 4 && parts[4] != "" {
		if in.DeliveryFee, err = strconv.ParseFloat(parts[4], 64); err != nil {
			return ports.NewOrder{}, fmt.Errorf("invalid delivery fee %q", parts[4])
		}
	}
	return in, nil
}

// parseItems reads "Insulin pen x1 @42, Gauze x2 @3.5". Quantity defaults to 1
// and price to 0.
func parseItems(raw string) ([]order.Item, error) {
	var items []order.Item
	for _, entry := range strings.Split(raw, ",") {
		fields := strings.Fields(entry)
		if len(fields) == 0 {
			continue
		}

		item := order.Item{Quantity: 1}
		name := make([]string, 0, len(fields))
		for _, f := range fields {
			switch {
			case len(f) > 1 && f[0] == 'x':
				q, err := strconv.Atoi(f[1:])
				if err != nil {
					name = append(name, f)
					continue
				}
				item.Quantity = q
			case len(f) > 1 && f[0] == '@':
				p, err := strconv.ParseFloat(f[1:], 64)
				if err != nil {
					return nil, fmt.Errorf("invalid price %q", f)
				}
				item.Price = p
			default:
				name = append(name, f)
			}
		}
		item.Name = strings.Join(name, " ")
		items = append(items, item)
	}
	if len(items) == 0 {
		return nil, errors.New("at least one item is required")
	}
	return items, nil
}
