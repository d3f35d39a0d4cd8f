package queries

import (
	"context"
	"errors"
	"fmt"
	"time"

	"medex/internal/core/domain/model/driver"
	"medex/internal/core/domain/model/order"
	"medex/internal/core/domain/model/vendor"
	"medex/internal/core/ports"
	"medex/internal/pkg/errs"
	"medex/internal/pkg/guard"
)

var ErrGetVendorDashboardQueryIsNotConstructed = errors.New(
	"GetVendorDashboardQuery must be created via NewGetVendorDashboardQuery constructor",
)

// GetVendorDashboardQuery loads the vendor owned by the signed-in user together
// with its orders, drivers and stat cards.
type GetVendorDashboardQuery struct {
	userID int64

	guard guard.ConstructorGuard
}

func NewGetVendorDashboardQuery(userID int64) (GetVendorDashboardQuery, error) {
	if userID <= 0 {
		return GetVendorDashboardQuery{}, errs.NewValueIsRequiredError("user id")
	}
	return GetVendorDashboardQuery{userID: userID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetVendorDashboardQuery) Validate() error {
	return q.guard.Validate(ErrGetVendorDashboardQueryIsNotConstructed)
}

func (q GetVendorDashboardQuery) UserID() int64 {
	return q.userID
}

// VendorOrderView is an order with the actions the vendor may take on it.
type VendorOrderView struct {
	Order     *order.Order
	Actions   []order.Action
	CanAssign bool
}

// VendorStats are the dashboard stat cards.
type VendorStats struct {
	TotalOrders    int
	ActiveDrivers  int
	CompletedToday int
}

type VendorDashboard struct {
	Vendor  vendor.Vendor
	Stats   VendorStats
	Orders  []VendorOrderView
	Drivers []*driver.Driver
}

type GetVendorDashboardQueryHandler struct {
	vendors ports.VendorAPI
	orders  ports.OrderAPI
	now     func() time.Time
}

// NewGetVendorDashboardQueryHandler uses now to decide what "today" is; nil means time.Now.
func NewGetVendorDashboardQueryHandler(
	vendors ports.VendorAPI,
	orders ports.OrderAPI,
	now func() time.Time,
) GetVendorDashboardQueryHandler {
	if now == nil {
		now = time.Now
	}
	return GetVendorDashboardQueryHandler{vendors: vendors, orders: orders, now: now}
}

func (h GetVendorDashboardQueryHandler) Handle(ctx context.Context, query GetVendorDashboardQuery) (VendorDashboard, error) {
	if err := query.Validate(); err != nil {
		return VendorDashboard{}, err
	}

	vendors, err := h.vendors.ListVendors(ctx)
	if err != nil {
		return VendorDashboard{}, fmt.Errorf("list vendors: %w", err)
	}
	profile, ok := vendor.FindByUser(vendors, query.UserID())
	if !ok {
		return VendorDashboard{}, errs.NewObjectNotFoundError("vendor for user", query.UserID())
	}

	orders, err := h.orders.ListOrders(ctx, ports.OrderFilter{VendorID: profile.ID})
	if err != nil {
		return VendorDashboard{}, fmt.Errorf("list orders of vendor %d: %w", profile.ID, err)
	}
	drivers, err := h.vendors.VendorDrivers(ctx, profile.ID)
	if err != nil {
		return VendorDashboard{}, fmt.Errorf("list drivers of vendor %d: %w", profile.ID, err)
	}

	dashboard := VendorDashboard{
		Vendor:  profile,
		Stats:   DashboardStats(orders, drivers, h.now()),
		Orders:  make([]VendorOrderView, 0, len(orders)),
		Drivers: drivers,
	}
	for _, o := range orders {
		dashboard.Orders = append(dashboard.Orders, VendorOrderView{
			Order:     o,
			Actions:   order.VendorActions(o.Status()),
			CanAssign: o.Status().CanAssignDriver(),
		})
	}
	return dashboard, nil
}

// DashboardStats computes the stat cards: every order, drivers not offline, and orders
// delivered that were created on today's date.
func DashboardStats(orders []*order.Order, drivers []*driver.Driver, today time.Time) VendorStats {
	stats := VendorStats{
		TotalOrders:   len(orders),
		ActiveDrivers: driver.CountOnline(drivers),
	}
	for _, o := range orders {
		if o.Status() == order.Delivered && o.CreatedOn(today) {
			stats.CompletedToday++
		}
	}
	return stats
}
