package order

// Step is one stage of the customer-facing progress indicator.
type Step struct {
	Status    Status
	Label     string
	Completed bool
	Active    bool
}

// Progress is the tracking view's rendering of an order status.
// Cancelled orders are flagged and show no completed steps.
type Progress struct {
	Steps     []Step
	Cancelled bool
}

var progressSteps = []struct {
	status Status
	label  string
}{
	{Pending, "Order Placed"},
	{Accepted, "Accepted"},
	{DriverAssigned, "Driver Assigned"},
	{PickedUp, "Picked Up"},
	{OutForDelivery, "Out for Delivery"},
	{Delivered, "Delivered"},
}

// NewProgress builds the six-step indicator. Step i is completed when i is at or
// before the current status and active when it is the current status.
//
// Example:
//
//	p := order.NewProgress(order.OutForDelivery)
//	// steps 0..4 completed, step 4 active, step 5 pending
func NewProgress(current Status) Progress {
	idx := -1
	for i, s := range progressSteps {
		if s.status == current {
			idx = i
			break
		}
	}

	steps := make([]Step, len(progressSteps))
	for i, s := range progressSteps {
		steps[i] = Step{
			Status:    s.status,
			Label:     s.label,
			Completed: idx >= 0 && i <= idx,
			Active:    i == idx,
		}
	}

	return Progress{Steps: steps, Cancelled: current == Cancelled}
}

// Current returns the active step, if any.
func (p Progress) Current() (Step, bool) {
	for _, s := range p.Steps {
		if s.Active {
			return s, true
		}
	}
	return Step{}, false
}

// CompletedCount returns how many steps are completed.
func (p Progress) CompletedCount() int {
	n := 0
	for _, s := range p.Steps {
		if s.Completed {
			n++
		}
	}
	return n
}
