package workflow

// Order lifecycle statuses. An order is created as StatusReceived and
// moves along the edges of the transition table below until it reaches
// a terminal status.
type Status string

const (
	StatusReceived       Status = "received"
	StatusConfirmed      Status = "confirmed"
	StatusBaking         Status = "baking"
	StatusDecorating     Status = "decorating"
	StatusQualityCheck   Status = "quality_check"
	StatusReady          Status = "ready"
	StatusOutForDelivery Status = "out_for_delivery"
	StatusDelivered      Status = "delivered"
	StatusPickedUp       Status = "picked_up"
	StatusCancelled      Status = "cancelled"
	StatusRefunded       Status = "refunded"
)

type FulfillmentType string

const (
	FulfillmentDelivery FulfillmentType = "delivery"
	FulfillmentPickup   FulfillmentType = "pickup"
)

// statusTransitions maps each status to the set of statuses it may move
// to next. Cancelled and refunded have no outgoing edges.
var statusTransitions = map[Status][]Status{
	StatusReceived:       {StatusConfirmed, StatusCancelled},
	StatusConfirmed:      {StatusBaking, StatusCancelled},
	StatusBaking:         {StatusDecorating, StatusQualityCheck, StatusCancelled},
	StatusDecorating:     {StatusQualityCheck, StatusCancelled},
	StatusQualityCheck:   {StatusReady},
	StatusReady:          {StatusOutForDelivery, StatusPickedUp, StatusCancelled},
	StatusOutForDelivery: {StatusDelivered},
	StatusDelivered:      {StatusRefunded},
	StatusPickedUp:       {StatusRefunded},
	StatusCancelled:      {},
	StatusRefunded:       {},
}

// AllStatuses lists every status in lifecycle order.
var AllStatuses = []Status{
	StatusReceived, StatusConfirmed, StatusBaking, StatusDecorating,
	StatusQualityCheck, StatusReady, StatusOutForDelivery,
	StatusDelivered, StatusPickedUp, StatusCancelled, StatusRefunded,
}

var statusLabels = map[Status]string{
	StatusReceived:       "Order Received",
	StatusConfirmed:      "Confirmed",
	StatusBaking:         "Baking",
	StatusDecorating:     "Decorating",
	StatusQualityCheck:   "Quality Check",
	StatusReady:          "Ready",
	StatusOutForDelivery: "Out for Delivery",
	StatusDelivered:      "Delivered",
	StatusPickedUp:       "Picked Up",
	StatusCancelled:      "Cancelled",
	StatusRefunded:       "Refunded",
}

var statusProgress = map[Status]int{
	StatusReceived:       10,
	StatusConfirmed:      20,
	StatusBaking:         40,
	StatusDecorating:     60,
	StatusQualityCheck:   75,
	StatusReady:          85,
	StatusOutForDelivery: 95,
	StatusDelivered:      100,
	StatusPickedUp:       100,
	StatusCancelled:      0,
	StatusRefunded:       0,
}

func IsValidStatus(s Status) bool {
	_, ok := statusTransitions[s]
	return ok
}

// IsTerminal reports whether s has no outgoing transitions.
func IsTerminal(s Status) bool {
	return len(statusTransitions[s]) == 0 && IsValidStatus(s)
}

// CanTransition reports whether from -> to is an edge of the table.
func CanTransition(from, to Status) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// NextStatuses returns the allowed next statuses for s. The returned
// slice is a copy.
func NextStatuses(s Status) []Status {
	next := statusTransitions[s]
	out := make([]Status, len(next))
	copy(out, next)
	return out
}

// ValidateTransition checks from -> to and returns a user-facing reason
// when the transition is not allowed.
func ValidateTransition(from, to Status) (bool, string) {
	if !IsValidStatus(from) {
		return false, "unknown status: " + string(from)
	}
	if !IsValidStatus(to) {
		return false, "unknown status: " + string(to)
	}
	if from == to {
		return false, "order is already " + StatusLabel(from)
	}
	if IsTerminal(from) {
		return false, "order is " + StatusLabel(from) + " and cannot change status"
	}
	if !CanTransition(from, to) {
		return false, "cannot move from " + StatusLabel(from) + " to " + StatusLabel(to)
	}
	return true, ""
}

// CanCancel reports whether an order in status s may still be cancelled.
func CanCancel(s Status) bool {
	return CanTransition(s, StatusCancelled)
}

// StatusLabel returns the display name for s, or the raw value if unknown.
func StatusLabel(s Status) string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// Progress maps a status to a fixed completion percentage for progress
// bars. Cancelled and refunded report 0.
func Progress(s Status) int {
	return statusProgress[s]
}

// EstimatedTimeRemaining returns a canned estimate string for the given
// status and fulfillment type, or "" for terminal and completed states.
func EstimatedTimeRemaining(s Status, fulfillment FulfillmentType) string {
	switch s {
	case StatusReceived:
		return "We will confirm your order within 2 hours"
	case StatusConfirmed:
		return "Baking starts on your scheduled day"
	case StatusBaking:
		return "About 2-4 hours of baking left"
	case StatusDecorating:
		return "About 1-2 hours of finishing left"
	case StatusQualityCheck:
		return "Final check, ready within the hour"
	case StatusReady:
		if fulfillment == FulfillmentDelivery {
			return "Awaiting courier pickup"
		}
		return "Ready for pickup during opening hours"
	case StatusOutForDelivery:
		return "On its way, typically 30-60 minutes"
	}
	return ""
}
