package domain

// OrderFilter narrows order listings. Empty fields match everything.
type OrderFilter struct {
	CustomerID string
	DriverID   string
	Status     OrderStatus
}

// Match reports whether o satisfies the filter.
func (f OrderFilter) Match(o Order) bool {
	if f.CustomerID != "" && o.CustomerID != f.CustomerID {
		return false
	}
	if f.DriverID != "" && o.DriverID.OrElse("") != f.DriverID && o.DeliveredBy.OrElse("") != f.DriverID {
		return false
	}
	if f.Status != "" && o.Status != f.Status {
		return false
	}
	return true
}

// NotificationFilter narrows notification listings.
type NotificationFilter struct {
	Channel    Channel
	CustomerID string
	DriverID   string
	OrderID    string
	UnreadOnly bool
}

// Match reports whether n satisfies the filter.
func (f NotificationFilter) Match(n NotificationEntry) bool {
	if f.Channel != "" && n.Channel != f.Channel {
		return false
	}
	if f.CustomerID != "" && n.CustomerID != f.CustomerID {
		return false
	}
	if f.DriverID != "" && n.DriverID.OrElse("") != f.DriverID {
		return false
	}
	if f.OrderID != "" && n.OrderID != f.OrderID {
		return false
	}
	if f.UnreadOnly && n.Read {
		return false
	}
	return true
}
