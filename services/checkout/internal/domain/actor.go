package domain

// Actor is the authenticated caller of an operation.
type Actor struct {
	CustomerID uint
	Admin      bool
}

func (a Actor) Owns(customerID uint) bool {
	return a.Admin || (a.CustomerID != 0 && a.CustomerID == customerID)
}
