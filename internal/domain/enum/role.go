package enum

// Role is the viewer of a ledger page, derived from the route prefix.
type Role string

const (
	RoleSeller   Role = "seller"
	RoleCustomer Role = "customer"
)

// CanEditPrice reports whether the role may change a customer's milk price.
func (r Role) CanEditPrice() bool {
	return r == RoleSeller
}

func (r Role) String() string {
	return string(r)
}
