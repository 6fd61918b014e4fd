package models

// Business units. Records always belong to a concrete unit; "Both" is a
// user-level scope that grants access to either unit.
const (
	UnitA    = "Unit A"
	UnitB    = "Unit B"
	UnitBoth = "Both"
)

// User roles.
const (
	RoleAdmin    = "admin"
	RoleOperator = "operator"
)

// IsConcreteUnit reports whether u names one of the two real units.
func IsConcreteUnit(u string) bool {
	return u == UnitA || u == UnitB
}

// IsValidUserUnit reports whether u is assignable to a user account.
func IsValidUserUnit(u string) bool {
	return IsConcreteUnit(u) || u == UnitBoth
}

// IsValidRole reports whether r is a known role.
func IsValidRole(r string) bool {
	return r == RoleAdmin || r == RoleOperator
}
