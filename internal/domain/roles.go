package domain

import (
	"encoding/json"
	"fmt"
)

// Role is the perspective a breakdown is computed for.
type Role uint8

const (
	RoleCustomer Role = 1 << iota
	RoleProvider
)

// ParseRole maps "customer" or "provider" to a Role.
func ParseRole(name string) (Role, error) {
	switch name {
	case "customer":
		return RoleCustomer, nil
	case "provider":
		return RoleProvider, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownRole, name)
}

func (r Role) String() string {
	switch r {
	case RoleCustomer:
		return "customer"
	case RoleProvider:
		return "provider"
	}
	return fmt.Sprintf("role(%d)", uint8(r))
}

// CommissionCode is the code of the commission line item charged to r.
func (r Role) CommissionCode() string {
	if r == RoleProvider {
		return LineItemProviderCommission
	}
	return LineItemCustomerCommission
}

// MarshalText encodes the role name.
func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// RoleSet is the includeFor set of a line item.
type RoleSet uint8

// NewRoleSet builds a set from role names. Unknown names are ignored, so a
// set built only from unknown names is empty.
func NewRoleSet(names ...string) RoleSet {
	var s RoleSet
	for _, name := range names {
		if r, err := ParseRole(name); err == nil {
			s |= RoleSet(r)
		}
	}
	return s
}

// Has reports whether r is a member of the set.
func (s RoleSet) Has(r Role) bool {
	return s&RoleSet(r) != 0
}

// Roles lists the members in a fixed order.
func (s RoleSet) Roles() []Role {
	roles := make([]Role, 0, 2)
	for _, r := range []Role{RoleCustomer, RoleProvider} {
		if s.Has(r) {
			roles = append(roles, r)
		}
	}
	return roles
}

// MarshalJSON encodes the set as a list of role names.
func (s RoleSet) MarshalJSON() ([]byte, error) {
	names := make([]string, 0, 2)
	for _, r := range s.Roles() {
		names = append(names, r.String())
	}
	return json.Marshal(names)
}
