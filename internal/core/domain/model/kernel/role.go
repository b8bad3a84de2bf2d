package kernel

import (
	"fmt"

	"dentallab/internal/pkg/errs"
)

// Role identifies the kind of actor behind a command. The identity provider
// supplies the (actor id, role) pair and the core trusts it.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleDoctor places orders and confirms deliveries.
	RoleDoctor

	// RoleLabStaff works assigned orders and applies on the marketplace.
	RoleLabStaff

	// RoleAdmin manages pricing rules and resolves disputes.
	RoleAdmin
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:  "Unknown",
		RoleDoctor:   "Doctor",
		RoleLabStaff: "LabStaff",
		RoleAdmin:    "Admin",
	}
}

// Validate checks that the role is one of the defined values.
func (r Role) Validate() error {
	switch r {
	case RoleDoctor, RoleLabStaff, RoleAdmin:
		return nil
	default:
		return errs.NewValueIsInvalidError("role")
	}
}

// String returns the role name.
func (r Role) String() string {
	if s, ok := getRoleStrings()[r]; ok {
		return s
	}
	return getRoleStrings()[RoleUnknown]
}

// RoleFromString parses a role from its name.
func RoleFromString(s string) (Role, error) {
	for role, name := range getRoleStrings() {
		if role != RoleUnknown && name == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", s))
}
