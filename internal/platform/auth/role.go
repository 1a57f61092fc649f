package auth

import "fmt"

// Role is the closed set of staff roles. Unknown values are rejected at the
// boundary rather than propagated as free-form strings.
type Role string

const (
	RoleAdmin         Role = "ADMIN"
	RoleDoctor        Role = "DOCTOR"
	RoleNurse         Role = "NURSE"
	RoleReceptionist  Role = "RECEPTIONIST"
	RoleLabTechnician Role = "LAB_TECHNICIAN"
	RoleAccountant    Role = "ACCOUNTANT"
)

// AllRoles lists every valid role, in declaration order.
func AllRoles() []Role {
	return []Role{
		RoleAdmin, RoleDoctor, RoleNurse,
		RoleReceptionist, RoleLabTechnician, RoleAccountant,
	}
}

// ParseRole validates a raw role string against the closed set.
func ParseRole(s string) (Role, error) {
	for _, r := range AllRoles() {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown role %q", s)
}

func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

func (r Role) String() string {
	return string(r)
}
