package user

import "fmt"

// Role is the closed set of per-company roles. The cross-company super admin
// is a global flag on the user, not a role, so it never appears here.
type Role string

const (
	RoleMember       Role = "member"
	RoleSupervisor   Role = "supervisor"
	RoleCompanyAdmin Role = "company_admin"
)

func ParseRole(value string) (Role, error) {
	switch Role(value) {
	case RoleMember, RoleSupervisor, RoleCompanyAdmin:
		return Role(value), nil
	default:
		return "", fmt.Errorf("unknown role: %q", value)
	}
}

func (r Role) IsValid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

func (r Role) String() string {
	return string(r)
}
