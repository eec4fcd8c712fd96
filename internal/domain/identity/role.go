package identity

import (
	"github.com/sltrack/backend/internal/domain/shared"
)

// Role is the ordered privilege level assigned to a user.
// The zero value is invalid; levels are ordered so that privilege
// comparison is a plain integer comparison.
type Role int

const (
	// RoleLicenseViewer can read all license data
	RoleLicenseViewer Role = iota + 1
	// RoleSoftwareAdmin can additionally create, update and delete license data
	RoleSoftwareAdmin
	// RoleSystemAdmin can additionally manage users and application settings
	RoleSystemAdmin
)

const (
	roleLicenseViewerName = "LicenseViewer"
	roleSoftwareAdminName = "SoftwareAdmin"
	roleSystemAdminName   = "SystemAdmin"
)

// ParseRole converts the persisted role name to a Role.
func ParseRole(s string) (Role, error) {
	switch s {
	case roleLicenseViewerName:
		return RoleLicenseViewer, nil
	case roleSoftwareAdminName:
		return RoleSoftwareAdmin, nil
	case roleSystemAdminName:
		return RoleSystemAdmin, nil
	default:
		return 0, shared.ErrValidation.WithMessage("unknown role %q", s)
	}
}

// String returns the persisted name of the role.
func (r Role) String() string {
	switch r {
	case RoleLicenseViewer:
		return roleLicenseViewerName
	case RoleSoftwareAdmin:
		return roleSoftwareAdminName
	case RoleSystemAdmin:
		return roleSystemAdminName
	default:
		return "Unknown"
	}
}

// Valid reports whether the role is one of the three defined levels.
func (r Role) Valid() bool {
	return r >= RoleLicenseViewer && r <= RoleSystemAdmin
}

// AtLeast reports whether the role grants the privilege of min or higher.
func (r Role) AtLeast(min Role) bool {
	return r >= min
}
