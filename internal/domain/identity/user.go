package identity

// User is an application account resolved from an externally-asserted
// identity header. There are no credentials here: authentication is
// terminated upstream by the reverse proxy.
type User struct {
	UserID      int64  `json:"UserID"`
	Username    string `json:"Username"`
	DisplayName string `json:"DisplayName"`
	Email       string `json:"Email,omitempty"`
	Role        Role   `json:"-"`
	RoleName    string `json:"Role"`
	IsActive    bool   `json:"IsActive"`
}

// CanWrite reports whether the user may perform mutating operations on
// license data.
func (u *User) CanWrite() bool {
	return u.Role.AtLeast(RoleSoftwareAdmin)
}

// IsSystemAdmin reports whether the user may manage users and settings.
func (u *User) IsSystemAdmin() bool {
	return u.Role.AtLeast(RoleSystemAdmin)
}
