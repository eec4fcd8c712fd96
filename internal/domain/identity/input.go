package identity

// UserInput is the payload for creating a user account.
type UserInput struct {
	Username    string  `json:"Username" binding:"required"`
	DisplayName string  `json:"DisplayName" binding:"required"`
	Email       *string `json:"Email"`
	Role        string  `json:"Role" binding:"required,oneof=SystemAdmin SoftwareAdmin LicenseViewer"`
}

// UserUpdate carries a partial update. Nil fields keep the stored value.
// Username is immutable once created.
type UserUpdate struct {
	DisplayName *string `json:"DisplayName"`
	Email       *string `json:"Email"`
	Role        *string `json:"Role" binding:"omitempty,oneof=SystemAdmin SoftwareAdmin LicenseViewer"`
	IsActive    *bool   `json:"IsActive"`
}
