// Package licensing holds the purchase side of the inventory: licenses,
// their optional support contracts and uploaded attachments.
package licensing

// LicenseInput is the payload for creating a license. Quantity defaults to 1
// and CurrencyCode to USD when omitted.
type LicenseInput struct {
	TitleID        int64   `json:"TitleID" binding:"required"`
	PONumber       string  `json:"PONumber" binding:"required"`
	LicenseType    string  `json:"LicenseType" binding:"required,oneof=Perpetual Subscription"`
	Quantity       *int64  `json:"Quantity" binding:"omitempty,min=1"`
	CurrencyCode   *string `json:"CurrencyCode"`
	Cost           *float64 `json:"Cost"`
	CostCenter     *string `json:"CostCenter"`
	LicenseKey     *string `json:"LicenseKey"`
	PurchaseDate   *string `json:"PurchaseDate"`
	ExpirationDate *string `json:"ExpirationDate"`
	AssetMapping   *string `json:"AssetMapping"`
	Notes          *string `json:"Notes"`
}

// LicenseUpdate carries a partial update. Nil fields keep the stored value.
type LicenseUpdate struct {
	PONumber       *string `json:"PONumber"`
	LicenseType    *string `json:"LicenseType" binding:"omitempty,oneof=Perpetual Subscription"`
	Quantity       *int64  `json:"Quantity" binding:"omitempty,min=1"`
	CurrencyCode   *string `json:"CurrencyCode"`
	Cost           *float64 `json:"Cost"`
	CostCenter     *string `json:"CostCenter"`
	LicenseKey     *string `json:"LicenseKey"`
	PurchaseDate   *string `json:"PurchaseDate"`
	ExpirationDate *string `json:"ExpirationDate"`
	AssetMapping   *string `json:"AssetMapping"`
	Notes          *string `json:"Notes"`
}

// SupportContractInput is the payload for creating a support contract.
// Each license carries at most one contract; a second insert for the same
// LicenseID is a conflict.
type SupportContractInput struct {
	LicenseID    int64   `json:"LicenseID" binding:"required"`
	PONumber     string  `json:"PONumber" binding:"required"`
	VendorName   *string `json:"VendorName"`
	StartDate    *string `json:"StartDate"`
	EndDate      string  `json:"EndDate" binding:"required"`
	Cost         *float64 `json:"Cost"`
	CurrencyCode *string `json:"CurrencyCode"`
	CostCenter   *string `json:"CostCenter"`
	Notes        *string `json:"Notes"`
}

// SupportContractUpdate carries a partial update. Nil fields keep the stored
// value.
type SupportContractUpdate struct {
	PONumber     *string `json:"PONumber"`
	VendorName   *string `json:"VendorName"`
	StartDate    *string `json:"StartDate"`
	EndDate      *string `json:"EndDate"`
	Cost         *float64 `json:"Cost"`
	CurrencyCode *string `json:"CurrencyCode"`
	CostCenter   *string `json:"CostCenter"`
	Notes        *string `json:"Notes"`
}

// AttachmentRecord describes a stored upload. At least one of TitleID,
// LicenseID, SupportID must be set, and the referenced row must exist.
type AttachmentRecord struct {
	TitleID      *int64
	LicenseID    *int64
	SupportID    *int64
	FileName     string
	OriginalName string
	FilePath     string
	FileSize     int64
	MimeType     string
}

// HasParent reports whether the record links to at least one owning entity.
func (a AttachmentRecord) HasParent() bool {
	return a.TitleID != nil || a.LicenseID != nil || a.SupportID != nil
}

// AttachmentFilter narrows the attachment listing to one parent entity.
type AttachmentFilter struct {
	TitleID   *int64
	LicenseID *int64
	SupportID *int64
}
