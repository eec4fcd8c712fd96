// Package catalog holds the vendor-facing side of the inventory: software
// titles and the manufacturers and resellers they are purchased from.
// Entities round-trip as column-keyed rows; these types describe the write
// payloads only.
package catalog

// ManufacturerInput is the payload for creating a manufacturer.
type ManufacturerInput struct {
	Name         string  `json:"Name" binding:"required"`
	Website      *string `json:"Website"`
	ContactEmail *string `json:"ContactEmail"`
}

// ManufacturerUpdate carries a partial update. Nil fields keep the stored
// value.
type ManufacturerUpdate struct {
	Name         *string `json:"Name"`
	Website      *string `json:"Website"`
	ContactEmail *string `json:"ContactEmail"`
}

// ResellerInput is the payload for creating a reseller.
type ResellerInput struct {
	Name         string  `json:"Name" binding:"required"`
	ContactName  *string `json:"ContactName"`
	ContactEmail *string `json:"ContactEmail"`
	Phone        *string `json:"Phone"`
}

// ResellerUpdate carries a partial update. Nil fields keep the stored value.
type ResellerUpdate struct {
	Name         *string `json:"Name"`
	ContactName  *string `json:"ContactName"`
	ContactEmail *string `json:"ContactEmail"`
	Phone        *string `json:"Phone"`
}

// TitleInput is the payload for creating a software title.
type TitleInput struct {
	TitleName      string  `json:"TitleName" binding:"required"`
	ManufacturerID *int64  `json:"ManufacturerID"`
	ResellerID     *int64  `json:"ResellerID"`
	Category       *string `json:"Category"`
	Notes          *string `json:"Notes"`
}

// TitleUpdate carries a partial update. Nil fields keep the stored value.
type TitleUpdate struct {
	TitleName        *string `json:"TitleName"`
	ManufacturerID   *int64  `json:"ManufacturerID"`
	ResellerID       *int64  `json:"ResellerID"`
	Category         *string `json:"Category"`
	Notes            *string `json:"Notes"`
	IsDecommissioned *bool   `json:"IsDecommissioned"`
}

// TitleFilter narrows the title listing.
// Vendor is a manufacturer id ("all" and empty mean no filter); Status is
// "active", "decommissioned" or empty; Search matches title or manufacturer
// name as a substring.
type TitleFilter struct {
	Vendor string
	Status string
	Search string
}
