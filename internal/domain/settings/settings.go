// Package settings covers the key/value configuration store and the two
// lookup tables exposed to the UI.
package settings

// Entry is one AppSettings row write. Bulk updates apply a slice of entries
// in a single transaction.
type Entry struct {
	SettingKey   string `json:"SettingKey" binding:"required"`
	SettingValue string `json:"SettingValue"`
}

// CostCenterInput is the payload for creating a cost center.
type CostCenterInput struct {
	Name       string  `json:"Name" binding:"required"`
	Department *string `json:"Department"`
}
