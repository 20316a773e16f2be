package address

// Address is a client delivery address. A user holds at most three, and at
// most one of them is the default.
type Address struct {
	ID         int     `json:"id"`
	UserID     string  `json:"user_id"`
	Label      string  `json:"label"` // "Home", "Work", ...
	Line1      string  `json:"line1"`
	Line2      *string `json:"line2,omitempty"`
	City       string  `json:"city"`
	PostalCode string  `json:"postal_code"`
	RegionID   *int    `json:"region_id,omitempty"`
	Notes      *string `json:"notes,omitempty"` // floor, door code, ...
	IsDefault  bool    `json:"is_default"`
}

type CreateInput struct {
	Label      string  `json:"label" binding:"required"`
	Line1      string  `json:"line1" binding:"required"`
	Line2      *string `json:"line2"`
	City       string  `json:"city" binding:"required"`
	PostalCode string  `json:"postal_code" binding:"required"`
	RegionID   *int    `json:"region_id"`
	Notes      *string `json:"notes"`
	IsDefault  bool    `json:"is_default"`
}
