package models

// Portfolio is a named subset of a user's holdings and cash accounts.
type Portfolio struct {
	Base
	UserID      string `gorm:"not null;index" json:"user_id"`
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`
}
