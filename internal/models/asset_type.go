package models

import (
	"time"

	"nivesh/internal/valuation"
)

// AssetType is one taxonomy entry. The table is global, not user scoped.
type AssetType struct {
	Name         string    `gorm:"primaryKey" json:"name"`
	Category     string    `gorm:"not null" json:"category"`
	DisplayLabel string    `gorm:"not null" json:"display_label"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Info converts the row into a taxonomy definition.
func (t *AssetType) Info() valuation.TypeInfo {
	return valuation.TypeInfo{Name: t.Name, Category: t.Category, DisplayLabel: t.DisplayLabel}
}
