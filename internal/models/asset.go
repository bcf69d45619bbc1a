package models

import (
	"time"
)

// Reciter is the person whose recitation an asset contains
type Reciter struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Slug      string    `json:"slug" gorm:"size:128;uniqueIndex"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for the Reciter model
func (Reciter) TableName() string {
	return "reciters"
}

// Asset groups up to 114 recitation tracks by one reciter.
// The rest of the CMS owns this table; the ingestion engine only reads it.
type Asset struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"not null"`
	ReciterID *uint     `json:"reciter_id" gorm:"index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Reciter  *Reciter       `json:"reciter,omitempty" gorm:"foreignKey:ReciterID"`
	Versions []AssetVersion `json:"versions,omitempty" gorm:"foreignKey:AssetID"`
}

// TableName returns the table name for the Asset model
func (Asset) TableName() string {
	return "assets"
}

// ReciterSlug returns the reciter slug or "" when no reciter is set
func (a *Asset) ReciterSlug() string {
	if a.Reciter == nil {
		return ""
	}
	return a.Reciter.Slug
}

// AssetVersion is a published revision of an asset. The highest ID is the latest.
type AssetVersion struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	AssetID   uint      `json:"asset_id" gorm:"not null;index"`
	Version   string    `json:"version" gorm:"size:64"`
	FileURL   string    `json:"file_url" gorm:"size:1024"`
	SizeBytes int64     `json:"size_bytes" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for the AssetVersion model
func (AssetVersion) TableName() string {
	return "asset_versions"
}
