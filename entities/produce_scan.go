package entities

import (
	"time"
)

type ProduceScan struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	ScanID    string  `gorm:"size:50;uniqueIndex;not null" json:"scan_id"`
	SessionID *string `gorm:"size:50" json:"session_id,omitempty"`
	UserID    *uint   `json:"user_id,omitempty"`

	ProduceName    string `gorm:"size:100;not null" json:"produce_name"`
	ShelfLifeDays  int    `gorm:"not null" json:"shelf_life_days"`
	IsExpiringSoon bool   `gorm:"default:false" json:"is_expiring_soon"`
	IsExpired      bool   `gorm:"default:false" json:"is_expired"`
	Notes          string `gorm:"type:text" json:"notes"`
	ImageURL       string `json:"image_url,omitempty"`

	ScannedAt time.Time `gorm:"autoCreateTime" json:"scanned_at"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}
