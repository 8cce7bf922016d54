package entities

import (
	"time"
)

type ScanSession struct {
	ID     uint   `gorm:"primaryKey" json:"-"`
	SessionID string `gorm:"size:50;uniqueIndex;not null" json:"session_id"`
	UserID    *uint  `json:"user_id,omitempty"`

	// Aggregate counters are a cached summary. They are overwritten wholesale
	// by a batch completion (or an explicit recompute), never incremented.
	TotalScanned      int `gorm:"default:0" json:"total_scanned"`
	ExpiringSoonCount int `gorm:"default:0" json:"expiring_soon_count"`
	ExpiredCount      int `gorm:"default:0" json:"expired_count"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	User  *User          `gorm:"foreignKey:UserID" json:"-"`
	Scans []*ProduceScan `gorm:"foreignKey:SessionID;references:SessionID;constraint:OnDelete:CASCADE" json:"-"`
}
