package entities

import (
	"time"
)

type User struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Email       string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Username    string     `gorm:"size:255;uniqueIndex;not null" json:"username"`
	Password    string     `gorm:"size:255;not null" json:"-"`
	Active      bool       `gorm:"default:true;not null" json:"active"`
	Role        string     `gorm:"size:80;default:user" json:"role"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`

	Scans    []*ProduceScan `gorm:"foreignKey:UserID" json:"-"`
	Sessions []*ScanSession `gorm:"foreignKey:UserID" json:"-"`
}
