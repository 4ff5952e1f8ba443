package models

import "time"

type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"type:varchar(150);uniqueIndex;not null"`
	Email        string `gorm:"type:varchar(254)"`
	PasswordHash string `gorm:"type:varchar(200)"`
	APIToken     string `gorm:"type:varchar(64);uniqueIndex"`
	IsSuperuser  bool   `gorm:"default:false"`

	// profile fields
	Credit                float64 `gorm:"default:0"`
	RateMultiplier        float64 `gorm:"default:1"`
	Blocked               bool    `gorm:"default:false"`
	ReceiveJobEmailNotifs bool    `gorm:"default:true"`
	PaymentAllowed        bool    `gorm:"default:false"`
	ChunkSizeOverride     int     `gorm:"default:1"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
