package models

import (
	"time"

	"gorm.io/datatypes"
)

type SystemStatus string

const (
	SystemOnline      SystemStatus = "online"
	SystemOffline     SystemStatus = "offline"
	SystemMaintenance SystemStatus = "maintenance"
)

// Setting is the active system configuration row. Changing its status
// is broadcast to connected client apps.
type Setting struct {
	ID                   uint              `gorm:"primaryKey"`
	ConfigName           string            `gorm:"type:varchar(150)"`
	IsActive             bool              `gorm:"default:false"`
	SystemStatus         SystemStatus      `gorm:"type:varchar(100);default:'online'"`
	PaypalSetting        datatypes.JSONMap
	ClientAppSetting     datatypes.JSONMap
	BanDisposableEmails  bool              `gorm:"default:false"`
	InitialAccountCredit int               `gorm:"default:10"`
	MinimumPaymentAmount int               `gorm:"default:30"`
	CreatedAt            time.Time         `gorm:"autoCreateTime"`
	UpdatedAt            time.Time         `gorm:"autoUpdateTime"`
}
