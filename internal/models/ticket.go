package models

import "time"

type TicketDepartment string

const (
	DepartmentSales     TicketDepartment = "sales"
	DepartmentTechnical TicketDepartment = "technical"
)

type TicketStatus string

const (
	TicketOpen            TicketStatus = "open"
	TicketPending         TicketStatus = "pending"
	TicketResolved        TicketStatus = "resolved"
	TicketClosed          TicketStatus = "closed"
	TicketWaitingCustomer TicketStatus = "waiting_on_customer"
	TicketWaitingAdmin    TicketStatus = "waiting_on_admin"
)

type Ticket struct {
	ID         uint `gorm:"primaryKey"`
	UserID     uint `gorm:"index;not null"`
	User       User
	Number     string           `gorm:"type:varchar(20);uniqueIndex"`
	Department TicketDepartment `gorm:"type:varchar(100);default:'technical'"`
	Status     TicketStatus     `gorm:"type:varchar(100);default:'open'"`
	Subject    string           `gorm:"type:varchar(200)"`
	Replies    []TicketReply    `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time        `gorm:"autoCreateTime"`
	UpdatedAt  time.Time        `gorm:"autoUpdateTime"`
}

type TicketReply struct {
	ID        uint `gorm:"primaryKey"`
	TicketID  uint `gorm:"index;not null"`
	AuthorID  uint `gorm:"index;not null"`
	Author    User
	Body      string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
