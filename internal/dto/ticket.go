package dto

import "time"

type TicketCreateRequest struct {
	Department string `json:"department" validate:"required,oneof=sales technical"`
	Subject    string `json:"subject" validate:"required,max=200"`
	Body       string `json:"body" validate:"required"`
}

type TicketReplyRequest struct {
	Body string `json:"body" validate:"required,max=5000"`
}

type TicketStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=open pending resolved closed waiting_on_customer waiting_on_admin"`
}

type TicketReplyResponse struct {
	ID        uint      `json:"id"`
	Author    string    `json:"author"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

type TicketResponse struct {
	Number     string                `json:"number"`
	User       string                `json:"user"`
	Department string                `json:"department"`
	Status     string                `json:"status"`
	Subject    string                `json:"subject"`
	Replies    []TicketReplyResponse `json:"replies,omitempty"`
	CreatedAt  time.Time             `json:"created_at"`
}
