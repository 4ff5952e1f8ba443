package postgres

import (
	"context"
	"fmt"

	"github.com/realchief/RenderShotPanel/internal/models"
	"github.com/realchief/RenderShotPanel/internal/ticket"
	"gorm.io/gorm"
)

type TicketRepository struct {
	db *gorm.DB
}

func NewTicketRepository(db *gorm.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

var _ ticket.TicketRepoInterface = (*TicketRepository)(nil)

func (r *TicketRepository) Create(ctx context.Context, t *models.Ticket) error {
	if err := r.db.WithContext(ctx).Create(t).Error; err != nil {
		return fmt.Errorf("create ticket: %w", err)
	}
	return nil
}

func (r *TicketRepository) Save(ctx context.Context, t *models.Ticket) error {
	if err := r.db.WithContext(ctx).Save(t).Error; err != nil {
		return fmt.Errorf("save ticket: %w", err)
	}
	return nil
}

func (r *TicketRepository) GetByNumber(ctx context.Context, number string) (*models.Ticket, error) {
	var t models.Ticket
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Replies").
		Preload("Replies.Author").
		First(&t, "number = ?", number).Error
	if err != nil {
		return nil, fmt.Errorf("get ticket: %w", err)
	}
	return &t, nil
}

func (r *TicketRepository) ListByUser(ctx context.Context, userID uint) ([]models.Ticket, error) {
	var tickets []models.Ticket
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&tickets).Error
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	return tickets, nil
}

func (r *TicketRepository) AddReply(ctx context.Context, reply *models.TicketReply) error {
	if err := r.db.WithContext(ctx).Create(reply).Error; err != nil {
		return fmt.Errorf("add reply: %w", err)
	}
	return nil
}
