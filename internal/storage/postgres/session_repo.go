package postgres

import (
	"context"
	"fmt"

	"github.com/realchief/RenderShotPanel/internal/job"
	"github.com/realchief/RenderShotPanel/internal/models"
	"gorm.io/gorm"
)

type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

var _ job.SessionRepoInterface = (*SessionRepository)(nil)

func (r *SessionRepository) Create(ctx context.Context, session *models.SubmitSession) error {
	if err := r.db.WithContext(ctx).Create(session).Error; err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

func (r *SessionRepository) GetByUser(ctx context.Context, userID uint, sessionID string) (*models.SubmitSession, error) {
	var session models.SubmitSession
	err := r.db.WithContext(ctx).
		First(&session, "user_id = ? AND session_id = ?", userID, sessionID).Error
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return &session, nil
}

func (r *SessionRepository) ListByUser(ctx context.Context, userID uint) ([]models.SubmitSession, error) {
	var sessions []models.SubmitSession
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}
