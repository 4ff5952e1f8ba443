package postgres

import (
	"context"
	"fmt"

	"github.com/realchief/RenderShotPanel/internal/job"
	"github.com/realchief/RenderShotPanel/internal/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	db   *gorm.DB
	jobs *JobRepository
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db, jobs: NewJobRepository(db)}
}

var _ job.UserRepoInterface = (*UserRepository)(nil)

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) GetByToken(ctx context.Context, token string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "api_token = ?", token).Error; err != nil {
		return nil, fmt.Errorf("get user by token: %w", err)
	}
	return &user, nil
}

// Balance is recomputed on every call: purchased credit minus total
// job spend scaled by the account's rate multiplier.
func (r *UserRepository) Balance(ctx context.Context, userID uint) (float64, error) {
	user, err := r.GetByID(ctx, userID)
	if err != nil {
		return 0, err
	}

	spent, err := r.jobs.SpentByUser(ctx, userID)
	if err != nil {
		return 0, err
	}

	return user.Credit - spent*user.RateMultiplier, nil
}

// AdjustCredit applies a signed delta at the database level so
// concurrent payment updates can not lose increments.
func (r *UserRepository) AdjustCredit(ctx context.Context, userID uint, delta float64) error {
	if err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Update("credit", gorm.Expr("credit + ?", delta)).Error; err != nil {
		return fmt.Errorf("adjust credit: %w", err)
	}
	return nil
}
