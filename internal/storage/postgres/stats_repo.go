package postgres

import (
	"context"
	"fmt"

	"github.com/realchief/RenderShotPanel/internal/dashboard"
	"github.com/realchief/RenderShotPanel/internal/models"
	"gorm.io/gorm"
)

type StatsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

var _ dashboard.StatsRepoInterface = (*StatsRepository)(nil)

func (r *StatsRepository) CountUsers(ctx context.Context) (int64, int64, error) {
	var total, blocked int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Count(&total).Error; err != nil {
		return 0, 0, fmt.Errorf("count users: %w", err)
	}
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("blocked = ?", true).
		Count(&blocked).Error; err != nil {
		return 0, 0, fmt.Errorf("count blocked users: %w", err)
	}
	return total, blocked, nil
}

func (r *StatsRepository) CountJobsByStatus(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Name  string
		Count int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Job{}).
		Select("job_statuses.name AS name, COUNT(*) AS count").
		Joins("JOIN job_statuses ON job_statuses.id = jobs.status_id").
		Group("job_statuses.name").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count jobs by status: %w", err)
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Name] = row.Count
	}
	return counts, nil
}

func (r *StatsRepository) CompletedPaymentTotals(ctx context.Context) (int64, float64, error) {
	var row struct {
		Count  int64
		Amount float64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Select("COUNT(*) AS count, COALESCE(SUM(amount), 0) AS amount").
		Where("status = ?", models.PaymentCompleted).
		Scan(&row).Error
	if err != nil {
		return 0, 0, fmt.Errorf("payment totals: %w", err)
	}
	return row.Count, row.Amount, nil
}

func (r *StatsRepository) CountOpenTickets(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Ticket{}).
		Where("status NOT IN ?", []models.TicketStatus{models.TicketResolved, models.TicketClosed}).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count open tickets: %w", err)
	}
	return count, nil
}
