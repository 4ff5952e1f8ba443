package dashboard

import (
	"context"

	"github.com/realchief/RenderShotPanel/internal/dto"
)

type DashboardService struct {
	stats StatsRepoInterface
}

func NewDashboardService(stats StatsRepoInterface) *DashboardService {
	return &DashboardService{stats: stats}
}

var _ DashboardServiceInterface = (*DashboardService)(nil)

func (s *DashboardService) Stats(ctx context.Context) (*dto.DashboardResponse, error) {
	users, blocked, err := s.stats.CountUsers(ctx)
	if err != nil {
		return nil, err
	}

	byStatus, err := s.stats.CountJobsByStatus(ctx)
	if err != nil {
		return nil, err
	}
	var jobs int64
	for _, n := range byStatus {
		jobs += n
	}

	payments, revenue, err := s.stats.CompletedPaymentTotals(ctx)
	if err != nil {
		return nil, err
	}

	tickets, err := s.stats.CountOpenTickets(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardResponse{
		Users:             users,
		BlockedUsers:      blocked,
		Jobs:              jobs,
		JobsByStatus:      byStatus,
		CompletedPayments: payments,
		Revenue:           revenue,
		OpenTickets:       tickets,
	}, nil
}
