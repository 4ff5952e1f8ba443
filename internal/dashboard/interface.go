package dashboard

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/realchief/RenderShotPanel/internal/dto"
)

// StatsRepoInterface aggregates the admin counters straight from the
// database; nothing here is cached.
type StatsRepoInterface interface {
	CountUsers(ctx context.Context) (total, blocked int64, err error)
	CountJobsByStatus(ctx context.Context) (map[string]int64, error)
	CompletedPaymentTotals(ctx context.Context) (count int64, amount float64, err error)
	CountOpenTickets(ctx context.Context) (int64, error)
}

type DashboardServiceInterface interface {
	Stats(ctx context.Context) (*dto.DashboardResponse, error)
}

type DashboardHandlerInterface interface {
	Get(c *gin.Context)
}
