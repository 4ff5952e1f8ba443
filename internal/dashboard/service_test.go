package dashboard

import (
	"context"
	"errors"
	"testing"

	"github.com/realchief/RenderShotPanel/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStats_AggregatesCounters(t *testing.T) {
	repo := new(mocks.StatsRepoMock)
	repo.On("CountUsers", context.Background()).Return(int64(12), int64(2), nil)
	repo.On("CountJobsByStatus", context.Background()).Return(map[string]int64{
		"rendering": 3,
		"completed": 40,
		"deleted":   7,
	}, nil)
	repo.On("CompletedPaymentTotals", context.Background()).Return(int64(9), 450.5, nil)
	repo.On("CountOpenTickets", context.Background()).Return(int64(4), nil)

	stats, err := NewDashboardService(repo).Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(12), stats.Users)
	assert.Equal(t, int64(2), stats.BlockedUsers)
	assert.Equal(t, int64(50), stats.Jobs)
	assert.Equal(t, int64(3), stats.JobsByStatus["rendering"])
	assert.Equal(t, int64(9), stats.CompletedPayments)
	assert.Equal(t, 450.5, stats.Revenue)
	assert.Equal(t, int64(4), stats.OpenTickets)
}

func TestStats_PropagatesRepoErrors(t *testing.T) {
	repo := new(mocks.StatsRepoMock)
	repo.On("CountUsers", context.Background()).Return(int64(0), int64(0), errors.New("db down"))

	_, err := NewDashboardService(repo).Stats(context.Background())
	require.Error(t, err)
}
