package mocks

import (
	"context"

	"github.com/realchief/RenderShotPanel/internal/models"
	"github.com/stretchr/testify/mock"
)

type UserRepoMock struct {
	mock.Mock
}

func (m *UserRepoMock) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)

	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *UserRepoMock) GetByToken(ctx context.Context, token string) (*models.User, error) {
	args := m.Called(ctx, token)

	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *UserRepoMock) Balance(ctx context.Context, userID uint) (float64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(float64), args.Error(1)
}

func (m *UserRepoMock) AdjustCredit(ctx context.Context, userID uint, delta float64) error {
	args := m.Called(ctx, userID, delta)
	return args.Error(0)
}
