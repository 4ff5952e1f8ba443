package mocks

import (
	"context"

	"github.com/realchief/RenderShotPanel/internal/models"
	"github.com/stretchr/testify/mock"
)

type TicketRepoMock struct {
	mock.Mock
}

func (m *TicketRepoMock) Create(ctx context.Context, t *models.Ticket) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *TicketRepoMock) Save(ctx context.Context, t *models.Ticket) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *TicketRepoMock) GetByNumber(ctx context.Context, number string) (*models.Ticket, error) {
	args := m.Called(ctx, number)

	t, _ := args.Get(0).(*models.Ticket)
	return t, args.Error(1)
}

func (m *TicketRepoMock) ListByUser(ctx context.Context, userID uint) ([]models.Ticket, error) {
	args := m.Called(ctx, userID)

	tickets, _ := args.Get(0).([]models.Ticket)
	return tickets, args.Error(1)
}

func (m *TicketRepoMock) AddReply(ctx context.Context, reply *models.TicketReply) error {
	args := m.Called(ctx, reply)
	return args.Error(0)
}
