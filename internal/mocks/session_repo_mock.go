package mocks

import (
	"context"

	"github.com/realchief/RenderShotPanel/internal/models"
	"github.com/stretchr/testify/mock"
)

type SessionRepoMock struct {
	mock.Mock
}

func (m *SessionRepoMock) Create(ctx context.Context, session *models.SubmitSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *SessionRepoMock) GetByUser(ctx context.Context, userID uint, sessionID string) (*models.SubmitSession, error) {
	args := m.Called(ctx, userID, sessionID)

	session, _ := args.Get(0).(*models.SubmitSession)
	return session, args.Error(1)
}

func (m *SessionRepoMock) ListByUser(ctx context.Context, userID uint) ([]models.SubmitSession, error) {
	args := m.Called(ctx, userID)

	sessions, _ := args.Get(0).([]models.SubmitSession)
	return sessions, args.Error(1)
}
