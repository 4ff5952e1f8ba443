package mocks

import (
	"context"

	"github.com/realchief/RenderShotPanel/internal/models"
	"github.com/stretchr/testify/mock"
)

type PaymentRepoMock struct {
	mock.Mock
}

func (m *PaymentRepoMock) Create(ctx context.Context, p *models.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *PaymentRepoMock) Save(ctx context.Context, p *models.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *PaymentRepoMock) GetByID(ctx context.Context, id uint) (*models.Payment, error) {
	args := m.Called(ctx, id)

	p, _ := args.Get(0).(*models.Payment)
	return p, args.Error(1)
}

func (m *PaymentRepoMock) ListByUser(ctx context.Context, userID uint) ([]models.Payment, error) {
	args := m.Called(ctx, userID)

	payments, _ := args.Get(0).([]models.Payment)
	return payments, args.Error(1)
}

func (m *PaymentRepoMock) CouponByCode(ctx context.Context, code string) (*models.CouponCode, error) {
	args := m.Called(ctx, code)

	coupon, _ := args.Get(0).(*models.CouponCode)
	return coupon, args.Error(1)
}

func (m *PaymentRepoMock) SaveCoupon(ctx context.Context, coupon *models.CouponCode) error {
	args := m.Called(ctx, coupon)
	return args.Error(0)
}

func (m *PaymentRepoMock) Packages(ctx context.Context) ([]models.PromotionPackage, error) {
	args := m.Called(ctx)

	packages, _ := args.Get(0).([]models.PromotionPackage)
	return packages, args.Error(1)
}

func (m *PaymentRepoMock) Settings(ctx context.Context) (*models.Setting, error) {
	args := m.Called(ctx)

	setting, _ := args.Get(0).(*models.Setting)
	return setting, args.Error(1)
}
