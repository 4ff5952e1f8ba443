package payment

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/realchief/RenderShotPanel/common"
	"github.com/realchief/RenderShotPanel/internal/dto"
	"github.com/realchief/RenderShotPanel/internal/models"
	"github.com/realchief/RenderShotPanel/internal/notify"
	"gorm.io/datatypes"
)

type PaymentService struct {
	repo     PaymentRepoInterface
	users    UserAccountInterface
	notifier notify.Notifier
}

func NewPaymentService(repo PaymentRepoInterface, users UserAccountInterface, notifier notify.Notifier) *PaymentService {
	return &PaymentService{repo: repo, users: users, notifier: notifier}
}

var _ PaymentServiceInterface = (*PaymentService)(nil)

// CreatePayment records an initiated payment. Gateway-backed types are
// gated on the account flag and the configured minimum.
func (s *PaymentService) CreatePayment(ctx context.Context, user *models.User, req *dto.PaymentCreateRequest) (*models.Payment, error) {
	if !user.PaymentAllowed {
		return nil, common.Errf(http.StatusForbidden, "payments are not enabled for this account")
	}

	if req.Type == string(models.PaymentTypePaypal) {
		settings, err := s.repo.Settings(ctx)
		if err == nil && req.Amount < float64(settings.MinimumPaymentAmount) {
			return nil, common.Errf(http.StatusBadRequest,
				"minimum payment amount is %d", settings.MinimumPaymentAmount)
		}
	}

	currency := req.Currency
	if currency == "" {
		currency = "usd"
	}

	payment := &models.Payment{
		UserID: user.ID,
		User:   *user,
		Type:   models.PaymentType(req.Type),
		Status: models.PaymentInitiated,
		Amount: req.Amount,
		// correlation id until the gateway reports its own
		PaymentID: uuid.NewString(),
		Currency:  currency,
		OrderData: datatypes.JSONMap(req.OrderData),
	}

	if err := s.repo.Create(ctx, payment); err != nil {
		return nil, common.Errf(http.StatusInternalServerError, "failed to create payment")
	}

	s.notifier.Dispatch(paymentSlackEvent("on_payment_initiated", payment))
	return payment, nil
}

// UpdatePayment applies the gateway outcome. Credit moves exactly once,
// on the transition into completed, and moves back if a completed
// payment is later cancelled.
func (s *PaymentService) UpdatePayment(ctx context.Context, user *models.User, paymentID uint, req *dto.PaymentUpdateRequest) (*models.Payment, error) {
	payment, err := s.repo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, common.Errf(http.StatusNotFound, "payment not found")
	}
	if payment.UserID != user.ID && !user.IsSuperuser {
		return nil, common.Errf(http.StatusNotFound, "payment not found")
	}

	prev := payment.Status
	next := models.PaymentStatus(req.Status)
	if prev == next {
		return payment, nil
	}

	payment.Status = next
	if req.PaymentID != "" {
		payment.PaymentID = req.PaymentID
	}
	if req.PaymentData != nil {
		payment.PaymentData = datatypes.JSONMap(req.PaymentData)
	}

	if err := s.repo.Save(ctx, payment); err != nil {
		return nil, common.Errf(http.StatusInternalServerError, "failed to update payment")
	}

	switch {
	case next == models.PaymentCompleted && prev != models.PaymentCompleted:
		delta := payment.Type.CreditDelta(payment.Amount)
		if err := s.users.AdjustCredit(ctx, payment.UserID, delta); err != nil {
			log.Printf("[payment] credit adjustment for payment %d failed: %v", payment.ID, err)
		}
		s.notifier.Dispatch(
			paymentSlackEvent("on_payment_completed", payment),
			receiptEvent(payment),
		)

	case prev == models.PaymentCompleted && next == models.PaymentCancelled:
		delta := -payment.Type.CreditDelta(payment.Amount)
		if err := s.users.AdjustCredit(ctx, payment.UserID, delta); err != nil {
			log.Printf("[payment] credit reversal for payment %d failed: %v", payment.ID, err)
		}
		s.notifier.Dispatch(paymentSlackEvent("on_payment_cancelled", payment))

	default:
		s.notifier.Dispatch(paymentSlackEvent(fmt.Sprintf("on_payment_%s", next), payment))
	}

	return payment, nil
}

// RedeemCoupon burns a coupon code into a completed payment.
func (s *PaymentService) RedeemCoupon(ctx context.Context, user *models.User, code string) (*models.Payment, error) {
	coupon, err := s.repo.CouponByCode(ctx, code)
	if err != nil {
		return nil, common.Errf(http.StatusBadRequest, "coupon code is not valid")
	}
	if coupon.IsRedeemed {
		return nil, common.Errf(http.StatusBadRequest, "coupon code is already redeemed")
	}

	coupon.IsRedeemed = true
	if err := s.repo.SaveCoupon(ctx, coupon); err != nil {
		return nil, common.Errf(http.StatusInternalServerError, "failed to redeem coupon")
	}

	payment := &models.Payment{
		UserID:    user.ID,
		User:      *user,
		Type:      models.PaymentTypeCoupon,
		Status:    models.PaymentCompleted,
		Amount:    coupon.Amount,
		PaymentID: coupon.Code,
		Currency:  "usd",
	}
	if err := s.repo.Create(ctx, payment); err != nil {
		return nil, common.Errf(http.StatusInternalServerError, "failed to record coupon payment")
	}

	if err := s.users.AdjustCredit(ctx, user.ID, coupon.Amount); err != nil {
		log.Printf("[payment] credit adjustment for coupon %q failed: %v", coupon.Code, err)
	}

	s.notifier.Dispatch(
		paymentSlackEvent("on_coupon_redeemed", payment),
		receiptEvent(payment),
	)
	return payment, nil
}

func (s *PaymentService) ListPayments(ctx context.Context, user *models.User) ([]dto.PaymentResponse, error) {
	payments, err := s.repo.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, common.Errf(http.StatusInternalServerError, "failed to list payments")
	}

	out := make([]dto.PaymentResponse, len(payments))
	for i := range payments {
		out[i] = dto.PaymentResponse{
			ID:        payments[i].ID,
			User:      user.Username,
			Type:      string(payments[i].Type),
			Status:    string(payments[i].Status),
			Amount:    payments[i].Amount,
			PaymentID: payments[i].PaymentID,
			Currency:  payments[i].Currency,
			CreatedAt: payments[i].CreatedAt,
		}
	}
	return out, nil
}

func (s *PaymentService) Packages(ctx context.Context) ([]models.PromotionPackage, error) {
	packages, err := s.repo.Packages(ctx)
	if err != nil {
		return nil, common.Errf(http.StatusInternalServerError, "failed to list packages")
	}
	return packages, nil
}

func paymentSlackEvent(event string, p *models.Payment) notify.Event {
	return notify.Event{
		Name: event,
		Slack: &notify.SlackMessage{
			Event: event,
			Data: map[string]any{
				"user":     p.User.Username,
				"type":     string(p.Type),
				"amount":   p.Amount,
				"currency": p.Currency,
			},
		},
	}
}

func receiptEvent(p *models.Payment) notify.Event {
	if p.User.Email == "" {
		return notify.Event{Name: "on_payment_receipt"}
	}

	return notify.Event{
		Name: "on_payment_receipt",
		Email: &notify.EmailMessage{
			To:         p.User.Email,
			Subject:    fmt.Sprintf("Payment receipt #%d", p.ID),
			Body:       fmt.Sprintf("Your %s payment of %.2f %s is completed.", p.Type, p.Amount, p.Currency),
			ActionText: "Payment History",
			ActionURL:  "/payments",
		},
	}
}
