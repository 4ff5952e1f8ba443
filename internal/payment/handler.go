package payment

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/realchief/RenderShotPanel/common"
	"github.com/realchief/RenderShotPanel/internal/dto"
	"github.com/realchief/RenderShotPanel/middleware"
)

type PaymentHandler struct {
	service PaymentServiceInterface
}

func NewPaymentHandler(s PaymentServiceInterface) *PaymentHandler {
	return &PaymentHandler{service: s}
}

var _ PaymentHandlerInterface = (*PaymentHandler)(nil)

func (h *PaymentHandler) Create(c *gin.Context) {
	var req dto.PaymentCreateRequest
	if !middleware.Bind(c, &req) {
		return
	}

	payment, err := h.service.CreatePayment(c.Request.Context(), middleware.CurrentUser(c), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": payment.ID, "status": payment.Status})
}

func (h *PaymentHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil || id < 1 {
		c.Error(common.Errf(http.StatusBadRequest, "invalid ID"))
		return
	}

	var req dto.PaymentUpdateRequest
	if !middleware.Bind(c, &req) {
		return
	}

	payment, perr := h.service.UpdatePayment(c.Request.Context(), middleware.CurrentUser(c), uint(id), &req)
	if perr != nil {
		c.Error(perr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": payment.ID, "status": payment.Status})
}

func (h *PaymentHandler) List(c *gin.Context) {
	payments, err := h.service.ListPayments(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"payments": payments})
}

func (h *PaymentHandler) Redeem(c *gin.Context) {
	var req dto.CouponRedeemRequest
	if !middleware.Bind(c, &req) {
		return
	}

	payment, err := h.service.RedeemCoupon(c.Request.Context(), middleware.CurrentUser(c), req.Code)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": payment.ID, "amount": payment.Amount})
}

func (h *PaymentHandler) Packages(c *gin.Context) {
	packages, err := h.service.Packages(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"packages": packages})
}
