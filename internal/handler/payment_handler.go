package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/edupay-api/internal/service"
	appErrors "github.com/noah-isme/edupay-api/pkg/errors"
	"github.com/noah-isme/edupay-api/pkg/response"
)

// PaymentHandler exposes the order-creation and payment-confirmation
// endpoints plus the registrations listing.
type PaymentHandler struct {
	payments *service.PaymentService
	metrics  *service.MetricsService
}

// NewPaymentHandler constructs PaymentHandler. Metrics may be nil.
func NewPaymentHandler(payments *service.PaymentService, metrics *service.MetricsService) *PaymentHandler {
	return &PaymentHandler{payments: payments, metrics: metrics}
}

// CreateOrder registers a payment-gateway order for a registration.
func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	var req service.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	order, err := h.payments.CreateOrder(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, order)
}

// Verify runs the payment-confirmation pipeline.
func (h *PaymentHandler) Verify(c *gin.Context) {
	var req service.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.metrics.RecordPaymentOutcome("rejected")
		response.PaymentError(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.payments.Confirm(c.Request.Context(), req); err != nil {
		if appErrors.FromError(err).Status == http.StatusInternalServerError {
			h.metrics.RecordPaymentOutcome("rolled_back")
		} else {
			h.metrics.RecordPaymentOutcome("rejected")
		}
		response.PaymentError(c, err)
		return
	}
	h.metrics.RecordPaymentOutcome("confirmed")
	response.PaymentSuccess(c, service.ConfirmedMessage)
}

// ListStudents returns all registrations, newest first.
func (h *PaymentHandler) ListStudents(c *gin.Context) {
	registrations, err := h.payments.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, registrations)
}
