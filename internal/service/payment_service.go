package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/noah-isme/edupay-api/internal/gateway"
	"github.com/noah-isme/edupay-api/internal/mirror"
	"github.com/noah-isme/edupay-api/internal/models"
	appErrors "github.com/noah-isme/edupay-api/pkg/errors"
)

type registrationRepository interface {
	CreateConfirmed(ctx context.Context, reg *models.StudentRegistration, sideEffects func(*models.StudentRegistration) error) error
	ExistsByPaymentID(ctx context.Context, paymentID string) (bool, error)
	List(ctx context.Context) ([]models.StudentRegistration, error)
}

type paymentGateway interface {
	CreateOrder(amount float64, receipt string, notes map[string]interface{}) (*gateway.Order, error)
	Verify(orderID, paymentID, signature string) bool
}

type mirrorStore interface {
	AppendRow(kind mirror.Kind, row []string) error
}

type registrationNotifier interface {
	SendPaymentConfirmation(reg *models.StudentRegistration) error
}

// StudentInfo carries the payer details attached to the payment callback.
type StudentInfo struct {
	Name   string `json:"name" validate:"required"`
	Email  string `json:"email" validate:"required,email"`
	Phone  string `json:"phone" validate:"required"`
	Course string `json:"course" validate:"required"`
	Amount string `json:"amount" validate:"required"`
}

// CreateOrderRequest holds the payload for gateway order creation.
type CreateOrderRequest struct {
	Name   string `json:"name" validate:"required"`
	Email  string `json:"email" validate:"required,email"`
	Phone  string `json:"phone" validate:"required"`
	Course string `json:"course" validate:"required"`
	Amount string `json:"amount" validate:"required"`
}

// Prefill is the payer info echoed back for the gateway checkout form.
type Prefill struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Contact string `json:"contact"`
}

// OrderResponse is the client-facing order descriptor with prefill.
type OrderResponse struct {
	OrderID  string  `json:"order_id"`
	Amount   int64   `json:"amount"`
	Currency string  `json:"currency"`
	KeyID    string  `json:"key_id"`
	Prefill  Prefill `json:"prefill"`
}

// VerifyPaymentRequest is the payment-gateway callback payload.
type VerifyPaymentRequest struct {
	RazorpayOrderID   string      `json:"razorpay_order_id" validate:"required"`
	RazorpayPaymentID string      `json:"razorpay_payment_id" validate:"required"`
	RazorpaySignature string      `json:"razorpay_signature" validate:"required"`
	StudentInfo       StudentInfo `json:"student_info" validate:"required"`
}

// ConfirmedMessage is returned to the client once the whole pipeline
// has committed.
const ConfirmedMessage = "Payment successful and records updated"

// PaymentService drives the payment-confirmation pipeline: signature
// verification, the registration transaction, the spreadsheet mirror and
// the confirmation mail. The mirror write and the mail send run inside
// the database transaction, so a failure in either rolls the registration
// back and the client is told processing failed.
type PaymentService struct {
	repo      registrationRepository
	gateway   paymentGateway
	mirror    mirrorStore
	notifier  registrationNotifier
	guard     *redis.Client
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewPaymentService constructs the payment service. The redis guard is
// optional; without it replayed callbacks are only caught by the store.
func NewPaymentService(repo registrationRepository, gw paymentGateway, mirror mirrorStore, notifier registrationNotifier, guard *redis.Client, validate *validator.Validate, logger *zap.Logger) *PaymentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentService{
		repo:      repo,
		gateway:   gw,
		mirror:    mirror,
		notifier:  notifier,
		guard:     guard,
		validator: validate,
		logger:    logger,
	}
}

// WithMetrics attaches the instrumentation service and returns the
// receiver for chaining.
func (s *PaymentService) WithMetrics(m *MetricsService) *PaymentService {
	s.metrics = m
	return s
}

// CreateOrder registers a gateway order for the requested registration.
func (s *PaymentService) CreateOrder(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "missing registration fields")
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return nil, err
	}

	order, err := s.gateway.CreateOrder(amount, uuid.NewString(), map[string]interface{}{
		"name":   req.Name,
		"email":  req.Email,
		"course": req.Course,
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrGateway.Code, appErrors.ErrGateway.Status, appErrors.ErrGateway.Message)
	}

	return &OrderResponse{
		OrderID:  order.OrderID,
		Amount:   order.Amount,
		Currency: order.Currency,
		KeyID:    order.KeyID,
		Prefill:  Prefill{Name: req.Name, Email: req.Email, Contact: req.Phone},
	}, nil
}

// Confirm runs the core pipeline for a payment callback. No record is
// written unless the signature verifies; once it does, the insert, the
// mirror row and the confirmation mail commit or fail as one unit.
func (s *PaymentService) Confirm(ctx context.Context, req VerifyPaymentRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "missing payment fields")
	}
	amount, err := parseAmount(req.StudentInfo.Amount)
	if err != nil {
		return err
	}

	if !s.gateway.Verify(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
		return appErrors.Clone(appErrors.ErrInvalidSignature, "Invalid signature")
	}

	exists, err := s.repo.ExistsByPaymentID(ctx, req.RazorpayPaymentID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrProcessing.Code, appErrors.ErrProcessing.Status, appErrors.ErrProcessing.Message)
	}
	if exists {
		return appErrors.Clone(appErrors.ErrDuplicatePayment, "")
	}

	release, err := s.reserve(ctx, req.RazorpayPaymentID)
	if err != nil {
		return err
	}

	reg := &models.StudentRegistration{
		Name:      req.StudentInfo.Name,
		Email:     req.StudentInfo.Email,
		Phone:     req.StudentInfo.Phone,
		Course:    req.StudentInfo.Course,
		Amount:    amount,
		PaymentID: req.RazorpayPaymentID,
		OrderID:   req.RazorpayOrderID,
	}

	err = s.repo.CreateConfirmed(ctx, reg, func(created *models.StudentRegistration) error {
		appendStart := time.Now()
		if err := s.mirror.AppendRow(mirror.KindStudents, mirror.StudentRow(created)); err != nil {
			return err
		}
		s.metrics.ObserveMirrorAppend(time.Since(appendStart))
		return s.notifier.SendPaymentConfirmation(created)
	})
	if err != nil {
		release()
		s.logger.Error("payment confirmation rolled back",
			zap.String("payment_id", req.RazorpayPaymentID),
			zap.Error(err),
		)
		return appErrors.Wrap(err, appErrors.ErrProcessing.Code, appErrors.ErrProcessing.Status, appErrors.ErrProcessing.Message)
	}

	s.logger.Info("payment confirmed",
		zap.Int64("registration_id", reg.ID),
		zap.String("payment_id", reg.PaymentID),
		zap.String("course", reg.Course),
	)
	return nil
}

// List returns all registrations, newest first.
func (s *PaymentService) List(ctx context.Context) ([]models.StudentRegistration, error) {
	registrations, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list registrations")
	}
	return registrations, nil
}

// reserve takes a short-lived replay guard on the payment id. Redis being
// unavailable degrades to no guard; it never blocks a payment.
func (s *PaymentService) reserve(ctx context.Context, paymentID string) (release func(), err error) {
	release = func() {}
	if s.guard == nil {
		return release, nil
	}
	key := "payment:" + paymentID
	ok, guardErr := s.guard.SetNX(ctx, key, 1, 24*time.Hour).Result()
	if guardErr != nil {
		s.logger.Warn("payment replay guard unavailable", zap.Error(guardErr))
		return release, nil
	}
	if !ok {
		return release, appErrors.Clone(appErrors.ErrDuplicatePayment, "")
	}
	return func() {
		if delErr := s.guard.Del(context.Background(), key).Err(); delErr != nil {
			s.logger.Warn("failed to release replay guard", zap.Error(delErr))
		}
	}, nil
}

func parseAmount(raw string) (float64, error) {
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil || amount <= 0 {
		if err == nil {
			err = fmt.Errorf("amount %q not positive", raw)
		}
		return 0, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid amount")
	}
	return amount, nil
}
