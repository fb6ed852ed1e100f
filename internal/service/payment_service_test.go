package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/edupay-api/internal/gateway"
	"github.com/noah-isme/edupay-api/internal/mirror"
	"github.com/noah-isme/edupay-api/internal/models"
	appErrors "github.com/noah-isme/edupay-api/pkg/errors"
)

type mockRegistrationRepo struct {
	createCalls int
	existsCalls int
	exists      bool
	existsErr   error
	createErr   error
	effectErr   error
	created     *models.StudentRegistration
	list        []models.StudentRegistration
	listErr     error
}

func (m *mockRegistrationRepo) CreateConfirmed(ctx context.Context, reg *models.StudentRegistration, sideEffects func(*models.StudentRegistration) error) error {
	m.createCalls++
	if m.createErr != nil {
		return m.createErr
	}
	reg.ID = 42
	reg.PaymentStatus = models.PaymentStatusSuccessful
	if err := sideEffects(reg); err != nil {
		m.effectErr = err
		return err
	}
	m.created = reg
	return nil
}

func (m *mockRegistrationRepo) ExistsByPaymentID(ctx context.Context, paymentID string) (bool, error) {
	m.existsCalls++
	return m.exists, m.existsErr
}

func (m *mockRegistrationRepo) List(ctx context.Context) ([]models.StudentRegistration, error) {
	return m.list, m.listErr
}

type mockGateway struct {
	verifyResult bool
	verifyCalls  int
	order        *gateway.Order
	orderErr     error
}

func (m *mockGateway) CreateOrder(amount float64, receipt string, notes map[string]interface{}) (*gateway.Order, error) {
	if m.orderErr != nil {
		return nil, m.orderErr
	}
	return m.order, nil
}

func (m *mockGateway) Verify(orderID, paymentID, signature string) bool {
	m.verifyCalls++
	return m.verifyResult
}

type mockMirror struct {
	rows [][]string
	kind []mirror.Kind
	err  error
}

func (m *mockMirror) AppendRow(kind mirror.Kind, row []string) error {
	if m.err != nil {
		return m.err
	}
	m.kind = append(m.kind, kind)
	m.rows = append(m.rows, row)
	return nil
}

type mockNotifier struct {
	payments []*models.StudentRegistration
	err      error
}

func (m *mockNotifier) SendPaymentConfirmation(reg *models.StudentRegistration) error {
	if m.err != nil {
		return m.err
	}
	m.payments = append(m.payments, reg)
	return nil
}

func validVerifyRequest() VerifyPaymentRequest {
	return VerifyPaymentRequest{
		RazorpayOrderID:   "order_abc",
		RazorpayPaymentID: "pay_xyz",
		RazorpaySignature: "deadbeef",
		StudentInfo: StudentInfo{
			Name:   "Asha Verma",
			Email:  "asha@example.com",
			Phone:  "+919876543210",
			Course: "Data Structures",
			Amount: "4999.00",
		},
	}
}

func TestConfirmInvalidSignature(t *testing.T) {
	repo := &mockRegistrationRepo{}
	gw := &mockGateway{verifyResult: false}
	svc := NewPaymentService(repo, gw, &mockMirror{}, &mockNotifier{}, nil, nil, nil)

	err := svc.Confirm(context.Background(), validVerifyRequest())

	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, "Invalid signature", appErr.Message)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
	assert.Equal(t, 1, gw.verifyCalls)
	assert.Zero(t, repo.createCalls, "no record may be written for a bad signature")
	assert.Zero(t, repo.existsCalls)
}

func TestConfirmMissingFields(t *testing.T) {
	gw := &mockGateway{verifyResult: true}
	svc := NewPaymentService(&mockRegistrationRepo{}, gw, &mockMirror{}, &mockNotifier{}, nil, nil, nil)

	req := validVerifyRequest()
	req.StudentInfo.Email = ""
	err := svc.Confirm(context.Background(), req)

	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, appErrors.FromError(err).Status)
	assert.Zero(t, gw.verifyCalls, "validation runs before signature checks")
}

func TestConfirmNonNumericAmount(t *testing.T) {
	svc := NewPaymentService(&mockRegistrationRepo{}, &mockGateway{verifyResult: true}, &mockMirror{}, &mockNotifier{}, nil, nil, nil)

	req := validVerifyRequest()
	req.StudentInfo.Amount = "not-a-number"
	err := svc.Confirm(context.Background(), req)

	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, appErrors.FromError(err).Status)
}

func TestConfirmSuccess(t *testing.T) {
	repo := &mockRegistrationRepo{}
	mir := &mockMirror{}
	notif := &mockNotifier{}
	svc := NewPaymentService(repo, &mockGateway{verifyResult: true}, mir, notif, nil, nil, nil)

	err := svc.Confirm(context.Background(), validVerifyRequest())

	require.NoError(t, err)
	require.NotNil(t, repo.created)
	assert.Equal(t, int64(42), repo.created.ID)
	assert.Equal(t, models.PaymentStatusSuccessful, repo.created.PaymentStatus)
	assert.Equal(t, 4999.00, repo.created.Amount)

	require.Len(t, mir.rows, 1)
	assert.Equal(t, mirror.KindStudents, mir.kind[0])
	require.Len(t, notif.payments, 1)
	assert.Equal(t, "pay_xyz", notif.payments[0].PaymentID)
}

func TestConfirmMirrorFailureRollsBack(t *testing.T) {
	repo := &mockRegistrationRepo{}
	mir := &mockMirror{err: errors.New("disk full")}
	notif := &mockNotifier{}
	svc := NewPaymentService(repo, &mockGateway{verifyResult: true}, mir, notif, nil, nil, nil)

	err := svc.Confirm(context.Background(), validVerifyRequest())

	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, http.StatusInternalServerError, appErr.Status)
	assert.Equal(t, appErrors.ErrProcessing.Message, appErr.Message)
	assert.Nil(t, repo.created, "the registration must not survive a mirror failure")
	assert.Empty(t, notif.payments, "mail is skipped once the mirror write fails")
}

func TestConfirmMailFailureRollsBack(t *testing.T) {
	repo := &mockRegistrationRepo{}
	mir := &mockMirror{}
	notif := &mockNotifier{err: errors.New("smtp refused")}
	svc := NewPaymentService(repo, &mockGateway{verifyResult: true}, mir, notif, nil, nil, nil)

	err := svc.Confirm(context.Background(), validVerifyRequest())

	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, appErrors.FromError(err).Status)
	assert.Nil(t, repo.created)
	require.Len(t, mir.rows, 1, "the mirror row is written before the mail attempt")
}

func TestConfirmDuplicatePayment(t *testing.T) {
	repo := &mockRegistrationRepo{exists: true}
	svc := NewPaymentService(repo, &mockGateway{verifyResult: true}, &mockMirror{}, &mockNotifier{}, nil, nil, nil)

	err := svc.Confirm(context.Background(), validVerifyRequest())

	require.Error(t, err)
	assert.Equal(t, appErrors.ErrDuplicatePayment.Code, appErrors.FromError(err).Code)
	assert.Zero(t, repo.createCalls)
}

func TestCreateOrderSuccess(t *testing.T) {
	gw := &mockGateway{order: &gateway.Order{
		OrderID:  "order_abc",
		Amount:   499900,
		Currency: "INR",
		KeyID:    "rzp_test_key",
	}}
	svc := NewPaymentService(&mockRegistrationRepo{}, gw, &mockMirror{}, &mockNotifier{}, nil, nil, nil)

	resp, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		Name:   "Asha Verma",
		Email:  "asha@example.com",
		Phone:  "+919876543210",
		Course: "Data Structures",
		Amount: "4999",
	})

	require.NoError(t, err)
	assert.Equal(t, "order_abc", resp.OrderID)
	assert.Equal(t, int64(499900), resp.Amount)
	assert.Equal(t, "INR", resp.Currency)
	assert.Equal(t, "rzp_test_key", resp.KeyID)
	assert.Equal(t, "Asha Verma", resp.Prefill.Name)
	assert.Equal(t, "+919876543210", resp.Prefill.Contact)
}

func TestCreateOrderGatewayError(t *testing.T) {
	gw := &mockGateway{orderErr: errors.New("gateway down")}
	svc := NewPaymentService(&mockRegistrationRepo{}, gw, &mockMirror{}, &mockNotifier{}, nil, nil, nil)

	_, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		Name:   "Asha Verma",
		Email:  "asha@example.com",
		Phone:  "+919876543210",
		Course: "Data Structures",
		Amount: "4999",
	})

	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, appErrors.FromError(err).Status)
}

func TestCreateOrderMissingFields(t *testing.T) {
	svc := NewPaymentService(&mockRegistrationRepo{}, &mockGateway{}, &mockMirror{}, &mockNotifier{}, nil, nil, nil)

	_, err := svc.CreateOrder(context.Background(), CreateOrderRequest{Name: "Asha"})

	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, appErrors.FromError(err).Status)
}
