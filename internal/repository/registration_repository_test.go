package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/edupay-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func sampleRegistration() *models.StudentRegistration {
	return &models.StudentRegistration{
		Name:      "Asha Verma",
		Email:     "asha@example.com",
		Phone:     "+919876543210",
		Course:    "Data Structures",
		Amount:    4999,
		PaymentID: "pay_xyz",
		OrderID:   "order_abc",
	}
}

func registrationColumns() []string {
	return []string{"id", "name", "email", "phone", "course", "amount", "payment_id", "order_id", "payment_status", "registered_at"}
}

func TestCreateConfirmedCommits(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRegistrationRepository(db)

	reg := sampleRegistration()
	registered := time.Now()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO students")).
		WithArgs(reg.Name, reg.Email, reg.Phone, reg.Course, reg.Amount, reg.PaymentID, reg.OrderID, models.PaymentStatusSuccessful).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, email, phone, course, amount, payment_id, order_id, payment_status, registered_at")).
		WithArgs(reg.PaymentID).
		WillReturnRows(sqlmock.NewRows(registrationColumns()).
			AddRow(12, reg.Name, reg.Email, reg.Phone, reg.Course, reg.Amount, reg.PaymentID, reg.OrderID, models.PaymentStatusSuccessful, registered))
	mock.ExpectCommit()

	var seen *models.StudentRegistration
	err := repo.CreateConfirmed(context.Background(), reg, func(created *models.StudentRegistration) error {
		seen = created
		return nil
	})

	require.NoError(t, err)
	require.NotNil(t, seen)
	assert.Equal(t, int64(12), seen.ID)
	assert.Equal(t, models.PaymentStatusSuccessful, seen.PaymentStatus)
	assert.WithinDuration(t, registered, seen.RegisteredAt, time.Second)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateConfirmedRollsBackOnSideEffectFailure(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRegistrationRepository(db)

	reg := sampleRegistration()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO students")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, email")).
		WithArgs(reg.PaymentID).
		WillReturnRows(sqlmock.NewRows(registrationColumns()).
			AddRow(12, reg.Name, reg.Email, reg.Phone, reg.Course, reg.Amount, reg.PaymentID, reg.OrderID, models.PaymentStatusSuccessful, time.Now()))
	mock.ExpectRollback()

	boom := errors.New("mirror write failed")
	err := repo.CreateConfirmed(context.Background(), reg, func(*models.StudentRegistration) error {
		return boom
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateConfirmedRollsBackOnInsertFailure(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRegistrationRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO students")).
		WillReturnError(errors.New("constraint violation"))
	mock.ExpectRollback()

	err := repo.CreateConfirmed(context.Background(), sampleRegistration(), func(*models.StudentRegistration) error {
		t.Fatal("side effects must not run when the insert fails")
		return nil
	})

	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateConfirmedRollsBackWhenReselectEmpty(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRegistrationRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO students")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, email")).
		WillReturnRows(sqlmock.NewRows(registrationColumns()))
	mock.ExpectRollback()

	err := repo.CreateConfirmed(context.Background(), sampleRegistration(), nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRegistrationMissing)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestExistsByPaymentID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRegistrationRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM students")).
		WithArgs("pay_xyz").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	exists, err := repo.ExistsByPaymentID(context.Background(), "pay_xyz")
	require.NoError(t, err)
	assert.True(t, exists)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM students")).
		WithArgs("pay_missing").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}))

	exists, err = repo.ExistsByPaymentID(context.Background(), "pay_missing")
	require.NoError(t, err)
	assert.False(t, exists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListNewestFirst(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRegistrationRepository(db)

	newer := time.Now()
	older := newer.Add(-time.Hour)
	mock.ExpectQuery(regexp.QuoteMeta("FROM students ORDER BY registered_at DESC")).
		WillReturnRows(sqlmock.NewRows(registrationColumns()).
			AddRow(2, "B", "b@example.com", "2", "Course", 100.0, "pay_2", "order_2", "successful", newer).
			AddRow(1, "A", "a@example.com", "1", "Course", 100.0, "pay_1", "order_1", "successful", older))

	registrations, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, registrations, 2)
	assert.Equal(t, int64(2), registrations[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}
