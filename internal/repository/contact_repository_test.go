package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/edupay-api/internal/models"
)

func TestContactCreateRecordedCommits(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewContactRepository(db)

	phone := "+911234567890"
	msg := &models.ContactMessage{
		Name:    "Ravi Kumar",
		Email:   "ravi@example.com",
		Phone:   &phone,
		Subject: "Syllabus",
		Message: "Please share the syllabus.",
	}
	created := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO contact_messages")).
		WithArgs(msg.Name, msg.Email, msg.Phone, msg.Subject, msg.Message).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(7, created))
	mock.ExpectCommit()

	err := repo.CreateRecorded(context.Background(), msg, func(recorded *models.ContactMessage) error {
		assert.Equal(t, int64(7), recorded.ID)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, int64(7), msg.ID)
	assert.WithinDuration(t, created, msg.CreatedAt, time.Second)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestContactCreateRecordedRollsBackOnSideEffectFailure(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewContactRepository(db)

	msg := &models.ContactMessage{
		Name:    "Ravi Kumar",
		Email:   "ravi@example.com",
		Subject: "Syllabus",
		Message: "Please share the syllabus.",
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO contact_messages")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(7, time.Now()))
	mock.ExpectRollback()

	boom := errors.New("mail refused")
	err := repo.CreateRecorded(context.Background(), msg, func(*models.ContactMessage) error {
		return boom
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAboutCreateRecordedCommits(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAboutRepository(db)

	inquiry := &models.AboutInquiry{
		Name:    "Meera Nair",
		Email:   "meera@example.com",
		Subject: "Partnership",
		Message: "We would like to collaborate.",
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO about_inquiries")).
		WithArgs(inquiry.Name, inquiry.Email, inquiry.Subject, inquiry.Message).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(3, time.Now()))
	mock.ExpectCommit()

	err := repo.CreateRecorded(context.Background(), inquiry, nil)

	require.NoError(t, err)
	assert.Equal(t, int64(3), inquiry.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestContactListNewestFirst(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewContactRepository(db)

	newer := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FROM contact_messages ORDER BY created_at DESC")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "phone", "subject", "message", "created_at"}).
			AddRow(2, "B", "b@example.com", nil, "S2", "M2", newer).
			AddRow(1, "A", "a@example.com", nil, "S1", "M1", newer.Add(-time.Hour)))

	messages, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, int64(2), messages[0].ID)
	assert.Nil(t, messages[0].Phone)
	require.NoError(t, mock.ExpectationsWereMet())
}
