package mirror

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/noah-isme/edupay-api/internal/models"
)

func readSheet(t *testing.T, path, sheet string) [][]string {
	t.Helper()
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	return rows
}

func TestAppendRowCreatesFileWithHeader(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	err = store.AppendRow(KindStudents, []string{"1", "Asha Verma", "asha@example.com", "+919876543210", "Data Structures", "4999.00", "pay_xyz", "order_abc", "successful", "30/08/2026, 10:15:00"})
	require.NoError(t, err)

	rows := readSheet(t, filepath.Join(dir, "students.xlsx"), "Students")
	require.Len(t, rows, 2)
	assert.Equal(t, "ID", rows[0][0])
	assert.Equal(t, "Payment ID", rows[0][6])
	assert.Equal(t, "Registration Date", rows[0][9])
	assert.Equal(t, "Asha Verma", rows[1][1])
	assert.Equal(t, "pay_xyz", rows[1][6])
}

func TestAppendRowAppendsToExistingFile(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.AppendRow(KindContacts, []string{"1", "A", "a@example.com", "", "S1", "M1", "30/08/2026, 10:00:00"}))
	require.NoError(t, store.AppendRow(KindContacts, []string{"2", "B", "b@example.com", "", "S2", "M2", "30/08/2026, 10:05:00"}))

	rows := readSheet(t, filepath.Join(dir, "contact_messages.xlsx"), "Contact Messages")
	require.Len(t, rows, 3)
	assert.Equal(t, "A", rows[1][1])
	assert.Equal(t, "B", rows[2][1])
}

func TestAppendRowUnknownKind(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	err = store.AppendRow(Kind("invoices"), []string{"1"})
	assert.Error(t, err)
}

func TestAppendRowConcurrent(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	const writers = 8
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			err := store.AppendRow(KindAbout, []string{"1", "X", "x@example.com", "Subject", "Message", "30/08/2026, 10:00:00"})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	rows := readSheet(t, filepath.Join(dir, "about_inquiries.xlsx"), "About Inquiries")
	assert.Len(t, rows, writers+1, "no append may be lost under concurrency")
}

func TestOpenAllowlist(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.AppendRow(KindStudents, []string{"1"}))

	f, err := store.Open("students.xlsx")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	_, err = store.Open("../../../etc/passwd")
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = store.Open("unknown.xlsx")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestStudentRowProjection(t *testing.T) {
	registered := time.Date(2026, 8, 30, 10, 15, 0, 0, time.Local)
	reg := &models.StudentRegistration{
		ID:            12,
		Name:          "Asha Verma",
		Email:         "asha@example.com",
		Phone:         "+919876543210",
		Course:        "Data Structures",
		Amount:        4999,
		PaymentID:     "pay_xyz",
		OrderID:       "order_abc",
		PaymentStatus: models.PaymentStatusSuccessful,
		RegisteredAt:  registered,
	}

	row := StudentRow(reg)
	require.Len(t, row, len(sheets[KindStudents].headers))
	assert.Equal(t, "12", row[0])
	assert.Equal(t, "4999.00", row[5])
	assert.Equal(t, "successful", row[8])
	assert.Equal(t, "30/08/2026, 10:15:00", row[9])
}
