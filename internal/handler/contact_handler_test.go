package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/edupay-api/internal/models"
	"github.com/noah-isme/edupay-api/internal/service"
)

type fakeContactRepo struct {
	createCalls int
	list        []models.ContactMessage
}

func (f *fakeContactRepo) CreateRecorded(ctx context.Context, msg *models.ContactMessage, sideEffects func(*models.ContactMessage) error) error {
	f.createCalls++
	msg.ID = 7
	msg.CreatedAt = time.Now()
	return sideEffects(msg)
}

func (f *fakeContactRepo) List(ctx context.Context) ([]models.ContactMessage, error) {
	return f.list, nil
}

type fakeAboutRepo struct {
	list []models.AboutInquiry
}

func (f *fakeAboutRepo) CreateRecorded(ctx context.Context, inquiry *models.AboutInquiry, sideEffects func(*models.AboutInquiry) error) error {
	inquiry.ID = 3
	inquiry.CreatedAt = time.Now()
	return sideEffects(inquiry)
}

func (f *fakeAboutRepo) List(ctx context.Context) ([]models.AboutInquiry, error) {
	return f.list, nil
}

type fakeSubmissionNotifier struct{}

func (f *fakeSubmissionNotifier) SendContactAlert(msg *models.ContactMessage) error { return nil }
func (f *fakeSubmissionNotifier) SendAboutAlert(inquiry *models.AboutInquiry) error { return nil }

func newContactRouter(contacts *fakeContactRepo, abouts *fakeAboutRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := service.NewContactService(contacts, abouts, &fakeMirror{}, &fakeSubmissionNotifier{}, nil, nil)
	h := NewContactHandler(svc)

	r := gin.New()
	r.POST("/submit-contact", h.SubmitContact)
	r.POST("/submit-about-inquiry", h.SubmitAbout)
	r.GET("/api/contact-messages", h.ListContacts)
	r.GET("/api/about-inquiries", h.ListAbouts)
	return r
}

func TestSubmitContactSuccessShape(t *testing.T) {
	repo := &fakeContactRepo{}
	r := newContactRouter(repo, &fakeAboutRepo{})

	w := postJSON(t, r, "/submit-contact", map[string]string{
		"name":    "Ravi Kumar",
		"email":   "ravi@example.com",
		"subject": "Syllabus",
		"message": "Please share the syllabus.",
	})

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, 1, repo.createCalls)
}

func TestSubmitContactMissingFields(t *testing.T) {
	repo := &fakeContactRepo{}
	r := newContactRouter(repo, &fakeAboutRepo{})

	w := postJSON(t, r, "/submit-contact", map[string]string{"name": "Ravi Kumar"})

	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["success"])
	assert.Zero(t, repo.createCalls)
}

func TestSubmitAboutSuccessShape(t *testing.T) {
	r := newContactRouter(&fakeContactRepo{}, &fakeAboutRepo{})

	w := postJSON(t, r, "/submit-about-inquiry", map[string]string{
		"name":    "Meera Nair",
		"email":   "meera@example.com",
		"subject": "Partnership",
		"message": "We would like to collaborate.",
	})

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
}

func TestListContactsBareArray(t *testing.T) {
	repo := &fakeContactRepo{list: []models.ContactMessage{{ID: 2}, {ID: 1}}}
	r := newContactRouter(repo, &fakeAboutRepo{})

	req := httptest.NewRequest(http.MethodGet, "/api/contact-messages", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp []models.ContactMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, int64(2), resp[0].ID)
}
