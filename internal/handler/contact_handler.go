package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/edupay-api/internal/service"
	appErrors "github.com/noah-isme/edupay-api/pkg/errors"
	"github.com/noah-isme/edupay-api/pkg/response"
)

// ContactHandler exposes the contact and about-inquiry submission and
// listing endpoints.
type ContactHandler struct {
	contacts *service.ContactService
}

func NewContactHandler(contacts *service.ContactService) *ContactHandler {
	return &ContactHandler{contacts: contacts}
}

// SubmitContact records a contact-form message.
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	var req service.SubmitContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SubmitError(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.contacts.SubmitContact(c.Request.Context(), req); err != nil {
		response.SubmitError(c, err)
		return
	}
	response.SubmitSuccess(c)
}

// SubmitAbout records an about-page inquiry.
func (h *ContactHandler) SubmitAbout(c *gin.Context) {
	var req service.SubmitAboutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.SubmitError(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.contacts.SubmitAbout(c.Request.Context(), req); err != nil {
		response.SubmitError(c, err)
		return
	}
	response.SubmitSuccess(c)
}

// ListContacts returns all contact messages, newest first.
func (h *ContactHandler) ListContacts(c *gin.Context) {
	messages, err := h.contacts.ListContacts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, messages)
}

// ListAbouts returns all about-page inquiries, newest first.
func (h *ContactHandler) ListAbouts(c *gin.Context) {
	inquiries, err := h.contacts.ListAbouts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, inquiries)
}
