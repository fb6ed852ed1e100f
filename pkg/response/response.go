package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/edupay-api/pkg/errors"
)

// PaymentResult is the client contract for the payment endpoints.
type PaymentResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// SubmissionResult is the client contract for the form-submission endpoints.
type SubmissionResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// JSON sends the payload as-is. Listing endpoints rely on this to return
// bare arrays.
func JSON(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// PaymentSuccess reports a fully processed payment.
func PaymentSuccess(c *gin.Context, message string) {
	c.JSON(http.StatusOK, PaymentResult{Status: "success", Message: message})
}

// PaymentError maps an error onto the payment failure shape.
func PaymentError(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.JSON(appErr.Status, PaymentResult{Status: "failure", Message: appErr.Message})
}

// SubmitSuccess reports a recorded form submission.
func SubmitSuccess(c *gin.Context) {
	c.JSON(http.StatusOK, SubmissionResult{Success: true})
}

// SubmitError maps an error onto the submission failure shape.
func SubmitError(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.JSON(appErr.Status, SubmissionResult{Success: false, Message: appErr.Message})
}

// Error sends the generic error envelope used by the admin and listing
// endpoints.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.JSON(appErr.Status, gin.H{"error": appErr})
}
