package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/rideaway/vehicle-rental/internal/apperr"
)

type ErrorDetail struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Response is the envelope every endpoint answers with.
type Response struct {
	Success       bool          `json:"success"`
	Message       string        `json:"message"`
	Data          any           `json:"data,omitempty"`
	ErrorMessages []ErrorDetail `json:"errorMessages,omitempty"`
}

func respondOK(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, Response{Success: true, Message: message, Data: data})
}

func respondCreated(c *gin.Context, message string, data any) {
	c.JSON(http.StatusCreated, Response{Success: true, Message: message, Data: data})
}

// respondBindError answers request-binding failures. Validator errors get
// field-level detail; anything else (malformed JSON, empty body) is still a
// client error.
func respondBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]ErrorDetail, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, ErrorDetail{
				Path:    strings.ToLower(fe.Field()),
				Message: validationMessage(fe),
			})
		}
		c.JSON(http.StatusBadRequest, Response{Success: false, Message: "Validation Error", ErrorMessages: details})
		return
	}

	c.JSON(http.StatusBadRequest, Response{
		Success:       false,
		Message:       "Validation Error",
		ErrorMessages: []ErrorDetail{{Path: "", Message: err.Error()}},
	})
}

func respondError(c *gin.Context, err error) {
	message := apperr.MessageOf(err)
	c.JSON(statusOf(apperr.KindOf(err)), Response{
		Success:       false,
		Message:       message,
		ErrorMessages: []ErrorDetail{{Path: "", Message: message}},
	})
}

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Response{
		Success:       false,
		Message:       message,
		ErrorMessages: []ErrorDetail{{Path: "", Message: message}},
	})
}

func statusOf(kind apperr.Kind) int {
	switch kind {
	case apperr.Validation:
		return http.StatusBadRequest
	case apperr.Unauthenticated:
		return http.StatusUnauthorized
	case apperr.Unauthorized:
		return http.StatusForbidden
	case apperr.NotFound:
		return http.StatusNotFound
	case apperr.Conflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "oneof":
		return "must be one of " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "min":
		return "must be at least " + fe.Param() + " characters"
	default:
		return "is invalid"
	}
}
