package utils

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func traceID(c *gin.Context) string {
	v, _ := c.Get("trace_id")
	id, _ := v.(string)
	return id
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: traceID(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceID(c),
	})
}

func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrBusinessNotFound),
		errors.Is(err, ErrOfferingNotFound),
		errors.Is(err, ErrImageNotFound),
		errors.Is(err, ErrReviewNotFound),
		errors.Is(err, ErrAccountNotFound),
		errors.Is(err, ErrCategoryNotFound),
		errors.Is(err, ErrSettingNotFound):
		RespondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrInvalidPage):
		RespondError(c, http.StatusBadRequest, "Page must be greater than 0")
	case errors.Is(err, ErrInvalidPageSize):
		RespondError(c, http.StatusBadRequest, "Page size must be between 1 and 100")
	case errors.Is(err, ErrInvalidInput):
		RespondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrInvalidResetToken):
		RespondError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrEmailAlreadyExists), errors.Is(err, ErrDuplicateReview):
		RespondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, ErrInvalidStatusTransition):
		RespondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, ErrImageRejected):
		RespondError(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, ErrRefreshRunning):
		RespondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, ErrUpstreamFailed), errors.Is(err, ErrEmbeddingFailed):
		log.Printf("Upstream error: %v", err)
		RespondError(c, http.StatusBadGateway, "Upstream service failed")
	case errors.Is(err, ErrDatabaseError):
		log.Printf("Database error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		log.Printf("Unknown error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
