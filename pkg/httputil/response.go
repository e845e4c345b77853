package httputil

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/hospital-api/pkg/errors"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Response wraps all API responses
type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// RespondWithData sends a success response with the given status code.
func RespondWithData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Response{
		Status: StatusSuccess,
		Data:   data,
	})
}

// RespondWithSuccess sends a 200 success response
func RespondWithSuccess(c *gin.Context, data interface{}) {
	RespondWithData(c, http.StatusOK, data)
}

// RespondWithMessage sends a 200 success response carrying only a message.
func RespondWithMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Response{
		Status:  StatusSuccess,
		Message: message,
	})
}

// RespondWithError translates err into a status code and error body. Internal
// failures are logged and answered with a generic message.
func RespondWithError(c *gin.Context, err error) {
	respondWithError(c, err, false)
}

// RespondWithErrorDetail is RespondWithError but surfaces the underlying
// message of internal failures to the caller.
func RespondWithErrorDetail(c *gin.Context, err error) {
	respondWithError(c, err, true)
}

func respondWithError(c *gin.Context, err error, detail bool) {
	statusCode := http.StatusInternalServerError
	message := "internal server error"

	if appErr, ok := errors.As(err); ok {
		statusCode = appErr.StatusCode()
		if statusCode != http.StatusInternalServerError {
			message = appErr.Message
		}
	}

	if statusCode == http.StatusInternalServerError {
		log.Error().
			Err(err).
			Str("request_id", c.GetString("request_id")).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("request failed")
		if detail {
			message = rootMessage(err)
		}
	}

	c.AbortWithStatusJSON(statusCode, Response{
		Status:  StatusError,
		Message: message,
	})
}

func rootMessage(err error) string {
	if appErr, ok := errors.As(err); ok && appErr.Err != nil {
		return appErr.Err.Error()
	}
	return err.Error()
}
