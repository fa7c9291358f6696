package middleware

import (
	"errors"
	"net/http"

	"profile-directory/internal/delivery/http/response"
	"profile-directory/pkg/apperror"
	"profile-directory/pkg/logger"
	"profile-directory/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Check if there are errors appended to the context
		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Code >= http.StatusInternalServerError {
				logger.Log.Error("Request failed", "path", c.FullPath(), "error", appErr.Err)
				response.Error(c, appErr.Code, "An unexpected error occurred. Please try again later.", nil)
				return
			}

			var details interface{}
			var verrs validator.ValidationErrors
			if errors.As(appErr.Err, &verrs) {
				details = validation.FormatValidationErrors(verrs)
			}
			response.Error(c, appErr.Code, appErr.Message, details)
			return
		}

		// Never expose internal error details to clients.
		logger.Log.Error("Internal Server Error", "path", c.FullPath(), "error", err)
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
	}
}
