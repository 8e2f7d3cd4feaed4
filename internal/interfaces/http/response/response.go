package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domainerrors "collex.backend/internal/domain/errors"
	"collex.backend/pkg/logger"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error sends an error response. Errors that are not typed AppErrors are
// treated as internal: logged with detail, surfaced without it.
func Error(c *gin.Context, err error) {
	var appErr *domainerrors.AppError
	if !errors.As(err, &appErr) {
		logger.Error(c.Request.Context(), "unhandled internal error", zap.Error(err))
		appErr = domainerrors.InternalError(err)
	} else if appErr.Status == http.StatusInternalServerError {
		logger.Error(c.Request.Context(), "internal error", zap.Error(appErr.Err))
	}

	c.JSON(appErr.Status, gin.H{
		"code":    appErr.Code,
		"message": appErr.Message,
	})
}
