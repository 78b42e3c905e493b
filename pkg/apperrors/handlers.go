package apperrors

import (
	"log/slog"

	"github.com/gin-gonic/gin"
)

// GinErrorHandler renders AppErrors as the API's error envelope.
type GinErrorHandler struct {
	Debug bool
}

// HandleGinError converts any error into the `{success: false, message}` body.
func (h *GinErrorHandler) HandleGinError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
		if !h.Debug {
			appErr.Message = "Internal server error"
			appErr.Details = nil
		}
	}

	if appErr.HTTPCode >= 500 {
		slog.Error("server error", "error", appErr.Error())
	}

	body := gin.H{
		"success": false,
		"message": appErr.Message,
	}
	if appErr.Details != nil {
		body["errors"] = appErr.Details
	}
	c.JSON(appErr.HTTPCode, body)
}

// HandleError is the helper used by handlers.
func HandleError(c *gin.Context, err error) {
	handler := &GinErrorHandler{Debug: gin.Mode() != gin.ReleaseMode}
	handler.HandleGinError(c, err)
}

// AsAppError tries to interpret err as *AppError.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
