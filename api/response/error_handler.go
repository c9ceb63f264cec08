package response

import (
	stdErrors "errors"
	"net/http"
	"runtime"

	"shop/domain/shared"
	"shop/pkg/errors"
	"shop/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func GetRequestID(c *gin.Context) string {
	if requestID, exists := c.Get(RequestIDKey); exists {
		if id, ok := requestID.(string); ok {
			return id
		}
	}
	return ""
}

func captureStack(skip int) []string {
	var pcs [16]uintptr
	n := runtime.Callers(skip, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])

	stack := make([]string, 0, 5)
	for i := 0; i < 5; i++ {
		frame, more := frames.Next()
		if frame.Function != "" {
			stack = append(stack, frame.Function)
		}
		if !more {
			break
		}
	}
	return stack
}

// HandleBindError request binding and path parameter failures, always 400
func HandleBindError(c *gin.Context, err error, message string) {
	requestID := GetRequestID(c)

	logger.FromContext(c.Request.Context()).Warn(message,
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.Error(err))

	c.JSON(http.StatusBadRequest, &Response{
		Success:   false,
		Error:     string(errors.CodeBadRequest),
		Message:   message,
		Code:      http.StatusBadRequest,
		RequestID: requestID,
	})
}

// HandleError maps err to an error code and HTTP status and logs it with the stack of its origin
func HandleError(c *gin.Context, err error) {
	requestID := GetRequestID(c)
	appErr := errors.FromDomainError(err)
	httpStatus := appErr.HTTPStatusCode()

	fields := []zap.Field{
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.String("error_code", string(appErr.Code)),
		zap.Int("http_status", httpStatus),
		zap.Strings("stack", extractStack(err)),
	}
	if appErr.Err != nil {
		fields = append(fields, zap.Error(appErr.Err))
	}

	log := logger.FromContext(c.Request.Context())
	if httpStatus >= http.StatusInternalServerError {
		log.Error(appErr.Message, fields...)
	} else {
		log.Warn(appErr.Message, fields...)
	}

	c.JSON(httpStatus, &Response{
		Success:   false,
		Error:     string(appErr.Code),
		Message:   appErr.Message,
		Code:      httpStatus,
		RequestID: requestID,
	})
}

func extractStack(err error) []string {
	var stacker shared.Stacker
	if stdErrors.As(err, &stacker) {
		if stack := stacker.Stack(); len(stack) > 0 {
			return stack
		}
	}
	// skip: Callers, captureStack, extractStack, HandleError
	return captureStack(4)
}
