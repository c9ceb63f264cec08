// Package ctxutil moves request scoped values from gin into the request context
package ctxutil

import (
	"shop/api/response"
	"shop/infrastructure/persistence"

	"github.com/gin-gonic/gin"
)

// BindRequestID copies the request id set on c into c.Request's context, so services
// and the SQL logger below it log with the same id
func BindRequestID(c *gin.Context) {
	requestID := response.GetRequestID(c)
	if requestID == "" {
		return
	}
	c.Request = c.Request.WithContext(persistence.ContextWithRequestID(c.Request.Context(), requestID))
}
