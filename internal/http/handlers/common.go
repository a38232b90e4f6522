package handlers

import (
	"net/http"
	"sync"

	intconfig "metrobook/internal/config"
	"metrobook/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

var (
	cfgMu sync.RWMutex
	cfg   intconfig.Env
)

// Configure stores the runtime settings the handlers need (JWT secret,
// upload directory). Called once from the router.
func Configure(env intconfig.Env) {
	cfgMu.Lock()
	defer cfgMu.Unlock()
	cfg = env
}

func envConfig() intconfig.Env {
	cfgMu.RLock()
	defer cfgMu.RUnlock()
	return cfg
}

// RespondError sends the standard failure payload with request_id included.
func RespondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success":    false,
		"message":    message,
		"request_id": middleware.GetRequestID(c),
	})
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		RespondError(c, http.StatusBadRequest, "empty request body")
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid request payload")
		return false
	}
	return true
}
