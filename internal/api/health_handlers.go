package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/waxads/easy-grown/internal/response"
)

const pingTimeout = 2 * time.Second

// GetHealth reports whether the store answers a ping.
func GetHealth(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
		defer cancel()
		if err := app.Ping(ctx); err != nil {
			HandleError(c, app.Logger(), err, http.StatusServiceUnavailable, MsgStoreUnavailable)
			return
		}
		HandleSuccess(c, app.Logger(), response.Health{Status: "ok"})
	}
}
