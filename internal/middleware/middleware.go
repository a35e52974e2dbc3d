package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	"task-reminder/pkg/log"
	"task-reminder/pkg/response"
	"task-reminder/pkg/telegram"
)

// TraceHeader echoes the request trace id back to the caller.
const TraceHeader = "X-Trace-Id"

// Trace stores a fresh trace id in the request context so every log line of the request carries it.
func (mw Middleware) Trace() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := log.WithTraceID(c.Request.Context())
		c.Request = c.Request.WithContext(ctx)
		c.Header(TraceHeader, log.TraceID(ctx))
		c.Next()
	}
}

// TelegramSecret rejects webhook calls whose secret token header does not match.
func (mw Middleware) TelegramSecret() gin.HandlerFunc {
	return func(c *gin.Context) {
		if mw.webhookSecret == "" {
			c.Next()
			return
		}

		got := c.GetHeader(telegram.SecretTokenHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(mw.webhookSecret)) != 1 {
			mw.l.Warnf(c.Request.Context(), "middleware.TelegramSecret: rejected request from %s", c.ClientIP())
			response.Unauthorized(c)
			return
		}
		c.Next()
	}
}
