package httpserver

import (
	"task-reminder/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	HealthMessage = "Task reminder is up"
	HealthVersion = "1.0.0"
	ServiceName   = "task-reminder"
)

func probe(status string) gin.HandlerFunc {
	return func(c *gin.Context) {
		response.OK(c, gin.H{
			"status":  status,
			"message": HealthMessage,
			"version": HealthVersion,
			"service": ServiceName,
		})
	}
}

// healthCheck reports that the process is serving HTTP.
// @Summary Health Check
// @Tags Health
// @Produce json
// @Success 200 {object} response.Resp
// @Router /health [get]
func (srv *HTTPServer) healthCheck(c *gin.Context) { probe("healthy")(c) }

// readyCheck reports that routes are mapped.
// @Summary Readiness Check
// @Tags Health
// @Produce json
// @Success 200 {object} response.Resp
// @Router /ready [get]
func (srv *HTTPServer) readyCheck(c *gin.Context) { probe("ready")(c) }

// liveCheck is the liveness probe.
// @Summary Liveness Check
// @Tags Health
// @Produce json
// @Success 200 {object} response.Resp
// @Router /live [get]
func (srv *HTTPServer) liveCheck(c *gin.Context) { probe("alive")(c) }
