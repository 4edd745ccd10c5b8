package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Heartbeat answers liveness probes with an empty 200.
func (a *API) Heartbeat(c *gin.Context) {
	c.Status(http.StatusOK)
}
