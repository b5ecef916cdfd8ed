package endpoint

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/voicefeedback/version"
)

var startTime = time.Now()

// Info returns a handler that reports service, build and uptime information.
func Info(serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		body := gin.H{}
		for k, v := range version.Get().Fields() {
			body[k] = v
		}
		body["service"] = serviceName
		body["uptime"] = time.Since(startTime).Round(time.Second).String()
		body["timestamp"] = time.Now().UTC().Format(time.RFC3339)
		c.JSON(http.StatusOK, body)
	}
}
