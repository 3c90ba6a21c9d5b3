package control

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
	errorTypeKey    = "error_type"
)

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// workerLimit caps concurrent operations. A request that cannot get a slot before its
// context ends is answered with 503.
func workerLimit(workers int, m *Metrics) gin.HandlerFunc {
	if workers < 1 {
		workers = 1
	}
	slots := make(chan struct{}, workers)
	return func(c *gin.Context) {
		select {
		case slots <- struct{}{}:
		case <-c.Request.Context().Done():
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, ErrorBody{
				Message:   "request canceled while waiting for a worker",
				ErrorType: "Unknown",
			})
			return
		}
		m.inFlight.Inc()
		defer func() {
			m.inFlight.Dec()
			<-slots
		}()
		c.Next()
	}
}

func observe(logger *slog.Logger, m *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		operation := c.FullPath()
		if operation == "" {
			operation = "unmatched"
		}
		status := c.Writer.Status()
		elapsed := time.Since(start)

		m.requests.WithLabelValues(operation, strconv.Itoa(status)).Inc()
		m.duration.WithLabelValues(operation).Observe(elapsed.Seconds())

		attrs := []any{
			"request_id", c.GetString(requestIDKey),
			"operation", c.Request.Method + " " + operation,
			"status", status,
			"duration", elapsed,
		}
		if errType, ok := c.Get(errorTypeKey); ok {
			m.failures.WithLabelValues(operation, errType.(string)).Inc()
			attrs = append(attrs, "error", c.Errors.Last().Error())
			logger.Warn("control request failed", attrs...)
			return
		}
		logger.Debug("control request", attrs...)
	}
}
