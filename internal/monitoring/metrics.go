package monitoring

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// Metrics accumulates request counters for the /metrics endpoint. One
// instance is built in main and shared by the middleware and the handler.
type Metrics struct {
	mu            sync.RWMutex
	requestCount  int64
	errorCount    int64
	statusCodes   map[string]int64
	endpoints     map[string]int64
	totalDuration time.Duration
	startTime     time.Time
	lastRequest   time.Time
}

func NewMetrics() *Metrics {
	return &Metrics{
		statusCodes: make(map[string]int64),
		endpoints:   make(map[string]int64),
		startTime:   time.Now(),
	}
}

func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)

		statusCode := c.Writer.Status()
		endpoint := c.Request.Method + " " + c.FullPath()

		m.mu.Lock()
		m.requestCount++
		m.totalDuration += duration
		m.lastRequest = time.Now()
		if statusCode >= 400 {
			m.errorCount++
		}
		m.statusCodes[http.StatusText(statusCode)]++
		m.endpoints[endpoint]++
		m.mu.Unlock()
	}
}

func (m *Metrics) Handler(c *gin.Context) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var avgDuration time.Duration
	if m.requestCount > 0 {
		avgDuration = m.totalDuration / time.Duration(m.requestCount)
	}

	statusCodes := make(map[string]int64, len(m.statusCodes))
	for k, v := range m.statusCodes {
		statusCodes[k] = v
	}
	endpoints := make(map[string]int64, len(m.endpoints))
	for k, v := range m.endpoints {
		endpoints[k] = v
	}

	c.JSON(http.StatusOK, gin.H{
		"request_count":           m.requestCount,
		"error_count":             m.errorCount,
		"avg_request_duration_ms": avgDuration.Milliseconds(),
		"status_codes":            statusCodes,
		"endpoint_calls":          endpoints,
		"uptime_seconds":          int64(time.Since(m.startTime).Seconds()),
		"last_request":            m.lastRequest,
	})
}
