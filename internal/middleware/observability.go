package middleware

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lessonforge/lessonforge-api/pkg/logger"
	"github.com/lessonforge/lessonforge-api/pkg/metrics"
)

// redactedParams never appear in access logs.
var redactedParams = map[string]bool{
	"token":    true,
	"password": true,
	"secret":   true,
	"key":      true,
	"auth":     true,
	"api_key":  true,
	"apikey":   true,
}

// ObservabilityMiddleware records per-request metrics and writes the access log.
func ObservabilityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method

		// The route is unknown until after routing, so gauge by method only.
		metrics.ActiveRequests.WithLabelValues(method).Inc()
		defer metrics.ActiveRequests.WithLabelValues(method).Dec()

		c.Next()

		status := c.Writer.Status()
		duration := metrics.MeasureDuration(start)

		// Metrics are labelled with the route template
		// ("/api/download-lesson-plan/:plan_id", not the expanded UUID path)
		// to keep label cardinality bounded.
		route := c.FullPath()
		if route == "" {
			route = "unmatched" // 404s and other unrouted requests
		}
		code := strconv.Itoa(status)
		metrics.HTTPRequestDuration.WithLabelValues(method, route, code).Observe(duration)
		metrics.HTTPRequestTotal.WithLabelValues(method, route, code).Inc()

		fields := []zap.Field{
			zap.String("client_ip", c.ClientIP()),
			zap.String("user_agent", c.Request.UserAgent()),
			zap.Int("response_size", c.Writer.Size()),
		}
		if status >= 400 {
			fields = append(fields, errorFields(c)...)
		}

		// The log line carries the real path; only metrics use the template.
		logger.LogHTTPRequest(method, c.Request.URL.Path, status, duration, fields...)
	}
}

// errorFields collects route params, sanitized query params and accumulated
// gin errors so failed requests can be traced without replaying them.
func errorFields(c *gin.Context) []zap.Field {
	var fields []zap.Field

	if len(c.Params) > 0 {
		params := make(map[string]string, len(c.Params))
		for _, p := range c.Params {
			params[p.Key] = p.Value
		}
		fields = append(fields, zap.Any("route_params", params))
	}

	if sanitized := redactQuery(c.Request.URL.Query()); len(sanitized) > 0 {
		fields = append(fields, zap.Any("query_params", sanitized))
	}

	if len(c.Errors) > 0 {
		fields = append(fields, zap.String("error", c.Errors.String()))
	}

	return fields
}

func redactQuery(query url.Values) map[string]string {
	if len(query) == 0 {
		return nil
	}
	sanitized := make(map[string]string, len(query))
	for k, v := range query {
		if redactedParams[strings.ToLower(k)] || len(v) == 0 {
			continue
		}
		sanitized[k] = v[0]
	}
	return sanitized
}
