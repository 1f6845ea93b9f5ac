package middleware

import (
	"github.com/gin-gonic/gin"
)

// securityHeaders are attached to every response. The API serves JSON and
// PDF attachments only, so framing and cross-domain embedding are denied
// outright.
var securityHeaders = map[string]string{
	"X-Frame-Options":                   "DENY",
	"X-Content-Type-Options":            "nosniff",
	"X-XSS-Protection":                  "1; mode=block",
	"Referrer-Policy":                   "strict-origin-when-cross-origin",
	"Permissions-Policy":                "camera=(), microphone=(), geolocation=(), interest-cohort=()",
	"X-Permitted-Cross-Domain-Policies": "none",

	// Responses carry account data and generated course material; clients
	// and proxies must not cache them. Handlers that need different cache
	// semantics override per response.
	"Cache-Control": "no-store, no-cache, must-revalidate, private",
	"Pragma":        "no-cache",
}

// SecurityHeadersMiddleware adds the standard security headers to every
// response.
func SecurityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		for name, value := range securityHeaders {
			c.Header(name, value)
		}
		c.Next()
	}
}
