// Package csrfgin adapts csrf.Protector to the Gin framework.
package csrfgin

import (
	"net/http"

	"github.com/JeanGrijp/go-csrf/v2/csrf"
	"github.com/gin-gonic/gin"
)

// Middleware adapts the net/http CSRF middleware to Gin. Rejected requests
// are aborted after the Protector has written its response.
func Middleware(p *csrf.Protector) gin.HandlerFunc {
	return func(c *gin.Context) {
		passed := false
		h := p.Protect(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// keep gin context in sync with the token-annotated *http.Request
			passed = true
			c.Request = r
			c.Next()
		}))
		h.ServeHTTP(c.Writer, c.Request)
		if !passed {
			c.Abort()
		}
	}
}

// Token returns the token issued for the current request, if any.
func Token(c *gin.Context) (string, bool) {
	return csrf.TokenFromContext(c.Request.Context())
}
