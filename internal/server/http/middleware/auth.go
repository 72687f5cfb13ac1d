package middleware

import (
	"bytes"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	pkgAuth "github.com/UVLabs/gateway-currency/internal/pkg/auth"
)

// SignatureHeader carries the platform's HMAC signature over the raw body.
const SignatureHeader = "X-Hook-Signature"

// HookSignature verifies the platform signature on hook requests. The body
// is read for verification and restored so handlers can bind it normally.
func HookSignature(strategy *pkgAuth.SignatureStrategy) gin.HandlerFunc {
	return func(c *gin.Context) {
		signature := c.GetHeader(SignatureHeader)
		if signature == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		if err := strategy.Verify(body, signature); err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Next()
	}
}

// AdminAuth requires a bearer key matching the configured bcrypt hash.
func AdminAuth(hasher pkgAuth.KeyHasher, keyHash string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if keyHash == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		key := extractBearer(c)
		if key == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		if err := hasher.Compare(keyHash, key); err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Next()
	}
}

func extractBearer(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}
