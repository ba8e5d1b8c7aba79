package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// DefaultBodyLimit caps JSON request bodies. Multipart uploads are
// checked separately against the configured media size cap.
const DefaultBodyLimit int64 = 10 << 20 // 10 MB

// BodySizeLimit rejects request bodies larger than maxBytes. Reads past
// the limit fail via http.MaxBytesReader even when Content-Length lies.
func BodySizeLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{
				"error": gin.H{
					"code":    "MEDIA_TOO_LARGE",
					"message": "request body too large",
				},
			})
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
