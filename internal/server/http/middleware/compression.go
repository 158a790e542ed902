package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// DefaultBodyLimit bounds request payloads after decompression.
const DefaultBodyLimit = 64 << 10

// RequestBody inflates gzip encoded requests and caps the body at limit bytes.
func RequestBody(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !strings.Contains(c.GetHeader("Content-Encoding"), "gzip") {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
			c.Next()
			return
		}

		originalBody := c.Request.Body
		reader, err := gzip.NewReader(originalBody)
		if err != nil {
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}
		defer reader.Close()
		defer originalBody.Close()

		c.Request.Body = http.MaxBytesReader(c.Writer, io.NopCloser(reader), limit)
		c.Request.Header.Del("Content-Encoding")
		c.Next()
	}
}
