package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

const responseMetaKey = "portal_response_meta"

// Meta carries per-response metadata. Cached read endpoints flag whether the
// payload came from Redis, and every response reports its processing time.
type Meta map[string]interface{}

// WithResponseMeta seeds a Meta on the request context and stamps the elapsed
// handler time after the chain finishes, unless a handler already measured a
// more specific duration itself.
func WithResponseMeta() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Set(responseMetaKey, Meta{})
		c.Next()
		meta := metaFor(c)
		if _, exists := meta["processing_time_ms"]; !exists {
			meta["processing_time_ms"] = time.Since(start).Milliseconds()
		}
	}
}

// SetCacheHit records whether the response payload was served from cache.
func SetCacheHit(c *gin.Context, hit bool) {
	metaFor(c)["cache_hit"] = hit
}

// ExtractMeta returns the metadata accumulated for the current response, or
// nil when none was recorded.
func ExtractMeta(c *gin.Context) map[string]interface{} {
	if c == nil {
		return nil
	}
	if stored, exists := c.Get(responseMetaKey); exists {
		if meta, ok := stored.(Meta); ok {
			return meta
		}
	}
	return nil
}

// metaFor fetches the context's Meta, creating one when the request skipped
// the WithResponseMeta middleware. Handler tests rely on that.
func metaFor(c *gin.Context) Meta {
	if c == nil {
		return Meta{}
	}
	if stored, exists := c.Get(responseMetaKey); exists {
		if meta, ok := stored.(Meta); ok {
			return meta
		}
	}
	meta := Meta{}
	c.Set(responseMetaKey, meta)
	return meta
}
