package logger

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	obscontext "github.com/dantecodex/graph-mongo/internal/observability/context"
)

const requestIDHeader = "X-Request-Id"

// MiddlewareConfig tunes the gin request-logging middleware. Zero values are
// usable: a snowflake node is created on demand and the global logger is
// used when none is supplied.
type MiddlewareConfig struct {
	Logger *zap.Logger
	Node   *snowflake.Node
}

// GinMiddleware assigns each request an ID, echoes it on the response, and
// logs request completion.
func GinMiddleware(cfg MiddlewareConfig) gin.HandlerFunc {
	node := cfg.Node
	if node == nil {
		var err error
		node, err = snowflake.NewNode(1)
		if err != nil {
			panic(err)
		}
	}

	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = node.Generate().String()
		}
		c.Header(requestIDHeader, requestID)
		c.Set("request_id", requestID)
		c.Request = c.Request.WithContext(
			obscontext.WithRequestID(c.Request.Context(), requestID))

		c.Next()

		log := cfg.Logger
		if log == nil {
			log = zap.L()
		}
		log.Info("http request",
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}
