package middleware

import (
	"time"

	"github.com/annel0/worldobjects/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

// TraceIDKey - ключ gin.Context с trace-ID запроса
const TraceIDKey = "trace_id"

// RequestLogger снабжает каждый HTTP-запрос trace-ID и пишет краткие логи
type RequestLogger struct {
	log *logging.Logger
}

// NewRequestLogger создаёт middleware; log == nil - логгер компонента "http"
func NewRequestLogger(log *logging.Logger) *RequestLogger {
	if log == nil {
		log = logging.GetComponentLogger("http")
	}
	return &RequestLogger{log: log}
}

func (rl *RequestLogger) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		// trace-id из OpenTelemetry, если otelgin уже открыл span
		span := trace.SpanFromContext(c.Request.Context())
		var traceID string
		if span.SpanContext().IsValid() {
			traceID = span.SpanContext().TraceID().String()
		} else {
			traceID = uuid.NewString()
		}
		c.Set(TraceIDKey, traceID)
		c.Header("X-Trace-ID", traceID)

		start := time.Now()
		method := c.Request.Method
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		c.Next()

		rl.log.Info("[HTTP] %s %s %d %s ip=%s trace=%s",
			method, path, c.Writer.Status(), time.Since(start), c.ClientIP(), traceID)
	}
}
