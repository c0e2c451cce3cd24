package logger

import (
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	globalLogger *zap.Logger
	once         sync.Once
)

// New builds a logger. In development mode, it uses a human-readable console
// encoder; in production, it uses JSON.
func New(isDev bool) (*zap.Logger, error) {
	var cfg zap.Config
	if isDev {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
	}
	return cfg.Build()
}

// Init initializes the process logger used during bootstrap. Components get
// their logger injected and should not reach for Get.
func Init(isDev bool) {
	once.Do(func() {
		var err error
		globalLogger, err = New(isDev)
		if err != nil {
			panic("failed to initialize logger: " + err.Error())
		}
	})
}

// Get returns the process logger. If Init has not been called, it falls
// back to a no-op logger.
func Get() *zap.Logger {
	if globalLogger == nil {
		return zap.NewNop()
	}
	return globalLogger
}

// OrNop returns l, or a no-op logger when l is nil.
func OrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}

// RequestIDMiddleware generates a UUID for each request, stores it in the
// gin context under "request_id", and sets the X-Request-ID response header.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.New().String()
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// FromContext returns l annotated with the request ID stored by
// RequestIDMiddleware, if any.
func FromContext(c *gin.Context, l *zap.Logger) *zap.Logger {
	l = OrNop(l)
	if id := c.GetString("request_id"); id != "" {
		return l.With(zap.String("request_id", id))
	}
	return l
}

// Sync flushes any buffered log entries. Should be called before the
// application exits.
func Sync() {
	if globalLogger != nil {
		_ = globalLogger.Sync()
	}
}
