package api

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/qurancms/recitation-api/api/types"
	"github.com/qurancms/recitation-api/pkg/config"
	apperrors "github.com/qurancms/recitation-api/pkg/errors"
)

const defaultMaxBodyBytes = 1024 * 1024

// clientLimiter holds a rate limiter and its last accessed time
type clientLimiter struct {
	mu       sync.Mutex
	limiter  *rate.Limiter
	lastSeen time.Time
}

func (cl *clientLimiter) touch(now time.Time) {
	cl.mu.Lock()
	cl.lastSeen = now
	cl.mu.Unlock()
}

func (cl *clientLimiter) idleSince(now time.Time) time.Duration {
	cl.mu.Lock()
	defer cl.mu.Unlock()
	return now.Sub(cl.lastSeen)
}

// CORS builds the cors middleware from the security settings.
// An empty origin list allows any origin.
func CORS(sec config.SecurityConfig) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Length", "Content-Type", "Authorization", types.RequestIDHeader},
		ExposeHeaders: []string{types.RequestIDHeader},
		MaxAge:        24 * time.Hour,
	}
	if len(sec.CORSMethods) > 0 {
		corsCfg.AllowMethods = sec.CORSMethods
	}
	if len(sec.CORSHeaders) > 0 {
		corsCfg.AllowHeaders = sec.CORSHeaders
	}
	if len(sec.CORSOrigins) == 0 || (len(sec.CORSOrigins) == 1 && sec.CORSOrigins[0] == "*") {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = sec.CORSOrigins
		corsCfg.AllowCredentials = true
	}
	return cors.New(corsCfg)
}

// RequestID propagates or assigns an X-Request-ID
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(types.RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(types.RequestIDKey, id)
		c.Header(types.RequestIDHeader, id)
		c.Next()
	}
}

// RequestLogger logs one line per request
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if id := c.GetString(types.RequestIDKey); id != "" {
			fields = append(fields, zap.String("request_id", id))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			logger.Error("request", fields...)
		case status >= http.StatusBadRequest:
			logger.Warn("request", fields...)
		default:
			logger.Info("request", fields...)
		}
	}
}

// Recovery turns panics into the opaque server_error response
func Recovery(deps *types.Dependencies) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		deps.Log().Error("panic recovered",
			zap.Any("panic", recovered),
			zap.String("path", c.Request.URL.Path))
		types.AbortWithError(c, deps, apperrors.Newf(apperrors.ErrCodeServerError, "panic: %v", recovered))
	})
}

func RequestSizeLimit() gin.HandlerFunc {
	return RequestSizeLimitWithSize(defaultMaxBodyBytes)
}

func RequestSizeLimitWithSize(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodPost ||
			c.Request.Method == http.MethodPut ||
			c.Request.Method == http.MethodPatch {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}

func PerClientRateLimit(deps *types.Dependencies, rateLimiters *sync.Map, cleanupStop chan struct{}, cleanupInitialized *sync.Once, rps int, burst int) gin.HandlerFunc {
	cleanupInitialized.Do(func() {
		go cleanupOldRateLimiters(rateLimiters, cleanupStop)
	})

	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		now := time.Now()

		limiterInterface, _ := rateLimiters.LoadOrStore(clientIP, &clientLimiter{
			limiter:  rate.NewLimiter(rate.Every(time.Second/time.Duration(rps)), burst),
			lastSeen: now,
		})

		cl := limiterInterface.(*clientLimiter)
		cl.touch(now)

		if !cl.limiter.Allow() {
			types.AbortWithError(c, deps, apperrors.New(apperrors.ErrCodeRateLimited,
				"Rate limit exceeded. Please slow down your requests."))
			return
		}
		c.Next()
	}
}

func cleanupOldRateLimiters(rateLimiters *sync.Map, cleanupStop chan struct{}) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			now := time.Now()
			rateLimiters.Range(func(key, value interface{}) bool {
				if value.(*clientLimiter).idleSince(now) > 10*time.Minute {
					rateLimiters.Delete(key)
				}
				return true
			})
		case <-cleanupStop:
			return
		}
	}
}

// NotFoundHandler handles 404 errors
func NotFoundHandler(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		types.SendError(c, deps, apperrors.New(apperrors.ErrCodeNotFound,
			"The requested endpoint was not found").WithDetail("path", c.Request.URL.Path))
	}
}

// MethodNotAllowedHandler handles 405 errors
func MethodNotAllowedHandler(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		types.SendError(c, deps, apperrors.Newf(apperrors.ErrCodeMethodNotAllowed,
			"Method %s is not allowed on %s", c.Request.Method, c.Request.URL.Path))
	}
}
