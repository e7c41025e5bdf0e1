package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sahyogi/sahyogi-backend/internal/pkg/logger"
)

const RequestIDHeader = "X-Request-ID"

// Logger configuration
type LoggerConfig struct {
	LogRequestBody  bool
	LogResponseBody bool
	MaxBodySize     int64 // Max body size to log (in bytes)
	SkipPaths       []string
}

// Default configuration - more conservative
func DefaultLoggerConfig() LoggerConfig {
	return LoggerConfig{
		LogRequestBody:  true,
		LogResponseBody: false, // Only for errors
		MaxBodySize:     2048,  // 2KB limit
		SkipPaths:       []string{"/health", "/metrics", "/ping"},
	}
}

// RequestID propagates an incoming X-Request-ID or assigns a fresh one
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("requestID", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

func Logger() gin.HandlerFunc {
	return LoggerWithConfig(DefaultLoggerConfig())
}

func LoggerWithConfig(config LoggerConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		// Skip logging for certain paths
		for _, skipPath := range config.SkipPaths {
			if path == skipPath {
				c.Next()
				return
			}
		}

		contentType := c.GetHeader("Content-Type")

		// Read and restore request body with size limits
		var requestBody string
		if config.LogRequestBody && c.Request.Body != nil && c.Request.ContentLength > 0 {
			if c.Request.ContentLength > config.MaxBodySize {
				requestBody = "[Request body too large to log]"
			} else {
				bodyBytes, err := io.ReadAll(io.LimitReader(c.Request.Body, config.MaxBodySize))
				if err == nil {
					c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
					requestBody = sanitizeBody(string(bodyBytes), contentType)
				}
			}
		}

		writer := &limitedResponseWriter{
			ResponseWriter: c.Writer,
			maxSize:        config.MaxBodySize,
		}
		c.Writer = writer

		c.Next()

		status := writer.Status()
		fields := []zap.Field{
			zap.String("requestId", c.GetString("requestID")),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.Int64("size", writer.size),
			zap.String("ip", c.ClientIP()),
		}
		if q := c.Request.URL.RawQuery; q != "" {
			fields = append(fields, zap.String("query", truncateString(q, 100)))
		}
		if requestBody != "" {
			fields = append(fields, zap.String("body", requestBody))
		}
		if userID := c.GetString("userID"); userID != "" {
			fields = append(fields, zap.String("userId", userID), zap.String("role", c.GetString("role")))
		}
		if writer.body.Len() > 0 && (config.LogResponseBody || status >= 400) {
			fields = append(fields, zap.String("response", truncateString(writer.body.String(), 500)))
		}

		switch {
		case status >= 500:
			logger.Error("request", fields...)
		case status >= 400:
			logger.Warn("request", fields...)
		default:
			logger.Info("request", fields...)
		}
	}
}

// Size-limited response writer - prevents memory issues
type limitedResponseWriter struct {
	gin.ResponseWriter
	body    bytes.Buffer
	size    int64
	maxSize int64
}

func (w *limitedResponseWriter) Write(b []byte) (int, error) {
	// Always write to actual response
	n, err := w.ResponseWriter.Write(b)

	// Only capture for logging if under size limit
	if w.size+int64(len(b)) <= w.maxSize {
		w.body.Write(b[:n])
	}
	w.size += int64(n)

	return n, err
}

func sanitizeBody(body, contentType string) string {
	if len(body) == 0 {
		return ""
	}

	if len(body) > 1024 {
		return "[Body too large to log]"
	}

	if strings.Contains(contentType, "application/json") {
		var jsonData interface{}
		if json.Unmarshal([]byte(body), &jsonData) == nil {
			if formatted, err := json.Marshal(hideSensitiveFields(jsonData)); err == nil {
				return string(formatted)
			}
		}
	}

	return truncateString(body, 200)
}

func hideSensitiveFields(data interface{}) interface{} {
	switch v := data.(type) {
	case map[string]interface{}:
		result := make(map[string]interface{})
		for key, value := range v {
			if isSensitiveField(strings.ToLower(key)) {
				result[key] = "********"
			} else {
				result[key] = hideSensitiveFields(value)
			}
		}
		return result
	case []interface{}:
		result := make([]interface{}, len(v))
		for i, item := range v {
			result[i] = hideSensitiveFields(item)
		}
		return result
	default:
		return v
	}
}

func isSensitiveField(field string) bool {
	sensitive := []string{"password", "token", "secret", "key", "auth", "credential"}
	for _, s := range sensitive {
		if strings.Contains(field, s) {
			return true
		}
	}
	return false
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
