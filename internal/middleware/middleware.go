package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	apperrors "prism/internal/errors"
	"prism/internal/logger"
	"prism/internal/metrics"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

// Session keys. The session payload is the sole carrier of the current
// user across requests: a user ID plus the staff flag.
const (
	SessionName     = "prism_session"
	sessionUserID   = "user_id"
	sessionIsStaff  = "is_staff"
	flashMessageKey = "flash"
)

// Sessions returns the cookie-backed session middleware.
func Sessions(secret string) gin.HandlerFunc {
	store := cookie.NewStore([]byte(secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
	})
	return sessions.Sessions(SessionName, store)
}

// SetSessionUser records the authenticated user in the session.
func SetSessionUser(c *gin.Context, userID int64, isStaff bool) error {
	session := sessions.Default(c)
	session.Set(sessionUserID, userID)
	session.Set(sessionIsStaff, isStaff)
	return session.Save()
}

// ClearSession destroys all session state unconditionally.
func ClearSession(c *gin.Context) error {
	session := sessions.Default(c)
	session.Clear()
	return session.Save()
}

// SessionUserID returns the logged-in user's ID, or false when the
// session carries none.
func SessionUserID(c *gin.Context) (int64, bool) {
	v := sessions.Default(c).Get(sessionUserID)
	if v == nil {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

// SessionIsStaff reports the session's staff flag.
func SessionIsStaff(c *gin.Context) bool {
	v := sessions.Default(c).Get(sessionIsStaff)
	staff, ok := v.(bool)
	return ok && staff
}

// Flash queues a user-visible message for the next page load.
func Flash(c *gin.Context, message string) {
	session := sessions.Default(c)
	session.AddFlash(message, flashMessageKey)
	_ = session.Save()
}

// TakeFlashes drains the queued messages.
func TakeFlashes(c *gin.Context) []string {
	session := sessions.Default(c)
	raw := session.Flashes(flashMessageKey)
	if len(raw) > 0 {
		_ = session.Save()
	}
	messages := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			messages = append(messages, s)
		}
	}
	return messages
}

// RequireUser gates routes that need any logged-in user. Failure never
// raises a fault: the caller is flashed a message and redirected to the
// login page.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := SessionUserID(c)
		if !ok {
			_ = c.Error(apperrors.ErrNotAuthenticated)
			Flash(c, "You must be logged in to access this page.")
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Request = c.Request.WithContext(logger.ContextWithUserID(c.Request.Context(), userID))
		c.Next()
	}
}

// RequireStaff gates the admin routes. An anonymous caller and a
// logged-in non-staff caller both end up at the login page, with
// messages distinguishing "not logged in" from "not staff".
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := SessionUserID(c)
		if !ok {
			_ = c.Error(apperrors.ErrNotAuthenticated)
			Flash(c, "You must be logged in as staff to access this page.")
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		if !SessionIsStaff(c) {
			_ = c.Error(apperrors.ErrForbidden)
			Flash(c, "You do not have permission to access this page.")
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Request = c.Request.WithContext(logger.ContextWithUserID(c.Request.Context(), userID))
		c.Next()
	}
}

// RequestID tags every request with a UUID for log correlation.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := logger.NewRequestID()
		c.Set("request_id", requestID)
		c.Request = c.Request.WithContext(logger.ContextWithRequestID(c.Request.Context(), requestID))
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// Logger emits one structured log line per completed request.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)
		userID, exists := c.Get("user_id")

		logFields := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status_code", c.Writer.Status(),
			"latency_ms", latency.Milliseconds(),
			"client_ip", c.ClientIP(),
		}

		if exists {
			logFields = append(logFields, "user_id", userID)
		}

		if c.Writer.Status() >= 400 {
			if len(c.Errors) > 0 {
				logFields = append(logFields, "error", c.Errors.String())
			}
			slog.Error("Request completed with error", logFields...)
		} else {
			slog.Info("Request completed", logFields...)
		}
	}
}

// Metrics records per-request Prometheus counters and latency.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.ObserveHTTP(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start).Seconds(),
		)
	}
}

// Recovery converts panics into a 500 with full logging, so no request
// ever escapes as a hard fault.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		slog.Error("PANIC recovered",
			"panic", recovered,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"client_ip", c.ClientIP(),
		)

		if !c.Writer.Written() {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
	})
}
