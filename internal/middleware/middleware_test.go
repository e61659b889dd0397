package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(Sessions("test-secret"))

	r.POST("/login-as/:role", func(c *gin.Context) {
		staff := c.Param("role") == "staff"
		require.NoError(t, SetSessionUser(c, 42, staff))
		c.Status(http.StatusOK)
	})
	r.POST("/logout", func(c *gin.Context) {
		require.NoError(t, ClearSession(c))
		c.Status(http.StatusOK)
	})

	user := r.Group("/")
	user.Use(RequireUser())
	user.GET("/private", func(c *gin.Context) {
		id, _ := c.Get("user_id")
		c.JSON(http.StatusOK, gin.H{"user_id": id})
	})

	staff := r.Group("/")
	staff.Use(RequireStaff())
	staff.GET("/admin", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	return r
}

func login(t *testing.T, r *gin.Engine, role string) []*http.Cookie {
	t.Helper()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login-as/"+role, nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	return w.Result().Cookies()
}

func withCookies(req *http.Request, cookies []*http.Cookie) *http.Request {
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

func TestRequireUserAnonymousRedirects(t *testing.T) {
	r := newSessionRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/private", nil))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestRequireUserWithSession(t *testing.T) {
	r := newSessionRouter(t)
	cookies := login(t, r, "user")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, withCookies(httptest.NewRequest(http.MethodGet, "/private", nil), cookies))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "42")
}

func TestRequireStaffRejectsNonStaff(t *testing.T) {
	r := newSessionRouter(t)
	cookies := login(t, r, "user")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, withCookies(httptest.NewRequest(http.MethodGet, "/admin", nil), cookies))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestRequireStaffAllowsStaff(t *testing.T) {
	r := newSessionRouter(t)
	cookies := login(t, r, "staff")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, withCookies(httptest.NewRequest(http.MethodGet, "/admin", nil), cookies))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestClearSessionLogsOut(t *testing.T) {
	r := newSessionRouter(t)
	cookies := login(t, r, "user")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, withCookies(httptest.NewRequest(http.MethodPost, "/logout", nil), cookies))
	require.Equal(t, http.StatusOK, w.Code)

	// The refreshed cookie no longer carries a user.
	cleared := w.Result().Cookies()
	w = httptest.NewRecorder()
	r.ServeHTTP(w, withCookies(httptest.NewRequest(http.MethodGet, "/private", nil), cleared))
	assert.Equal(t, http.StatusFound, w.Code)
}

func TestFlashRoundTrip(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Sessions("test-secret"))

	r.POST("/flash", func(c *gin.Context) {
		Flash(c, "hello there")
		c.Status(http.StatusOK)
	})
	r.GET("/messages", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"messages": TakeFlashes(c)})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/flash", nil))
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()

	// First read drains the message.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, withCookies(httptest.NewRequest(http.MethodGet, "/messages", nil), cookies))
	assert.Contains(t, w.Body.String(), "hello there")

	// Second read with the refreshed cookie comes back empty.
	cookies = w.Result().Cookies()
	w = httptest.NewRecorder()
	r.ServeHTTP(w, withCookies(httptest.NewRequest(http.MethodGet, "/messages", nil), cookies))
	assert.NotContains(t, w.Body.String(), "hello there")
}
