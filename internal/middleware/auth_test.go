package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"inkwell/internal/db"
	"inkwell/internal/models"
	"inkwell/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conn, err := db.Open(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.Migrate(conn))
	db.DB = conn

	for _, email := range []string{"admin@example.com", "reader@example.com"} {
		hash, err := utils.HashPassword("password1")
		require.NoError(t, err)
		require.NoError(t, conn.Create(&models.User{Email: email, Name: email, Password: hash}).Error)
	}

	r := gin.New()
	r.Use(sessions.Sessions("test_session", cookie.NewStore([]byte("test-secret"))))
	r.Use(LoadUser(1))

	r.GET("/login-as/:id", func(c *gin.Context) {
		id, _ := utils.ParseID(c.Param("id"))
		Login(c, id, c.Query("remember") == "1")
		c.Status(http.StatusNoContent)
	})
	r.GET("/logout", func(c *gin.Context) {
		Logout(c)
		c.Status(http.StatusNoContent)
	})
	r.GET("/whoami", func(c *gin.Context) {
		if u := CurrentUser(c); u != nil {
			c.String(http.StatusOK, u.Email)
			return
		}
		c.String(http.StatusOK, "anonymous")
	})
	r.GET("/members", AuthRequired("Please log in."), func(c *gin.Context) {
		c.String(http.StatusOK, "members")
	})
	r.GET("/admin", AdminOnly(), func(c *gin.Context) {
		c.String(http.StatusOK, "admin")
	})
	r.GET("/flashes", func(c *gin.Context) {
		c.JSON(http.StatusOK, Flashes(c))
	})
	return r
}

func get(r *gin.Engine, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func lastCookie(w *httptest.ResponseRecorder) []*http.Cookie {
	cookies := w.Result().Cookies()
	if len(cookies) == 0 {
		return nil
	}
	return cookies[len(cookies)-1:]
}

func TestLoadUser(t *testing.T) {
	r := setupEngine(t)

	w := get(r, "/whoami", nil)
	assert.Equal(t, "anonymous", w.Body.String())

	login := get(r, "/login-as/2", nil)
	cookies := lastCookie(login)
	require.NotEmpty(t, cookies)

	w = get(r, "/whoami", cookies)
	assert.Equal(t, "reader@example.com", w.Body.String())
}

func TestLoadUserIgnoresUnknownUser(t *testing.T) {
	r := setupEngine(t)

	cookies := lastCookie(get(r, "/login-as/99", nil))
	w := get(r, "/whoami", cookies)
	assert.Equal(t, "anonymous", w.Body.String())
}

func TestAuthRequired(t *testing.T) {
	r := setupEngine(t)

	w := get(r, "/members", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	flashes := get(r, "/flashes", lastCookie(w))
	assert.JSONEq(t, `["Please log in."]`, flashes.Body.String())

	cookies := lastCookie(get(r, "/login-as/2", nil))
	w = get(r, "/members", cookies)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "members", w.Body.String())
}

func TestAdminOnly(t *testing.T) {
	r := setupEngine(t)

	w := get(r, "/admin", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Unauthorized Access", w.Body.String())

	reader := lastCookie(get(r, "/login-as/2", nil))
	w = get(r, "/admin", reader)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Unauthorized Access", w.Body.String())

	admin := lastCookie(get(r, "/login-as/1", nil))
	w = get(r, "/admin", admin)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin", w.Body.String())
}

func TestRememberMe(t *testing.T) {
	r := setupEngine(t)

	plain := lastCookie(get(r, "/login-as/2", nil))
	require.Len(t, plain, 1)
	assert.Zero(t, plain[0].MaxAge)

	remembered := lastCookie(get(r, "/login-as/2?remember=1", nil))
	require.Len(t, remembered, 1)
	assert.Equal(t, RememberFor, remembered[0].MaxAge)

	// The lifetime survives later writes to the session.
	w := get(r, "/members", remembered)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLogout(t *testing.T) {
	r := setupEngine(t)

	cookies := lastCookie(get(r, "/login-as/2", nil))
	w := get(r, "/logout", cookies)
	out := lastCookie(w)
	require.Len(t, out, 1)
	assert.Less(t, out[0].MaxAge, 0)

	w = get(r, "/whoami", nil)
	assert.Equal(t, "anonymous", w.Body.String())
}
