package router

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/smtp"
	"net/url"
	"strings"
	"testing"

	"inkwell/internal/config"
	"inkwell/internal/db"
	"inkwell/internal/models"
	"inkwell/internal/services"
	"inkwell/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const testPassword = "password123"

type testApp struct {
	t       *testing.T
	engine  *gin.Engine
	sent    [][]byte
	mailErr error
}

func setupApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conn, err := db.Open(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.Migrate(conn))
	db.DB = conn

	cfg := &config.Config{
		SecretKey:    "test-secret",
		AdminUserID:  1,
		TemplatesDir: "../../web/templates",
		StaticDir:    "../../web/static",
		SMTPHost:     "smtp.example.com",
		SMTPPort:     "25",
		SMTPFrom:     "blog@example.com",
		ContactTo:    "owner@example.com",
	}

	app := &testApp{t: t}
	mail := services.NewMailService(cfg)
	mail.SetSender(func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		if app.mailErr != nil {
			return app.mailErr
		}
		app.sent = append(app.sent, msg)
		return nil
	})
	app.engine = New(cfg, mail)
	return app
}

// client carries the session cookie between requests like a browser would.
type client struct {
	app     *testApp
	cookies map[string]*http.Cookie
}

func (a *testApp) newClient() *client {
	return &client{app: a, cookies: map[string]*http.Cookie{}}
}

func (c *client) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, ck := range c.cookies {
		req.AddCookie(&http.Cookie{Name: ck.Name, Value: ck.Value})
	}

	w := httptest.NewRecorder()
	c.app.engine.ServeHTTP(w, req)

	for _, ck := range w.Result().Cookies() {
		if ck.MaxAge < 0 {
			delete(c.cookies, ck.Name)
			continue
		}
		c.cookies[ck.Name] = ck
	}
	return w
}

func (c *client) get(path string) *httptest.ResponseRecorder {
	return c.do(http.MethodGet, path, nil)
}

func (c *client) post(path string, form url.Values) *httptest.ResponseRecorder {
	return c.do(http.MethodPost, path, form)
}

func (c *client) login(email string) {
	c.app.t.Helper()
	w := c.post("/login", url.Values{"email": {email}, "password": {testPassword}})
	require.Equal(c.app.t, http.StatusFound, w.Code, w.Body.String())
	require.Equal(c.app.t, "/", w.Header().Get("Location"))
}

func (a *testApp) createUser(email, name string) *models.User {
	a.t.Helper()
	hash, err := utils.HashPassword(testPassword)
	require.NoError(a.t, err)
	user := &models.User{Email: email, Name: name, Password: hash}
	require.NoError(a.t, db.DB.Create(user).Error)
	return user
}

// seedUsers creates the admin (id 1) and an ordinary reader.
func (a *testApp) seedUsers() (admin, reader *models.User) {
	admin = a.createUser("admin@example.com", "Admin")
	reader = a.createUser("reader@example.com", "Reader")
	require.Equal(a.t, uint(1), admin.ID)
	return admin, reader
}

func (a *testApp) createPost(authorID uint, title string) *models.Post {
	a.t.Helper()
	post := &models.Post{
		UserID:   authorID,
		Title:    title,
		Subtitle: title + " subtitle",
		Date:     "January 02, 2024",
		Body:     "Body of " + title,
		ImgURL:   "https://example.com/" + url.PathEscape(title) + ".png",
	}
	require.NoError(a.t, db.DB.Create(post).Error)
	return post
}

func count(t *testing.T, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.DB.Model(model).Count(&n).Error)
	return n
}

var errSMTPDown = errors.New("smtp down")
