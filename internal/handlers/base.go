package handlers

import (
	"net/http"
	"time"

	"inkwell/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Render helper to inject common variables like 'current user'
func Render(c *gin.Context, code int, name string, obj gin.H) {
	if obj == nil {
		obj = gin.H{}
	}

	if user := middleware.CurrentUser(c); user != nil {
		obj["CurrentUser"] = user
	}
	obj["IsAdmin"] = c.GetBool(middleware.IsAdminKey)

	// Must run before the body is written: popping flashes rewrites the cookie.
	obj["Flashes"] = middleware.Flashes(c)

	obj["CurrentPath"] = c.Request.URL.Path
	obj["Year"] = time.Now().Year()

	c.HTML(code, name, obj)
}

// Error helper
func RenderError(c *gin.Context, code int, message string) {
	Render(c, code, "error.html", gin.H{
		"Title": http.StatusText(code),
		"Error": message,
	})
}
