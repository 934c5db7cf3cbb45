package middleware

import (
	"net/http"

	"inkwell/internal/db"
	"inkwell/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const CheckUserKey = "user"
const IsAdminKey = "is_admin"

// AuthRequired sends anonymous visitors to the login page with flash as the
// explanation.
func AuthRequired(flash string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			if flash != "" {
				AddFlash(c, flash)
			}
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// AdminOnly lets through only the account LoadUser marked as admin.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool(IsAdminKey) {
			c.String(http.StatusForbidden, "Unauthorized Access")
			c.Abort()
			return
		}
		c.Next()
	}
}

// LoadUser retrieves user from session and sets to context. The user whose
// id equals adminID is flagged as admin.
func LoadUser(adminID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get(sessionUserKey)

		if userID != nil {
			var user models.User
			result := db.DB.First(&user, userID)
			if result.Error == nil {
				c.Set(CheckUserKey, &user)
				c.Set(IsAdminKey, user.ID == adminID)
			}
		}
		c.Next()
	}
}

// CurrentUser returns the logged-in user or nil.
func CurrentUser(c *gin.Context) *models.User {
	if u, exists := c.Get(CheckUserKey); exists {
		if user, ok := u.(*models.User); ok {
			return user
		}
	}
	return nil
}
