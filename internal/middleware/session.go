package middleware

import (
	"log"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	sessionUserKey = "user_id"
	rememberKey    = "remember"
	flashKey       = "flashes"

	// RememberFor is how long "remember me" keeps a login alive.
	RememberFor = 30 * 24 * 60 * 60
)

// CookieOptions apply to every session cookie. MaxAge 0 makes it a browser
// session cookie unless the user asked to be remembered.
var CookieOptions = sessions.Options{
	Path:     "/",
	MaxAge:   0,
	HttpOnly: true,
	SameSite: http.SameSiteLaxMode,
}

// Save writes the session, keeping the remember-me lifetime across requests.
func Save(session sessions.Session) {
	opts := CookieOptions
	if remember, _ := session.Get(rememberKey).(bool); remember {
		opts.MaxAge = RememberFor
	}
	session.Options(opts)
	if err := session.Save(); err != nil {
		log.Printf("Failed to save session: %v", err)
	}
}

// Login establishes an authenticated session for userID.
func Login(c *gin.Context, userID uint, remember bool) {
	session := sessions.Default(c)
	session.Clear()
	session.Set(sessionUserKey, userID)
	if remember {
		session.Set(rememberKey, true)
	}
	Save(session)
}

func Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	opts := CookieOptions
	opts.MaxAge = -1
	session.Options(opts)
	if err := session.Save(); err != nil {
		log.Printf("Failed to clear session: %v", err)
	}
}

// AddFlash queues messages for the next rendered page. Flashes are kept as
// []string so the cookie codec needs no gob registration.
func AddFlash(c *gin.Context, messages ...string) {
	session := sessions.Default(c)
	queued, _ := session.Get(flashKey).([]string)
	session.Set(flashKey, append(queued, messages...))
	Save(session)
}

// Flashes pops every queued message.
func Flashes(c *gin.Context) []string {
	session := sessions.Default(c)
	queued, _ := session.Get(flashKey).([]string)
	if len(queued) == 0 {
		return nil
	}
	session.Delete(flashKey)
	Save(session)
	return queued
}
