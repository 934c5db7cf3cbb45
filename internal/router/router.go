package router

import (
	"inkwell/internal/config"
	"inkwell/internal/handlers"
	"inkwell/internal/middleware"
	"inkwell/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

const sessionName = "inkwell_session"

// New builds the engine: sessions, templates, static assets, current-user
// loading and every route.
func New(cfg *config.Config, mailService *services.MailService) *gin.Engine {
	r := gin.Default()

	middleware.CookieOptions.Secure = cfg.CookieSecure
	store := cookie.NewStore([]byte(cfg.SecretKey))
	store.Options(middleware.CookieOptions)
	r.Use(sessions.Sessions(sessionName, store))

	r.HTMLRender = LoadTemplates(cfg.TemplatesDir)
	r.Static("/static", cfg.StaticDir)

	r.Use(middleware.LoadUser(cfg.AdminUserID))

	RegisterRoutes(r, mailService)
	return r
}

func RegisterRoutes(r *gin.Engine, mailService *services.MailService) {
	authHandler := handlers.NewAuthHandler()
	postHandler := handlers.NewPostHandler()
	pageHandler := handlers.NewPageHandler(mailService)

	// Public Routes
	r.GET("/", postHandler.List)                // all posts
	r.GET("/post/:id", postHandler.Show)        // post with comments
	r.POST("/post/:id", postHandler.AddComment) // redirects anonymous visitors to /login
	r.GET("/about", pageHandler.About)
	r.GET("/contact", pageHandler.ShowContact)
	r.POST("/contact", pageHandler.Contact)

	r.GET("/register", authHandler.ShowRegister)
	r.POST("/register", authHandler.Register)
	r.GET("/login", authHandler.ShowLogin)
	r.POST("/login", authHandler.Login)
	r.GET("/logout", authHandler.Logout)

	// Protected Routes
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired("Please log in to write a post."))
	{
		authorized.GET("/new-post", postHandler.ShowCreate)
		authorized.POST("/new-post", postHandler.Create)
	}

	// Admin Routes
	admin := r.Group("/")
	admin.Use(middleware.AdminOnly())
	{
		admin.GET("/edit-post/:id", postHandler.ShowEdit)
		admin.POST("/edit-post/:id", postHandler.Update)
		admin.GET("/delete/:id", postHandler.Delete)
	}
}
