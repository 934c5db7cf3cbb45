package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"inkwell/internal/db"
	"inkwell/internal/forms"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AuthHandler struct{}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

func (h *AuthHandler) ShowRegister(c *gin.Context) {
	Render(c, http.StatusOK, "auth/register.html", gin.H{
		"Title": "Register",
		"Form":  forms.RegisterForm{},
	})
}

// createUser hashes the password and inserts the account.
func (h *AuthHandler) createUser(name, email, password string) (*models.User, error) {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:     name,
		Email:    email,
		Password: hash,
	}

	if err := db.DB.Create(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (h *AuthHandler) Register(c *gin.Context) {
	var form forms.RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		middleware.AddFlash(c, "Invalid form submission.")
		Render(c, http.StatusBadRequest, "auth/register.html", gin.H{"Title": "Register", "Form": form})
		return
	}
	form.Name = strings.TrimSpace(form.Name)
	form.Email = normalizeEmail(form.Email)

	if errs := forms.Validate(&form); len(errs) > 0 {
		middleware.AddFlash(c, errs...)
		form.Password, form.RePassword = "", ""
		Render(c, http.StatusBadRequest, "auth/register.html", gin.H{"Title": "Register", "Form": form})
		return
	}

	var existing models.User
	err := db.DB.Where("email = ?", form.Email).First(&existing).Error
	if err == nil {
		middleware.AddFlash(c, "You've already signed up with this email. Log in instead.")
		c.Redirect(http.StatusFound, "/login")
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Failed to look up user %q: %v", form.Email, err)
		RenderError(c, http.StatusInternalServerError, "Registration failed, please try again.")
		return
	}

	user, err := h.createUser(form.Name, form.Email, form.Password)
	if err != nil {
		log.Printf("Failed to create user %q: %v", form.Email, err)
		RenderError(c, http.StatusInternalServerError, "Registration failed, please try again.")
		return
	}

	middleware.Login(c, user.ID, false)
	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	Render(c, http.StatusOK, "auth/login.html", gin.H{
		"Title": "Log In",
		"Form":  forms.LoginForm{},
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var form forms.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		middleware.AddFlash(c, "Invalid form submission.")
		Render(c, http.StatusBadRequest, "auth/login.html", gin.H{"Title": "Log In", "Form": form})
		return
	}
	form.Email = normalizeEmail(form.Email)

	if errs := forms.Validate(&form); len(errs) > 0 {
		middleware.AddFlash(c, errs...)
		form.Password = ""
		Render(c, http.StatusBadRequest, "auth/login.html", gin.H{"Title": "Log In", "Form": form})
		return
	}

	// Unknown email and wrong password get the same answer.
	var user models.User
	if err := db.DB.Where("email = ?", form.Email).First(&user).Error; err != nil ||
		!utils.CheckPasswordHash(form.Password, user.Password) {
		middleware.AddFlash(c, "Invalid email or password.")
		form.Password = ""
		Render(c, http.StatusUnauthorized, "auth/login.html", gin.H{"Title": "Log In", "Form": form})
		return
	}

	middleware.Login(c, user.ID, form.Remember)
	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	middleware.Logout(c)
	c.Redirect(http.StatusFound, "/")
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
