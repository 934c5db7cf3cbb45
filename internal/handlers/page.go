package handlers

import (
	"log"
	"net/http"

	"inkwell/internal/forms"
	"inkwell/internal/services"

	"github.com/gin-gonic/gin"
)

type PageHandler struct {
	mailService *services.MailService
}

func NewPageHandler(mailService *services.MailService) *PageHandler {
	return &PageHandler{mailService: mailService}
}

func (h *PageHandler) About(c *gin.Context) {
	Render(c, http.StatusOK, "page/about.html", gin.H{"Title": "About"})
}

func (h *PageHandler) ShowContact(c *gin.Context) {
	Render(c, http.StatusOK, "page/contact.html", gin.H{"Title": "Contact"})
}

// Contact mails the submitted form to the blog owner. Nothing is stored.
func (h *PageHandler) Contact(c *gin.Context) {
	var form forms.ContactForm
	_ = c.ShouldBind(&form)
	forms.Normalize(&form)

	err := h.mailService.SendContactMessage(services.ContactMessage{
		Name:    form.Name,
		Email:   form.Email,
		Phone:   form.Phone,
		Message: form.Message,
	})
	if err != nil {
		log.Printf("Failed to deliver contact message from %q: %v", form.Email, err)
		RenderError(c, http.StatusInternalServerError, "Sorry, your message could not be sent. Please try again later.")
		return
	}

	Render(c, http.StatusOK, "page/thanks.html", gin.H{"Title": "Thank You", "Name": form.Name})
}
