package services

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"net/smtp"
	"path/filepath"
	"strings"

	"inkwell/internal/config"
)

// ContactMessage is what a visitor submits through the contact page.
type ContactMessage struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type MailService struct {
	Host         string
	Port         string
	Username     string
	Password     string
	From         string
	To           string
	Enabled      bool
	templatesDir string
	send         sendFunc
}

func NewMailService(cfg *config.Config) *MailService {
	enabled := cfg.SMTPHost != "" && cfg.SMTPPort != "" && cfg.SMTPFrom != "" && cfg.ContactTo != ""
	if !enabled {
		log.Println("MailService disabled: missing SMTP_HOST, SMTP_PORT, SMTP_FROM or CONTACT_TO")
	}

	return &MailService{
		Host:         cfg.SMTPHost,
		Port:         cfg.SMTPPort,
		Username:     cfg.SMTPUser,
		Password:     cfg.SMTPPass,
		From:         cfg.SMTPFrom,
		To:           cfg.ContactTo,
		Enabled:      enabled,
		templatesDir: cfg.TemplatesDir,
		send:         smtp.SendMail,
	}
}

// SetSender replaces the SMTP transport, for tests.
func (s *MailService) SetSender(fn func(addr string, a smtp.Auth, from string, to []string, msg []byte) error) {
	s.send = fn
}

func (s *MailService) sendMail(to []string, subject string, body string) error {
	if !s.Enabled {
		log.Printf("MailService disabled, dropping %q for %v", subject, to)
		return nil
	}

	var auth smtp.Auth
	if s.Username != "" {
		auth = smtp.PlainAuth("", s.Username, s.Password, s.Host)
	}
	addr := fmt.Sprintf("%s:%s", s.Host, s.Port)

	mime := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n"
	msg := []byte(fmt.Sprintf("To: %s\r\n"+
		"From: Inkwell <%s>\r\n"+
		"Subject: %s\r\n"+
		"%s\r\n%s", strings.Join(to, ","), s.From, subject, mime, body))

	if err := s.send(addr, auth, s.From, to, msg); err != nil {
		log.Printf("Failed to send email to %v: %v", to, err)
		return fmt.Errorf("send mail: %w", err)
	}
	log.Printf("Email sent to %v: %s", to, subject)
	return nil
}

func (s *MailService) parseTemplate(templateName string, data interface{}) (string, error) {
	path := filepath.Join(s.templatesDir, "email", templateName)
	t, err := template.ParseFiles(path)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", templateName, err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", templateName, err)
	}
	return buf.String(), nil
}

// SendContactMessage delivers a contact-form submission to the blog owner.
func (s *MailService) SendContactMessage(m ContactMessage) error {
	body, err := s.parseTemplate("contact.html", m)
	if err != nil {
		return err
	}
	subject := "New message from " + strings.NewReplacer("\r", " ", "\n", " ").Replace(m.Name)
	if strings.TrimSpace(m.Name) == "" {
		subject = "New message from the contact form"
	}
	return s.sendMail([]string{s.To}, subject, body)
}
