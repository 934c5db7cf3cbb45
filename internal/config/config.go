package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

const defaultSecret = "secret_key_change_me"

// Config holds everything the server reads from the environment.
type Config struct {
	SecretKey    string
	DatabaseURL  string
	Port         string
	AdminUserID  uint
	TemplatesDir string
	StaticDir    string
	CookieSecure bool

	SMTPHost  string
	SMTPPort  string
	SMTPUser  string
	SMTPPass  string
	SMTPFrom  string
	ContactTo string
}

// Load reads the configuration from environment variables. Call godotenv.Load
// first if a .env file should be honoured.
func Load() *Config {
	cfg := &Config{
		SecretKey:    firstEnv("SECRET_KEY", "BLOG_SECRET_KEY"),
		DatabaseURL:  getEnv("DATABASE_URL", "sqlite://blog.db"),
		Port:         getEnv("PORT", "8080"),
		AdminUserID:  1,
		TemplatesDir: getEnv("TEMPLATES_DIR", "./web/templates"),
		StaticDir:    getEnv("STATIC_DIR", "./web/static"),
		CookieSecure: getBool("COOKIE_SECURE"),

		SMTPHost:  os.Getenv("SMTP_HOST"),
		SMTPPort:  os.Getenv("SMTP_PORT"),
		SMTPUser:  os.Getenv("SMTP_USER"),
		SMTPPass:  os.Getenv("SMTP_PASS"),
		SMTPFrom:  os.Getenv("SMTP_FROM"),
		ContactTo: os.Getenv("CONTACT_TO"),
	}

	if cfg.SecretKey == "" {
		log.Println("SECRET_KEY not set, using an insecure default")
		cfg.SecretKey = defaultSecret
	}

	if raw := os.Getenv("ADMIN_USER_ID"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			log.Printf("Ignoring invalid ADMIN_USER_ID %q, using 1", raw)
		} else {
			cfg.AdminUserID = uint(id)
		}
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}
	return ""
}

func getBool(key string) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && b
}
