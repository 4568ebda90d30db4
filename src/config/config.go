package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"
)

// const dsn = "host=localhost user=postgres password=password dbname=usatag port=5432 sslmode=disable TimeZone=America/Chicago"

func GetDSN() string {
	DATABASE_HOST := os.Getenv("DATABASE_HOST")
	DATABASE_PORT := getEnv("DATABASE_PORT", "5432")
	DATABASE_SSLMODE := getEnv("DATABASE_SSLMODE", "disable")
	DATABASE_TIMEZONE := getEnv("DATABASE_TIMEZONE", "UTC")
	DATABASE_USER := os.Getenv("DATABASE_USER")
	DATABASE_PASSWORD := os.Getenv("DATABASE_PASSWORD")
	DATABASE_NAME := os.Getenv("DATABASE_NAME")
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s", DATABASE_HOST, DATABASE_USER, DATABASE_PASSWORD, DATABASE_NAME, DATABASE_PORT, DATABASE_SSLMODE, DATABASE_TIMEZONE)
	return dsn
}

const (
	DRIVER_POSTGRES = "postgres"
	DRIVER_SQLITE   = "sqlite"

	QUEUE_REDIS = "redis"
	QUEUE_SQS   = "sqs"
	QUEUE_LOCAL = "local"

	MAIL_SMTP = "smtp"
	MAIL_SES  = "ses"

	TOKEN_TTL      = 24 * time.Hour
	SERVER_TIMEOUT = 300 * time.Second
	MAX_BODY_BYTES = 50 << 20

	JOB_EXPIRY         = 24 * time.Hour
	JOB_SWEEP_INTERVAL = 10 * time.Minute
)

func DatabaseDriver() string {
	return getEnv("DATABASE_DRIVER", DRIVER_POSTGRES)
}

func SQLitePath() string {
	return getEnv("DATABASE_PATH", "usatag.db")
}

func Port() string {
	return getEnv("PORT", "3000")
}

func APIEnv() string {
	return os.Getenv("API_ENV")
}

func IsLocal() bool {
	return APIEnv() == "local"
}

func JWTSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Println("Warning: JWT_SECRET is not set. Tokens are signed with an empty key.")
	}
	return []byte(secret)
}

func PayPalClientID() string {
	return os.Getenv("PAYPAL_CLIENT_ID")
}

func PayPalClientSecret() string {
	return os.Getenv("PAYPAL_CLIENT_SECRET")
}

// PayPalBaseURL defaults to the live environment.
func PayPalBaseURL() string {
	if v := os.Getenv("PAYPAL_BASE_URL"); v != "" {
		return v
	}
	if os.Getenv("PAYPAL_ENV") == "sandbox" {
		return "https://api-m.sandbox.paypal.com"
	}
	return "https://api-m.paypal.com"
}

func MailTransport() string {
	return getEnv("MAIL_TRANSPORT", MAIL_SMTP)
}

func SMTPHost() string {
	return getEnv("SMTP_HOST", "smtp.gmail.com")
}

func SMTPPort() int {
	return getEnvInt("SMTP_PORT", 587)
}

func EmailUser() string {
	return os.Getenv("EMAIL_USER")
}

func EmailPassword() string {
	return os.Getenv("EMAIL_PASSWORD")
}

func NotifyRecipient() string {
	return getEnv("NOTIFY_RECIPIENT", "usatagsus@gmail.com")
}

func QueueDriver() string {
	return getEnv("QUEUE_DRIVER", QUEUE_REDIS)
}

func QueueName() string {
	return getEnv("QUEUE_NAME", "complete-update")
}

func QueueWorkerEnabled() bool {
	return getEnvBool("QUEUE_WORKER", true)
}

func RedisHost() string {
	return getEnv("REDIS_HOST", "redis://localhost:6379/0")
}

func AWSRoleArn() string {
	return os.Getenv("AWS_IAM_ROLE_ARN")
}

func AWSSecretsID() string {
	return os.Getenv("AWS_SECRETS_ID")
}

func ServerURL() string {
	return os.Getenv("SERVER_URL")
}

func TempDir() string {
	return getEnv("TEMP_DIR", os.TempDir())
}

type AdminAccount struct {
	Email    string
	Username string
	Password string
}

// Admin returns nil unless both email and password are configured.
func Admin() *AdminAccount {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return nil
	}
	return &AdminAccount{
		Email:    email,
		Username: getEnv("ADMIN_USERNAME", "admin"),
		Password: password,
	}
}

// PublicEnv is the whitelist served by GET /env. It is returned without any
// access check; every value here must be safe to hand to a browser.
type PublicEnv struct {
	ServerURL           string `json:"viteServerURL,omitempty"`
	CloudinaryCloudName string `json:"viteCloudinaryCloudName,omitempty"`
	CloudinaryPreset    string `json:"viteCloudinaryPreset,omitempty"`
	RapidAPIKey         string `json:"viteRapidAPIKey,omitempty"`
	RapidAPIHost        string `json:"viteRapidAPIHost,omitempty"`
	RapidAPIBaseURL     string `json:"viteRapidAPIBaseURL,omitempty"`
	PayPalClientID      string `json:"vitePayPalClientID,omitempty"`
}

func GetPublicEnv() PublicEnv {
	return PublicEnv{
		ServerURL:           os.Getenv("SERVER_URL"),
		CloudinaryCloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryPreset:    os.Getenv("CLOUDINARY_CLOUD_PRESET"),
		RapidAPIKey:         os.Getenv("RAPID_API_KEY"),
		RapidAPIHost:        os.Getenv("RAPID_API_HOST"),
		RapidAPIBaseURL:     os.Getenv("RAPID_API_URL"),
		PayPalClientID:      os.Getenv("PAYPAL_CLIENT_ID"),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %s\n", key, err.Error())
		return fallback
	}
	return i
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to bool: %s\n", key, err.Error())
		return fallback
	}
	return b
}
