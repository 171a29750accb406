package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	AppPort    string
	AppEnv     string
	AppBaseURL string
	CORSOrigin string

	JWTSecret     string
	SessionSecret string
	InternalKey   string

	StripeSecretKey string
	StripePublicKey string
	StripeAPIBase   string
	GatewayTimeout  time.Duration

	SMTPHost      string
	SMTPPort      string
	SMTPUsername  string
	SMTPPassword  string
	SMTPSender    string
	NotifyTimeout time.Duration

	KafkaBrokers     string
	KafkaNotifyTopic string
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBPort:     os.Getenv("DB_PORT"),

		AppPort:    getenv("APP_PORT", "8080"),
		AppEnv:     os.Getenv("APP_ENV"),
		AppBaseURL: strings.TrimRight(getenv("APP_BASE_URL", "http://localhost:8080"), "/"),
		CORSOrigin: getenv("CORS_ORIGIN", "http://localhost:3000"),

		JWTSecret:     os.Getenv("JWT_SECRET"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		InternalKey:   os.Getenv("INTERNAL_SECRET_KEY"),

		StripeSecretKey: os.Getenv("STRIPE_SECRET_KEY"),
		StripePublicKey: os.Getenv("STRIPE_PUBLIC_KEY"),
		StripeAPIBase:   strings.TrimRight(getenv("STRIPE_API_BASE", "https://api.stripe.com"), "/"),
		GatewayTimeout:  durationEnv("GATEWAY_TIMEOUT", 15*time.Second),

		SMTPHost:      os.Getenv("SMTP_HOST"),
		SMTPPort:      getenv("SMTP_PORT", "587"),
		SMTPUsername:  os.Getenv("SMTP_USERNAME"),
		SMTPPassword:  os.Getenv("SMTP_PASSWORD"),
		SMTPSender:    os.Getenv("SMTP_SENDER"),
		NotifyTimeout: durationEnv("NOTIFY_TIMEOUT", 10*time.Second),

		KafkaBrokers:     os.Getenv("KAFKA_BROKERS"),
		KafkaNotifyTopic: getenv("KAFKA_NOTIFY_TOPIC", "myshop.notifications"),
	}

	if cfg.DBHost == "" {
		log.Fatal("Environment variables not loaded properly")
	}

	return cfg
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

// durationEnv accepts Go duration strings ("2s", "500ms").
func durationEnv(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("invalid %s=%q, using %s", key, v, def)
		return def
	}
	return d
}
