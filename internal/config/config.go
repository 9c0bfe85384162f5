package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	AppEnv         string
	Port           string
	AllowedOrigins []string
	LogLevel       string

	DatabaseURL string
	DBHost      string
	DBUser      string
	DBPass      string
	DBName      string
	DBPort      string
	DBDebug     bool

	RedisURL string

	MeiliSearchHost string
	MeiliMasterKey  string

	StorageDriver          string
	CloudinaryURL          string
	CloudinaryCloudName    string
	CloudinaryAPIKey       string
	CloudinaryAPISecret    string
	CloudinaryUploadFolder string
	S3Bucket               string
	S3Region               string
	S3Endpoint             string
	S3PublicBaseURL        string

	KafkaBrokers    []string
	KafkaAuditTopic string

	GeminiAPIKey string
	GeminiModel  string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string

	JWTSecret   string
	JWTTTL      time.Duration
	DefaultRole string

	AdminEmail    string
	AdminPassword string

	SLASweepSchedule string
	RateLimitTicket  time.Duration
	RateLimitChat    time.Duration
	RateLimitEnquiry time.Duration
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		AppEnv:         v.GetString("APP_ENV"),
		Port:           v.GetString("PORT"),
		AllowedOrigins: splitList(v.GetString("ALLOWED_ORIGINS")),
		LogLevel:       v.GetString("LOG_LEVEL"),

		DatabaseURL: v.GetString("DATABASE_URL"),
		DBHost:      v.GetString("DB_HOST"),
		DBUser:      v.GetString("DB_USER"),
		DBPass:      v.GetString("DB_PASS"),
		DBName:      v.GetString("DB_NAME"),
		DBPort:      v.GetString("DB_PORT"),
		DBDebug:     v.GetBool("DB_DEBUG"),

		RedisURL: v.GetString("REDIS_URL"),

		MeiliSearchHost: v.GetString("MEILISEARCH_HOST"),
		MeiliMasterKey:  v.GetString("MEILI_MASTER_KEY"),

		StorageDriver:          v.GetString("STORAGE_DRIVER"),
		CloudinaryURL:          v.GetString("CLOUDINARY_URL"),
		CloudinaryCloudName:    v.GetString("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:       v.GetString("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret:    v.GetString("CLOUDINARY_API_SECRET"),
		CloudinaryUploadFolder: v.GetString("CLOUDINARY_UPLOAD_FOLDER"),
		S3Bucket:               v.GetString("S3_BUCKET"),
		S3Region:               v.GetString("S3_REGION"),
		S3Endpoint:             v.GetString("S3_ENDPOINT"),
		S3PublicBaseURL:        v.GetString("S3_PUBLIC_BASE_URL"),

		KafkaBrokers:    splitList(v.GetString("KAFKA_BROKERS")),
		KafkaAuditTopic: v.GetString("KAFKA_AUDIT_TOPIC"),

		GeminiAPIKey: v.GetString("GEMINI_API_KEY"),
		GeminiModel:  v.GetString("GEMINI_MODEL"),

		GoogleClientID:     v.GetString("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: v.GetString("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:  v.GetString("GOOGLE_REDIRECT_URL"),

		JWTSecret:   v.GetString("JWT_SECRET"),
		DefaultRole: v.GetString("DEFAULT_ROLE"),

		AdminEmail:    v.GetString("ADMIN_EMAIL"),
		AdminPassword: v.GetString("ADMIN_PASSWORD"),

		SLASweepSchedule: v.GetString("SLA_SWEEP_SCHEDULE"),
	}

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"JWT_TTL", &cfg.JWTTTL},
		{"RATE_LIMIT_TICKET", &cfg.RateLimitTicket},
		{"RATE_LIMIT_CHAT", &cfg.RateLimitChat},
		{"RATE_LIMIT_ENQUIRY", &cfg.RateLimitEnquiry},
	}
	for _, d := range durations {
		parsed, err := time.ParseDuration(v.GetString(d.key))
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", d.key, err)
		}
		*d.dst = parsed
	}

	if cfg.IsProduction() && cfg.JWTSecret == "change-me" {
		return nil, fmt.Errorf("JWT_SECRET must be set in production")
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", "8080")
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:5173")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MEILISEARCH_HOST", "")
	v.SetDefault("CLOUDINARY_UPLOAD_FOLDER", "livestockhub")
	v.SetDefault("KAFKA_AUDIT_TOPIC", "livestockhub.audit")
	v.SetDefault("GEMINI_MODEL", "gemini-2.5-flash")
	v.SetDefault("JWT_SECRET", "change-me")
	v.SetDefault("JWT_TTL", "24h")
	v.SetDefault("DEFAULT_ROLE", "farmer")
	v.SetDefault("ADMIN_EMAIL", "admin@livestockhub.local")
	v.SetDefault("SLA_SWEEP_SCHEDULE", "*/15 * * * *")
	v.SetDefault("RATE_LIMIT_TICKET", "30s")
	v.SetDefault("RATE_LIMIT_CHAT", "2s")
	v.SetDefault("RATE_LIMIT_ENQUIRY", "10s")
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
