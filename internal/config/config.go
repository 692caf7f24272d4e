package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	DB        DBConfig
	JWT       JWTConfig
	Extractor ExtractorConfig
	Archive   ArchiveConfig
	Email     EmailConfig
	CORS      CORSConfig
	Log       LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret             string        `mapstructure:"secret"`
	AccessTokenExpiry  time.Duration `mapstructure:"access_expiry"`
	RefreshTokenExpiry time.Duration `mapstructure:"refresh_expiry"`
	Issuer             string        `mapstructure:"issuer"`
}

// ExtractorConfig holds settings for the AI bill extraction service.
type ExtractorConfig struct {
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// ArchiveConfig holds object-storage settings for archiving processed bill
// documents. An empty bucket disables archiving.
type ArchiveConfig struct {
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// Enabled reports whether document archiving is configured.
func (a *ArchiveConfig) Enabled() bool {
	return a.Bucket != ""
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
	FrontendURL string `mapstructure:"frontend_url"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the CONTALUZ_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CONTALUZ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "contaluz")
	v.SetDefault("db.password", "contaluz_secret")
	v.SetDefault("db.name", "contaluz_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "15m")
	v.SetDefault("jwt.refresh_expiry", "168h")
	v.SetDefault("jwt.issuer", "contaluz")

	// Extractor defaults
	v.SetDefault("extractor.api_key", "")
	v.SetDefault("extractor.default_model", "gemini-2.5-flash")
	v.SetDefault("extractor.timeout_secs", 120)

	// Archive defaults (disabled unless a bucket is set)
	v.SetDefault("archive.region", "us-east-1")
	v.SetDefault("archive.bucket", "")
	v.SetDefault("archive.endpoint", "")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "us-east-1")
	v.SetDefault("email.from_address", "noreply@contaluz.app")
	v.SetDefault("email.from_name", "Conta Luz")
	v.SetDefault("email.frontend_url", "http://localhost:3000")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":             "CONTALUZ_SERVER_PORT",
		"server.read_timeout":     "CONTALUZ_SERVER_READ_TIMEOUT",
		"server.write_timeout":    "CONTALUZ_SERVER_WRITE_TIMEOUT",
		"server.environment":      "CONTALUZ_SERVER_ENVIRONMENT",
		"db.host":                 "CONTALUZ_DB_HOST",
		"db.port":                 "CONTALUZ_DB_PORT",
		"db.user":                 "CONTALUZ_DB_USER",
		"db.password":             "CONTALUZ_DB_PASSWORD",
		"db.name":                 "CONTALUZ_DB_NAME",
		"db.sslmode":              "CONTALUZ_DB_SSLMODE",
		"db.max_open":             "CONTALUZ_DB_MAX_OPEN",
		"db.max_idle":             "CONTALUZ_DB_MAX_IDLE",
		"jwt.secret":              "CONTALUZ_JWT_SECRET",
		"jwt.access_expiry":       "CONTALUZ_JWT_ACCESS_EXPIRY",
		"jwt.refresh_expiry":      "CONTALUZ_JWT_REFRESH_EXPIRY",
		"jwt.issuer":              "CONTALUZ_JWT_ISSUER",
		"extractor.api_key":       "CONTALUZ_EXTRACTOR_API_KEY",
		"extractor.default_model": "CONTALUZ_EXTRACTOR_DEFAULT_MODEL",
		"extractor.timeout_secs":  "CONTALUZ_EXTRACTOR_TIMEOUT_SECS",
		"archive.region":          "CONTALUZ_ARCHIVE_REGION",
		"archive.bucket":          "CONTALUZ_ARCHIVE_BUCKET",
		"archive.endpoint":        "CONTALUZ_ARCHIVE_ENDPOINT",
		"archive.access_key":      "CONTALUZ_ARCHIVE_ACCESS_KEY",
		"archive.secret_key":      "CONTALUZ_ARCHIVE_SECRET_KEY",
		"email.provider":          "CONTALUZ_EMAIL_PROVIDER",
		"email.region":            "CONTALUZ_EMAIL_REGION",
		"email.from_address":      "CONTALUZ_EMAIL_FROM_ADDRESS",
		"email.from_name":         "CONTALUZ_EMAIL_FROM_NAME",
		"email.frontend_url":      "CONTALUZ_EMAIL_FRONTEND_URL",
		"cors.allowed_origins":    "CONTALUZ_CORS_ALLOWED_ORIGINS",
		"log.level":               "CONTALUZ_LOG_LEVEL",
		"log.format":              "CONTALUZ_LOG_FORMAT",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// The GEMINI API key historically lived in a bare API_KEY variable on the
	// deployment platform. Honor it when the prefixed variable is unset.
	apiKey := v.GetString("extractor.api_key")
	if apiKey == "" {
		apiKey = os.Getenv("API_KEY")
	}

	// Railway/Heroku/Render set a PORT env var. Use it if CONTALUZ_SERVER_PORT
	// is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("CONTALUZ_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret:             v.GetString("jwt.secret"),
		AccessTokenExpiry:  v.GetDuration("jwt.access_expiry"),
		RefreshTokenExpiry: v.GetDuration("jwt.refresh_expiry"),
		Issuer:             v.GetString("jwt.issuer"),
	}
	cfg.Extractor = ExtractorConfig{
		APIKey:       apiKey,
		DefaultModel: v.GetString("extractor.default_model"),
		TimeoutSecs:  v.GetInt("extractor.timeout_secs"),
	}
	cfg.Archive = ArchiveConfig{
		Region:    v.GetString("archive.region"),
		Bucket:    v.GetString("archive.bucket"),
		Endpoint:  v.GetString("archive.endpoint"),
		AccessKey: v.GetString("archive.access_key"),
		SecretKey: v.GetString("archive.secret_key"),
	}
	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
		FrontendURL: v.GetString("email.frontend_url"),
	}

	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	return cfg, nil
}
