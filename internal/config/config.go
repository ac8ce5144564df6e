package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Redis      RedisConfig      `yaml:"redis"`
	JWT        JWTConfig        `yaml:"jwt"`
	Email      EmailConfig      `yaml:"email"`
	S3         S3Config         `yaml:"s3"`
	Invitation InvitationConfig `yaml:"invitation"`
	Logger     LoggerConfig     `yaml:"logger"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string        `yaml:"port"`
	Mode            string        `yaml:"mode"`
	BasePath        string        `yaml:"base_path"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
}

// DatabaseConfig holds PostgreSQL settings
type DatabaseConfig struct {
	Driver          string        `yaml:"driver"` // postgres or sqlite
	URL             string        `yaml:"url"`
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	DBName          string        `yaml:"dbname"`
	SSLMode         string        `yaml:"sslmode"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

// GetDSN returns the connection string, preferring an explicit URL
func (d DatabaseConfig) GetDSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// RedisConfig holds Redis settings. Redis is optional; an empty Host and URL disables it.
type RedisConfig struct {
	URL      string `yaml:"url"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// Addr returns host:port
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// Enabled reports whether Redis is configured
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Host != ""
}

// JWTConfig holds token issuing settings
type JWTConfig struct {
	Secret         string        `yaml:"secret"`
	Issuer         string        `yaml:"issuer"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl"`
}

// EmailConfig holds transactional email settings.
// APIKey must come from the environment or a deployment secret.
type EmailConfig struct {
	ResendAPIKey string        `yaml:"resend_api_key"`
	BaseURL      string        `yaml:"base_url"`
	From         string        `yaml:"from"`
	AppBaseURL   string        `yaml:"app_base_url"`
	Timeout      time.Duration `yaml:"timeout"`
}

// S3Config holds object storage settings
type S3Config struct {
	Bucket        string        `yaml:"bucket"`
	Region        string        `yaml:"region"`
	Endpoint      string        `yaml:"endpoint"`
	AccessKey     string        `yaml:"access_key"`
	SecretKey     string        `yaml:"secret_key"`
	PresignExpiry time.Duration `yaml:"presign_expiry"`
}

// InvitationConfig holds invitation and access code settings
type InvitationConfig struct {
	AccessCodeMaxAttempts int    `yaml:"access_code_max_attempts"`
	DefaultExpiryHours    int    `yaml:"default_expiry_hours"`
	ExpirySweepCron       string `yaml:"expiry_sweep_cron"`
	AttachmentCleanupCron string `yaml:"attachment_cleanup_cron"`
}

// LoggerConfig holds logging settings
type LoggerConfig struct {
	Level string `yaml:"level"`
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8000",
			Mode:            "debug",
			BasePath:        "/api/v1",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Driver:          "postgres",
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "teamup",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 5 * time.Minute,
		},
		Redis: RedisConfig{
			Port: 6379,
		},
		JWT: JWTConfig{
			Issuer:         "teamup-board-api",
			AccessTokenTTL: 24 * time.Hour,
		},
		Email: EmailConfig{
			BaseURL:    "https://api.resend.com",
			From:       "TeamUp <no-reply@teamup.app>",
			AppBaseURL: "http://localhost:5173",
			Timeout:    10 * time.Second,
		},
		S3: S3Config{
			PresignExpiry: 5 * time.Minute,
		},
		Invitation: InvitationConfig{
			AccessCodeMaxAttempts: 5,
			DefaultExpiryHours:    168,
			ExpirySweepCron:       "*/10 * * * *",
			AttachmentCleanupCron: "0 * * * *",
		},
		Logger: LoggerConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from a yaml file, then a .env file, then the environment.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	// .env is optional in every environment
	_ = godotenv.Load()

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.Server.Port, "PORT")
	setString(&cfg.Server.Mode, "GIN_MODE")
	setString(&cfg.Server.BasePath, "SERVER_BASE_PATH")
	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		cfg.Server.AllowedOrigins = strings.Split(origins, ",")
	}

	setString(&cfg.Database.Driver, "DB_DRIVER")
	setString(&cfg.Database.URL, "DATABASE_URL")
	setString(&cfg.Database.Host, "DB_HOST")
	setInt(&cfg.Database.Port, "DB_PORT")
	setString(&cfg.Database.User, "DB_USER")
	setString(&cfg.Database.Password, "DB_PASSWORD")
	setString(&cfg.Database.DBName, "DB_NAME")
	setString(&cfg.Database.SSLMode, "DB_SSLMODE")

	setString(&cfg.Redis.URL, "REDIS_URL")
	setString(&cfg.Redis.Host, "REDIS_HOST")
	setInt(&cfg.Redis.Port, "REDIS_PORT")
	setString(&cfg.Redis.Password, "REDIS_PASSWORD")
	setInt(&cfg.Redis.DB, "REDIS_DB")

	setString(&cfg.JWT.Secret, "JWT_SECRET")
	setString(&cfg.JWT.Issuer, "JWT_ISSUER")
	setDuration(&cfg.JWT.AccessTokenTTL, "JWT_ACCESS_TOKEN_TTL")

	setString(&cfg.Email.ResendAPIKey, "RESEND_API_KEY")
	setString(&cfg.Email.From, "EMAIL_FROM")
	setString(&cfg.Email.AppBaseURL, "APP_BASE_URL")

	setString(&cfg.S3.Bucket, "S3_BUCKET")
	setString(&cfg.S3.Region, "S3_REGION")
	setString(&cfg.S3.Endpoint, "S3_ENDPOINT")
	setString(&cfg.S3.AccessKey, "S3_ACCESS_KEY")
	setString(&cfg.S3.SecretKey, "S3_SECRET_KEY")

	setInt(&cfg.Invitation.AccessCodeMaxAttempts, "ACCESS_CODE_MAX_ATTEMPTS")
	setInt(&cfg.Invitation.DefaultExpiryHours, "INVITATION_EXPIRY_HOURS")

	setString(&cfg.Logger.Level, "LOG_LEVEL")
}

// Validate checks settings that would otherwise fail at request time
func (c *Config) Validate() error {
	if c.Server.Mode == "release" && c.JWT.Secret == "" {
		return fmt.Errorf("jwt secret is required in release mode")
	}
	if c.Database.Driver != "postgres" && c.Database.Driver != "sqlite" {
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}
	if c.Invitation.AccessCodeMaxAttempts < 1 {
		return fmt.Errorf("invitation.access_code_max_attempts must be at least 1")
	}
	if c.Invitation.DefaultExpiryHours < 0 {
		return fmt.Errorf("invitation.default_expiry_hours must not be negative")
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
