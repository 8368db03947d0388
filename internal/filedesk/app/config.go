package app

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is resolved in three layers: built-in defaults, then the YAML file
// named by FILEDESK_CONFIG, then environment variables (including a local
// .env file).
type Config struct {
	Env                 string        `yaml:"env"`                   // dev, staging, prod (default: dev)
	LogLevel            string        `yaml:"log_level"`             // debug, info, warn, error (default: info)
	LogFormat           string        `yaml:"log_format"`            // json, text (default: json)
	Port                int           `yaml:"port"`                  // HTTP port (default: 8080)
	ShutdownGracePeriod time.Duration `yaml:"shutdown_grace_period"` // default: 10s

	DatabaseFile string `yaml:"database_file"` // SQLite file (default: ./filedesk.db)
	PepperFile   string `yaml:"pepper_file"`   // password pepper (default: ./pepper)

	SigningKeyFile string        `yaml:"signing_key_file"` // Ed25519 PEM, created on first start (default: ./signing.pem)
	TokenIssuer    string        `yaml:"token_issuer"`     // iss claim (default: filedesk)
	AccessTokenTTL time.Duration `yaml:"access_token_ttl"` // default: 8h

	LockoutThreshold int           `yaml:"lockout_threshold"` // default: 5
	LockoutWindow    time.Duration `yaml:"lockout_window"`    // default: 30m
	ResetTokenTTL    time.Duration `yaml:"reset_token_ttl"`   // default: 1h
	ResetURLBase     string        `yaml:"reset_url_base"`    // prefix of the emailed reset link

	HousekeepingInterval time.Duration `yaml:"housekeeping_interval"` // default: 1h

	// SMTP delivery. Without a host, reset links are written to the log.
	SMTPHost     string `yaml:"smtp_host"`
	SMTPPort     int    `yaml:"smtp_port"`
	SMTPUsername string `yaml:"smtp_username"`
	SMTPPassword string `yaml:"smtp_password"`
	SMTPFrom     string `yaml:"smtp_from"`

	BlobBackend    string `yaml:"blob_backend"` // local or minio (default: local)
	BlobDir        string `yaml:"blob_dir"`     // local backend root (default: ./blobs)
	MinIOEndpoint  string `yaml:"minio_endpoint"`
	MinIOAccessKey string `yaml:"minio_access_key"`
	MinIOSecretKey string `yaml:"minio_secret_key"`
	MinIOBucket    string `yaml:"minio_bucket"`
	MinIOUseSSL    bool   `yaml:"minio_use_ssl"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes"` // default: 32 MiB
}

func defaultConfig() Config {
	return Config{
		Env:                  "dev",
		LogLevel:             "info",
		LogFormat:            "json",
		Port:                 8080,
		ShutdownGracePeriod:  10 * time.Second,
		DatabaseFile:         "filedesk.db",
		PepperFile:           "pepper",
		SigningKeyFile:       "signing.pem",
		TokenIssuer:          "filedesk",
		AccessTokenTTL:       8 * time.Hour,
		LockoutThreshold:     5,
		LockoutWindow:        30 * time.Minute,
		ResetTokenTTL:        time.Hour,
		ResetURLBase:         "http://localhost:3000/reset-password?token=",
		HousekeepingInterval: time.Hour,
		SMTPPort:             587,
		BlobBackend:          "local",
		BlobDir:              "blobs",
		MinIOBucket:          "filedesk",
		MaxUploadBytes:       32 << 20,
	}
}

func LoadConfig() (Config, error) {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	cfg := defaultConfig()
	if path := os.Getenv("FILEDESK_CONFIG"); path != "" {
		if err := loadYAML(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	cfg.Env = getEnvOrDefault("ENV", cfg.Env)
	cfg.LogLevel = getEnvOrDefault("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnvOrDefault("LOG_FORMAT", cfg.LogFormat)
	cfg.Port = getEnvIntOrDefault("PORT", cfg.Port)
	cfg.ShutdownGracePeriod = getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", cfg.ShutdownGracePeriod)

	cfg.DatabaseFile = getEnvOrDefault("DATABASE_FILE", cfg.DatabaseFile)
	cfg.PepperFile = getEnvOrDefault("PEPPER_FILE", cfg.PepperFile)

	cfg.SigningKeyFile = getEnvOrDefault("SIGNING_KEY_FILE", cfg.SigningKeyFile)
	cfg.TokenIssuer = getEnvOrDefault("TOKEN_ISSUER", cfg.TokenIssuer)
	cfg.AccessTokenTTL = getEnvDurationOrDefault("ACCESS_TOKEN_TTL", cfg.AccessTokenTTL)

	cfg.LockoutThreshold = getEnvIntOrDefault("LOCKOUT_THRESHOLD", cfg.LockoutThreshold)
	cfg.LockoutWindow = getEnvDurationOrDefault("LOCKOUT_WINDOW", cfg.LockoutWindow)
	cfg.ResetTokenTTL = getEnvDurationOrDefault("RESET_TOKEN_TTL", cfg.ResetTokenTTL)
	cfg.ResetURLBase = getEnvOrDefault("RESET_URL_BASE", cfg.ResetURLBase)

	cfg.HousekeepingInterval = getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", cfg.HousekeepingInterval)

	cfg.SMTPHost = getEnvOrDefault("SMTP_HOST", cfg.SMTPHost)
	cfg.SMTPPort = getEnvIntOrDefault("SMTP_PORT", cfg.SMTPPort)
	cfg.SMTPUsername = getEnvOrDefault("SMTP_USERNAME", cfg.SMTPUsername)
	cfg.SMTPPassword = getEnvOrDefault("SMTP_PASSWORD", cfg.SMTPPassword)
	cfg.SMTPFrom = getEnvOrDefault("SMTP_FROM", cfg.SMTPFrom)

	cfg.BlobBackend = getEnvOrDefault("BLOB_BACKEND", cfg.BlobBackend)
	cfg.BlobDir = getEnvOrDefault("BLOB_DIR", cfg.BlobDir)
	cfg.MinIOEndpoint = getEnvOrDefault("MINIO_ENDPOINT", cfg.MinIOEndpoint)
	cfg.MinIOAccessKey = getEnvOrDefault("MINIO_ACCESS_KEY", cfg.MinIOAccessKey)
	cfg.MinIOSecretKey = getEnvOrDefault("MINIO_SECRET_KEY", cfg.MinIOSecretKey)
	cfg.MinIOBucket = getEnvOrDefault("MINIO_BUCKET", cfg.MinIOBucket)
	cfg.MinIOUseSSL = getEnvBoolOrDefault("MINIO_USE_SSL", cfg.MinIOUseSSL)
	cfg.MaxUploadBytes = getEnvInt64OrDefault("MAX_UPLOAD_BYTES", cfg.MaxUploadBytes)

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadYAML(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config file: %w", err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c Config) validate() error {
	switch c.BlobBackend {
	case "local":
	case "minio":
		if c.MinIOEndpoint == "" || c.MinIOAccessKey == "" || c.MinIOSecretKey == "" {
			return fmt.Errorf("blob backend minio needs MINIO_ENDPOINT, MINIO_ACCESS_KEY and MINIO_SECRET_KEY")
		}
	default:
		return fmt.Errorf("unknown blob backend %q", c.BlobBackend)
	}
	if c.LockoutThreshold < 1 {
		return fmt.Errorf("lockout threshold must be at least 1")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if n, err := strconv.ParseInt(value, 10, 64); err == nil {
		return n
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Plain integers are minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
