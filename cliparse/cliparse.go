package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"
)

const (
	DatabaseSQLite   = "sqlite"
	DatabasePostgres = "postgres"
)

type Config struct {
	Port          int        `toml:"port"`
	DatabaseURL   string     `toml:"database_url"`
	DatabaseType  string     `toml:"database_type"`
	SessionSecret string     `toml:"session_secret"`
	Admin         string     `toml:"admin"`
	Mail          MailConfig `toml:"mail"`
	UploadDir     string     `toml:"upload_dir"`
	MaxUpload     string     `toml:"max_upload"`
	LogLevel      string     `toml:"log_level"`
	LogFormat     string     `toml:"log_format"`

	// Derived or fixed values, not read from the config file
	MaxUploadBytes int64         `toml:"-"`
	SessionTTL     time.Duration `toml:"-"`
	RememberFor    time.Duration `toml:"-"`
	ConfigFile     string        `toml:"-"`
	EnvFile        string        `toml:"-"`
}

// MailConfig holds the SMTP relay used for admin notifications.
// An empty Username disables delivery; messages are only logged.
type MailConfig struct {
	Server        string `toml:"server"`
	Port          int    `toml:"port"`
	Username      string `toml:"username"`
	Password      string `toml:"password"`
	Sender        string `toml:"sender"`
	SubjectPrefix string `toml:"subject_prefix"`
}

// ParseFlags validates flags and fills the rest from env, config file and defaults
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("setlist", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.SessionSecret, "session-secret", "", "Session signing secret (prefer env)")

	fs.StringVar(&cfg.Admin, "admin", "", "Address that receives new song notifications")
	fs.StringVar(&cfg.UploadDir, "uploads", "", "Directory for uploaded images")
	fs.StringVar(&cfg.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.ConfigFile, "c", "", "Path to a TOML config file")
	fs.StringVar(&cfg.EnvFile, "env-file", ".env", "Path to a .env file (ignored when missing)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.EnvFile != "" {
		if err := godotenv.Load(cfg.EnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load env file: %w", err)
		}
	}

	if cfg.ConfigFile == "" {
		cfg.ConfigFile = os.Getenv("CONFIG_FILE")
	}
	var file Config
	if cfg.ConfigFile != "" {
		if _, err := toml.DecodeFile(cfg.ConfigFile, &file); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	// Fall back to environment variables, then the config file, then defaults
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else if file.Port != 0 {
			cfg.Port = file.Port
		} else {
			cfg.Port = 3318 // default
		}
	}

	cfg.DatabaseType = firstNonEmpty(cfg.DatabaseType, os.Getenv("DATABASE_TYPE"), file.DatabaseType, DatabaseSQLite)
	if cfg.DatabaseType != DatabaseSQLite && cfg.DatabaseType != DatabasePostgres {
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	cfg.DatabaseURL = firstNonEmpty(cfg.DatabaseURL, os.Getenv("DATABASE_URL"), file.DatabaseURL)
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseType != DatabaseSQLite {
			return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
		}
		cfg.DatabaseURL = "setlist.db"
	}

	// Secrets - MUST be provided
	cfg.SessionSecret = firstNonEmpty(cfg.SessionSecret, os.Getenv("SESSION_SECRET"), file.SessionSecret)
	if cfg.SessionSecret == "" {
		return Config{}, errors.New("SESSION_SECRET required")
	}

	cfg.Admin = firstNonEmpty(cfg.Admin, os.Getenv("ADMIN"), file.Admin, "admin@example.com")
	cfg.UploadDir = firstNonEmpty(cfg.UploadDir, os.Getenv("UPLOAD_DIR"), file.UploadDir, "static/imgs")
	cfg.LogLevel = firstNonEmpty(cfg.LogLevel, os.Getenv("LOG_LEVEL"), file.LogLevel, "info")
	cfg.LogFormat = firstNonEmpty(os.Getenv("LOG_FORMAT"), file.LogFormat, "text")

	cfg.MaxUpload = firstNonEmpty(os.Getenv("MAX_UPLOAD"), file.MaxUpload, "10 MB")
	size, err := humanize.ParseBytes(cfg.MaxUpload)
	if err != nil {
		return Config{}, fmt.Errorf("invalid MAX_UPLOAD %q: %w", cfg.MaxUpload, err)
	}
	cfg.MaxUploadBytes = int64(size)

	mail, err := parseMail(file.Mail, cfg.Admin)
	if err != nil {
		return Config{}, err
	}
	cfg.Mail = mail

	cfg.SessionTTL = 24 * time.Hour
	cfg.RememberFor = 30 * 24 * time.Hour

	return cfg, nil
}

func parseMail(file MailConfig, admin string) (MailConfig, error) {
	mail := MailConfig{
		Server:        firstNonEmpty(os.Getenv("MAIL_SERVER"), file.Server, "smtp.googlemail.com"),
		Username:      firstNonEmpty(os.Getenv("MAIL_USERNAME"), file.Username),
		Password:      firstNonEmpty(os.Getenv("MAIL_PASSWORD"), file.Password),
		Sender:        firstNonEmpty(os.Getenv("MAIL_SENDER"), file.Sender, "Admin <"+admin+">"),
		SubjectPrefix: firstNonEmpty(os.Getenv("MAIL_SUBJECT_PREFIX"), file.SubjectPrefix, "[Songs App]"),
		Port:          file.Port,
	}

	if portStr := os.Getenv("MAIL_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return MailConfig{}, errors.New("invalid MAIL_PORT env variable")
		}
		mail.Port = port
	}
	if mail.Port == 0 {
		mail.Port = 587
	}

	return mail, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
