package config

import (
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	App       AppConfig       `yaml:"app"`
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Session   SessionConfig   `yaml:"session"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	Mail      MailConfig      `yaml:"mail"`
	PDF       PDFConfig       `yaml:"pdf"`
	Admin     AdminConfig     `yaml:"admin"`
	Storage   StorageConfig   `yaml:"storage"`
	Forms     FormsConfig     `yaml:"forms"`
	Intake    IntakeConfig    `yaml:"intake"`
	Retention RetentionConfig `yaml:"retention"`
}

// AppConfig holds environment-level flags.
type AppConfig struct {
	Env   string `yaml:"env"   env:"APP_ENV"   env-default:"production"`
	Debug bool   `yaml:"debug" env:"APP_DEBUG" env-default:"false"`
	// BaseURL is used to build absolute PDF download links.
	BaseURL string `yaml:"base_url" env:"APP_BASE_URL" env-default:""`
}

// IsProduction reports whether the app runs with production settings.
func (a AppConfig) IsProduction() bool {
	return strings.EqualFold(a.Env, "production")
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:""`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PATCH,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type,X-CSRF-Token,X-Admin-Token"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host            string        `yaml:"host"               env:"DB_HOST"               env-default:"localhost"`
	Port            int           `yaml:"port"               env:"DB_PORT"               env-default:"5432"`
	Name            string        `yaml:"name"               env:"DB_NAME"               env-required:"true"`
	User            string        `yaml:"user"               env:"DB_USER"               env-required:"true"`
	Password        string        `yaml:"password"           env:"DB_PASSWORD"`
	SSLMode         string        `yaml:"sslmode"            env:"DB_SSLMODE"            env-default:"disable"`
	MaxConns        int32         `yaml:"max_conns"          env:"DB_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DB_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DB_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DB_MAX_CONN_IDLE_TIME" env-default:"30m"`
	MigrateOnStart  bool          `yaml:"migrate_on_start"   env:"MIGRATE_ON_START"      env-default:"true"`
}

// DSN builds a postgres:// connection string from the discrete settings.
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		Path:   "/" + d.Name,
	}
	q := url.Values{}
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// SessionConfig holds browser session settings.
type SessionConfig struct {
	CookieName string        `yaml:"cookie_name" env:"SESSION_COOKIE"   env-default:"regform_session"`
	Lifetime   time.Duration `yaml:"lifetime"    env:"SESSION_LIFETIME" env-default:"2h"`
	Secure     bool          `yaml:"secure"      env:"SESSION_SECURE"   env-default:"true"`
	// SameSite is lax, strict or none. Use none when the survey page is
	// served from another site; browsers then require Secure.
	SameSite string `yaml:"same_site" env:"SESSION_SAMESITE" env-default:"lax"`
}

// SameSiteMode maps SameSite to the cookie attribute; unknown or empty
// values mean Lax.
func (s SessionConfig) SameSiteMode() http.SameSite {
	switch strings.ToLower(strings.TrimSpace(s.SameSite)) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
	// File, when set, receives a copy of every log line.
	File string `yaml:"file" env:"LOG_FILE"`
}

// MailConfig holds notification email settings. Mail is disabled when
// SMTPHost is empty.
type MailConfig struct {
	From         string        `yaml:"from"          env:"MAIL_FROM"`
	FromName     string        `yaml:"from_name"     env:"MAIL_FROM_NAME"     env-default:"Schulanmeldung"`
	To           string        `yaml:"to"            env:"MAIL_TO"`
	SMTPHost     string        `yaml:"smtp_host"     env:"SMTP_HOST"`
	SMTPPort     int           `yaml:"smtp_port"     env:"SMTP_PORT"          env-default:"587"`
	SMTPUser     string        `yaml:"smtp_user"     env:"SMTP_USER"`
	SMTPPassword string        `yaml:"smtp_password" env:"SMTP_PASSWORD"`
	Timeout      time.Duration `yaml:"timeout"       env:"SMTP_TIMEOUT"       env-default:"10s"`
	Language     string        `yaml:"language"      env:"MAIL_LANGUAGE"      env-default:"de"`
}

// Enabled reports whether an SMTP relay is configured.
func (m MailConfig) Enabled() bool { return m.SMTPHost != "" }

// Recipients splits the comma-separated To list.
func (m MailConfig) Recipients() []string {
	var out []string
	for _, r := range strings.Split(m.To, ",") {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}
	return out
}

// PDFConfig holds download-token and rendering settings.
type PDFConfig struct {
	TokenSecret string        `yaml:"token_secret" env:"PDF_TOKEN_SECRET" env-required:"true" env-description:"HMAC secret for PDF download tokens, at least 32 characters"`
	TokenIssuer string        `yaml:"token_issuer" env:"PDF_TOKEN_ISSUER" env-default:"regform"`
	TokenTTL    time.Duration `yaml:"token_ttl"    env:"PDF_TOKEN_TTL"    env-default:"1h"`
	Compress    bool          `yaml:"compress"     env:"PDF_COMPRESS"     env-default:"true"`
	Language    string        `yaml:"language"     env:"PDF_LANGUAGE"     env-default:"de"`
	Timezone    string        `yaml:"timezone"     env:"PDF_TIMEZONE"     env-default:"Europe/Berlin"`
}

// AdminConfig holds the shared secret guarding staff endpoints.
type AdminConfig struct {
	// TokenHash is a bcrypt hash of the admin token. Empty disables the
	// admin endpoints.
	TokenHash string `yaml:"token_hash" env:"ADMIN_TOKEN_HASH" env-description:"bcrypt hash of the staff token; empty disables admin endpoints"`
}

// StorageConfig holds S3-compatible upload relay settings. Uploads are
// disabled when Bucket is empty.
type StorageConfig struct {
	Bucket          string        `yaml:"bucket"            env:"S3_BUCKET" env-description:"upload bucket; empty disables file relay"`
	Region          string        `yaml:"region"            env:"S3_REGION"            env-default:"eu-central-1"`
	Endpoint        string        `yaml:"endpoint"          env:"S3_ENDPOINT"`
	AccessKeyID     string        `yaml:"access_key_id"     env:"S3_ACCESS_KEY_ID"`
	SecretAccessKey string        `yaml:"secret_access_key" env:"S3_SECRET_ACCESS_KEY"`
	PublicBaseURL   string        `yaml:"public_base_url"   env:"S3_PUBLIC_BASE_URL"`
	UsePathStyle    bool          `yaml:"use_path_style"    env:"S3_USE_PATH_STYLE"    env-default:"false"`
	UploadTimeout   time.Duration `yaml:"upload_timeout"    env:"UPLOAD_TIMEOUT"       env-default:"15s"`
	MaxFileSize     int64         `yaml:"max_file_size"     env:"UPLOAD_MAX_FILE_SIZE" env-default:"10485760"`
}

// Enabled reports whether an upload bucket is configured.
func (s StorageConfig) Enabled() bool { return s.Bucket != "" }

// FormsConfig locates the form registry file.
type FormsConfig struct {
	// Path to a YAML registry; empty uses the built-in registry.
	Path string `yaml:"path" env:"FORMS_PATH"`
}

// IntakeConfig holds submission endpoint limits.
type IntakeConfig struct {
	RateLimitPerMinute int   `yaml:"rate_limit_per_minute" env:"RATE_LIMIT_PER_MINUTE" env-default:"20"`
	MaxBodyBytes       int64 `yaml:"max_body_bytes"        env:"INTAKE_MAX_BODY_BYTES" env-default:"33554432"`
	RequireCSRF        bool  `yaml:"require_csrf"          env:"INTAKE_REQUIRE_CSRF"   env-default:"true"`
	// TrustProxy makes the rate limiter key on the first X-Forwarded-For
	// entry instead of the socket address.
	TrustProxy bool `yaml:"trust_proxy" env:"INTAKE_TRUST_PROXY" env-default:"false"`
}

// RetentionConfig controls how long soft-deleted submissions are kept
// before cmd/cleanup removes them for good.
type RetentionConfig struct {
	HardDeleteAfterDays int `yaml:"hard_delete_after_days" env:"HARD_DELETE_RETENTION_DAYS" env-default:"30"`
}

func (c Config) String() string {
	return fmt.Sprintf("env=%s addr=%s db=%s@%s:%d/%s", c.App.Env, c.Server.Addr(),
		c.Database.User, c.Database.Host, c.Database.Port, c.Database.Name)
}
