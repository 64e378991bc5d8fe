package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/openshop-kr/journey-api/internal/secrets"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	ApiKey    ApiKeyConfig
	Storage   StorageConfig
	Secrets   SecretsConfig
	Logging   LoggingConfig
	Server    ServerConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Reminders RemindersConfig
	Realtime  RealtimeConfig
	Payments  PaymentsConfig
}

type AppConfig struct {
	Name        string
	Environment string
	Port        int
}

type DatabaseConfig struct {
	Host            string
	Port            int
	Name            string
	User            string
	Password        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int
}

// AuthConfig configures verification of identity-provider bearer tokens.
type AuthConfig struct {
	JWTSecret string
	Issuer    string
	Audience  string
}

// ApiKeyConfig is the shared key used by the payment processor callbacks and
// operator tooling.
type ApiKeyConfig struct {
	Value string
}

type StorageConfig struct {
	Mode                  string
	LocalBasePath         string
	PublicBaseURL         string
	CloudConnectionString string
	CloudContainer        string
	MaxUploadSizeMB       int64
}

type SecretsConfig struct {
	// Source is "environment", "vault", or "auto"
	Source   string
	VaultURL string
	CacheTTL int // seconds
}

type LoggingConfig struct {
	Level  string
	Format string
}

type ServerConfig struct {
	ReadTimeout   int
	WriteTimeout  int
	EnableSwagger bool
}

type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

type RateLimitConfig struct {
	Enabled           bool
	RequestsPerMinute int
	// UploadsPerMinute bounds image uploads per caller and project.
	UploadsPerMinute int
	WhitelistIPs     []string
	WhitelistPaths   []string
}

// RemindersConfig drives the pending-payment reminder job.
type RemindersConfig struct {
	Enabled bool
	// Schedule is a cron expression with a seconds field
	Schedule          string
	PendingPaymentAge int // hours
	Cooldown          int // hours
}

type RealtimeConfig struct {
	Enabled      bool
	WriteTimeout int // seconds
	PingInterval int // seconds
	SendBuffer   int
}

type PaymentsConfig struct {
	// OverestimateRatio triggers a warning when a request exceeds the project
	// estimate by this factor.
	OverestimateRatio float64
}

// ConnectionString builds PostgreSQL connection string
func (d *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

func (d *DatabaseConfig) ConnMaxLifetimeDuration() time.Duration {
	return time.Duration(d.ConnMaxLifetime) * time.Second
}

func (s *ServerConfig) ReadTimeoutDuration() time.Duration {
	return time.Duration(s.ReadTimeout) * time.Second
}

func (s *ServerConfig) WriteTimeoutDuration() time.Duration {
	return time.Duration(s.WriteTimeout) * time.Second
}

func (r *RemindersConfig) PendingPaymentAgeDuration() time.Duration {
	return time.Duration(r.PendingPaymentAge) * time.Hour
}

func (r *RemindersConfig) CooldownDuration() time.Duration {
	return time.Duration(r.Cooldown) * time.Hour
}

func (r *RealtimeConfig) WriteTimeoutDuration() time.Duration {
	return time.Duration(r.WriteTimeout) * time.Second
}

func (r *RealtimeConfig) PingIntervalDuration() time.Duration {
	return time.Duration(r.PingInterval) * time.Second
}

// Load loads configuration from file and environment variables.
// Use LoadWithSecrets for vault resolution.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Environment variables override config file
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// LoadWithSecrets loads configuration and resolves the database password, JWT
// secret, API key and storage connection string from the configured secret
// source. In development the environment is used; elsewhere Azure Key Vault.
func LoadWithSecrets(ctx context.Context, logger *zap.Logger) (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	source := secrets.ResolveSource(secrets.Source(cfg.Secrets.Source), cfg.App.Environment)
	if source != secrets.SourceVault {
		logger.Info("Using environment variables for secrets",
			zap.String("environment", cfg.App.Environment),
		)
		return cfg, nil
	}

	provider, err := secrets.NewProvider(&secrets.ProviderConfig{
		Source:      source,
		VaultURL:    cfg.Secrets.VaultURL,
		Environment: cfg.App.Environment,
		CacheTTL:    time.Duration(cfg.Secrets.CacheTTL) * time.Second,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize secrets provider: %w", err)
	}

	ApplySecrets(ctx, cfg, provider)

	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("auth JWT secret could not be resolved from %s", source)
	}

	logger.Info("Secrets loaded from vault successfully")
	return cfg, nil
}

// ApplySecrets overlays resolved secrets onto cfg.
func ApplySecrets(ctx context.Context, cfg *Config, provider *secrets.Provider) {
	provider.ResolveInto(ctx, secrets.RefDatabasePassword, &cfg.Database.Password)
	provider.ResolveInto(ctx, secrets.RefJWTSecret, &cfg.Auth.JWTSecret)
	provider.ResolveInto(ctx, secrets.RefAPIKey, &cfg.ApiKey.Value)
	provider.ResolveInto(ctx, secrets.RefStorageConn, &cfg.Storage.CloudConnectionString)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "Journey API")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.port", 8080)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "journey")
	v.SetDefault("database.user", "journey_user")
	v.SetDefault("database.password", "journey_password")
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.maxOpenConns", 25)
	v.SetDefault("database.maxIdleConns", 5)
	v.SetDefault("database.connMaxLifetime", 300)

	v.SetDefault("auth.jwtSecret", "")
	v.SetDefault("auth.issuer", "")
	v.SetDefault("auth.audience", "")
	v.SetDefault("apiKey.value", "")

	v.SetDefault("secrets.source", "auto")
	v.SetDefault("secrets.cacheTTL", 300)

	v.SetDefault("storage.mode", "local")
	v.SetDefault("storage.localBasePath", "./storage")
	v.SetDefault("storage.publicBaseURL", "/files")
	v.SetDefault("storage.cloudContainer", "chat-images")
	v.SetDefault("storage.maxUploadSizeMB", 5)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("server.readTimeout", 30)
	v.SetDefault("server.writeTimeout", 30)
	v.SetDefault("server.enableSwagger", true)

	v.SetDefault("cors.allowedOrigins", []string{})
	v.SetDefault("cors.allowedMethods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allowedHeaders", []string{"Accept", "Authorization", "Content-Type", "X-API-Key", "X-Request-ID"})
	v.SetDefault("cors.exposedHeaders", []string{"Location", "X-Request-ID"})
	v.SetDefault("cors.allowCredentials", true)
	v.SetDefault("cors.maxAge", 300)

	v.SetDefault("rateLimit.enabled", true)
	v.SetDefault("rateLimit.requestsPerMinute", 120)
	v.SetDefault("rateLimit.uploadsPerMinute", 20)
	v.SetDefault("rateLimit.whitelistIPs", []string{"127.0.0.1", "::1"})
	v.SetDefault("rateLimit.whitelistPaths", []string{"/health", "/health/db", "/health/ready"})

	v.SetDefault("reminders.enabled", true)
	v.SetDefault("reminders.schedule", "0 0 10 * * *") // daily 10:00
	v.SetDefault("reminders.pendingPaymentAge", 72)
	v.SetDefault("reminders.cooldown", 24)

	v.SetDefault("realtime.enabled", true)
	v.SetDefault("realtime.writeTimeout", 10)
	v.SetDefault("realtime.pingInterval", 30)
	v.SetDefault("realtime.sendBuffer", 32)

	v.SetDefault("payments.overestimateRatio", 1.5)
}
