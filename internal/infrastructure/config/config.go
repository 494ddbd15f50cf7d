package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App        AppConfig
	Mongo      MongoConfig
	Redis      RedisConfig
	JWT        JWTConfig
	Auth       AuthConfig
	Log        LogConfig
	HTTP       HTTPConfig
	Scheduler  SchedulerConfig
	Attendance AttendanceConfig
	Pricing    PricingConfig
	Storage    StorageConfig
	DocGen     DocGenConfig
	Swagger    SwaggerConfig
	Telemetry  TelemetryConfig
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// MongoConfig holds MongoDB connection settings
type MongoConfig struct {
	URI            string // full connection string, overrides host/port/user/password when set
	Host           string
	Port           int
	User           string
	Password       string
	Database       string
	AuthSource     string
	ReplicaSet     string
	MaxPoolSize    uint64
	MinPoolSize    uint64
	ConnectTimeout time.Duration
	SocketTimeout  time.Duration
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// JWTConfig holds JWT settings
type JWTConfig struct {
	Secret                 string
	AccessTokenExpiration  time.Duration
	RefreshTokenExpiration time.Duration
	Issuer                 string
	RefreshSecret          string
	MaxRefreshCount        int
}

// AuthConfig holds authentication chain settings
type AuthConfig struct {
	// DevBypassEnabled skips token validation entirely. Refused outside
	// development and test environments.
	DevBypassEnabled bool
	// DevBypassUserID is the identity assumed when the bypass is active
	DevBypassUserID string
	// RemoteEndpoint is the base URL of the central identity service used
	// as a fallback verifier. Empty disables remote verification.
	RemoteEndpoint string
	// RemoteTimeout bounds each remote verification call
	RemoteTimeout time.Duration
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout           time.Duration
	WriteTimeout          time.Duration
	IdleTimeout           time.Duration
	MaxHeaderBytes        int
	MaxBodySize           int64
	RateLimitEnabled      bool
	RateLimitRequests     int
	RateLimitWindow       time.Duration
	AuthRateLimitEnabled  bool          // Enable stricter rate limiting for auth endpoints
	AuthRateLimitRequests int           // Max auth attempts (default: 5)
	AuthRateLimitWindow   time.Duration // Auth rate limit window (default: 1 minute)
	CORSAllowOrigins      []string
	CORSAllowMethods      []string
	CORSAllowHeaders      []string
	TrustedProxies        []string
}

// SchedulerConfig holds background job scheduler configuration
type SchedulerConfig struct {
	Enabled           bool
	CloseDayCron      string // cron spec for the attendance day-close job
	MaxConcurrentJobs int
	JobTimeout        time.Duration
	RetryAttempts     int
	RetryDelay        time.Duration
}

// AttendanceConfig holds attendance evaluation settings
type AttendanceConfig struct {
	GraceMinutes           int // late/early tolerance applied to shift boundaries
	DefaultGeofenceRadiusM float64
	MarkAbsences           bool // day-close writes absence records for unexcused misses
}

// PricingConfig holds quote computation settings
type PricingConfig struct {
	QuoteCacheTTL   time.Duration
	DefaultCurrency string
}

// StorageConfig holds object storage settings for employee documents
type StorageConfig struct {
	Provider          string // s3, stub
	Endpoint          string // custom endpoint for S3-compatible stores (MinIO)
	Region            string
	Bucket            string
	AccessKey         string
	SecretKey         string
	UsePathStyle      bool
	UseSSL            bool
	PresignExpiration time.Duration
}

// DocGenConfig holds document rendering settings
type DocGenConfig struct {
	Renderer      string // chromedp, stub
	ChromePath    string // optional explicit chrome binary path
	RenderTimeout time.Duration
	PaperWidthIn  float64
	PaperHeightIn float64
}

// SwaggerConfig holds Swagger documentation endpoint configuration
type SwaggerConfig struct {
	Enabled     bool     // Whether to enable Swagger endpoint
	RequireAuth bool     // Require authentication to access Swagger
	AllowedIPs  []string // IP whitelist (empty = allow all)
}

// TelemetryConfig holds OpenTelemetry configuration
type TelemetryConfig struct {
	Enabled           bool    // Whether to enable OpenTelemetry
	CollectorEndpoint string  // OTEL Collector endpoint (e.g., "localhost:4317")
	SamplingRatio     float64 // Sampling ratio (0.0-1.0, 1.0 = 100%)
	ServiceName       string  // Service name for traces
	Insecure          bool    // Use insecure (non-TLS) connection (development only)
	// Database tracing options
	DBTraceEnabled    bool          // Enable MongoDB command tracing (otelmongo)
	DBLogStatements   bool          // Record full command documents in spans (dev only)
	DBSlowQueryThresh time.Duration // Slow command threshold for warnings (default: 200ms)
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with HRM_ prefix (e.g., HRM_MONGO_PASSWORD)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	// Set config file settings
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	v.AddConfigPath("/app")

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	// Enable environment variable override
	v.SetEnvPrefix("HRM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Build config struct
	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Mongo: MongoConfig{
			URI:            v.GetString("mongo.uri"),
			Host:           v.GetString("mongo.host"),
			Port:           v.GetInt("mongo.port"),
			User:           v.GetString("mongo.user"),
			Password:       v.GetString("mongo.password"),
			Database:       v.GetString("mongo.database"),
			AuthSource:     v.GetString("mongo.auth_source"),
			ReplicaSet:     v.GetString("mongo.replica_set"),
			MaxPoolSize:    v.GetUint64("mongo.max_pool_size"),
			MinPoolSize:    v.GetUint64("mongo.min_pool_size"),
			ConnectTimeout: v.GetDuration("mongo.connect_timeout"),
			SocketTimeout:  v.GetDuration("mongo.socket_timeout"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("redis.host"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		JWT: JWTConfig{
			Secret:                 v.GetString("jwt.secret"),
			AccessTokenExpiration:  v.GetDuration("jwt.access_token_expiration"),
			RefreshTokenExpiration: v.GetDuration("jwt.refresh_token_expiration"),
			Issuer:                 v.GetString("jwt.issuer"),
			RefreshSecret:          v.GetString("jwt.refresh_secret"),
			MaxRefreshCount:        v.GetInt("jwt.max_refresh_count"),
		},
		Auth: AuthConfig{
			DevBypassEnabled: v.GetBool("auth.dev_bypass_enabled"),
			DevBypassUserID:  v.GetString("auth.dev_bypass_user_id"),
			RemoteEndpoint:   v.GetString("auth.remote_endpoint"),
			RemoteTimeout:    v.GetDuration("auth.remote_timeout"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:           v.GetDuration("http.read_timeout"),
			WriteTimeout:          v.GetDuration("http.write_timeout"),
			IdleTimeout:           v.GetDuration("http.idle_timeout"),
			MaxHeaderBytes:        v.GetInt("http.max_header_bytes"),
			MaxBodySize:           v.GetInt64("http.max_body_size"),
			RateLimitEnabled:      v.GetBool("http.rate_limit_enabled"),
			RateLimitRequests:     v.GetInt("http.rate_limit_requests"),
			RateLimitWindow:       v.GetDuration("http.rate_limit_window"),
			AuthRateLimitEnabled:  v.GetBool("http.auth_rate_limit_enabled"),
			AuthRateLimitRequests: v.GetInt("http.auth_rate_limit_requests"),
			AuthRateLimitWindow:   v.GetDuration("http.auth_rate_limit_window"),
			CORSAllowOrigins:      v.GetStringSlice("http.cors_allow_origins"),
			CORSAllowMethods:      v.GetStringSlice("http.cors_allow_methods"),
			CORSAllowHeaders:      v.GetStringSlice("http.cors_allow_headers"),
			TrustedProxies:        v.GetStringSlice("http.trusted_proxies"),
		},
		Scheduler: SchedulerConfig{
			Enabled:           v.GetBool("scheduler.enabled"),
			CloseDayCron:      v.GetString("scheduler.close_day_cron"),
			MaxConcurrentJobs: v.GetInt("scheduler.max_concurrent_jobs"),
			JobTimeout:        v.GetDuration("scheduler.job_timeout"),
			RetryAttempts:     v.GetInt("scheduler.retry_attempts"),
			RetryDelay:        v.GetDuration("scheduler.retry_delay"),
		},
		Attendance: AttendanceConfig{
			GraceMinutes:           v.GetInt("attendance.grace_minutes"),
			DefaultGeofenceRadiusM: v.GetFloat64("attendance.default_geofence_radius_m"),
			MarkAbsences:           v.GetBool("attendance.mark_absences"),
		},
		Pricing: PricingConfig{
			QuoteCacheTTL:   v.GetDuration("pricing.quote_cache_ttl"),
			DefaultCurrency: v.GetString("pricing.default_currency"),
		},
		Storage: StorageConfig{
			Provider:          v.GetString("storage.provider"),
			Endpoint:          v.GetString("storage.endpoint"),
			Region:            v.GetString("storage.region"),
			Bucket:            v.GetString("storage.bucket"),
			AccessKey:         v.GetString("storage.access_key"),
			SecretKey:         v.GetString("storage.secret_key"),
			UsePathStyle:      v.GetBool("storage.use_path_style"),
			UseSSL:            v.GetBool("storage.use_ssl"),
			PresignExpiration: v.GetDuration("storage.presign_expiry"),
		},
		DocGen: DocGenConfig{
			Renderer:      v.GetString("docgen.renderer"),
			ChromePath:    v.GetString("docgen.chrome_path"),
			RenderTimeout: v.GetDuration("docgen.render_timeout"),
			PaperWidthIn:  v.GetFloat64("docgen.paper_width_in"),
			PaperHeightIn: v.GetFloat64("docgen.paper_height_in"),
		},
		Swagger: SwaggerConfig{
			Enabled:     v.GetBool("swagger.enabled"),
			RequireAuth: v.GetBool("swagger.require_auth"),
			AllowedIPs:  v.GetStringSlice("swagger.allowed_ips"),
		},
		Telemetry: TelemetryConfig{
			Enabled:           v.GetBool("telemetry.enabled"),
			CollectorEndpoint: v.GetString("telemetry.collector_endpoint"),
			SamplingRatio:     v.GetFloat64("telemetry.sampling_ratio"),
			ServiceName:       v.GetString("telemetry.service_name"),
			Insecure:          v.GetBool("telemetry.insecure"),
			DBTraceEnabled:    v.GetBool("telemetry.db_trace_enabled"),
			DBLogStatements:   v.GetBool("telemetry.db_log_statements"),
			DBSlowQueryThresh: v.GetDuration("telemetry.db_slow_query_threshold"),
		},
	}

	// Apply defaults for empty values
	applyDefaults(cfg)

	// Validate configuration
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "hrm-service"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.Mongo.Host == "" {
		cfg.Mongo.Host = "localhost"
	}
	if cfg.Mongo.Port == 0 {
		cfg.Mongo.Port = 27017
	}
	if cfg.Mongo.Database == "" {
		cfg.Mongo.Database = "hrm"
	}
	if cfg.Mongo.AuthSource == "" {
		cfg.Mongo.AuthSource = "admin"
	}
	if cfg.Mongo.MaxPoolSize == 0 {
		cfg.Mongo.MaxPoolSize = 100
	}
	if cfg.Mongo.MinPoolSize == 0 {
		cfg.Mongo.MinPoolSize = 5
	}
	if cfg.Mongo.ConnectTimeout == 0 {
		cfg.Mongo.ConnectTimeout = 10 * time.Second
	}
	if cfg.Mongo.SocketTimeout == 0 {
		cfg.Mongo.SocketTimeout = 30 * time.Second
	}
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.JWT.AccessTokenExpiration == 0 {
		cfg.JWT.AccessTokenExpiration = 15 * time.Minute
	}
	if cfg.JWT.RefreshTokenExpiration == 0 {
		cfg.JWT.RefreshTokenExpiration = 168 * time.Hour
	}
	if cfg.JWT.Issuer == "" {
		cfg.JWT.Issuer = "hrm-service"
	}
	if cfg.JWT.MaxRefreshCount == 0 {
		cfg.JWT.MaxRefreshCount = 10
	}
	if cfg.Auth.RemoteTimeout == 0 {
		cfg.Auth.RemoteTimeout = 3 * time.Second
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 15 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.MaxHeaderBytes == 0 {
		cfg.HTTP.MaxHeaderBytes = 1 << 20 // 1MB
	}
	if cfg.HTTP.MaxBodySize == 0 {
		cfg.HTTP.MaxBodySize = 10 << 20 // 10MB
	}
	if cfg.HTTP.RateLimitRequests == 0 {
		cfg.HTTP.RateLimitRequests = 100
	}
	if cfg.HTTP.RateLimitWindow == 0 {
		cfg.HTTP.RateLimitWindow = time.Minute
	}
	// Auth rate limiting defaults - stricter limits for auth endpoints to prevent brute force
	if cfg.HTTP.AuthRateLimitRequests == 0 {
		cfg.HTTP.AuthRateLimitRequests = 5 // 5 attempts per window
	}
	if cfg.HTTP.AuthRateLimitWindow == 0 {
		cfg.HTTP.AuthRateLimitWindow = time.Minute // 1 minute window
	}
	// NOTE: CORS origins are intentionally not given a default fallback to "*".
	// An empty list means no cross-origin requests are allowed until explicitly configured.
	if len(cfg.HTTP.CORSAllowMethods) == 0 {
		cfg.HTTP.CORSAllowMethods = []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"}
	}
	if len(cfg.HTTP.CORSAllowHeaders) == 0 {
		cfg.HTTP.CORSAllowHeaders = []string{"Content-Type", "Authorization", "X-Request-ID"}
	}
	if cfg.Scheduler.CloseDayCron == "" {
		cfg.Scheduler.CloseDayCron = "30 0 * * *"
	}
	if cfg.Scheduler.MaxConcurrentJobs == 0 {
		cfg.Scheduler.MaxConcurrentJobs = 3
	}
	if cfg.Scheduler.JobTimeout == 0 {
		cfg.Scheduler.JobTimeout = 30 * time.Minute
	}
	if cfg.Scheduler.RetryAttempts == 0 {
		cfg.Scheduler.RetryAttempts = 3
	}
	if cfg.Scheduler.RetryDelay == 0 {
		cfg.Scheduler.RetryDelay = 5 * time.Minute
	}
	if cfg.Attendance.GraceMinutes == 0 {
		cfg.Attendance.GraceMinutes = 10
	}
	if cfg.Attendance.DefaultGeofenceRadiusM == 0 {
		cfg.Attendance.DefaultGeofenceRadiusM = 250
	}
	if cfg.Pricing.QuoteCacheTTL == 0 {
		cfg.Pricing.QuoteCacheTTL = 5 * time.Minute
	}
	if cfg.Pricing.DefaultCurrency == "" {
		cfg.Pricing.DefaultCurrency = "USD"
	}
	if cfg.Storage.Provider == "" {
		cfg.Storage.Provider = "stub"
	}
	if cfg.Storage.Region == "" {
		cfg.Storage.Region = "us-east-1"
	}
	if cfg.Storage.PresignExpiration == 0 {
		cfg.Storage.PresignExpiration = 15 * time.Minute
	}
	if cfg.DocGen.Renderer == "" {
		cfg.DocGen.Renderer = "stub"
	}
	if cfg.DocGen.RenderTimeout == 0 {
		cfg.DocGen.RenderTimeout = 30 * time.Second
	}
	if cfg.DocGen.PaperWidthIn == 0 {
		cfg.DocGen.PaperWidthIn = 8.27 // A4
	}
	if cfg.DocGen.PaperHeightIn == 0 {
		cfg.DocGen.PaperHeightIn = 11.69
	}

	// Telemetry defaults
	if cfg.Telemetry.CollectorEndpoint == "" {
		cfg.Telemetry.CollectorEndpoint = "localhost:4317" // Default gRPC endpoint
	}
	if cfg.Telemetry.SamplingRatio == 0 {
		cfg.Telemetry.SamplingRatio = 1.0 // 100% in development
	}
	if cfg.Telemetry.ServiceName == "" {
		cfg.Telemetry.ServiceName = "hrm-service"
	}
	// Insecure defaults to false for safety (TLS enabled by default)
	if cfg.Telemetry.DBSlowQueryThresh == 0 {
		cfg.Telemetry.DBSlowQueryThresh = 200 * time.Millisecond
	}
	// DBLogStatements defaults to false: command documents may carry PII
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if c.Mongo.MinPoolSize > c.Mongo.MaxPoolSize {
		return fmt.Errorf("mongo.min_pool_size (%d) cannot exceed mongo.max_pool_size (%d)",
			c.Mongo.MinPoolSize, c.Mongo.MaxPoolSize)
	}

	switch c.Storage.Provider {
	case "s3", "stub":
	default:
		return fmt.Errorf("storage.provider must be 's3' or 'stub', got %q", c.Storage.Provider)
	}
	if c.Storage.Provider == "s3" && c.Storage.Bucket == "" {
		return fmt.Errorf("storage.bucket is required when storage.provider is 's3'")
	}

	switch c.DocGen.Renderer {
	case "chromedp", "stub":
	default:
		return fmt.Errorf("docgen.renderer must be 'chromedp' or 'stub', got %q", c.DocGen.Renderer)
	}

	if c.Attendance.GraceMinutes < 0 {
		return fmt.Errorf("attendance.grace_minutes cannot be negative")
	}

	// Production-specific validations
	if c.App.Env == "production" {
		if c.JWT.Secret == "" {
			return fmt.Errorf("jwt.secret is required in production")
		}
		if len(c.JWT.Secret) < 32 {
			return fmt.Errorf("jwt.secret must be at least 32 characters in production")
		}
		if c.Auth.DevBypassEnabled {
			return fmt.Errorf("auth.dev_bypass_enabled must be false in production")
		}
		// CORS must not use wildcard with credentials
		for _, origin := range c.HTTP.CORSAllowOrigins {
			if origin == "*" {
				return fmt.Errorf("cors_allow_origins cannot be '*' in production (use specific origins)")
			}
		}
		// Swagger must be disabled OR protected in production
		if c.Swagger.Enabled {
			if !c.Swagger.RequireAuth && len(c.Swagger.AllowedIPs) == 0 {
				return fmt.Errorf("swagger endpoint must be disabled, require authentication, or have IP restriction in production")
			}
		}
		// Full command logging is a data exposure risk in production
		if c.Telemetry.DBLogStatements {
			return fmt.Errorf("telemetry.db_log_statements must be false in production to prevent sensitive data exposure in traces")
		}
	}

	// Validate telemetry configuration (all environments)
	if c.Telemetry.SamplingRatio < 0.0 || c.Telemetry.SamplingRatio > 1.0 {
		return fmt.Errorf("telemetry.sampling_ratio must be between 0.0 and 1.0, got %f", c.Telemetry.SamplingRatio)
	}

	return nil
}

// IsProduction reports whether the app runs with production hardening
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// ConnectionURI returns the MongoDB connection string. An explicit
// mongo.uri wins; otherwise the URI is assembled from the parts with
// properly escaped credentials.
func (m *MongoConfig) ConnectionURI() string {
	if m.URI != "" {
		return m.URI
	}

	u := url.URL{
		Scheme: "mongodb",
		Host:   fmt.Sprintf("%s:%d", m.Host, m.Port),
	}
	if m.User != "" {
		u.User = url.UserPassword(m.User, m.Password)
	}

	q := u.Query()
	if m.User != "" && m.AuthSource != "" {
		q.Set("authSource", m.AuthSource)
	}
	if m.ReplicaSet != "" {
		q.Set("replicaSet", m.ReplicaSet)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// Addr returns the Redis address in host:port form
func (r *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}
