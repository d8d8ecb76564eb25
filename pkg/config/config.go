package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database    DatabaseConfig
	Redis       RedisConfig
	JWT         JWTConfig
	CORS        CORSConfig
	Log         LogConfig
	Search      SearchConfig
	ObjectStore ObjectStoreConfig
	Analytics   AnalyticsConfig
	Dashboard   DashboardConfig
	Drilldown   DrilldownConfig
	JobBoard    JobBoardConfig
	Exports     ExportsConfig
	Notify      NotifyConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret            string
	Expiration        time.Duration
	RefreshExpiration time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// SearchConfig controls the optional Elasticsearch-backed course search.
type SearchConfig struct {
	Enabled   bool
	Addresses []string
	Username  string
	Password  string
	Index     string
}

// ObjectStoreConfig configures MinIO buckets for uploaded files.
type ObjectStoreConfig struct {
	Enabled        bool
	Endpoint       string
	AccessKey      string
	SecretKey      string
	UseSSL         bool
	ResumeBucket   string
	CertBucket     string
	PresignedTTL   time.Duration
	MaxResumeBytes int64
	AllowedMIMEs   []string
}

// AnalyticsConfig governs feature flagging, cache behaviour and the demo fallback.
type AnalyticsConfig struct {
	Enabled      bool
	CacheTTL     time.Duration
	DemoFallback bool
}

// DashboardConfig governs admin dashboard exposure and cache tuning.
type DashboardConfig struct {
	Enabled  bool
	CacheTTL time.Duration
}

// DrilldownConfig tunes the admin drill-down browser sessions.
type DrilldownConfig struct {
	SessionTTL      time.Duration
	CleanupInterval time.Duration
	PageSize        int
}

// JobBoardConfig toggles the public job board.
type JobBoardConfig struct {
	Enabled bool
}

// ExportsConfig configures asynchronous export generation.
type ExportsConfig struct {
	Enabled           bool
	StorageDir        string
	SignedURLSecret   string
	SignedURLTTL      time.Duration
	CleanupInterval   time.Duration
	WorkerConcurrency int
	WorkerRetries     int
}

// NotifyConfig tunes the dashboard notification feed.
type NotifyConfig struct {
	TTL           time.Duration
	SweepInterval time.Duration
	MaxPerUser    int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Secret:            v.GetString("JWT_SECRET"),
		Expiration:        parseDuration(v.GetString("JWT_EXPIRATION"), 24*time.Hour),
		RefreshExpiration: parseDuration(v.GetString("REFRESH_TOKEN_EXPIRATION"), 7*24*time.Hour),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Search = SearchConfig{
		Enabled:   v.GetBool("ENABLE_SEARCH"),
		Addresses: splitAndTrim(v.GetString("SEARCH_ADDRESSES")),
		Username:  v.GetString("SEARCH_USERNAME"),
		Password:  v.GetString("SEARCH_PASSWORD"),
		Index:     v.GetString("SEARCH_COURSE_INDEX"),
	}

	maxResume := v.GetInt64("OBJECT_STORE_MAX_RESUME_SIZE")
	if maxResume <= 0 {
		maxResume = 5 * 1024 * 1024
	}
	cfg.ObjectStore = ObjectStoreConfig{
		Enabled:        v.GetBool("ENABLE_OBJECT_STORE"),
		Endpoint:       v.GetString("OBJECT_STORE_ENDPOINT"),
		AccessKey:      v.GetString("OBJECT_STORE_ACCESS_KEY"),
		SecretKey:      v.GetString("OBJECT_STORE_SECRET_KEY"),
		UseSSL:         v.GetBool("OBJECT_STORE_USE_SSL"),
		ResumeBucket:   v.GetString("OBJECT_STORE_RESUME_BUCKET"),
		CertBucket:     v.GetString("OBJECT_STORE_CERT_BUCKET"),
		PresignedTTL:   parseDuration(v.GetString("OBJECT_STORE_PRESIGNED_TTL"), 15*time.Minute),
		MaxResumeBytes: maxResume,
		AllowedMIMEs:   splitAndTrim(v.GetString("OBJECT_STORE_ALLOWED_MIME_TYPES")),
	}

	cfg.Analytics = AnalyticsConfig{
		Enabled:      v.GetBool("ENABLE_ANALYTICS"),
		CacheTTL:     parseDuration(v.GetString("ANALYTICS_CACHE_TTL"), 10*time.Minute),
		DemoFallback: v.GetBool("ANALYTICS_DEMO_FALLBACK"),
	}

	cfg.Dashboard = DashboardConfig{
		Enabled:  v.GetBool("ENABLE_DASHBOARD"),
		CacheTTL: parseDuration(v.GetString("DASHBOARD_CACHE_TTL"), 5*time.Minute),
	}

	cfg.Drilldown = DrilldownConfig{
		SessionTTL:      parseDuration(v.GetString("DRILLDOWN_SESSION_TTL"), 30*time.Minute),
		CleanupInterval: parseDuration(v.GetString("DRILLDOWN_CLEANUP_INTERVAL"), 5*time.Minute),
		PageSize:        v.GetInt("DRILLDOWN_PAGE_SIZE"),
	}

	cfg.JobBoard = JobBoardConfig{
		Enabled: v.GetBool("ENABLE_JOB_BOARD"),
	}

	cfg.Exports = ExportsConfig{
		Enabled:           v.GetBool("ENABLE_EXPORTS"),
		StorageDir:        v.GetString("EXPORTS_STORAGE_DIR"),
		SignedURLSecret:   v.GetString("EXPORTS_SIGNED_URL_SECRET"),
		SignedURLTTL:      parseDuration(v.GetString("EXPORTS_SIGNED_URL_TTL"), 24*time.Hour),
		CleanupInterval:   parseDuration(v.GetString("EXPORTS_CLEANUP_INTERVAL"), time.Hour),
		WorkerConcurrency: v.GetInt("EXPORTS_WORKER_CONCURRENCY"),
		WorkerRetries:     v.GetInt("EXPORTS_WORKER_RETRIES"),
	}

	cfg.Notify = NotifyConfig{
		TTL:           parseDuration(v.GetString("NOTIFY_TTL"), 5*time.Minute),
		SweepInterval: parseDuration(v.GetString("NOTIFY_SWEEP_INTERVAL"), 30*time.Second),
		MaxPerUser:    v.GetInt("NOTIFY_MAX_PER_USER"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "lms_platform")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "24h")
	v.SetDefault("REFRESH_TOKEN_EXPIRATION", "168h")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("ENABLE_SEARCH", false)
	v.SetDefault("SEARCH_ADDRESSES", "http://localhost:9200")
	v.SetDefault("SEARCH_USERNAME", "elastic")
	v.SetDefault("SEARCH_PASSWORD", "")
	v.SetDefault("SEARCH_COURSE_INDEX", "courses")

	v.SetDefault("ENABLE_OBJECT_STORE", false)
	v.SetDefault("OBJECT_STORE_ENDPOINT", "localhost:9000")
	v.SetDefault("OBJECT_STORE_ACCESS_KEY", "minioadmin")
	v.SetDefault("OBJECT_STORE_SECRET_KEY", "minioadmin")
	v.SetDefault("OBJECT_STORE_USE_SSL", false)
	v.SetDefault("OBJECT_STORE_RESUME_BUCKET", "resumes")
	v.SetDefault("OBJECT_STORE_CERT_BUCKET", "certificates")
	v.SetDefault("OBJECT_STORE_PRESIGNED_TTL", "15m")
	v.SetDefault("OBJECT_STORE_MAX_RESUME_SIZE", 5*1024*1024)
	v.SetDefault("OBJECT_STORE_ALLOWED_MIME_TYPES", "application/pdf,application/msword,application/vnd.openxmlformats-officedocument.wordprocessingml.document")

	v.SetDefault("ENABLE_ANALYTICS", false)
	v.SetDefault("ANALYTICS_CACHE_TTL", "10m")
	v.SetDefault("ANALYTICS_DEMO_FALLBACK", false)
	v.SetDefault("ENABLE_DASHBOARD", false)
	v.SetDefault("DASHBOARD_CACHE_TTL", "5m")

	v.SetDefault("DRILLDOWN_SESSION_TTL", "30m")
	v.SetDefault("DRILLDOWN_CLEANUP_INTERVAL", "5m")
	v.SetDefault("DRILLDOWN_PAGE_SIZE", 20)

	v.SetDefault("ENABLE_JOB_BOARD", false)

	v.SetDefault("ENABLE_EXPORTS", false)
	v.SetDefault("EXPORTS_STORAGE_DIR", "./exports")
	v.SetDefault("EXPORTS_SIGNED_URL_SECRET", "dev_exports_secret")
	v.SetDefault("EXPORTS_SIGNED_URL_TTL", "24h")
	v.SetDefault("EXPORTS_CLEANUP_INTERVAL", "1h")
	v.SetDefault("EXPORTS_WORKER_CONCURRENCY", 1)
	v.SetDefault("EXPORTS_WORKER_RETRIES", 3)

	v.SetDefault("NOTIFY_TTL", "5m")
	v.SetDefault("NOTIFY_SWEEP_INTERVAL", "30s")
	v.SetDefault("NOTIFY_MAX_PER_USER", 50)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
