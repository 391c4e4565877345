package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
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

	Database  DatabaseConfig
	Redis     RedisConfig
	CORS      CORSConfig
	Log       LogConfig
	Analytics AnalyticsConfig
	Reports   ReportsConfig
	Tracing   TracingConfig
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

type CORSConfig struct {
	AllowedOrigins []string
}

// LogConfig controls encoding and the optional rotating file sink.
type LogConfig struct {
	Level      string
	Format     string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// ConceptConfig is one entry of the concept catalog.
type ConceptConfig struct {
	Code     string
	Name     string
	Problems int
}

// AnalyticsConfig tunes the aggregation engine and its result cache.
type AnalyticsConfig struct {
	CacheEnabled       bool
	CacheTTL           time.Duration
	Window             time.Duration
	MasteryThreshold   int
	ProblemsPerConcept int
	RecentLimit        int
	WarmWorkers        int
	Concepts           []ConceptConfig
}

// ReportsConfig gates the class report export endpoints.
type ReportsConfig struct {
	Enabled bool
}

// TracingConfig enables OpenTelemetry spans exported to Jaeger.
type TracingConfig struct {
	Enabled           bool
	ServiceName       string
	CollectorEndpoint string
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
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
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

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"), ",")}

	cfg.Log = LogConfig{
		Level:      v.GetString("LOG_LEVEL"),
		Format:     v.GetString("LOG_FORMAT"),
		File:       v.GetString("LOG_FILE"),
		MaxSizeMB:  v.GetInt("LOG_MAX_SIZE_MB"),
		MaxBackups: v.GetInt("LOG_MAX_BACKUPS"),
		MaxAgeDays: v.GetInt("LOG_MAX_AGE_DAYS"),
	}

	concepts, err := ParseConcepts(v.GetString("ANALYTICS_CONCEPTS"), v.GetInt("ANALYTICS_PROBLEMS_PER_CONCEPT"))
	if err != nil {
		return nil, err
	}

	cfg.Analytics = AnalyticsConfig{
		CacheEnabled:       v.GetBool("ENABLE_ANALYTICS_CACHE"),
		CacheTTL:           parseDuration(v.GetString("ANALYTICS_CACHE_TTL"), 10*time.Minute),
		Window:             parseDuration(v.GetString("ANALYTICS_WINDOW"), 0),
		MasteryThreshold:   v.GetInt("ANALYTICS_MASTERY_THRESHOLD"),
		ProblemsPerConcept: v.GetInt("ANALYTICS_PROBLEMS_PER_CONCEPT"),
		RecentLimit:        v.GetInt("ANALYTICS_RECENT_LIMIT"),
		WarmWorkers:        v.GetInt("ANALYTICS_WARM_WORKERS"),
		Concepts:           concepts,
	}

	cfg.Reports = ReportsConfig{
		Enabled: v.GetBool("ENABLE_REPORTS"),
	}

	cfg.Tracing = TracingConfig{
		Enabled:           v.GetBool("TRACING_ENABLED"),
		ServiceName:       v.GetString("TRACING_SERVICE_NAME"),
		CollectorEndpoint: v.GetString("TRACING_COLLECTOR_ENDPOINT"),
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
	v.SetDefault("DB_NAME", "kinemathika")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("LOG_FILE", "")
	v.SetDefault("LOG_MAX_SIZE_MB", 100)
	v.SetDefault("LOG_MAX_BACKUPS", 5)
	v.SetDefault("LOG_MAX_AGE_DAYS", 30)

	v.SetDefault("ENABLE_ANALYTICS_CACHE", false)
	v.SetDefault("ANALYTICS_CACHE_TTL", "10m")
	v.SetDefault("ANALYTICS_WINDOW", "")
	v.SetDefault("ANALYTICS_MASTERY_THRESHOLD", 2)
	v.SetDefault("ANALYTICS_PROBLEMS_PER_CONCEPT", 15)
	v.SetDefault("ANALYTICS_RECENT_LIMIT", 10)
	v.SetDefault("ANALYTICS_WARM_WORKERS", 2)
	v.SetDefault("ANALYTICS_CONCEPTS", "dd=Distance & Displacement;sv=Speed & Velocity;acc=Acceleration")

	v.SetDefault("ENABLE_REPORTS", true)

	v.SetDefault("TRACING_ENABLED", false)
	v.SetDefault("TRACING_SERVICE_NAME", "kinemathika-api")
	v.SetDefault("TRACING_COLLECTOR_ENDPOINT", "http://localhost:14268/api/traces")
}

// ParseConcepts reads a catalog definition of the form "code=Name[:problems];...".
// Entries without a problem count use problemsPerConcept.
func ParseConcepts(raw string, problemsPerConcept int) ([]ConceptConfig, error) {
	entries := splitAndTrim(raw, ";")
	concepts := make([]ConceptConfig, 0, len(entries))
	for _, entry := range entries {
		code, rest, found := strings.Cut(entry, "=")
		code = strings.TrimSpace(code)
		if code == "" {
			return nil, fmt.Errorf("concept entry %q: missing code", entry)
		}
		concept := ConceptConfig{Code: code, Name: code, Problems: problemsPerConcept}
		if found {
			name := strings.TrimSpace(rest)
			if idx := strings.LastIndex(name, ":"); idx >= 0 {
				count, err := strconv.Atoi(strings.TrimSpace(name[idx+1:]))
				if err != nil || count < 0 {
					return nil, fmt.Errorf("concept entry %q: invalid problem count", entry)
				}
				concept.Problems = count
				name = strings.TrimSpace(name[:idx])
			}
			if name != "" {
				concept.Name = name
			}
		}
		concepts = append(concepts, concept)
	}
	return concepts, nil
}

// parseDuration accepts Go durations plus a whole-day form such as "30d".
func parseDuration(raw string, fallback time.Duration) time.Duration {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}

	if days, ok := strings.CutSuffix(raw, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil {
			return fallback
		}
		return time.Duration(n) * 24 * time.Hour
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw, sep string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, sep)
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
