package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"techsync/internal/domain/assessment"
	"techsync/internal/domain/learning"
	"techsync/internal/domain/matching"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Scoring   ScoringConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
}

func (d DatabaseConfig) Configured() bool {
	return d.DBHost != "" && d.DBName != ""
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	TTL      time.Duration
}

func (r RedisConfig) Enabled() bool {
	return r.Host != ""
}

func (r RedisConfig) Addr() string {
	port := r.Port
	if port == "" {
		port = "6379"
	}
	return r.Host + ":" + port
}

type RateLimitConfig struct {
	Enabled bool
	RPS     float64
	Burst   int
}

type ScoringConfig struct {
	Weights                 matching.Weights
	RecommendationThreshold float64
	DefaultLimit            int
	MaxLimit                int
	DiversityWeight         float64
	MinPassingScore         int
	MaxFailedAttempts       int
}

func (s ScoringConfig) EngineSettings() matching.Settings {
	return matching.Settings{
		Weights:                 s.Weights,
		RecommendationThreshold: s.RecommendationThreshold,
		DefaultLimit:            s.DefaultLimit,
	}
}

func (s ScoringConfig) Validate() error {
	if err := s.EngineSettings().Validate(); err != nil {
		return err
	}
	if s.DefaultLimit < 1 || s.MaxLimit < s.DefaultLimit {
		return fmt.Errorf("%w: default %d, max %d", matching.ErrInvalidLimit, s.DefaultLimit, s.MaxLimit)
	}
	if math.IsNaN(s.DiversityWeight) || s.DiversityWeight < 0 || s.DiversityWeight > 1 {
		return fmt.Errorf("%w: %v", matching.ErrInvalidDiversityWeight, s.DiversityWeight)
	}
	if s.MinPassingScore < 0 || s.MinPassingScore > assessment.MaxScore {
		return fmt.Errorf("%w: %d", assessment.ErrInvalidPassingScore, s.MinPassingScore)
	}
	if s.MaxFailedAttempts < 1 {
		return fmt.Errorf("%w: %d", learning.ErrInvalidMaxAttempts, s.MaxFailedAttempts)
	}
	return nil
}

var (
	errMissingRequiredEnv = errors.New("missing required environment variables")
	errInvalidEnv         = errors.New("invalid environment variables")
)

type envReader struct {
	missing []string
	invalid []string
}

func (e *envReader) req(key string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		e.missing = append(e.missing, key)
	}
	return v
}

func (e *envReader) opt(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func (e *envReader) optFloat(key string, def float64) float64 {
	v := e.opt(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		e.invalid = append(e.invalid, key)
		return def
	}
	return f
}

func (e *envReader) optInt(key string, def int) int {
	v := e.opt(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.invalid = append(e.invalid, key)
		return def
	}
	return n
}

func (e *envReader) optBool(key string, def bool) bool {
	v := e.opt(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		e.invalid = append(e.invalid, key)
		return def
	}
	return b
}

func (e *envReader) optDuration(key string, def time.Duration) time.Duration {
	v := e.opt(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		e.invalid = append(e.invalid, key)
		return def
	}
	return d
}

func (e *envReader) err() error {
	if len(e.missing) > 0 {
		return fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(e.missing, ", "))
	}
	if len(e.invalid) > 0 {
		return fmt.Errorf("%w: %s", errInvalidEnv, strings.Join(e.invalid, ", "))
	}
	return nil
}

func (e *envReader) scoring() ScoringConfig {
	def := matching.DefaultWeights()
	return ScoringConfig{
		Weights: matching.Weights{
			TopicCoverage:       e.optFloat("SCORING_WEIGHT_TOPIC", def.TopicCoverage),
			LanguageProficiency: e.optFloat("SCORING_WEIGHT_LANGUAGE", def.LanguageProficiency),
			DifficultyAlignment: e.optFloat("SCORING_WEIGHT_DIFFICULTY", def.DifficultyAlignment),
		},
		RecommendationThreshold: e.optFloat("RECOMMENDATION_THRESHOLD", matching.DefaultRecommendationThreshold),
		DefaultLimit:            e.optInt("RECOMMENDATION_DEFAULT_LIMIT", matching.DefaultRecommendationLimit),
		MaxLimit:                e.optInt("RECOMMENDATION_MAX_LIMIT", 50),
		DiversityWeight:         e.optFloat("DIVERSITY_WEIGHT", 0.3),
		MinPassingScore:         e.optInt("MIN_PASSING_SCORE", assessment.DefaultMinPassingScore),
		MaxFailedAttempts:       e.optInt("MAX_FAILED_ATTEMPTS", learning.DefaultMaxAttempts),
	}
}

// LoadScoring reads only the scoring settings, for tools that run without a server or database.
func LoadScoring() (ScoringConfig, error) {
	env := &envReader{}
	sc := env.scoring()
	if err := env.err(); err != nil {
		return ScoringConfig{}, err
	}
	if err := sc.Validate(); err != nil {
		return ScoringConfig{}, fmt.Errorf("scoring config: %w", err)
	}
	return sc, nil
}

func Load() (Config, error) {
	env := &envReader{}
	cfg := Config{}

	cfg.App = AppConfig{
		AppName:     env.req("APP_NAME"),
		Environment: env.req("APP_ENV"),
		HTTPPort:    env.req("HTTP_PORT"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:     env.opt("DB_HOST"),
		DBPort:     env.opt("DB_PORT"),
		DBName:     env.opt("DB_NAME"),
		DBUser:     env.opt("DB_USER"),
		DBPassword: env.opt("DB_PASSWORD"),
		DBSSLMode:  env.opt("DB_SSL_MODE"),

		ConnectTimeout:        env.optDuration("DB_CONNECT_TIMEOUT", 5*time.Second),
		PoolMaxConns:          int32(env.optInt("DB_POOL_MAX_CONNS", 10)),
		PoolMinConns:          int32(env.optInt("DB_POOL_MIN_CONNS", 0)),
		PoolMaxConnLifetime:   env.optDuration("DB_POOL_MAX_CONN_LIFETIME", time.Hour),
		PoolMaxConnIdleTime:   env.optDuration("DB_POOL_MAX_CONN_IDLE_TIME", 30*time.Minute),
		PoolHealthCheckPeriod: env.optDuration("DB_POOL_HEALTH_CHECK_PERIOD", time.Minute),
	}
	if cfg.Database.DBSSLMode == "" {
		cfg.Database.DBSSLMode = "disable"
	}

	cfg.Redis = RedisConfig{
		Host:     env.opt("REDIS_HOST"),
		Port:     env.opt("REDIS_PORT"),
		Password: env.opt("REDIS_PASSWORD"),
		TTL:      env.optDuration("REDIS_TTL", 10*time.Minute),
	}

	cfg.RateLimit = RateLimitConfig{
		Enabled: env.optBool("RATE_LIMIT_ENABLED", true),
		RPS:     env.optFloat("RATE_LIMIT_RPS", 20),
		Burst:   env.optInt("RATE_LIMIT_BURST", 40),
	}

	cfg.Scoring = env.scoring()

	if err := env.err(); err != nil {
		return Config{}, err
	}
	if cfg.RateLimit.Enabled && (cfg.RateLimit.RPS <= 0 || cfg.RateLimit.Burst < 1) {
		return Config{}, fmt.Errorf("%w: RATE_LIMIT_RPS, RATE_LIMIT_BURST", errInvalidEnv)
	}
	if err := cfg.Scoring.Validate(); err != nil {
		return Config{}, fmt.Errorf("scoring config: %w", err)
	}

	return cfg, nil
}
