package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/Shmhzr/ai-voice/internal/pkg/errs"
)

// Store kinds accepted in ORDER_STORE.
const (
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

type Config struct {
	HTTPPort  string
	LogLevel  string
	LogFormat string

	MenuURL             string
	MenuFile            string
	MenuTTL             time.Duration
	MenuFetchTimeout    time.Duration
	MenuRefreshSchedule string
	RulesFile           string

	TaxRate     float64
	DeliveryFee float64

	OrderStore string
	SQLitePath string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	NATSURL           string
	NATSSubjectPrefix string
	EventQueueSize    int

	SessionIdleTTL      time.Duration
	SessionMax          int
	SessionReapSchedule string
}

// LoadConfig reads the environment, after loading envFile if it exists.
// Variables already set in the environment win over the file.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	r := envReader{}
	cfg := Config{
		HTTPPort:  r.str("HTTP_PORT", "8080"),
		LogLevel:  r.str("LOG_LEVEL", "info"),
		LogFormat: r.str("LOG_FORMAT", "json"),

		MenuURL:             r.str("MENU_URL", ""),
		MenuFile:            r.str("MENU_FILE", ""),
		MenuTTL:             r.duration("MENU_TTL", 300*time.Second),
		MenuFetchTimeout:    r.duration("MENU_FETCH_TIMEOUT", 5*time.Second),
		MenuRefreshSchedule: r.str("MENU_REFRESH_SCHEDULE", "@every 5m"),
		RulesFile:           r.str("RULES_FILE", ""),

		TaxRate:     r.float("TAX_RATE", 0),
		DeliveryFee: r.float("DELIVERY_FEE", 0),

		OrderStore: strings.ToLower(r.str("ORDER_STORE", StoreSQLite)),
		SQLitePath: r.str("SQLITE_PATH", "orders.db"),
		DBHost:     r.str("DB_HOST", "localhost"),
		DBPort:     r.str("DB_PORT", "5432"),
		DBUser:     r.str("DB_USER", ""),
		DBPassword: r.str("DB_PASSWORD", ""),
		DBName:     r.str("DB_NAME", ""),
		DBSslMode:  r.str("DB_SSLMODE", "disable"),

		NATSURL:           r.str("NATS_URL", ""),
		NATSSubjectPrefix: r.str("NATS_SUBJECT_PREFIX", "pizza"),
		EventQueueSize:    r.int("EVENT_QUEUE_SIZE", 256),

		SessionIdleTTL:      r.duration("SESSION_IDLE_TTL", 30*time.Minute),
		SessionMax:          r.int("SESSION_MAX", 10000),
		SessionReapSchedule: r.str("SESSION_REAP_SCHEDULE", "@every 1m"),
	}

	if err := errors.Join(append(r.errs, cfg.validate())...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	var problems []error
	switch c.OrderStore {
	case StoreSQLite, StorePostgres:
	default:
		problems = append(problems, fmt.Errorf("ORDER_STORE must be %q or %q, got %q", StoreSQLite, StorePostgres, c.OrderStore))
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		problems = append(problems, fmt.Errorf("LOG_FORMAT must be json or text, got %q", c.LogFormat))
	}
	if c.TaxRate < 0 || c.TaxRate > 1 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("TAX_RATE", c.TaxRate, 0, 1))
	}
	if c.DeliveryFee < 0 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("DELIVERY_FEE", c.DeliveryFee, 0, "unbounded"))
	}
	return errors.Join(problems...)
}

// PostgresDSN is the connection string for ORDER_STORE=postgres.
func (c Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// envReader collects parse errors so every bad variable is reported at once.
type envReader struct {
	errs []error
}

func (r *envReader) str(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

func (r *envReader) duration(key string, def time.Duration) time.Duration {
	raw := r.str(key, "")
	if raw == "" {
		return def
	}
	// Bare numbers are seconds.
	if secs, err := strconv.ParseFloat(raw, 64); err == nil {
		return time.Duration(secs * float64(time.Second))
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return d
}

func (r *envReader) float(key string, def float64) float64 {
	raw := r.str(key, "")
	if raw == "" {
		return def
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return f
}

func (r *envReader) int(key string, def int) int {
	raw := r.str(key, "")
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return n
}
