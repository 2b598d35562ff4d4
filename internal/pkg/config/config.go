package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.)
// - default: Values common across all environments (timeouts, policy constants)
// -----------------------------------------------------------------------------

type Config struct {
	Server    ServerConfig
	DB        DBConfig
	CORS      CORSConfig
	Log       LogConfig
	Scheduler SchedulerConfig
	Loyalty   LoyaltyConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level      string `envconfig:"LOG_LEVEL" default:"info"`
	TimeFormat string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
}

// SchedulerConfig drives the recurring renewal task. Interval is the tick
// period; Concurrency bounds how many due subscriptions are materialized in
// parallel within one tick.
type SchedulerConfig struct {
	Enabled     bool          `envconfig:"SCHEDULER_ENABLED" default:"true"`
	Interval    time.Duration `envconfig:"SCHEDULER_INTERVAL" default:"24h"`
	Concurrency int           `envconfig:"SCHEDULER_CONCURRENCY" default:"4"`
	BatchLimit  int           `envconfig:"SCHEDULER_BATCH_LIMIT" default:"500"`
}

// LoyaltyConfig holds the points policy constants.
type LoyaltyConfig struct {
	SignupPoints  int `envconfig:"LOYALTY_SIGNUP_POINTS" default:"50"`
	RenewalPoints int `envconfig:"LOYALTY_RENEWAL_POINTS" default:"50"`
	MinRedeem     int `envconfig:"LOYALTY_MIN_REDEEM" default:"50"`
	MaxRedeem     int `envconfig:"LOYALTY_MAX_REDEEM" default:"1000"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889",
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433",
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
		},
		Log: LogConfig{
			Level:      "error",
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		Scheduler: SchedulerConfig{
			Enabled:     false,
			Interval:    24 * time.Hour,
			Concurrency: 2,
			BatchLimit:  100,
		},
		Loyalty: LoyaltyConfig{
			SignupPoints:  50,
			RenewalPoints: 50,
			MinRedeem:     50,
			MaxRedeem:     1000,
		},
	}
}
