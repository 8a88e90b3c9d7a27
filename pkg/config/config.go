package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"logging"`
	ClickHouse struct {
		Host             string        `yaml:"host"`
		Port             int           `yaml:"port"`
		Database         string        `yaml:"database"`
		User             string        `yaml:"user"`
		Password         string        `yaml:"password"`
		MovementTable    string        `yaml:"movement_table"`
		ProductTable     string        `yaml:"product_table"`
		UseHTTP          bool          `yaml:"use_http"`
		AsyncInsert      bool          `yaml:"async_insert"`
		WaitForAsync     bool          `yaml:"wait_for_async_insert"`
		DialTimeout      time.Duration `yaml:"dial_timeout"`
		ReadTimeout      time.Duration `yaml:"read_timeout"`
		WriteTimeout     time.Duration `yaml:"write_timeout"`
		MaxExecutionTime time.Duration `yaml:"max_execution_time"`
	} `yaml:"clickhouse"`
	Kafka struct {
		Enabled       bool     `yaml:"enabled"`
		Brokers       []string `yaml:"brokers"`
		ForecastTopic string   `yaml:"forecast_topic"`
		AnomalyTopic  string   `yaml:"anomaly_topic"`
		RequiredAcks  int      `yaml:"required_acks"`
		Compression   string   `yaml:"compression"`
		Producer      struct {
			MaxAttempts  int           `yaml:"max_attempts"`
			Linger       time.Duration `yaml:"linger"`
			BatchBytes   int           `yaml:"batch_bytes"`
			BatchSize    int           `yaml:"batch_size"`
			WriteTimeout time.Duration `yaml:"write_timeout"`
			ReadTimeout  time.Duration `yaml:"read_timeout"`
			Async        bool          `yaml:"async"`
		} `yaml:"producer"`
	} `yaml:"kafka"`
	Cache struct {
		Enabled bool          `yaml:"enabled"`
		Backend string        `yaml:"backend"` // memory, redis or layered
		TTL     time.Duration `yaml:"ttl"`
		MaxSize int           `yaml:"max_size"`
		Redis   struct {
			Host     string `yaml:"host"`
			Port     int    `yaml:"port"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Stream struct {
		Enabled        bool          `yaml:"enabled"`
		URL            string        `yaml:"url"`
		APIKey         string        `yaml:"api_key"`
		Locations      []string      `yaml:"locations"`
		ReconnectDelay time.Duration `yaml:"reconnect_delay"`
		PingInterval   time.Duration `yaml:"ping_interval"`
		BatchSize      int           `yaml:"batch_size"`
		BatchTimeout   time.Duration `yaml:"batch_timeout"`
	} `yaml:"stream"`
	Forecast struct {
		Alpha                float64   `yaml:"alpha"`
		Beta                 float64   `yaml:"beta"`
		Gamma                float64   `yaml:"gamma"`
		SeasonLength         int       `yaml:"season_length"`
		Horizon              int       `yaml:"horizon"`
		ConfidenceLevel      float64   `yaml:"confidence_level"`
		SensitivityLevel     int       `yaml:"sensitivity_level"`
		MinDeviationPercent  float64   `yaml:"min_deviation_percent"`
		MinTrendSamples      int       `yaml:"min_trend_samples"`
		MinSeasonSamples     int       `yaml:"min_season_samples"`
		MinOutlierSamples    int       `yaml:"min_outlier_samples"`
		TrendWindow          int       `yaml:"trend_window"`
		SmoothingAlpha       float64   `yaml:"smoothing_alpha"`
		DefaultBaseline      float64   `yaml:"default_baseline"`
		BacktestWindows      int       `yaml:"backtest_windows"`
		AnomalyWindow        int       `yaml:"anomaly_window"`
		DayOfWeekWeights     []float64 `yaml:"day_of_week_weights"`
		SeasonalityPeriods   []int     `yaml:"seasonality_periods"`
		SeasonalityThreshold float64   `yaml:"seasonality_threshold"`
	} `yaml:"forecast"`
	Calendar struct {
		WeekendMultiplier float64          `yaml:"weekend_multiplier"`
		HolidayMultiplier float64          `yaml:"holiday_multiplier"`
		PaydayMultiplier  float64          `yaml:"payday_multiplier"`
		SchoolMultiplier  float64          `yaml:"school_multiplier"`
		HarvestMultiplier float64          `yaml:"harvest_multiplier"`
		FixedHolidays     []string         `yaml:"fixed_holidays"`
		PaydayDays        []int            `yaml:"payday_days"`
		SchoolMonths      []int            `yaml:"school_months"`
		HarvestMonths     []int            `yaml:"harvest_months"`
		FallbackWindows   []FallbackWindow `yaml:"fallback_windows"`
	} `yaml:"calendar"`
}

// FallbackWindow mirrors the injected approximate lunar windows per year.
type FallbackWindow struct {
	Year         int       `yaml:"year"`
	RamadanStart time.Time `yaml:"ramadan_start"`
	RamadanEnd   time.Time `yaml:"ramadan_end"`
	LebaranStart time.Time `yaml:"lebaran_start"`
	LebaranEnd   time.Time `yaml:"lebaran_end"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("CLICKHOUSE_HOST"); v != "" {
		c.ClickHouse.Host = v
	}
	if v := os.Getenv("CLICKHOUSE_PASSWORD"); v != "" {
		c.ClickHouse.Password = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("STREAM_API_KEY"); v != "" {
		c.Stream.APIKey = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}

	return c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.ClickHouse.Host == "" {
		return fmt.Errorf("clickhouse.host is required")
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers cannot be empty when kafka is enabled")
	}
	if c.Stream.Enabled && c.Stream.URL == "" {
		return fmt.Errorf("stream.url is required when stream is enabled")
	}
	switch c.Cache.Backend {
	case "", "memory", "redis", "layered":
	default:
		return fmt.Errorf("cache.backend must be 'memory', 'redis' or 'layered', got '%s'", c.Cache.Backend)
	}
	return nil
}
