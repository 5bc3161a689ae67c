package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env string

	Mongo  MongoConfig
	Report ReportConfig
	Log    LogConfig
}

type MongoConfig struct {
	URI            string `validate:"required"`
	Database       string `validate:"required"`
	ConnectTimeout time.Duration
}

// ReportConfig governs the report window and output surfaces.
type ReportConfig struct {
	DaysAgo   int    `validate:"gte=0"`
	Timezone  string `validate:"required"`
	OutputDir string `validate:"required"`
	ExportCSV bool
	ExportPDF bool
}

type LogConfig struct {
	Level  string
	Format string
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

	// GetInt swallows non-numeric values, so parse the raw string to make a
	// malformed DAYS_AGO_TO_REPORT fail startup instead of reporting today.
	daysAgo, err := strconv.Atoi(strings.TrimSpace(v.GetString("DAYS_AGO_TO_REPORT")))
	if err != nil {
		return nil, fmt.Errorf("DAYS_AGO_TO_REPORT must be an integer: %w", err)
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")

	cfg.Mongo = MongoConfig{
		URI:            v.GetString("MONGO_URI"),
		Database:       v.GetString("MONGO_DB"),
		ConnectTimeout: parseDuration(v.GetString("MONGO_CONNECT_TIMEOUT"), 10*time.Second),
	}

	cfg.Report = ReportConfig{
		DaysAgo:   daysAgo,
		Timezone:  v.GetString("REPORT_TIMEZONE"),
		OutputDir: v.GetString("REPORT_OUTPUT_DIR"),
		ExportCSV: v.GetBool("EXPORT_CSV"),
		ExportPDF: v.GetBool("EXPORT_PDF"),
	}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate fails fast on any value the run could not complete with.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if _, err := time.LoadLocation(c.Report.Timezone); err != nil {
		return fmt.Errorf("invalid REPORT_TIMEZONE %q: %w", c.Report.Timezone, err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)

	v.SetDefault("MONGO_URI", "mongodb://127.0.0.1:27017")
	v.SetDefault("MONGO_DB", "tabsera")
	v.SetDefault("MONGO_CONNECT_TIMEOUT", "10s")

	v.SetDefault("DAYS_AGO_TO_REPORT", 1)
	v.SetDefault("REPORT_TIMEZONE", "Africa/Mogadishu")
	v.SetDefault("REPORT_OUTPUT_DIR", "./files")
	v.SetDefault("EXPORT_CSV", false)
	v.SetDefault("EXPORT_PDF", false)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
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
