package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	// Pin the timezone so the test does not depend on the host tz database
	// carrying the default zone.
	t.Setenv("REPORT_TIMEZONE", "UTC")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "mongodb://127.0.0.1:27017", cfg.Mongo.URI)
	assert.Equal(t, "tabsera", cfg.Mongo.Database)
	assert.Equal(t, 10*time.Second, cfg.Mongo.ConnectTimeout)
	assert.Equal(t, 1, cfg.Report.DaysAgo)
	assert.Equal(t, "./files", cfg.Report.OutputDir)
	assert.False(t, cfg.Report.ExportCSV)
	assert.False(t, cfg.Report.ExportPDF)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadOverridesFromEnv(t *testing.T) {
	t.Setenv("ENV", EnvProduction)
	t.Setenv("MONGO_URI", "mongodb://db.internal:27017")
	t.Setenv("MONGO_DB", "tabsera_staging")
	t.Setenv("MONGO_CONNECT_TIMEOUT", "5s")
	t.Setenv("DAYS_AGO_TO_REPORT", "3")
	t.Setenv("REPORT_TIMEZONE", "UTC")
	t.Setenv("REPORT_OUTPUT_DIR", "/var/reports")
	t.Setenv("EXPORT_CSV", "true")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvProduction, cfg.Env)
	assert.Equal(t, "mongodb://db.internal:27017", cfg.Mongo.URI)
	assert.Equal(t, "tabsera_staging", cfg.Mongo.Database)
	assert.Equal(t, 5*time.Second, cfg.Mongo.ConnectTimeout)
	assert.Equal(t, 3, cfg.Report.DaysAgo)
	assert.Equal(t, "/var/reports", cfg.Report.OutputDir)
	assert.True(t, cfg.Report.ExportCSV)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadRejectsMalformedDaysAgo(t *testing.T) {
	t.Setenv("REPORT_TIMEZONE", "UTC")
	t.Setenv("DAYS_AGO_TO_REPORT", "soon")

	cfg, err := Load()
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "DAYS_AGO_TO_REPORT")
}

func TestLoadRejectsNegativeDaysAgo(t *testing.T) {
	t.Setenv("REPORT_TIMEZONE", "UTC")
	t.Setenv("DAYS_AGO_TO_REPORT", "-1")

	cfg, err := Load()
	require.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoadRejectsUnknownTimezone(t *testing.T) {
	t.Setenv("REPORT_TIMEZONE", "Mars/Olympus")

	cfg, err := Load()
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "REPORT_TIMEZONE")
}

func TestLoadInvalidTimeoutFallsBack(t *testing.T) {
	t.Setenv("REPORT_TIMEZONE", "UTC")
	t.Setenv("MONGO_CONNECT_TIMEOUT", "shortly")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, cfg.Mongo.ConnectTimeout)
}

func TestValidateRequiresMongoTarget(t *testing.T) {
	cfg := &Config{
		Mongo: MongoConfig{Database: "tabsera"},
		Report: ReportConfig{
			Timezone:  "UTC",
			OutputDir: "./files",
		},
	}

	assert.Error(t, cfg.Validate())

	cfg.Mongo.URI = "mongodb://127.0.0.1:27017"
	assert.NoError(t, cfg.Validate())
}
