package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 60, cfg.Framerate)
	assert.Equal(t, "", cfg.Dataset)

	c := cfg.ChartOptions()
	assert.Equal(t, 600, c.Width)
	assert.Equal(t, 200, c.Height)
	assert.Equal(t, 2, c.PixelRatio)
	assert.Equal(t, 40, c.Padding)
	assert.Equal(t, 5, c.Rows)
	assert.Equal(t, 6, c.Labels)
	assert.Equal(t, time.Local, c.Location)

	s := cfg.SliderOptions()
	assert.Equal(t, 600, s.Width)
	assert.Equal(t, 40, s.Height)
	assert.Equal(t, 0.05, s.MinWindow)
	assert.Equal(t, 0.3, s.DefaultWindow)
	assert.Equal(t, -5.0, s.Baseline)
}

func TestLoad_FileEnvAndFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chartd.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
addr: ":9000"
framerate: 30
chart:
  width: 800
  timezone: UTC
logging:
  level: debug
`), 0644))
	t.Setenv("TGCHART_SLIDER_HEIGHT", "50")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("addr", ":8080", "")
	flags.String("dataset", "", "")
	require.NoError(t, flags.Parse([]string{"--dataset", "data.json"}))

	cfg, err := Load(path, flags)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Addr, "unset flag keeps the file value")
	assert.Equal(t, "data.json", cfg.Dataset)
	assert.Equal(t, 30, cfg.Framerate)
	assert.Equal(t, 800, cfg.ChartOptions().Width)
	assert.Equal(t, 800, cfg.SliderOptions().Width)
	assert.Equal(t, time.UTC, cfg.ChartOptions().Location)
	assert.Equal(t, 50, cfg.Slider.Height)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg, err := Load("", nil)
	require.NoError(t, err)

	cfg.Framerate = 0
	cfg.Chart.Padding = 500
	cfg.Slider.MinWindow = 2
	cfg.Chart.Timezone = "Not/AZone"

	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "framerate")
	assert.Contains(t, err.Error(), "padding")
	assert.Contains(t, err.Error(), "min_window")
	assert.Contains(t, err.Error(), "timezone")
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(LoggingConfig{Level: "warn", Format: "json"})
	require.NoError(t, err)
	assert.Equal(t, logrus.WarnLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)

	_, err = NewLogger(LoggingConfig{Level: "loud"})
	assert.Error(t, err)
	_, err = NewLogger(LoggingConfig{Level: "info", Format: "xml"})
	assert.Error(t, err)
}
