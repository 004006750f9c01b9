// Package config loads chartd settings from an optional YAML file, TGCHART_*
// environment variables and command line flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"tgchart/chart"
	"tgchart/slider"
)

const ENV_PREFIX = "TGCHART"

type Config struct {
	Addr string `mapstructure:"addr"`
	// Framerate is how many frames per second each client session runs.
	Framerate int `mapstructure:"framerate"`
	// Dataset is the path of a columnar JSON dataset, the sample dataset when empty.
	Dataset string        `mapstructure:"dataset"`
	Chart   ChartConfig   `mapstructure:"chart"`
	Slider  SliderConfig  `mapstructure:"slider"`
	Logging LoggingConfig `mapstructure:"logging"`
}

type ChartConfig struct {
	Width      int  `mapstructure:"width"`
	Height     int  `mapstructure:"height"`
	PixelRatio int  `mapstructure:"pixel_ratio"`
	Padding    int  `mapstructure:"padding"`
	Rows       int  `mapstructure:"rows"`
	Labels     int  `mapstructure:"labels"`
	FitRange   bool `mapstructure:"fit_range"`
	// Timezone for date labels: "" or "Local" for local time, otherwise an IANA name.
	Timezone string `mapstructure:"timezone"`
}

type SliderConfig struct {
	Height        int     `mapstructure:"height"`
	MinWindow     float64 `mapstructure:"min_window"`
	DefaultWindow float64 `mapstructure:"default_window"`
	Baseline      float64 `mapstructure:"baseline"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format"` // "text" or "json"
}

func setDefaults(v *viper.Viper) {
	c := chart.DefaultConfig()
	s := slider.DefaultConfig()

	v.SetDefault("addr", ":8080")
	v.SetDefault("framerate", 60)
	v.SetDefault("dataset", "")
	v.SetDefault("chart.width", c.Width)
	v.SetDefault("chart.height", c.Height)
	v.SetDefault("chart.pixel_ratio", c.PixelRatio)
	v.SetDefault("chart.padding", c.Padding)
	v.SetDefault("chart.rows", c.Rows)
	v.SetDefault("chart.labels", c.Labels)
	v.SetDefault("chart.fit_range", false)
	v.SetDefault("chart.timezone", "")
	v.SetDefault("slider.height", s.Height)
	v.SetDefault("slider.min_window", s.MinWindow)
	v.SetDefault("slider.default_window", s.DefaultWindow)
	v.SetDefault("slider.baseline", s.Baseline)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// Load builds the configuration. path may be empty; flags may be nil. Only
// flags the user actually set override file and environment values.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(ENV_PREFIX)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if flags != nil {
		for _, name := range []string{"addr", "dataset", "framerate"} {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(name, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Framerate <= 0 {
		errs = append(errs, fmt.Errorf("framerate must be positive, got %d", c.Framerate))
	}
	if c.Chart.Width <= 0 || c.Chart.Height <= 0 {
		errs = append(errs, fmt.Errorf("chart size must be positive, got %dx%d", c.Chart.Width, c.Chart.Height))
	}
	if c.Chart.PixelRatio <= 0 {
		errs = append(errs, fmt.Errorf("chart pixel_ratio must be positive, got %d", c.Chart.PixelRatio))
	}
	if 2*c.Chart.Padding >= c.Chart.Height*c.Chart.PixelRatio {
		errs = append(errs, fmt.Errorf("chart padding %d leaves no plot area", c.Chart.Padding))
	}
	if c.Slider.Height <= 0 {
		errs = append(errs, fmt.Errorf("slider height must be positive, got %d", c.Slider.Height))
	}
	if c.Slider.MinWindow < 0 || c.Slider.MinWindow > 1 {
		errs = append(errs, fmt.Errorf("slider min_window must be within [0, 1], got %v", c.Slider.MinWindow))
	}
	if c.Slider.DefaultWindow < c.Slider.MinWindow || c.Slider.DefaultWindow > 1 {
		errs = append(errs, fmt.Errorf("slider default_window must be within [min_window, 1], got %v", c.Slider.DefaultWindow))
	}
	if _, err := c.Chart.Location(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (c ChartConfig) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("chart timezone: %w", err)
	}
	return loc, nil
}

// ChartOptions returns the chart controller settings.
func (c *Config) ChartOptions() chart.Config {
	loc, err := c.Chart.Location()
	if err != nil {
		loc = time.Local
	}
	return chart.Config{
		Width:      c.Chart.Width,
		Height:     c.Chart.Height,
		PixelRatio: c.Chart.PixelRatio,
		Padding:    c.Chart.Padding,
		Rows:       c.Chart.Rows,
		Labels:     c.Chart.Labels,
		FitRange:   c.Chart.FitRange,
		Location:   loc,
	}
}

// SliderOptions returns the slider settings. The track is as wide as the chart.
func (c *Config) SliderOptions() slider.Config {
	return slider.Config{
		Width:         c.Chart.Width,
		Height:        c.Slider.Height,
		PixelRatio:    c.Chart.PixelRatio,
		MinWindow:     c.Slider.MinWindow,
		DefaultWindow: c.Slider.DefaultWindow,
		Baseline:      c.Slider.Baseline,
	}
}
