package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/HaPhanBaoMinh/ttdmon/help"
	"github.com/HaPhanBaoMinh/ttdmon/internal/domain"
	"github.com/HaPhanBaoMinh/ttdmon/internal/infrastructure/monitoring"
	"github.com/HaPhanBaoMinh/ttdmon/internal/infrastructure/ttdapi"
)

const DefaultThumbnailBaseURL = "https://api.toilettowerdefense.com/image-thumbnail/"

type Config struct {
	APIBaseURL       string           `yaml:"api_base_url"`
	MonitoringURL    string           `yaml:"monitoring_url"`
	ThumbnailBaseURL string           `yaml:"thumbnail_base_url"`
	Lookback         time.Duration    `yaml:"lookback"`
	ChartMode        domain.ChartMode `yaml:"chart_mode"`
	PageSize         int              `yaml:"page_size"`
	RequestTimeout   time.Duration    `yaml:"request_timeout"`
	LocalTimeWindow  bool             `yaml:"local_time_window"`
	MaxConcurrent    int              `yaml:"max_concurrent"`

	Logging struct {
		File  string `yaml:"file"`
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

func Default() Config {
	c := Config{
		APIBaseURL:       ttdapi.DefaultBaseURL,
		MonitoringURL:    monitoring.DefaultURL,
		ThumbnailBaseURL: DefaultThumbnailBaseURL,
		Lookback:         24 * time.Hour,
		ChartMode:        domain.ChartValues,
		PageSize:         10,
		RequestTimeout:   30 * time.Second,
		LocalTimeWindow:  true,
	}
	c.Logging.File = filepath.Join(help.DataDir(), "ttdmon.log")
	c.Logging.Level = "info"
	return c
}

func DefaultPath() string {
	return filepath.Join(help.DataDir(), "config.yaml")
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, errors.Wrap(err, "read config")
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse config %s", path)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.Lookback <= 0:
		return errors.Errorf("lookback must be positive, got %s", c.Lookback)
	case c.PageSize <= 0:
		return errors.Errorf("page_size must be positive, got %d", c.PageSize)
	case !c.ChartMode.Valid():
		return errors.Errorf("chart_mode must be %q or %q, got %q", domain.ChartValues, domain.ChartTimed, c.ChartMode)
	case c.RequestTimeout < 0:
		return errors.Errorf("request_timeout must not be negative")
	case c.MaxConcurrent < 0:
		return errors.Errorf("max_concurrent must not be negative")
	}
	return nil
}
