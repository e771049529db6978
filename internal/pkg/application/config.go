package application

import (
	"io"

	"github.com/diwise/home-activity-sync/internal/pkg/application/aggregation"
	"github.com/diwise/home-activity-sync/internal/pkg/application/rooms"
	yaml "gopkg.in/yaml.v2"
)

// Schedule holds cron specs for the built-in scheduler. An empty spec leaves the
// entry point to an external scheduler.
type Schedule struct {
	Poll       string `yaml:"poll"`
	Battery    string `yaml:"battery"`
	Windows    string `yaml:"windows"`
	DailyStats string `yaml:"dailyStats"`
}

func (s Schedule) Enabled() bool {
	return s.Poll != "" || s.Battery != "" || s.Windows != "" || s.DailyStats != ""
}

type Config struct {
	Schedule              Schedule `yaml:"schedule"`
	WindowLookbackMinutes int      `yaml:"windowLookbackMinutes"`
	DailyStatsDays        int      `yaml:"dailyStatsDays"`
	SuffixWords           []string `yaml:"suffixWords"`
	AllowedOrigins        []string `yaml:"allowedOrigins"`
}

func DefaultConfig() *Config {
	return &Config{
		WindowLookbackMinutes: aggregation.DefaultLookbackMinutes,
		DailyStatsDays:        1,
		SuffixWords:           rooms.DefaultSuffixWords,
	}
}

// LoadConfiguration reads a yaml configuration. Settings missing from the file keep
// their default values.
func LoadConfiguration(data io.Reader) (*Config, error) {
	buf, err := io.ReadAll(data)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(buf, cfg); err != nil {
		return nil, err
	}

	if cfg.WindowLookbackMinutes <= 0 {
		cfg.WindowLookbackMinutes = aggregation.DefaultLookbackMinutes
	}
	if cfg.DailyStatsDays < 1 {
		cfg.DailyStatsDays = 1
	}
	if len(cfg.SuffixWords) == 0 {
		cfg.SuffixWords = rooms.DefaultSuffixWords
	}

	return cfg, nil
}
