package main

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Format          string        `yaml:"format"`
	FormatOptions   string        `yaml:"format_options"`
	MaxFiles        uint          `yaml:"max_files"`
	MaxSize         string        `yaml:"max_size"`
	MaxSizeTime     time.Duration `yaml:"max_size_time"`
	MaxOverhead     float64       `yaml:"max_overhead"`
	StartIndex      int           `yaml:"start_index"`
	SplitAtKeyFrame bool          `yaml:"split_at_key_frame"`
	Loops           int           `yaml:"loops"`
	MetricsAddr     string        `yaml:"metrics_listen_addr"`
}

func DefaultConfig() Config {
	return Config{
		Format:          "mpegts",
		FormatOptions:   "mpegts_copyts=1",
		MaxFiles:        10,
		MaxSize:         "1MiB",
		MaxSizeTime:     10 * time.Second,
		MaxOverhead:     0.1,
		StartIndex:      100,
		SplitAtKeyFrame: true,
		Loops:           100,
	}
}

// LoadConfig overlays the YAML file at path on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("unable to read the config file '%s': %w", path, err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("unable to parse the config file '%s': %w", path, err)
	}
	return cfg, nil
}

// MaxSizeBytes parses MaxSize, which accepts humanized values like "1MiB"
// or "500 kB"; an empty value means no limit.
func (cfg Config) MaxSizeBytes() (uint64, error) {
	if cfg.MaxSize == "" {
		return 0, nil
	}
	v, err := humanize.ParseBytes(cfg.MaxSize)
	if err != nil {
		return 0, fmt.Errorf("unable to parse max_size '%s': %w", cfg.MaxSize, err)
	}
	return v, nil
}
