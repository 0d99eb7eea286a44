package config

import (
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/jsphweid/byteserve/constants"
	"github.com/jsphweid/byteserve/model"
)

// Config defines runtime configuration for the byteserve server. It is
// read-only once a request is in flight.
type Config struct {
	Addr        string            `yaml:"addr"`
	MediaDir    string            `yaml:"media_dir"`
	ChunkSize   int               `yaml:"chunk_size"`
	Throttle    time.Duration     `yaml:"throttle"`
	Disposition model.Disposition `yaml:"disposition"`
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		Addr:        constants.DefaultListenAddr,
		MediaDir:    constants.GetMediaDir(),
		ChunkSize:   constants.DefaultChunkSize,
		Disposition: model.DispositionAttachment,
	}
}

// yamlConfig is used for YAML unmarshaling with string durations.
type yamlConfig struct {
	Addr        string `yaml:"addr"`
	MediaDir    string `yaml:"media_dir"`
	ChunkSize   int    `yaml:"chunk_size"`
	Throttle    string `yaml:"throttle"`
	Disposition string `yaml:"disposition"`
}

// LoadFromFile loads configuration from a YAML file, filling unset
// fields from Default.
func LoadFromFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "read config file")
	}

	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return Config{}, errors.Wrap(err, "parse config file")
	}

	cfg := Default()
	if yc.Addr != "" {
		cfg.Addr = yc.Addr
	}
	if yc.MediaDir != "" {
		cfg.MediaDir = yc.MediaDir
	}
	if yc.ChunkSize != 0 {
		cfg.ChunkSize = yc.ChunkSize
	}
	if yc.Throttle != "" {
		d, err := time.ParseDuration(yc.Throttle)
		if err != nil {
			return Config{}, errors.Wrap(err, "parse throttle")
		}
		cfg.Throttle = d
	}
	if yc.Disposition != "" {
		cfg.Disposition = model.Disposition(yc.Disposition)
	}

	return cfg, nil
}

// LoadFromEnv overrides fields from BYTESERVE_* environment variables.
func (c *Config) LoadFromEnv() error {
	if v := os.Getenv("BYTESERVE_ADDR"); v != "" {
		c.Addr = v
	}
	if v := os.Getenv("BYTESERVE_MEDIA_DIR"); v != "" {
		c.MediaDir = v
	}
	if v := os.Getenv("BYTESERVE_CHUNK_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrap(err, "parse BYTESERVE_CHUNK_SIZE")
		}
		c.ChunkSize = n
	}
	if v := os.Getenv("BYTESERVE_THROTTLE"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return errors.Wrap(err, "parse BYTESERVE_THROTTLE")
		}
		c.Throttle = d
	}
	if v := os.Getenv("BYTESERVE_DISPOSITION"); v != "" {
		c.Disposition = model.Disposition(v)
	}
	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return errors.New("config: addr is required")
	}
	if c.MediaDir == "" {
		return errors.New("config: media_dir is required")
	}
	if c.ChunkSize <= 0 {
		return errors.New("config: chunk_size must be positive")
	}
	if c.Throttle < 0 {
		return errors.New("config: throttle cannot be negative")
	}
	if c.Disposition != model.DispositionInline && c.Disposition != model.DispositionAttachment {
		return errors.New("config: disposition must be inline or attachment")
	}
	return nil
}
