package service

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/nootencorp/worklog/internal/config"
)

// ErrConfigExists is returned by Init when the config file is already present
var ErrConfigExists = errors.New("config file already exists")

// ConfigService exposes the loaded configuration and the file it was read from.
// Settings are edited by hand; the service only ever creates the first file.
type ConfigService struct {
	path string
	cfg  config.Config
}

// NewConfigService wraps cfg, which was loaded from path
func NewConfigService(path string, cfg config.Config) *ConfigService {
	return &ConfigService{path: path, cfg: cfg}
}

// Get returns the effective configuration
func (s *ConfigService) Get() config.Config {
	return s.cfg
}

// Path returns the config file location, whether or not the file exists
func (s *ConfigService) Path() string {
	return s.path
}

// FromFile reports whether a config file is present. Without one the
// defaults and environment overrides apply.
func (s *ConfigService) FromFile() bool {
	info, err := os.Stat(s.path)
	return err == nil && info.Mode().IsRegular()
}

// Init writes the commented sample config. The file is created exclusively,
// so an existing file is left untouched and ErrConfigExists is returned.
func (s *ConfigService) Init() error {
	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("%w: %s", ErrConfigExists, s.path)
	}
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	if _, err := f.WriteString(config.GenerateSampleConfig()); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return f.Close()
}
