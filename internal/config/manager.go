package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"launchpad/internal/logging"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// ErrNoPathChosen is returned when the chooser was dismissed without a path
var ErrNoPathChosen = errors.New("no launch folder chosen")

// PathChooser asks the user for a new launch folder
type PathChooser interface {
	ChoosePath(ctx context.Context, current string) (string, error)
}

// PathChooserFunc adapts a function to PathChooser
type PathChooserFunc func(ctx context.Context, current string) (string, error)

// ChoosePath implements PathChooser
func (f PathChooserFunc) ChoosePath(ctx context.Context, current string) (string, error) {
	return f(ctx, current)
}

// Service is the settings collaborator used by the launcher
type Service interface {
	ConfiguredPath() string
	ChooseAndPersistPath(ctx context.Context, chooser PathChooser) (string, error)
}

// Manager handles configuration loading, saving, watching, and reloading.
type Manager struct {
	config         *Config
	viper          *viper.Viper
	path           string
	mu             sync.RWMutex
	callbacks      []func(*Config)
	watching       bool
	skipNextReload bool
}

var _ Service = (*Manager)(nil)

// NewManager creates a configuration manager. An empty path uses the default
// config directory.
func NewManager(path string) (*Manager, error) {
	if path == "" {
		dir, err := GetConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to determine config directory: %w", err)
		}
		path = filepath.Join(dir, "config.toml")
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")

	v.SetEnvPrefix("LAUNCHPAD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.BindEnv("logging.level", "LAUNCHPAD_LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind LAUNCHPAD_LOG_LEVEL: %w", err)
	}
	if err := v.BindEnv("logging.format", "LAUNCHPAD_LOG_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind LAUNCHPAD_LOG_FORMAT: %w", err)
	}

	return &Manager{
		viper: v,
		path:  path,
	}, nil
}

// Path returns the config file location
func (m *Manager) Path() string {
	return m.path
}

// Load loads the configuration from file and environment variables. A missing
// file is created with defaults.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.setDefaults()

	if err := m.readConfigFile(); err != nil {
		return err
	}

	cfg, err := m.unmarshalConfig()
	if err != nil {
		return err
	}
	normalizeConfig(cfg)

	if err := validateConfig(cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	m.config = cfg
	return nil
}

// Get returns a copy of the current configuration
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.config == nil {
		return DefaultConfig()
	}
	cfg := *m.config
	return &cfg
}

// ConfiguredPath returns the launch folder
func (m *Manager) ConfiguredPath() string {
	return m.Get().LaunchDir
}

// ChooseAndPersistPath asks the chooser for a new launch folder, validates it
// and saves it. The chosen path is returned.
func (m *Manager) ChooseAndPersistPath(ctx context.Context, chooser PathChooser) (string, error) {
	log := logging.FromContext(ctx)

	current := m.ConfiguredPath()
	chosen, err := chooser.ChoosePath(ctx, current)
	if err != nil {
		return current, err
	}
	chosen = strings.TrimSpace(chosen)
	if chosen == "" {
		return current, ErrNoPathChosen
	}

	chosen = ExpandHome(chosen)
	abs, err := filepath.Abs(chosen)
	if err != nil {
		return current, fmt.Errorf("failed to resolve %s: %w", chosen, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return current, fmt.Errorf("launch folder %s: %w", abs, err)
	}
	if !info.IsDir() {
		return current, fmt.Errorf("launch folder %s is not a directory", abs)
	}

	cfg := m.Get()
	cfg.LaunchDir = abs
	if err := m.Save(cfg); err != nil {
		return current, err
	}

	log.Info().Str("launch_dir", abs).Msg("launch folder updated")
	return abs, nil
}

// Save writes the configuration to disk and makes it current
func (m *Manager) Save(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}
	if err := validateConfig(cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	m.mu.Lock()
	if err := writeConfig(cfg, m.path); err != nil {
		m.mu.Unlock()
		return err
	}
	saved := *cfg
	m.config = &saved
	if m.watching {
		m.skipNextReload = true
	}
	m.mu.Unlock()

	m.notify(&saved)
	return nil
}

// OnConfigChange registers a callback function to be called when config changes.
func (m *Manager) OnConfigChange(callback func(*Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.callbacks = append(m.callbacks, callback)
}

// Watch starts watching the config file for changes and reloads automatically.
func (m *Manager) Watch(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.watching {
		return nil
	}

	log := logging.FromContext(ctx)
	m.viper.OnConfigChange(func(e fsnotify.Event) {
		log.Debug().Str("op", e.Op.String()).Str("file", e.Name).Msg("config change detected")

		m.mu.Lock()
		// our own Save already updated m.config
		if m.skipNextReload {
			m.skipNextReload = false
			if err := m.viper.ReadInConfig(); err != nil {
				log.Warn().Err(err).Msg("failed to sync viper config after save")
			}
			m.mu.Unlock()
			return
		}
		if err := m.reload(); err != nil {
			m.mu.Unlock()
			log.Warn().Err(err).Msg("failed to reload config")
			return
		}
		cfg := *m.config
		m.mu.Unlock()

		m.notify(&cfg)
	})
	m.viper.WatchConfig()

	m.watching = true
	return nil
}

func (m *Manager) notify(cfg *Config) {
	m.mu.RLock()
	callbacks := make([]func(*Config), len(m.callbacks))
	copy(callbacks, m.callbacks)
	m.mu.RUnlock()

	for _, callback := range callbacks {
		c := *cfg
		callback(&c)
	}
}

// reload must be called with m.mu held for write
func (m *Manager) reload() error {
	if err := m.viper.ReadInConfig(); err != nil {
		return err
	}
	cfg, err := m.unmarshalConfig()
	if err != nil {
		return err
	}
	normalizeConfig(cfg)
	if err := validateConfig(cfg); err != nil {
		return err
	}
	m.config = cfg
	return nil
}

func (m *Manager) setDefaults() {
	d := DefaultConfig()
	m.viper.SetDefault("version", d.Version)
	m.viper.SetDefault("launch_dir", d.LaunchDir)
	m.viper.SetDefault("search.debounce_ms", d.Search.DebounceMs)
	m.viper.SetDefault("search.max_results", d.Search.MaxResults)
	m.viper.SetDefault("navigation.enabled", d.Navigation.Enabled)
	m.viper.SetDefault("window.host", d.Window.Host)
	m.viper.SetDefault("window.resize_command", d.Window.ResizeCommand)
	m.viper.SetDefault("window.passthrough_on_command", d.Window.PassthroughOnCommand)
	m.viper.SetDefault("window.passthrough_off_command", d.Window.PassthroughOffCommand)
	m.viper.SetDefault("window.cell_width", d.Window.CellWidth)
	m.viper.SetDefault("window.cell_height", d.Window.CellHeight)
	m.viper.SetDefault("window.visible_rows", d.Window.VisibleRows)
	m.viper.SetDefault("lifecycle.hide_on_blur", d.Lifecycle.HideOnBlur)
	m.viper.SetDefault("lifecycle.hide_after_launch", d.Lifecycle.HideAfterLaunch)
	m.viper.SetDefault("launch.opener", d.Launch.Opener)
	m.viper.SetDefault("discovery.max_depth", d.Discovery.MaxDepth)
	m.viper.SetDefault("discovery.watch", d.Discovery.Watch)
	m.viper.SetDefault("logging.level", d.Logging.Level)
	m.viper.SetDefault("logging.format", d.Logging.Format)
	m.viper.SetDefault("logging.file", d.Logging.File)
}

func (m *Manager) readConfigFile() error {
	err := m.viper.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to read config file at %s: %w\nCheck the file format (must be valid TOML) and permissions", m.path, err)
	}

	if err := writeConfig(DefaultConfig(), m.path); err != nil {
		return fmt.Errorf("failed to create default config at %s: %w", m.path, err)
	}
	if err := m.viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read newly created config file: %w", err)
	}
	return nil
}

func (m *Manager) unmarshalConfig() (*Config, error) {
	cfg := &Config{}
	if err := m.viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file at %s: %w", m.path, err)
	}
	return cfg, nil
}

func normalizeConfig(cfg *Config) {
	cfg.LaunchDir = ExpandHome(strings.TrimSpace(cfg.LaunchDir))
	cfg.Logging.File = ExpandHome(strings.TrimSpace(cfg.Logging.File))

	switch strings.ToLower(strings.TrimSpace(cfg.Window.Host)) {
	case HostCommand:
		cfg.Window.Host = HostCommand
	case HostNone:
		cfg.Window.Host = HostNone
	default:
		cfg.Window.Host = HostTerminal
	}

	switch strings.ToLower(cfg.Logging.Format) {
	case "json":
		cfg.Logging.Format = "json"
	default:
		cfg.Logging.Format = "console"
	}

	if cfg.Window.CellWidth <= 0 {
		cfg.Window.CellWidth = DefaultConfig().Window.CellWidth
	}
	if cfg.Window.CellHeight <= 0 {
		cfg.Window.CellHeight = DefaultConfig().Window.CellHeight
	}
	if cfg.Window.VisibleRows <= 0 {
		cfg.Window.VisibleRows = DefaultConfig().Window.VisibleRows
	}
	if cfg.Discovery.MaxDepth <= 0 {
		cfg.Discovery.MaxDepth = DefaultConfig().Discovery.MaxDepth
	}
}

func validateConfig(cfg *Config) error {
	var errs []error
	if cfg.Search.DebounceMs < 0 || cfg.Search.DebounceMs > 5000 {
		errs = append(errs, fmt.Errorf("search.debounce_ms must be between 0 and 5000, got %d", cfg.Search.DebounceMs))
	}
	if cfg.Search.MaxResults < 1 || cfg.Search.MaxResults > 1000 {
		errs = append(errs, fmt.Errorf("search.max_results must be between 1 and 1000, got %d", cfg.Search.MaxResults))
	}
	if cfg.Window.VisibleRows > 100 {
		errs = append(errs, fmt.Errorf("window.visible_rows must be at most 100, got %d", cfg.Window.VisibleRows))
	}
	if cfg.Window.Host == HostCommand && cfg.Window.ResizeCommand == "" &&
		cfg.Window.PassthroughOnCommand == "" && cfg.Window.PassthroughOffCommand == "" {
		errs = append(errs, errors.New("window.host = \"command\" needs at least one window command"))
	}
	return errors.Join(errs...)
}

// writeConfig encodes cfg as TOML at path
func writeConfig(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), filePerm); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
