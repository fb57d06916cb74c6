package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Config represents the application configuration
type Config struct {
	Version    int              `mapstructure:"version" toml:"version"`
	LaunchDir  string           `mapstructure:"launch_dir" toml:"launch_dir"`
	Search     SearchConfig     `mapstructure:"search" toml:"search"`
	Navigation NavigationConfig `mapstructure:"navigation" toml:"navigation"`
	Window     WindowConfig     `mapstructure:"window" toml:"window"`
	Lifecycle  LifecycleConfig  `mapstructure:"lifecycle" toml:"lifecycle"`
	Launch     LaunchConfig     `mapstructure:"launch" toml:"launch"`
	Discovery  DiscoveryConfig  `mapstructure:"discovery" toml:"discovery"`
	Logging    LoggingConfig    `mapstructure:"logging" toml:"logging"`
}

// SearchConfig controls the query pipeline
type SearchConfig struct {
	DebounceMs int `mapstructure:"debounce_ms" toml:"debounce_ms"`
	MaxResults int `mapstructure:"max_results" toml:"max_results"`
}

// NavigationConfig toggles keyboard navigation over the result list
type NavigationConfig struct {
	Enabled bool `mapstructure:"enabled" toml:"enabled"`
}

// WindowConfig selects and configures the host window bridge
type WindowConfig struct {
	Host                  string `mapstructure:"host" toml:"host"` // terminal, command or none
	ResizeCommand         string `mapstructure:"resize_command" toml:"resize_command"`
	PassthroughOnCommand  string `mapstructure:"passthrough_on_command" toml:"passthrough_on_command"`
	PassthroughOffCommand string `mapstructure:"passthrough_off_command" toml:"passthrough_off_command"`
	CellWidth             int    `mapstructure:"cell_width" toml:"cell_width"`
	CellHeight            int    `mapstructure:"cell_height" toml:"cell_height"`
	VisibleRows           int    `mapstructure:"visible_rows" toml:"visible_rows"`
}

// LifecycleConfig controls when the overlay hides itself
type LifecycleConfig struct {
	HideOnBlur      bool `mapstructure:"hide_on_blur" toml:"hide_on_blur"`
	HideAfterLaunch bool `mapstructure:"hide_after_launch" toml:"hide_after_launch"`
}

// LaunchConfig controls how candidates are started
type LaunchConfig struct {
	Opener string `mapstructure:"opener" toml:"opener"` // e.g. "xdg-open {path}"
}

// DiscoveryConfig controls launch folder scanning
type DiscoveryConfig struct {
	MaxDepth int  `mapstructure:"max_depth" toml:"max_depth"`
	Watch    bool `mapstructure:"watch" toml:"watch"`
}

// LoggingConfig controls the log file
type LoggingConfig struct {
	Level  string `mapstructure:"level" toml:"level"`
	Format string `mapstructure:"format" toml:"format"`
	File   string `mapstructure:"file" toml:"file"`
}

// Host names accepted in window.host
const (
	HostTerminal = "terminal"
	HostCommand  = "command"
	HostNone     = "none"
)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:   1,
		LaunchDir: defaultLaunchDir(),
		Search: SearchConfig{
			DebounceMs: 300,
			MaxResults: 50,
		},
		Navigation: NavigationConfig{Enabled: true},
		Window: WindowConfig{
			Host:        HostTerminal,
			CellWidth:   8,
			CellHeight:  16,
			VisibleRows: 8,
		},
		Lifecycle: LifecycleConfig{
			HideOnBlur:      true,
			HideAfterLaunch: true,
		},
		Launch: LaunchConfig{Opener: defaultOpener()},
		Discovery: DiscoveryConfig{
			MaxDepth: 3,
			Watch:    true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func defaultLaunchDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	switch runtime.GOOS {
	case "darwin":
		return "/Applications"
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "Microsoft", "Windows", "Start Menu", "Programs")
		}
		return home
	default:
		return filepath.Join(home, ".local", "share", "applications")
	}
}

func defaultOpener() string {
	switch runtime.GOOS {
	case "darwin":
		return "open {path}"
	case "windows":
		return `cmd /c start "" {path}`
	default:
		return "xdg-open {path}"
	}
}
