package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/soft-focus/themegen/internal/storage"
)

// For mocking in tests
var (
	osUserHomeDir = os.UserHomeDir
	osGetwd       = os.Getwd
	runtimeGOOS   = runtime.GOOS
)

const (
	envPrefix  = "THEMEGEN"
	configName = "themegen"
	configType = "yaml"
)

// Configuration keys
const (
	KeyRoot      = "root"
	KeyColorsDir = "colors_dir"
	KeyConfigDir = "config_dir"
	KeyEmacsDir  = "emacs_dir"
	KeyDark      = "themes.dark"
	KeyLight     = "themes.light"
	KeyYAML      = "yaml"
	KeyStage     = "stage"
	KeyLogLevel  = "log_level"
)

// flagKeys maps command-line flag names to configuration keys
var flagKeys = map[string]string{
	"root":       KeyRoot,
	"colors-dir": KeyColorsDir,
	"config-dir": KeyConfigDir,
	"emacs-dir":  KeyEmacsDir,
	"yaml":       KeyYAML,
	"stage":      KeyStage,
	"log-level":  KeyLogLevel,
}

// Config is the resolved themegen configuration
type Config struct {
	Root      string `mapstructure:"root"`
	ColorsDir string `mapstructure:"colors_dir"`
	ConfigDir string `mapstructure:"config_dir"`
	EmacsDir  string `mapstructure:"emacs_dir"`
	Themes    Themes `mapstructure:"themes"`
	YAML      bool   `mapstructure:"yaml"`
	Stage     bool   `mapstructure:"stage"`
	LogLevel  string `mapstructure:"log_level"`
}

// Themes names the palettes behind the dark and light selectors
type Themes struct {
	Dark  string `mapstructure:"dark"`
	Light string `mapstructure:"light"`
}

// Layout returns the storage layout described by the configuration
func (c *Config) Layout() storage.Layout {
	return storage.Layout{
		ColorsDir: c.ColorsDir,
		ConfigDir: c.ConfigDir,
		EmacsDir:  c.EmacsDir,
	}
}

// SetDefaults registers the default value of every key
func SetDefaults(v *viper.Viper) {
	layout := storage.DefaultLayout()
	v.SetDefault(KeyRoot, "")
	v.SetDefault(KeyColorsDir, layout.ColorsDir)
	v.SetDefault(KeyConfigDir, layout.ConfigDir)
	v.SetDefault(KeyEmacsDir, layout.EmacsDir)
	v.SetDefault(KeyDark, "soft-focus-dark")
	v.SetDefault(KeyLight, "soft-focus-light")
	v.SetDefault(KeyYAML, true)
	v.SetDefault(KeyStage, false)
	v.SetDefault(KeyLogLevel, "info")
}

// New returns a viper instance with defaults, THEMEGEN_* environment
// variables and the themegen.yaml search path configured
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName(configName)
	v.SetConfigType(configType)
	for _, dir := range searchDirs() {
		v.AddConfigPath(dir)
	}
	return v
}

// Load binds flags, reads the optional config file and resolves the root.
// An explicit file (from --config) must exist; the search path may be empty.
func Load(v *viper.Viper, flags *pflag.FlagSet, file string) (*Config, error) {
	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag --%s: %w", name, err)
				}
			}
		}
	}

	if file != "" {
		v.SetConfigFile(file)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if cfg.Root == "" {
		root, err := DetectRoot(cfg.ColorsDir)
		if err != nil {
			return nil, err
		}
		cfg.Root = root
	}
	return &cfg, nil
}

// RootNotFoundError lists every directory searched for a chezmoi source tree
type RootNotFoundError struct {
	ColorsDir string
	Searched  []string
}

func (e *RootNotFoundError) Error() string {
	return fmt.Sprintf("no chezmoi source directory with %s found; searched: %s (set --root or %s_ROOT)",
		e.ColorsDir, strings.Join(e.Searched, ", "), envPrefix)
}

// RootCandidates returns the directories DetectRoot tries, in order
func RootCandidates() []string {
	var out []string
	if home, err := osUserHomeDir(); err == nil {
		if runtimeGOOS == "windows" {
			out = append(out,
				filepath.Join(home, "AppData", "Local", "chezmoi"),
				filepath.Join(home, ".local", "share", "chezmoi"),
			)
		} else {
			out = append(out,
				filepath.Join(home, ".local", "share", "chezmoi"),
				filepath.Join(home, ".chezmoi"),
			)
		}
	}
	if wd, err := osGetwd(); err == nil {
		out = append(out, wd)
	}
	return out
}

// DetectRoot returns the first candidate that contains colorsDir
func DetectRoot(colorsDir string) (string, error) {
	if colorsDir == "" {
		colorsDir = storage.DefaultLayout().ColorsDir
	}
	candidates := RootCandidates()
	for _, dir := range candidates {
		if info, err := os.Stat(filepath.Join(dir, colorsDir)); err == nil && info.IsDir() {
			return dir, nil
		}
	}
	return "", &RootNotFoundError{ColorsDir: colorsDir, Searched: candidates}
}

func searchDirs() []string {
	var dirs []string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		dirs = append(dirs, filepath.Join(xdg, configName))
	}
	if home, err := osUserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", configName))
	}
	if wd, err := osGetwd(); err == nil {
		dirs = append(dirs, wd)
	}
	return dirs
}
