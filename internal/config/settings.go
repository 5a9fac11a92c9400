package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Engine selects the extraction/download library backend
type Engine string

const (
	EngineYTDLP  Engine = "ytdlp"
	EngineNative Engine = "native"
)

// UIMode selects how progress is rendered
type UIMode string

const (
	UIModeAuto  UIMode = "auto"
	UIModeLive  UIMode = "live"
	UIModePlain UIMode = "plain"
)

// Settings keys
const (
	KeyOutput           = "output"
	KeyFormat           = "format"
	KeyFilenameTemplate = "filename_template"
	KeyEngine           = "engine"
	KeyResolveTimeout   = "resolve_timeout"
	KeyYTDLPExecutable  = "ytdlp.executable"
	KeyYTDLPAutoInstall = "ytdlp.auto_install"
	KeyNativeTimeout    = "native.timeout"
	KeyNativeRetries    = "native.retries"
	KeyNativeUserAgent  = "native.user_agent"
	KeyUIMode           = "ui.mode"
	KeyUIRefreshRate    = "ui.refresh_rate"
	KeyLogFile          = "logging.file"
	KeyLogLevel         = "logging.level"
)

// Default values
const (
	DefaultOutput           = "./output"
	DefaultFormat           = "best"
	DefaultFilenameTemplate = "%(title)s.%(ext)s"
	DefaultEngine           = EngineYTDLP
	DefaultNativeTimeout    = 30 * time.Second
	DefaultNativeRetries    = 3
	DefaultUIMode           = UIModeAuto
	DefaultRefreshRate      = 10
	DefaultLogLevel         = "info"

	MinRefreshRate = 1
	MaxRefreshRate = 60
)

// Config file lookup
const (
	AppName        = "yt-playlist"
	ConfigFileName = "config"
	ConfigFileType = "yaml"
	EnvPrefix      = "YTPL"
)

// Settings manages application configuration
type Settings struct {
	v *viper.Viper
}

// LoadOptions controls where Load looks for configuration
type LoadOptions struct {
	// ConfigFile is an explicit config path; when empty the default
	// locations are searched and a missing file is not an error.
	ConfigFile string
	// EnvFile is loaded with godotenv before reading the environment.
	// A missing file is ignored.
	EnvFile string
	// Flags, when set, override every other source for the keys they bind.
	Flags *pflag.FlagSet
}

// NewSettings creates a settings manager holding only the defaults
func NewSettings() *Settings {
	v := viper.New()
	setDefaults(v)
	return &Settings{v: v}
}

// Load builds settings from defaults, config file, environment and flags
func Load(opts LoadOptions) (*Settings, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	s := NewSettings()
	v := s.v

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		v.SetConfigName(ConfigFileName)
		v.SetConfigType(ConfigFileType)
		for _, dir := range configDirs() {
			v.AddConfigPath(dir)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
			// Config file not found is OK, use defaults
		}
	}

	if opts.Flags != nil {
		if err := bindFlags(v, opts.Flags); err != nil {
			return nil, err
		}
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// flagKeys maps command-line flag names to settings keys
var flagKeys = map[string]string{
	"output": KeyOutput,
	"format": KeyFormat,
	"engine": KeyEngine,
	"ui":     KeyUIMode,
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", name, err)
		}
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyOutput, DefaultOutput)
	v.SetDefault(KeyFormat, DefaultFormat)
	v.SetDefault(KeyFilenameTemplate, DefaultFilenameTemplate)
	v.SetDefault(KeyEngine, string(DefaultEngine))
	v.SetDefault(KeyResolveTimeout, time.Duration(0))
	v.SetDefault(KeyYTDLPExecutable, "")
	v.SetDefault(KeyYTDLPAutoInstall, true)
	v.SetDefault(KeyNativeTimeout, DefaultNativeTimeout)
	v.SetDefault(KeyNativeRetries, DefaultNativeRetries)
	v.SetDefault(KeyNativeUserAgent, "")
	v.SetDefault(KeyUIMode, string(DefaultUIMode))
	v.SetDefault(KeyUIRefreshRate, DefaultRefreshRate)
	v.SetDefault(KeyLogFile, defaultLogPath())
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
}

// configDirs returns the directories searched for config.yaml
func configDirs() []string {
	dirs := make([]string, 0, 3)
	if dir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(dir, AppName))
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", AppName))
	}
	return append(dirs, ".")
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, AppName, AppName+".log")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), AppName+".log")
	}
	return filepath.Join(home, ".local", "state", AppName, AppName+".log")
}

// Validate checks enum values
func (s *Settings) Validate() error {
	switch s.GetEngine() {
	case EngineYTDLP, EngineNative:
	default:
		return fmt.Errorf("invalid engine %q: valid engines are %s, %s", s.v.GetString(KeyEngine), EngineYTDLP, EngineNative)
	}
	switch s.GetUIMode() {
	case UIModeAuto, UIModeLive, UIModePlain:
	default:
		return fmt.Errorf("invalid ui mode %q: valid modes are %s, %s, %s", s.v.GetString(KeyUIMode), UIModeAuto, UIModeLive, UIModePlain)
	}
	if strings.TrimSpace(s.GetFormat()) == "" {
		return fmt.Errorf("format cannot be empty")
	}
	return nil
}

// Set overrides a single key
func (s *Settings) Set(key string, value any) {
	s.v.Set(key, value)
}

// GetOutputDirectory returns the configured destination directory
func (s *Settings) GetOutputDirectory() string {
	dir := s.v.GetString(KeyOutput)
	if dir == "" {
		return DefaultOutput
	}
	return dir
}

// GetFormat returns the format selector passed to the extractor
func (s *Settings) GetFormat() string {
	return s.v.GetString(KeyFormat)
}

// GetFilenameTemplate returns the filename template
func (s *Settings) GetFilenameTemplate() string {
	template := s.v.GetString(KeyFilenameTemplate)
	if template == "" {
		return DefaultFilenameTemplate
	}
	return template
}

// GetEngine returns the configured extraction backend
func (s *Settings) GetEngine() Engine {
	return Engine(strings.ToLower(s.v.GetString(KeyEngine)))
}

// GetResolveTimeout returns the playlist resolution timeout, 0 for none
func (s *Settings) GetResolveTimeout() time.Duration {
	return s.v.GetDuration(KeyResolveTimeout)
}

// GetYTDLPExecutable returns an explicit yt-dlp binary path, if any
func (s *Settings) GetYTDLPExecutable() string {
	return s.v.GetString(KeyYTDLPExecutable)
}

// GetYTDLPAutoInstall returns whether the yt-dlp binary may be installed on demand
func (s *Settings) GetYTDLPAutoInstall() bool {
	return s.v.GetBool(KeyYTDLPAutoInstall)
}

// GetNativeTimeout returns the HTTP timeout for the native engine
func (s *Settings) GetNativeTimeout() time.Duration {
	return s.v.GetDuration(KeyNativeTimeout)
}

// GetNativeRetries returns the HTTP client retry count for the native engine
func (s *Settings) GetNativeRetries() int {
	retries := s.v.GetInt(KeyNativeRetries)
	if retries < 0 {
		return 0
	}
	return retries
}

// GetNativeUserAgent returns the User-Agent override for the native engine
func (s *Settings) GetNativeUserAgent() string {
	return s.v.GetString(KeyNativeUserAgent)
}

// GetUIMode returns the configured rendering mode
func (s *Settings) GetUIMode() UIMode {
	return UIMode(strings.ToLower(s.v.GetString(KeyUIMode)))
}

// GetRefreshRate returns the live view refresh rate in Hz, clamped to 1..60
func (s *Settings) GetRefreshRate() int {
	rate := s.v.GetInt(KeyUIRefreshRate)
	if rate < MinRefreshRate {
		return MinRefreshRate
	}
	if rate > MaxRefreshRate {
		return MaxRefreshRate
	}
	return rate
}

// GetLogFile returns the log file path with ~ expanded
func (s *Settings) GetLogFile() string {
	path := s.v.GetString(KeyLogFile)
	if strings.HasPrefix(path, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetLogLevel returns the configured log level
func (s *Settings) GetLogLevel() string {
	return s.v.GetString(KeyLogLevel)
}
