package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/language"
)

// Config holds the top-level lexi configuration.
type Config struct {
	User      UserConfig      `toml:"user"`
	Languages LanguagesConfig `toml:"languages"`
	Server    ServerConfig    `toml:"server"`
	Speech    SpeechConfig    `toml:"speech"`
	Log       LogConfig       `toml:"log"`
}

type UserConfig struct {
	Name string `toml:"name"`
}

// LanguagesConfig names the two sides of the dictionary as BCP 47 tags.
type LanguagesConfig struct {
	Primary   string `toml:"primary"`
	Secondary string `toml:"secondary"`
	// Collation is the language whose alphabet orders the grouped listing.
	Collation string `toml:"collation"`
}

// CollationTag parses Collation, falling back to English when it is unset
// or not a valid tag.
func (l LanguagesConfig) CollationTag() language.Tag {
	if l.Collation == "" {
		return language.English
	}
	tag, err := language.Parse(l.Collation)
	if err != nil {
		return language.English
	}
	return tag
}

type ServerConfig struct {
	Addr string `toml:"addr"`
	// AdminPassword gates mutations over HTTP. LEXI_ADMIN_PASSWORD wins
	// over this value. Empty disables all mutations.
	AdminPassword string `toml:"admin_password,omitempty"`
	SessionDays   int    `toml:"session_days"`
}

// Password returns the effective admin password.
func (s ServerConfig) Password() string {
	if p := os.Getenv("LEXI_ADMIN_PASSWORD"); p != "" {
		return p
	}
	return s.AdminPassword
}

type SpeechConfig struct {
	// Command forces a speech engine (say, espeak-ng, espeak). Empty auto-detects.
	Command string  `toml:"command"`
	Rate    float64 `toml:"rate"`
}

type LogConfig struct {
	Level string `toml:"level"` // debug, info, warn, error
	// JSON switches operational logs to one JSON object per line.
	JSON bool `toml:"json"`
}

// Default values.
const (
	DefaultPrimaryLanguage   = "en"
	DefaultSecondaryLanguage = "ca"
	DefaultAddr              = "127.0.0.1:8080"
	DefaultSessionDays       = 7
	DefaultSpeechRate        = 0.9
	DefaultLogLevel          = "info"
)

// Paths returns standard XDG-compliant paths.
type Paths struct {
	ConfigDir  string
	DataDir    string
	CacheDir   string
	StateDir   string
	ConfigFile string
	DBFile     string
}

// GetPaths returns the resolved paths, respecting XDG env vars.
func GetPaths() Paths {
	home, _ := os.UserHomeDir()

	configDir := envOr("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	dataDir := envOr("XDG_DATA_HOME", filepath.Join(home, ".local", "share"))
	cacheDir := envOr("XDG_CACHE_HOME", filepath.Join(home, ".cache"))
	stateDir := envOr("XDG_STATE_HOME", filepath.Join(home, ".local", "state"))

	lexiConfig := filepath.Join(configDir, "lexi")
	lexiData := filepath.Join(dataDir, "lexi")

	return Paths{
		ConfigDir:  lexiConfig,
		DataDir:    lexiData,
		CacheDir:   filepath.Join(cacheDir, "lexi"),
		StateDir:   filepath.Join(stateDir, "lexi"),
		ConfigFile: filepath.Join(lexiConfig, "config.toml"),
		DBFile:     filepath.Join(lexiData, "lexi.db"),
	}
}

// EnsureDirs creates all required directories.
func (p Paths) EnsureDirs() error {
	dirs := []string{p.ConfigDir, p.DataDir, p.CacheDir, p.StateDir}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return err
		}
	}
	return nil
}

// Load reads config from disk, returning defaults if not found. Keys
// missing from the file keep their defaults.
func Load() (*Config, error) {
	paths := GetPaths()
	cfg := defaultConfig()

	data, err := os.ReadFile(paths.ConfigFile)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes config to disk. The file may hold the admin password, so it
// is only readable by the owner.
func Save(cfg *Config) error {
	paths := GetPaths()
	if err := paths.EnsureDirs(); err != nil {
		return err
	}

	f, err := os.OpenFile(paths.ConfigFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// Initialized returns true if a config file exists.
func Initialized() bool {
	paths := GetPaths()
	_, err := os.Stat(paths.ConfigFile)
	return err == nil
}

func defaultConfig() *Config {
	return &Config{
		Languages: LanguagesConfig{
			Primary:   DefaultPrimaryLanguage,
			Secondary: DefaultSecondaryLanguage,
			Collation: DefaultPrimaryLanguage,
		},
		Server: ServerConfig{
			Addr:        DefaultAddr,
			SessionDays: DefaultSessionDays,
		},
		Speech: SpeechConfig{
			Rate: DefaultSpeechRate,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
