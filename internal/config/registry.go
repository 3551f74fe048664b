package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/language"
)

// KeyType represents the data type of a config key.
type KeyType string

const (
	KeyTypeString KeyType = "string"
	KeyTypeInt    KeyType = "int"
	KeyTypeBool   KeyType = "bool"
	KeyTypeFloat  KeyType = "float"
)

// KeyEntry describes a known, settable config key.
type KeyEntry struct {
	// Type is the value's data type.
	Type KeyType
	// Desc is a human-readable description shown in `lexi config list`.
	Desc string
	// DefaultStr is the string representation of the default value.
	DefaultStr string
	// Secret keys are masked when displayed.
	Secret bool

	get   func(*Config) string
	set   func(cfg *Config, value string) error
	unset func(cfg *Config)
}

// Get returns the current value of the key as a string.
func (e *KeyEntry) Get(cfg *Config) string { return e.get(cfg) }

// Set validates and sets the value, returning a descriptive error on type mismatch.
func (e *KeyEntry) Set(cfg *Config, value string) error { return e.set(cfg, value) }

// Unset resets the key to its schema default.
func (e *KeyEntry) Unset(cfg *Config) { e.unset(cfg) }

// SchemaKeys is the authoritative registry of all settable config keys.
// Keys use dot-notation matching the TOML section structure.
var SchemaKeys = map[string]*KeyEntry{
	"user.name": {
		Type:  KeyTypeString,
		Desc:  "Display name",
		get:   func(cfg *Config) string { return cfg.User.Name },
		set:   func(cfg *Config, v string) error { cfg.User.Name = v; return nil },
		unset: func(cfg *Config) { cfg.User.Name = "" },
	},
	"languages.primary": {
		Type:       KeyTypeString,
		Desc:       "Language of the primary column (BCP 47, e.g. en)",
		DefaultStr: DefaultPrimaryLanguage,
		get:        func(cfg *Config) string { return cfg.Languages.Primary },
		set: func(cfg *Config, v string) error {
			tag, err := parseTag(v)
			if err != nil {
				return err
			}
			cfg.Languages.Primary = tag
			return nil
		},
		unset: func(cfg *Config) { cfg.Languages.Primary = DefaultPrimaryLanguage },
	},
	"languages.secondary": {
		Type:       KeyTypeString,
		Desc:       "Language of the secondary column (BCP 47, e.g. ca)",
		DefaultStr: DefaultSecondaryLanguage,
		get:        func(cfg *Config) string { return cfg.Languages.Secondary },
		set: func(cfg *Config, v string) error {
			tag, err := parseTag(v)
			if err != nil {
				return err
			}
			cfg.Languages.Secondary = tag
			return nil
		},
		unset: func(cfg *Config) { cfg.Languages.Secondary = DefaultSecondaryLanguage },
	},
	"languages.collation": {
		Type:       KeyTypeString,
		Desc:       "Alphabet used to order the grouped listing",
		DefaultStr: DefaultPrimaryLanguage,
		get:        func(cfg *Config) string { return cfg.Languages.Collation },
		set: func(cfg *Config, v string) error {
			tag, err := parseTag(v)
			if err != nil {
				return err
			}
			cfg.Languages.Collation = tag
			return nil
		},
		unset: func(cfg *Config) { cfg.Languages.Collation = DefaultPrimaryLanguage },
	},
	"server.addr": {
		Type:       KeyTypeString,
		Desc:       "Listen address for `lexi serve`",
		DefaultStr: DefaultAddr,
		get:        func(cfg *Config) string { return cfg.Server.Addr },
		set:        func(cfg *Config, v string) error { cfg.Server.Addr = v; return nil },
		unset:      func(cfg *Config) { cfg.Server.Addr = DefaultAddr },
	},
	"server.admin_password": {
		Type:   KeyTypeString,
		Desc:   "Password for HTTP edits (LEXI_ADMIN_PASSWORD overrides)",
		Secret: true,
		get:    func(cfg *Config) string { return cfg.Server.AdminPassword },
		set:    func(cfg *Config, v string) error { cfg.Server.AdminPassword = v; return nil },
		unset:  func(cfg *Config) { cfg.Server.AdminPassword = "" },
	},
	"server.session_days": {
		Type:       KeyTypeInt,
		Desc:       "Days an admin login stays valid",
		DefaultStr: strconv.Itoa(DefaultSessionDays),
		get:        func(cfg *Config) string { return strconv.Itoa(cfg.Server.SessionDays) },
		set: func(cfg *Config, v string) error {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil || n < 1 {
				return fmt.Errorf("invalid value %q for server.session_days: expected a positive integer", v)
			}
			cfg.Server.SessionDays = n
			return nil
		},
		unset: func(cfg *Config) { cfg.Server.SessionDays = DefaultSessionDays },
	},
	"speech.command": {
		Type:  KeyTypeString,
		Desc:  "Speech engine (say, espeak-ng, espeak); empty auto-detects",
		get:   func(cfg *Config) string { return cfg.Speech.Command },
		set:   func(cfg *Config, v string) error { cfg.Speech.Command = v; return nil },
		unset: func(cfg *Config) { cfg.Speech.Command = "" },
	},
	"speech.rate": {
		Type:       KeyTypeFloat,
		Desc:       "Speaking rate relative to normal (0.1-10)",
		DefaultStr: strconv.FormatFloat(DefaultSpeechRate, 'g', -1, 64),
		get:        func(cfg *Config) string { return strconv.FormatFloat(cfg.Speech.Rate, 'g', -1, 64) },
		set: func(cfg *Config, v string) error {
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil || f < 0.1 || f > 10 {
				return fmt.Errorf("invalid value %q for speech.rate: expected a number between 0.1 and 10", v)
			}
			cfg.Speech.Rate = f
			return nil
		},
		unset: func(cfg *Config) { cfg.Speech.Rate = DefaultSpeechRate },
	},
	"log.level": {
		Type:       KeyTypeString,
		Desc:       "Log level (debug, info, warn, error)",
		DefaultStr: DefaultLogLevel,
		get:        func(cfg *Config) string { return cfg.Log.Level },
		set: func(cfg *Config, v string) error {
			switch strings.ToLower(strings.TrimSpace(v)) {
			case "debug", "info", "warn", "error":
				cfg.Log.Level = strings.ToLower(strings.TrimSpace(v))
				return nil
			default:
				return fmt.Errorf("invalid value %q for log.level (use debug, info, warn or error)", v)
			}
		},
		unset: func(cfg *Config) { cfg.Log.Level = DefaultLogLevel },
	},
	"log.json": {
		Type:       KeyTypeBool,
		Desc:       "Write server logs as JSON lines",
		DefaultStr: "false",
		get:        func(cfg *Config) string { return strconv.FormatBool(cfg.Log.JSON) },
		set: func(cfg *Config, v string) error {
			b, err := ParseBoolValue(v)
			if err != nil {
				return fmt.Errorf("invalid value %q for log.json: %w", v, err)
			}
			cfg.Log.JSON = b
			return nil
		},
		unset: func(cfg *Config) { cfg.Log.JSON = false },
	},
}

// ValidKeyNames returns the sorted list of all known config key names.
func ValidKeyNames() []string {
	names := make([]string, 0, len(SchemaKeys))
	for k := range SchemaKeys {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// LookupKey returns the KeyEntry for a known config key.
func LookupKey(key string) (*KeyEntry, bool) {
	entry, ok := SchemaKeys[key]
	return entry, ok
}

// ParseBoolValue accepts common boolean string representations.
// Valid truthy values: true, 1, yes, on.
// Valid falsy values: false, 0, no, off.
func ParseBoolValue(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "on":
		return true, nil
	case "false", "0", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("not a boolean: %q (use one of: true/false, 1/0, yes/no, on/off)", s)
	}
}

// parseTag validates a BCP 47 tag and returns its canonical form.
func parseTag(s string) (string, error) {
	tag, err := language.Parse(strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("invalid language tag %q: %w", s, err)
	}
	return tag.String(), nil
}
