package config

import (
	"sort"
	"testing"
)

func TestValidKeyNames_Sorted(t *testing.T) {
	names := ValidKeyNames()
	if len(names) == 0 {
		t.Fatal("expected non-empty key list")
	}
	if !sort.StringsAreSorted(names) {
		t.Fatalf("expected sorted key names, got %v", names)
	}
}

func TestValidKeyNames_ContainsKnownKeys(t *testing.T) {
	expected := []string{"user.name", "languages.primary", "languages.secondary", "server.addr", "speech.rate", "log.level"}
	nameSet := make(map[string]bool)
	for _, n := range ValidKeyNames() {
		nameSet[n] = true
	}
	for _, want := range expected {
		if !nameSet[want] {
			t.Errorf("ValidKeyNames missing expected key %q", want)
		}
	}
}

func TestLookupKey_Unknown(t *testing.T) {
	if _, ok := LookupKey("not.a.real.key"); ok {
		t.Fatal("expected unknown key to return false")
	}
}

func TestSetLanguageCanonicalizes(t *testing.T) {
	cfg := defaultConfig()
	entry, _ := LookupKey("languages.secondary")

	if err := entry.Set(cfg, "ES"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if cfg.Languages.Secondary != "es" {
		t.Fatalf("expected canonical tag 'es', got %q", cfg.Languages.Secondary)
	}

	if err := entry.Set(cfg, "not a tag!"); err == nil {
		t.Fatal("expected error for invalid tag")
	}
}

func TestSetTypedValues(t *testing.T) {
	cases := []struct {
		key     string
		value   string
		wantErr bool
	}{
		{"server.session_days", "14", false},
		{"server.session_days", "0", true},
		{"server.session_days", "week", true},
		{"speech.rate", "1.2", false},
		{"speech.rate", "0", true},
		{"speech.rate", "fast", true},
		{"log.level", "DEBUG", false},
		{"log.level", "loud", true},
		{"log.json", "yes", false},
		{"log.json", "maybe", true},
	}
	for _, tc := range cases {
		cfg := defaultConfig()
		entry, ok := LookupKey(tc.key)
		if !ok {
			t.Fatalf("key %q not registered", tc.key)
		}
		err := entry.Set(cfg, tc.value)
		if (err != nil) != tc.wantErr {
			t.Errorf("Set(%s=%q) error = %v, wantErr %v", tc.key, tc.value, err, tc.wantErr)
		}
	}
}

func TestUnsetRestoresDefaults(t *testing.T) {
	cfg := defaultConfig()
	for _, name := range ValidKeyNames() {
		entry, _ := LookupKey(name)
		before := entry.Get(cfg)
		entry.Unset(cfg)
		if got := entry.Get(cfg); got != before {
			t.Errorf("%s: Unset on defaults changed %q to %q", name, before, got)
		}
		if entry.DefaultStr != "" && entry.Get(cfg) != entry.DefaultStr {
			t.Errorf("%s: default %q does not match DefaultStr %q", name, entry.Get(cfg), entry.DefaultStr)
		}
	}
}

func TestParseBoolValue(t *testing.T) {
	for _, v := range []string{"true", "1", "yes", "on", "TRUE", "On"} {
		if b, err := ParseBoolValue(v); err != nil || !b {
			t.Errorf("ParseBoolValue(%q) = %v, %v; want true", v, b, err)
		}
	}
	for _, v := range []string{"false", "0", "no", "off", "OFF"} {
		if b, err := ParseBoolValue(v); err != nil || b {
			t.Errorf("ParseBoolValue(%q) = %v, %v; want false", v, b, err)
		}
	}
	if _, err := ParseBoolValue("maybe"); err == nil {
		t.Error("expected error for 'maybe'")
	}
}
