package config

import (
	"os"
	"testing"

	"golang.org/x/text/language"
)

func TestGetPaths(t *testing.T) {
	paths := GetPaths()

	if paths.ConfigDir == "" {
		t.Fatal("ConfigDir should not be empty")
	}
	if paths.DataDir == "" {
		t.Fatal("DataDir should not be empty")
	}
	if paths.ConfigFile == "" {
		t.Fatal("ConfigFile should not be empty")
	}
	if paths.DBFile == "" {
		t.Fatal("DBFile should not be empty")
	}
}

func TestGetPathsRespectsXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/testxdg/config")
	t.Setenv("XDG_DATA_HOME", "/tmp/testxdg/data")

	paths := GetPaths()

	if paths.ConfigDir != "/tmp/testxdg/config/lexi" {
		t.Fatalf("expected /tmp/testxdg/config/lexi, got %s", paths.ConfigDir)
	}
	if paths.DataDir != "/tmp/testxdg/data/lexi" {
		t.Fatalf("expected /tmp/testxdg/data/lexi, got %s", paths.DataDir)
	}
	if paths.DBFile != "/tmp/testxdg/data/lexi/lexi.db" {
		t.Fatalf("expected /tmp/testxdg/data/lexi/lexi.db, got %s", paths.DBFile)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Languages.Primary != "en" || cfg.Languages.Secondary != "ca" {
		t.Fatalf("expected en/ca languages, got %q/%q", cfg.Languages.Primary, cfg.Languages.Secondary)
	}
	if cfg.Server.SessionDays != 7 {
		t.Fatalf("expected 7 session days, got %d", cfg.Server.SessionDays)
	}
	if cfg.Speech.Rate != 0.9 {
		t.Fatalf("expected speech rate 0.9, got %v", cfg.Speech.Rate)
	}
}

func TestEnsureDirs(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir+"/config")
	t.Setenv("XDG_DATA_HOME", tmpDir+"/data")
	t.Setenv("XDG_CACHE_HOME", tmpDir+"/cache")
	t.Setenv("XDG_STATE_HOME", tmpDir+"/state")

	paths := GetPaths()
	if err := paths.EnsureDirs(); err != nil {
		t.Fatalf("EnsureDirs failed: %v", err)
	}

	for _, dir := range []string{paths.ConfigDir, paths.DataDir, paths.CacheDir, paths.StateDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("dir %s not created: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("%s is not a directory", dir)
		}
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir+"/config")
	t.Setenv("XDG_DATA_HOME", tmpDir+"/data")

	cfg := defaultConfig()
	cfg.User.Name = "Marta"
	cfg.Languages.Secondary = "es"
	cfg.Server.AdminPassword = "hunter2"
	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	info, err := os.Stat(GetPaths().ConfigFile)
	if err != nil {
		t.Fatalf("stat config: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("expected config mode 0600, got %o", perm)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.User.Name != "Marta" || got.Languages.Secondary != "es" || got.Server.AdminPassword != "hunter2" {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir+"/config")

	paths := GetPaths()
	if err := os.MkdirAll(paths.ConfigDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(paths.ConfigFile, []byte("[user]\nname = \"Pau\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.User.Name != "Pau" {
		t.Fatalf("expected name Pau, got %q", cfg.User.Name)
	}
	if cfg.Server.Addr != DefaultAddr {
		t.Fatalf("expected default addr %q, got %q", DefaultAddr, cfg.Server.Addr)
	}
}

func TestServerPasswordEnvOverride(t *testing.T) {
	s := ServerConfig{AdminPassword: "from-file"}

	t.Setenv("LEXI_ADMIN_PASSWORD", "")
	if got := s.Password(); got != "from-file" {
		t.Fatalf("expected file password, got %q", got)
	}

	t.Setenv("LEXI_ADMIN_PASSWORD", "from-env")
	if got := s.Password(); got != "from-env" {
		t.Fatalf("expected env password, got %q", got)
	}
}

func TestCollationTag(t *testing.T) {
	cases := []struct {
		in   string
		want language.Tag
	}{
		{"", language.English},
		{"not a tag!", language.English},
		{"es", language.Spanish},
		{"ca", language.Catalan},
	}
	for _, tc := range cases {
		got := LanguagesConfig{Collation: tc.in}.CollationTag()
		if got != tc.want {
			t.Errorf("CollationTag(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
