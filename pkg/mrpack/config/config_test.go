package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	// Use a temp directory that doesn't have a config file
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("XDG_CONFIG_HOME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Registry.URL != DefaultRegistryURL {
		t.Errorf("Registry.URL = %q, want %q", cfg.Registry.URL, DefaultRegistryURL)
	}

	if cfg.Registry.Timeout != DefaultRegistryTimeout.String() {
		t.Errorf("Registry.Timeout = %q, want %q", cfg.Registry.Timeout, DefaultRegistryTimeout.String())
	}

	if cfg.Registry.UserAgent != DefaultUserAgent {
		t.Errorf("Registry.UserAgent = %q, want %q", cfg.Registry.UserAgent, DefaultUserAgent)
	}

	if !cfg.Cache.Enabled {
		t.Error("Cache.Enabled = false, want true")
	}

	if cfg.Cache.Dir != "" {
		t.Errorf("Cache.Dir = %q, want empty string", cfg.Cache.Dir)
	}

	if cfg.Cache.TTL != DefaultCacheTTL.String() {
		t.Errorf("Cache.TTL = %q, want %q", cfg.Cache.TTL, DefaultCacheTTL.String())
	}

	if cfg.Output.Format != DefaultOutputFormat {
		t.Errorf("Output.Format = %q, want %q", cfg.Output.Format, DefaultOutputFormat)
	}

	if len(cfg.Check.Versions) != 0 {
		t.Errorf("len(Check.Versions) = %d, want 0", len(cfg.Check.Versions))
	}
}

func TestLoad_FromFile(t *testing.T) {
	tempDir := t.TempDir()
	configDir := filepath.Join(tempDir, ".config", "mrpack")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}

	configContent := `
registry:
  url: https://staging.example.com/v2
  timeout: 30s
  user_agent: test-agent
cache:
  enabled: false
  dir: /custom/cache
  ttl: 1h
output:
  format: json
check:
  versions:
    - "1.20"
    - "1.20.1"
`
	configPath := filepath.Join(configDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(configContent), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	t.Setenv("HOME", tempDir)
	t.Setenv("XDG_CONFIG_HOME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Registry.URL != "https://staging.example.com/v2" {
		t.Errorf("Registry.URL = %q, want %q", cfg.Registry.URL, "https://staging.example.com/v2")
	}

	if cfg.Registry.Timeout != "30s" {
		t.Errorf("Registry.Timeout = %q, want %q", cfg.Registry.Timeout, "30s")
	}

	if cfg.Registry.UserAgent != "test-agent" {
		t.Errorf("Registry.UserAgent = %q, want %q", cfg.Registry.UserAgent, "test-agent")
	}

	if cfg.Cache.Enabled {
		t.Error("Cache.Enabled = true, want false")
	}

	if cfg.Cache.Dir != "/custom/cache" {
		t.Errorf("Cache.Dir = %q, want %q", cfg.Cache.Dir, "/custom/cache")
	}

	if cfg.Cache.TTL != "1h" {
		t.Errorf("Cache.TTL = %q, want %q", cfg.Cache.TTL, "1h")
	}

	if cfg.Output.Format != "json" {
		t.Errorf("Output.Format = %q, want %q", cfg.Output.Format, "json")
	}

	if len(cfg.Check.Versions) != 2 {
		t.Fatalf("len(Check.Versions) = %d, want 2", len(cfg.Check.Versions))
	}
	if cfg.Check.Versions[0] != "1.20" || cfg.Check.Versions[1] != "1.20.1" {
		t.Errorf("Check.Versions = %v, want [1.20 1.20.1]", cfg.Check.Versions)
	}
}

func TestLoad_XDGConfigHome(t *testing.T) {
	tempDir := t.TempDir()
	xdgConfigDir := filepath.Join(tempDir, "xdg-config", "mrpack")
	if err := os.MkdirAll(xdgConfigDir, 0o755); err != nil {
		t.Fatalf("failed to create XDG config dir: %v", err)
	}

	configContent := `output:
  format: csv`
	configPath := filepath.Join(xdgConfigDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(configContent), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	t.Setenv("HOME", tempDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tempDir, "xdg-config"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Output.Format != "csv" {
		t.Errorf("Output.Format = %q, want %q", cfg.Output.Format, "csv")
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("MRPACK_REGISTRY_URL", "https://env.example.com/v2")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Registry.URL != "https://env.example.com/v2" {
		t.Errorf("Registry.URL = %q, want %q", cfg.Registry.URL, "https://env.example.com/v2")
	}
}

func TestLoad_LoggingDefaults(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("XDG_CONFIG_HOME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "info")
	}

	if cfg.Logging.Path != "" {
		t.Errorf("Logging.Path = %q, want empty string", cfg.Logging.Path)
	}

	if cfg.Logging.Rotation.MaxSize != "10MB" {
		t.Errorf("Logging.Rotation.MaxSize = %q, want %q", cfg.Logging.Rotation.MaxSize, "10MB")
	}

	if cfg.Logging.Rotation.MaxAge != 30 {
		t.Errorf("Logging.Rotation.MaxAge = %d, want %d", cfg.Logging.Rotation.MaxAge, 30)
	}

	if cfg.Logging.Rotation.MaxBackups != 5 {
		t.Errorf("Logging.Rotation.MaxBackups = %d, want %d", cfg.Logging.Rotation.MaxBackups, 5)
	}

	if !cfg.Logging.Rotation.Daily {
		t.Error("Logging.Rotation.Daily = false, want true")
	}

	expectedComponents := map[string]string{
		"cli":      "info",
		"modrinth": "info",
		"cache":    "info",
		"watch":    "info",
	}
	for component, level := range expectedComponents {
		if cfg.Logging.Components[component] != level {
			t.Errorf("Logging.Components[%q] = %q, want %q", component, cfg.Logging.Components[component], level)
		}
	}
}

func TestLoad_LoggingFromFile(t *testing.T) {
	tempDir := t.TempDir()
	configDir := filepath.Join(tempDir, ".config", "mrpack")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}

	configContent := `
logging:
  level: debug
  path: /var/log/mrpack.log
  rotation:
    max_size: 50MB
    max_age: 7
    max_backups: 3
    daily: false
  components:
    modrinth: debug
    cache: warn
`
	configPath := filepath.Join(configDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(configContent), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	t.Setenv("HOME", tempDir)
	t.Setenv("XDG_CONFIG_HOME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}

	if cfg.Logging.Path != "/var/log/mrpack.log" {
		t.Errorf("Logging.Path = %q, want %q", cfg.Logging.Path, "/var/log/mrpack.log")
	}

	if cfg.Logging.Rotation.MaxSize != "50MB" {
		t.Errorf("Logging.Rotation.MaxSize = %q, want %q", cfg.Logging.Rotation.MaxSize, "50MB")
	}

	if cfg.Logging.Rotation.Daily {
		t.Error("Logging.Rotation.Daily = true, want false")
	}

	if cfg.Logging.Components["modrinth"] != "debug" {
		t.Errorf("Logging.Components[modrinth] = %q, want %q", cfg.Logging.Components["modrinth"], "debug")
	}

	if cfg.Logging.Components["cache"] != "warn" {
		t.Errorf("Logging.Components[cache] = %q, want %q", cfg.Logging.Components["cache"], "warn")
	}
}

func TestConfigDir(t *testing.T) {
	t.Run("uses XDG_CONFIG_HOME when set", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/custom/config")

		dir, err := ConfigDir()
		if err != nil {
			t.Fatalf("ConfigDir() error = %v", err)
		}

		expected := "/custom/config/mrpack"
		if dir != expected {
			t.Errorf("ConfigDir() = %q, want %q", dir, expected)
		}
	})

	t.Run("uses HOME/.config when XDG_CONFIG_HOME not set", func(t *testing.T) {
		tempDir := t.TempDir()
		t.Setenv("HOME", tempDir)
		t.Setenv("XDG_CONFIG_HOME", "")

		dir, err := ConfigDir()
		if err != nil {
			t.Fatalf("ConfigDir() error = %v", err)
		}

		expected := filepath.Join(tempDir, ".config", "mrpack")
		if dir != expected {
			t.Errorf("ConfigDir() = %q, want %q", dir, expected)
		}
	})
}

func TestEnsureConfigDir(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("XDG_CONFIG_HOME", "")

	if err := EnsureConfigDir(); err != nil {
		t.Fatalf("EnsureConfigDir() error = %v", err)
	}

	expectedDir := filepath.Join(tempDir, ".config", "mrpack")
	info, err := os.Stat(expectedDir)
	if err != nil {
		t.Fatalf("os.Stat(%q) error = %v", expectedDir, err)
	}

	if !info.IsDir() {
		t.Errorf("%q is not a directory", expectedDir)
	}
}

func TestWriteDefault(t *testing.T) {
	t.Run("creates default config file", func(t *testing.T) {
		tempDir := t.TempDir()
		t.Setenv("HOME", tempDir)
		t.Setenv("XDG_CONFIG_HOME", "")

		if err := WriteDefault(); err != nil {
			t.Fatalf("WriteDefault() error = %v", err)
		}

		configPath := filepath.Join(tempDir, ".config", "mrpack", "config.yaml")
		content, err := os.ReadFile(configPath)
		if err != nil {
			t.Fatalf("failed to read config file: %v", err)
		}

		if len(content) == 0 {
			t.Error("config file is empty")
		}
	})

	t.Run("does not overwrite existing config", func(t *testing.T) {
		tempDir := t.TempDir()
		t.Setenv("HOME", tempDir)
		t.Setenv("XDG_CONFIG_HOME", "")

		configDir := filepath.Join(tempDir, ".config", "mrpack")
		if err := os.MkdirAll(configDir, 0o755); err != nil {
			t.Fatalf("failed to create config dir: %v", err)
		}

		configPath := filepath.Join(configDir, "config.yaml")
		existingContent := "# existing config\noutput:\n  format: csv"
		if err := os.WriteFile(configPath, []byte(existingContent), 0o644); err != nil {
			t.Fatalf("failed to write existing config: %v", err)
		}

		if err := WriteDefault(); err != nil {
			t.Fatalf("WriteDefault() error = %v", err)
		}

		content, err := os.ReadFile(configPath)
		if err != nil {
			t.Fatalf("failed to read config file: %v", err)
		}

		if string(content) != existingContent {
			t.Errorf("config file was overwritten: got %q, want %q", string(content), existingContent)
		}
	})
}

func TestExpandPath(t *testing.T) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		t.Fatalf("failed to get home dir: %v", err)
	}

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "expands tilde",
			input: "~/packs/all.mrpack",
			want:  filepath.Join(homeDir, "packs/all.mrpack"),
		},
		{
			name:  "leaves absolute path unchanged",
			input: "/srv/packs/all.mrpack",
			want:  "/srv/packs/all.mrpack",
		},
		{
			name:  "leaves relative path unchanged",
			input: "packs/all.mrpack",
			want:  "packs/all.mrpack",
		},
		{
			name:  "handles tilde only",
			input: "~",
			want:  homeDir,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandPath(tt.input)
			if err != nil {
				t.Fatalf("ExpandPath(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ExpandPath(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestStateDir(t *testing.T) {
	// StateDir should return a path ending in /mrpack under the xdg
	// state home. Note: adrg/xdg caches values at init time, so we test
	// the structure rather than overriding environment variables.
	dir := StateDir()
	if !filepath.IsAbs(dir) {
		t.Errorf("StateDir() = %q, want absolute path", dir)
	}
	if filepath.Base(dir) != "mrpack" {
		t.Errorf("StateDir() = %q, want path ending in 'mrpack'", dir)
	}
}

func TestCacheDir(t *testing.T) {
	dir := CacheDir()
	if !filepath.IsAbs(dir) {
		t.Errorf("CacheDir() = %q, want absolute path", dir)
	}
	if filepath.Base(dir) != "mrpack" {
		t.Errorf("CacheDir() = %q, want path ending in 'mrpack'", dir)
	}
}

func TestDefaultCachePath(t *testing.T) {
	path := DefaultCachePath()
	if !filepath.IsAbs(path) {
		t.Errorf("DefaultCachePath() = %q, want absolute path", path)
	}
	if filepath.Base(path) != "registry" {
		t.Errorf("DefaultCachePath() = %q, want path ending in 'registry'", path)
	}
	if filepath.Dir(path) != CacheDir() {
		t.Errorf("DefaultCachePath() dir = %q, want %q", filepath.Dir(path), CacheDir())
	}
}

func TestDefaultLogPath(t *testing.T) {
	path := DefaultLogPath()
	if !filepath.IsAbs(path) {
		t.Errorf("DefaultLogPath() = %q, want absolute path", path)
	}
	if filepath.Base(path) != "mrpack.log" {
		t.Errorf("DefaultLogPath() = %q, want path ending in 'mrpack.log'", path)
	}
	if filepath.Dir(path) != StateDir() {
		t.Errorf("DefaultLogPath() dir = %q, want %q", filepath.Dir(path), StateDir())
	}
}
