package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingExplicitPathErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err == nil {
		t.Fatalf("Load with a missing explicit path should error")
	}
}

func TestLoadEmptyPathUsesBuiltInDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Rows != DefaultRows || cfg.Cols != DefaultCols {
		t.Errorf("cfg dims = %dx%d, want defaults %dx%d", cfg.Rows, cfg.Cols, DefaultRows, DefaultCols)
	}
	if cfg.MaxScrollback != DefaultMaxScrollback {
		t.Errorf("cfg.MaxScrollback = %d, want %d", cfg.MaxScrollback, DefaultMaxScrollback)
	}
}

func TestLoadExplicitFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := "rows = 40\ncols = 120\nshell = \"/bin/zsh\"\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Rows != 40 || cfg.Cols != 120 {
		t.Errorf("cfg dims = %dx%d, want 40x120", cfg.Rows, cfg.Cols)
	}
	if cfg.Shell != "/bin/zsh" {
		t.Errorf("cfg.Shell = %q, want /bin/zsh", cfg.Shell)
	}
	// Fields left unset in the file keep their built-in defaults.
	if cfg.TermEnv != DefaultTermEnv {
		t.Errorf("cfg.TermEnv = %q, want default %q", cfg.TermEnv, DefaultTermEnv)
	}
}

func TestDefaultConfigPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	path, err := DefaultConfigPath()
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(home, ".config", "termcore", "config.toml")
	if path != want {
		t.Errorf("DefaultConfigPath() = %q, want %q", path, want)
	}
}
