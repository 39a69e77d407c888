package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"GITHUB_USERNAME", "GITHUB_TOKEN", "GITHUB_OWNER",
		"GITHUB_REPO", "GITHUB_IGNORE_LABEL", "PORT",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestFromEnvDefaults(t *testing.T) {
	clearEnv(t)

	cfg := FromEnv()

	if cfg.Server.Addr != ":8080" {
		t.Errorf("Addr = %q, want :8080", cfg.Server.Addr)
	}
	if cfg.GitHub.IgnoreLabel != "pr_ignore" {
		t.Errorf("IgnoreLabel = %q, want pr_ignore", cfg.GitHub.IgnoreLabel)
	}
	if cfg.GitHub.Owner != "kelvintaywl" || cfg.GitHub.Repo != "pull_requests" {
		t.Errorf("default owner/repo = %s/%s", cfg.GitHub.Owner, cfg.GitHub.Repo)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("GITHUB_USERNAME", "octocat")
	t.Setenv("GITHUB_TOKEN", "s3cret")
	t.Setenv("GITHUB_IGNORE_LABEL", "skip_rules")
	t.Setenv("PORT", "9090")

	cfg := FromEnv()

	if cfg.GitHub.Username != "octocat" {
		t.Errorf("Username = %q, want octocat", cfg.GitHub.Username)
	}
	if cfg.GitHub.Token != "s3cret" {
		t.Errorf("Token = %q, want s3cret", cfg.GitHub.Token)
	}
	if cfg.GitHub.IgnoreLabel != "skip_rules" {
		t.Errorf("IgnoreLabel = %q, want skip_rules", cfg.GitHub.IgnoreLabel)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("Addr = %q, want :9090", cfg.Server.Addr)
	}
}

func TestLoadExpandsEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("TEST_PULLCHECK_TOKEN", "from-env")

	dir := t.TempDir()
	path := filepath.Join(dir, "pullcheck.yaml")
	content := `
github:
  username: octocat
  token: ${TEST_PULLCHECK_TOKEN}
  owner: someorg
  repo: somerepo
server:
  addr: ":3000"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.GitHub.Token != "from-env" {
		t.Errorf("Token = %q, want from-env", cfg.GitHub.Token)
	}
	if cfg.GitHub.Owner != "someorg" || cfg.GitHub.Repo != "somerepo" {
		t.Errorf("owner/repo = %s/%s", cfg.GitHub.Owner, cfg.GitHub.Repo)
	}
	if cfg.Server.Addr != ":3000" {
		t.Errorf("Addr = %q, want :3000", cfg.Server.Addr)
	}
	// Defaults still fill unset fields
	if cfg.GitHub.IgnoreLabel != "pr_ignore" {
		t.Errorf("IgnoreLabel = %q, want pr_ignore", cfg.GitHub.IgnoreLabel)
	}
}

func TestLoadEnvWinsOverFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("GITHUB_REPO", "env-repo")

	dir := t.TempDir()
	path := filepath.Join(dir, "pullcheck.yaml")
	content := "github:\n  repo: file-repo\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.GitHub.Repo != "env-repo" {
		t.Errorf("Repo = %q, want env-repo", cfg.GitHub.Repo)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load() expected error for missing file")
	}
}

func TestFindConfigPathExplicitMissing(t *testing.T) {
	if got := FindConfigPath(filepath.Join(t.TempDir(), "nope.yaml")); got != "" {
		t.Errorf("FindConfigPath() = %q, want empty", got)
	}
}
