package common

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func resetVersion(t *testing.T) {
	t.Helper()
	v, b, c := Version, Build, GitCommit
	Version, Build, GitCommit = "dev", "unknown", "unknown"
	t.Cleanup(func() { Version, Build, GitCommit = v, b, c })
}

func TestGetFullVersion(t *testing.T) {
	resetVersion(t)
	Version = "1.2.3"

	got := GetFullVersion()
	if !strings.HasPrefix(got, "1.2.3 (build: unknown") {
		t.Errorf("unexpected full version %q", got)
	}
	if GetVersion() != "1.2.3" || GetBuild() != "unknown" || GetGitCommit() != "unknown" {
		t.Error("getters disagree with version variables")
	}
}

func TestLoadVersionFile(t *testing.T) {
	resetVersion(t)
	path := filepath.Join(t.TempDir(), ".version")
	content := "# build info\nversion: 0.4.0\nbuild: 2026-01-02\ncommit: abc1234\nbogus line\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	loadVersionFile(path)

	if Version != "0.4.0" {
		t.Errorf("Version = %q", Version)
	}
	if Build != "2026-01-02" {
		t.Errorf("Build = %q", Build)
	}
	if GitCommit != "abc1234" {
		t.Errorf("GitCommit = %q", GitCommit)
	}
}

func TestLoadVersionFile_KeepsLdflagsValues(t *testing.T) {
	resetVersion(t)
	Version = "9.9.9"
	path := filepath.Join(t.TempDir(), ".version")
	os.WriteFile(path, []byte("version: 0.1.0\n"), 0o644)

	loadVersionFile(path)

	if Version != "9.9.9" {
		t.Errorf("explicit version overwritten: %q", Version)
	}
}

func TestLoadVersionFile_Missing(t *testing.T) {
	resetVersion(t)
	loadVersionFile(filepath.Join(t.TempDir(), "absent"))
	if Version != "dev" {
		t.Errorf("Version = %q", Version)
	}
}
