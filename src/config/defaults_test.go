package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults_MissingFile(t *testing.T) {
	defs, err := LoadDefaults(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadDefaults() error = %v, want nil for a missing file", err)
	}
	if defs != (Defaults{}) {
		t.Errorf("LoadDefaults() = %+v, want zero defaults", defs)
	}
}

func TestLoadDefaults_EmptyPath(t *testing.T) {
	defs, err := LoadDefaults("")
	if err != nil {
		t.Fatalf("LoadDefaults(\"\") error = %v", err)
	}
	if defs != (Defaults{}) {
		t.Errorf("LoadDefaults(\"\") = %+v, want zero defaults", defs)
	}
}

func TestLoadDefaults_Valid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "buildrun.yaml")
	content := `workflowRef: release
artifactName: codex-bundle
outputDir: /tmp/artifacts
download: "no"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	defs, err := LoadDefaults(path)
	if err != nil {
		t.Fatalf("LoadDefaults() error = %v", err)
	}

	if defs.WorkflowRef != "release" {
		t.Errorf("WorkflowRef = %q, want %q", defs.WorkflowRef, "release")
	}
	if defs.ArtifactName != "codex-bundle" {
		t.Errorf("ArtifactName = %q, want %q", defs.ArtifactName, "codex-bundle")
	}
	if defs.OutputDir != "/tmp/artifacts" {
		t.Errorf("OutputDir = %q, want %q", defs.OutputDir, "/tmp/artifacts")
	}
	if defs.Download != "no" {
		t.Errorf("Download = %q, want %q", defs.Download, "no")
	}
}

func TestLoadDefaults_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "buildrun.yaml")
	if err := os.WriteFile(path, []byte("workflowRef: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadDefaults(path); err == nil {
		t.Error("LoadDefaults() error = nil, want parse error")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "test-token")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}
	if cfg.GitHubToken != "test-token" {
		t.Errorf("GitHubToken = %q, want %q", cfg.GitHubToken, "test-token")
	}
}

func TestLoadFromEnv_Missing(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "")

	if _, err := LoadFromEnv(); err == nil {
		t.Error("LoadFromEnv() error = nil, want error when token unset")
	}
}
