package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Defaults are per-user presets loaded from a YAML file. Every field is
// optional; flag values always win. Boolean fields stay strings so the
// same permissive literal set applies as on the command line.
type Defaults struct {
	WorkflowRef     string `yaml:"workflowRef"`
	ArtifactName    string `yaml:"artifactName"`
	BuildScript     string `yaml:"buildScript"`
	ArtifactPath    string `yaml:"artifactPath"`
	OutputDir       string `yaml:"outputDir"`
	Download        string `yaml:"download"`
	DeleteArtifacts string `yaml:"deleteArtifacts"`
}

// DefaultsPath returns the default location of the defaults file.
func DefaultsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".buildrun.yaml")
}

// LoadDefaults reads the defaults file at path. A missing file yields zero
// defaults; a file that exists but does not parse is an error.
func LoadDefaults(path string) (Defaults, error) {
	var defs Defaults
	if path == "" {
		return defs, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defs, nil
		}
		return defs, fmt.Errorf("reading defaults file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &defs); err != nil {
		return defs, fmt.Errorf("parsing defaults file %s: %w", path, err)
	}
	return defs, nil
}
