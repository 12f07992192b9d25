package models

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Manifest describes a batch import: a set of statement files and the
// accounts their transactions belong to.
type Manifest struct {
	Statements []Statement `yaml:"statements"`
}

// Statement is a single statement file to be imported.
type Statement struct {
	FilePath  string `yaml:"file"`
	AccountID string `yaml:"account_id"`
	// ContentType optionally overrides format detection when the file
	// extension is misleading.
	ContentType string `yaml:"content_type,omitempty"`
}

// File returns the absolute path to the statement file, expanding ~.
func (s *Statement) File() (string, error) {
	if strings.HasPrefix(s.FilePath, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, s.FilePath[2:]), nil
	}
	return s.FilePath, nil
}

// ManifestFromFile reads a manifest from a YAML file.
func ManifestFromFile(filePath string) (*Manifest, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, err
	}

	if len(manifest.Statements) == 0 {
		return nil, fmt.Errorf("manifest %s contains no statements", filePath)
	}

	return &manifest, nil
}
