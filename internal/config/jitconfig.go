package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// JITConfig is the top-level lazyjit.yaml configuration: where to find
// classes, how much materialization concurrency to allow, and where the
// persisted stub cache (internal/stubstore) lives.
type JITConfig struct {
	// ClassPath lists directories and jar-like archives the ClassLoader
	// collaborator searches, in order, for a class not yet loaded.
	ClassPath []string `yaml:"class_path"`

	// MaterializationWorkers is the configured number of concurrent stub
	// materializations; 0 means DefaultMaterializationWorkers. It is
	// validated and defaulted here; no package applies it as a cap.
	MaterializationWorkers int `yaml:"materialization_workers,omitempty"`

	// StubCachePath is the sqlite database internal/stubstore opens for
	// the persisted materialization cache; empty means
	// DefaultStubCachePath.
	StubCachePath string `yaml:"stub_cache_path,omitempty"`

	// CodegenAddr is the gRPC address internal/codegenrpc dials for the
	// native code-generation backend.
	CodegenAddr string `yaml:"codegen_addr,omitempty"`
}

// LoadJITConfig reads and parses a lazyjit.yaml file at path.
func LoadJITConfig(path string) (*JITConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseJITConfig(data, path)
}

// ParseJITConfig parses lazyjit.yaml content from bytes. path is used
// only for error messages.
func ParseJITConfig(data []byte, path string) (*JITConfig, error) {
	var cfg JITConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	cfg.setDefaults()
	return &cfg, nil
}

// FindJITConfig searches for lazyjit.yaml starting from dir and walking
// up to parent directories.
func FindJITConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, DefaultConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func (c *JITConfig) validate(path string) error {
	if len(c.ClassPath) == 0 {
		return fmt.Errorf("%s: class_path must list at least one entry", path)
	}
	if c.MaterializationWorkers < 0 {
		return fmt.Errorf("%s: materialization_workers must not be negative", path)
	}
	return nil
}

func (c *JITConfig) setDefaults() {
	if c.MaterializationWorkers == 0 {
		c.MaterializationWorkers = DefaultMaterializationWorkers
	}
	if c.StubCachePath == "" {
		c.StubCachePath = DefaultStubCachePath
	}
}
