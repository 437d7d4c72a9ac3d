package config

import "testing"

func TestParseJITConfig_ValidMinimal(t *testing.T) {
	yaml := `
class_path:
  - /opt/rt.jar
  - ./build/classes
`
	cfg, err := ParseJITConfig([]byte(yaml), "test.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.ClassPath) != 2 {
		t.Fatalf("ClassPath = %v, want 2 entries", cfg.ClassPath)
	}
	if cfg.MaterializationWorkers != DefaultMaterializationWorkers {
		t.Errorf("MaterializationWorkers = %d, want default %d", cfg.MaterializationWorkers, DefaultMaterializationWorkers)
	}
	if cfg.StubCachePath != DefaultStubCachePath {
		t.Errorf("StubCachePath = %q, want default %q", cfg.StubCachePath, DefaultStubCachePath)
	}
}

func TestParseJITConfig_ExplicitOverrides(t *testing.T) {
	yaml := `
class_path: ["/opt/rt.jar"]
materialization_workers: 32
stub_cache_path: /tmp/cache.db
codegen_addr: localhost:9090
`
	cfg, err := ParseJITConfig([]byte(yaml), "test.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MaterializationWorkers != 32 {
		t.Errorf("MaterializationWorkers = %d, want 32", cfg.MaterializationWorkers)
	}
	if cfg.StubCachePath != "/tmp/cache.db" {
		t.Errorf("StubCachePath = %q, want /tmp/cache.db", cfg.StubCachePath)
	}
	if cfg.CodegenAddr != "localhost:9090" {
		t.Errorf("CodegenAddr = %q, want localhost:9090", cfg.CodegenAddr)
	}
}

func TestParseJITConfig_EmptyClassPathRejected(t *testing.T) {
	if _, err := ParseJITConfig([]byte(`class_path: []`), "test.yaml"); err == nil {
		t.Fatal("expected an error for empty class_path")
	}
}

func TestParseJITConfig_NegativeWorkersRejected(t *testing.T) {
	yaml := `
class_path: ["/opt/rt.jar"]
materialization_workers: -1
`
	if _, err := ParseJITConfig([]byte(yaml), "test.yaml"); err == nil {
		t.Fatal("expected an error for negative materialization_workers")
	}
}

func TestFindJITConfig_NotFound(t *testing.T) {
	dir := t.TempDir()
	path, err := FindJITConfig(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != "" {
		t.Errorf("path = %q, want empty", path)
	}
}
