package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	p := Default("app")
	if err := p.validate(); err != nil {
		t.Fatalf("Default() produced an invalid profile: %v", err)
	}
	if p.OptLevel != O2 {
		t.Errorf("OptLevel = %v, want O2", p.OptLevel)
	}
	if p.OutputFormat != FormatIRText {
		t.Errorf("OutputFormat = %v, want FormatIRText", p.OutputFormat)
	}
	if p.OutputPath() != "app.ll" {
		t.Errorf("OutputPath() = %q, want %q", p.OutputPath(), "app.ll")
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profile.toml")
	toml := `
optimization-level = "O0"
output-format = "OBJECT"
debug-info = true
`
	if err := os.WriteFile(path, []byte(toml), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	p, err := Load(path, "app")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if p.OptLevel != O0 {
		t.Errorf("OptLevel = %v, want O0", p.OptLevel)
	}
	if p.OutputFormat != FormatObject {
		t.Errorf("OutputFormat = %v, want FormatObject", p.OutputFormat)
	}
	if !p.DebugInfo {
		t.Error("DebugInfo = false, want true")
	}
	// Fields the overlay left untouched should keep Default's values.
	if p.TargetArch != ArchAuto {
		t.Errorf("TargetArch = %v, want ArchAuto (untouched by overlay)", p.TargetArch)
	}
	if p.OutputPath() != "app.o" {
		t.Errorf("OutputPath() = %q, want %q", p.OutputPath(), "app.o")
	}
}

func TestLoadRejectsUnknownEnumValue(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profile.toml")
	if err := os.WriteFile(path, []byte(`target-arch = "quantum"`), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if _, err := Load(path, "app"); err == nil {
		t.Fatal("expected Load() to reject an unrecognized target-arch")
	}
}

func TestLoadRejectsNonPositiveStackSize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profile.toml")
	if err := os.WriteFile(path, []byte(`stack-size = 0`), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if _, err := Load(path, "app"); err == nil {
		t.Fatal("expected Load() to reject a non-positive stack-size")
	}
}
