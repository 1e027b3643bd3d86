// Package config loads the TOML build profile that drives the lowering
// pipeline's output options, grounded on the teacher's module-file loader.
package config

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"
)

// OptimizationLevel is one of the recognized backend optimization tiers.
type OptimizationLevel string

const (
	O0 OptimizationLevel = "O0"
	O1 OptimizationLevel = "O1"
	O2 OptimizationLevel = "O2"
	O3 OptimizationLevel = "O3"
	Os OptimizationLevel = "Os"
	Oz OptimizationLevel = "Oz"
)

// TargetArch is one of the recognized backend target architectures.
type TargetArch string

const (
	ArchX86    TargetArch = "x86"
	ArchX86_64 TargetArch = "x86_64"
	ArchARM    TargetArch = "arm"
	ArchARM64  TargetArch = "aarch64"
	ArchWasm   TargetArch = "wasm"
	ArchAuto   TargetArch = "auto"
)

// OutputFormat selects how the emitted module is serialized.
type OutputFormat string

const (
	FormatIRText   OutputFormat = "IR_TEXT"
	FormatBitcode  OutputFormat = "IR_BITCODE"
	FormatAssembly OutputFormat = "ASSEMBLY"
	FormatObject   OutputFormat = "OBJECT"
	FormatExecutable OutputFormat = "EXECUTABLE"
)

var formatExtensions = map[OutputFormat]string{
	FormatIRText:     ".ll",
	FormatBitcode:    ".bc",
	FormatAssembly:   ".s",
	FormatObject:     ".o",
	FormatExecutable: "",
}

// Profile is the deserialized build profile, corresponding to the
// recognized lowering options.
type Profile struct {
	ModuleName     string       `toml:"module-name"`
	OptLevel       OptimizationLevel `toml:"optimization-level"`
	TargetArch     TargetArch   `toml:"target-arch"`
	OutputFormat   OutputFormat `toml:"output-format"`
	OutputFilename string       `toml:"output-filename"`
	DebugInfo      bool         `toml:"debug-info"`
	PIC            bool         `toml:"pic"`
	SIMD           bool         `toml:"simd"`
	FastMath       bool         `toml:"fast-math"`
	StackSize      int          `toml:"stack-size"`
	TargetOptions  []string     `toml:"target-options"`
}

// Default returns the profile used when no profile file is given: O2,
// host-detected target, textual IR output, and an 8 MiB stack.
func Default(moduleName string) *Profile {
	return &Profile{
		ModuleName:     moduleName,
		OptLevel:       O2,
		TargetArch:     ArchAuto,
		OutputFormat:   FormatIRText,
		OutputFilename: moduleName,
		StackSize:      8 * 1024 * 1024,
	}
}

// Load reads and validates a TOML build profile at path, filling in any
// field a Default profile for moduleName would have set but the file
// leaves zero-valued.
func Load(path, moduleName string) (*Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open build profile at `%s`: %w", path, err)
	}
	defer f.Close()

	buf, err := ioutil.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("error reading build profile at `%s`: %w", path, err)
	}

	p := Default(moduleName)
	if err := toml.Unmarshal(buf, p); err != nil {
		return nil, fmt.Errorf("error parsing build profile at `%s`: %w", path, err)
	}

	return p, p.validate()
}

func (p *Profile) validate() error {
	switch p.OptLevel {
	case O0, O1, O2, O3, Os, Oz:
	default:
		return fmt.Errorf("unrecognized optimization level %q", p.OptLevel)
	}
	switch p.TargetArch {
	case ArchX86, ArchX86_64, ArchARM, ArchARM64, ArchWasm, ArchAuto:
	default:
		return fmt.Errorf("unrecognized target architecture %q", p.TargetArch)
	}
	if _, ok := formatExtensions[p.OutputFormat]; !ok {
		return fmt.Errorf("unrecognized output format %q", p.OutputFormat)
	}
	if p.StackSize <= 0 {
		return fmt.Errorf("stack-size must be positive, got %d", p.StackSize)
	}
	return nil
}

// OutputPath rewrites OutputFilename's extension to match OutputFormat.
func (p *Profile) OutputPath() string {
	ext := formatExtensions[p.OutputFormat]
	base := p.OutputFilename
	if cur := filepath.Ext(base); cur != "" {
		base = base[:len(base)-len(cur)]
	}
	return base + ext
}
