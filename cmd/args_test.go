package cmd

import "testing"

func TestParseArgsInputOnly(t *testing.T) {
	a := ParseArgs([]string{"main.tspp"})
	if a.InputPath != "main.tspp" {
		t.Errorf("InputPath = %q, want %q", a.InputPath, "main.tspp")
	}
	if a.OutputPath != "" || a.ProfilePath != "" || a.Debug {
		t.Errorf("expected all optional fields to stay zero-valued, got %+v", a)
	}
}

func TestParseArgsOptions(t *testing.T) {
	a := ParseArgs([]string{"-o", "out.ll", "--profile", "build.toml", "-d", "main.tspp"})
	if a.OutputPath != "out.ll" {
		t.Errorf("OutputPath = %q, want %q", a.OutputPath, "out.ll")
	}
	if a.ProfilePath != "build.toml" {
		t.Errorf("ProfilePath = %q, want %q", a.ProfilePath, "build.toml")
	}
	if !a.Debug {
		t.Error("Debug = false, want true")
	}
	if a.InputPath != "main.tspp" {
		t.Errorf("InputPath = %q, want %q", a.InputPath, "main.tspp")
	}
}

func TestParseArgsLongOptionSpellings(t *testing.T) {
	a := ParseArgs([]string{"--outpath", "x.ll", "main.tspp"})
	if a.OutputPath != "x.ll" {
		t.Errorf("OutputPath = %q, want %q", a.OutputPath, "x.ll")
	}
}
