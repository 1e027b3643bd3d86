// Package cmd is the top-level driver for the tsppc compiler: argument
// parsing, build-profile loading, and phase orchestration (lex, parse,
// check, lower, write).
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/theQuarky/tsppc/check"
	"github.com/theQuarky/tsppc/config"
	"github.com/theQuarky/tsppc/lexer"
	"github.com/theQuarky/tsppc/lower"
	"github.com/theQuarky/tsppc/parser"
	"github.com/theQuarky/tsppc/report"
	"github.com/theQuarky/tsppc/token"
)

// Compiler holds the state of one compilation run.
type Compiler struct {
	args    *Args
	profile *config.Profile

	errorCount   int
	warningCount int
}

// NewCompiler builds a Compiler from parsed CLI arguments, loading the
// build profile if one was given.
func NewCompiler(args *Args) (*Compiler, error) {
	moduleName := moduleNameFromPath(args.InputPath)

	var profile *config.Profile
	if args.ProfilePath != "" {
		p, err := config.Load(args.ProfilePath, moduleName)
		if err != nil {
			return nil, err
		}
		profile = p
	} else {
		profile = config.Default(moduleName)
	}
	if args.OutputPath != "" {
		profile.OutputFilename = args.OutputPath
	}
	if args.Debug {
		profile.DebugInfo = true
	}

	return &Compiler{args: args, profile: profile}, nil
}

func moduleNameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Run executes the full pipeline: lex, parse, check, lower, write. It
// returns true iff no phase reported an error; later phases still run on
// an earlier phase's failure, per the driver's advisory-continuation rule,
// except that lowering is skipped when checking failed (its output would
// be meaningless without a resolved member registry).
func (c *Compiler) Run() bool {
	report.Header(c.profile.ModuleName, string(c.profile.TargetArch))

	src, err := os.Open(c.args.InputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "unable to open `%s`: %s\n", c.args.InputPath, err)
		return false
	}
	defer src.Close()

	report.BeginPhase("Lexing")
	toks, lexOK := c.lex(src)
	report.EndPhase(lexOK)

	report.BeginPhase("Parsing")
	p := parser.New(c.args.InputPath, toks)
	file := p.Parse()
	c.tally(p.Diagnostics())
	report.EndPhase(p.Success())
	printEach(p.Diagnostics())

	report.BeginPhase("Checking")
	chk := check.New()
	chk.Check(file)
	c.tally(chk.Diagnostics())
	report.EndPhase(chk.Success())
	printEach(chk.Diagnostics())

	success := lexOK && p.Success() && chk.Success()
	if !chk.Success() {
		report.Summary(success, c.errorCount, c.warningCount)
		return success
	}

	report.BeginPhase("Lowering")
	low := lower.New(chk.Registry())
	low.Lower(file)
	c.tally(low.Diagnostics())
	report.EndPhase(low.Success())
	printEach(low.Diagnostics())

	success = success && low.Success()

	report.BeginPhase("Writing")
	writeOK := c.writeIR(low)
	report.EndPhase(writeOK)

	report.Summary(success && writeOK, c.errorCount, c.warningCount)
	return success && writeOK
}

func (c *Compiler) lex(src *os.File) ([]token.Token, bool) {
	toks, err := lexer.All(c.args.InputPath, src)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		c.errorCount++
		return toks, false
	}
	return toks, true
}

func printEach(diags []report.Diagnostic) {
	for _, d := range diags {
		report.Print(d)
	}
}

func (c *Compiler) tally(diags []report.Diagnostic) {
	for _, d := range diags {
		if d.Severity == report.SeverityWarning {
			c.warningCount++
		} else {
			c.errorCount++
		}
	}
}

func (c *Compiler) writeIR(low *lower.Lowerer) bool {
	out := c.profile.OutputPath()
	f, err := os.Create(out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "unable to write `%s`: %s\n", out, err)
		return false
	}
	defer f.Close()

	if _, err := f.WriteString(low.Module().String()); err != nil {
		fmt.Fprintf(os.Stderr, "unable to write `%s`: %s\n", out, err)
		return false
	}
	return true
}
