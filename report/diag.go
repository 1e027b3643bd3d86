// Package report collects and displays compiler diagnostics: phase-prefixed,
// numerically-categorized errors and warnings tied to source positions.
package report

import (
	"fmt"

	"github.com/theQuarky/tsppc/token"
)

// Phase identifies which pipeline stage raised a diagnostic.
type Phase string

const (
	PhaseSyntax  Phase = "PS" // parser/syntax
	PhaseTypeck  Phase = "TC" // type checker
	PhaseCodegen Phase = "CG" // IR lowerer
)

// Category is the numeric diagnostic category, per the reserved 1xxx-8xxx
// ranges.
type Category int

const (
	General      Category = 1000
	TypeCategory Category = 2000
	Expression   Category = 3000
	Function     Category = 4000
	Variable     Category = 5000
	Memory       Category = 6000
	IO           Category = 7000
	Optimization Category = 8000
)

// Severity distinguishes an error (which fails its phase) from a warning
// (which never does).
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

// Diagnostic is one reported compiler message.
type Diagnostic struct {
	Phase    Phase
	Code     int // category base + offset, e.g. 3001
	Severity Severity
	Pos      token.Position
	Message  string
}

// Code returns the diagnostic's phase-qualified code string, e.g. "CG3001".
func (d Diagnostic) Code_() string {
	return fmt.Sprintf("%s%d", d.Phase, d.Code)
}

func (d Diagnostic) String() string {
	label := "error"
	if d.Severity == SeverityWarning {
		label = "warning"
	}
	return fmt.Sprintf("%s: %s: %s: %s", d.Pos, d.Code_(), label, d.Message)
}

// Bag accumulates diagnostics for a single phase run.  It is the in-process
// analogue of the teacher's global Reporter, but scoped per phase so a
// caller running several phases can inspect each independently.
type Bag struct {
	phase Phase
	diags []Diagnostic
}

// NewBag creates an empty diagnostic bag for the given phase.
func NewBag(phase Phase) *Bag {
	return &Bag{phase: phase}
}

// Errorf records an error-severity diagnostic at pos in the given category,
// with offset added to the category's base code.
func (b *Bag) Errorf(pos token.Position, cat Category, offset int, format string, args ...interface{}) {
	b.diags = append(b.diags, Diagnostic{
		Phase:    b.phase,
		Code:     int(cat) + offset,
		Severity: SeverityError,
		Pos:      pos,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Warnf records a warning-severity diagnostic. Warnings never cause a phase
// to fail.
func (b *Bag) Warnf(pos token.Position, cat Category, offset int, format string, args ...interface{}) {
	b.diags = append(b.diags, Diagnostic{
		Phase:    b.phase,
		Code:     int(cat) + offset,
		Severity: SeverityWarning,
		Pos:      pos,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Diagnostics returns all recorded diagnostics in the order they were added.
func (b *Bag) Diagnostics() []Diagnostic {
	return b.diags
}

// HasErrors reports whether the bag has accumulated at least one
// error-severity diagnostic.  A phase's success is defined as !HasErrors().
func (b *Bag) HasErrors() bool {
	for _, d := range b.diags {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// ErrorCount and WarningCount tally diagnostics by severity, for the final
// compilation summary.
func (b *Bag) ErrorCount() int   { return count(b.diags, SeverityError) }
func (b *Bag) WarningCount() int { return count(b.diags, SeverityWarning) }

func count(diags []Diagnostic, sev Severity) int {
	n := 0
	for _, d := range diags {
		if d.Severity == sev {
			n++
		}
	}
	return n
}

// PanicError is the type recovered at a phase boundary: a diagnostic already
// reported via the bag before the panic was raised, used to abandon the
// current node's visit without losing the diagnostic.
type PanicError struct {
	Diagnostic Diagnostic
}

func (p *PanicError) Error() string { return p.Diagnostic.String() }

// RaisePanic reports a diagnostic into the bag and panics with it, for use
// inside a visit method that cannot otherwise unwind out of a deeply nested
// recursive call.  The caller's phase-boundary recover (see Recover) absorbs
// it silently, since the diagnostic was already recorded.
func (b *Bag) RaisePanic(pos token.Position, cat Category, offset int, format string, args ...interface{}) {
	b.Errorf(pos, cat, offset, format, args...)
	panic(&PanicError{Diagnostic: b.diags[len(b.diags)-1]})
}

// Recover must be deferred at the top of every per-node visit that calls
// RaisePanic transitively. It absorbs a *PanicError silently (already
// recorded) and re-panics on anything else, matching the teacher's
// CatchErrors boundary discipline.
func Recover() {
	if x := recover(); x != nil {
		if _, ok := x.(*PanicError); ok {
			return
		}
		panic(x)
	}
}
