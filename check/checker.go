// Package check implements the two-pass type checker: Pass 1 resolves every
// top-level type declaration into the root scope so forward references
// work; Pass 2 walks every node, dispatching on variant, declaring symbols
// and reporting diagnostics as it computes each node's resolved type.
package check

import (
	"github.com/theQuarky/tsppc/ast"
	"github.com/theQuarky/tsppc/members"
	"github.com/theQuarky/tsppc/report"
	"github.com/theQuarky/tsppc/scope"
	"github.com/theQuarky/tsppc/token"
	"github.com/theQuarky/tsppc/typing"
)

// Checker holds the mutable state threaded through both passes: the current
// scope chain position, the member-table registry Pass 1 populates, the
// diagnostic bag, and a few flags/stacks tracking control-flow context.
type Checker struct {
	root *scope.Scope
	cur  *scope.Scope
	reg  *members.Registry
	bag  *report.Bag

	funcReturnStack []*typing.Type
	loopDepth       int
	inTry           bool

	// genericConstraints maps an in-scope generic parameter name to the
	// constraint names (built-in or interface) it was declared with; consulted
	// by assignability so a generic body type-checks against its parameters'
	// declared capabilities without instantiating anything.
	genericConstraints map[string][]string
}

// New creates a checker with a fresh root scope and member registry.
func New() *Checker {
	root := scope.NewRoot()
	return &Checker{
		root:               root,
		cur:                root,
		reg:                members.NewRegistry(),
		bag:                report.NewBag(report.PhaseTypeck),
		genericConstraints: make(map[string][]string),
	}
}

// Check runs both passes over a parsed file.
func (c *Checker) Check(f *ast.File) {
	c.collectTypeDecls(f.Nodes, c.cur)
	for _, n := range f.Nodes {
		c.visitTopLevel(n)
	}
}

// Diagnostics returns every diagnostic recorded while checking.
func (c *Checker) Diagnostics() []report.Diagnostic { return c.bag.Diagnostics() }

// Success reports whether the checker completed without reporting any error.
func (c *Checker) Success() bool { return !c.bag.HasErrors() }

// Registry exposes the populated member-table registry, consulted by the
// lowerer for class layout and method name-qualification.
func (c *Checker) Registry() *members.Registry { return c.reg }

func (c *Checker) errorf(pos token.Position, cat report.Category, offset int, format string, args ...interface{}) {
	c.bag.Errorf(pos, cat, offset, format, args...)
}

func (c *Checker) warnf(pos token.Position, cat report.Category, offset int, format string, args ...interface{}) {
	c.bag.Warnf(pos, cat, offset, format, args...)
}

// isAssignable wraps typing.IsAssignableTo with the generic-parameter
// constraint rule of §4.7: a generic parameter's Named type is additionally
// assignable to any interface name it was declared to satisfy.
func (c *Checker) isAssignable(from, to *typing.Type) bool {
	if from.IsAssignableTo(to) {
		return true
	}
	if from.Kind() == typing.Named && to.Kind() == typing.Named {
		for _, constraint := range c.genericConstraints[from.Name()] {
			if constraint == to.Name() {
				return true
			}
		}
	}
	return false
}

func (c *Checker) pushScope()   { c.cur = c.cur.CreateChild() }
func (c *Checker) popScope()    { c.cur = c.cur.Exit() }
