package check

import (
	"github.com/theQuarky/tsppc/ast"
	"github.com/theQuarky/tsppc/report"
	"github.com/theQuarky/tsppc/token"
	"github.com/theQuarky/tsppc/typing"
)

// visitBlockNodes checks a node sequence in the current scope without
// creating a new child scope itself; callers that need a fresh lexical
// scope (blocks, for-loop headers, switch cases) push/pop around the call.
func (c *Checker) visitBlockNodes(nodes []ast.Node) {
	for _, n := range nodes {
		c.visitStmt(n)
	}
}

func (c *Checker) visitBlock(b *ast.Block) {
	c.pushScope()
	c.visitBlockNodes(b.Nodes)
	c.popScope()
}

func (c *Checker) visitStmt(n ast.Node) {
	switch s := n.(type) {
	case *ast.Block:
		c.visitBlock(s)

	case *ast.ExprStmt:
		c.visitExpr(s.X)

	case *ast.DeclStmt:
		if v, ok := s.Decl.(*ast.VarDecl); ok {
			c.visitVarDecl(v)
		}

	case *ast.VarDecl:
		c.visitVarDecl(s)

	case *ast.IfStmt:
		cond := c.visitExpr(s.Cond)
		c.requireBoolConvertible(cond, s.Span().Start, "if condition")
		c.visitBlock(s.Then)
		if s.Else != nil {
			c.visitStmt(s.Else)
		}

	case *ast.WhileStmt:
		cond := c.visitExpr(s.Cond)
		c.requireBoolConvertible(cond, s.Span().Start, "while condition")
		c.loopDepth++
		c.visitBlock(s.Body)
		c.loopDepth--

	case *ast.DoWhileStmt:
		c.loopDepth++
		c.visitBlock(s.Body)
		c.loopDepth--
		cond := c.visitExpr(s.Cond)
		c.requireBoolConvertible(cond, s.Span().Start, "do-while condition")

	case *ast.ForStmt:
		c.pushScope()
		if s.Init != nil {
			c.visitStmt(s.Init)
		}
		if s.Cond != nil {
			cond := c.visitExpr(s.Cond)
			c.requireBoolConvertible(cond, s.Span().Start, "for condition")
		}
		if s.Post != nil {
			c.visitExpr(s.Post)
		}
		c.loopDepth++
		c.visitBlockNodes(s.Body.Nodes)
		c.loopDepth--
		c.popScope()

	case *ast.ForOfStmt:
		iter := c.visitExpr(s.Iterable)
		var elem *typing.Type
		if iter.Kind() == typing.Array {
			elem = iter.Elem()
		} else {
			c.warnf(s.Span().Start, report.Expression, 1, "for-of iterable is not an array type (%s)", iter)
			elem = typing.NewError()
		}
		if s.VarType != nil {
			declared := c.resolveType(s.VarType)
			if !c.isAssignable(elem, declared) {
				c.errorf(s.Span().Start, report.Variable, 5,
					"for-of binding %q of type %s cannot hold element type %s", s.VarName, declared, elem)
			}
			elem = declared
		}
		c.pushScope()
		c.cur.DeclareVariable(s.VarName, elem)
		c.loopDepth++
		c.visitBlockNodes(s.Body.Nodes)
		c.loopDepth--
		c.popScope()

	case *ast.BreakStmt:
		if c.loopDepth == 0 {
			c.errorf(s.Span().Start, report.Expression, 20, "break outside of a loop")
		}

	case *ast.ContinueStmt:
		if c.loopDepth == 0 {
			c.errorf(s.Span().Start, report.General, 3, "continue outside of a loop")
		}

	case *ast.ReturnStmt:
		if len(c.funcReturnStack) == 0 {
			c.errorf(s.Span().Start, report.Function, 1, "return outside of a function")
			if s.Value != nil {
				c.visitExpr(s.Value)
			}
			return
		}
		want := c.funcReturnStack[len(c.funcReturnStack)-1]
		if s.Value == nil {
			if want.Kind() != typing.Void && want.Kind() != typing.Error {
				c.errorf(s.Span().Start, report.Function, 2, "missing return value, expected %s", want)
			}
			return
		}
		got := c.visitExpr(s.Value)
		if !c.isAssignable(got, want) {
			c.errorf(s.Span().Start, report.Function, 3, "cannot return value of type %s, expected %s", got, want)
		}

	case *ast.TryStmt:
		prevInTry := c.inTry
		c.inTry = true
		c.visitBlock(s.Try)
		c.inTry = prevInTry
		if s.Catch != nil {
			c.pushScope()
			if s.CatchName != "" {
				ct := typing.NewError()
				if s.CatchType != nil {
					ct = c.resolveType(s.CatchType)
				}
				c.cur.DeclareVariable(s.CatchName, ct)
			}
			c.visitBlockNodes(s.Catch.Nodes)
			c.popScope()
		}
		if s.Finally != nil {
			c.visitBlock(s.Finally)
		}

	case *ast.ThrowStmt:
		c.visitExpr(s.Value)

	case *ast.SwitchStmt:
		scrut := c.visitExpr(s.Scrutinee)
		for _, cs := range s.Cases {
			for _, v := range cs.Values {
				vt := c.visitExpr(v)
				if !c.isAssignable(vt, scrut) {
					c.errorf(s.Span().Start, report.Expression, 2,
						"case value of type %s is not assignable to scrutinee type %s", vt, scrut)
				}
			}
			c.pushScope()
			c.visitBlockNodes(cs.Body)
			c.popScope()
		}

	case *ast.LabeledStmt:
		c.visitStmt(s.Stmt)

	case *ast.InlineAsmStmt:
		for _, a := range s.Args {
			c.visitExpr(a)
		}
	}
}

func (c *Checker) requireBoolConvertible(t *typing.Type, pos token.Position, context string) {
	if !t.IsBoolConvertible() {
		c.errorf(pos, report.Expression, 3, "%s must be bool-convertible, got %s", context, t)
	}
}
