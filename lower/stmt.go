package lower

import (
	"regexp"
	"strings"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/value"

	"github.com/theQuarky/tsppc/ast"
)

func (l *Lowerer) lowerBlockNodes(nodes []ast.Node) {
	for _, n := range nodes {
		if l.block.Term != nil {
			return // unreachable code after a terminator
		}
		l.lowerStmt(n)
	}
}

func (l *Lowerer) lowerBlock(b *ast.Block) {
	l.pushScope()
	l.lowerBlockNodes(b.Nodes)
	l.popScope()
}

func (l *Lowerer) lowerStmt(n ast.Node) {
	switch s := n.(type) {
	case *ast.Block:
		l.lowerBlock(s)

	case *ast.ExprStmt:
		l.lowerExpr(s.X)

	case *ast.DeclStmt:
		if v, ok := s.Decl.(*ast.VarDecl); ok {
			l.lowerLocalVar(v)
		}

	case *ast.VarDecl:
		l.lowerLocalVar(s)

	case *ast.IfStmt:
		l.lowerIf(s)

	case *ast.WhileStmt:
		l.lowerWhile(s)

	case *ast.DoWhileStmt:
		l.lowerDoWhile(s)

	case *ast.ForStmt:
		l.lowerFor(s)

	case *ast.ForOfStmt:
		l.lowerForOf(s)

	case *ast.BreakStmt:
		if len(l.loops) > 0 {
			l.block.NewBr(l.loops[len(l.loops)-1].breakTarget)
		}

	case *ast.ContinueStmt:
		if len(l.loops) > 0 {
			l.block.NewBr(l.loops[len(l.loops)-1].continueTarget)
		}

	case *ast.ReturnStmt:
		if s.Value == nil {
			l.block.NewRet(nil)
			return
		}
		l.block.NewRet(l.lowerExpr(s.Value))

	case *ast.TryStmt:
		// no exception-unwinding model at this layer; try/catch/finally
		// lower as straight-line sequencing.
		l.lowerBlock(s.Try)
		if s.Catch != nil {
			l.lowerBlock(s.Catch)
		}
		if s.Finally != nil {
			l.lowerBlock(s.Finally)
		}

	case *ast.ThrowStmt:
		l.lowerExpr(s.Value)

	case *ast.SwitchStmt:
		l.lowerSwitch(s)

	case *ast.LabeledStmt:
		l.lowerStmt(s.Stmt)

	case *ast.InlineAsmStmt:
		l.lowerInlineAsm(s)
	}
}

func (l *Lowerer) lowerLocalVar(d *ast.VarDecl) {
	if d.Init == nil {
		t := l.typeFromAST(d.Type)
		slot := l.block.NewAlloca(t)
		l.block.NewStore(l.defaultValueFor(t), slot)
		l.define(d.Name, slot)
		l.defineClass(d.Name, classNameOfType(d.Type))
		return
	}

	val := l.lowerExpr(d.Init)
	slot := l.block.NewAlloca(val.Type())
	l.block.NewStore(val, slot)
	l.define(d.Name, slot)

	if d.Type != nil {
		l.defineClass(d.Name, classNameOfType(d.Type))
	} else if n, ok := d.Init.(*ast.NewExpr); ok {
		l.defineClass(d.Name, classNameOfType(n.Type))
	}
}

func (l *Lowerer) lowerIf(s *ast.IfStmt) {
	thenBlock := l.appendBlock()
	endBlock := l.appendBlock()
	var elseBlock *ir.Block
	if s.Else != nil {
		elseBlock = l.appendBlock()
	} else {
		elseBlock = endBlock
	}

	cond := l.lowerExpr(s.Cond)
	l.block.NewCondBr(cond, thenBlock, elseBlock)

	l.block = thenBlock
	l.lowerBlock(s.Then)
	if l.block.Term == nil {
		l.block.NewBr(endBlock)
	}

	if s.Else != nil {
		l.block = elseBlock
		l.lowerStmt(s.Else)
		if l.block.Term == nil {
			l.block.NewBr(endBlock)
		}
	}

	l.block = endBlock
}

func (l *Lowerer) lowerWhile(s *ast.WhileStmt) {
	headerBlock := l.appendBlock()
	bodyBlock := l.appendBlock()
	endBlock := l.appendBlock()

	l.block.NewBr(headerBlock)

	l.block = headerBlock
	cond := l.lowerExpr(s.Cond)
	l.block.NewCondBr(cond, bodyBlock, endBlock)

	l.block = bodyBlock
	l.loops = append(l.loops, loopRecord{continueTarget: headerBlock, breakTarget: endBlock})
	l.lowerBlock(s.Body)
	l.loops = l.loops[:len(l.loops)-1]
	if l.block.Term == nil {
		l.block.NewBr(headerBlock)
	}

	l.block = endBlock
}

func (l *Lowerer) lowerDoWhile(s *ast.DoWhileStmt) {
	bodyBlock := l.appendBlock()
	condBlock := l.appendBlock()
	endBlock := l.appendBlock()

	l.block.NewBr(bodyBlock)

	l.block = bodyBlock
	l.loops = append(l.loops, loopRecord{continueTarget: condBlock, breakTarget: endBlock})
	l.lowerBlock(s.Body)
	l.loops = l.loops[:len(l.loops)-1]
	if l.block.Term == nil {
		l.block.NewBr(condBlock)
	}

	l.block = condBlock
	cond := l.lowerExpr(s.Cond)
	l.block.NewCondBr(cond, bodyBlock, endBlock)

	l.block = endBlock
}

func (l *Lowerer) lowerFor(s *ast.ForStmt) {
	l.pushScope()
	if s.Init != nil {
		l.lowerStmt(s.Init)
	}

	headerBlock := l.appendBlock()
	bodyBlock := l.appendBlock()
	postBlock := l.appendBlock()
	endBlock := l.appendBlock()

	l.block.NewBr(headerBlock)

	l.block = headerBlock
	if s.Cond != nil {
		cond := l.lowerExpr(s.Cond)
		l.block.NewCondBr(cond, bodyBlock, endBlock)
	} else {
		l.block.NewBr(bodyBlock)
	}

	l.block = bodyBlock
	l.loops = append(l.loops, loopRecord{continueTarget: postBlock, breakTarget: endBlock})
	l.lowerBlockNodes(s.Body.Nodes)
	l.loops = l.loops[:len(l.loops)-1]
	if l.block.Term == nil {
		l.block.NewBr(postBlock)
	}

	l.block = postBlock
	if s.Post != nil {
		l.lowerExpr(s.Post)
	}
	if l.block.Term == nil {
		l.block.NewBr(headerBlock)
	}

	l.block = endBlock
	l.popScope()
}

// lowerForOf iterates a fixed-size array's backing pointer one element at a
// time starting at index zero; the bound is the element count of the
// iterable when it is itself an array literal, and zero (no iterations) for
// any other iterable, since arrays lower to bare element pointers with no
// runtime-carried length.
func (l *Lowerer) lowerForOf(s *ast.ForOfStmt) {
	arr := l.lowerExpr(s.Iterable)
	elemType := elemTypeOf(arr)

	count := arrayLiteralLen(s.Iterable)

	idxSlot := l.block.NewAlloca(i32())
	l.block.NewStore(intConst(0), idxSlot)

	headerBlock := l.appendBlock()
	bodyBlock := l.appendBlock()
	postBlock := l.appendBlock()
	endBlock := l.appendBlock()

	l.block.NewBr(headerBlock)

	l.block = headerBlock
	idx := l.block.NewLoad(i32(), idxSlot)
	cond := l.block.NewICmp(enum.IPredSLT, idx, intConst(int64(count)))
	l.block.NewCondBr(cond, bodyBlock, endBlock)

	l.block = bodyBlock
	l.pushScope()
	elemPtr := l.block.NewGetElementPtr(elemType, arr, idx)
	l.define(s.VarName, elemPtr)
	l.loops = append(l.loops, loopRecord{continueTarget: postBlock, breakTarget: endBlock})
	l.lowerBlockNodes(s.Body.Nodes)
	l.loops = l.loops[:len(l.loops)-1]
	l.popScope()
	if l.block.Term == nil {
		l.block.NewBr(postBlock)
	}

	l.block = postBlock
	idx2 := l.block.NewLoad(i32(), idxSlot)
	next := l.block.NewAdd(idx2, intConst(1))
	l.block.NewStore(next, idxSlot)
	if l.block.Term == nil {
		l.block.NewBr(headerBlock)
	}

	l.block = endBlock
}

func arrayLiteralLen(e ast.Expr) int {
	if lit, ok := e.(*ast.ArrayLiteral); ok {
		return len(lit.Elements)
	}
	return 0
}

func (l *Lowerer) lowerSwitch(s *ast.SwitchStmt) {
	scrut := l.lowerExpr(s.Scrutinee)
	endBlock := l.appendBlock()

	var defaultBlock *ir.Block
	caseBlocks := make([]*ir.Block, len(s.Cases))
	for i := range s.Cases {
		caseBlocks[i] = l.appendBlock()
	}

	current := l.block
	for i, cs := range s.Cases {
		if cs.IsDefault {
			defaultBlock = caseBlocks[i]
			continue
		}
		for _, v := range cs.Values {
			cv := l.lowerExpr(v)
			matched := current.NewICmp(enum.IPredEQ, scrut, cv)
			nextCheck := l.appendBlock()
			current.NewCondBr(matched, caseBlocks[i], nextCheck)
			current = nextCheck
		}
	}
	if defaultBlock != nil {
		current.NewBr(defaultBlock)
	} else {
		current.NewBr(endBlock)
	}

	for i, cs := range s.Cases {
		l.block = caseBlocks[i]
		l.pushScope()
		l.lowerBlockNodes(cs.Body)
		l.popScope()
		if l.block.Term == nil {
			l.block.NewBr(endBlock)
		}
	}

	l.block = endBlock
}

var printfPattern = regexp.MustCompile(`printf\s*\(\s*"((?:[^"\\]|\\.)*)"\s*\)`)

// lowerInlineAsm recognizes the printf("...") convenience pattern, parsed
// already if the front end filled in IsPrintf/Format, or matched here
// against the raw body otherwise; any other asm text is emitted as an
// opaque module-level assembly blob with no constraint string.
func (l *Lowerer) lowerInlineAsm(s *ast.InlineAsmStmt) {
	if s.IsPrintf {
		l.emitPrintfCall(s.Format, s.Args)
		return
	}
	if m := printfPattern.FindStringSubmatch(unquote(s.Body)); m != nil {
		l.emitPrintfCall(unescape(m[1]), s.Args)
		return
	}
	l.mod.ModuleAsms = append(l.mod.ModuleAsms, s.Body)
}

func (l *Lowerer) emitPrintfCall(format string, args []ast.Expr) {
	g := l.internString(format)
	fmtPtr := l.block.NewBitCast(g, ptrI8())

	callArgs := make([]value.Value, 0, len(args)+1)
	callArgs = append(callArgs, fmtPtr)
	for _, a := range args {
		callArgs = append(callArgs, l.lowerExpr(a))
	}

	l.block.NewCall(l.printfFn, callArgs...)
}

func (l *Lowerer) internString(s string) value.Value {
	name := l.tempName("$str.")
	return l.mod.NewGlobalDef(name, charArrayConst(s+"\x00"))
}

func unescape(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
			switch s[i] {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case '\\':
				b.WriteByte('\\')
			case '"':
				b.WriteByte('"')
			default:
				b.WriteByte(s[i])
			}
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
