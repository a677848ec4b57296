package visitors

import (
	"fmt"

	"github.com/naolduga/mvir/pkg/ast"
)

// SpanChecker walks an AST and verifies the span invariants: every span
// is well-formed (begin <= end) and every node's span is contained in
// its nearest spanned ancestor. Synthesized nodes with a zero span are
// exempt and check their children against the enclosing span instead.
type SpanChecker struct {
	ast.BaseVisitor

	stack  []ast.Span
	Errors []error
}

// NewSpanChecker creates a new span checker
func NewSpanChecker() *SpanChecker {
	return &SpanChecker{}
}

// Check runs the checker over a node and returns the accumulated
// violations.
func (c *SpanChecker) Check(node ast.ASTNode) []error {
	node.Accept(c)
	return c.Errors
}

// enter validates a node's span against the enclosing one and makes it
// the new enclosing span. Every enter is paired with a leave.
func (c *SpanChecker) enter(kind string, span ast.Span) {
	if span.End < span.Start {
		c.Errors = append(c.Errors, fmt.Errorf("%s has inverted span %s", kind, span))
	}
	if span.IsZero() {
		// synthesized node: children still check against the enclosing span
		if len(c.stack) > 0 {
			span = c.stack[len(c.stack)-1]
		}
		c.stack = append(c.stack, span)
		return
	}
	if len(c.stack) > 0 {
		parent := c.stack[len(c.stack)-1]
		if !parent.IsZero() && !parent.Contains(span) {
			c.Errors = append(c.Errors, fmt.Errorf("%s span %s escapes enclosing span %s", kind, span, parent))
		}
	}
	c.stack = append(c.stack, span)
}

func (c *SpanChecker) leave() {
	c.stack = c.stack[:len(c.stack)-1]
}

// VisitProgram checks a program
func (c *SpanChecker) VisitProgram(node *ast.Program) interface{} {
	for _, m := range node.Modules {
		m.Accept(c)
	}
	if node.Script != nil {
		node.Script.Accept(c)
	}
	return nil
}

// VisitScript checks a script
func (c *SpanChecker) VisitScript(node *ast.Script) interface{} {
	c.enter("script", node.Span)
	for _, imp := range node.Imports {
		imp.Accept(c)
	}
	if node.Main != nil {
		node.Main.Accept(c)
	}
	c.leave()
	return nil
}

// VisitModule checks a module
func (c *SpanChecker) VisitModule(node *ast.Module) interface{} {
	c.enter("module", node.Span)
	for _, imp := range node.Imports {
		imp.Accept(c)
	}
	for _, s := range node.Structs {
		s.Accept(c)
	}
	for _, f := range node.Functions {
		f.Accept(c)
	}
	c.leave()
	return nil
}

// VisitImportDefinition checks an import
func (c *SpanChecker) VisitImportDefinition(node *ast.ImportDefinition) interface{} {
	c.enter("import", node.Span)
	if node.Ident != nil {
		node.Ident.Accept(c)
	}
	c.leave()
	return nil
}

// VisitQualifiedModuleIdent checks a qualified module ident
func (c *SpanChecker) VisitQualifiedModuleIdent(node *ast.QualifiedModuleIdent) interface{} {
	c.enter("module ident", node.Span)
	c.leave()
	return nil
}

// VisitTransactionModuleIdent checks a transaction module ident
func (c *SpanChecker) VisitTransactionModuleIdent(node *ast.TransactionModuleIdent) interface{} {
	c.enter("module ident", node.Span)
	c.leave()
	return nil
}

// VisitStructDefinition checks a struct definition
func (c *SpanChecker) VisitStructDefinition(node *ast.StructDefinition) interface{} {
	c.enter("struct", node.Span)
	for _, f := range node.Fields {
		c.field(f.Field)
		if f.Type != nil {
			f.Type.Accept(c)
		}
	}
	c.leave()
	return nil
}

// VisitFunction checks a function
func (c *SpanChecker) VisitFunction(node *ast.Function) interface{} {
	c.enter("function", node.Span)
	for _, a := range node.Args {
		if a.Type != nil {
			a.Type.Accept(c)
		}
	}
	for _, r := range node.ReturnTypes {
		r.Accept(c)
	}
	for _, l := range node.Locals {
		c.enter("let declaration", l.Span)
		if l.Type != nil {
			l.Type.Accept(c)
		}
		c.leave()
	}
	if node.Code != nil {
		node.Code.Accept(c)
	}
	c.leave()
	return nil
}

func (c *SpanChecker) field(f ast.Field) {
	c.enter("field", f.Span)
	c.leave()
}

// VisitPrimitiveType checks a primitive type
func (c *SpanChecker) VisitPrimitiveType(node *ast.PrimitiveType) interface{} {
	c.enter("type", node.Span)
	c.leave()
	return nil
}

// VisitReferenceType checks a reference type
func (c *SpanChecker) VisitReferenceType(node *ast.ReferenceType) interface{} {
	c.enter("type", node.Span)
	if node.To != nil {
		node.To.Accept(c)
	}
	c.leave()
	return nil
}

// VisitStructType checks a struct type
func (c *SpanChecker) VisitStructType(node *ast.StructType) interface{} {
	c.enter("type", node.Span)
	for _, t := range node.TypeActuals {
		t.Accept(c)
	}
	c.leave()
	return nil
}

// VisitTypeParam checks a type parameter
func (c *SpanChecker) VisitTypeParam(node *ast.TypeParam) interface{} {
	c.enter("type", node.Span)
	c.leave()
	return nil
}

// VisitValueExp checks a literal
func (c *SpanChecker) VisitValueExp(node *ast.ValueExp) interface{} {
	c.enter("literal", node.Span)
	c.leave()
	return nil
}

// VisitMoveExp checks a move
func (c *SpanChecker) VisitMoveExp(node *ast.MoveExp) interface{} {
	c.enter("move", node.Span)
	c.leave()
	return nil
}

// VisitCopyExp checks a copy
func (c *SpanChecker) VisitCopyExp(node *ast.CopyExp) interface{} {
	c.enter("copy", node.Span)
	c.leave()
	return nil
}

// VisitBorrowLocalExp checks a local borrow
func (c *SpanChecker) VisitBorrowLocalExp(node *ast.BorrowLocalExp) interface{} {
	c.enter("borrow", node.Span)
	c.leave()
	return nil
}

// VisitBorrowExp checks a field borrow
func (c *SpanChecker) VisitBorrowExp(node *ast.BorrowExp) interface{} {
	c.enter("borrow", node.Span)
	if node.Exp != nil {
		node.Exp.Accept(c)
	}
	c.field(node.Field)
	c.leave()
	return nil
}

// VisitDereferenceExp checks a dereference
func (c *SpanChecker) VisitDereferenceExp(node *ast.DereferenceExp) interface{} {
	c.enter("dereference", node.Span)
	if node.Exp != nil {
		node.Exp.Accept(c)
	}
	c.leave()
	return nil
}

// VisitUnaryExp checks a unary expression
func (c *SpanChecker) VisitUnaryExp(node *ast.UnaryExp) interface{} {
	c.enter("unary expression", node.Span)
	if node.Exp != nil {
		node.Exp.Accept(c)
	}
	c.leave()
	return nil
}

// VisitBinopExp checks a binary expression
func (c *SpanChecker) VisitBinopExp(node *ast.BinopExp) interface{} {
	c.enter("binary expression", node.Span)
	if node.Left != nil {
		node.Left.Accept(c)
	}
	if node.Right != nil {
		node.Right.Accept(c)
	}
	c.leave()
	return nil
}

// VisitPackExp checks a pack expression
func (c *SpanChecker) VisitPackExp(node *ast.PackExp) interface{} {
	c.enter("pack", node.Span)
	for _, t := range node.TypeActuals {
		t.Accept(c)
	}
	for _, f := range node.Fields {
		c.field(f.Field)
		if f.Exp != nil {
			f.Exp.Accept(c)
		}
	}
	c.leave()
	return nil
}

// VisitCallExp checks a call
func (c *SpanChecker) VisitCallExp(node *ast.CallExp) interface{} {
	c.enter("call", node.Span)
	if node.Call != nil {
		node.Call.Accept(c)
	}
	if node.Arg != nil {
		node.Arg.Accept(c)
	}
	c.leave()
	return nil
}

// VisitBuiltinCall checks a builtin callee
func (c *SpanChecker) VisitBuiltinCall(node *ast.BuiltinCall) interface{} {
	c.enter("builtin", node.Span)
	for _, t := range node.TypeActuals {
		t.Accept(c)
	}
	c.leave()
	return nil
}

// VisitModuleCall checks a module-call callee
func (c *SpanChecker) VisitModuleCall(node *ast.ModuleCall) interface{} {
	c.enter("callee", node.Span)
	for _, t := range node.TypeActuals {
		t.Accept(c)
	}
	c.leave()
	return nil
}

// VisitExprList checks an expression list
func (c *SpanChecker) VisitExprList(node *ast.ExprList) interface{} {
	c.enter("expression list", node.Span)
	for _, e := range node.Exps {
		e.Accept(c)
	}
	c.leave()
	return nil
}

// VisitVarLValue checks a variable lvalue
func (c *SpanChecker) VisitVarLValue(node *ast.VarLValue) interface{} {
	c.enter("lvalue", node.Span)
	c.leave()
	return nil
}

// VisitMutateLValue checks a mutate lvalue
func (c *SpanChecker) VisitMutateLValue(node *ast.MutateLValue) interface{} {
	c.enter("lvalue", node.Span)
	if node.Exp != nil {
		node.Exp.Accept(c)
	}
	c.leave()
	return nil
}

// VisitPopLValue checks a pop lvalue
func (c *SpanChecker) VisitPopLValue(node *ast.PopLValue) interface{} {
	c.enter("lvalue", node.Span)
	c.leave()
	return nil
}

// VisitAssignCmd checks an assignment
func (c *SpanChecker) VisitAssignCmd(node *ast.AssignCmd) interface{} {
	c.enter("assignment", node.Span)
	for _, lv := range node.LValues {
		lv.Accept(c)
	}
	if node.Exp != nil {
		node.Exp.Accept(c)
	}
	c.leave()
	return nil
}

// VisitUnpackCmd checks an unpack
func (c *SpanChecker) VisitUnpackCmd(node *ast.UnpackCmd) interface{} {
	c.enter("unpack", node.Span)
	for _, t := range node.TypeActuals {
		t.Accept(c)
	}
	for _, b := range node.Bindings {
		c.field(b.Field)
	}
	if node.Exp != nil {
		node.Exp.Accept(c)
	}
	c.leave()
	return nil
}

// VisitAbortCmd checks an abort
func (c *SpanChecker) VisitAbortCmd(node *ast.AbortCmd) interface{} {
	c.enter("abort", node.Span)
	if node.Exp != nil {
		node.Exp.Accept(c)
	}
	c.leave()
	return nil
}

// VisitReturnCmd checks a return
func (c *SpanChecker) VisitReturnCmd(node *ast.ReturnCmd) interface{} {
	c.enter("return", node.Span)
	if node.Exp != nil {
		node.Exp.Accept(c)
	}
	c.leave()
	return nil
}

// VisitExpCmd checks an expression command
func (c *SpanChecker) VisitExpCmd(node *ast.ExpCmd) interface{} {
	c.enter("expression command", node.Span)
	if node.Exp != nil {
		node.Exp.Accept(c)
	}
	c.leave()
	return nil
}

// VisitCmdStatement checks a command statement
func (c *SpanChecker) VisitCmdStatement(node *ast.CmdStatement) interface{} {
	c.enter("statement", node.Span)
	if node.Cmd != nil {
		node.Cmd.Accept(c)
	}
	c.leave()
	return nil
}

// VisitIfElseStatement checks an if/else statement
func (c *SpanChecker) VisitIfElseStatement(node *ast.IfElseStatement) interface{} {
	c.enter("if statement", node.Span)
	if node.Cond != nil {
		node.Cond.Accept(c)
	}
	if node.IfBlock != nil {
		node.IfBlock.Accept(c)
	}
	if node.ElseBlock != nil {
		node.ElseBlock.Accept(c)
	}
	c.leave()
	return nil
}

// VisitWhileStatement checks a while statement
func (c *SpanChecker) VisitWhileStatement(node *ast.WhileStatement) interface{} {
	c.enter("while statement", node.Span)
	if node.Cond != nil {
		node.Cond.Accept(c)
	}
	if node.Block != nil {
		node.Block.Accept(c)
	}
	c.leave()
	return nil
}

// VisitLoopStatement checks a loop statement
func (c *SpanChecker) VisitLoopStatement(node *ast.LoopStatement) interface{} {
	c.enter("loop statement", node.Span)
	if node.Block != nil {
		node.Block.Accept(c)
	}
	c.leave()
	return nil
}

// VisitEmptyStatement checks an empty statement
func (c *SpanChecker) VisitEmptyStatement(node *ast.EmptyStatement) interface{} {
	c.enter("empty statement", node.Span)
	c.leave()
	return nil
}

// VisitBlock checks a block
func (c *SpanChecker) VisitBlock(node *ast.Block) interface{} {
	c.enter("block", node.Span)
	for _, s := range node.Statements {
		s.Accept(c)
	}
	c.leave()
	return nil
}
