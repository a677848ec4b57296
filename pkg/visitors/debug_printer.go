// Package visitors provides AST passes built on the ast.Visitor interface
package visitors

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/naolduga/mvir/pkg/ast"
)

// DebugPrinter prints an indented representation of the AST for debugging
type DebugPrinter struct {
	ast.BaseVisitor

	// Output buffer
	output strings.Builder

	// Current indentation level
	indent int

	// Include node spans in the output
	WithSpans bool
}

// NewDebugPrinter creates a new debug printer
func NewDebugPrinter() *DebugPrinter {
	return &DebugPrinter{}
}

// String returns the formatted output
func (d *DebugPrinter) String() string {
	return d.output.String()
}

// print writes indented output
func (d *DebugPrinter) print(format string, args ...interface{}) {
	d.output.WriteString(strings.Repeat("  ", d.indent))
	d.output.WriteString(fmt.Sprintf(format, args...))
	d.output.WriteString("\n")
}

func (d *DebugPrinter) span(s ast.Span) string {
	if !d.WithSpans {
		return ""
	}
	return " " + s.String()
}

// VisitProgram prints a program node
func (d *DebugPrinter) VisitProgram(node *ast.Program) interface{} {
	d.print("Program:")
	d.indent++
	for _, m := range node.Modules {
		m.Accept(d)
	}
	if node.Script != nil {
		node.Script.Accept(d)
	}
	d.indent--
	return nil
}

// VisitScript prints a script node
func (d *DebugPrinter) VisitScript(node *ast.Script) interface{} {
	d.print("Script:%s", d.span(node.Span))
	d.indent++
	for _, imp := range node.Imports {
		imp.Accept(d)
	}
	if node.Main != nil {
		node.Main.Accept(d)
	}
	d.indent--
	return nil
}

// VisitModule prints a module node
func (d *DebugPrinter) VisitModule(node *ast.Module) interface{} {
	d.print("Module: %s%s", node.Name, d.span(node.Span))
	d.indent++
	for _, imp := range node.Imports {
		imp.Accept(d)
	}
	for _, s := range node.Structs {
		s.Accept(d)
	}
	for _, f := range node.Functions {
		f.Accept(d)
	}
	d.indent--
	return nil
}

// VisitImportDefinition prints an import
func (d *DebugPrinter) VisitImportDefinition(node *ast.ImportDefinition) interface{} {
	switch ident := node.Ident.(type) {
	case *ast.QualifiedModuleIdent:
		d.print("Import: %s.%s as %s", ident.Address, ident.Name, node.Alias)
	case *ast.TransactionModuleIdent:
		d.print("Import: Transaction.%s as %s", ident.Name, node.Alias)
	}
	return nil
}

// VisitStructDefinition prints a struct definition
func (d *DebugPrinter) VisitStructDefinition(node *ast.StructDefinition) interface{} {
	kind := "struct"
	if node.IsResource {
		kind = "resource"
	}
	if node.IsNative {
		kind = "native " + kind
	}
	d.print("%s %s%s%s", kind, node.Name, formalsString(node.TypeFormals), d.span(node.Span))
	d.indent++
	for _, f := range node.Fields {
		d.print("Field: %s: %s", f.Field.Name, typeString(f.Type))
	}
	d.indent--
	return nil
}

// VisitFunction prints a function definition
func (d *DebugPrinter) VisitFunction(node *ast.Function) interface{} {
	args := make([]string, len(node.Args))
	for i, a := range node.Args {
		args[i] = fmt.Sprintf("%s: %s", a.Var.Name, typeString(a.Type))
	}
	rets := make([]string, len(node.ReturnTypes))
	for i, t := range node.ReturnTypes {
		rets[i] = typeString(t)
	}
	head := fmt.Sprintf("%s %s%s(%s)", node.Visibility, node.Name,
		formalsString(node.TypeFormals), strings.Join(args, ", "))
	if len(rets) > 0 {
		head += ": " + strings.Join(rets, " * ")
	}
	if len(node.Acquires) > 0 {
		head += " acquires " + strings.Join(node.Acquires, ", ")
	}
	if node.IsNative {
		head = "native " + head
	}
	d.print("Function: %s%s", head, d.span(node.Span))
	d.indent++
	for _, l := range node.Locals {
		d.print("Local: %s: %s", l.Var.Name, typeString(l.Type))
	}
	if node.Code != nil {
		node.Code.Accept(d)
	}
	d.indent--
	return nil
}

// VisitBlock prints a block
func (d *DebugPrinter) VisitBlock(node *ast.Block) interface{} {
	d.print("Block:%s", d.span(node.Span))
	d.indent++
	for _, s := range node.Statements {
		s.Accept(d)
	}
	d.indent--
	return nil
}

// VisitCmdStatement prints a command statement
func (d *DebugPrinter) VisitCmdStatement(node *ast.CmdStatement) interface{} {
	if node.Cmd != nil {
		node.Cmd.Accept(d)
	}
	return nil
}

// VisitIfElseStatement prints an if/else statement
func (d *DebugPrinter) VisitIfElseStatement(node *ast.IfElseStatement) interface{} {
	d.print("If:%s", d.span(node.Span))
	d.indent++
	d.print("Cond:")
	d.indent++
	if node.Cond != nil {
		node.Cond.Accept(d)
	}
	d.indent--
	d.print("Then:")
	d.indent++
	if node.IfBlock != nil {
		node.IfBlock.Accept(d)
	}
	d.indent--
	if node.ElseBlock != nil {
		d.print("Else:")
		d.indent++
		node.ElseBlock.Accept(d)
		d.indent--
	}
	d.indent--
	return nil
}

// VisitWhileStatement prints a while statement
func (d *DebugPrinter) VisitWhileStatement(node *ast.WhileStatement) interface{} {
	d.print("While:%s", d.span(node.Span))
	d.indent++
	d.print("Cond:")
	d.indent++
	if node.Cond != nil {
		node.Cond.Accept(d)
	}
	d.indent--
	if node.Block != nil {
		node.Block.Accept(d)
	}
	d.indent--
	return nil
}

// VisitLoopStatement prints a loop statement
func (d *DebugPrinter) VisitLoopStatement(node *ast.LoopStatement) interface{} {
	d.print("Loop:%s", d.span(node.Span))
	d.indent++
	if node.Block != nil {
		node.Block.Accept(d)
	}
	d.indent--
	return nil
}

// VisitEmptyStatement prints an empty statement
func (d *DebugPrinter) VisitEmptyStatement(node *ast.EmptyStatement) interface{} {
	d.print("Empty")
	return nil
}

// VisitAssignCmd prints an assignment
func (d *DebugPrinter) VisitAssignCmd(node *ast.AssignCmd) interface{} {
	targets := make([]string, len(node.LValues))
	for i, lv := range node.LValues {
		switch l := lv.(type) {
		case *ast.VarLValue:
			targets[i] = l.Var.Name
		case *ast.MutateLValue:
			targets[i] = "*…"
		case *ast.PopLValue:
			targets[i] = "_"
		}
	}
	d.print("Assign: %s =%s", strings.Join(targets, ", "), d.span(node.Span))
	d.indent++
	for _, lv := range node.LValues {
		if m, ok := lv.(*ast.MutateLValue); ok {
			d.print("Target:")
			d.indent++
			m.Exp.Accept(d)
			d.indent--
		}
	}
	if node.Exp != nil {
		node.Exp.Accept(d)
	}
	d.indent--
	return nil
}

// VisitUnpackCmd prints an unpack
func (d *DebugPrinter) VisitUnpackCmd(node *ast.UnpackCmd) interface{} {
	bindings := make([]string, len(node.Bindings))
	for i, b := range node.Bindings {
		bindings[i] = fmt.Sprintf("%s: %s", b.Field.Name, b.Var.Name)
	}
	d.print("Unpack: %s%s{%s} =%s", node.Name, actualsString(node.TypeActuals),
		strings.Join(bindings, ", "), d.span(node.Span))
	d.indent++
	if node.Exp != nil {
		node.Exp.Accept(d)
	}
	d.indent--
	return nil
}

// VisitAbortCmd prints an abort
func (d *DebugPrinter) VisitAbortCmd(node *ast.AbortCmd) interface{} {
	d.print("Abort:%s", d.span(node.Span))
	if node.Exp != nil {
		d.indent++
		node.Exp.Accept(d)
		d.indent--
	}
	return nil
}

// VisitReturnCmd prints a return
func (d *DebugPrinter) VisitReturnCmd(node *ast.ReturnCmd) interface{} {
	d.print("Return:%s", d.span(node.Span))
	d.indent++
	if node.Exp != nil {
		node.Exp.Accept(d)
	}
	d.indent--
	return nil
}

// VisitBreakCmd prints a break
func (d *DebugPrinter) VisitBreakCmd(node *ast.BreakCmd) interface{} {
	d.print("Break")
	return nil
}

// VisitContinueCmd prints a continue
func (d *DebugPrinter) VisitContinueCmd(node *ast.ContinueCmd) interface{} {
	d.print("Continue")
	return nil
}

// VisitExpCmd prints an expression command
func (d *DebugPrinter) VisitExpCmd(node *ast.ExpCmd) interface{} {
	d.print("ExpCmd:")
	d.indent++
	if node.Exp != nil {
		node.Exp.Accept(d)
	}
	d.indent--
	return nil
}

// VisitValueExp prints a literal
func (d *DebugPrinter) VisitValueExp(node *ast.ValueExp) interface{} {
	switch v := node.Val.(type) {
	case ast.AddressVal:
		d.print("Address: %s%s", v.Value, d.span(node.Span))
	case ast.U64Val:
		d.print("U64: %d%s", v.Value, d.span(node.Span))
	case ast.BoolVal:
		d.print("Bool: %t%s", v.Value, d.span(node.Span))
	case ast.ByteArrayVal:
		d.print("ByteArray: h\"%s\"%s", hex.EncodeToString(v.Value), d.span(node.Span))
	}
	return nil
}

// VisitMoveExp prints a move
func (d *DebugPrinter) VisitMoveExp(node *ast.MoveExp) interface{} {
	d.print("Move: %s%s", node.Var.Name, d.span(node.Span))
	return nil
}

// VisitCopyExp prints a copy
func (d *DebugPrinter) VisitCopyExp(node *ast.CopyExp) interface{} {
	d.print("Copy: %s%s", node.Var.Name, d.span(node.Span))
	return nil
}

// VisitBorrowLocalExp prints a local borrow
func (d *DebugPrinter) VisitBorrowLocalExp(node *ast.BorrowLocalExp) interface{} {
	d.print("BorrowLocal: %s%s%s", mutString(node.Mut), node.Var.Name, d.span(node.Span))
	return nil
}

// VisitBorrowExp prints a field borrow
func (d *DebugPrinter) VisitBorrowExp(node *ast.BorrowExp) interface{} {
	d.print("Borrow: %s.%s%s", mutString(node.Mut), node.Field.Name, d.span(node.Span))
	d.indent++
	if node.Exp != nil {
		node.Exp.Accept(d)
	}
	d.indent--
	return nil
}

// VisitDereferenceExp prints a dereference
func (d *DebugPrinter) VisitDereferenceExp(node *ast.DereferenceExp) interface{} {
	d.print("Deref:%s", d.span(node.Span))
	d.indent++
	if node.Exp != nil {
		node.Exp.Accept(d)
	}
	d.indent--
	return nil
}

// VisitUnaryExp prints a unary expression
func (d *DebugPrinter) VisitUnaryExp(node *ast.UnaryExp) interface{} {
	d.print("Unary: %s%s", node.Op, d.span(node.Span))
	d.indent++
	if node.Exp != nil {
		node.Exp.Accept(d)
	}
	d.indent--
	return nil
}

// VisitBinopExp prints a binary expression
func (d *DebugPrinter) VisitBinopExp(node *ast.BinopExp) interface{} {
	d.print("Binop: %s%s", node.Op, d.span(node.Span))
	d.indent++
	if node.Left != nil {
		node.Left.Accept(d)
	}
	if node.Right != nil {
		node.Right.Accept(d)
	}
	d.indent--
	return nil
}

// VisitPackExp prints a pack expression
func (d *DebugPrinter) VisitPackExp(node *ast.PackExp) interface{} {
	d.print("Pack: %s%s%s", node.Name, actualsString(node.TypeActuals), d.span(node.Span))
	d.indent++
	for _, f := range node.Fields {
		d.print("Field: %s", f.Field.Name)
		d.indent++
		if f.Exp != nil {
			f.Exp.Accept(d)
		}
		d.indent--
	}
	d.indent--
	return nil
}

// VisitCallExp prints a call
func (d *DebugPrinter) VisitCallExp(node *ast.CallExp) interface{} {
	switch c := node.Call.(type) {
	case *ast.BuiltinCall:
		d.print("Call: %s%s%s", c.Builtin, actualsString(c.TypeActuals), d.span(node.Span))
	case *ast.ModuleCall:
		d.print("Call: %s.%s%s%s", c.Module, c.Name, actualsString(c.TypeActuals), d.span(node.Span))
	}
	d.indent++
	if node.Arg != nil {
		node.Arg.Accept(d)
	}
	d.indent--
	return nil
}

// VisitExprList prints an expression list
func (d *DebugPrinter) VisitExprList(node *ast.ExprList) interface{} {
	d.print("ExprList:%s", d.span(node.Span))
	d.indent++
	for _, e := range node.Exps {
		e.Accept(d)
	}
	d.indent--
	return nil
}

func mutString(mut bool) string {
	if mut {
		return "&mut "
	}
	return "&"
}

// typeString formats a type as a string
func typeString(t ast.Type) string {
	switch ty := t.(type) {
	case *ast.PrimitiveType:
		return ty.Kind.String()
	case *ast.ReferenceType:
		return mutString(ty.Mut) + typeString(ty.To)
	case *ast.StructType:
		return ty.Ident.String() + actualsString(ty.TypeActuals)
	case *ast.TypeParam:
		return ty.Name
	default:
		return "?"
	}
}

func actualsString(tys []ast.Type) string {
	if len(tys) == 0 {
		return ""
	}
	parts := make([]string, len(tys))
	for i, t := range tys {
		parts[i] = typeString(t)
	}
	return "<" + strings.Join(parts, ", ") + ">"
}

func formalsString(formals []ast.TypeFormal) string {
	if len(formals) == 0 {
		return ""
	}
	parts := make([]string, len(formals))
	for i, f := range formals {
		if f.Kind == ast.KindAll {
			parts[i] = f.Name
		} else {
			parts[i] = f.Name + ": " + f.Kind.String()
		}
	}
	return "<" + strings.Join(parts, ", ") + ">"
}
