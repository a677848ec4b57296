package parser

import (
	"strings"
	"testing"

	"github.com/naolduga/mvir/pkg/ast"
)

// parseStmt parses a single statement by planting it in a script main.
func parseStmt(t *testing.T, stmt string) ast.Statement {
	t.Helper()
	src := "main() {\n" + stmt + "\n}"
	s, err := ParseScript("", src)
	if err != nil {
		t.Fatalf("Failed to parse %q: %v", stmt, err)
	}
	if len(s.Main.Code.Statements) != 1 {
		t.Fatalf("Expected 1 statement, got %d", len(s.Main.Code.Statements))
	}
	return s.Main.Code.Statements[0]
}

func TestAssertDesugaring(t *testing.T) {
	src := "main() { assert(copy(x), 42); }"
	s, err := ParseScript("", src)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	stmt := s.Main.Code.Statements[0]

	ifElse, ok := stmt.(*ast.IfElseStatement)
	if !ok {
		t.Fatalf("Expected assert to desugar into an if statement, got %T", stmt)
	}
	if ifElse.ElseBlock != nil {
		t.Error("Expected no else block")
	}

	not, ok := ifElse.Cond.(*ast.UnaryExp)
	if !ok || not.Op != ast.OpNot {
		t.Fatalf("Expected a negated condition, got %#v", ifElse.Cond)
	}
	cond, ok := not.Exp.(*ast.CopyExp)
	if !ok || cond.Var.Name != "x" {
		t.Fatalf("Expected copy(x) under the negation, got %#v", not.Exp)
	}
	// The negation reuses the condition's span.
	if not.Span != cond.Span {
		t.Errorf("Expected the negation to carry the condition span %s, got %s", cond.Span, not.Span)
	}
	condStart := strings.Index(src, "copy(x)")
	if cond.Span.Start != condStart || cond.Span.End != condStart+len("copy(x)") {
		t.Errorf("Expected condition span at %d, got %s", condStart, cond.Span)
	}

	if len(ifElse.IfBlock.Statements) != 1 {
		t.Fatalf("Expected one synthesized statement, got %d", len(ifElse.IfBlock.Statements))
	}
	cs, ok := ifElse.IfBlock.Statements[0].(*ast.CmdStatement)
	if !ok {
		t.Fatalf("Expected a command statement, got %T", ifElse.IfBlock.Statements[0])
	}
	abort, ok := cs.Cmd.(*ast.AbortCmd)
	if !ok {
		t.Fatalf("Expected an abort, got %T", cs.Cmd)
	}
	if got := u64Value(t, abort.Exp); got != 42 {
		t.Errorf("Expected abort code 42, got %d", got)
	}
	// The synthesized abort reuses the error expression's span.
	errStart := strings.Index(src, "42")
	if abort.Span.Start != errStart || abort.Span.End != errStart+2 {
		t.Errorf("Expected abort span at %d, got %s", errStart, abort.Span)
	}
}

func TestUnpack(t *testing.T) {
	cmd, err := ParseCmd("", "Foo<u64>{x: a, y: b} = copy(v)")
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	unpack, ok := cmd.(*ast.UnpackCmd)
	if !ok {
		t.Fatalf("Expected an unpack, got %T", cmd)
	}
	if unpack.Name != "Foo" {
		t.Errorf("Expected Foo, got %s", unpack.Name)
	}
	if len(unpack.TypeActuals) != 1 {
		t.Fatalf("Expected 1 type actual, got %d", len(unpack.TypeActuals))
	}
	if p, ok := unpack.TypeActuals[0].(*ast.PrimitiveType); !ok || p.Kind != ast.PrimU64 {
		t.Errorf("Expected u64, got %#v", unpack.TypeActuals[0])
	}
	if len(unpack.Bindings) != 2 {
		t.Fatalf("Expected 2 bindings, got %d", len(unpack.Bindings))
	}
	if unpack.Bindings[0].Field.Name != "x" || unpack.Bindings[0].Var.Name != "a" {
		t.Errorf("Expected x: a, got %s: %s", unpack.Bindings[0].Field.Name, unpack.Bindings[0].Var.Name)
	}
	if _, ok := unpack.Exp.(*ast.CopyExp); !ok {
		t.Errorf("Expected copy(v) on the right, got %T", unpack.Exp)
	}
}

func TestUnpackFieldShorthand(t *testing.T) {
	src := "Pair{fst, snd: other} = move(p)"
	cmd, err := ParseCmd("", src)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	unpack := cmd.(*ast.UnpackCmd)
	if len(unpack.Bindings) != 2 {
		t.Fatalf("Expected 2 bindings, got %d", len(unpack.Bindings))
	}

	// Bare `fst` binds a variable of the same name with the field's span.
	b := unpack.Bindings[0]
	if b.Field.Name != "fst" || b.Var.Name != "fst" {
		t.Errorf("Expected fst: fst, got %s: %s", b.Field.Name, b.Var.Name)
	}
	if b.Var.Span != b.Field.Span {
		t.Errorf("Expected the bound variable to carry the field span %s, got %s", b.Field.Span, b.Var.Span)
	}
	start := strings.Index(src, "fst")
	if b.Field.Span.Start != start || b.Field.Span.End != start+3 {
		t.Errorf("Expected field span at %d, got %s", start, b.Field.Span)
	}

	if unpack.Bindings[1].Var.Name != "other" {
		t.Errorf("Expected snd bound to other, got %s", unpack.Bindings[1].Var.Name)
	}
}

func TestUnpackDuplicateFieldRejected(t *testing.T) {
	if _, err := ParseCmd("", "Foo{a, a} = move(v)"); err == nil {
		t.Fatal("Expected a duplicate field error")
	}
}

func TestAssignTargets(t *testing.T) {
	cmd, err := ParseCmd("", "x, _, *copy(r) = Coin.split(move(c))")
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	assign, ok := cmd.(*ast.AssignCmd)
	if !ok {
		t.Fatalf("Expected an assignment, got %T", cmd)
	}
	if len(assign.LValues) != 3 {
		t.Fatalf("Expected 3 lvalues, got %d", len(assign.LValues))
	}
	if v, ok := assign.LValues[0].(*ast.VarLValue); !ok || v.Var.Name != "x" {
		t.Errorf("Expected x, got %#v", assign.LValues[0])
	}
	if _, ok := assign.LValues[1].(*ast.PopLValue); !ok {
		t.Errorf("Expected _, got %T", assign.LValues[1])
	}
	mutate, ok := assign.LValues[2].(*ast.MutateLValue)
	if !ok {
		t.Fatalf("Expected *copy(r), got %T", assign.LValues[2])
	}
	if _, ok := mutate.Exp.(*ast.CopyExp); !ok {
		t.Errorf("Expected copy(r) under the mutate, got %T", mutate.Exp)
	}
	if _, ok := assign.Exp.(*ast.CallExp); !ok {
		t.Errorf("Expected a call on the right, got %T", assign.Exp)
	}
}

func TestReturnAlwaysBoxes(t *testing.T) {
	cmd, err := ParseCmd("", "return")
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	ret := cmd.(*ast.ReturnCmd)
	list, ok := ret.Exp.(*ast.ExprList)
	if !ok {
		t.Fatalf("Expected an expression list, got %T", ret.Exp)
	}
	if len(list.Exps) != 0 {
		t.Errorf("Expected an empty list, got %d elements", len(list.Exps))
	}

	cmd, err = ParseCmd("", "return copy(x)")
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	list = cmd.(*ast.ReturnCmd).Exp.(*ast.ExprList)
	if len(list.Exps) != 1 {
		t.Fatalf("Expected a singleton list, got %d elements", len(list.Exps))
	}

	cmd, err = ParseCmd("", "return 1, 2")
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	list = cmd.(*ast.ReturnCmd).Exp.(*ast.ExprList)
	if len(list.Exps) != 2 {
		t.Fatalf("Expected 2 elements, got %d", len(list.Exps))
	}
}

func TestAbort(t *testing.T) {
	cmd, err := ParseCmd("", "abort")
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	if a := cmd.(*ast.AbortCmd); a.Exp != nil {
		t.Errorf("Expected no abort code, got %#v", a.Exp)
	}

	cmd, err = ParseCmd("", "abort 7")
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	if got := u64Value(t, cmd.(*ast.AbortCmd).Exp); got != 7 {
		t.Errorf("Expected abort code 7, got %d", got)
	}
}

func TestBreakContinue(t *testing.T) {
	if cmd, err := ParseCmd("", "break;"); err != nil {
		t.Fatalf("Failed to parse: %v", err)
	} else if _, ok := cmd.(*ast.BreakCmd); !ok {
		t.Errorf("Expected a break, got %T", cmd)
	}
	if cmd, err := ParseCmd("", "continue"); err != nil {
		t.Fatalf("Failed to parse: %v", err)
	} else if _, ok := cmd.(*ast.ContinueCmd); !ok {
		t.Errorf("Expected a continue, got %T", cmd)
	}
}

func TestCallCommand(t *testing.T) {
	cmd, err := ParseCmd("", "Events.emit<u64>(copy(e))")
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	ec, ok := cmd.(*ast.ExpCmd)
	if !ok {
		t.Fatalf("Expected an expression command, got %T", cmd)
	}
	if _, ok := ec.Exp.(*ast.CallExp); !ok {
		t.Errorf("Expected a call, got %T", ec.Exp)
	}

	cmd, err = ParseCmd("", "move_to_sender<Self.T>(move(r))")
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	if _, ok := cmd.(*ast.ExpCmd); !ok {
		t.Errorf("Expected an expression command, got %T", cmd)
	}
}

func TestControlFlowStatements(t *testing.T) {
	stmt := parseStmt(t, "if (copy(c)) { return; }")
	ifElse, ok := stmt.(*ast.IfElseStatement)
	if !ok {
		t.Fatalf("Expected an if statement, got %T", stmt)
	}
	if ifElse.ElseBlock != nil {
		t.Error("Expected no else block")
	}

	stmt = parseStmt(t, "if (copy(c)) { break; } else { continue; }")
	ifElse = stmt.(*ast.IfElseStatement)
	if ifElse.ElseBlock == nil {
		t.Fatal("Expected an else block")
	}
	if len(ifElse.ElseBlock.Statements) != 1 {
		t.Errorf("Expected 1 else statement, got %d", len(ifElse.ElseBlock.Statements))
	}

	stmt = parseStmt(t, "while (copy(n) > 0) { n = copy(n) - 1; }")
	while, ok := stmt.(*ast.WhileStatement)
	if !ok {
		t.Fatalf("Expected a while statement, got %T", stmt)
	}
	if _, ok := while.Cond.(*ast.BinopExp); !ok {
		t.Errorf("Expected a comparison condition, got %T", while.Cond)
	}

	stmt = parseStmt(t, "loop { break; }")
	if _, ok := stmt.(*ast.LoopStatement); !ok {
		t.Fatalf("Expected a loop statement, got %T", stmt)
	}

	stmt = parseStmt(t, ";")
	if _, ok := stmt.(*ast.EmptyStatement); !ok {
		t.Fatalf("Expected an empty statement, got %T", stmt)
	}
}

func TestDeclarationsPrecedeStatements(t *testing.T) {
	src := `
main() {
	let x: u64;
	let r: &bool;
	x = 1;
}
`
	s, err := ParseScript("", src)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	if len(s.Main.Locals) != 2 {
		t.Fatalf("Expected 2 locals, got %d", len(s.Main.Locals))
	}
	if s.Main.Locals[0].Var.Name != "x" {
		t.Errorf("Expected local x first, got %s", s.Main.Locals[0].Var.Name)
	}
	if ref, ok := s.Main.Locals[1].Type.(*ast.ReferenceType); !ok || ref.Mut {
		t.Errorf("Expected an immutable reference type, got %#v", s.Main.Locals[1].Type)
	}

	// A let after the first statement is a dedicated error.
	_, err = ParseScript("", "main() { x = 1; let y: u64; }")
	if err == nil {
		t.Fatal("Expected an error for a late let declaration")
	}
	if !strings.Contains(err.Error(), "let declarations must precede") {
		t.Errorf("Expected the dedicated message, got %v", err)
	}
}
