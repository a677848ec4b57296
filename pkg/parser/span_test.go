package parser

import (
	"strings"
	"testing"

	"github.com/naolduga/mvir/pkg/ast"
	"github.com/naolduga/mvir/pkg/visitors"
)

func TestSpansCoverSource(t *testing.T) {
	src := "module M { public id(x: u64): u64 { return copy(x); } }"
	m, err := ParseModule("", src)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}

	if m.Span.Start != 0 || m.Span.End != len(src) {
		t.Errorf("Expected the module span to cover the input, got %s", m.Span)
	}

	fn := m.Functions[0]
	if got := src[fn.Span.Start:fn.Span.End]; !strings.HasPrefix(got, "public id") || !strings.HasSuffix(got, "}") {
		t.Errorf("Expected the function span to cover its declaration, got %q", got)
	}

	cs := fn.Code.Statements[0].(*ast.CmdStatement)
	if got := src[cs.Span.Start:cs.Span.End]; got != "return copy(x);" {
		t.Errorf("Expected the statement span to cover the return, got %q", got)
	}

	ret := cs.Cmd.(*ast.ReturnCmd)
	list := ret.Exp.(*ast.ExprList)
	if got := src[list.Exps[0].Loc().Start:list.Exps[0].Loc().End]; got != "copy(x)" {
		t.Errorf("Expected the operand span to cover copy(x), got %q", got)
	}
}

func TestBinopSpans(t *testing.T) {
	src := "x = 1 + 2 * 3"
	cmd, err := ParseCmd("", src)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	add := cmd.(*ast.AssignCmd).Exp.(*ast.BinopExp)
	if got := src[add.Span.Start:add.Span.End]; got != "1 + 2 * 3" {
		t.Errorf("Expected the sum span to cover the whole chain, got %q", got)
	}
	mul := add.Right.(*ast.BinopExp)
	if got := src[mul.Span.Start:mul.Span.End]; got != "2 * 3" {
		t.Errorf("Expected the product span to cover its operands, got %q", got)
	}
	if !add.Span.Contains(mul.Span) {
		t.Error("Expected the product span inside the sum span")
	}
}

// TestSpanInvariants runs the span checker over a representative parse:
// every span is well-formed and contained in its parent's span.
func TestSpanInvariants(t *testing.T) {
	src := `
modules:
module Vault {
	import 0x1.Coin;
	import Transaction.Events as Ev;

	resource Box<T: resource> { inner: T, count: u64 }
	native struct Seal;

	public stash<T: resource>(item: T): bool acquires Box {
		let sender: address;
		let full: bool;
		sender = get_txn_sender();
		full = exists<Self.Box<T>>(copy(sender));
		assert(!copy(full), 9);
		move_to_sender<Self.Box<T>>(Box<T>{ inner: move(item), count: 1 });
		return true;
	}

	drain(owner: address): u64 acquires Box {
		let b: &mut Self.Box<T>;
		let n: u64;
		b = borrow_global_mut<Self.Box<T>>(copy(owner));
		n = *(&mut move(b).count);
		while (copy(n) > 0) {
			n = copy(n) - 1;
		}
		loop {
			break;
		}
		if (copy(n) == 0) {
			return copy(n);
		} else {
			abort 1;
		}
	}
}
script:
main(payee: address) {
	let v: u64;
	v = 2 + 3 * 4;
	Vault.drain(move(payee));
	return;
}
`
	prog, err := ParseProgram("", src)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	checker := visitors.NewSpanChecker()
	if errs := checker.Check(prog); len(errs) != 0 {
		for _, e := range errs {
			t.Error(e)
		}
	}
}

func TestSynthesizedMainHasZeroSpans(t *testing.T) {
	prog, err := ParseProgram("", "module M { }")
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	if !prog.Script.Main.Span.IsZero() {
		t.Errorf("Expected a zero span on the synthesized main, got %s", prog.Script.Main.Span)
	}
	checker := visitors.NewSpanChecker()
	if errs := checker.Check(prog); len(errs) != 0 {
		t.Errorf("Expected no span violations, got %v", errs)
	}
}
