package visitors

import (
	"strings"
	"testing"

	"github.com/naolduga/mvir/pkg/ast"
	"github.com/naolduga/mvir/pkg/parser"
)

const moduleSrc = `
module Purse {
	import 0x0.Coin;

	resource Holder<T: resource> { item: T, tag: u64 }

	public put<T: resource>(x: T): bool acquires Holder {
		let here: bool;
		here = exists<Self.Holder<T>>(get_txn_sender());
		assert(!copy(here), 3);
		move_to_sender<Self.Holder<T>>(Holder<T>{ item: move(x), tag: 1 + 2 * 3 });
		return true;
	}
}
`

func parsePurse(t *testing.T) *ast.Module {
	t.Helper()
	m, err := parser.ParseModule("", moduleSrc)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	return m
}

func TestDebugPrinterOutput(t *testing.T) {
	m := parsePurse(t)

	printer := NewDebugPrinter()
	m.Accept(printer)
	out := printer.String()

	for _, want := range []string{
		"Module: Purse",
		"Import: 0x" + strings.Repeat("0", 2*ast.AddressLength) + ".Coin as Coin",
		"resource Holder<T: resource>",
		"Field: item: T",
		"Field: tag: u64",
		"Function: public put<T: resource>(x: T): bool acquires Holder",
		"Local: here: bool",
		"Call: exists<Self.Holder<T>>",
		"Pack: Holder<T>",
		"Binop: *",
		"Return:",
		"Bool: true",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out)
		}
	}

	// Assert desugars before any pass runs, so the printer sees the if.
	if !strings.Contains(out, "If:") || !strings.Contains(out, "Abort:") {
		t.Errorf("Expected the desugared assert in the output, got:\n%s", out)
	}
	if strings.Contains(out, "assert") {
		t.Errorf("Expected no assert node to survive parsing, got:\n%s", out)
	}
}

func TestDebugPrinterSpans(t *testing.T) {
	m := parsePurse(t)

	printer := NewDebugPrinter()
	printer.WithSpans = true
	m.Accept(printer)
	out := printer.String()

	if !strings.Contains(out, m.Span.String()) {
		t.Errorf("Expected the module span %s in the output", m.Span)
	}
}

func TestSpanCheckerAcceptsParserOutput(t *testing.T) {
	m := parsePurse(t)
	checker := NewSpanChecker()
	if errs := checker.Check(m); len(errs) != 0 {
		for _, e := range errs {
			t.Error(e)
		}
	}
}

func TestSpanCheckerFlagsViolations(t *testing.T) {
	m := parsePurse(t)

	// Break a nested span on purpose: stretch a statement past its module.
	fn := m.Functions[0]
	stmt := fn.Code.Statements[0].(*ast.CmdStatement)
	stmt.Span = ast.Span{Start: 0, End: m.Span.End + 100}

	checker := NewSpanChecker()
	errs := checker.Check(m)
	if len(errs) == 0 {
		t.Fatal("Expected a span violation")
	}
	if !strings.Contains(errs[0].Error(), "escapes") {
		t.Errorf("Expected an escape report, got %v", errs[0])
	}
}

func TestSpanCheckerFlagsInvertedSpans(t *testing.T) {
	m := parsePurse(t)
	m.Structs[0].Span = ast.Span{Start: 10, End: 4}

	checker := NewSpanChecker()
	errs := checker.Check(m)
	if len(errs) == 0 {
		t.Fatal("Expected an inverted-span violation")
	}
}
