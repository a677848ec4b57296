package ast

import "testing"

func TestSpanContains(t *testing.T) {
	outer := Span{Start: 2, End: 10}
	cases := []struct {
		inner Span
		want  bool
	}{
		{Span{Start: 2, End: 10}, true},
		{Span{Start: 3, End: 9}, true},
		{Span{Start: 2, End: 2}, true},
		{Span{Start: 1, End: 5}, false},
		{Span{Start: 5, End: 11}, false},
	}
	for _, c := range cases {
		if got := outer.Contains(c.inner); got != c.want {
			t.Errorf("%s.Contains(%s) = %t, want %t", outer, c.inner, got, c.want)
		}
	}
	if !(Span{}).IsZero() {
		t.Error("Expected the zero span to report IsZero")
	}
	if (Span{Start: 0, End: 1}).IsZero() {
		t.Error("Expected a non-empty span to not report IsZero")
	}
}

func TestAddressString(t *testing.T) {
	var a Address
	a[AddressLength-1] = 0x2a
	s := a.String()
	if len(s) != 2+2*AddressLength {
		t.Fatalf("Expected %d characters, got %d", 2+2*AddressLength, len(s))
	}
	if s[:2] != "0x" || s[len(s)-2:] != "2a" {
		t.Errorf("Unexpected address rendering %s", s)
	}
}

func TestOperatorStrings(t *testing.T) {
	cases := map[BinOp]string{
		OpEq:     "==",
		OpNeq:    "!=",
		OpLe:     "<=",
		OpOr:     "||",
		OpAnd:    "&&",
		OpXor:    "^",
		OpBitOr:  "|",
		OpBitAnd: "&",
		OpAdd:    "+",
		OpMod:    "%",
	}
	for op, want := range cases {
		if op.String() != want {
			t.Errorf("Expected %q, got %q", want, op.String())
		}
	}
	if OpNot.String() != "!" {
		t.Errorf("Expected !, got %q", OpNot.String())
	}
}

func TestBuiltinTypeActuals(t *testing.T) {
	generic := []Builtin{
		BuiltinExists, BuiltinBorrowGlobal, BuiltinBorrowGlobalMut,
		BuiltinMoveFrom, BuiltinMoveToSender,
	}
	for _, b := range generic {
		if !b.TakesTypeActuals() {
			t.Errorf("Expected %s to take type actuals", b)
		}
	}
	for _, b := range []Builtin{BuiltinFreeze, BuiltinGetTxnSender, BuiltinCreateAccount} {
		if b.TakesTypeActuals() {
			t.Errorf("Expected %s to not take type actuals", b)
		}
	}
}

func TestKindAndVisibilityStrings(t *testing.T) {
	if KindResource.String() != "resource" || KindUnrestricted.String() != "unrestricted" || KindAll.String() != "all" {
		t.Error("Unexpected kind rendering")
	}
	if Public.String() != "public" || Internal.String() != "internal" {
		t.Error("Unexpected visibility rendering")
	}
}

// countingVisitor counts expression leaves it is dispatched to.
type countingVisitor struct {
	BaseVisitor
	values  int
	moves   int
	binops  int
	borrows int
}

func (c *countingVisitor) VisitValueExp(node *ValueExp) interface{} {
	c.values++
	return nil
}

func (c *countingVisitor) VisitMoveExp(node *MoveExp) interface{} {
	c.moves++
	return nil
}

func (c *countingVisitor) VisitBinopExp(node *BinopExp) interface{} {
	c.binops++
	node.Left.Accept(c)
	node.Right.Accept(c)
	return nil
}

func (c *countingVisitor) VisitBorrowLocalExp(node *BorrowLocalExp) interface{} {
	c.borrows++
	return nil
}

func TestVisitorDispatch(t *testing.T) {
	// (1 + move(a)) == &b, built by hand.
	exp := &BinopExp{
		Left: &BinopExp{
			Left:  &ValueExp{Val: U64Val{Value: 1}},
			Op:    OpAdd,
			Right: &MoveExp{Var: Var{Name: "a"}},
		},
		Op:    OpEq,
		Right: &BorrowLocalExp{Var: Var{Name: "b"}},
	}

	c := &countingVisitor{}
	exp.Accept(c)

	if c.binops != 2 {
		t.Errorf("Expected 2 binops, got %d", c.binops)
	}
	if c.values != 1 || c.moves != 1 || c.borrows != 1 {
		t.Errorf("Expected one of each leaf, got values=%d moves=%d borrows=%d",
			c.values, c.moves, c.borrows)
	}
}

func TestBaseVisitorCoversAllNodes(t *testing.T) {
	// A synthesized program touching every node category; the base
	// visitor must walk it without panicking.
	prog := &Program{
		Modules: []*Module{{
			Name: "M",
			Imports: []*ImportDefinition{
				{Ident: &QualifiedModuleIdent{Name: "Coin"}, Alias: "Coin"},
				{Ident: &TransactionModuleIdent{Name: "Ev"}, Alias: "Ev"},
			},
			Structs: []*StructDefinition{{
				Name:        "S",
				TypeFormals: []TypeFormal{{Name: "T", Kind: KindResource}},
				Fields: []StructField{
					{Field: Field{Name: "f"}, Type: &TypeParam{Name: "T"}},
					{Field: Field{Name: "g"}, Type: &PrimitiveType{Kind: PrimU64}},
				},
			}},
			Functions: []*Function{{
				Name: "f",
				Args: []FuncArg{{Var: Var{Name: "x"}, Type: &ReferenceType{To: &StructType{
					Ident: QualifiedStructIdent{Module: "Self", Name: "S"},
				}}}},
				ReturnTypes: []Type{&PrimitiveType{Kind: PrimBool}},
				Locals:      []FuncLocal{{Var: Var{Name: "l"}, Type: &PrimitiveType{Kind: PrimAddress}}},
				Code: &Block{Statements: []Statement{
					&CmdStatement{Cmd: &AssignCmd{
						LValues: []LValue{
							&VarLValue{Var: Var{Name: "l"}},
							&MutateLValue{Exp: &CopyExp{Var: Var{Name: "r"}}},
							&PopLValue{},
						},
						Exp: &CallExp{
							Call: &ModuleCall{Module: "Coin", Name: "mint"},
							Arg:  &ExprList{Exps: []Exp{&ValueExp{Val: BoolVal{Value: true}}}},
						},
					}},
					&CmdStatement{Cmd: &UnpackCmd{
						Name:     "S",
						Bindings: []FieldBinding{{Field: Field{Name: "f"}, Var: Var{Name: "f"}}},
						Exp:      &MoveExp{Var: Var{Name: "s"}},
					}},
					&IfElseStatement{
						Cond:      &UnaryExp{Op: OpNot, Exp: &CopyExp{Var: Var{Name: "c"}}},
						IfBlock:   &Block{Statements: []Statement{&CmdStatement{Cmd: &AbortCmd{Exp: &ValueExp{Val: U64Val{Value: 1}}}}}},
						ElseBlock: &Block{Statements: []Statement{&EmptyStatement{}}},
					},
					&WhileStatement{
						Cond:  &BinopExp{Left: &ValueExp{Val: U64Val{}}, Op: OpLt, Right: &ValueExp{Val: U64Val{Value: 2}}},
						Block: &Block{Statements: []Statement{&CmdStatement{Cmd: &ContinueCmd{}}}},
					},
					&LoopStatement{
						Block: &Block{Statements: []Statement{&CmdStatement{Cmd: &BreakCmd{}}}},
					},
					&CmdStatement{Cmd: &ExpCmd{Exp: &CallExp{
						Call: &BuiltinCall{Builtin: BuiltinExists, TypeActuals: []Type{&TypeParam{Name: "T"}}},
						Arg:  &ExprList{},
					}}},
					&CmdStatement{Cmd: &ReturnCmd{Exp: &ExprList{Exps: []Exp{
						&DereferenceExp{Exp: &BorrowExp{Exp: &CopyExp{Var: Var{Name: "s"}}, Field: Field{Name: "f"}}},
						&PackExp{Name: "S", Fields: []ExpField{{Field: Field{Name: "f"}, Exp: &ValueExp{Val: ByteArrayVal{}}}}},
					}}}},
				}},
			}},
		}},
		Script: &Script{Main: &Function{Name: "main", Code: &Block{}}},
	}

	v := &BaseVisitor{}
	if out := prog.Accept(v); out != nil {
		t.Errorf("Expected nil from the base visitor, got %v", out)
	}
}
