package ast

// Exp is any expression node.
type Exp interface {
	ASTNode
	isExp()
	Loc() Span
}

// CopyableVal is a literal value: an address, a u64, a bool, or a bytearray.
type CopyableVal interface {
	isCopyableVal()
}

// AddressVal is an account address literal.
type AddressVal struct {
	Value Address
}

func (AddressVal) isCopyableVal() {}

// U64Val is an unsigned 64-bit integer literal.
type U64Val struct {
	Value uint64
}

func (U64Val) isCopyableVal() {}

// BoolVal is a true/false literal.
type BoolVal struct {
	Value bool
}

func (BoolVal) isCopyableVal() {}

// ByteArrayVal is a decoded h"…" literal.
type ByteArrayVal struct {
	Value []byte
}

func (ByteArrayVal) isCopyableVal() {}

// ValueExp is a literal in expression position.
type ValueExp struct {
	Val  CopyableVal
	Span Span
}

func (*ValueExp) isExp() {}

// Loc returns the node's source span.
func (e *ValueExp) Loc() Span { return e.Span }

// MoveExp is `move(v)`: the local is consumed.
type MoveExp struct {
	Var  Var
	Span Span
}

func (*MoveExp) isExp() {}

// Loc returns the node's source span.
func (e *MoveExp) Loc() Span { return e.Span }

// CopyExp is `copy(v)`: the local is read by copy.
type CopyExp struct {
	Var  Var
	Span Span
}

func (*CopyExp) isExp() {}

// Loc returns the node's source span.
func (e *CopyExp) Loc() Span { return e.Span }

// BorrowLocalExp is `&v` or `&mut v`.
type BorrowLocalExp struct {
	Mut  bool
	Var  Var
	Span Span
}

func (*BorrowLocalExp) isExp() {}

// Loc returns the node's source span.
func (e *BorrowLocalExp) Loc() Span { return e.Span }

// BorrowExp is a field projection borrow, `&e.f` or `&mut e.f`.
type BorrowExp struct {
	Mut   bool
	Exp   Exp
	Field Field
	Span  Span
}

func (*BorrowExp) isExp() {}

// Loc returns the node's source span.
func (e *BorrowExp) Loc() Span { return e.Span }

// DereferenceExp is `*e`.
type DereferenceExp struct {
	Exp  Exp
	Span Span
}

func (*DereferenceExp) isExp() {}

// Loc returns the node's source span.
func (e *DereferenceExp) Loc() Span { return e.Span }

// UnaryExp is a prefix operator applied to an expression.
type UnaryExp struct {
	Op   UnaryOp
	Exp  Exp
	Span Span
}

func (*UnaryExp) isExp() {}

// Loc returns the node's source span.
func (e *UnaryExp) Loc() Span { return e.Span }

// BinopExp is a binary operator applied to two expressions. Chains of the
// same tier fold to the left.
type BinopExp struct {
	Left  Exp
	Op    BinOp
	Right Exp
	Span  Span
}

func (*BinopExp) isExp() {}

// Loc returns the node's source span.
func (e *BinopExp) Loc() Span { return e.Span }

// ExpField is one `field: exp` binding in a pack expression.
type ExpField struct {
	Field Field
	Exp   Exp
}

// PackExp constructs a struct value, `Name<tys>{f: e, …}`.
type PackExp struct {
	Name        string
	TypeActuals []Type
	Fields      []ExpField
	Span        Span
}

func (*PackExp) isExp() {}

// Loc returns the node's source span.
func (e *PackExp) Loc() Span { return e.Span }

// CallExp applies a builtin or module function to an argument, which is
// usually an ExprList.
type CallExp struct {
	Call FunctionCall
	Arg  Exp
	Span Span
}

func (*CallExp) isExp() {}

// Loc returns the node's source span.
func (e *CallExp) Loc() Span { return e.Span }

// ExprList is a tuple of expressions, written as a parenthesized comma
// list. Return commands always box their operands in one.
type ExprList struct {
	Exps []Exp
	Span Span
}

func (*ExprList) isExp() {}

// Loc returns the node's source span.
func (e *ExprList) Loc() Span { return e.Span }

// FunctionCall is the callee of a CallExp.
type FunctionCall interface {
	ASTNode
	isFunctionCall()
}

// BuiltinCall names a builtin function, with type actuals where the builtin
// takes them.
type BuiltinCall struct {
	Builtin     Builtin
	TypeActuals []Type
	Span        Span
}

func (*BuiltinCall) isFunctionCall() {}

// ModuleCall names a function in an imported module, `module.name<tys>`.
type ModuleCall struct {
	Module      string
	Name        string
	TypeActuals []Type
	Span        Span
}

func (*ModuleCall) isFunctionCall() {}
