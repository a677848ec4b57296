package ast

// Cmd is any imperative command.
type Cmd interface {
	ASTNode
	isCmd()
	Loc() Span
}

// LValue is one assignment target.
type LValue interface {
	ASTNode
	isLValue()
	Loc() Span
}

// VarLValue assigns into a local.
type VarLValue struct {
	Var  Var
	Span Span
}

func (*VarLValue) isLValue() {}

// Loc returns the node's source span.
func (l *VarLValue) Loc() Span { return l.Span }

// MutateLValue writes through a reference, `*e = …`.
type MutateLValue struct {
	Exp  Exp
	Span Span
}

func (*MutateLValue) isLValue() {}

// Loc returns the node's source span.
func (l *MutateLValue) Loc() Span { return l.Span }

// PopLValue discards a value, written `_`.
type PopLValue struct {
	Span Span
}

func (*PopLValue) isLValue() {}

// Loc returns the node's source span.
func (l *PopLValue) Loc() Span { return l.Span }

// AssignCmd is `lv1, lv2, … = e`.
type AssignCmd struct {
	LValues []LValue
	Exp     Exp
	Span    Span
}

func (*AssignCmd) isCmd() {}

// Loc returns the node's source span.
func (c *AssignCmd) Loc() Span { return c.Span }

// FieldBinding is one `field: var` binding in an unpack. A bare `field`
// binds a variable of the same name, carrying the field's span.
type FieldBinding struct {
	Field Field
	Var   Var
}

// UnpackCmd destructures a struct value, `Name<tys>{f: v, …} = e`.
type UnpackCmd struct {
	Name        string
	TypeActuals []Type
	Bindings    []FieldBinding
	Exp         Exp
	Span        Span
}

func (*UnpackCmd) isCmd() {}

// Loc returns the node's source span.
func (c *UnpackCmd) Loc() Span { return c.Span }

// AbortCmd ends the transaction, optionally with an error expression.
type AbortCmd struct {
	Exp  Exp
	Span Span
}

func (*AbortCmd) isCmd() {}

// Loc returns the node's source span.
func (c *AbortCmd) Loc() Span { return c.Span }

// ReturnCmd returns from the enclosing function. Exp is always an
// *ExprList, possibly empty.
type ReturnCmd struct {
	Exp  Exp
	Span Span
}

func (*ReturnCmd) isCmd() {}

// Loc returns the node's source span.
func (c *ReturnCmd) Loc() Span { return c.Span }

// BreakCmd exits the innermost loop.
type BreakCmd struct {
	Span Span
}

func (*BreakCmd) isCmd() {}

// Loc returns the node's source span.
func (c *BreakCmd) Loc() Span { return c.Span }

// ContinueCmd restarts the innermost loop.
type ContinueCmd struct {
	Span Span
}

func (*ContinueCmd) isCmd() {}

// Loc returns the node's source span.
func (c *ContinueCmd) Loc() Span { return c.Span }

// ExpCmd evaluates a call or expression list for effect.
type ExpCmd struct {
	Exp  Exp
	Span Span
}

func (*ExpCmd) isCmd() {}

// Loc returns the node's source span.
func (c *ExpCmd) Loc() Span { return c.Span }

// Statement is one entry in a block.
type Statement interface {
	ASTNode
	isStatement()
	Loc() Span
}

// CmdStatement wraps a command terminated by `;`.
type CmdStatement struct {
	Cmd  Cmd
	Span Span
}

func (*CmdStatement) isStatement() {}

// Loc returns the node's source span.
func (s *CmdStatement) Loc() Span { return s.Span }

// IfElseStatement is `if (cond) block` with an optional else block.
// `assert(e, err);` desugars to one in the parser.
type IfElseStatement struct {
	Cond      Exp
	IfBlock   *Block
	ElseBlock *Block
	Span      Span
}

func (*IfElseStatement) isStatement() {}

// Loc returns the node's source span.
func (s *IfElseStatement) Loc() Span { return s.Span }

// WhileStatement is `while (cond) block`.
type WhileStatement struct {
	Cond  Exp
	Block *Block
	Span  Span
}

func (*WhileStatement) isStatement() {}

// Loc returns the node's source span.
func (s *WhileStatement) Loc() Span { return s.Span }

// LoopStatement is `loop block`.
type LoopStatement struct {
	Block *Block
	Span  Span
}

func (*LoopStatement) isStatement() {}

// Loc returns the node's source span.
func (s *LoopStatement) Loc() Span { return s.Span }

// EmptyStatement is a lone `;`.
type EmptyStatement struct {
	Span Span
}

func (*EmptyStatement) isStatement() {}

// Loc returns the node's source span.
func (s *EmptyStatement) Loc() Span { return s.Span }

// Block is an ordered statement list delimited by braces.
type Block struct {
	Statements []Statement
	Span       Span
}
