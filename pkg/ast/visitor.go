package ast

// Visitor interface defines methods for visiting each AST node type.
// Implementations can traverse and analyze the AST by implementing these
// methods. The return type is interface{} so visitors can thread results
// through a traversal (analysis values, rewritten nodes, and so on).
type Visitor interface {
	// Compilation units
	VisitProgram(*Program) interface{}
	VisitScript(*Script) interface{}
	VisitModule(*Module) interface{}
	VisitImportDefinition(*ImportDefinition) interface{}
	VisitQualifiedModuleIdent(*QualifiedModuleIdent) interface{}
	VisitTransactionModuleIdent(*TransactionModuleIdent) interface{}
	VisitStructDefinition(*StructDefinition) interface{}
	VisitFunction(*Function) interface{}

	// Types
	VisitPrimitiveType(*PrimitiveType) interface{}
	VisitReferenceType(*ReferenceType) interface{}
	VisitStructType(*StructType) interface{}
	VisitTypeParam(*TypeParam) interface{}

	// Expressions
	VisitValueExp(*ValueExp) interface{}
	VisitMoveExp(*MoveExp) interface{}
	VisitCopyExp(*CopyExp) interface{}
	VisitBorrowLocalExp(*BorrowLocalExp) interface{}
	VisitBorrowExp(*BorrowExp) interface{}
	VisitDereferenceExp(*DereferenceExp) interface{}
	VisitUnaryExp(*UnaryExp) interface{}
	VisitBinopExp(*BinopExp) interface{}
	VisitPackExp(*PackExp) interface{}
	VisitCallExp(*CallExp) interface{}
	VisitExprList(*ExprList) interface{}
	VisitBuiltinCall(*BuiltinCall) interface{}
	VisitModuleCall(*ModuleCall) interface{}

	// LValues and commands
	VisitVarLValue(*VarLValue) interface{}
	VisitMutateLValue(*MutateLValue) interface{}
	VisitPopLValue(*PopLValue) interface{}
	VisitAssignCmd(*AssignCmd) interface{}
	VisitUnpackCmd(*UnpackCmd) interface{}
	VisitAbortCmd(*AbortCmd) interface{}
	VisitReturnCmd(*ReturnCmd) interface{}
	VisitBreakCmd(*BreakCmd) interface{}
	VisitContinueCmd(*ContinueCmd) interface{}
	VisitExpCmd(*ExpCmd) interface{}

	// Statements
	VisitCmdStatement(*CmdStatement) interface{}
	VisitIfElseStatement(*IfElseStatement) interface{}
	VisitWhileStatement(*WhileStatement) interface{}
	VisitLoopStatement(*LoopStatement) interface{}
	VisitEmptyStatement(*EmptyStatement) interface{}
	VisitBlock(*Block) interface{}
}

// ASTNode is implemented by all AST nodes to support the visitor pattern.
type ASTNode interface {
	Accept(v Visitor) interface{}
}

// Accept methods, one per node type.

func (n *Program) Accept(v Visitor) interface{}                { return v.VisitProgram(n) }
func (n *Script) Accept(v Visitor) interface{}                 { return v.VisitScript(n) }
func (n *Module) Accept(v Visitor) interface{}                 { return v.VisitModule(n) }
func (n *ImportDefinition) Accept(v Visitor) interface{}       { return v.VisitImportDefinition(n) }
func (n *QualifiedModuleIdent) Accept(v Visitor) interface{}   { return v.VisitQualifiedModuleIdent(n) }
func (n *TransactionModuleIdent) Accept(v Visitor) interface{} { return v.VisitTransactionModuleIdent(n) }
func (n *StructDefinition) Accept(v Visitor) interface{}       { return v.VisitStructDefinition(n) }
func (n *Function) Accept(v Visitor) interface{}               { return v.VisitFunction(n) }

func (n *PrimitiveType) Accept(v Visitor) interface{} { return v.VisitPrimitiveType(n) }
func (n *ReferenceType) Accept(v Visitor) interface{} { return v.VisitReferenceType(n) }
func (n *StructType) Accept(v Visitor) interface{}    { return v.VisitStructType(n) }
func (n *TypeParam) Accept(v Visitor) interface{}     { return v.VisitTypeParam(n) }

func (n *ValueExp) Accept(v Visitor) interface{}       { return v.VisitValueExp(n) }
func (n *MoveExp) Accept(v Visitor) interface{}        { return v.VisitMoveExp(n) }
func (n *CopyExp) Accept(v Visitor) interface{}        { return v.VisitCopyExp(n) }
func (n *BorrowLocalExp) Accept(v Visitor) interface{} { return v.VisitBorrowLocalExp(n) }
func (n *BorrowExp) Accept(v Visitor) interface{}      { return v.VisitBorrowExp(n) }
func (n *DereferenceExp) Accept(v Visitor) interface{} { return v.VisitDereferenceExp(n) }
func (n *UnaryExp) Accept(v Visitor) interface{}       { return v.VisitUnaryExp(n) }
func (n *BinopExp) Accept(v Visitor) interface{}       { return v.VisitBinopExp(n) }
func (n *PackExp) Accept(v Visitor) interface{}        { return v.VisitPackExp(n) }
func (n *CallExp) Accept(v Visitor) interface{}        { return v.VisitCallExp(n) }
func (n *ExprList) Accept(v Visitor) interface{}       { return v.VisitExprList(n) }
func (n *BuiltinCall) Accept(v Visitor) interface{}    { return v.VisitBuiltinCall(n) }
func (n *ModuleCall) Accept(v Visitor) interface{}     { return v.VisitModuleCall(n) }

func (n *VarLValue) Accept(v Visitor) interface{}    { return v.VisitVarLValue(n) }
func (n *MutateLValue) Accept(v Visitor) interface{} { return v.VisitMutateLValue(n) }
func (n *PopLValue) Accept(v Visitor) interface{}    { return v.VisitPopLValue(n) }
func (n *AssignCmd) Accept(v Visitor) interface{}    { return v.VisitAssignCmd(n) }
func (n *UnpackCmd) Accept(v Visitor) interface{}    { return v.VisitUnpackCmd(n) }
func (n *AbortCmd) Accept(v Visitor) interface{}     { return v.VisitAbortCmd(n) }
func (n *ReturnCmd) Accept(v Visitor) interface{}    { return v.VisitReturnCmd(n) }
func (n *BreakCmd) Accept(v Visitor) interface{}     { return v.VisitBreakCmd(n) }
func (n *ContinueCmd) Accept(v Visitor) interface{}  { return v.VisitContinueCmd(n) }
func (n *ExpCmd) Accept(v Visitor) interface{}       { return v.VisitExpCmd(n) }

func (n *CmdStatement) Accept(v Visitor) interface{}    { return v.VisitCmdStatement(n) }
func (n *IfElseStatement) Accept(v Visitor) interface{} { return v.VisitIfElseStatement(n) }
func (n *WhileStatement) Accept(v Visitor) interface{}  { return v.VisitWhileStatement(n) }
func (n *LoopStatement) Accept(v Visitor) interface{}   { return v.VisitLoopStatement(n) }
func (n *EmptyStatement) Accept(v Visitor) interface{}  { return v.VisitEmptyStatement(n) }
func (n *Block) Accept(v Visitor) interface{}           { return v.VisitBlock(n) }
