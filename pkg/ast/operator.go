package ast

// BinOp enumerates the binary operators, grouped by precedence tier from
// loosest (comparison) to tightest (multiplicative).
type BinOp int

const (
	OpEq BinOp = iota
	OpNeq
	OpLt
	OpGt
	OpLe
	OpGe
	OpOr
	OpAnd
	OpXor
	OpBitOr
	OpBitAnd
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
)

var binOpNames = map[BinOp]string{
	OpEq:     "==",
	OpNeq:    "!=",
	OpLt:     "<",
	OpGt:     ">",
	OpLe:     "<=",
	OpGe:     ">=",
	OpOr:     "||",
	OpAnd:    "&&",
	OpXor:    "^",
	OpBitOr:  "|",
	OpBitAnd: "&",
	OpAdd:    "+",
	OpSub:    "-",
	OpMul:    "*",
	OpDiv:    "/",
	OpMod:    "%",
}

func (op BinOp) String() string {
	return binOpNames[op]
}

// UnaryOp enumerates the prefix operators that survive into the AST.
// Dereference and the borrow forms have dedicated node types.
type UnaryOp int

const (
	// OpNot is logical negation, `!e`.
	OpNot UnaryOp = iota
)

func (op UnaryOp) String() string {
	return "!"
}

// Builtin enumerates the builtin functions callable without import.
type Builtin int

const (
	BuiltinExists Builtin = iota
	BuiltinBorrowGlobal
	BuiltinBorrowGlobalMut
	BuiltinMoveFrom
	BuiltinMoveToSender
	BuiltinFreeze
	BuiltinGetTxnSender
	BuiltinGetTxnSequenceNumber
	BuiltinGetTxnPublicKey
	BuiltinGetTxnGasUnitPrice
	BuiltinGetTxnMaxGasUnits
	BuiltinCreateAccount
)

var builtinNames = map[Builtin]string{
	BuiltinExists:               "exists",
	BuiltinBorrowGlobal:         "borrow_global",
	BuiltinBorrowGlobalMut:      "borrow_global_mut",
	BuiltinMoveFrom:             "move_from",
	BuiltinMoveToSender:         "move_to_sender",
	BuiltinFreeze:               "freeze",
	BuiltinGetTxnSender:         "get_txn_sender",
	BuiltinGetTxnSequenceNumber: "get_txn_sequence_number",
	BuiltinGetTxnPublicKey:      "get_txn_public_key",
	BuiltinGetTxnGasUnitPrice:   "get_txn_gas_unit_price",
	BuiltinGetTxnMaxGasUnits:    "get_txn_max_gas_units",
	BuiltinCreateAccount:        "create_account",
}

func (b Builtin) String() string {
	return builtinNames[b]
}

// TakesTypeActuals reports whether the builtin is written with a
// `<T>` type-actual list.
func (b Builtin) TakesTypeActuals() bool {
	switch b {
	case BuiltinExists, BuiltinBorrowGlobal, BuiltinBorrowGlobalMut,
		BuiltinMoveFrom, BuiltinMoveToSender:
		return true
	}
	return false
}
