// Package parser implements the Move IR surface parser: UTF-8 source text
// in, spanned AST out. The lexical layer is a participle regex lexer; the
// grammar itself is recursive descent over the resulting token stream.
package parser

import (
	"encoding/hex"
	"errors"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/naolduga/mvir/pkg/ast"
)

// moveLexer defines the regex terminals. Rule order is load-bearing:
//
//   - ByteArray before Ident so `h"00"` is not lexed as the name `h`.
//   - Address before Number so `0x1` is not lexed as `0` then `x1`.
//   - AmpMut before Op so `&mut ` (trailing space included) is one token.
//   - NameBeginTy before DotName and Ident: an identifier immediately
//     followed by `<` opens a type-parameter or type-actual list. With
//     whitespace before the `<` the identifier lexes alone and the `<`
//     becomes the comparison operator.
//   - DotName before Ident: `a.b` is a single unsplit token.
//   - ModulesLabel/ScriptLabel before Ident: the program-level labels
//     carry their colon.
var moveLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `//[^\n]*`},
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "ByteArray", Pattern: `h"[0-9a-fA-F]*"`},
	{Name: "Address", Pattern: `0[xX][0-9a-fA-F]+`},
	{Name: "Number", Pattern: `[0-9]+`},
	{Name: "AmpMut", Pattern: `&mut `},
	{Name: "NameBeginTy", Pattern: `[a-zA-Z$_][a-zA-Z0-9$_]*<`},
	{Name: "DotName", Pattern: `[a-zA-Z$_][a-zA-Z0-9$_]*\.[a-zA-Z$_][a-zA-Z0-9$_]*`},
	{Name: "ModulesLabel", Pattern: `modules:`},
	{Name: "ScriptLabel", Pattern: `script:`},
	{Name: "Ident", Pattern: `[a-zA-Z$_][a-zA-Z0-9$_]*`},
	{Name: "Op", Pattern: `==|!=|<=|>=|\|\||&&|[-+*/%^|&<>!=.]`},
	{Name: "Punct", Pattern: `[(){},;:]`},
})

var symbols = moveLexer.Symbols()

var (
	tokComment      = symbols["Comment"]
	tokWhitespace   = symbols["Whitespace"]
	tokByteArray    = symbols["ByteArray"]
	tokAddress      = symbols["Address"]
	tokNumber       = symbols["Number"]
	tokAmpMut       = symbols["AmpMut"]
	tokNameBeginTy  = symbols["NameBeginTy"]
	tokDotName      = symbols["DotName"]
	tokModulesLabel = symbols["ModulesLabel"]
	tokScriptLabel  = symbols["ScriptLabel"]
	tokIdent        = symbols["Ident"]
	tokOp           = symbols["Op"]
	tokPunct        = symbols["Punct"]
)

// keywords are reserved and rejected wherever a plain name is expected.
var keywords = map[string]bool{
	"true": true, "false": true,
	"if": true, "else": true, "while": true, "loop": true,
	"return": true, "break": true, "continue": true, "abort": true,
	"assert": true, "let": true, "move": true, "copy": true,
	"import": true, "as": true, "module": true, "main": true,
	"public": true, "native": true, "resource": true, "unrestricted": true,
	"struct": true, "acquires": true,
	"address": true, "u64": true, "bool": true, "bytearray": true,

	// builtin function names
	"exists": true, "borrow_global": true, "borrow_global_mut": true,
	"move_from": true, "move_to_sender": true, "freeze": true,
	"get_txn_sender": true, "get_txn_sequence_number": true,
	"get_txn_public_key": true, "get_txn_gas_unit_price": true,
	"get_txn_max_gas_units": true, "create_account": true,
}

// builtins maps a builtin's surface name to its kind.
var builtins = map[string]ast.Builtin{
	"exists":                  ast.BuiltinExists,
	"borrow_global":           ast.BuiltinBorrowGlobal,
	"borrow_global_mut":       ast.BuiltinBorrowGlobalMut,
	"move_from":               ast.BuiltinMoveFrom,
	"move_to_sender":          ast.BuiltinMoveToSender,
	"freeze":                  ast.BuiltinFreeze,
	"get_txn_sender":          ast.BuiltinGetTxnSender,
	"get_txn_sequence_number": ast.BuiltinGetTxnSequenceNumber,
	"get_txn_public_key":      ast.BuiltinGetTxnPublicKey,
	"get_txn_gas_unit_price":  ast.BuiltinGetTxnGasUnitPrice,
	"get_txn_max_gas_units":   ast.BuiltinGetTxnMaxGasUnits,
	"create_account":          ast.BuiltinCreateAccount,
}

// tokenSpan is the half-open byte range a token occupies.
func tokenSpan(t lexer.Token) ast.Span {
	return ast.Span{Start: t.Pos.Offset, End: t.Pos.Offset + len(t.Value)}
}

// scan tokenizes the whole input up front, eliding comments and
// whitespace. The trailing EOF token is kept so the parser can always
// peek.
func scan(filename, source string) ([]lexer.Token, error) {
	lx, err := moveLexer.Lex(filename, strings.NewReader(source))
	if err != nil {
		return nil, lexError(err)
	}
	var toks []lexer.Token
	for {
		t, err := lx.Next()
		if err != nil {
			return nil, lexError(err)
		}
		if t.EOF() {
			toks = append(toks, t)
			return toks, nil
		}
		if t.Type == tokComment || t.Type == tokWhitespace {
			continue
		}
		toks = append(toks, t)
	}
}

func lexError(err error) error {
	var lerr *lexer.Error
	if errors.As(err, &lerr) {
		return &Error{
			Pos:  lerr.Pos,
			Span: ast.Span{Start: lerr.Pos.Offset, End: lerr.Pos.Offset},
			Msg:  lerr.Msg,
		}
	}
	return err
}

// decodeU64 decodes a Number token. Values over 64 bits fail the parse.
func decodeU64(t lexer.Token) (uint64, error) {
	v, err := strconv.ParseUint(t.Value, 10, 64)
	if err != nil {
		return 0, errAt(t, "integer literal %s does not fit in u64", t.Value)
	}
	return v, nil
}

// decodeByteArray decodes an h"…" token. Digits pair up MSB-first; an odd
// digit count fails the parse. The empty literal h"" is valid.
func decodeByteArray(t lexer.Token) ([]byte, error) {
	digits := t.Value[2 : len(t.Value)-1]
	if len(digits)%2 != 0 {
		return nil, errAt(t, "odd-length bytearray literal %s", t.Value)
	}
	b, err := hex.DecodeString(digits)
	if err != nil {
		return nil, errAt(t, "invalid bytearray literal %s", t.Value)
	}
	return b, nil
}

// decodeAddress decodes a 0x… token into a fixed-width address,
// MSB-first with left zero-padding. Literals wider than the address
// fail the parse.
func decodeAddress(t lexer.Token) (ast.Address, error) {
	var a ast.Address
	digits := t.Value[2:]
	if len(digits) > 2*ast.AddressLength {
		return a, errAt(t, "address literal %s is wider than %d bytes", t.Value, ast.AddressLength)
	}
	if len(digits)%2 != 0 {
		digits = "0" + digits
	}
	b, err := hex.DecodeString(digits)
	if err != nil {
		return a, errAt(t, "invalid address literal %s", t.Value)
	}
	copy(a[ast.AddressLength-len(b):], b)
	return a, nil
}
