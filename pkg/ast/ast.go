// Package ast defines the abstract syntax tree produced by the Move IR parser
package ast

import (
	"encoding/hex"
	"fmt"
)

// Span is the half-open byte range [Start, End) of the source text a node
// was parsed from. Synthesized nodes carry a zero span.
type Span struct {
	Start int
	End   int
}

// Contains reports whether o lies entirely inside s.
func (s Span) Contains(o Span) bool {
	return s.Start <= o.Start && o.End <= s.End
}

// IsZero reports whether the span is the synthesized zero span.
func (s Span) IsZero() bool {
	return s.Start == 0 && s.End == 0
}

func (s Span) String() string {
	return fmt.Sprintf("[%d, %d)", s.Start, s.End)
}

// AddressLength is the fixed byte width of an account address.
const AddressLength = 32

// Address is a fixed-width account address. Literals shorter than the full
// width are left zero-padded.
type Address [AddressLength]byte

func (a Address) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

// SelfModuleName is the reserved alias identifying the current module.
// Import aliases may not shadow it.
const SelfModuleName = "Self"

// Var is a local variable name together with the span it was written at.
type Var struct {
	Name string
	Span Span
}

// Field is a struct field name together with the span it was written at.
type Field struct {
	Name string
	Span Span
}

// Program is one compilation unit: the modules it declares followed by the
// transaction script. When the source was a bare module the script holds a
// synthesized empty main.
type Program struct {
	Modules []*Module
	Script  *Script
}

// ScriptOrModule is the result of auto-detecting a top-level unit. It is
// either a *Script or a *Module.
type ScriptOrModule interface {
	ASTNode
	isScriptOrModule()
}

// Script is a transaction script: imports followed by a single main function.
type Script struct {
	Imports []*ImportDefinition
	Main    *Function
	Span    Span
}

func (*Script) isScriptOrModule() {}

// Module is a named collection of imports, struct definitions and function
// definitions, in declaration order.
type Module struct {
	Name      string
	Imports   []*ImportDefinition
	Structs   []*StructDefinition
	Functions []*Function
	Span      Span
}

func (*Module) isScriptOrModule() {}

// ImportDefinition binds a module ident to a local alias. When the source
// carries no `as` clause the alias defaults to the imported module's name.
type ImportDefinition struct {
	Ident ModuleIdent
	Alias string
	Span  Span
}

// ModuleIdent names an imported module: either address-qualified or in the
// transaction scope.
type ModuleIdent interface {
	ASTNode
	isModuleIdent()
	ModuleName() string
}

// QualifiedModuleIdent is an `address.name` module ident.
type QualifiedModuleIdent struct {
	Address Address
	Name    string
	Span    Span
}

func (*QualifiedModuleIdent) isModuleIdent() {}

// ModuleName returns the module component of the ident.
func (m *QualifiedModuleIdent) ModuleName() string { return m.Name }

// TransactionModuleIdent is a `Transaction.name` module ident.
type TransactionModuleIdent struct {
	Name string
	Span Span
}

func (*TransactionModuleIdent) isModuleIdent() {}

// ModuleName returns the module component of the ident.
func (m *TransactionModuleIdent) ModuleName() string { return m.Name }

// Kind classifies a type parameter.
type Kind int

const (
	// KindAll is the unconstrained kind used when no annotation is written.
	KindAll Kind = iota
	// KindResource marks a linear, non-duplicable type parameter.
	KindResource
	// KindUnrestricted marks a freely copyable type parameter.
	KindUnrestricted
)

func (k Kind) String() string {
	switch k {
	case KindResource:
		return "resource"
	case KindUnrestricted:
		return "unrestricted"
	default:
		return "all"
	}
}

// TypeFormal is one declared type parameter with its kind constraint.
type TypeFormal struct {
	Name string
	Kind Kind
	Span Span
}

// StructDefinition declares a struct or resource. Native structs carry no
// field list.
type StructDefinition struct {
	IsResource  bool
	IsNative    bool
	Name        string
	TypeFormals []TypeFormal
	Fields      []StructField
	Span        Span
}

// StructField is one declared field. Order follows the source.
type StructField struct {
	Field Field
	Type  Type
}

// Visibility is a function's declared visibility.
type Visibility int

const (
	// Internal is the default visibility when `public` is absent.
	Internal Visibility = iota
	// Public marks a function callable from outside its module.
	Public
)

func (v Visibility) String() string {
	if v == Public {
		return "public"
	}
	return "internal"
}

// FuncLocal is one `let` declaration in a function body.
type FuncLocal struct {
	Var  Var
	Type Type
	Span Span
}

// FuncArg is one formal argument.
type FuncArg struct {
	Var  Var
	Type Type
}

// Function is a function definition. Native functions have a nil Code and
// no locals.
type Function struct {
	Visibility  Visibility
	Name        string
	TypeFormals []TypeFormal
	Args        []FuncArg
	ReturnTypes []Type
	Acquires    []string
	IsNative    bool
	Locals      []FuncLocal
	Code        *Block
	Span        Span
}

// Type is one of the surface types: a primitive, a reference, a struct
// instantiation, or a type parameter.
type Type interface {
	ASTNode
	isType()
	Loc() Span
}

// PrimitiveKind enumerates the builtin value types.
type PrimitiveKind int

const (
	PrimAddress PrimitiveKind = iota
	PrimU64
	PrimBool
	PrimByteArray
)

func (k PrimitiveKind) String() string {
	switch k {
	case PrimAddress:
		return "address"
	case PrimU64:
		return "u64"
	case PrimBool:
		return "bool"
	default:
		return "bytearray"
	}
}

// PrimitiveType is one of address, u64, bool, bytearray.
type PrimitiveType struct {
	Kind PrimitiveKind
	Span Span
}

func (*PrimitiveType) isType() {}

// Loc returns the node's source span.
func (t *PrimitiveType) Loc() Span { return t.Span }

// ReferenceType is `&T` or `&mut T`.
type ReferenceType struct {
	Mut  bool
	To   Type
	Span Span
}

func (*ReferenceType) isType() {}

// Loc returns the node's source span.
func (t *ReferenceType) Loc() Span { return t.Span }

// QualifiedStructIdent names a struct as `module.name`.
type QualifiedStructIdent struct {
	Module string
	Name   string
	Span   Span
}

func (q QualifiedStructIdent) String() string {
	return q.Module + "." + q.Name
}

// StructType is a struct instantiation, optionally with type actuals.
type StructType struct {
	Ident       QualifiedStructIdent
	TypeActuals []Type
	Span        Span
}

func (*StructType) isType() {}

// Loc returns the node's source span.
func (t *StructType) Loc() Span { return t.Span }

// TypeParam is a bare name in type position. The parser cannot tell a type
// parameter from an unqualified struct name; name resolution decides later.
type TypeParam struct {
	Name string
	Span Span
}

func (*TypeParam) isType() {}

// Loc returns the node's source span.
func (t *TypeParam) Loc() Span { return t.Span }
