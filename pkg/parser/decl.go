package parser

import (
	"github.com/naolduga/mvir/pkg/ast"
)

// transactionIdentName is the literal identifier that opens a
// transaction-scope module ident. The lexer tokenizes it as part of a
// DotName, so the parser handles the special case here.
const transactionIdentName = "Transaction"

func (p *parser) parseImport() (*ast.ImportDefinition, error) {
	kw, err := p.expectKeyword("import")
	if err != nil {
		return nil, err
	}
	ident, err := p.parseModuleIdent()
	if err != nil {
		return nil, err
	}
	alias := ident.ModuleName()
	aliasTok := p.peek()
	if p.atKeyword("as") {
		p.next()
		aliasTok = p.peek()
		alias, _, err = p.parseName()
		if err != nil {
			return nil, err
		}
	}
	if alias == ast.SelfModuleName {
		return nil, errAt(aliasTok, "cannot use reserved name %s as an import alias", ast.SelfModuleName)
	}
	semi, err := p.expectPunct(";")
	if err != nil {
		return nil, err
	}
	return &ast.ImportDefinition{
		Ident: ident,
		Alias: alias,
		Span:  ast.Span{Start: kw.Pos.Offset, End: tokenSpan(semi).End},
	}, nil
}

// parseModuleIdent parses `0x….name` or `Transaction.name`. Any other
// leading identifier before the dot is a parse error.
func (p *parser) parseModuleIdent() (ast.ModuleIdent, error) {
	t := p.peek()
	switch t.Type {
	case tokAddress:
		p.next()
		addr, err := decodeAddress(t)
		if err != nil {
			return nil, err
		}
		if _, err := p.expectOp("."); err != nil {
			return nil, err
		}
		name, nameSpan, err := p.parseName()
		if err != nil {
			return nil, err
		}
		return &ast.QualifiedModuleIdent{
			Address: addr,
			Name:    name,
			Span:    ast.Span{Start: t.Pos.Offset, End: nameSpan.End},
		}, nil

	case tokDotName:
		p.next()
		first, second, err := splitDotName(t)
		if err != nil {
			return nil, err
		}
		if first != transactionIdentName {
			return nil, errAt(t, "module ident must start with an address or %s, found %q", transactionIdentName, first)
		}
		return &ast.TransactionModuleIdent{Name: second, Span: tokenSpan(t)}, nil
	}
	return nil, errAt(t, "expected a module ident, found %s", describe(t))
}

// atStructDecl reports whether the cursor sits on a struct declaration,
// including the `native struct|resource` headers.
func (p *parser) atStructDecl() bool {
	if p.atKeyword("struct") || p.atKeyword("resource") {
		return true
	}
	if p.atKeyword("native") {
		n := p.peekAt(1)
		return n.Type == tokIdent && (n.Value == "struct" || n.Value == "resource")
	}
	return false
}

func (p *parser) parseStructDecl() (*ast.StructDefinition, error) {
	start := p.peek()
	native := false
	if p.atKeyword("native") {
		p.next()
		native = true
	}
	var isResource bool
	switch {
	case p.atKeyword("resource"):
		p.next()
		isResource = true
	case p.atKeyword("struct"):
		p.next()
	default:
		return nil, errAt(p.peek(), "expected struct or resource, found %s", describe(p.peek()))
	}
	name, _, formals, err := p.parseNameAndTypeFormals()
	if err != nil {
		return nil, err
	}
	def := &ast.StructDefinition{
		IsResource:  isResource,
		IsNative:    native,
		Name:        name,
		TypeFormals: formals,
	}
	if native {
		semi, err := p.expectPunct(";")
		if err != nil {
			return nil, err
		}
		def.Span = ast.Span{Start: start.Pos.Offset, End: tokenSpan(semi).End}
		return def, nil
	}
	if _, err := p.expectPunct("{"); err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	for !p.atPunct("}") {
		ft := p.peek()
		f, err := p.parseField()
		if err != nil {
			return nil, err
		}
		if seen[f.Name] {
			return nil, errAt(ft, "duplicate field %s", f.Name)
		}
		seen[f.Name] = true
		if _, err := p.expectPunct(":"); err != nil {
			return nil, err
		}
		ty, err := p.parseType()
		if err != nil {
			return nil, err
		}
		def.Fields = append(def.Fields, ast.StructField{Field: f, Type: ty})
		if p.atPunct(",") {
			p.next()
			continue
		}
		break
	}
	rb, err := p.expectPunct("}")
	if err != nil {
		return nil, err
	}
	def.Span = ast.Span{Start: start.Pos.Offset, End: tokenSpan(rb).End}
	return def, nil
}

func (p *parser) parseFunctionDecl() (*ast.Function, error) {
	start := p.peek()
	native := false
	if p.atKeyword("native") {
		p.next()
		native = true
	}
	vis := ast.Internal
	if p.atKeyword("public") {
		p.next()
		vis = ast.Public
	}
	name, _, formals, err := p.parseNameAndTypeFormals()
	if err != nil {
		return nil, err
	}
	args, err := p.parseFunctionArgs()
	if err != nil {
		return nil, err
	}
	fn := &ast.Function{
		Visibility:  vis,
		Name:        name,
		TypeFormals: formals,
		Args:        args,
		IsNative:    native,
	}
	if p.atPunct(":") {
		p.next()
		for {
			ty, err := p.parseType()
			if err != nil {
				return nil, err
			}
			fn.ReturnTypes = append(fn.ReturnTypes, ty)
			if p.atOp("*") {
				p.next()
				continue
			}
			break
		}
	}
	if p.atKeyword("acquires") {
		p.next()
		for {
			aname, _, err := p.parseName()
			if err != nil {
				return nil, err
			}
			fn.Acquires = append(fn.Acquires, aname)
			if p.atPunct(",") {
				p.next()
				continue
			}
			break
		}
	}
	if native {
		semi, err := p.expectPunct(";")
		if err != nil {
			return nil, err
		}
		fn.Span = ast.Span{Start: start.Pos.Offset, End: tokenSpan(semi).End}
		return fn, nil
	}
	locals, code, err := p.parseFunctionBlock()
	if err != nil {
		return nil, err
	}
	fn.Locals = locals
	fn.Code = code
	fn.Span = ast.Span{Start: start.Pos.Offset, End: code.Span.End}
	return fn, nil
}

func (p *parser) parseFunctionArgs() ([]ast.FuncArg, error) {
	if _, err := p.expectPunct("("); err != nil {
		return nil, err
	}
	var args []ast.FuncArg
	for !p.atPunct(")") {
		v, err := p.parseVar()
		if err != nil {
			return nil, err
		}
		if _, err := p.expectPunct(":"); err != nil {
			return nil, err
		}
		ty, err := p.parseType()
		if err != nil {
			return nil, err
		}
		args = append(args, ast.FuncArg{Var: v, Type: ty})
		if p.atPunct(",") {
			p.next()
			continue
		}
		break
	}
	if _, err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	return args, nil
}

// parseModule parses `module Name { imports structs functions }`. The
// section order is fixed by the grammar; declarations out of order are
// reported explicitly.
func (p *parser) parseModule() (*ast.Module, error) {
	kw, err := p.expectKeyword("module")
	if err != nil {
		return nil, err
	}
	name, _, err := p.parseName()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectPunct("{"); err != nil {
		return nil, err
	}
	m := &ast.Module{Name: name}
	for p.atKeyword("import") {
		imp, err := p.parseImport()
		if err != nil {
			return nil, err
		}
		m.Imports = append(m.Imports, imp)
	}
	for p.atStructDecl() {
		s, err := p.parseStructDecl()
		if err != nil {
			return nil, err
		}
		m.Structs = append(m.Structs, s)
	}
	for !p.atPunct("}") && !p.peek().EOF() {
		switch {
		case p.atKeyword("import"):
			return nil, errAt(p.peek(), "imports must precede struct and function declarations")
		case p.atStructDecl():
			return nil, errAt(p.peek(), "struct declarations must precede function declarations")
		}
		f, err := p.parseFunctionDecl()
		if err != nil {
			return nil, err
		}
		m.Functions = append(m.Functions, f)
	}
	rb, err := p.expectPunct("}")
	if err != nil {
		return nil, err
	}
	m.Span = ast.Span{Start: kw.Pos.Offset, End: tokenSpan(rb).End}
	return m, nil
}

// parseScript parses imports followed by the main function. The main is
// public by construction with no return types, type formals or acquires.
func (p *parser) parseScript() (*ast.Script, error) {
	start := p.peek()
	var imports []*ast.ImportDefinition
	for p.atKeyword("import") {
		imp, err := p.parseImport()
		if err != nil {
			return nil, err
		}
		imports = append(imports, imp)
	}
	kw, err := p.expectKeyword("main")
	if err != nil {
		return nil, err
	}
	args, err := p.parseFunctionArgs()
	if err != nil {
		return nil, err
	}
	locals, code, err := p.parseFunctionBlock()
	if err != nil {
		return nil, err
	}
	main := &ast.Function{
		Visibility: ast.Public,
		Name:       "main",
		Args:       args,
		Locals:     locals,
		Code:       code,
		Span:       ast.Span{Start: kw.Pos.Offset, End: code.Span.End},
	}
	return &ast.Script{
		Imports: imports,
		Main:    main,
		Span:    ast.Span{Start: start.Pos.Offset, End: code.Span.End},
	}, nil
}
