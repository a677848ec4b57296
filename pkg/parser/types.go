package parser

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/naolduga/mvir/pkg/ast"
)

func (p *parser) parseType() (ast.Type, error) {
	t := p.peek()
	switch {
	case p.atKeyword("address"):
		p.next()
		return &ast.PrimitiveType{Kind: ast.PrimAddress, Span: tokenSpan(t)}, nil
	case p.atKeyword("u64"):
		p.next()
		return &ast.PrimitiveType{Kind: ast.PrimU64, Span: tokenSpan(t)}, nil
	case p.atKeyword("bool"):
		p.next()
		return &ast.PrimitiveType{Kind: ast.PrimBool, Span: tokenSpan(t)}, nil
	case p.atKeyword("bytearray"):
		p.next()
		return &ast.PrimitiveType{Kind: ast.PrimByteArray, Span: tokenSpan(t)}, nil

	case t.Type == tokAmpMut:
		p.next()
		to, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return &ast.ReferenceType{
			Mut:  true,
			To:   to,
			Span: ast.Span{Start: t.Pos.Offset, End: to.Loc().End},
		}, nil

	case t.Type == tokOp && t.Value == "&":
		p.next()
		to, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return &ast.ReferenceType{
			Mut:  false,
			To:   to,
			Span: ast.Span{Start: t.Pos.Offset, End: to.Loc().End},
		}, nil

	case t.Type == tokDotName:
		p.next()
		mod, name, err := splitDotName(t)
		if err != nil {
			return nil, err
		}
		ident := ast.QualifiedStructIdent{Module: mod, Name: name, Span: tokenSpan(t)}
		span := tokenSpan(t)
		var tys []ast.Type
		if p.atOp("<") {
			p.next()
			var gt lexer.Token
			tys, gt, err = p.parseTypeList()
			if err != nil {
				return nil, err
			}
			span.End = tokenSpan(gt).End
		}
		return &ast.StructType{Ident: ident, TypeActuals: tys, Span: span}, nil

	case t.Type == tokIdent && !keywords[t.Value]:
		p.next()
		return &ast.TypeParam{Name: t.Value, Span: tokenSpan(t)}, nil
	}
	return nil, errAt(t, "expected a type, found %s", describe(t))
}

// parseTypeList parses a comma-separated type list after its opening `<`
// has been consumed, through the closing `>`. A trailing comma and the
// empty list are accepted.
func (p *parser) parseTypeList() ([]ast.Type, lexer.Token, error) {
	var tys []ast.Type
	for !p.atOp(">") {
		ty, err := p.parseType()
		if err != nil {
			return nil, lexer.Token{}, err
		}
		tys = append(tys, ty)
		if p.atPunct(",") {
			p.next()
			continue
		}
		break
	}
	gt, err := p.expectOp(">")
	if err != nil {
		return nil, lexer.Token{}, err
	}
	return tys, gt, nil
}

// parseNameAndTypeFormals parses `name<formal, …>` or a bare `name`. The
// formal list opens only on the NameBeginTy token, so whitespace between
// the name and the `<` is a parse error downstream, as intended.
func (p *parser) parseNameAndTypeFormals() (string, ast.Span, []ast.TypeFormal, error) {
	t := p.peek()
	if t.Type != tokNameBeginTy {
		name, span, err := p.parseName()
		return name, span, nil, err
	}
	name := strings.TrimSuffix(t.Value, "<")
	if keywords[name] {
		return "", ast.Span{}, nil, errAt(t, "%q is a reserved word and cannot be used as a name", name)
	}
	p.next()
	var formals []ast.TypeFormal
	for !p.atOp(">") {
		fname, fspan, err := p.parseName()
		if err != nil {
			return "", ast.Span{}, nil, err
		}
		kind := ast.KindAll
		end := fspan.End
		if p.atPunct(":") {
			p.next()
			var kspan ast.Span
			kind, kspan, err = p.parseKind()
			if err != nil {
				return "", ast.Span{}, nil, err
			}
			end = kspan.End
		}
		formals = append(formals, ast.TypeFormal{
			Name: fname,
			Kind: kind,
			Span: ast.Span{Start: fspan.Start, End: end},
		})
		if p.atPunct(",") {
			p.next()
			continue
		}
		break
	}
	gt, err := p.expectOp(">")
	if err != nil {
		return "", ast.Span{}, nil, err
	}
	span := ast.Span{Start: t.Pos.Offset, End: tokenSpan(gt).End}
	return name, span, formals, nil
}

func (p *parser) parseKind() (ast.Kind, ast.Span, error) {
	t := p.peek()
	switch {
	case p.atKeyword("resource"):
		p.next()
		return ast.KindResource, tokenSpan(t), nil
	case p.atKeyword("unrestricted"):
		p.next()
		return ast.KindUnrestricted, tokenSpan(t), nil
	}
	return ast.KindAll, ast.Span{}, errAt(t, "expected resource or unrestricted, found %s", describe(t))
}

// parseNameAndTypeActuals parses `name<ty, …>` or a bare `name` in pack
// and unpack position.
func (p *parser) parseNameAndTypeActuals() (string, ast.Span, []ast.Type, error) {
	t := p.peek()
	if t.Type != tokNameBeginTy {
		name, span, err := p.parseName()
		return name, span, nil, err
	}
	name := strings.TrimSuffix(t.Value, "<")
	if keywords[name] {
		return "", ast.Span{}, nil, errAt(t, "%q is a reserved word and cannot be used as a name", name)
	}
	p.next()
	tys, gt, err := p.parseTypeList()
	if err != nil {
		return "", ast.Span{}, nil, err
	}
	span := ast.Span{Start: t.Pos.Offset, End: tokenSpan(gt).End}
	return name, span, tys, nil
}

// splitDotName splits an `a.b` token into its two components. The token
// regex admits exactly one dot, but the arity check stays explicit.
func splitDotName(t lexer.Token) (string, string, error) {
	parts := strings.Split(t.Value, ".")
	if len(parts) != 2 {
		return "", "", errAt(t, "dotted name %s must have exactly two components", t.Value)
	}
	return parts[0], parts[1], nil
}
