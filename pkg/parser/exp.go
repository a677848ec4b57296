package parser

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/naolduga/mvir/pkg/ast"
)

// binopPrec assigns each binary operator its precedence tier, loosest
// first: comparison, ||, &&, ^, |, &, additive, multiplicative. Every
// tier folds to the left.
var binopPrec = map[string]struct {
	op   ast.BinOp
	prec int
}{
	"==": {ast.OpEq, 1},
	"!=": {ast.OpNeq, 1},
	"<":  {ast.OpLt, 1},
	">":  {ast.OpGt, 1},
	"<=": {ast.OpLe, 1},
	">=": {ast.OpGe, 1},
	"||": {ast.OpOr, 2},
	"&&": {ast.OpAnd, 3},
	"^":  {ast.OpXor, 4},
	"|":  {ast.OpBitOr, 5},
	"&":  {ast.OpBitAnd, 6},
	"+":  {ast.OpAdd, 7},
	"-":  {ast.OpSub, 7},
	"*":  {ast.OpMul, 8},
	"/":  {ast.OpDiv, 8},
	"%":  {ast.OpMod, 8},
}

func (p *parser) parseExp() (ast.Exp, error) {
	return p.parseBinopExp(1)
}

// parseBinopExp parses the operand for the given tier, then folds every
// following operator of that tier or tighter into a left-leaning chain.
func (p *parser) parseBinopExp(minPrec int) (ast.Exp, error) {
	left, err := p.parseUnaryExp()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		if t.Type != tokOp {
			break
		}
		e, ok := binopPrec[t.Value]
		if !ok || e.prec < minPrec {
			break
		}
		p.next()
		right, err := p.parseBinopExp(e.prec + 1)
		if err != nil {
			return nil, err
		}
		left = &ast.BinopExp{
			Left:  left,
			Op:    e.op,
			Right: right,
			Span:  ast.Span{Start: left.Loc().Start, End: right.Loc().End},
		}
	}
	return left, nil
}

func (p *parser) parseUnaryExp() (ast.Exp, error) {
	t := p.peek()
	switch {
	case t.Type == tokOp && t.Value == "!":
		p.next()
		e, err := p.parseUnaryExp()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExp{
			Op:   ast.OpNot,
			Exp:  e,
			Span: ast.Span{Start: t.Pos.Offset, End: e.Loc().End},
		}, nil

	case t.Type == tokOp && t.Value == "*":
		p.next()
		e, err := p.parseUnaryExp()
		if err != nil {
			return nil, err
		}
		return &ast.DereferenceExp{
			Exp:  e,
			Span: ast.Span{Start: t.Pos.Offset, End: e.Loc().End},
		}, nil

	case t.Type == tokAmpMut:
		return p.parseBorrow(true)

	case t.Type == tokOp && t.Value == "&":
		return p.parseBorrow(false)
	}
	return p.parseCallOrTerm()
}

// parseBorrow handles both borrow forms behind `&` / `&mut `: a bare
// local (`&x`) or a field projection through an expression
// (`&mut copy(s).f`). A plain identifier not opening a pack literal is
// the local form; anything else must carry a `.field` projection.
func (p *parser) parseBorrow(mut bool) (ast.Exp, error) {
	amp := p.next()
	nt := p.peek()
	if nt.Type == tokIdent && !keywords[nt.Value] &&
		!(p.peekAt(1).Type == tokPunct && p.peekAt(1).Value == "{") {
		v, err := p.parseVar()
		if err != nil {
			return nil, err
		}
		return &ast.BorrowLocalExp{
			Mut:  mut,
			Var:  v,
			Span: ast.Span{Start: amp.Pos.Offset, End: v.Span.End},
		}, nil
	}
	inner, err := p.parseUnaryExp()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectOp("."); err != nil {
		return nil, err
	}
	f, err := p.parseField()
	if err != nil {
		return nil, err
	}
	return &ast.BorrowExp{
		Mut:   mut,
		Exp:   inner,
		Field: f,
		Span:  ast.Span{Start: amp.Pos.Offset, End: f.Span.End},
	}, nil
}

// parseCallOrTerm recognizes a function call (builtin or module-qualified)
// applied to a CallOrTerm argument, or falls through to a term.
func (p *parser) parseCallOrTerm() (ast.Exp, error) {
	t := p.peek()
	switch t.Type {
	case tokDotName:
		return p.parseCall()
	case tokIdent:
		if _, ok := builtins[t.Value]; ok {
			return p.parseCall()
		}
	case tokNameBeginTy:
		if builtinTakesTypeActuals(t) {
			return p.parseCall()
		}
	}
	return p.parseTerm()
}

func builtinTakesTypeActuals(t lexer.Token) bool {
	name := strings.TrimSuffix(t.Value, "<")
	b, ok := builtins[name]
	return ok && b.TakesTypeActuals()
}

func (p *parser) parseCall() (ast.Exp, error) {
	call, span, err := p.parseQualifiedFunctionName()
	if err != nil {
		return nil, err
	}
	arg, err := p.parseCallOrTerm()
	if err != nil {
		return nil, err
	}
	return &ast.CallExp{
		Call: call,
		Arg:  arg,
		Span: ast.Span{Start: span.Start, End: arg.Loc().End},
	}, nil
}

// parseQualifiedFunctionName parses a builtin name (optionally generic
// via the NameBeginTy token) or a DotName module call. After a DotName a
// bare `<` can only open type actuals, so plain lookahead is safe there.
func (p *parser) parseQualifiedFunctionName() (ast.FunctionCall, ast.Span, error) {
	t := p.peek()
	switch t.Type {
	case tokIdent:
		b, ok := builtins[t.Value]
		if !ok {
			return nil, ast.Span{}, errAt(t, "expected a function name, found %s", describe(t))
		}
		p.next()
		span := tokenSpan(t)
		return &ast.BuiltinCall{Builtin: b, Span: span}, span, nil

	case tokNameBeginTy:
		name := strings.TrimSuffix(t.Value, "<")
		b, ok := builtins[name]
		if !ok {
			return nil, ast.Span{}, errAt(t, "expected a function name, found %s", describe(t))
		}
		p.next()
		tys, gt, err := p.parseTypeList()
		if err != nil {
			return nil, ast.Span{}, err
		}
		span := ast.Span{Start: t.Pos.Offset, End: tokenSpan(gt).End}
		return &ast.BuiltinCall{Builtin: b, TypeActuals: tys, Span: span}, span, nil

	case tokDotName:
		p.next()
		mod, name, err := splitDotName(t)
		if err != nil {
			return nil, ast.Span{}, err
		}
		span := tokenSpan(t)
		var tys []ast.Type
		if p.atOp("<") {
			p.next()
			var gt lexer.Token
			tys, gt, err = p.parseTypeList()
			if err != nil {
				return nil, ast.Span{}, err
			}
			span.End = tokenSpan(gt).End
		}
		return &ast.ModuleCall{Module: mod, Name: name, TypeActuals: tys, Span: span}, span, nil
	}
	return nil, ast.Span{}, errAt(t, "expected a function name, found %s", describe(t))
}

func (p *parser) parseTerm() (ast.Exp, error) {
	t := p.peek()
	switch {
	case p.atKeyword("move"):
		return p.parseMoveOrCopy(true)

	case p.atKeyword("copy"):
		return p.parseMoveOrCopy(false)

	case t.Type == tokAddress:
		p.next()
		addr, err := decodeAddress(t)
		if err != nil {
			return nil, err
		}
		return &ast.ValueExp{Val: ast.AddressVal{Value: addr}, Span: tokenSpan(t)}, nil

	case t.Type == tokNumber:
		p.next()
		v, err := decodeU64(t)
		if err != nil {
			return nil, err
		}
		return &ast.ValueExp{Val: ast.U64Val{Value: v}, Span: tokenSpan(t)}, nil

	case t.Type == tokByteArray:
		p.next()
		b, err := decodeByteArray(t)
		if err != nil {
			return nil, err
		}
		return &ast.ValueExp{Val: ast.ByteArrayVal{Value: b}, Span: tokenSpan(t)}, nil

	case p.atKeyword("true"), p.atKeyword("false"):
		p.next()
		return &ast.ValueExp{Val: ast.BoolVal{Value: t.Value == "true"}, Span: tokenSpan(t)}, nil

	case t.Type == tokNameBeginTy:
		name := strings.TrimSuffix(t.Value, "<")
		if keywords[name] {
			return nil, errAt(t, "%q is a reserved word and cannot name a struct", name)
		}
		p.next()
		tys, _, err := p.parseTypeList()
		if err != nil {
			return nil, err
		}
		return p.parsePack(name, tys, t.Pos.Offset)

	case t.Type == tokIdent && !keywords[t.Value] &&
		p.peekAt(1).Type == tokPunct && p.peekAt(1).Value == "{":
		p.next()
		return p.parsePack(t.Value, nil, t.Pos.Offset)

	case p.atPunct("("):
		return p.parseParenExpList()
	}
	return nil, errAt(t, "expected an expression, found %s", describe(t))
}

func (p *parser) parseMoveOrCopy(isMove bool) (ast.Exp, error) {
	kw := p.next()
	if _, err := p.expectPunct("("); err != nil {
		return nil, err
	}
	v, err := p.parseVar()
	if err != nil {
		return nil, err
	}
	rp, err := p.expectPunct(")")
	if err != nil {
		return nil, err
	}
	span := ast.Span{Start: kw.Pos.Offset, End: tokenSpan(rp).End}
	if isMove {
		return &ast.MoveExp{Var: v, Span: span}, nil
	}
	return &ast.CopyExp{Var: v, Span: span}, nil
}

// parsePack parses the braced field list of a pack expression. Duplicate
// field names are rejected.
func (p *parser) parsePack(name string, tys []ast.Type, start int) (ast.Exp, error) {
	if _, err := p.expectPunct("{"); err != nil {
		return nil, err
	}
	var fields []ast.ExpField
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
		e, err := p.parseExp()
		if err != nil {
			return nil, err
		}
		fields = append(fields, ast.ExpField{Field: f, Exp: e})
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
	return &ast.PackExp{
		Name:        name,
		TypeActuals: tys,
		Fields:      fields,
		Span:        ast.Span{Start: start, End: tokenSpan(rb).End},
	}, nil
}

// parseParenExpList parses `(e1, e2, …)`. A single expression collapses
// to itself; empty and multi-element lists become an ExprList spanning
// the parentheses.
func (p *parser) parseParenExpList() (ast.Exp, error) {
	lp := p.next()
	if p.atPunct(")") {
		rp := p.next()
		return &ast.ExprList{Span: ast.Span{Start: lp.Pos.Offset, End: tokenSpan(rp).End}}, nil
	}
	var exps []ast.Exp
	for {
		e, err := p.parseExp()
		if err != nil {
			return nil, err
		}
		exps = append(exps, e)
		if p.atPunct(",") {
			p.next()
			if p.atPunct(")") {
				break
			}
			continue
		}
		break
	}
	rp, err := p.expectPunct(")")
	if err != nil {
		return nil, err
	}
	if len(exps) == 1 {
		return exps[0], nil
	}
	return &ast.ExprList{
		Exps: exps,
		Span: ast.Span{Start: lp.Pos.Offset, End: tokenSpan(rp).End},
	}, nil
}
