package parser

import (
	"github.com/naolduga/mvir/pkg/ast"
)

func (p *parser) parseCmd() (ast.Cmd, error) {
	t := p.peek()
	switch {
	case p.atKeyword("abort"):
		p.next()
		span := tokenSpan(t)
		var e ast.Exp
		if !p.atPunct(";") && !p.peek().EOF() {
			var err error
			e, err = p.parseExp()
			if err != nil {
				return nil, err
			}
			span.End = e.Loc().End
		}
		return &ast.AbortCmd{Exp: e, Span: span}, nil

	case p.atKeyword("return"):
		return p.parseReturn()

	case p.atKeyword("break"):
		p.next()
		return &ast.BreakCmd{Span: tokenSpan(t)}, nil

	case p.atKeyword("continue"):
		p.next()
		return &ast.ContinueCmd{Span: tokenSpan(t)}, nil

	case t.Type == tokDotName:
		return p.parseCallCmd()

	case t.Type == tokIdent && isBuiltinName(t.Value):
		return p.parseCallCmd()

	case t.Type == tokNameBeginTy:
		if builtinTakesTypeActuals(t) {
			return p.parseCallCmd()
		}
		return p.parseUnpack()

	case t.Type == tokIdent && !keywords[t.Value] &&
		p.peekAt(1).Type == tokPunct && p.peekAt(1).Value == "{":
		return p.parseUnpack()

	case p.atPunct("("):
		e, err := p.parseParenExpList()
		if err != nil {
			return nil, err
		}
		return &ast.ExpCmd{Exp: e, Span: e.Loc()}, nil
	}
	return p.parseAssign()
}

func isBuiltinName(v string) bool {
	_, ok := builtins[v]
	return ok
}

func (p *parser) parseCallCmd() (ast.Cmd, error) {
	e, err := p.parseCall()
	if err != nil {
		return nil, err
	}
	return &ast.ExpCmd{Exp: e, Span: e.Loc()}, nil
}

// parseReturn parses `return e1, e2, …`. The operands are always boxed
// in an ExprList, even when there is one or none; a bare return gets a
// zero-width list span just past the keyword.
func (p *parser) parseReturn() (ast.Cmd, error) {
	kw := p.next()
	var exps []ast.Exp
	if !p.atPunct(";") && !p.peek().EOF() {
		for {
			e, err := p.parseExp()
			if err != nil {
				return nil, err
			}
			exps = append(exps, e)
			if p.atPunct(",") {
				p.next()
				if p.atPunct(";") || p.peek().EOF() {
					break
				}
				continue
			}
			break
		}
	}
	listSpan := ast.Span{Start: tokenSpan(kw).End, End: tokenSpan(kw).End}
	if len(exps) > 0 {
		listSpan = ast.Span{Start: exps[0].Loc().Start, End: exps[len(exps)-1].Loc().End}
	}
	return &ast.ReturnCmd{
		Exp:  &ast.ExprList{Exps: exps, Span: listSpan},
		Span: ast.Span{Start: kw.Pos.Offset, End: listSpan.End},
	}, nil
}

// parseUnpack parses `Name<tys>{f: v, …} = e`. A bare `f` binding
// desugars to `f: f`, the bound variable carrying the field's span.
func (p *parser) parseUnpack() (ast.Cmd, error) {
	name, nameSpan, tys, err := p.parseNameAndTypeActuals()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectPunct("{"); err != nil {
		return nil, err
	}
	var bindings []ast.FieldBinding
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
		v := ast.Var{Name: f.Name, Span: f.Span}
		if p.atPunct(":") {
			p.next()
			v, err = p.parseVar()
			if err != nil {
				return nil, err
			}
		}
		bindings = append(bindings, ast.FieldBinding{Field: f, Var: v})
		if p.atPunct(",") {
			p.next()
			continue
		}
		break
	}
	if _, err := p.expectPunct("}"); err != nil {
		return nil, err
	}
	if _, err := p.expectOp("="); err != nil {
		return nil, err
	}
	e, err := p.parseExp()
	if err != nil {
		return nil, err
	}
	return &ast.UnpackCmd{
		Name:        name,
		TypeActuals: tys,
		Bindings:    bindings,
		Exp:         e,
		Span:        ast.Span{Start: nameSpan.Start, End: e.Loc().End},
	}, nil
}

func (p *parser) parseAssign() (ast.Cmd, error) {
	var lvs []ast.LValue
	for {
		lv, err := p.parseLValue()
		if err != nil {
			return nil, err
		}
		lvs = append(lvs, lv)
		if p.atPunct(",") {
			p.next()
			continue
		}
		break
	}
	if _, err := p.expectOp("="); err != nil {
		return nil, err
	}
	e, err := p.parseExp()
	if err != nil {
		return nil, err
	}
	return &ast.AssignCmd{
		LValues: lvs,
		Exp:     e,
		Span:    ast.Span{Start: lvs[0].Loc().Start, End: e.Loc().End},
	}, nil
}

func (p *parser) parseLValue() (ast.LValue, error) {
	t := p.peek()
	switch {
	case t.Type == tokOp && t.Value == "*":
		p.next()
		e, err := p.parseExp()
		if err != nil {
			return nil, err
		}
		return &ast.MutateLValue{
			Exp:  e,
			Span: ast.Span{Start: t.Pos.Offset, End: e.Loc().End},
		}, nil

	case t.Type == tokIdent && t.Value == "_":
		p.next()
		return &ast.PopLValue{Span: tokenSpan(t)}, nil

	case t.Type == tokIdent && !keywords[t.Value]:
		v, err := p.parseVar()
		if err != nil {
			return nil, err
		}
		return &ast.VarLValue{Var: v, Span: v.Span}, nil
	}
	return nil, errAt(t, "expected an lvalue, found %s", describe(t))
}

func (p *parser) parseStatement() (ast.Statement, error) {
	t := p.peek()
	switch {
	case p.atPunct(";"):
		p.next()
		return &ast.EmptyStatement{Span: tokenSpan(t)}, nil

	case p.atKeyword("let"):
		return nil, errAt(t, "let declarations must precede all statements in a block")

	case p.atKeyword("assert"):
		return p.parseAssert()

	case p.atKeyword("if"):
		return p.parseIf()

	case p.atKeyword("while"):
		return p.parseWhile()

	case p.atKeyword("loop"):
		return p.parseLoop()
	}
	c, err := p.parseCmd()
	if err != nil {
		return nil, err
	}
	semi, err := p.expectPunct(";")
	if err != nil {
		return nil, err
	}
	return &ast.CmdStatement{
		Cmd:  c,
		Span: ast.Span{Start: c.Loc().Start, End: tokenSpan(semi).End},
	}, nil
}

// parseAssert desugars `assert(e, err);` into `if (!e) { abort err; }`.
// The negated condition reuses the condition's span; the synthesized
// abort and its enclosing statement and block reuse the error
// expression's span.
func (p *parser) parseAssert() (ast.Statement, error) {
	kw := p.next()
	if _, err := p.expectPunct("("); err != nil {
		return nil, err
	}
	cond, err := p.parseExp()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectPunct(","); err != nil {
		return nil, err
	}
	errExp, err := p.parseExp()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	semi, err := p.expectPunct(";")
	if err != nil {
		return nil, err
	}
	not := &ast.UnaryExp{Op: ast.OpNot, Exp: cond, Span: cond.Loc()}
	abort := &ast.AbortCmd{Exp: errExp, Span: errExp.Loc()}
	body := &ast.Block{
		Statements: []ast.Statement{&ast.CmdStatement{Cmd: abort, Span: errExp.Loc()}},
		Span:       errExp.Loc(),
	}
	return &ast.IfElseStatement{
		Cond:    not,
		IfBlock: body,
		Span:    ast.Span{Start: kw.Pos.Offset, End: tokenSpan(semi).End},
	}, nil
}

func (p *parser) parseIf() (ast.Statement, error) {
	kw := p.next()
	if _, err := p.expectPunct("("); err != nil {
		return nil, err
	}
	cond, err := p.parseExp()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	ifBlock, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	var elseBlock *ast.Block
	end := ifBlock.Span.End
	if p.atKeyword("else") {
		p.next()
		elseBlock, err = p.parseBlock()
		if err != nil {
			return nil, err
		}
		end = elseBlock.Span.End
	}
	return &ast.IfElseStatement{
		Cond:      cond,
		IfBlock:   ifBlock,
		ElseBlock: elseBlock,
		Span:      ast.Span{Start: kw.Pos.Offset, End: end},
	}, nil
}

func (p *parser) parseWhile() (ast.Statement, error) {
	kw := p.next()
	if _, err := p.expectPunct("("); err != nil {
		return nil, err
	}
	cond, err := p.parseExp()
	if err != nil {
		return nil, err
	}
	if _, err := p.expectPunct(")"); err != nil {
		return nil, err
	}
	block, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStatement{
		Cond:  cond,
		Block: block,
		Span:  ast.Span{Start: kw.Pos.Offset, End: block.Span.End},
	}, nil
}

func (p *parser) parseLoop() (ast.Statement, error) {
	kw := p.next()
	block, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.LoopStatement{
		Block: block,
		Span:  ast.Span{Start: kw.Pos.Offset, End: block.Span.End},
	}, nil
}

// parseBlock parses a braced statement list with no declarations, as
// used by control flow.
func (p *parser) parseBlock() (*ast.Block, error) {
	lb, err := p.expectPunct("{")
	if err != nil {
		return nil, err
	}
	var stmts []ast.Statement
	for !p.atPunct("}") && !p.peek().EOF() {
		s, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	rb, err := p.expectPunct("}")
	if err != nil {
		return nil, err
	}
	return &ast.Block{
		Statements: stmts,
		Span:       ast.Span{Start: lb.Pos.Offset, End: tokenSpan(rb).End},
	}, nil
}

// parseFunctionBlock parses a function body: a declarations phase of
// `let v: t;` lines followed by a statements phase. The grammar enforces
// the ordering structurally; parseStatement reports a late `let` with a
// dedicated error.
func (p *parser) parseFunctionBlock() ([]ast.FuncLocal, *ast.Block, error) {
	lb, err := p.expectPunct("{")
	if err != nil {
		return nil, nil, err
	}
	var locals []ast.FuncLocal
	for p.atKeyword("let") {
		lt := p.next()
		v, err := p.parseVar()
		if err != nil {
			return nil, nil, err
		}
		if _, err := p.expectPunct(":"); err != nil {
			return nil, nil, err
		}
		ty, err := p.parseType()
		if err != nil {
			return nil, nil, err
		}
		semi, err := p.expectPunct(";")
		if err != nil {
			return nil, nil, err
		}
		locals = append(locals, ast.FuncLocal{
			Var:  v,
			Type: ty,
			Span: ast.Span{Start: lt.Pos.Offset, End: tokenSpan(semi).End},
		})
	}
	var stmts []ast.Statement
	for !p.atPunct("}") && !p.peek().EOF() {
		s, err := p.parseStatement()
		if err != nil {
			return nil, nil, err
		}
		stmts = append(stmts, s)
	}
	rb, err := p.expectPunct("}")
	if err != nil {
		return nil, nil, err
	}
	return locals, &ast.Block{
		Statements: stmts,
		Span:       ast.Span{Start: lb.Pos.Offset, End: tokenSpan(rb).End},
	}, nil
}
