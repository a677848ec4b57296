package parser

import (
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/naolduga/mvir/pkg/ast"
)

// The parser is a single forward pass over the scanned token stream.
// Each entry point builds a fresh parser, so concurrent parses of
// distinct inputs are safe.
type parser struct {
	toks []lexer.Token
	pos  int
}

func newParser(filename, source string) (*parser, error) {
	toks, err := scan(filename, source)
	if err != nil {
		return nil, err
	}
	return &parser{toks: toks}, nil
}

// ParseProgram parses a whole compilation unit: either
// `modules: <module>* script: <script>`, a bare script, or a bare module.
// A bare module gets a synthesized empty public main so downstream stages
// always see a script.
func ParseProgram(filename, source string) (*ast.Program, error) {
	p, err := newParser(filename, source)
	if err != nil {
		return nil, err
	}
	prog, err := p.parseProgram()
	if err != nil {
		return nil, err
	}
	if err := p.expectEOF(); err != nil {
		return nil, err
	}
	return prog, nil
}

// ParseScript parses imports followed by a main function.
func ParseScript(filename, source string) (*ast.Script, error) {
	p, err := newParser(filename, source)
	if err != nil {
		return nil, err
	}
	s, err := p.parseScript()
	if err != nil {
		return nil, err
	}
	if err := p.expectEOF(); err != nil {
		return nil, err
	}
	return s, nil
}

// ParseModule parses a single module definition.
func ParseModule(filename, source string) (*ast.Module, error) {
	p, err := newParser(filename, source)
	if err != nil {
		return nil, err
	}
	m, err := p.parseModule()
	if err != nil {
		return nil, err
	}
	if err := p.expectEOF(); err != nil {
		return nil, err
	}
	return m, nil
}

// ParseScriptOrModule auto-detects between a top-level script and a
// module.
func ParseScriptOrModule(filename, source string) (ast.ScriptOrModule, error) {
	p, err := newParser(filename, source)
	if err != nil {
		return nil, err
	}
	var sm ast.ScriptOrModule
	if p.atKeyword("module") {
		sm, err = p.parseModule()
	} else {
		sm, err = p.parseScript()
	}
	if err != nil {
		return nil, err
	}
	if err := p.expectEOF(); err != nil {
		return nil, err
	}
	return sm, nil
}

// ParseCmd parses a single command, as used for REPL-style snippets. A
// trailing semicolon is accepted.
func ParseCmd(filename, source string) (ast.Cmd, error) {
	p, err := newParser(filename, source)
	if err != nil {
		return nil, err
	}
	c, err := p.parseCmd()
	if err != nil {
		return nil, err
	}
	if p.atPunct(";") {
		p.next()
	}
	if err := p.expectEOF(); err != nil {
		return nil, err
	}
	return c, nil
}

func (p *parser) parseProgram() (*ast.Program, error) {
	switch {
	case p.peek().Type == tokModulesLabel:
		p.next()
		var modules []*ast.Module
		for p.atKeyword("module") {
			m, err := p.parseModule()
			if err != nil {
				return nil, err
			}
			modules = append(modules, m)
		}
		if t := p.peek(); t.Type != tokScriptLabel {
			return nil, errAt(t, "expected script: after the module list, found %s", describe(t))
		}
		p.next()
		s, err := p.parseScript()
		if err != nil {
			return nil, err
		}
		return &ast.Program{Modules: modules, Script: s}, nil

	case p.atKeyword("module"):
		m, err := p.parseModule()
		if err != nil {
			return nil, err
		}
		return &ast.Program{Modules: []*ast.Module{m}, Script: synthesizedScript()}, nil

	default:
		s, err := p.parseScript()
		if err != nil {
			return nil, err
		}
		return &ast.Program{Script: s}, nil
	}
}

// synthesizedScript is the script fabricated for a bare-module program:
// an empty public main returning the empty expression list. All spans
// are zero.
func synthesizedScript() *ast.Script {
	ret := &ast.ReturnCmd{Exp: &ast.ExprList{}}
	body := &ast.Block{Statements: []ast.Statement{&ast.CmdStatement{Cmd: ret}}}
	return &ast.Script{
		Main: &ast.Function{
			Visibility: ast.Public,
			Name:       "main",
			Code:       body,
		},
	}
}

// Token-cursor helpers.

func (p *parser) peek() lexer.Token {
	return p.toks[p.pos]
}

// peekAt looks n tokens past the cursor, saturating at EOF.
func (p *parser) peekAt(n int) lexer.Token {
	i := p.pos + n
	if i >= len(p.toks) {
		i = len(p.toks) - 1
	}
	return p.toks[i]
}

func (p *parser) next() lexer.Token {
	t := p.toks[p.pos]
	if !t.EOF() {
		p.pos++
	}
	return t
}

func (p *parser) atPunct(v string) bool {
	t := p.peek()
	return t.Type == tokPunct && t.Value == v
}

func (p *parser) atOp(v string) bool {
	t := p.peek()
	return t.Type == tokOp && t.Value == v
}

// atKeyword reports whether the next token is the given reserved word.
func (p *parser) atKeyword(v string) bool {
	t := p.peek()
	return t.Type == tokIdent && t.Value == v
}

func (p *parser) expectPunct(v string) (lexer.Token, error) {
	t := p.peek()
	if t.Type != tokPunct || t.Value != v {
		return t, errAt(t, "expected %q, found %s", v, describe(t))
	}
	return p.next(), nil
}

func (p *parser) expectOp(v string) (lexer.Token, error) {
	t := p.peek()
	if t.Type != tokOp || t.Value != v {
		return t, errAt(t, "expected %q, found %s", v, describe(t))
	}
	return p.next(), nil
}

func (p *parser) expectKeyword(v string) (lexer.Token, error) {
	t := p.peek()
	if t.Type != tokIdent || t.Value != v {
		return t, errAt(t, "expected %q, found %s", v, describe(t))
	}
	return p.next(), nil
}

// parseName consumes an identifier, rejecting reserved words.
func (p *parser) parseName() (string, ast.Span, error) {
	t := p.peek()
	if t.Type != tokIdent {
		return "", ast.Span{}, errAt(t, "expected a name, found %s", describe(t))
	}
	if keywords[t.Value] {
		return "", ast.Span{}, errAt(t, "%q is a reserved word and cannot be used as a name", t.Value)
	}
	p.next()
	return t.Value, tokenSpan(t), nil
}

func (p *parser) parseVar() (ast.Var, error) {
	name, span, err := p.parseName()
	if err != nil {
		return ast.Var{}, err
	}
	return ast.Var{Name: name, Span: span}, nil
}

func (p *parser) parseField() (ast.Field, error) {
	name, span, err := p.parseName()
	if err != nil {
		return ast.Field{}, err
	}
	return ast.Field{Name: name, Span: span}, nil
}

func (p *parser) expectEOF() error {
	if t := p.peek(); !t.EOF() {
		return errAt(t, "unexpected %s after the end of the input unit", describe(t))
	}
	return nil
}
