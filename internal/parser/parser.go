// Package parser turns a filtered token sequence into a program: an
// ordered list of top-level expressions allocated in an arena.
package parser

import (
	"strconv"
	"strings"

	"github.com/giorgioyu125/wisp/internal/arena"
	"github.com/giorgioyu125/wisp/internal/ast"
	"github.com/giorgioyu125/wisp/internal/lexer"
)

// maxQuoteDepth bounds the pending quote-family stack; spec requires a
// bounded stack of depth at least 8.
const maxQuoteDepth = 8

// Parser consumes a token sequence and an arena and produces a Program.
type Parser struct {
	src    []byte
	toks   []lexer.Token
	pos    int
	arena  *arena.Arena
	errors []ParseError
}

// New creates a Parser over toks (IGNORE tokens are dropped here) and
// src, the same buffer the tokens span into. a is the arena every
// allocated Expr node is placed in; the caller owns its lifetime.
func New(src []byte, toks []lexer.Token, a *arena.Arena) *Parser {
	filtered := make([]lexer.Token, 0, len(toks))
	for _, t := range toks {
		if t.Type != lexer.IGNORE {
			filtered = append(filtered, t)
		}
	}
	return &Parser{src: src, toks: filtered, arena: a}
}

// Program is the ordered list of top-level expressions.
type Program struct {
	Forms []*ast.Expr
}

// Parse runs the single linear pass over the token sequence. On success it
// returns a non-nil Program and a nil error; on failure it returns (nil,
// err) and the caller is responsible for resetting or destroying the
// arena — Parse never leaks a partial allocation into the caller's hands.
func (p *Parser) Parse() (*Program, error) {
	var forms []*ast.Expr
	for p.cur().Type != lexer.EOF {
		if p.cur().Type == lexer.RPAREN {
			p.addError(p.cur(), "unmatched ')'", "remove the extra closing paren")
			p.advance()
			continue
		}
		e := p.parseExpr()
		if e == nil {
			break
		}
		forms = append(forms, e)
	}
	if err := p.Err(); err != nil {
		return nil, err
	}
	return &Program{Forms: forms}, nil
}

func (p *Parser) cur() lexer.Token {
	if p.pos >= len(p.toks) {
		return lexer.Token{Type: lexer.EOF}
	}
	return p.toks[p.pos]
}

func (p *Parser) advance() lexer.Token {
	t := p.cur()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

// alloc returns a zero-valued *ast.Expr from the parser's arena. Every
// Expr node the parser produces is allocated this way; nodes never leave
// the arena.
func (p *Parser) alloc() *ast.Expr {
	e, err := arena.AllocT[ast.Expr](p.arena)
	if err != nil {
		p.addError(p.cur(), "out of memory building expression tree", "")
		return nil
	}
	return e
}

// parseExpr parses one expression, applying any pending quote-family
// wrappers collected along the way.
func (p *Parser) parseExpr() *ast.Expr {
	var pending []lexer.TokenType

	for {
		tok := p.cur()
		switch tok.Type {
		case lexer.QUOTE, lexer.BACKQUOTE, lexer.COMMA:
			if len(pending) >= maxQuoteDepth {
				p.addError(tok, "quote stack overflow", "reduce nesting of ' ` , before this point")
				return nil
			}
			pending = append(pending, tok.Type)
			p.advance()
			continue
		case lexer.EOF, lexer.RPAREN:
			if len(pending) > 0 {
				p.addError(tok, "quote family node has no following expression", "quote must wrap a following atom or list")
				return nil
			}
			return nil
		}
		base := p.parseBase()
		if base == nil {
			return nil
		}
		return p.wrapQuotes(base, pending)
	}
}

// wrapQuotes applies pending wrappers innermost-last: the last token
// pushed wraps base directly, the first token pushed ends up outermost.
func (p *Parser) wrapQuotes(base *ast.Expr, pending []lexer.TokenType) *ast.Expr {
	result := base
	for i := len(pending) - 1; i >= 0; i-- {
		kind := ast.KindQuoted
		switch pending[i] {
		case lexer.BACKQUOTE:
			kind = ast.KindQuasiquoted
		case lexer.COMMA:
			kind = ast.KindUnquoted
		}
		wrapper := p.alloc()
		if wrapper == nil {
			return nil
		}
		wrapper.Kind = kind
		wrapper.Inner = result
		wrapper.Pos = result.Pos
		result = wrapper
	}
	return result
}

func (p *Parser) parseBase() *ast.Expr {
	tok := p.advance()
	switch tok.Type {
	case lexer.LPAREN:
		return p.parseList(tok)
	case lexer.INTEGER:
		return p.parseInteger(tok)
	case lexer.FLOAT:
		return p.parseFloatTok(tok)
	case lexer.STRING:
		return p.parseStringTok(tok)
	case lexer.IDENTIFIER:
		e := p.alloc()
		if e == nil {
			return nil
		}
		text := tok.Text(p.src)
		switch string(text) {
		case "#t":
			e.Kind, e.Bool, e.Pos = ast.KindBool, true, tok.Start
		case "#f":
			e.Kind, e.Bool, e.Pos = ast.KindBool, false, tok.Start
		default:
			e.Kind, e.Str, e.Pos = ast.KindSymbol, text, tok.Start
		}
		return e
	case lexer.UNINTERNED_SYMBOL:
		e := p.alloc()
		if e == nil {
			return nil
		}
		name := tok.Text(p.src)
		e.Kind, e.Str, e.Pos = ast.KindUninternedSymbol, name[2:], tok.Start // drop "#:"
		return e
	case lexer.ERROR:
		p.addError(tok, "unrecognized or unterminated token", "check for a stray character or an unterminated string")
		return nil
	default:
		p.addError(tok, "unexpected token", "")
		return nil
	}
}

func (p *Parser) parseList(open lexer.Token) *ast.Expr {
	var elems []*ast.Expr
	for {
		tok := p.cur()
		if tok.Type == lexer.RPAREN {
			p.advance()
			return p.buildList(elems, open.Start)
		}
		if tok.Type == lexer.EOF {
			p.addError(open, "unterminated list", "add a closing ')'")
			return nil
		}
		e := p.parseExpr()
		if e == nil {
			return nil
		}
		elems = append(elems, e)
	}
}

// buildList allocates the cons spine for elems in the parser's arena, the
// complement of ast.Expr.Elements.
func (p *Parser) buildList(elems []*ast.Expr, pos int) *ast.Expr {
	if len(elems) == 0 {
		e := p.alloc()
		if e == nil {
			return nil
		}
		e.Kind, e.Pos = ast.KindNil, pos
		return e
	}
	head := p.allocCell(elems[0], pos)
	if head == nil {
		return nil
	}
	cur := head
	for _, el := range elems[1:] {
		next := p.allocCell(el, pos)
		if next == nil {
			return nil
		}
		cur.Cdr = next
		cur = next
	}
	return head
}

func (p *Parser) allocCell(car *ast.Expr, pos int) *ast.Expr {
	e := p.alloc()
	if e == nil {
		return nil
	}
	e.Kind, e.Car, e.Pos = ast.KindList, car, pos
	return e
}

// parseInteger parses a decimal literal; on overflow it demotes the token
// to a SYMBOL, the Lisp convention for "unreadable number becomes a name".
func (p *Parser) parseInteger(tok lexer.Token) *ast.Expr {
	e := p.alloc()
	if e == nil {
		return nil
	}
	text := string(tok.Text(p.src))
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		e.Kind, e.Str, e.Pos = ast.KindSymbol, tok.Text(p.src), tok.Start
		return e
	}
	e.Kind, e.I64, e.Pos = ast.KindInt, n, tok.Start
	return e
}

// parseFloatTok parses a base-10 float literal; a non-finite result (from
// a number too extreme to represent) likewise demotes to SYMBOL.
func (p *Parser) parseFloatTok(tok lexer.Token) *ast.Expr {
	e := p.alloc()
	if e == nil {
		return nil
	}
	text := string(tok.Text(p.src))
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || isNonFinite(f) {
		e.Kind, e.Str, e.Pos = ast.KindSymbol, tok.Text(p.src), tok.Start
		return e
	}
	e.Kind, e.F64, e.Pos = ast.KindFloat, f, tok.Start
	return e
}

func isNonFinite(f float64) bool {
	return f > maxFiniteFloat || f < -maxFiniteFloat || f != f
}

const maxFiniteFloat = 1.7976931348623157e+308

// parseStringTok drops the surrounding quotes and resolves backslash
// escapes.
func (p *Parser) parseStringTok(tok lexer.Token) *ast.Expr {
	e := p.alloc()
	if e == nil {
		return nil
	}
	e.Kind, e.Pos = ast.KindString, tok.Start
	raw := tok.Text(p.src)
	if len(raw) < 2 {
		return e
	}
	inner := raw[1 : len(raw)-1]
	var b strings.Builder
	for i := 0; i < len(inner); i++ {
		if inner[i] == '\\' && i+1 < len(inner) {
			i++
			b.WriteByte(unescape(inner[i]))
			continue
		}
		b.WriteByte(inner[i])
	}
	e.Str = []byte(b.String())
	return e
}

func unescape(b byte) byte {
	switch b {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	case '0':
		return 0
	default:
		return b
	}
}
