package parser

import (
	"fmt"
	"strings"

	"github.com/giorgioyu125/wisp/internal/lexer"
	"github.com/giorgioyu125/wisp/internal/wisperr"
)

// ParseError is a single diagnostic, carrying the offending token and a
// short hint, in the shape of the teacher's pkgs/parser error reporting.
type ParseError struct {
	Token   lexer.Token
	Message string
	Hint    string
}

func (p *Parser) addError(tok lexer.Token, message, hint string) {
	p.errors = append(p.errors, ParseError{Token: tok, Message: message, Hint: hint})
}

// Err collapses the collected ParseErrors into a single *wisperr.Error
// suitable for returning from Parse, or nil if there were none.
func (p *Parser) Err() error {
	if len(p.errors) == 0 {
		return nil
	}
	first := p.errors[0]
	werr := wisperr.New(wisperr.KindParse, first.Message).
		WithPosition(first.Token.Line, first.Token.Column, first.Token.Start).
		WithHint(first.Hint)
	if len(p.errors) > 1 {
		werr.Context = fmt.Sprintf("%d more parse error(s) follow", len(p.errors)-1)
	}
	return werr
}

// FormatErrors renders every collected error against sourceLines, one per
// line, in the teacher's FormatErrors style.
func FormatErrors(errs []ParseError, sourceLines []string) string {
	if len(errs) == 0 {
		return ""
	}
	var b strings.Builder
	for _, e := range errs {
		fmt.Fprintf(&b, "line %d: %s\n", e.Token.Line, e.Message)
		if e.Token.Line-1 >= 0 && e.Token.Line-1 < len(sourceLines) {
			fmt.Fprintf(&b, "  %s\n", sourceLines[e.Token.Line-1])
		}
		if e.Hint != "" {
			fmt.Fprintf(&b, "  hint: %s\n", e.Hint)
		}
	}
	return b.String()
}
