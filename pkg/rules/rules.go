// Package rules evaluates the conditional requirement expressions carried by
// the x-changewizard-required-when extension.
//
// Supported syntax:
//   - presence: `ticket_id` (non-blank and not "false")
//   - comparisons: `impact_level == High`, `status != "Planned"`
//   - membership: `impact_level in [Medium, High]`
//   - composition: `!`, `&&`, `||`, parentheses
//
// Operands are field names; literals may be bare words or quoted strings.
// All comparisons are exact string matches against the current form value.
package rules

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Values supplies field values by name. binding.Form satisfies it.
type Values interface {
	Value(name string) string
}

// Map is a Values backed by a plain map.
type Map map[string]string

// Value returns m[name].
func (m Map) Value(name string) string {
	return m[name]
}

// Rule is a parsed expression.
type Rule struct {
	source string
	root   node
	fields []string
}

// Parse compiles rule. An empty rule is an error.
func Parse(rule string) (*Rule, error) {
	trimmed := strings.TrimSpace(rule)
	if trimmed == "" {
		return nil, errors.New("rules: empty expression")
	}
	tokens, err := tokenize(trimmed)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens, seen: make(map[string]struct{})}
	root, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.pos < len(p.tokens) {
		return nil, fmt.Errorf("rules: unexpected token %q", p.tokens[p.pos].raw)
	}

	fields := make([]string, 0, len(p.seen))
	for name := range p.seen {
		fields = append(fields, name)
	}
	sort.Strings(fields)
	return &Rule{source: trimmed, root: root, fields: fields}, nil
}

// MustParse panics when rule does not compile.
func MustParse(rule string) *Rule {
	r, err := Parse(rule)
	if err != nil {
		panic(err)
	}
	return r
}

// Eval reports whether the rule holds for values.
func (r *Rule) Eval(values Values) bool {
	if r == nil || r.root == nil || values == nil {
		return false
	}
	return r.root.eval(values)
}

// Fields lists the field names the rule reads, sorted.
func (r *Rule) Fields() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.fields...)
}

// DependsOn reports whether the rule reads field.
func (r *Rule) DependsOn(field string) bool {
	if r == nil {
		return false
	}
	i := sort.SearchStrings(r.fields, field)
	return i < len(r.fields) && r.fields[i] == field
}

// String returns the normalised source expression.
func (r *Rule) String() string {
	if r == nil {
		return ""
	}
	return r.source
}

type tokenKind int

const (
	tokenWord tokenKind = iota
	tokenString
	tokenEq
	tokenNeq
	tokenAnd
	tokenOr
	tokenNot
	tokenIn
	tokenLParen
	tokenRParen
	tokenLBracket
	tokenRBracket
	tokenComma
)

type token struct {
	kind tokenKind
	raw  string
}

func tokenize(input string) ([]token, error) {
	var tokens []token
	for i := 0; i < len(input); {
		ch := input[i]
		switch {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			i++
		case ch == '(':
			tokens = append(tokens, token{kind: tokenLParen, raw: "("})
			i++
		case ch == ')':
			tokens = append(tokens, token{kind: tokenRParen, raw: ")"})
			i++
		case ch == '[':
			tokens = append(tokens, token{kind: tokenLBracket, raw: "["})
			i++
		case ch == ']':
			tokens = append(tokens, token{kind: tokenRBracket, raw: "]"})
			i++
		case ch == ',':
			tokens = append(tokens, token{kind: tokenComma, raw: ","})
			i++
		case ch == '!':
			if i+1 < len(input) && input[i+1] == '=' {
				tokens = append(tokens, token{kind: tokenNeq, raw: "!="})
				i += 2
				continue
			}
			tokens = append(tokens, token{kind: tokenNot, raw: "!"})
			i++
		case ch == '=':
			if i+1 >= len(input) || input[i+1] != '=' {
				return nil, errors.New("rules: unexpected '='; use '=='")
			}
			tokens = append(tokens, token{kind: tokenEq, raw: "=="})
			i += 2
		case ch == '&':
			if i+1 >= len(input) || input[i+1] != '&' {
				return nil, errors.New("rules: unexpected '&'; use '&&'")
			}
			tokens = append(tokens, token{kind: tokenAnd, raw: "&&"})
			i += 2
		case ch == '|':
			if i+1 >= len(input) || input[i+1] != '|' {
				return nil, errors.New("rules: unexpected '|'; use '||'")
			}
			tokens = append(tokens, token{kind: tokenOr, raw: "||"})
			i += 2
		case ch == '"' || ch == '\'':
			end := closingQuote(input, i)
			if end < 0 {
				return nil, errors.New("rules: unterminated string literal")
			}
			raw := input[i : end+1]
			if ch == '\'' {
				raw = `"` + strings.ReplaceAll(input[i+1:end], `"`, `\"`) + `"`
			}
			value, err := strconv.Unquote(raw)
			if err != nil {
				return nil, fmt.Errorf("rules: invalid string literal: %w", err)
			}
			tokens = append(tokens, token{kind: tokenString, raw: value})
			i = end + 1
		default:
			start := i
			for i < len(input) && !strings.ContainsRune(" \t\n\r()[],!=&|\"'", rune(input[i])) {
				i++
			}
			word := input[start:i]
			if word == "in" {
				tokens = append(tokens, token{kind: tokenIn, raw: word})
				continue
			}
			tokens = append(tokens, token{kind: tokenWord, raw: word})
		}
	}
	return tokens, nil
}

func closingQuote(input string, open int) int {
	quote := input[open]
	for i := open + 1; i < len(input); i++ {
		switch input[i] {
		case '\\':
			i++
		case quote:
			return i
		}
	}
	return -1
}

type node interface {
	eval(values Values) bool
}

type orNode struct{ left, right node }

func (n orNode) eval(values Values) bool { return n.left.eval(values) || n.right.eval(values) }

type andNode struct{ left, right node }

func (n andNode) eval(values Values) bool { return n.left.eval(values) && n.right.eval(values) }

type notNode struct{ inner node }

func (n notNode) eval(values Values) bool { return !n.inner.eval(values) }

type compareNode struct {
	field  string
	negate bool
	want   string
}

func (n compareNode) eval(values Values) bool {
	return (values.Value(n.field) == n.want) != n.negate
}

type inNode struct {
	field string
	set   []string
}

func (n inNode) eval(values Values) bool {
	got := values.Value(n.field)
	for _, candidate := range n.set {
		if got == candidate {
			return true
		}
	}
	return false
}

type presentNode struct{ field string }

func (n presentNode) eval(values Values) bool {
	v := strings.TrimSpace(values.Value(n.field))
	return v != "" && v != "false"
}

type parser struct {
	tokens []token
	pos    int
	seen   map[string]struct{}
}

func (p *parser) parseOr() (node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.match(tokenOr) {
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = orNode{left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.match(tokenAnd) {
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = andNode{left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseUnary() (node, error) {
	if p.match(tokenNot) {
		inner, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return notNode{inner: inner}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (node, error) {
	if p.match(tokenLParen) {
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if !p.match(tokenRParen) {
			return nil, errors.New("rules: missing closing ')'")
		}
		return inner, nil
	}

	field, ok := p.consume(tokenWord)
	if !ok {
		if p.pos >= len(p.tokens) {
			return nil, errors.New("rules: incomplete expression")
		}
		return nil, fmt.Errorf("rules: expected field name, got %q", p.tokens[p.pos].raw)
	}
	p.seen[field.raw] = struct{}{}

	switch {
	case p.match(tokenEq):
		want, err := p.literal()
		if err != nil {
			return nil, err
		}
		return compareNode{field: field.raw, want: want}, nil
	case p.match(tokenNeq):
		want, err := p.literal()
		if err != nil {
			return nil, err
		}
		return compareNode{field: field.raw, want: want, negate: true}, nil
	case p.match(tokenIn):
		set, err := p.list()
		if err != nil {
			return nil, err
		}
		return inNode{field: field.raw, set: set}, nil
	default:
		return presentNode{field: field.raw}, nil
	}
}

func (p *parser) list() ([]string, error) {
	if !p.match(tokenLBracket) {
		return nil, errors.New("rules: expected '[' after in")
	}
	var set []string
	for {
		value, err := p.literal()
		if err != nil {
			return nil, err
		}
		set = append(set, value)
		if p.match(tokenComma) {
			continue
		}
		if p.match(tokenRBracket) {
			return set, nil
		}
		return nil, errors.New("rules: missing closing ']'")
	}
}

func (p *parser) literal() (string, error) {
	if p.pos >= len(p.tokens) {
		return "", errors.New("rules: missing literal")
	}
	tok := p.tokens[p.pos]
	switch tok.kind {
	case tokenWord, tokenString:
		p.pos++
		return tok.raw, nil
	default:
		return "", fmt.Errorf("rules: expected literal, got %q", tok.raw)
	}
}

func (p *parser) match(kind tokenKind) bool {
	if p.pos < len(p.tokens) && p.tokens[p.pos].kind == kind {
		p.pos++
		return true
	}
	return false
}

func (p *parser) consume(kind tokenKind) (token, bool) {
	if p.pos < len(p.tokens) && p.tokens[p.pos].kind == kind {
		tok := p.tokens[p.pos]
		p.pos++
		return tok, true
	}
	return token{}, false
}
