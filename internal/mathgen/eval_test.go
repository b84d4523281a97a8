package mathgen

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// evaluation is the result of re-parsing a rendered expression.
type evaluation struct {
	value int
	// minDifference is the smallest result of any subtraction node.
	minDifference int
	subtractions  int
	// inexact counts divisions that left a remainder.
	inexact int
}

// evaluate parses text with standard precedence (^ over x and /, over + and
// -) and left-to-right association, honoring parentheses.
func evaluate(text string) (evaluation, error) {
	p := &parser{tokens: tokenize(text)}
	p.ev.minDifference = int(^uint(0) >> 1)
	v, err := p.sum()
	if err != nil {
		return evaluation{}, err
	}
	if p.pos != len(p.tokens) {
		return evaluation{}, fmt.Errorf("trailing tokens in %q", text)
	}
	p.ev.value = v
	return p.ev, nil
}

func tokenize(text string) []string {
	text = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(text), "="))
	var tokens []string
	var num strings.Builder
	flush := func() {
		if num.Len() > 0 {
			tokens = append(tokens, num.String())
			num.Reset()
		}
	}
	for _, r := range text {
		switch {
		case unicode.IsDigit(r):
			num.WriteRune(r)
		case unicode.IsSpace(r):
			flush()
		default:
			flush()
			tokens = append(tokens, string(r))
		}
	}
	flush()
	return tokens
}

type parser struct {
	tokens []string
	pos    int
	ev     evaluation
}

func (p *parser) peek() string {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	return ""
}

func (p *parser) sum() (int, error) {
	left, err := p.product()
	if err != nil {
		return 0, err
	}
	for p.peek() == "+" || p.peek() == "-" {
		op := p.tokens[p.pos]
		p.pos++
		right, err := p.product()
		if err != nil {
			return 0, err
		}
		if op == "+" {
			left += right
			continue
		}
		left -= right
		p.ev.subtractions++
		if left < p.ev.minDifference {
			p.ev.minDifference = left
		}
	}
	return left, nil
}

func (p *parser) product() (int, error) {
	left, err := p.power()
	if err != nil {
		return 0, err
	}
	for p.peek() == "x" || p.peek() == "/" {
		op := p.tokens[p.pos]
		p.pos++
		right, err := p.power()
		if err != nil {
			return 0, err
		}
		if op == "x" {
			left *= right
			continue
		}
		if right == 0 {
			return 0, fmt.Errorf("division by zero")
		}
		if left%right != 0 {
			p.ev.inexact++
		}
		left /= right
	}
	return left, nil
}

func (p *parser) power() (int, error) {
	base, err := p.atom()
	if err != nil {
		return 0, err
	}
	if p.peek() != "^" {
		return base, nil
	}
	p.pos++
	exp, err := p.power()
	if err != nil {
		return 0, err
	}
	result := 1
	for i := 0; i < exp; i++ {
		result *= base
	}
	return result, nil
}

func (p *parser) atom() (int, error) {
	tok := p.peek()
	if tok == "" {
		return 0, fmt.Errorf("unexpected end of expression")
	}
	p.pos++
	if tok == "(" {
		v, err := p.sum()
		if err != nil {
			return 0, err
		}
		if p.peek() != ")" {
			return 0, fmt.Errorf("missing closing parenthesis")
		}
		p.pos++
		return v, nil
	}
	return strconv.Atoi(tok)
}
