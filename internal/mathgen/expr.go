package mathgen

import (
	"fmt"
	"strconv"
)

type operator byte

const (
	opAdd operator = '+'
	opSub operator = '-'
	opMul operator = 'x'
	opDiv operator = '/'
	opPow operator = '^'
)

// expr is a rendered expression together with its value. Building text and
// value in the same step keeps them from drifting apart.
type expr struct {
	text     string
	value    int
	compound bool
}

func lit(n int) expr {
	return expr{text: strconv.Itoa(n), value: n}
}

func binary(l expr, op operator, r expr) expr {
	return expr{
		text:     fmt.Sprintf("%s %c %s", l.operand(), op, r.operand()),
		value:    apply(l.value, op, r.value),
		compound: true,
	}
}

func add(l, r expr) expr { return binary(l, opAdd, r) }
func sub(l, r expr) expr { return binary(l, opSub, r) }
func mul(l, r expr) expr { return binary(l, opMul, r) }

// operand renders e as the operand of an enclosing operation.
func (e expr) operand() string {
	if e.compound {
		return "(" + e.text + ")"
	}
	return e.text
}

func apply(l int, op operator, r int) int {
	switch op {
	case opAdd:
		return l + r
	case opSub:
		return l - r
	case opMul:
		return l * r
	case opDiv:
		return l / r
	case opPow:
		result := 1
		for i := 0; i < r; i++ {
			result *= l
		}
		return result
	default:
		panic(fmt.Sprintf("mathgen: unknown operator %q", op))
	}
}
