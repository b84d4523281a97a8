package mathgen

import (
	"fmt"
	"strings"
)

// Problem is one generated question and its answer.
type Problem struct {
	// Text is the rendered expression followed by " = ", e.g. "5 + 7 = ".
	Text     string
	Solution int
	Template Template
}

// Expression returns Text without the trailing equals sign.
func (p Problem) Expression() string {
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(p.Text), "="))
}

// Template identifies a fixed expression shape with its own sampling rules.
type Template int

// Primitive templates come first; everything after TemplateExponentiation is
// a compound of +, - and x.
const (
	TemplateAddition Template = iota
	TemplateSubtraction
	TemplateMultiplication
	TemplateDivision
	TemplateExponentiation
	TemplateAddThenMultiply
	TemplateMultiplyThenAdd
	TemplateAddThenSubtract
	TemplateSubtractThenAdd
	TemplateSubtractThenMultiply
	TemplateMultiplyThenSubtract
	TemplateAddThenAdd
	TemplateMultiplyThenMultiply
	TemplateAddThenAddThenAdd
	TemplateMultiplyThenMultiplyThenMultiply
	TemplateAddThenSubtractThenMultiply
	TemplateSubtractThenAddThenMultiply
	TemplateAddThenAddThenSubtract
	TemplateSubtractThenAddThenAdd
	TemplateSubtractThenMultiplyThenAdd
	TemplateMultiplyThenSubtractThenAdd
	TemplateMultiplyThenMultiplyThenSubtract
	TemplateMultiplyThenSubtractThenMultiply
	TemplateSubtractThenMultiplyThenMultiply
	TemplateSubtractThenMultiplyThenSubtract
	TemplateAddThenMultiplyThenAdd
	TemplateAddThenMultiplyThenSubtract
	TemplateAddThenSubtractThenAdd
	TemplateMultiplyThenAddThenMultiply
	TemplateMultiplyThenAddThenAdd
	TemplateSubtractThenAddThenSubtract

	templateCount
)

var templateNames = [templateCount]string{
	TemplateAddition:                         "addition",
	TemplateSubtraction:                      "subtraction",
	TemplateMultiplication:                   "multiplication",
	TemplateDivision:                         "division",
	TemplateExponentiation:                   "exponentiation",
	TemplateAddThenMultiply:                  "compound_add_then_multiply",
	TemplateMultiplyThenAdd:                  "compound_multiply_then_add",
	TemplateAddThenSubtract:                  "compound_add_then_subtract",
	TemplateSubtractThenAdd:                  "compound_subtract_then_add",
	TemplateSubtractThenMultiply:             "compound_subtract_then_multiply",
	TemplateMultiplyThenSubtract:             "compound_multiply_then_subtract",
	TemplateAddThenAdd:                       "compound_add_then_add",
	TemplateMultiplyThenMultiply:             "compound_multiply_then_multiply",
	TemplateAddThenAddThenAdd:                "compound_add_then_add_then_add",
	TemplateMultiplyThenMultiplyThenMultiply: "compound_multiply_then_multiply_then_multiply",
	TemplateAddThenSubtractThenMultiply:      "compound_add_then_subtract_then_multiply",
	TemplateSubtractThenAddThenMultiply:      "compound_subtract_then_add_then_multiply",
	TemplateAddThenAddThenSubtract:           "compound_add_then_add_then_subtract",
	TemplateSubtractThenAddThenAdd:           "compound_subtract_then_add_then_add",
	TemplateSubtractThenMultiplyThenAdd:      "compound_subtract_then_multiply_then_add",
	TemplateMultiplyThenSubtractThenAdd:      "compound_multiply_then_subtract_then_add",
	TemplateMultiplyThenMultiplyThenSubtract: "compound_multiply_then_multiply_then_subtract",
	TemplateMultiplyThenSubtractThenMultiply: "compound_multiply_then_subtract_then_multiply",
	TemplateSubtractThenMultiplyThenMultiply: "compound_subtract_then_multiply_then_multiply",
	TemplateSubtractThenMultiplyThenSubtract: "compound_subtract_then_multiply_then_subtract",
	TemplateAddThenMultiplyThenAdd:           "compound_add_then_multiply_then_add",
	TemplateAddThenMultiplyThenSubtract:      "compound_add_then_multiply_then_subtract",
	TemplateAddThenSubtractThenAdd:           "compound_add_then_subtract_then_add",
	TemplateMultiplyThenAddThenMultiply:      "compound_multiply_then_add_then_multiply",
	TemplateMultiplyThenAddThenAdd:           "compound_multiply_then_add_then_add",
	TemplateSubtractThenAddThenSubtract:      "compound_subtract_then_add_then_subtract",
}

// Templates returns every template in declaration order.
func Templates() []Template {
	out := make([]Template, templateCount)
	for i := range out {
		out[i] = Template(i)
	}
	return out
}

// Valid reports whether t is one of the known templates.
func (t Template) Valid() bool {
	return t >= 0 && t < templateCount
}

// Compound reports whether t combines more than one operation.
func (t Template) Compound() bool {
	return t > TemplateExponentiation && t.Valid()
}

func (t Template) String() string {
	if !t.Valid() {
		return fmt.Sprintf("Template(%d)", int(t))
	}
	return templateNames[t]
}

// ParseTemplate looks a template up by name. The "compound_" prefix is optional.
func ParseTemplate(name string) (Template, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, candidate := range templateNames {
		if name == candidate || "compound_"+name == candidate {
			return Template(i), nil
		}
	}
	return 0, fmt.Errorf("unknown template %q", name)
}
