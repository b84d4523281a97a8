package mathgen

// templateFunc samples operands and builds one expression. Any subtraction
// either sorts its operands largest first or draws the subtrahend below the
// partial result it is taken from, so no step goes negative.
type templateFunc func(s *sampler) expr

var registry = [templateCount]templateFunc{
	TemplateAddition: func(s *sampler) expr {
		return add(lit(s.additive()), lit(s.additive()))
	},
	TemplateSubtraction: func(s *sampler) expr {
		x, y := s.descending2()
		return sub(lit(x), lit(y))
	},
	TemplateMultiplication: func(s *sampler) expr {
		return mul(lit(s.multiplicative()), lit(s.multiplicative()))
	},
	TemplateDivision: func(s *sampler) expr {
		quotient, divisor := s.multiplicative(), s.divisor()
		return binary(lit(quotient*divisor), opDiv, lit(divisor))
	},
	TemplateExponentiation: func(s *sampler) expr {
		base := s.between(2, 10)
		var exp int
		if base < 5 {
			exp = s.between(3, 5)
		} else {
			exp = s.between(2, 3)
		}
		return binary(lit(base), opPow, lit(exp))
	},

	TemplateAddThenMultiply: func(s *sampler) expr {
		x, y := s.additive(), s.additive()
		return mul(add(lit(x), lit(y)), lit(s.multiplicative()))
	},
	TemplateMultiplyThenAdd: func(s *sampler) expr {
		x, y := s.multiplicative(), s.multiplicative()
		return add(mul(lit(x), lit(y)), lit(s.additive()))
	},
	TemplateAddThenSubtract: func(s *sampler) expr {
		x, y, z := s.descending3()
		return sub(add(lit(x), lit(y)), lit(z))
	},
	TemplateSubtractThenAdd: func(s *sampler) expr {
		x, y, z := s.descending3()
		return add(sub(lit(x), lit(y)), lit(z))
	},
	TemplateSubtractThenMultiply: func(s *sampler) expr {
		x, y := s.descending2()
		return mul(sub(lit(x), lit(y)), lit(s.multiplicative()))
	},
	TemplateMultiplyThenSubtract: func(s *sampler) expr {
		product := mul(lit(s.multiplicative()), lit(s.multiplicative()))
		return sub(product, lit(s.below(product.value)))
	},
	TemplateAddThenAdd: func(s *sampler) expr {
		x, y, z := s.additive(), s.additive(), s.additive()
		return add(add(lit(x), lit(y)), lit(z))
	},
	TemplateMultiplyThenMultiply: func(s *sampler) expr {
		x, y, z := s.multiplicative(), s.multiplicative(), s.multiplicative()
		return mul(mul(lit(x), lit(y)), lit(z))
	},
	TemplateAddThenAddThenAdd: func(s *sampler) expr {
		x, y, z, w := s.additive(), s.additive(), s.additive(), s.additive()
		return add(add(lit(x), lit(y)), add(lit(z), lit(w)))
	},
	TemplateMultiplyThenMultiplyThenMultiply: func(s *sampler) expr {
		x, y, z, w := s.multiplicative(), s.multiplicative(), s.multiplicative(), s.multiplicative()
		return mul(mul(lit(x), lit(y)), mul(lit(z), lit(w)))
	},
	TemplateAddThenSubtractThenMultiply: func(s *sampler) expr {
		x, y, z := s.descending3()
		return mul(sub(add(lit(x), lit(y)), lit(z)), lit(s.multiplicative()))
	},
	TemplateSubtractThenAddThenMultiply: func(s *sampler) expr {
		x, y, z := s.descending3()
		return mul(add(sub(lit(x), lit(y)), lit(z)), lit(s.multiplicative()))
	},
	TemplateAddThenAddThenSubtract: func(s *sampler) expr {
		x, y := s.additive(), s.additive()
		z, w := s.descending2()
		return add(add(lit(x), lit(y)), sub(lit(z), lit(w)))
	},
	TemplateSubtractThenAddThenAdd: func(s *sampler) expr {
		x, y := s.descending2()
		z, w := s.additive(), s.additive()
		return add(sub(lit(x), lit(y)), add(lit(z), lit(w)))
	},
	TemplateSubtractThenMultiplyThenAdd: func(s *sampler) expr {
		x, y := s.descending2()
		scaled := mul(sub(lit(x), lit(y)), lit(s.multiplicative()))
		return add(scaled, lit(s.additive()))
	},
	TemplateMultiplyThenSubtractThenAdd: func(s *sampler) expr {
		product := mul(lit(s.multiplicative()), lit(s.multiplicative()))
		diff := sub(product, lit(s.below(product.value)))
		return add(diff, lit(s.additive()))
	},
	TemplateMultiplyThenMultiplyThenSubtract: func(s *sampler) expr {
		x, y, z := s.multiplicative(), s.multiplicative(), s.multiplicative()
		product := mul(mul(lit(x), lit(y)), lit(z))
		return sub(product, lit(s.below(product.value)))
	},
	TemplateMultiplyThenSubtractThenMultiply: func(s *sampler) expr {
		product := mul(lit(s.multiplicative()), lit(s.multiplicative()))
		diff := sub(product, lit(s.below(product.value)))
		return mul(diff, lit(s.multiplicative()))
	},
	TemplateSubtractThenMultiplyThenMultiply: func(s *sampler) expr {
		x, y := s.descending2()
		scaled := mul(sub(lit(x), lit(y)), lit(s.multiplicative()))
		return mul(scaled, lit(s.multiplicative()))
	},
	TemplateSubtractThenMultiplyThenSubtract: func(s *sampler) expr {
		x, y := s.descending2()
		scaled := mul(sub(lit(x), lit(y)), lit(s.multiplicative()))
		return sub(scaled, lit(s.below(scaled.value)))
	},
	TemplateAddThenMultiplyThenAdd: func(s *sampler) expr {
		x, y := s.additive(), s.additive()
		scaled := mul(add(lit(x), lit(y)), lit(s.multiplicative()))
		return add(scaled, lit(s.additive()))
	},
	TemplateAddThenMultiplyThenSubtract: func(s *sampler) expr {
		x, y := s.additive(), s.additive()
		scaled := mul(add(lit(x), lit(y)), lit(s.multiplicative()))
		return sub(scaled, lit(s.below(scaled.value)))
	},
	TemplateAddThenSubtractThenAdd: func(s *sampler) expr {
		x, y, z := s.descending3()
		return add(sub(add(lit(x), lit(y)), lit(z)), lit(s.additive()))
	},
	TemplateMultiplyThenAddThenMultiply: func(s *sampler) expr {
		product := mul(lit(s.multiplicative()), lit(s.multiplicative()))
		return mul(add(product, lit(s.additive())), lit(s.multiplicative()))
	},
	TemplateMultiplyThenAddThenAdd: func(s *sampler) expr {
		product := mul(lit(s.multiplicative()), lit(s.multiplicative()))
		return add(add(product, lit(s.additive())), lit(s.additive()))
	},
	TemplateSubtractThenAddThenSubtract: func(s *sampler) expr {
		x, y, z := s.descending3()
		sum := add(sub(lit(x), lit(y)), lit(z))
		return sub(sum, lit(s.below(sum.value)))
	},
}
