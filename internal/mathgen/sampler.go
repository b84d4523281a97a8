package mathgen

import (
	"math/rand"
	"sort"
)

// sampler draws operands for one template attempt. A draw from an empty
// range records the failure and returns the lower bound; the generator checks
// empty() once the template has finished and redraws the attempt.
type sampler struct {
	rnd   *rand.Rand
	cfg   Difficulty
	empty bool
}

func newSampler(rnd *rand.Rand, cfg Difficulty) *sampler {
	return &sampler{rnd: rnd, cfg: cfg}
}

// between draws from [lo, hi).
func (s *sampler) between(lo, hi int) int {
	if hi <= lo {
		s.empty = true
		return lo
	}
	return lo + s.rnd.Intn(hi-lo)
}

// additive draws from [Lower, Upper).
func (s *sampler) additive() int {
	return s.between(s.cfg.Lower, s.cfg.Upper)
}

// multiplicative draws from [Lower, Upper/3).
func (s *sampler) multiplicative() int {
	return s.between(s.cfg.Lower, s.cfg.multiplicativeUpper())
}

// divisor draws a multiplicative operand that is never zero.
func (s *sampler) divisor() int {
	lo := s.cfg.Lower
	if lo < 1 {
		lo = 1
	}
	return s.between(lo, s.cfg.multiplicativeUpper())
}

// below draws a subtrahend for partial, from [Lower, partial).
func (s *sampler) below(partial int) int {
	return s.between(s.cfg.Lower, partial)
}

// descending draws n additive operands sorted largest first.
func (s *sampler) descending(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = s.additive()
	}
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out
}

func (s *sampler) descending2() (int, int) {
	v := s.descending(2)
	return v[0], v[1]
}

func (s *sampler) descending3() (int, int, int) {
	v := s.descending(3)
	return v[0], v[1], v[2]
}
