package mathgen

import (
	"fmt"
	"math/rand"
	"time"
)

// maxAttempts bounds how often a template is redrawn when one of its
// operands would have to come from an empty range.
const maxAttempts = 100

// Generate picks a template uniformly at random and generates a problem from it.
func Generate(cfg Difficulty, rnd *rand.Rand) (Problem, error) {
	if err := cfg.Validate(); err != nil {
		return Problem{}, err
	}
	t := Template(rnd.Intn(int(templateCount)))
	return generate(t, cfg, rnd)
}

// GenerateTemplate generates a problem from a specific template.
func GenerateTemplate(t Template, cfg Difficulty, rnd *rand.Rand) (Problem, error) {
	if !t.Valid() {
		return Problem{}, fmt.Errorf("unknown template %d", int(t))
	}
	if err := cfg.Validate(); err != nil {
		return Problem{}, err
	}
	return generate(t, cfg, rnd)
}

func generate(t Template, cfg Difficulty, rnd *rand.Rand) (Problem, error) {
	build := registry[t]
	for attempt := 0; attempt < maxAttempts; attempt++ {
		s := newSampler(rnd, cfg)
		e := build(s)
		if s.empty {
			continue
		}
		return Problem{
			Text:     e.text + " = ",
			Solution: e.value,
			Template: t,
		}, nil
	}
	return Problem{}, fmt.Errorf("%w: %s with difficulty %s after %d attempts", ErrDegenerateRange, t, cfg, maxAttempts)
}

// Generator produces problems for a fixed difficulty from its own random source.
type Generator struct {
	rnd *rand.Rand
	cfg Difficulty
	// only restricts generation to a single template when set.
	only *Template
}

// New returns a Generator seeded with the current time.
func New(cfg Difficulty) (*Generator, error) {
	return NewWithSeed(cfg, time.Now().UnixNano())
}

// NewWithSeed returns a Generator with a deterministic random source.
func NewWithSeed(cfg Difficulty, seed int64) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Generator{rnd: rand.New(rand.NewSource(seed)), cfg: cfg}, nil
}

// Only restricts the generator to one template.
func (g *Generator) Only(t Template) error {
	if !t.Valid() {
		return fmt.Errorf("unknown template %d", int(t))
	}
	g.only = &t
	return nil
}

// Difficulty returns the configured operand range.
func (g *Generator) Difficulty() Difficulty {
	return g.cfg
}

// Next generates the next problem.
func (g *Generator) Next() (Problem, error) {
	if g.only != nil {
		return GenerateTemplate(*g.only, g.cfg, g.rnd)
	}
	return Generate(g.cfg, g.rnd)
}
