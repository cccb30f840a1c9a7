// Package regexgen draws random strings that match a regular expression.
//
// A Generator either owns a seeded *rand.Rand, which makes draws repeatable
// and must then not be shared between goroutines, or falls back to the
// goroutine-safe global math/rand/v2 source.
package regexgen

import (
	"errors"
	"fmt"
	mathrand "math/rand/v2"
	"regexp"
	"regexp/syntax"
	"strings"
)

const (
	// MaxRepeat bounds the extra repetitions drawn for *, + and open-ended {n,}.
	MaxRepeat = 10

	// MaxAttempts is how many draws are tried before giving up on a pattern.
	MaxAttempts = 100
)

// ErrUnsatisfiable is returned when no matching string could be drawn.
var ErrUnsatisfiable = errors.New("no value matching the pattern could be generated")

// alnum is drawn from for . and other "any character" nodes.
const alnum = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Generator draws strings matching regular expressions.
type Generator struct {
	rng *mathrand.Rand
}

// New returns a Generator backed by rng. A nil rng uses the global source.
func New(rng *mathrand.Rand) *Generator {
	return &Generator{rng: rng}
}

// NewSeeded returns a Generator whose draws are fully determined by seed.
func NewSeeded(seed uint64) *Generator {
	return New(mathrand.New(mathrand.NewPCG(seed, 0)))
}

// Default is the Generator used when callers do not supply one.
var Default = New(nil)

// Generate returns a random string that matches expr in its entirety.
func (g *Generator) Generate(expr string) (string, error) {
	return g.GenerateWhere(expr, nil)
}

// GenerateWhere draws strings matching expr until accept returns true for one
// of them, trying at most MaxAttempts times. A nil accept accepts any match.
func (g *Generator) GenerateWhere(expr string, accept func(string) bool) (string, error) {
	re, err := syntax.Parse(expr, syntax.Perl)
	if err != nil {
		return "", fmt.Errorf("parse %q: %w", expr, err)
	}
	full, err := regexp.Compile(`^(?:` + expr + `)$`)
	if err != nil {
		return "", fmt.Errorf("compile %q: %w", expr, err)
	}

	var sb strings.Builder
	for range MaxAttempts {
		sb.Reset()
		if !g.write(&sb, re) {
			break
		}
		s := sb.String()
		if !full.MatchString(s) {
			continue
		}
		if accept == nil || accept(s) {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsatisfiable, expr)
}

// write appends a random expansion of re to sb. It returns false when re can
// never match anything.
func (g *Generator) write(sb *strings.Builder, re *syntax.Regexp) bool {
	switch re.Op {
	case syntax.OpNoMatch:
		return false
	case syntax.OpEmptyMatch, syntax.OpBeginLine, syntax.OpEndLine,
		syntax.OpBeginText, syntax.OpEndText, syntax.OpWordBoundary, syntax.OpNoWordBoundary:
		return true
	case syntax.OpLiteral:
		for _, r := range re.Rune {
			sb.WriteRune(r)
		}
		return true
	case syntax.OpCharClass:
		r, ok := g.pickRune(re.Rune)
		if !ok {
			return false
		}
		sb.WriteRune(r)
		return true
	case syntax.OpAnyChar, syntax.OpAnyCharNotNL:
		sb.WriteByte(alnum[g.intN(len(alnum))])
		return true
	case syntax.OpCapture:
		return g.write(sb, re.Sub[0])
	case syntax.OpStar:
		return g.repeat(sb, re.Sub[0], 0, MaxRepeat)
	case syntax.OpPlus:
		return g.repeat(sb, re.Sub[0], 1, 1+MaxRepeat)
	case syntax.OpQuest:
		return g.repeat(sb, re.Sub[0], 0, 1)
	case syntax.OpRepeat:
		hi := re.Max
		if hi < 0 {
			hi = re.Min + MaxRepeat
		}
		return g.repeat(sb, re.Sub[0], re.Min, hi)
	case syntax.OpConcat:
		for _, sub := range re.Sub {
			if !g.write(sb, sub) {
				return false
			}
		}
		return true
	case syntax.OpAlternate:
		return g.write(sb, re.Sub[g.intN(len(re.Sub))])
	default:
		return false
	}
}

func (g *Generator) repeat(sb *strings.Builder, re *syntax.Regexp, lo, hi int) bool {
	n := lo
	if hi > lo {
		n += g.intN(hi - lo + 1)
	}
	for range n {
		if !g.write(sb, re) {
			return false
		}
	}
	return true
}

// pickRune draws a rune from a char class given as [lo, hi] pairs. Printable
// ASCII members are preferred so generated examples stay readable.
func (g *Generator) pickRune(ranges []rune) (rune, bool) {
	if len(ranges) == 0 {
		return 0, false
	}
	printable := clip(ranges, 0x20, 0x7e)
	if r, ok := g.pickFrom(printable); ok {
		return r, true
	}
	return g.pickFrom(ranges)
}

func (g *Generator) pickFrom(ranges []rune) (rune, bool) {
	total := 0
	for i := 0; i+1 < len(ranges); i += 2 {
		total += int(ranges[i+1]-ranges[i]) + 1
	}
	if total <= 0 {
		return 0, false
	}
	n := g.intN(total)
	for i := 0; i+1 < len(ranges); i += 2 {
		size := int(ranges[i+1]-ranges[i]) + 1
		if n < size {
			return ranges[i] + rune(n), true
		}
		n -= size
	}
	return 0, false
}

// clip intersects rune ranges with [lo, hi].
func clip(ranges []rune, lo, hi rune) []rune {
	var out []rune
	for i := 0; i+1 < len(ranges); i += 2 {
		a, b := max(ranges[i], lo), min(ranges[i+1], hi)
		if a <= b {
			out = append(out, a, b)
		}
	}
	return out
}

func (g *Generator) intN(n int) int {
	if n <= 0 {
		return 0
	}
	if g != nil && g.rng != nil {
		return g.rng.IntN(n)
	}
	return mathrand.IntN(n)
}
