// Package palette defines the color tokens the game draws grids from.
// There are two fixed sets: the base colors used on every level and the
// visually similar "trick" colors mixed in on trick levels.
package palette

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Token is a named color. Tokens are immutable and shared across levels.
type Token struct {
	Name string
	Hex  string // "#rrggbb"
}

// Color parses the token's hex code.
func (t Token) Color() (colorful.Color, error) {
	c, err := colorful.Hex(t.Hex)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("palette: token %q: %w", t.Name, err)
	}
	return c, nil
}

// Source provides the two fixed token sets.
type Source interface {
	Base() []Token
	Trick() []Token
}

var baseTokens = []Token{
	{Name: "Red", Hex: "#ef4444"},
	{Name: "Blue", Hex: "#3b82f6"},
	{Name: "Green", Hex: "#10b981"},
	{Name: "Yellow", Hex: "#eab308"},
	{Name: "Purple", Hex: "#8b5cf6"},
	{Name: "Orange", Hex: "#f97316"},
	{Name: "Pink", Hex: "#ec4899"},
	{Name: "Teal", Hex: "#14b8a6"},
}

var trickTokens = []Token{
	{Name: "Light Blue", Hex: "#60a5fa"},
	{Name: "Cyan", Hex: "#22d3ee"},
	{Name: "Lime", Hex: "#84cc16"},
	{Name: "Indigo", Hex: "#6366f1"},
}

// Default is the built-in palette.
type Default struct{}

// Base returns a copy of the base colors.
func (Default) Base() []Token {
	return append([]Token(nil), baseTokens...)
}

// Trick returns a copy of the trick colors.
func (Default) Trick() []Token {
	return append([]Token(nil), trickTokens...)
}

// Pool returns the tokens a level draws from: base only, or base followed by
// trick colors when trick is set.
func Pool(src Source, trick bool) []Token {
	base := src.Base()
	if !trick {
		return base
	}
	return append(base, src.Trick()...)
}

// Validate checks that every token has a parseable hex code and that names
// are unique within the combined palette.
func Validate(src Source) error {
	seen := make(map[string]bool)
	for _, t := range Pool(src, true) {
		if t.Name == "" {
			return fmt.Errorf("palette: token with hex %s has no name", t.Hex)
		}
		if seen[t.Name] {
			return fmt.Errorf("palette: duplicate token name %q", t.Name)
		}
		seen[t.Name] = true
		if _, err := t.Color(); err != nil {
			return err
		}
	}
	if len(src.Base()) == 0 {
		return fmt.Errorf("palette: base set is empty")
	}
	return nil
}

// Closest returns the trick token perceptually nearest to t, and the Lab
// distance between them. ok is false when the trick set is empty.
func Closest(src Source, t Token) (Token, float64, bool) {
	c, err := t.Color()
	if err != nil {
		return Token{}, 0, false
	}
	var (
		best     Token
		bestDist float64
		found    bool
	)
	for _, cand := range src.Trick() {
		if cand.Name == t.Name {
			continue
		}
		cc, err := cand.Color()
		if err != nil {
			continue
		}
		d := c.DistanceLab(cc)
		if !found || d < bestDist {
			best, bestDist, found = cand, d, true
		}
	}
	return best, bestDist, found
}
