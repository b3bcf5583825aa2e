// Package walk implements the strategy-driven isogeny-tree traversal
// shared by Alice's (ell=4) and Bob's (ell=3) sides of the key exchange:
// a single generic engine parameterized by how to iterate the working
// point and how to derive/apply one isogeny, rather than the four
// near-duplicate traversals a naive port would carry (keygen/shared-secret
// times Alice/Bob).
package walk

import (
	"errors"

	"github.com/dmvs/sidh/internal/curve"
)

// ErrMalformedStrategy is returned when a strategy entry is non-positive,
// overruns the remaining budget for its row (index+m > max-row), or the
// traversal runs past the end of the strategy vector.
var ErrMalformedStrategy = errors.New("walk: malformed strategy")

// Config supplies the two ell-dependent operations the generic traversal
// needs: Iterate advances the working point by [ell^m], and Isogenize
// derives the codomain curve from an order-ell kernel point together with
// a closure that pushes any point through that isogeny.
type Config struct {
	Iterate   func(p curve.Point, c curve.Coeff, m int) curve.Point
	Isogenize func(p curve.Point, c curve.Coeff) (curve.Coeff, func(curve.Point) curve.Point)
}

type stackEntry struct {
	R     curve.Point
	Index int
}

// Traverse runs the full strategy-driven walk: starting from kernel
// generator r0 of order ell^max on curve c0, it performs max isogeny
// derivations, pushing every auxiliary point in pts (and the working
// point's own stacked history) through each one, and returns the final
// curve plus the images of pts.
func Traverse(r0 curve.Point, pts []curve.Point, c0 curve.Coeff, strategy []int, max int, cfg Config) (curve.Coeff, []curve.Point, error) {
	numRows := max
	if numRows < 1 {
		numRows = 1
	}

	var stack []stackEntry
	r := r0
	c := c0
	index := 0
	pushed := append([]curve.Point(nil), pts...)

	for row := 1; row <= numRows; row++ {
		for index < max-row {
			stack = append(stack, stackEntry{R: r, Index: index})
			pos := max - index - row - 1
			if pos < 0 || pos >= len(strategy) {
				return curve.Coeff{}, nil, ErrMalformedStrategy
			}
			m := strategy[pos]
			if m <= 0 || index+m > max-row {
				return curve.Coeff{}, nil, ErrMalformedStrategy
			}
			r = cfg.Iterate(r, c, m)
			index += m
		}

		newC, evalFn := cfg.Isogenize(r, c)
		for i := range pushed {
			pushed[i] = evalFn(pushed[i])
		}
		for i := range stack {
			stack[i].R = evalFn(stack[i].R)
		}
		c = newC

		if len(stack) > 0 {
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			r, index = top.R, top.Index
		} else {
			index = 0
		}
	}
	return c, pushed, nil
}

// TraverseSimple is the canonical multiply-then-isogenize recursion: at
// step e (descending from max-1 to 0), compute [ell^e]r as the next
// kernel, derive its isogeny, and push r and every auxiliary point through
// it. It produces the same codomain curve and pushed images as Traverse
// for any valid strategy of the matching depth, without needing one: the
// order-ell subgroup quotiented out at each step is the unique such
// subgroup of the working point's cyclic group, so the two traversals
// necessarily agree regardless of the path the optimal strategy takes to
// get there.
func TraverseSimple(r0 curve.Point, pts []curve.Point, c0 curve.Coeff, max int, cfg Config) (curve.Coeff, []curve.Point) {
	r := r0
	c := c0
	pushed := append([]curve.Point(nil), pts...)

	for i := 0; i < max; i++ {
		e := max - i - 1
		kernel := cfg.Iterate(r, c, e)
		newC, evalFn := cfg.Isogenize(kernel, c)
		r = evalFn(r)
		for j := range pushed {
			pushed[j] = evalFn(pushed[j])
		}
		c = newC
	}
	return c, pushed
}
