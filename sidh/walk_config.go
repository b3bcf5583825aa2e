package sidh

import (
	"github.com/dmvs/sidh/internal/curve"
	"github.com/dmvs/sidh/internal/isogeny"
	"github.com/dmvs/sidh/internal/walk"
)

// aliceIsogenize returns a walk.Config's Isogenize callback for the
// 2^ExponentA torsion. The first row it is called on derives its codomain
// via the named first_4_isog step rather than the generic get_4_isog; see
// isogeny.FirstFourIsog's own doc comment for why that distinction is
// purely structural here rather than a different formula.
func aliceIsogenize() func(curve.Point, curve.Coeff) (curve.Coeff, func(curve.Point) curve.Point) {
	// first fires on SharedSecret's walk too, which starts from the peer's
	// curve rather than the base curve — that's only safe because
	// FirstFourIsog is, here, literally GetFourIsog under another name. A
	// real first_4_isog (the classical formula, which assumes A=0) applied
	// unconditionally on this branch would be wrong for any curve but the
	// base one.
	first := true
	return func(k curve.Point, c curve.Coeff) (curve.Coeff, func(curve.Point) curve.Point) {
		var newC curve.Coeff
		var consts isogeny.FourIsogConsts
		if first {
			A, _ := c.Affine()
			newC, consts = isogeny.FirstFourIsog(k, A)
			first = false
		} else {
			newC, consts = isogeny.GetFourIsog(k, c)
		}
		return newC, func(p curve.Point) curve.Point { return isogeny.EvalFourIsog(consts, p) }
	}
}

// aliceConfig is the walk.Config for the 4-isogeny side: iterating a
// point by [4^m] = [2^(2m)], and deriving/applying one 4-isogeny per row.
func aliceConfig() walk.Config {
	return walk.Config{
		Iterate: func(p curve.Point, c curve.Coeff, m int) curve.Point {
			return curve.XDble(p, c, 2*m)
		},
		Isogenize: aliceIsogenize(),
	}
}

// bobConfig is the walk.Config for the 3-isogeny side: iterating a point
// by [3^m], and deriving/applying one 3-isogeny per row. Bob's walk never
// starts from a distinguished curve the way Alice's keygen does, so every
// row uses the same generic formula.
func bobConfig() walk.Config {
	return walk.Config{
		Iterate: func(p curve.Point, c curve.Coeff, m int) curve.Point {
			return curve.XTple(p, c, m)
		},
		Isogenize: func(k curve.Point, c curve.Coeff) (curve.Coeff, func(curve.Point) curve.Point) {
			A, C := c.Affine()
			newC := isogeny.GetThreeIsog(k, A, C)
			return newC, func(p curve.Point) curve.Point { return isogeny.EvalThreeIsog(p, k) }
		},
	}
}
