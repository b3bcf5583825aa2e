// Package curve implements Montgomery curve and projective x-only point
// arithmetic over Fp2: doubling, tripling, their iterated forms, the
// three-point ladder, j-invariant, and curve recovery from a public-key
// triple.
package curve

import "github.com/dmvs/sidh/internal/field"

var (
	two    = field.FromUint64(2)
	three  = field.FromUint64(3)
	four   = field.FromUint64(4)
	fiveC  = field.FromUint64(5)
	sixC   = field.FromUint64(6)
	twoFiveSix = field.FromUint64(256)
)

// Coeff is a Montgomery curve in the doubled projective form the walk
// actually computes with: A24plus = A+2C, C24 = 4C, for curve
// y^2 = x^3 + (A/C)x^2 + x. Carrying the doubled form avoids recomputing
// it on every xDBL/xTPL call along a row of the walk.
type Coeff struct {
	A24plus, C24 field.Fp2
}

// FromA builds the doubled form for the curve with C=1, the representation
// every walk starts from (the base curve, or a curve handed to keygen as a
// bare A coefficient).
func FromA(A field.Fp2) Coeff {
	var a24 Coeff
	field.Add(&a24.A24plus, &A, &two)
	a24.C24 = four
	return a24
}

// Point is a projective x-only point (X:Z); Z=0 is the point at infinity.
type Point struct {
	X, Z field.Fp2
}

// XDbl computes [2](X:Z) on the curve c.
func XDbl(p Point, c Coeff) Point {
	var t0, t1, t2, t3 field.Fp2
	var out Point

	field.Sub(&t0, &p.X, &p.Z)
	field.Add(&t1, &p.X, &p.Z)
	field.Sqr(&t0, &t0)
	field.Sqr(&t1, &t1)

	field.Mul(&out.Z, &c.C24, &t0)
	field.Mul(&out.X, &out.Z, &t1)

	field.Sub(&t2, &t1, &t0)
	field.Mul(&t3, &c.A24plus, &t2)
	field.Add(&out.Z, &out.Z, &t3)
	field.Mul(&out.Z, &out.Z, &t2)
	return out
}

// XDble applies XDbl e times, returning [2^e](X:Z).
func XDble(p Point, c Coeff, e int) Point {
	r := p
	for i := 0; i < e; i++ {
		r = XDbl(r, c)
	}
	return r
}

// XAdd computes the sum of two points given their difference, via the
// standard differential addition law: p, q and diff = p-q (or q-p; the
// formula is symmetric in which of the two roles diff plays, only its
// identity as "the known difference" matters).
func XAdd(p, q, diff Point) Point {
	var t0, t1, t2, t3, xsum, xdiff field.Fp2
	var out Point

	field.Add(&t0, &p.X, &p.Z)
	field.Sub(&t1, &p.X, &p.Z)
	field.Add(&t2, &q.X, &q.Z)
	field.Sub(&t3, &q.X, &q.Z)

	field.Mul(&t0, &t0, &t3)
	field.Mul(&t1, &t1, &t2)

	field.Add(&xsum, &t0, &t1)
	field.Sub(&xdiff, &t0, &t1)
	field.Sqr(&xsum, &xsum)
	field.Sqr(&xdiff, &xdiff)

	field.Mul(&out.X, &diff.Z, &xsum)
	field.Mul(&out.Z, &diff.X, &xdiff)
	return out
}

// XTpl computes [3](X:Z) on the curve c, composed from one XDbl and one
// XAdd against the original point (its own difference with its double).
func XTpl(p Point, c Coeff) Point {
	d := XDbl(p, c)
	return XAdd(d, p, p)
}

// XTple applies XTpl e times, returning [3^e](X:Z).
func XTple(p Point, c Coeff, e int) Point {
	r := p
	for i := 0; i < e; i++ {
		r = XTpl(r, c)
	}
	return r
}

// Ladder3Pt computes x(P + [k]Q) given xP, xQ, and xQmP = x(Q-P), on the
// curve with coefficient A (C=1). bits is the fixed bit-length the caller
// scans; the scalar's top bit (position bits-1) is never read — by
// convention it is always 1, absorbed into the three-register
// initialization below, so callers must force that bit of k themselves
// (standard SIDH practice: the random part of a secret scalar occupies the
// low bits, the top bit is fixed).
//
// Each step below runs the same sequence of field operations regardless
// of the scanned bit: field.CondSwap brings (r0, r1) into a canonical
// order before the step and restores the bit-dependent order after it,
// and the same trick picks xP vs xQmP as r2's companion point, so no
// branch in this loop depends on secret data.
func Ladder3Pt(k []byte, xP, xQ, xQmP field.Fp2, A field.Fp2, bits int) Point {
	c := FromA(A)
	one := field.One()

	r0 := Point{X: xQ, Z: one}
	r1 := XDbl(r0, c)
	r2 := XAdd(Point{X: xQ, Z: one}, Point{X: xP, Z: one}, Point{X: xQmP, Z: one})

	qPt := Point{X: xQ, Z: one}

	for i := bits - 2; i >= 0; i-- {
		bit := (k[i/8] >> uint(i%8)) & 1

		field.CondSwap(&r0.X, &r0.Z, &r1.X, &r1.Z, bit)

		aux := Point{X: xP, Z: one}
		other := Point{X: xQmP, Z: one}
		field.CondSwap(&aux.X, &aux.Z, &other.X, &other.Z, bit)

		newR1 := XAdd(r0, r1, qPt)
		newR0 := XDbl(r0, c)
		newR2 := XAdd(r0, r2, aux)

		r0, r1 = newR0, newR1
		field.CondSwap(&r0.X, &r0.Z, &r1.X, &r1.Z, bit)
		r2 = newR2
	}
	return r2
}

// Affine recovers the bare (A, C) pair from the doubled (A24plus, C24)
// form: C = C24/4, A = A24plus - 2C.
func (c Coeff) Affine() (A, C field.Fp2) {
	var invFour field.Fp2
	field.Inv(&invFour, &four)
	field.Mul(&C, &c.C24, &invFour)

	var twoC field.Fp2
	field.Add(&twoC, &C, &C)
	field.Sub(&A, &c.A24plus, &twoC)
	return
}

// JInvariant computes the Montgomery j-invariant 256(A^2-3C^2)^3 /
// (C^4(A^2-4C^2)), recovering the affine (A,C) from the doubled form first.
func JInvariant(c Coeff) field.Fp2 {
	A, C := c.Affine()

	var Asq, Csq field.Fp2
	field.Sqr(&Asq, &A)
	field.Sqr(&Csq, &C)

	var threeCsq, numBase field.Fp2
	field.Mul(&threeCsq, &three, &Csq)
	field.Sub(&numBase, &Asq, &threeCsq)

	var num field.Fp2
	field.Sqr(&num, &numBase)
	field.Mul(&num, &num, &numBase)
	field.Mul(&num, &num, &twoFiveSix)

	var fourCsq, denBase field.Fp2
	field.Mul(&fourCsq, &four, &Csq)
	field.Sub(&denBase, &Asq, &fourCsq)

	var Cquad field.Fp2
	field.Sqr(&Cquad, &Csq)
	var den field.Fp2
	field.Mul(&den, &Cquad, &denBase)

	var invDen, j field.Fp2
	field.Inv(&invDen, &den)
	field.Mul(&j, &num, &invDen)
	return j
}

// GetA reconstructs the Montgomery coefficient A (C=1 implicit) from three
// affine x-coordinates of P, Q, Q-P on a common curve. Returns false if the
// three coordinates are not consistent with any Montgomery curve (the
// reconstruction's denominator vanishes).
func GetA(x1, x2, x3 field.Fp2) (field.Fp2, bool) {
	var x1x2, x1x3, x2x3, x1x2x3 field.Fp2
	field.Mul(&x1x2, &x1, &x2)
	field.Mul(&x1x3, &x1, &x3)
	field.Mul(&x2x3, &x2, &x3)
	field.Mul(&x1x2x3, &x1x2, &x3)

	var denom field.Fp2
	field.Add(&denom, &x1x2x3, &x1x2x3)
	field.Add(&denom, &denom, &denom)
	if denom.IsZero() {
		return field.Fp2{}, false
	}

	one := field.One()
	var sum field.Fp2
	field.Sub(&sum, &one, &x1x2)
	field.Sub(&sum, &sum, &x1x3)
	field.Sub(&sum, &sum, &x2x3)
	field.Sqr(&sum, &sum)

	var xsum field.Fp2
	field.Add(&xsum, &x1, &x2)
	field.Add(&xsum, &xsum, &x3)

	var four_x1x2x3_xsum field.Fp2
	field.Mul(&four_x1x2x3_xsum, &denom, &xsum)

	var numerator field.Fp2
	field.Sub(&numerator, &sum, &four_x1x2x3_xsum)

	var invDenom, A field.Fp2
	field.Inv(&invDenom, &denom)
	field.Mul(&A, &numerator, &invDenom)
	field.Sub(&A, &A, &xsum)
	return A, true
}

// DistortAndDiff computes x(Q-P) on the base curve y^2=x^3+x, where
// Q = tau(P) = (-xP, i*yP) is the distortion-map image of P. Closed form:
// (X:Z) = (-(xP^2+1) : 2xP).
func DistortAndDiff(xP field.Fp2) Point {
	var xSq, num, den field.Fp2
	one := field.One()
	field.Sqr(&xSq, &xP)
	field.Add(&num, &xSq, &one)
	field.Neg(&num, &num)
	field.Add(&den, &xP, &xP)
	return Point{X: num, Z: den}
}
