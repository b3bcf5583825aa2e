package sidh

import (
	"github.com/dmvs/sidh/internal/curve"
	"github.com/dmvs/sidh/internal/field"
)

// baseCurveCompanion recovers the torsion-twin xQ = -x and the affine
// x(Q-P) of a base-curve (A=0) point P from its bare x-coordinate, using
// the distortion map tau(x,y) = (-x, iy): xQ is just the negation of x,
// and x(Q-P) is distort_and_diff's projective output normalized to
// affine.
func baseCurveCompanion(xP field.Fp2) (xQ, xQmP field.Fp2) {
	field.Neg(&xQ, &xP)

	d := curve.DistortAndDiff(xP)
	var invZ field.Fp2
	field.Inv(&invZ, &d.Z)
	field.Mul(&xQmP, &d.X, &invZ)
	return
}

// secretPoint computes x(P + [k]Q) on the base curve, where Q = tau(P) is
// P's torsion-twin under the distortion map and k is scanned over bits
// bits. This is the starting kernel generator for a party's own keygen
// walk: the 3-point ladder specialized to the one curve where xQ and
// x(Q-P) are available in closed form from xP alone.
func secretPoint(xP field.Fp2, k []byte, bits int) curve.Point {
	xQ, xQmP := baseCurveCompanion(xP)
	var zeroA field.Fp2
	return curve.Ladder3Pt(k, xP, xQ, xQmP, zeroA, bits)
}

// pushSet builds the (P, Q, Q-P) triple of projective base-curve points
// that keygen pushes through the caller's own isogeny chain to produce
// the counterparty-facing public key.
func pushSet(xP field.Fp2) []curve.Point {
	xQ, xQmP := baseCurveCompanion(xP)
	one := field.One()
	return []curve.Point{
		{X: xP, Z: one},
		{X: xQ, Z: one},
		{X: xQmP, Z: one},
	}
}
