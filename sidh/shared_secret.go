package sidh

import (
	"github.com/dmvs/sidh/internal/curve"
	"github.com/dmvs/sidh/internal/field"
	"github.com/dmvs/sidh/internal/walk"
)

// SharedSecret reconstructs the counterparty's isogenous curve from its
// public key, walks role's own secret isogeny chain from a kernel point
// found on that curve with the general 3-point ladder, and returns the
// j-invariant of the resulting curve.
func SharedSecret(role Role, secret []byte, peer PublicKey, p Params) (field.Fp2, error) {
	bits := roleBits(role)
	if err := checkScalar(role, secret); err != nil {
		return field.Fp2{}, err
	}

	A, ok := curve.GetA(peer.X1, peer.X2, peer.X3)
	if !ok {
		return field.Fp2{}, ErrInvalidPublicKey
	}

	R := curve.Ladder3Pt(secret, peer.X1, peer.X2, peer.X3, A, bits)
	c0 := curve.FromA(A)

	finalC, _, err := walk.Traverse(R, nil, c0, roleStrategy(role, p), roleMax(role), roleConfig(role))
	if err != nil {
		return field.Fp2{}, err
	}
	return curve.JInvariant(finalC), nil
}

// SharedSecretSimple is SharedSecret without a precomputed strategy: the
// canonical multiply-then-isogenize recursion, agreeing with SharedSecret
// for any valid strategy of the matching depth.
func SharedSecretSimple(role Role, secret []byte, peer PublicKey, p Params) (field.Fp2, error) {
	bits := roleBits(role)
	if err := checkScalar(role, secret); err != nil {
		return field.Fp2{}, err
	}

	A, ok := curve.GetA(peer.X1, peer.X2, peer.X3)
	if !ok {
		return field.Fp2{}, ErrInvalidPublicKey
	}

	R := curve.Ladder3Pt(secret, peer.X1, peer.X2, peer.X3, A, bits)
	c0 := curve.FromA(A)

	finalC, _ := walk.TraverseSimple(R, nil, c0, roleMax(role), roleConfig(role))
	return curve.JInvariant(finalC), nil
}
