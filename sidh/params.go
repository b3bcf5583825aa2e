// Package sidh implements the SIDH key-exchange core: secret-point
// derivation and the keygen/shared-secret entry points for both roles,
// built on the field/curve/isogeny/walk internals. It has no I/O and no
// randomness source of its own; callers hand it scalars and generator
// points, and the kem package above it is where ephemeral randomness and
// wire encoding live.
package sidh

import (
	"errors"

	"github.com/dmvs/sidh/internal/field"
)

// Sentinel errors, discriminable with errors.Is.
var (
	// ErrMalformedInput is returned when a secret scalar doesn't have the
	// shape this engine requires. A strategy vector that the walk rejects is
	// reported with the walk package's own error instead, which does not
	// match ErrMalformedInput under errors.Is.
	ErrMalformedInput = errors.New("sidh: malformed input")
	// ErrInvalidPublicKey is returned when a peer's public-key triple is
	// not consistent with any Montgomery curve (get_A's denominator
	// vanishes).
	ErrInvalidPublicKey = errors.New("sidh: invalid public key")
	// ErrFieldZeroDivision is returned by KeyGen and KeyGenSimple when a
	// pushed public-key point has Z=0, so the final three-way inversion
	// would divide by zero. For well-formed input and parameters this never
	// happens; it exists so a degenerate walk fails loudly rather than
	// yielding a meaningless key.
	ErrFieldZeroDivision = errors.New("sidh: field zero division")
)

// Role selects which side of the exchange a call operates as. Alice walks
// 4-isogenies over the 2^ExponentA torsion; Bob walks 3-isogenies over the
// 3^ExponentB torsion.
type Role int

const (
	Alice Role = iota
	Bob
)

// aliceBits and bobBits are the fixed bit-lengths LADDER_3_pt and
// secret_pt scan a scalar over: ExponentA for Alice (the 2-power
// exponent itself), and ceil(eB*log2(3)) = bitlen(3^ExponentB) for Bob,
// since Bob's torsion order is not a power of two. For P503 (ExponentB =
// 159) that works out to 253.
const (
	aliceBits = field.ExponentA
	bobBits   = 253
)

// aliceMax and bobMax are the number of isogeny-derivation rows a keygen
// or shared-secret walk performs: ExponentA/2 rows of 4-isogenies for
// Alice (each row quarters the remaining 2-power order), ExponentB rows
// of 3-isogenies for Bob.
const (
	aliceMax = field.ExponentA / 2
	bobMax   = field.ExponentB
)

// SecretBitLen returns the bit-length role's secret scalar is scanned
// over by the 3-point ladder: the packages above sidh (key generation,
// KEM encapsulation) need this to size and mask freshly-drawn scalars
// without reaching into sidh's unexported constants.
func SecretBitLen(role Role) int { return roleBits(role) }

// Params bundles the base-curve generator points both parties' torsion
// bases are fixed to, plus each party's isogeny-tree traversal strategy.
// Only the bare P-coordinate of each basis is needed: its torsion-twin
// Q = tau(P) and Q-P are both recovered in closed form via the
// distortion map (see secretPoint), so no separate Q/R fields are carried
// the way a literal parameter table might. YPA/YPB are carried for
// interface fidelity with the source's (xPB, xPA, yPA)/(xPA, xPB, yPB)
// convention even though this engine's closed-form secret-point shortcut
// never reads them.
type Params struct {
	XPA, YPA field.Fp2
	XPB, YPB field.Fp2

	// StrategyA has length ExponentA/2 - 1, StrategyB has length
	// ExponentB - 1: one fewer than the number of isogeny rows, since the
	// last row's kernel is whatever remains on the stack.
	StrategyA []int
	StrategyB []int
}

// PublicKey is the affine x-coordinate triple (x(phi(P)), x(phi(Q)),
// x(phi(Q-P))) of the counterparty's torsion basis, pushed through a
// party's secret isogeny.
type PublicKey struct {
	X1, X2, X3 field.Fp2
}
