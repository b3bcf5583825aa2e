package sidh

import (
	"math/big"

	"github.com/dmvs/sidh/internal/curve"
	"github.com/dmvs/sidh/internal/field"
	"github.com/dmvs/sidh/internal/walk"
)

// aliceOrder and bobOrder are the actual torsion orders a secret scalar
// must fall strictly below: 2^ExponentA for Alice, 3^ExponentB for Bob.
// Alice's bound is exactly 2^aliceBits, but Bob's is not a power of two
// (bobBits is 253 = bitlen(3^ExponentB), and 2^bobBits over-approximates
// 3^ExponentB), so Bob's bound can't be expressed as a bitmask the way the
// scan length can; both are checked with the same big-integer comparison.
var (
	aliceOrder = new(big.Int).Lsh(big.NewInt(1), uint(field.ExponentA))
	bobOrder   = new(big.Int).Exp(big.NewInt(3), big.NewInt(field.ExponentB), nil)
)

func roleOrder(role Role) *big.Int {
	if role == Alice {
		return aliceOrder
	}
	return bobOrder
}

// leToBig interprets a little-endian byte slice as an unsigned integer.
func leToBig(b []byte) *big.Int {
	be := make([]byte, len(b))
	for i, v := range b {
		be[len(b)-1-i] = v
	}
	return new(big.Int).SetBytes(be)
}

func roleBits(role Role) int {
	if role == Alice {
		return aliceBits
	}
	return bobBits
}

func roleMax(role Role) int {
	if role == Alice {
		return aliceMax
	}
	return bobMax
}

func roleConfig(role Role) walk.Config {
	if role == Alice {
		return aliceConfig()
	}
	return bobConfig()
}

func roleOwnX(role Role, p Params) field.Fp2 {
	if role == Alice {
		return p.XPA
	}
	return p.XPB
}

func rolePeerX(role Role, p Params) field.Fp2 {
	if role == Alice {
		return p.XPB
	}
	return p.XPA
}

func roleStrategy(role Role, p Params) []int {
	if role == Alice {
		return p.StrategyA
	}
	return p.StrategyB
}

func normalizePublicKey(pts []curve.Point) (PublicKey, error) {
	if pts[0].Z.IsZero() || pts[1].Z.IsZero() || pts[2].Z.IsZero() {
		return PublicKey{}, ErrFieldZeroDivision
	}
	iz1, iz2, iz3 := field.Batch3Inv(&pts[0].Z, &pts[1].Z, &pts[2].Z)
	var x1, x2, x3 field.Fp2
	field.Mul(&x1, &pts[0].X, &iz1)
	field.Mul(&x2, &pts[1].X, &iz2)
	field.Mul(&x3, &pts[2].X, &iz3)
	return PublicKey{X1: x1, X2: x2, X3: x3}, nil
}

// checkScalar rejects a secret that is too short to cover role's scan
// length, that is zero, or that is at least role's actual torsion order
// (2^ExponentA for Alice, 3^ExponentB for Bob) — the keyspace the secret
// must land strictly inside of, per the scalar range this engine requires.
func checkScalar(role Role, secret []byte) error {
	bits := roleBits(role)
	if len(secret)*8 < bits {
		return ErrMalformedInput
	}
	n := leToBig(secret)
	if n.Sign() == 0 || n.Cmp(roleOrder(role)) >= 0 {
		return ErrMalformedInput
	}
	return nil
}

// KeyGen derives role's public key from its own secret scalar, using the
// strategy-driven walk: R = secret_pt(ownX, secret) is the kernel
// generator on the base curve, and the counterparty's basis triple is
// pushed through the resulting isogeny chain and normalized to affine
// coordinates.
func KeyGen(role Role, secret []byte, p Params) (PublicKey, error) {
	bits := roleBits(role)
	if err := checkScalar(role, secret); err != nil {
		return PublicKey{}, err
	}

	R := secretPoint(roleOwnX(role, p), secret, bits)
	pts := pushSet(rolePeerX(role, p))
	c0 := curve.FromA(field.Fp2{})

	_, pushed, err := walk.Traverse(R, pts, c0, roleStrategy(role, p), roleMax(role), roleConfig(role))
	if err != nil {
		return PublicKey{}, err
	}
	return normalizePublicKey(pushed)
}

// KeyGenSimple is KeyGen without a precomputed strategy: it runs the
// canonical multiply-then-isogenize recursion instead of the
// strategy-driven walk, producing an identical public key for any valid
// strategy of the matching depth.
func KeyGenSimple(role Role, secret []byte, p Params) (PublicKey, error) {
	bits := roleBits(role)
	if err := checkScalar(role, secret); err != nil {
		return PublicKey{}, err
	}

	R := secretPoint(roleOwnX(role, p), secret, bits)
	pts := pushSet(rolePeerX(role, p))
	c0 := curve.FromA(field.Fp2{})

	_, pushed := walk.TraverseSimple(R, pts, c0, roleMax(role), roleConfig(role))
	return normalizePublicKey(pushed)
}
