package sidh

import (
	"math/big"
	"testing"

	"github.com/dmvs/sidh/internal/curve"
	"github.com/dmvs/sidh/internal/field"
	"github.com/stretchr/testify/require"
)

func fp2FromDecimal(a, b string) field.Fp2 {
	x := field.Fp2{A: fpFromDecimal(a), B: fpFromDecimal(b)}
	field.ToMontgomery(&x)
	return x
}

func fpFromDecimal(s string) field.Fp {
	n := new(big.Int)
	n.SetString(s, 10)
	var out field.Fp
	mask := new(big.Int).SetUint64(^uint64(0))
	tmp := new(big.Int).Set(n)
	for i := 0; i < field.Words; i++ {
		word := new(big.Int).And(tmp, mask)
		out[i] = word.Uint64()
		tmp.Rsh(tmp, 64)
	}
	return out
}

// order4X is the same real order-4 point on the P503 base curve used by
// the curve/isogeny packages' own tests.
var order4X = fp2FromDecimal("0",
	"10984429069749937996469918235435163855172114756135262581100280257976419962313835891672960335668034389758737706943410177643498476313979495723541111883047")

func TestGetARejectsDegenerateAsInvalidPublicKey(t *testing.T) {
	secret := make([]byte, (aliceBits+7)/8)
	secret[0] = 2
	_, err := SharedSecret(Alice, secret, PublicKey{}, Params{})
	require.ErrorIs(t, err, ErrInvalidPublicKey)
}

func TestCheckScalarRejectsShortSecret(t *testing.T) {
	p := Params{}
	_, err := KeyGen(Alice, []byte{0x01}, p)
	require.ErrorIs(t, err, ErrMalformedInput)

	_, err = KeyGen(Bob, []byte{0x01}, p)
	require.ErrorIs(t, err, ErrMalformedInput)
}

func TestBaseCurveCompanionMatchesDistortAndDiff(t *testing.T) {
	xP := order4X
	xQ, xQmP := baseCurveCompanion(xP)

	var wantXQ field.Fp2
	field.Neg(&wantXQ, &xP)
	require.Equal(t, wantXQ, xQ)

	d := curve.DistortAndDiff(xP)
	var invZ, wantXQmP field.Fp2
	field.Inv(&invZ, &d.Z)
	field.Mul(&wantXQmP, &d.X, &invZ)
	require.Equal(t, wantXQmP, xQmP)
}

func TestSecretPointForcedTopBitReachesOrderFourKernel(t *testing.T) {
	// k with every scanned bit 0 except the implicit forced top bit
	// collapses the ladder to R2 = P + [top-bit-weight]*Q only through
	// repeated doublings of Q, i.e. secret_pt(xP, 0, bits) must still
	// return a well-formed projective point (Z != 0) on the base curve.
	bits := aliceBits
	k := make([]byte, (bits+7)/8)
	r := secretPoint(order4X, k, bits)
	require.False(t, r.Z.IsZero())
}

func TestRoleHelpersPickCorrectFields(t *testing.T) {
	p := Params{
		XPA: field.FromUint64(2), YPA: field.FromUint64(3),
		XPB: field.FromUint64(4), YPB: field.FromUint64(5),
		StrategyA: []int{1, 2}, StrategyB: []int{3, 4},
	}
	require.Equal(t, p.XPA, roleOwnX(Alice, p))
	require.Equal(t, p.XPB, rolePeerX(Alice, p))
	require.Equal(t, p.XPB, roleOwnX(Bob, p))
	require.Equal(t, p.XPA, rolePeerX(Bob, p))
	require.Equal(t, p.StrategyA, roleStrategy(Alice, p))
	require.Equal(t, p.StrategyB, roleStrategy(Bob, p))
	require.Equal(t, aliceBits, roleBits(Alice))
	require.Equal(t, bobBits, roleBits(Bob))
	require.Equal(t, aliceMax, roleMax(Alice))
	require.Equal(t, bobMax, roleMax(Bob))
}
