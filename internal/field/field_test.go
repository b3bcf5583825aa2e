package field

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func randFp2(r *rand.Rand) Fp2 {
	var x Fp2
	for i := 0; i < Words; i++ {
		x.A[i] = r.Uint64()
		x.B[i] = r.Uint64()
	}
	x.A[Words-1] &= 0x1ffffff // keep well under 2P in the high limb
	x.B[Words-1] &= 0x1ffffff
	ToMontgomery(&x)
	return x
}

func TestAddSubRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 64; i++ {
		a, b := randFp2(r), randFp2(r)
		var sum, back Fp2
		Add(&sum, &a, &b)
		Sub(&back, &sum, &b)

		var aPlain, backPlain Fp2
		FromMontgomery(&a, &aPlain)
		FromMontgomery(&back, &backPlain)
		require.Equal(t, aPlain, backPlain)
	}
}

func TestMulInvIdentity(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	one := One()
	for i := 0; i < 32; i++ {
		a := randFp2(r)
		if a.IsZero() {
			continue
		}
		var inv, product Fp2
		Inv(&inv, &a)
		Mul(&product, &a, &inv)

		var got, want Fp2
		FromMontgomery(&product, &got)
		FromMontgomery(&one, &want)
		require.Equal(t, want, got)
	}
}

func TestSqrMatchesMul(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for i := 0; i < 32; i++ {
		a := randFp2(r)
		var bySqr, byMul Fp2
		Sqr(&bySqr, &a)
		Mul(&byMul, &a, &a)

		var sqrPlain, mulPlain Fp2
		FromMontgomery(&bySqr, &sqrPlain)
		FromMontgomery(&byMul, &mulPlain)
		require.Equal(t, mulPlain, sqrPlain)
	}
}

func TestBatch3Inv(t *testing.T) {
	r := rand.New(rand.NewSource(4))
	for i := 0; i < 16; i++ {
		var z1, z2, z3 Fp2
		for {
			z1, z2, z3 = randFp2(r), randFp2(r), randFp2(r)
			if !z1.IsZero() && !z2.IsZero() && !z3.IsZero() {
				break
			}
		}
		iz1, iz2, iz3 := Batch3Inv(&z1, &z2, &z3)

		var p1, p2, p3 Fp2
		Mul(&p1, &z1, &iz1)
		Mul(&p2, &z2, &iz2)
		Mul(&p3, &z3, &iz3)

		one := One()
		var wantPlain Fp2
		FromMontgomery(&one, &wantPlain)

		var got Fp2
		FromMontgomery(&p1, &got)
		require.Equal(t, wantPlain, got)
		FromMontgomery(&p2, &got)
		require.Equal(t, wantPlain, got)
		FromMontgomery(&p3, &got)
		require.Equal(t, wantPlain, got)
	}
}

func TestCondSwap(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	xp, zp, xq, zq := randFp2(r), randFp2(r), randFp2(r), randFp2(r)
	origXp, origXq := xp, xq

	CondSwap(&xp, &zp, &xq, &zq, 0)
	require.Equal(t, origXp, xp)
	require.Equal(t, origXq, xq)

	CondSwap(&xp, &zp, &xq, &zq, 1)
	require.Equal(t, origXq, xp)
	require.Equal(t, origXp, xq)
}
