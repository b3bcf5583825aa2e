package isogeny

import (
	"math/big"
	"testing"

	"github.com/dmvs/sidh/internal/curve"
	"github.com/dmvs/sidh/internal/field"
	"github.com/stretchr/testify/require"
)

// Same real P503 base-curve points used in the curve package's tests: an
// order-2, an order-3, and an order-4 point, each solved from the curve's
// division polynomials and checked independently against repeated
// doubling/tripling landing on infinity at the claimed order.
var (
	order2X = fp2FromDecimal("0", "1")
	order4X = fp2FromDecimal("0",
		"10984429069749937996469918235435163855172114756135262581100280257976419962313835891672960335668034389758737706943410177643498476313979495723541111883047")
	order3X = fp2FromDecimal("0",
		"117500171584381414768900150748948395991675474726253947293183604071873010500006427440271414232106800441007464775680")
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

func baseCurve() curve.Coeff { return curve.FromA(field.Fp2{}) }

// A defining property of any isogeny: evaluating it at its own kernel
// point must land on the point at infinity (Z=0).

func TestTwoIsogKernelMapsToInfinity(t *testing.T) {
	k := curve.Point{X: order2X, Z: field.One()}
	image := EvalTwoIsog(k, k)
	require.True(t, image.Z.IsZero())
}

func TestThreeIsogKernelMapsToInfinity(t *testing.T) {
	k := curve.Point{X: order3X, Z: field.One()}
	image := EvalThreeIsog(k, k)
	require.True(t, image.Z.IsZero())
}

func TestFourIsogKernelMapsToInfinity(t *testing.T) {
	c := baseCurve()
	k4 := curve.Point{X: order4X, Z: field.One()}

	newC, consts := GetFourIsog(k4, c)
	_ = newC
	image := EvalFourIsog(consts, k4)
	require.True(t, image.Z.IsZero())
}

func TestFirstFourIsogMatchesGetFourIsog(t *testing.T) {
	c := baseCurve()
	k4 := curve.Point{X: order4X, Z: field.One()}

	A, _ := c.Affine()
	cFirst, constsFirst := FirstFourIsog(k4, A)
	cGeneric, constsGeneric := GetFourIsog(k4, c)

	require.Equal(t, cGeneric, cFirst)
	require.Equal(t, constsGeneric, constsFirst)
}

func TestFourIsogFactorsThroughExpectedTwoIsogenies(t *testing.T) {
	// GetFourIsog's constituents are [2]k4 (the order-2 kernel of the
	// first 2-isogeny) and that isogeny's image of k4 (the order-2 kernel
	// of the second); both must match what composing the 2-isogeny
	// primitives by hand produces.
	c := baseCurve()
	k4 := curve.Point{X: order4X, Z: field.One()}
	k2 := curve.XDbl(k4, c)
	k4Image := EvalTwoIsog(k4, k2)

	_, consts := GetFourIsog(k4, c)
	require.Equal(t, k2, consts.K2)
	require.Equal(t, k4Image, consts.K4Image)

	wantCodomain := GetTwoIsog(k4Image)
	gotCodomain, _ := GetFourIsog(k4, c)
	require.Equal(t, wantCodomain, gotCodomain)
}
