package curve

import (
	"math/big"

	"github.com/dmvs/sidh/internal/field"
)

// fp2FromDecimal builds a Montgomery-domain Fp2 element a+bi from base-10
// strings, for pasting in concrete field values computed externally (real
// points on the P503 base curve, verified independently against the curve
// equation).
func fp2FromDecimal(a, b string) field.Fp2 {
	x := field.Fp2{A: fpFromDecimal(a), B: fpFromDecimal(b)}
	field.ToMontgomery(&x)
	return x
}

// plain returns x out of the Montgomery domain, fully reduced, so that two
// representations of the same field element compare equal.
func plain(x field.Fp2) field.Fp2 {
	var out field.Fp2
	field.FromMontgomery(&x, &out)
	return out
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
