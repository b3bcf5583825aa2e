// Package field implements Fp and Fp2 = Fp[i]/(i^2+1) arithmetic for the
// P503 SIDH prime, in the Montgomery domain throughout so that every
// multiplication is a wide fpMul followed by one fpMontRdc reduction, with
// no separate modular division.
package field

// Fp is an element of the base field, little-endian 64-bit limbs, always
// held in the Montgomery domain (i.e. representing x*R mod P).
type Fp [Words]uint64

// FpX2 is an unreduced double-width product, as produced by fpMul and
// consumed by fpMontRdc.
type FpX2 [2 * Words]uint64

// Fp2 is a0 + a1*i, i^2 = -1.
type Fp2 struct {
	A, B Fp
}

type uint128 struct {
	H, L uint64
}

func addc64(cin, a, b uint64) (ret, cout uint64) {
	ret = cin
	ret = ret + a
	if ret < a {
		cout = 1
	}
	ret = ret + b
	if ret < b {
		cout = 1
	}
	return
}

func subc64(bIn, a, b uint64) (ret, bOut uint64) {
	tmp := a - bIn
	if tmp > a {
		bOut = 1
	}
	ret = tmp - b
	if ret > tmp {
		bOut = 1
	}
	return
}

func mul64(a, b uint64) (res uint128) {
	var al, bl, ah, bh, albl, albh, ahbl, ahbh uint64
	var res1, res2, res3 uint64
	var carry, maskL, maskH, temp uint64

	maskL = (^maskL) >> 32
	maskH = ^maskL

	al = a & maskL
	ah = a >> 32
	bl = b & maskL
	bh = b >> 32

	albl = al * bl
	albh = al * bh
	ahbl = ah * bl
	ahbh = ah * bh
	res.L = albl & maskL

	res1 = albl >> 32
	res2 = ahbl & maskL
	res3 = albh & maskL
	temp = res1 + res2 + res3
	carry = temp >> 32
	res.L ^= temp << 32

	res1 = ahbl >> 32
	res2 = albh >> 32
	res3 = ahbh & maskL
	temp = res1 + res2 + res3 + carry
	res.H = temp & maskL
	carry = temp & maskH
	res.H ^= (ahbh & maskH) + carry
	return
}

// fpAddRdc computes z = x + y (mod 2*P), leaving z in [0, 2*P).
func fpAddRdc(z, x, y *Fp) {
	var carry uint64
	for i := 0; i < Words; i++ {
		z[i], carry = addc64(carry, x[i], y[i])
	}
	carry = 0
	for i := 0; i < Words; i++ {
		z[i], carry = subc64(carry, z[i], Px2[i])
	}
	mask := uint64(0 - carry)
	carry = 0
	for i := 0; i < Words; i++ {
		z[i], carry = addc64(carry, z[i], Px2[i]&mask)
	}
}

// fpSubRdc computes z = x - y (mod 2*P).
func fpSubRdc(z, x, y *Fp) {
	var borrow uint64
	for i := 0; i < Words; i++ {
		z[i], borrow = subc64(borrow, x[i], y[i])
	}
	mask := uint64(0 - borrow)
	borrow = 0
	for i := 0; i < Words; i++ {
		z[i], borrow = addc64(borrow, z[i], Px2[i]&mask)
	}
}

// CondSwap exchanges (xP, zP) with (xQ, zQ) in constant time when choice != 0.
func CondSwap(xP, zP, xQ, zQ *Fp2, choice uint8) {
	fpSwapCond(&xP.A, &xQ.A, choice)
	fpSwapCond(&xP.B, &xQ.B, choice)
	fpSwapCond(&zP.A, &zQ.A, choice)
	fpSwapCond(&zP.B, &zQ.B, choice)
}

func fpSwapCond(x, y *Fp, mask uint8) {
	m := 0 - ((uint64(mask) + 0xFF) >> 8) // all ones iff mask != 0
	for i := 0; i < Words; i++ {
		t := m & (x[i] ^ y[i])
		x[i] ^= t
		y[i] ^= t
	}
}

func fpMul(z *FpX2, x, y *Fp) {
	var u, v, t uint64
	var carry uint64
	var uv uint128

	for i := uint64(0); i < Words; i++ {
		for j := uint64(0); j <= i; j++ {
			uv = mul64(x[j], y[i-j])
			v, carry = addc64(0, uv.L, v)
			u, carry = addc64(carry, uv.H, u)
			t += carry
		}
		z[i] = v
		v = u
		u = t
		t = 0
	}

	for i := Words; i < (2*Words)-1; i++ {
		for j := i - Words + 1; j < Words; j++ {
			uv = mul64(x[j], y[i-j])
			v, carry = addc64(0, uv.L, v)
			u, carry = addc64(carry, uv.H, u)
			t += carry
		}
		z[i] = v
		v = u
		u = t
		t = 0
	}
	z[2*Words-1] = v
}

// fpMontRdc reduces a double-width product into the single-width Montgomery
// domain: z = x * R^-1 (mod 2*P). x is only read.
func fpMontRdc(z *Fp, x *FpX2) {
	var carry, t, u, v uint64
	var uv uint128
	count := 3 // low zero limbs of Pp1

	for i := 0; i < Words; i++ {
		for j := 0; j < i; j++ {
			if j < (i - count + 1) {
				uv = mul64(z[j], Pp1[i-j])
				v, carry = addc64(0, uv.L, v)
				u, carry = addc64(carry, uv.H, u)
				t += carry
			}
		}
		v, carry = addc64(0, v, x[i])
		u, carry = addc64(carry, u, 0)
		t += carry

		z[i] = v
		v = u
		u = t
		t = 0
	}

	for i := Words; i < 2*Words-1; i++ {
		if count > 0 {
			count--
		}
		for j := i - Words + 1; j < Words; j++ {
			if j < (Words - count) {
				uv = mul64(z[j], Pp1[i-j])
				v, carry = addc64(0, uv.L, v)
				u, carry = addc64(carry, uv.H, u)
				t += carry
			}
		}
		v, carry = addc64(0, v, x[i])
		u, carry = addc64(carry, u, 0)
		t += carry
		z[i-Words] = v
		v = u
		u = t
		t = 0
	}
	v, carry = addc64(0, v, x[2*Words-1])
	z[Words-1] = v
}

func fp2AddRaw(z, x, y *FpX2) {
	var carry uint64
	for i := 0; i < 2*Words; i++ {
		z[i], carry = addc64(carry, x[i], y[i])
	}
}

func fp2SubRaw(z, x, y *FpX2) {
	var borrow, mask uint64
	for i := 0; i < 2*Words; i++ {
		z[i], borrow = subc64(borrow, x[i], y[i])
	}
	mask = 0 - borrow
	borrow = 0
	for i := Words; i < 2*Words; i++ {
		z[i], borrow = addc64(borrow, z[i], P[i-Words]&mask)
	}
}

// MulFp computes dest = lhs * rhs in the Montgomery domain.
func MulFp(dest, lhs, rhs *Fp) {
	var ab FpX2
	fpMul(&ab, lhs, rhs)
	fpMontRdc(dest, &ab)
}

// AddFp computes dest = lhs + rhs mod P.
func AddFp(dest, lhs, rhs *Fp) { fpAddRdc(dest, lhs, rhs) }

// SubFp computes dest = lhs - rhs mod P.
func SubFp(dest, lhs, rhs *Fp) { fpSubRdc(dest, lhs, rhs) }

// p34 sets dest = x^((P-3)/4); if x is a square this is 1/sqrt(x). Uses a
// fixed sliding window of size 5, tables computed offline for P503.
func p34(dest, x *Fp) {
	pow2k := func(dest, x *Fp, k uint8) {
		MulFp(dest, x, x)
		for i := uint8(1); i < k; i++ {
			MulFp(dest, dest, dest)
		}
	}
	powStrategy := []uint8{1, 12, 5, 5, 2, 7, 11, 3, 8, 4, 11, 4, 7, 5, 6, 3, 7, 5, 7, 2, 12, 5, 6, 4, 6, 8, 6, 4, 7, 5, 5, 8, 5, 8, 5, 5, 8, 9, 3, 6, 2, 10, 6, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 3}
	mulStrategy := []uint8{0, 12, 11, 10, 0, 1, 8, 3, 7, 1, 8, 3, 6, 7, 14, 2, 14, 14, 9, 0, 13, 9, 15, 5, 12, 7, 13, 7, 15, 6, 7, 9, 0, 5, 7, 6, 8, 8, 3, 7, 0, 10, 15, 15, 15, 15, 15, 15, 15, 15, 15, 15, 15, 15, 15, 15, 15, 15, 15, 15, 15, 15, 15, 15, 15, 15, 15, 15, 15, 15, 15, 15, 15, 15, 15, 15, 15, 15, 15, 15, 15, 15, 15, 15, 15, 15, 15, 15, 15, 15, 15, 3}

	lookup := [16]Fp{}
	var xx Fp
	MulFp(&xx, x, x)
	lookup[0] = *x
	for i := 1; i < 16; i++ {
		MulFp(&lookup[i], &lookup[i-1], &xx)
	}

	*dest = lookup[mulStrategy[0]]
	for i := uint8(1); i < uint8(len(powStrategy)); i++ {
		pow2k(dest, dest, powStrategy[i])
		MulFp(dest, dest, &lookup[mulStrategy[i]])
	}
}

// Add computes dest = lhs + rhs over Fp2, componentwise.
func Add(dest, lhs, rhs *Fp2) {
	fpAddRdc(&dest.A, &lhs.A, &rhs.A)
	fpAddRdc(&dest.B, &lhs.B, &rhs.B)
}

// Sub computes dest = lhs - rhs over Fp2, componentwise.
func Sub(dest, lhs, rhs *Fp2) {
	fpSubRdc(&dest.A, &lhs.A, &rhs.A)
	fpSubRdc(&dest.B, &lhs.B, &rhs.B)
}

// Mul computes dest = lhs * rhs over Fp2 using one Karatsuba-saved
// multiplication: (a+bi)(c+di) = (ac-bd) + ((b-a)(c-d)+ac+bd)i.
func Mul(dest, lhs, rhs *Fp2) {
	a, b := &lhs.A, &lhs.B
	c, d := &rhs.A, &rhs.B

	var ac, bd FpX2
	fpMul(&ac, a, c)
	fpMul(&bd, b, d)

	var bMinusA, cMinusD Fp
	fpSubRdc(&bMinusA, b, a)
	fpSubRdc(&cMinusD, c, d)

	var adPlusBc FpX2
	fpMul(&adPlusBc, &bMinusA, &cMinusD)
	fp2AddRaw(&adPlusBc, &adPlusBc, &ac)
	fp2AddRaw(&adPlusBc, &adPlusBc, &bd)
	fpMontRdc(&dest.B, &adPlusBc)

	var acMinusBd FpX2
	fp2SubRaw(&acMinusBd, &ac, &bd)
	fpMontRdc(&dest.A, &acMinusBd)
}

// Sqr computes dest = x^2 over Fp2.
func Sqr(dest, x *Fp2) {
	a, b := &x.A, &x.B
	var a2, aPlusB, aMinusB Fp
	var a2MinB2, ab2 FpX2

	fpAddRdc(&a2, a, a)
	fpAddRdc(&aPlusB, a, b)
	fpSubRdc(&aMinusB, a, b)
	fpMul(&a2MinB2, &aPlusB, &aMinusB)
	fpMul(&ab2, &a2, b)
	fpMontRdc(&dest.A, &a2MinB2)
	fpMontRdc(&dest.B, &ab2)
}

// Inv computes dest = 1/x over Fp2 via 1/(a+bi) = (a-bi)/(a^2+b^2).
func Inv(dest, x *Fp2) {
	a, b := &x.A, &x.B
	var asq, bsq FpX2
	fpMul(&asq, a, a)
	fpMul(&bsq, b, b)

	var norm FpX2
	fp2AddRaw(&norm, &asq, &bsq)
	var normRdc Fp
	fpMontRdc(&normRdc, &norm)

	var inv Fp
	MulFp(&inv, &normRdc, &normRdc)
	p34(&inv, &inv)
	MulFp(&inv, &inv, &inv)
	MulFp(&inv, &inv, &normRdc)

	var ac FpX2
	fpMul(&ac, a, &inv)
	fpMontRdc(&dest.A, &ac)

	var minusB Fp
	fpSubRdc(&minusB, &minusB, b)
	var minusBC FpX2
	fpMul(&minusBC, &minusB, &inv)
	fpMontRdc(&dest.B, &minusBC)
}

// IsZero reports whether x is the zero element.
func (x *Fp2) IsZero() bool {
	var plain, zero Fp2
	FromMontgomery(x, &plain)
	return plain == zero
}

// One returns the Fp2 element 1, already in the Montgomery domain.
func One() Fp2 {
	return Fp2{A: montgomeryOne}
}

// FromUint64 returns the Fp2 element equal to the small integer u, in the
// Montgomery domain. Used for the handful of literal constants (2, 3, 4, 6,
// 256) that appear in the curve and isogeny formulas.
func FromUint64(u uint64) Fp2 {
	x := Fp2{A: Fp{u}}
	ToMontgomery(&x)
	return x
}

// Neg computes dest = -x over Fp2.
func Neg(dest, x *Fp2) {
	var zero Fp2
	Sub(dest, &zero, x)
}

// ToBytes writes x to the wire format: 2*Bytelen little-endian bytes, A then
// B, converting out of the Montgomery domain first. output must be at least
// 2*Bytelen bytes long.
func ToBytes(output []byte, x *Fp2) {
	if len(output) < 2*Bytelen {
		panic("output byte slice too short")
	}
	var a Fp2
	FromMontgomery(x, &a)

	for i := 0; i < Bytelen; i++ {
		tmp := i / 8
		k := uint64(i % 8)
		output[i] = byte(a.A[tmp] >> (8 * k))
		output[i+Bytelen] = byte(a.B[tmp] >> (8 * k))
	}
}

// FromBytes reads 2*Bytelen wire-format bytes into x, moving the result into
// the Montgomery domain. input must be at least 2*Bytelen bytes long.
func FromBytes(x *Fp2, input []byte) {
	if len(input) < 2*Bytelen {
		panic("input byte slice too short")
	}
	*x = Fp2{}
	for i := 0; i < Bytelen; i++ {
		j := i / 8
		k := uint64(i % 8)
		x.A[j] |= uint64(input[i]) << (8 * k)
		x.B[j] |= uint64(input[i+Bytelen]) << (8 * k)
	}
	ToMontgomery(x)
}

// ToMontgomery moves x from the plain domain into Montgomery form, in place.
func ToMontgomery(x *Fp2) {
	var ax, bx FpX2
	fpMul(&ax, &x.A, &R2)
	fpMul(&bx, &x.B, &R2)
	fpMontRdc(&x.A, &ax)
	fpMontRdc(&x.B, &bx)
}

// FromMontgomery moves x from the Montgomery domain into plain form, fully
// reduced into [0, P). It does not modify x; the result is written to out.
func FromMontgomery(x *Fp2, out *Fp2) {
	one := Fp{1}
	var ax, bx FpX2
	fpMul(&ax, &x.A, &one)
	fpMul(&bx, &x.B, &one)
	fpMontRdc(&out.A, &ax)
	fpMontRdc(&out.B, &bx)

	reduce := func(z *Fp) {
		var borrow uint64
		for i := 0; i < Words; i++ {
			z[i], borrow = subc64(borrow, z[i], P[i])
		}
		mask := uint64(0 - borrow)
		borrow = 0
		for i := 0; i < Words; i++ {
			z[i], borrow = addc64(borrow, z[i], P[i]&mask)
		}
	}
	reduce(&out.A)
	reduce(&out.B)
}

// Batch3Inv implements Montgomery's simultaneous-inversion trick: given
// three nonzero Fp2 elements, returns their three inverses using a single
// field inversion. Behaviour is undefined if any input is zero.
func Batch3Inv(z1, z2, z3 *Fp2) (iz1, iz2, iz3 Fp2) {
	var t1, t2, t3 Fp2
	Mul(&t1, z1, z2)   // z1*z2
	Mul(&t2, &t1, z3)  // z1*z2*z3
	Inv(&t3, &t2)      // 1/(z1*z2*z3)
	Mul(&t2, &t3, z3)  // 1/(z1*z2)
	Mul(&iz1, &t2, z2) // 1/z1
	Mul(&iz2, &t2, z1) // 1/z2
	Mul(&iz3, &t3, &t1) // 1/z3
	return
}
