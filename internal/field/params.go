package field

// Words is the number of 64-bit limbs used to represent an Fp element.
// p503-class primes fit in 503 bits, eight 64-bit words with room to spare.
const Words = 8

// ExponentA and ExponentB are the 2- and 3-power exponents of the default
// P503 prime p = 2^ExponentA * 3^ExponentB - 1. Concrete SIDH parameter
// tables (generator points, strategies) are an external input per the
// engine's scope; only the prime and its exponents are fixed here.
const (
	ExponentA = 250
	ExponentB = 159
)

// Bytelen is ceil(503/8), the wire-encoding width of one Fp coordinate.
const Bytelen = 63

// P is the P503 prime in little-endian 64-bit limbs.
var P = Fp{
	0xFFFFFFFFFFFFFFFF, 0xFFFFFFFFFFFFFFFF, 0xFFFFFFFFFFFFFFFF, 0xABFFFFFFFFFFFFFF,
	0x13085BDA2211E7A0, 0x1B9BF6C87B7E7DAF, 0x6045C6BDDA77A4D0, 0x004066F541811E1E,
}

// Px2 is 2*P, used by the reduction routines to avoid an extra borrow check.
var Px2 = Fp{
	0xfffffffffffffffe, 0xffffffffffffffff, 0xffffffffffffffff, 0x57ffffffffffffff,
	0x2610b7b44423cf41, 0x3737ed90f6fcfb5e, 0xc08b8d7bb4ef49a0, 0x0080cdea83023c3c,
}

// Pp1 is P+1, consumed word-by-word by the Montgomery reduction; its three
// low zero limbs are why fpMontRdc's inner loop can skip early iterations.
var Pp1 = Fp{
	0x0, 0x0, 0x0, 0xac00000000000000,
	0x13085bda2211e7a0, 0x1b9bf6c87b7e7daf, 0x6045c6bdda77a4d0, 0x004066f541811e1e,
}

// R2 is R^2 mod P, where R = 2^(64*Words). Multiplying a plain residue by
// R2 and reducing moves it into the Montgomery domain.
var R2 = Fp{
	0x5289a0cf641d011f, 0x9b88257189fed2b9, 0xa3b365d58dc8f17a, 0x5bc57ab6eff168ec,
	0x9e51998bd84d4423, 0xbf8999cbac3b5695, 0x46e9127bce14cdb6, 0x003f6cfce8b81771,
}

// montgomeryOne is 1 in the Montgomery domain, i.e. R mod P.
var montgomeryOne = Fp{
	0x00000000000003f9, 0x0, 0x0, 0xb400000000000000,
	0x63cb1a6ea6ded2b4, 0x51689d8d667eb37d, 0x8acd77c71ab24142, 0x0026fbaec60f5953,
}
