package kem

import "golang.org/x/crypto/sha3"

// cshake fills out with len(out) bytes of cSHAKE256(in, S=label), the
// customization-keyed extendable-output hash this package uses in place
// of HMAC-SHA256 for every G/H/F derivation.
func cshake(out, in, label []byte) {
	h := sha3.NewCShake256(nil, label)
	h.Write(in)
	h.Read(out)
}
