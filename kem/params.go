// Package kem implements SIKE key encapsulation on top of the sidh
// package's Diffie-Hellman core: a hashed-XOR public-key encryption
// scheme (Encrypt/Decrypt) wrapped in a Fujisaki-Okamoto-style transform
// (Encapsulate/Decapsulate) that turns a passively-secure key exchange
// into an IND-CCA2 KEM. sidh has no I/O or randomness of its own; this
// package is where both live, along with the wire format for public and
// private keys.
package kem

// MsgLen is the length in bytes of the ephemeral plaintext message
// Encapsulate draws at random and recovers during Decapsulate's
// re-encryption check. KemSize is the length in bytes of the derived
// shared secret. Both match the values SIKEp503 specifies for its
// 192-bit claimed security level.
const (
	MsgLen  = 24
	KemSize = 24
)

// G, H and F are the cSHAKE256 domain-separation labels for, respectively,
// re-encryption randomness derivation, shared-secret derivation, and the
// plaintext-masking keystream used by the underlying PKE. These are
// 16-bit labels rather than the ASCII strings used in the SIKE
// specification so that they match the reference implementation's test
// vectors, which this engine's predecessor inherited the convention from.
var (
	G = []byte{0x00, 0x00}
	H = []byte{0x01, 0x00}
	F = []byte{0x02, 0x00}
)
