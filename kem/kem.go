package kem

import (
	"crypto/subtle"
	"io"

	"github.com/dmvs/sidh/sidh"
)

// encrypt is the hashed-XOR PKE: it derives the shared secret between skA
// and pkB, stretches it with cSHAKE256 under label F to a one-time pad
// the length of ptext, and returns pkA's own encoded public key followed
// by the masked plaintext. pkB must be a Bob-role key; the torsion the
// two parties walk must differ for deriveSecret to even accept the pair.
func encrypt(skA *PrivateKey, pkA, pkB *PublicKey, ptext []byte) ([]byte, error) {
	if pkB.Role != sidh.Bob {
		return nil, sidh.ErrInvalidPublicKey
	}
	j, err := deriveSecret(skA, pkB)
	if err != nil {
		return nil, err
	}

	mask := make([]byte, len(ptext))
	cshake(mask, j, F)
	for i := range ptext {
		mask[i] ^= ptext[i]
	}

	out := make([]byte, pkA.Size()+len(ptext))
	copy(out, pkA.Export())
	copy(out[pkA.Size():], mask)
	return out, nil
}

// Encrypt encrypts ptext to pub using a freshly generated Alice-role
// ephemeral key, Diffie-Hellman against pub, and a cSHAKE256-derived
// one-time pad. ptext must be exactly KemSize+8 bytes, matching SIKE's
// own fixed plaintext length for its generic encryption API (64 bits of
// headroom over the shared-secret size, per the SIKE specification).
func Encrypt(rand io.Reader, pub *PublicKey, ptext []byte) ([]byte, error) {
	if len(ptext) != KemSize+8 {
		return nil, sidh.ErrMalformedInput
	}
	skA, err := GenerateKeyPair(rand, sidh.Alice, pub.Params)
	if err != nil {
		return nil, err
	}
	pkA, err := skA.PublicKey()
	if err != nil {
		return nil, err
	}
	return encrypt(skA, pkA, pub, ptext)
}

// Decrypt reverses Encrypt: it splits ctext into the embedded ephemeral
// public key and the masked plaintext, derives the same shared secret
// from prv's static key, and unmasks.
func Decrypt(prv *PrivateKey, ctext []byte) ([]byte, error) {
	return decrypt(prv, ctext, KemSize+8)
}

// decrypt is Decrypt for a masked plaintext of exactly msgLen bytes:
// KemSize+8 for Encrypt's ciphertexts, MsgLen for Encapsulate's.
func decrypt(prv *PrivateKey, ctext []byte, msgLen int) ([]byte, error) {
	var pkA PublicKey
	pkSize := pkA.Size()
	maskLen := len(ctext) - pkSize
	if maskLen != msgLen {
		return nil, sidh.ErrMalformedInput
	}

	pkA.Role = sidh.Alice
	pkA.Params = prv.Params
	if err := pkA.Import(ctext[:pkSize]); err != nil {
		return nil, err
	}

	j, err := deriveSecret(prv, &pkA)
	if err != nil {
		return nil, err
	}

	out := make([]byte, maskLen)
	cshake(out, j, F)
	for i := range out {
		out[i] ^= ctext[pkSize+i]
	}
	return out, nil
}

// rerandomize reproduces the deterministic Alice-role ephemeral key
// Encapsulate derived from message m and peer public key pub, by
// stretching m||pub.Export() through cSHAKE256 under label G and forcing
// the result into Alice's secret key space. Encapsulate and Decapsulate
// both call this so that the re-derivation is byte-for-byte identical on
// both sides of the re-encryption check.
func rerandomize(m []byte, pub *PublicKey) (*PrivateKey, error) {
	bits := sidh.SecretBitLen(sidh.Alice)
	byteLen := (bits + 7) / 8

	hkey := make([]byte, len(m)+pub.Size())
	copy(hkey, m)
	copy(hkey[len(m):], pub.Export())

	r := make([]byte, byteLen)
	cshake(r, hkey, G)
	top := uint(bits % 8)
	if top == 0 {
		top = 8
	}
	r[byteLen-1] &= (1 << top) - 1
	r[byteLen-1] |= 1 << (top - 1)

	return &PrivateKey{Role: sidh.Alice, Params: pub.Params, Scalar: r}, nil
}

// Encapsulate generates a random message, derives a deterministic
// ephemeral key from it and pub (so Decapsulate can recompute the same
// key to check the ciphertext), encrypts under that key, and derives the
// returned shared secret from both the message and the resulting
// ciphertext. This Fujisaki-Okamoto-style binding is what promotes the
// passively-secure PKE above into an actively-secure KEM: an attacker who
// tampers with ctext can't produce one that both decrypts to a message
// consistent with its own embedded ephemeral key and differs from what
// Decapsulate independently re-derives.
func Encapsulate(rand io.Reader, pub *PublicKey) (ctext, secret []byte, err error) {
	ptext := make([]byte, MsgLen)
	if _, err = io.ReadFull(rand, ptext); err != nil {
		return nil, nil, err
	}

	skA, err := rerandomize(ptext, pub)
	if err != nil {
		return nil, nil, err
	}
	pkA, err := skA.PublicKey()
	if err != nil {
		return nil, nil, err
	}

	ctext, err = encrypt(skA, pkA, pub, ptext)
	if err != nil {
		return nil, nil, err
	}

	secret = make([]byte, KemSize)
	hkey := make([]byte, len(ptext)+len(ctext))
	copy(hkey, ptext)
	copy(hkey[len(ptext):], ctext)
	cshake(secret, hkey, H)
	return ctext, secret, nil
}

// Decapsulate recovers the message Encapsulate embedded in ctext,
// re-derives the ephemeral key that message implies, and re-encrypts: if
// the result matches ctext's embedded ephemeral public key exactly, the
// shared secret is derived from the real message exactly as Encapsulate
// did. Otherwise prv.S (a value fixed at key-generation time and never
// revealed) stands in for the message, so the returned secret is
// well-formed but unpredictable to anyone without prv.S, rather than
// leaking through an error return which branch was taken.
func Decapsulate(prv *PrivateKey, pub *PublicKey, ctext []byte) ([]byte, error) {
	m, err := decrypt(prv, ctext, MsgLen)
	if err != nil {
		return nil, err
	}

	skA, err := rerandomize(m, pub)
	if err != nil {
		return nil, err
	}
	pkA, err := skA.PublicKey()
	if err != nil {
		return nil, err
	}
	c0 := pkA.Export()

	combined := make([]byte, len(m)+len(ctext))
	if subtle.ConstantTimeCompare(c0, ctext[:len(c0)]) == 1 {
		copy(combined, m)
	} else {
		copy(combined, prv.S)
	}
	copy(combined[len(m):], ctext)

	secret := make([]byte, KemSize)
	cshake(secret, combined, H)
	return secret, nil
}
