package kem

import (
	"io"

	"github.com/dmvs/sidh/internal/field"
	"github.com/dmvs/sidh/sidh"
)

// PublicKey is a role-tagged sidh.PublicKey together with the domain
// parameters it was generated under, so Encrypt/Decrypt/Encapsulate can be
// handed just the key and still know which torsion it lives in and which
// base points to push through it.
type PublicKey struct {
	Role   sidh.Role
	Params sidh.Params
	Key    sidh.PublicKey
}

// Size is the wire-encoded length of a public key: three Fp2 coordinates,
// each 2*field.Bytelen bytes.
func (pub *PublicKey) Size() int { return 3 * 2 * field.Bytelen }

// Export writes pub to SIKE wire format: X1, X2, X3 each in turn.
func (pub *PublicKey) Export() []byte {
	out := make([]byte, pub.Size())
	sz := 2 * field.Bytelen
	field.ToBytes(out[0:sz], &pub.Key.X1)
	field.ToBytes(out[sz:2*sz], &pub.Key.X2)
	field.ToBytes(out[2*sz:3*sz], &pub.Key.X3)
	return out
}

// Import reads pub.Key from wire format. It does not validate that the
// resulting triple corresponds to a real curve; SharedSecret does that
// via curve.GetA when the key is actually used.
func (pub *PublicKey) Import(input []byte) error {
	if len(input) != pub.Size() {
		return sidh.ErrMalformedInput
	}
	sz := 2 * field.Bytelen
	field.FromBytes(&pub.Key.X1, input[0:sz])
	field.FromBytes(&pub.Key.X2, input[sz:2*sz])
	field.FromBytes(&pub.Key.X3, input[2*sz:3*sz])
	return nil
}

// PrivateKey holds a role's secret isogeny scalar plus S, the random
// value substituted into the Decapsulate re-encryption check when it
// fails: S is unknown to any other party, so a forged ciphertext that
// fails the check still yields an output indistinguishable from a
// genuine shared secret to anyone without S.
type PrivateKey struct {
	Role   sidh.Role
	Params sidh.Params
	Scalar []byte
	S      []byte
}

// Size is the wire-encoded length of a private key: S followed by Scalar.
func (prv *PrivateKey) Size() int { return len(prv.S) + len(prv.Scalar) }

// Export writes prv to wire format: S then Scalar.
func (prv *PrivateKey) Export() []byte {
	out := make([]byte, prv.Size())
	copy(out, prv.S)
	copy(out[len(prv.S):], prv.Scalar)
	return out
}

// Import reads prv.S and prv.Scalar from wire format, given the role and
// parameters the key was generated under (these aren't themselves part
// of the wire encoding; the caller is expected to already know them from
// context, same as which of its own keys a peer is using).
func (prv *PrivateKey) Import(role sidh.Role, params sidh.Params, input []byte) error {
	byteLen := (sidh.SecretBitLen(role) + 7) / 8
	if len(input) != MsgLen+byteLen {
		return sidh.ErrMalformedInput
	}
	prv.Role = role
	prv.Params = params
	prv.S = append([]byte(nil), input[:MsgLen]...)
	prv.Scalar = append([]byte(nil), input[MsgLen:]...)
	return nil
}

// GenerateKeyPair draws a fresh private key for role from rand: S is
// filled uniformly, and Scalar is filled uniformly and then its top bit
// (within role's secret bit-length) is forced to 1 and any bits above
// that length are cleared, matching the key-space <2^(bits-1), 2^bits-1>
// that secretPoint's ladder expects.
func GenerateKeyPair(rand io.Reader, role sidh.Role, params sidh.Params) (*PrivateKey, error) {
	bits := sidh.SecretBitLen(role)
	byteLen := (bits + 7) / 8

	prv := &PrivateKey{
		Role:   role,
		Params: params,
		Scalar: make([]byte, byteLen),
		S:      make([]byte, MsgLen),
	}

	if _, err := io.ReadFull(rand, prv.S); err != nil {
		return nil, err
	}
	if _, err := io.ReadFull(rand, prv.Scalar); err != nil {
		return nil, err
	}
	top := uint(bits % 8)
	if top == 0 {
		top = 8
	}
	prv.Scalar[byteLen-1] &= (1 << top) - 1
	prv.Scalar[byteLen-1] |= 1 << (top - 1)
	return prv, nil
}

// PublicKey derives the public key corresponding to prv by walking its
// secret isogeny chain.
func (prv *PrivateKey) PublicKey() (*PublicKey, error) {
	key, err := sidh.KeyGen(prv.Role, prv.Scalar, prv.Params)
	if err != nil {
		return nil, err
	}
	return &PublicKey{Role: prv.Role, Params: prv.Params, Key: key}, nil
}

// deriveSecret computes the shared j-invariant between prv and pub and
// returns it in wire format, the shared secret material both PKE
// directions XOR their message against.
func deriveSecret(prv *PrivateKey, pub *PublicKey) ([]byte, error) {
	if prv.Role == pub.Role {
		return nil, sidh.ErrInvalidPublicKey
	}
	j, err := sidh.SharedSecret(prv.Role, prv.Scalar, pub.Key, prv.Params)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 2*field.Bytelen)
	field.ToBytes(out, &j)
	return out, nil
}
