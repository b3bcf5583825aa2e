package kem

import (
	"bytes"
	"testing"

	"github.com/dmvs/sidh/internal/field"
	"github.com/dmvs/sidh/sidh"
	"github.com/stretchr/testify/require"
)

func samplePublicKey(role sidh.Role) *PublicKey {
	return &PublicKey{
		Role: role,
		Key: sidh.PublicKey{
			X1: field.FromUint64(2),
			X2: field.FromUint64(3),
			X3: field.FromUint64(5),
		},
	}
}

func TestPublicKeyExportImportRoundTrip(t *testing.T) {
	pub := samplePublicKey(sidh.Bob)
	wire := pub.Export()
	require.Len(t, wire, pub.Size())

	var got PublicKey
	require.NoError(t, got.Import(wire))
	require.Equal(t, pub.Key, got.Key)
}

func TestPublicKeyImportRejectsWrongLength(t *testing.T) {
	var pub PublicKey
	err := pub.Import(make([]byte, pub.Size()-1))
	require.ErrorIs(t, err, sidh.ErrMalformedInput)
}

func TestPrivateKeyExportImportRoundTrip(t *testing.T) {
	params := sidh.Params{}
	byteLen := (sidh.SecretBitLen(sidh.Alice) + 7) / 8
	prv := &PrivateKey{
		Role:   sidh.Alice,
		Params: params,
		S:      bytes.Repeat([]byte{0xAB}, MsgLen),
		Scalar: bytes.Repeat([]byte{0xCD}, byteLen),
	}
	wire := prv.Export()
	require.Len(t, wire, prv.Size())

	var got PrivateKey
	require.NoError(t, got.Import(sidh.Alice, params, wire))
	require.Equal(t, prv.S, got.S)
	require.Equal(t, prv.Scalar, got.Scalar)
}

func TestPrivateKeyImportRejectsWrongLength(t *testing.T) {
	var prv PrivateKey
	err := prv.Import(sidh.Alice, sidh.Params{}, []byte{0x01})
	require.ErrorIs(t, err, sidh.ErrMalformedInput)
}

// allOnes is an io.Reader that always fills the buffer with 0xFF, used to
// check the bit-forcing in GenerateKeyPair deterministically: with every
// drawn byte already all-ones, the only way the result differs from
// 0xFF-repeated is the explicit masking GenerateKeyPair applies.
type allOnes struct{}

func (allOnes) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0xFF
	}
	return len(p), nil
}

func TestGenerateKeyPairMasksTopBitsOfLastByte(t *testing.T) {
	prv, err := GenerateKeyPair(allOnes{}, sidh.Alice, sidh.Params{})
	require.NoError(t, err)

	bits := sidh.SecretBitLen(sidh.Alice)
	byteLen := (bits + 7) / 8
	require.Len(t, prv.Scalar, byteLen)
	require.Len(t, prv.S, MsgLen)

	top := uint(bits % 8)
	if top == 0 {
		top = 8
	}
	last := prv.Scalar[byteLen-1]
	require.Equal(t, byte(0), last&^((1<<top)-1), "bits above the scalar's bit-length must be cleared")
	require.NotEqual(t, byte(0), last&(1<<(top-1)), "the scalar's top bit must be forced to 1")
}

func TestEncryptRejectsWrongPlaintextLength(t *testing.T) {
	pub := samplePublicKey(sidh.Bob)
	_, err := Encrypt(allOnes{}, pub, make([]byte, KemSize))
	require.ErrorIs(t, err, sidh.ErrMalformedInput)
}

func TestEncryptRejectsNonBobPublicKey(t *testing.T) {
	skA, err := GenerateKeyPair(allOnes{}, sidh.Alice, sidh.Params{})
	require.NoError(t, err)
	pkA := samplePublicKey(sidh.Alice)
	_, err = encrypt(skA, pkA, pkA, make([]byte, KemSize+8))
	require.ErrorIs(t, err, sidh.ErrInvalidPublicKey)
}

func TestDecryptRejectsWrongCiphertextLength(t *testing.T) {
	prv := &PrivateKey{Role: sidh.Bob, Params: sidh.Params{}}
	_, err := Decrypt(prv, make([]byte, 3))
	require.ErrorIs(t, err, sidh.ErrMalformedInput)
}

func TestDeriveSecretRejectsMatchingRoles(t *testing.T) {
	prv := &PrivateKey{Role: sidh.Alice}
	pub := samplePublicKey(sidh.Alice)
	_, err := deriveSecret(prv, pub)
	require.ErrorIs(t, err, sidh.ErrInvalidPublicKey)
}

func TestCshakeIsDeterministicAndLabelSeparated(t *testing.T) {
	in := []byte("fixed input")
	a := make([]byte, 32)
	b := make([]byte, 32)
	cshake(a, in, G)
	cshake(b, in, G)
	require.Equal(t, a, b)

	c := make([]byte, 32)
	cshake(c, in, H)
	require.NotEqual(t, a, c)
}
