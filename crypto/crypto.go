package crypto

import (
	"bytes"
	"encoding/hex"
	"math/big"
)

// Algorithm is a signature scheme plugin. Implementations keep their key
// representation private and hand out KeyPair and PublicKey values only.
type Algorithm interface {
	// ID is the stable identifier used in configuration, registry lookups
	// and key file names
	ID() string
	// GenerateKeyPair draws fresh randomness from a cryptographically secure source
	GenerateKeyPair() (KeyPair, error)
	// GenerateKeyPairFromSeed is deterministic: a given seed yields the same key pair
	// for as long as the algorithm identifier stays the same. Test use only.
	GenerateKeyPairFromSeed(seed uint64) (KeyPair, error)
	RestoreKeyPair(data []byte) (KeyPair, error)
	RestorePublicKey(data []byte) (PublicKey, error)
}

// KeyPair owns the private half of an identity
type KeyPair interface {
	Algorithm() string
	// Bytes returns the serialized private key. This is the only way private
	// material leaves a KeyPair.
	Bytes() []byte
	PublicKey() PublicKey
	Sign(message []byte) (Signature, error)
}

type PublicKey interface {
	Algorithm() string
	Bytes() []byte
	Address() string
	Equal(other PublicKey) bool
	// Verify returns false for a well formed signature which doesn't match and an
	// error if the signature has the wrong shape for the algorithm
	Verify(sig Signature, message []byte) (bool, error)
}

type Signature []byte

func (s Signature) String() string { return hex.EncodeToString(s) }

// Address renders public key bytes as a big-endian unsigned integer in base 36
func Address(pub []byte) string {
	return new(big.Int).SetBytes(pub).Text(36)
}

// PublicKeysEqual is a helper for plugins implementing PublicKey.Equal
func PublicKeysEqual(a, b PublicKey) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Algorithm() == b.Algorithm() && bytes.Equal(a.Bytes(), b.Bytes())
}

type PublicKeyHash [32]byte

func (h *PublicKeyHash) String() string {
	return hex.EncodeToString(h[:])
}

// Fingerprint hashes the algorithm identifier together with the public key so keys
// of different algorithms with coinciding encodings never collide
func Fingerprint(pub PublicKey) PublicKeyHash {
	h := BLAKE2b_256.New()
	h.Write([]byte(pub.Algorithm()))
	h.Write([]byte{0})
	h.Write(pub.Bytes())
	var out PublicKeyHash
	copy(out[:], h.Sum(nil))
	return out
}
