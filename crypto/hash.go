package crypto

import (
	"crypto/sha256"
	"hash"

	"golang.org/x/crypto/blake2b"
)

type Hash interface {
	String() string
	Size() int
	New() hash.Hash
}

type hSHA256 struct{}
type hBLAKE2b_256 struct{}

func (hSHA256) String() string      { return "SHA-256" }
func (hBLAKE2b_256) String() string { return "BLAKE2b-256" }

func (hSHA256) Size() int      { return 32 }
func (hBLAKE2b_256) Size() int { return 32 }

func (hSHA256) New() hash.Hash { return sha256.New() }
func (hBLAKE2b_256) New() hash.Hash {
	h, _ := blake2b.New256(nil)
	return h
}

var (
	SHA256      Hash = hSHA256{}
	BLAKE2b_256 Hash = hBLAKE2b_256{}
)

// Digest hashes message with h in one call
func Digest(h Hash, message []byte) []byte {
	hf := h.New()
	hf.Write(message)
	return hf.Sum(nil)
}
