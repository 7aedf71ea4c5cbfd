package crypto

import (
	"encoding/binary"
	"io"

	"golang.org/x/crypto/chacha20"
)

type seedStream struct {
	c *chacha20.Cipher
}

func (s *seedStream) Read(p []byte) (int, error) {
	clear(p)
	s.c.XORKeyStream(p, p)
	return len(p), nil
}

// NewSeedStream returns a deterministic byte stream for seeded key generation.
// The stream for a given seed must never change: seeded keys are stored in test
// fixtures. Never use it for production keys.
func NewSeedStream(seed uint64) io.Reader {
	var key [chacha20.KeySize]byte
	binary.LittleEndian.PutUint64(key[:], seed)
	var nonce [chacha20.NonceSize]byte
	c, err := chacha20.NewUnauthenticatedCipher(key[:], nonce[:])
	if err != nil {
		// key and nonce sizes are constant
		panic(err)
	}
	return &seedStream{c: c}
}
