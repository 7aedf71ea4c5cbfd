package ed25519

import (
	"github.com/carillon-io/carillon-core/crypto"
	"github.com/carillon-io/carillon-core/crypto/cose"
)

const (
	ID             = "ed25519"
	PublicKeySize  = 32
	PrivateKeySize = 64
	SignatureSize  = 64
)

// PublicKey is a compressed Edwards point
type PublicKey [PublicKeySize]byte

func (p *PublicKey) Algorithm() string { return ID }
func (p *PublicKey) Bytes() []byte     { return p[:] }
func (p *PublicKey) Address() string   { return crypto.Address(p[:]) }

func (p *PublicKey) Equal(other crypto.PublicKey) bool {
	if oth, ok := other.(*PublicKey); ok {
		return *oth == *p
	}
	return crypto.PublicKeysEqual(p, other)
}

func (p *PublicKey) COSE() cose.Key {
	return cose.Key{
		cose.AttrKty:     cose.KeyTypeOKP,
		cose.AttrAlg:     cose.AlgEdDSA,
		cose.AttrKeyOps:  []cose.KeyOp{cose.KeyOpVerify},
		cose.AttrOKP_Crv: cose.CrvEd25519,
		cose.AttrOKP_X:   p[:],
	}
}

// PrivateKey is stored as seed || public key
type PrivateKey [PrivateKeySize]byte

func (p *PrivateKey) Algorithm() string { return ID }

func (p *PrivateKey) Bytes() []byte {
	out := make([]byte, PrivateKeySize)
	copy(out, p[:])
	return out
}

func (p *PrivateKey) PublicKey() crypto.PublicKey {
	var out PublicKey
	copy(out[:], p[32:])
	return &out
}
