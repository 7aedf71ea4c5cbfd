package secp256k1

import (
	"github.com/carillon-io/carillon-core/crypto"
	"github.com/carillon-io/carillon-core/crypto/cose"
	secp "github.com/decred/dcrd/dcrec/secp256k1/v4"
)

const (
	ID             = "secp256k1"
	PublicKeySize  = secp.PubKeyBytesLenCompressed
	PrivateKeySize = secp.PrivKeyBytesLen
	SignatureSize  = 64
)

// PublicKey is a compressed curve point
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
		cose.AttrKty:     cose.KeyTypeEC2,
		cose.AttrAlg:     cose.AlgES256K,
		cose.AttrKeyOps:  []cose.KeyOp{cose.KeyOpVerify},
		cose.AttrEC2_Crv: cose.CrvSecp256k1,
		cose.AttrEC2_X:   p[1:],
		cose.AttrEC2_Y:   p[0] == secp.PubKeyFormatCompressedOdd,
	}
}

type PrivateKey secp.PrivateKey

func (p *PrivateKey) Algorithm() string { return ID }
func (p *PrivateKey) Bytes() []byte     { return (*secp.PrivateKey)(p).Serialize() }

func (p *PrivateKey) PublicKey() crypto.PublicKey {
	var out PublicKey
	copy(out[:], (*secp.PrivateKey)(p).PubKey().SerializeCompressed())
	return &out
}
