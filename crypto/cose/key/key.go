package key

import (
	"fmt"

	"github.com/carillon-io/carillon-core/crypto"
	"github.com/carillon-io/carillon-core/crypto/cose"
	"github.com/carillon-io/carillon-core/crypto/keygen"
)

// PublicKey is implemented by public keys exportable as a COSE_Key
type PublicKey interface {
	crypto.PublicKey
	COSE() cose.Key
}

// Decoder is implemented by algorithms restoring public keys from a COSE_Key of their curve
type Decoder interface {
	COSECurve() (cose.KeyType, cose.Curve)
	PublicKeyFromCOSE(key cose.Key) (crypto.PublicKey, error)
}

// PublicKeyCOSE exports a public key as a COSE_Key
func PublicKeyCOSE(pub crypto.PublicKey) (cose.Key, error) {
	if p, ok := pub.(PublicKey); ok {
		return p.COSE(), nil
	}
	return nil, fmt.Errorf("%w: no COSE encoding for %s", crypto.ErrUnsupportedAlgorithm, pub.Algorithm())
}

// ParsePublicKey decodes a COSE_Key and restores it through reg, or the default registry if reg is nil
func ParsePublicKey(data []byte, reg *crypto.Registry) (crypto.PublicKey, error) {
	key, err := cose.DecodeKey(data)
	if err != nil {
		return nil, err
	}
	return NewPublicKey(key, reg)
}

// NewPublicKey hands the key to the registered algorithm handling its key type and curve
func NewPublicKey(key cose.Key, reg *crypto.Registry) (crypto.PublicKey, error) {
	if reg == nil {
		reg = keygen.DefaultRegistry()
	}
	var crv cose.Curve
	switch kty := key.Kty(); kty {
	case cose.KeyTypeOKP:
		crv = cose.GetAttr[cose.Curve](key, cose.AttrOKP_Crv)
	case cose.KeyTypeEC2:
		crv = cose.GetAttr[cose.Curve](key, cose.AttrEC2_Crv)
	default:
		return nil, fmt.Errorf("unsupported key type %v", kty)
	}

	for _, id := range reg.IDs() {
		alg, err := reg.Get(id)
		if err != nil {
			return nil, err
		}
		d, ok := alg.(Decoder)
		if !ok {
			continue
		}
		if kty, c := d.COSECurve(); kty == key.Kty() && c == crv {
			return d.PublicKeyFromCOSE(key)
		}
	}
	return nil, fmt.Errorf("%w: curve %v for key type %v", crypto.ErrUnsupportedAlgorithm, crv, key.Kty())
}
