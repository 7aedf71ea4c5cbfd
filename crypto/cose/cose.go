package cose

import (
	"github.com/fxamacker/cbor/v2"
)

type KeyType int64

const (
	KeyTypeOKP KeyType = 1
	KeyTypeEC2 KeyType = 2
)

func (k KeyType) String() string {
	switch k {
	case KeyTypeOKP:
		return "OKP"
	case KeyTypeEC2:
		return "EC2"
	default:
		return "Unknown"
	}
}

type Algorithm int64

const (
	AlgES256K Algorithm = -47
	AlgEdDSA  Algorithm = -8
)

func (a Algorithm) String() string {
	switch a {
	case AlgES256K:
		return "ES256K"
	case AlgEdDSA:
		return "EdDSA"
	default:
		return "Unknown"
	}
}

type KeyOp int64

const (
	KeyOpSign KeyOp = 1 + iota
	KeyOpVerify
)

func (o KeyOp) String() string {
	switch o {
	case KeyOpSign:
		return "sign"
	case KeyOpVerify:
		return "verify"
	default:
		return "Unknown"
	}
}

const (
	AttrKty    = 1
	AttrAlg    = 3
	AttrKeyOps = 4
)

const (
	AttrOKP_Crv = -1
	AttrOKP_X   = -2

	AttrEC2_Crv = -1
	AttrEC2_X   = -2
	AttrEC2_Y   = -3
)

// Key is a COSE_Key as defined in RFC 9052
type Key map[int64]any

// GetAttr returns an integer attribute. Decoded CBOR carries unsigned values as uint64.
func GetAttr[T ~int64](k Key, attr int64) T {
	switch v := k[attr].(type) {
	case int64:
		return T(v)
	case uint64:
		return T(v)
	case T:
		return v
	default:
		return 0
	}
}

func (k Key) Kty() KeyType {
	return GetAttr[KeyType](k, AttrKty)
}

func (k Key) Alg() Algorithm {
	return GetAttr[Algorithm](k, AttrAlg)
}

func (k Key) KeyOps() []KeyOp {
	switch v := k[AttrKeyOps].(type) {
	case []any:
		out := make([]KeyOp, 0, len(v))
		for _, o := range v {
			switch o := o.(type) {
			case int64:
				out = append(out, KeyOp(o))
			case uint64:
				out = append(out, KeyOp(o))
			}
		}
		return out
	case []KeyOp:
		return v
	default:
		return nil
	}
}

func (k Key) Encode() []byte {
	out, err := cbor.Marshal(k)
	if err != nil {
		panic(err)
	}
	return out
}

func DecodeKey(data []byte) (key Key, err error) {
	err = cbor.Unmarshal(data, &key)
	return
}

type Curve int64

// IANA COSE Elliptic Curves registry
const (
	CrvEd25519   Curve = 6
	CrvSecp256k1 Curve = 8
)

func (c Curve) String() string {
	switch c {
	case CrvEd25519:
		return "Ed25519"
	case CrvSecp256k1:
		return "SECG Secp256k1"
	default:
		return "Unknown"
	}
}
