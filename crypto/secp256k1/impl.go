package secp256k1

import (
	"errors"

	"github.com/carillon-io/carillon-core/crypto"
	"github.com/carillon-io/carillon-core/crypto/cose"
	secp "github.com/decred/dcrd/dcrec/secp256k1/v4"
	secpecdsa "github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

var (
	_ crypto.Algorithm = Algorithm{}
	_ crypto.KeyPair   = (*PrivateKey)(nil)
	_ crypto.PublicKey = (*PublicKey)(nil)
)

// MessageHash is applied to messages before signing and verification
var MessageHash = crypto.SHA256

type Algorithm struct{}

func (Algorithm) ID() string { return ID }

func (Algorithm) GenerateKeyPair() (crypto.KeyPair, error) {
	pk, err := secp.GeneratePrivateKey()
	if err != nil {
		return nil, err
	}
	return (*PrivateKey)(pk), nil
}

func (Algorithm) GenerateKeyPairFromSeed(seed uint64) (crypto.KeyPair, error) {
	pk, err := secp.GeneratePrivateKeyFromRand(crypto.NewSeedStream(seed))
	if err != nil {
		return nil, err
	}
	return (*PrivateKey)(pk), nil
}

func (Algorithm) RestoreKeyPair(data []byte) (crypto.KeyPair, error) {
	if len(data) != PrivateKeySize {
		return nil, crypto.NewRestoreKeyError(ID, "invalid private key length %d", len(data))
	}
	var scalar secp.ModNScalar
	if overflow := scalar.SetByteSlice(data); overflow {
		return nil, crypto.NewRestoreKeyError(ID, "private scalar is out of range")
	}
	if scalar.IsZero() {
		return nil, crypto.NewRestoreKeyError(ID, "private scalar is zero")
	}
	return (*PrivateKey)(secp.NewPrivateKey(&scalar)), nil
}

func (Algorithm) RestorePublicKey(data []byte) (crypto.PublicKey, error) {
	if len(data) != PublicKeySize {
		return nil, &crypto.IncompatibleKeyError{Algorithm: ID, Reason: "invalid public key length"}
	}
	if _, err := secp.ParsePubKey(data); err != nil {
		return nil, &crypto.IncompatibleKeyError{Algorithm: ID, Reason: err.Error()}
	}
	var out PublicKey
	copy(out[:], data)
	return &out, nil
}

func (Algorithm) COSECurve() (cose.KeyType, cose.Curve) { return cose.KeyTypeEC2, cose.CrvSecp256k1 }

// PublicKeyFromCOSE accepts both the compressed (boolean y) and the uncompressed form
func (a Algorithm) PublicKeyFromCOSE(key cose.Key) (crypto.PublicKey, error) {
	x, ok := key[cose.AttrEC2_X].([]byte)
	if !ok {
		return nil, &crypto.IncompatibleKeyError{Algorithm: ID, Reason: "missing x coordinate"}
	}
	switch y := key[cose.AttrEC2_Y].(type) {
	case bool:
		prefix := secp.PubKeyFormatCompressedEven
		if y {
			prefix = secp.PubKeyFormatCompressedOdd
		}
		return a.RestorePublicKey(append([]byte{prefix}, x...))
	case []byte:
		enc := make([]byte, 0, 1+len(x)+len(y))
		enc = append(enc, secp.PubKeyFormatUncompressed)
		enc = append(append(enc, x...), y...)
		pub, err := secp.ParsePubKey(enc)
		if err != nil {
			return nil, &crypto.IncompatibleKeyError{Algorithm: ID, Reason: err.Error()}
		}
		return a.RestorePublicKey(pub.SerializeCompressed())
	default:
		return nil, &crypto.IncompatibleKeyError{Algorithm: ID, Reason: "missing y coordinate"}
	}
}

// Sign produces a deterministic R || S signature over the SHA-256 digest of the message
func (p *PrivateKey) Sign(message []byte) (crypto.Signature, error) {
	digest := crypto.Digest(MessageHash, message)
	// recovery byte goes first
	sig := secpecdsa.SignCompact((*secp.PrivateKey)(p), digest, true)
	if len(sig) != SignatureSize+1 {
		return nil, &crypto.SignError{Algorithm: ID, Err: errInvalidCompactSignature}
	}
	return crypto.Signature(sig[1:]), nil
}

func (p *PublicKey) Verify(sig crypto.Signature, message []byte) (bool, error) {
	if len(sig) != SignatureSize {
		return false, &crypto.IncompatibleKeyError{Algorithm: ID, Reason: "invalid signature length"}
	}
	var r, s secp.ModNScalar
	if r.SetByteSlice(sig[:32]) || r.IsZero() {
		return false, nil
	}
	if s.SetByteSlice(sig[32:]) || s.IsZero() {
		return false, nil
	}
	pub, err := secp.ParsePubKey(p[:])
	if err != nil {
		return false, &crypto.IncompatibleKeyError{Algorithm: ID, Reason: err.Error()}
	}
	digest := crypto.Digest(MessageHash, message)
	return secpecdsa.NewSignature(&r, &s).Verify(digest, pub), nil
}

var errInvalidCompactSignature = errors.New("unexpected compact signature length")
