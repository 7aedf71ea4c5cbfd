package ed25519

import (
	stdcrypto "crypto"
	stded25519 "crypto/ed25519"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"io"

	"filippo.io/edwards25519"
	"github.com/carillon-io/carillon-core/crypto"
	"github.com/carillon-io/carillon-core/crypto/cose"
)

var (
	_ crypto.Algorithm = Algorithm{}
	_ crypto.KeyPair   = (*PrivateKey)(nil)
	_ crypto.PublicKey = (*PublicKey)(nil)
)

type Algorithm struct{}

func (Algorithm) ID() string { return ID }

func (Algorithm) GenerateKeyPair() (crypto.KeyPair, error) {
	return generate(rand.Reader)
}

// GenerateKeyPairFromSeed takes the Ed25519 seed from the first 32 bytes of the seed stream
func (Algorithm) GenerateKeyPairFromSeed(seed uint64) (crypto.KeyPair, error) {
	return generate(crypto.NewSeedStream(seed))
}

// generate reads the seed itself: GenerateKey may ignore a caller supplied reader
func generate(r io.Reader) (*PrivateKey, error) {
	var seed [stded25519.SeedSize]byte
	if _, err := io.ReadFull(r, seed[:]); err != nil {
		return nil, err
	}
	priv := stded25519.NewKeyFromSeed(seed[:])
	clear(seed[:])
	var out PrivateKey
	copy(out[:], priv)
	return &out, nil
}

func (Algorithm) RestoreKeyPair(data []byte) (crypto.KeyPair, error) {
	if len(data) != PrivateKeySize {
		return nil, crypto.NewRestoreKeyError(ID, "invalid private key length %d", len(data))
	}
	if err := checkPoint(data[32:]); err != nil {
		return nil, &crypto.RestoreKeyError{Algorithm: ID, Err: err}
	}
	derived := stded25519.NewKeyFromSeed(data[:32])
	if subtle.ConstantTimeCompare(derived[32:], data[32:]) != 1 {
		return nil, crypto.NewRestoreKeyError(ID, "public key doesn't match the seed")
	}
	var out PrivateKey
	copy(out[:], data)
	return &out, nil
}

func (Algorithm) RestorePublicKey(data []byte) (crypto.PublicKey, error) {
	if len(data) != PublicKeySize {
		return nil, &crypto.IncompatibleKeyError{Algorithm: ID, Reason: "invalid public key length"}
	}
	if err := checkPoint(data); err != nil {
		return nil, &crypto.IncompatibleKeyError{Algorithm: ID, Reason: err.Error()}
	}
	var out PublicKey
	copy(out[:], data)
	return &out, nil
}

func (Algorithm) COSECurve() (cose.KeyType, cose.Curve) { return cose.KeyTypeOKP, cose.CrvEd25519 }

func (a Algorithm) PublicKeyFromCOSE(key cose.Key) (crypto.PublicKey, error) {
	x, ok := key[cose.AttrOKP_X].([]byte)
	if !ok {
		return nil, &crypto.IncompatibleKeyError{Algorithm: ID, Reason: "missing x coordinate"}
	}
	return a.RestorePublicKey(x)
}

var (
	errInvalidPoint      = errors.New("invalid point encoding")
	errNonCanonicalPoint = errors.New("non-canonical point encoding")
)

// checkPoint accepts canonical encodings of points on the curve only
func checkPoint(data []byte) error {
	p, err := new(edwards25519.Point).SetBytes(data)
	if err != nil {
		return errInvalidPoint
	}
	if subtle.ConstantTimeCompare(p.Bytes(), data) != 1 {
		return errNonCanonicalPoint
	}
	return nil
}

func (p *PrivateKey) Sign(message []byte) (crypto.Signature, error) {
	sig, err := stded25519.PrivateKey(p[:]).Sign(nil, message, stdcrypto.Hash(0))
	if err != nil {
		return nil, &crypto.SignError{Algorithm: ID, Err: err}
	}
	return crypto.Signature(sig), nil
}

func (p *PublicKey) Verify(sig crypto.Signature, message []byte) (bool, error) {
	if len(sig) != SignatureSize {
		return false, &crypto.IncompatibleKeyError{Algorithm: ID, Reason: "invalid signature length"}
	}
	return stded25519.Verify(p[:], message, sig), nil
}
