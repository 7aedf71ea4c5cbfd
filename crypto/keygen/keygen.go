package keygen

import (
	"sync"

	"github.com/carillon-io/carillon-core/crypto"
	"github.com/carillon-io/carillon-core/crypto/ed25519"
	"github.com/carillon-io/carillon-core/crypto/secp256k1"
)

// Builtin returns fresh instances of every built-in algorithm
func Builtin() []crypto.Algorithm {
	return []crypto.Algorithm{
		ed25519.Algorithm{},
		secp256k1.Algorithm{},
	}
}

var (
	defaultRegistry *crypto.Registry
	once            sync.Once
)

// DefaultRegistry returns the process wide registry holding all built-in algorithms
func DefaultRegistry() *crypto.Registry {
	once.Do(func() {
		defaultRegistry = crypto.NewRegistry(Builtin()...)
	})
	return defaultRegistry
}

// GenerateKeyPair looks the algorithm up in reg, or in the default registry if reg is nil
func GenerateKeyPair(reg *crypto.Registry, id string) (crypto.KeyPair, error) {
	if reg == nil {
		reg = DefaultRegistry()
	}
	alg, err := reg.Get(id)
	if err != nil {
		return nil, err
	}
	return alg.GenerateKeyPair()
}
