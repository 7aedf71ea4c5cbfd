package core

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/carillon-io/carillon-core/crypto"
	"github.com/carillon-io/carillon-core/crypto/keygen"
	"github.com/carillon-io/carillon-core/logger"
)

// Context is a node identity resolved from a context directory. It's immutable once created.
type Context struct {
	dir        string
	configFile string
	config     *Config
	algorithm  crypto.Algorithm
	keyFile    string
	keyPair    crypto.KeyPair
}

// NewContext resolves the context directory dir. The default registry is used if reg is nil.
// Either a fully loaded context or an error is returned.
func NewContext(dir string, reg *crypto.Registry, log logger.Logger) (*Context, error) {
	if reg == nil {
		reg = keygen.DefaultRegistry()
	}
	if log == nil {
		log = logger.Discard
	}
	if err := checkPath(dir, true); err != nil {
		return nil, err
	}
	l := log.With("dir", dir)

	configFile := GetPath(ConfigFileName, dir)
	conf, err := LoadConfig(configFile)
	if err != nil {
		return nil, err
	}
	l.Debugf("Configuration loaded from %s", configFile)

	ident := &conf.Node.Identity
	if ident.Method != MethodPrivateKey {
		return nil, &UnsupportedSettingError{
			Item:     "identity method",
			Value:    ident.Method,
			Location: configFile,
		}
	}
	alg, err := reg.Get(ident.PrivateKey.Algorithm)
	if err != nil {
		return nil, &UnsupportedSettingError{
			Item:     "public-key algorithm",
			Value:    ident.PrivateKey.Algorithm,
			Location: configFile,
			Err:      err,
		}
	}

	keyFile := GetPath(ident.PrivateKey.Location, dir)
	if err := checkPath(keyFile, false); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(keyFile)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", keyFile, err)
	}
	kp, err := alg.RestoreKeyPair(data)
	if err != nil {
		return nil, err
	}
	l = l.WithFields(map[string]any{"algorithm": alg.ID(), "key_file": keyFile})
	l.Debug("Key pair restored")

	if err := checkPublicKeyFile(alg, kp, keyFile, l); err != nil {
		return nil, err
	}

	return &Context{
		dir:        dir,
		configFile: configFile,
		config:     conf,
		algorithm:  alg,
		keyFile:    keyFile,
		keyPair:    kp,
	}, nil
}

// checkPublicKeyFile compares the optional sibling public key file with the loaded key pair
func checkPublicKeyFile(alg crypto.Algorithm, kp crypto.KeyPair, keyFile string, l logger.Logger) error {
	pubFile := PublicKeyFile(keyFile)
	data, err := os.ReadFile(pubFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			l.Debugf("Public key file %s is absent", pubFile)
			return nil
		}
		return fmt.Errorf("reading %s: %w", pubFile, err)
	}
	pub, err := alg.RestorePublicKey(data)
	if err != nil {
		return err
	}
	if !pub.Equal(kp.PublicKey()) {
		return &crypto.IncompatibleKeyError{Algorithm: alg.ID(), Reason: "public key file does not match"}
	}
	return nil
}

func (c *Context) Dir() string                 { return c.dir }
func (c *Context) ConfigFile() string          { return c.configFile }
func (c *Context) Config() *Config             { return c.config }
func (c *Context) Algorithm() crypto.Algorithm { return c.algorithm }
func (c *Context) KeyFile() string             { return c.keyFile }

func (c *Context) KeyPair() (crypto.KeyPair, error) {
	if c == nil || c.keyPair == nil {
		return nil, ErrUnresolvedContext
	}
	return c.keyPair, nil
}
