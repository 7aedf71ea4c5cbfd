package core

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/carillon-io/carillon-core/crypto"
	"github.com/carillon-io/carillon-core/crypto/keygen"
	"github.com/carillon-io/carillon-core/logger"
	"github.com/carillon-io/carillon-core/utils"
)

type InitOptions struct {
	// Force allows writing into an existing directory
	Force     bool
	Algorithm string
	Registry  *crypto.Registry
	Logger    logger.Logger
	Now       func() time.Time
}

type InitResult struct {
	Dir           string
	ConfigFile    string
	KeyFile       string
	PublicKeyFile string
	PublicKey     crypto.PublicKey
	Address       string
}

// Init creates a new context directory with a freshly generated node key pair
// and a configuration file declaring it. On failure the files written so far are removed,
// along with the directory itself if Init created it.
func Init(dir string, opts InitOptions) (res *InitResult, err error) {
	reg := opts.Registry
	if reg == nil {
		reg = keygen.DefaultRegistry()
	}
	log := opts.Logger
	if log == nil {
		log = logger.Discard
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	algID := opts.Algorithm
	if algID == "" {
		algID = DefaultKeyAlgorithm
	}

	alg, err := reg.Get(algID)
	if err != nil {
		return nil, &UnsupportedSettingError{
			Item:     "public-key algorithm",
			Value:    algID,
			Location: dir,
			Err:      err,
		}
	}

	var (
		created bool
		written []string
	)
	_, err = os.Stat(dir)
	switch {
	case err == nil:
		if !opts.Force {
			return nil, &PathError{Op: Exist, Location: AbsPath(dir)}
		}
		log.Warnf("Overwriting the existing directory: %s", AbsPath(dir))
	case errors.Is(err, fs.ErrNotExist):
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating %s: %w", dir, err)
		}
		created = true
	default:
		return nil, fmt.Errorf("stat %s: %w", dir, err)
	}
	defer func() {
		if err == nil {
			return
		}
		if created {
			os.RemoveAll(dir)
			return
		}
		for _, name := range written {
			os.Remove(name)
		}
	}()

	secDir := filepath.Join(dir, DirSecurity)
	if err := os.MkdirAll(secDir, 0700); err != nil {
		return nil, fmt.Errorf("creating %s: %w", secDir, err)
	}

	kp, err := alg.GenerateKeyPair()
	if err != nil {
		return nil, err
	}
	pub := kp.PublicKey()

	keyFile := filepath.Join(secDir, LocalNodeKeyFile(alg.ID()))
	if err := utils.AtomicWrite(keyFile, kp.Bytes(), 0600); err != nil {
		return nil, fmt.Errorf("writing %s: %w", keyFile, err)
	}
	written = append(written, keyFile)
	log.Infof("A node key is generated: %s", keyFile)

	pubFile := PublicKeyFile(keyFile)
	if err := utils.AtomicWrite(pubFile, pub.Bytes(), 0644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", pubFile, err)
	}
	written = append(written, pubFile)
	log.Infof("A public key for node is generated: %s", pubFile)

	conf := DefaultConfig()
	conf.Node.Identity.PrivateKey.Algorithm = alg.ID()
	conf.Node.Identity.PrivateKey.Location = path.Join(DirSecurity, LocalNodeKeyFile(alg.ID()))
	data, err := conf.Marshal(pub.Address(), now())
	if err != nil {
		return nil, err
	}
	configFile := filepath.Join(dir, ConfigFileName)
	if err := utils.AtomicWrite(configFile, data, 0644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", configFile, err)
	}
	log.Infof("The initial configuration file was saved: %s", configFile)
	log.Infof("Node address: %s", pub.Address())

	return &InitResult{
		Dir:           dir,
		ConfigFile:    configFile,
		KeyFile:       keyFile,
		PublicKeyFile: pubFile,
		PublicKey:     pub,
		Address:       pub.Address(),
	}, nil
}
