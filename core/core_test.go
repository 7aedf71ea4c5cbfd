package core

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/carillon-io/carillon-core/crypto"
	"github.com/carillon-io/carillon-core/crypto/ed25519"
	"github.com/carillon-io/carillon-core/crypto/keygen"
	"github.com/carillon-io/carillon-core/logger"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name string, data []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(name), 0700))
	require.NoError(t, os.WriteFile(name, data, 0600))
}

const testConfig = `node:
  identity:
    method: private_key
    private_key:
      algorithm: %s
      location: %s
`

// newTestDir writes a seeded key pair under security/ and a config referencing location
func newTestDir(t *testing.T, alg, location string) (string, crypto.KeyPair) {
	t.Helper()
	dir := t.TempDir()
	a, err := keygen.DefaultRegistry().Get(alg)
	require.NoError(t, err)
	kp, err := a.GenerateKeyPairFromSeed(3)
	require.NoError(t, err)
	writeFile(t, GetPath(location, dir), kp.Bytes())
	writeFile(t, filepath.Join(dir, ConfigFileName), fmt.Appendf(nil, testConfig, alg, location))
	return dir, kp
}

func TestNewContext(t *testing.T) {
	for _, alg := range keygen.DefaultRegistry().IDs() {
		t.Run(alg, func(t *testing.T) {
			dir, kp := newTestDir(t, alg, "security/"+LocalNodeKeyFile(alg))
			ctx, err := NewContext(dir, nil, nil)
			require.NoError(t, err)
			got, err := ctx.KeyPair()
			require.NoError(t, err)
			require.Equal(t, kp.Bytes(), got.Bytes())
			require.Equal(t, kp.PublicKey().Address(), got.PublicKey().Address())
			require.Equal(t, alg, ctx.Algorithm().ID())
			require.Equal(t, dir, ctx.Dir())
			require.Equal(t, filepath.Join(dir, ConfigFileName), ctx.ConfigFile())
			require.Equal(t, filepath.Join(dir, "security", LocalNodeKeyFile(alg)), ctx.KeyFile())
			require.Equal(t, DefaultHTTPAddress, ctx.Config().Node.HTTP.Address)
		})
	}

	t.Run("missing directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nope")
		_, err := NewContext(dir, nil, nil)
		var e *PathError
		require.ErrorAs(t, err, &e)
		require.Equal(t, NotExist, e.Op)
		require.Equal(t, dir, e.Location)
		require.ErrorIs(t, err, fs.ErrNotExist)
	})

	t.Run("not a directory", func(t *testing.T) {
		name := filepath.Join(t.TempDir(), "file")
		writeFile(t, name, nil)
		_, err := NewContext(name, nil, nil)
		require.ErrorIs(t, err, fs.ErrNotExist)
	})

	t.Run("missing config", func(t *testing.T) {
		dir := t.TempDir()
		_, err := NewContext(dir, nil, nil)
		var e *PathError
		require.ErrorAs(t, err, &e)
		require.Equal(t, filepath.Join(dir, ConfigFileName), e.Location)
	})

	t.Run("missing key file", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, ConfigFileName), []byte("node:\n  identity:\n    method: private_key\n"))
		_, err := NewContext(dir, nil, nil)
		var e *PathError
		require.ErrorAs(t, err, &e)
		require.Equal(t, filepath.Join(dir, DefaultKeyLocation), e.Location)
	})

	t.Run("default location", func(t *testing.T) {
		dir, kp := newTestDir(t, "ed25519", DefaultKeyLocation)
		writeFile(t, filepath.Join(dir, ConfigFileName), []byte("node:\n  identity: {}\n"))
		ctx, err := NewContext(dir, nil, nil)
		require.NoError(t, err)
		got, err := ctx.KeyPair()
		require.NoError(t, err)
		require.True(t, got.PublicKey().Equal(kp.PublicKey()))
		require.Equal(t, MethodPrivateKey, ctx.Config().Node.Identity.Method)
	})

	t.Run("absolute location", func(t *testing.T) {
		keyFile := filepath.Join(t.TempDir(), "key")
		dir, kp := newTestDir(t, "ed25519", keyFile)
		ctx, err := NewContext(dir, nil, nil)
		require.NoError(t, err)
		require.Equal(t, keyFile, ctx.KeyFile())
		got, err := ctx.KeyPair()
		require.NoError(t, err)
		require.Equal(t, kp.Bytes(), got.Bytes())
	})

	t.Run("unsupported algorithm", func(t *testing.T) {
		dir, _ := newTestDir(t, "ed25519", DefaultKeyLocation)
		writeFile(t, filepath.Join(dir, ConfigFileName), []byte("node:\n  identity:\n    private_key:\n      algorithm: rsa\n"))
		_, err := NewContext(dir, nil, nil)
		require.ErrorIs(t, err, ErrUnsupportedSetting)
		require.ErrorIs(t, err, crypto.ErrUnsupportedAlgorithm)
		var e *UnsupportedSettingError
		require.ErrorAs(t, err, &e)
		require.Equal(t, "public-key algorithm", e.Item)
		require.Equal(t, "rsa", e.Value)
		require.Equal(t, filepath.Join(dir, ConfigFileName), e.Location)
	})

	t.Run("unregistered in custom registry", func(t *testing.T) {
		dir, _ := newTestDir(t, "secp256k1", DefaultKeyLocation)
		_, err := NewContext(dir, crypto.NewRegistry(ed25519.Algorithm{}), nil)
		var e *UnsupportedSettingError
		require.ErrorAs(t, err, &e)
		require.Equal(t, "secp256k1", e.Value)
	})

	t.Run("unsupported method", func(t *testing.T) {
		dir, _ := newTestDir(t, "ed25519", DefaultKeyLocation)
		writeFile(t, filepath.Join(dir, ConfigFileName), []byte("node:\n  identity:\n    method: hsm\n"))
		_, err := NewContext(dir, nil, nil)
		var e *UnsupportedSettingError
		require.ErrorAs(t, err, &e)
		require.Equal(t, "identity method", e.Item)
		require.Equal(t, "hsm", e.Value)
	})

	t.Run("corrupted key", func(t *testing.T) {
		dir, _ := newTestDir(t, "ed25519", DefaultKeyLocation)
		writeFile(t, filepath.Join(dir, DefaultKeyLocation), []byte("garbage"))
		_, err := NewContext(dir, nil, nil)
		require.ErrorIs(t, err, crypto.ErrCannotRestoreKey)
	})

	t.Run("public key file", func(t *testing.T) {
		dir, kp := newTestDir(t, "ed25519", DefaultKeyLocation)
		pubFile := PublicKeyFile(filepath.Join(dir, DefaultKeyLocation))
		writeFile(t, pubFile, kp.PublicKey().Bytes())
		_, err := NewContext(dir, nil, nil)
		require.NoError(t, err)

		other, err := ed25519.Algorithm{}.GenerateKeyPairFromSeed(4)
		require.NoError(t, err)
		writeFile(t, pubFile, other.PublicKey().Bytes())
		_, err = NewContext(dir, nil, nil)
		require.ErrorIs(t, err, crypto.ErrIncompatibleKeyConversion)
		require.ErrorContains(t, err, "public key file does not match")

		writeFile(t, pubFile, []byte{1, 2, 3})
		_, err = NewContext(dir, nil, nil)
		require.ErrorIs(t, err, crypto.ErrIncompatibleKeyConversion)
	})

	t.Run("unresolved", func(t *testing.T) {
		var ctx *Context
		_, err := ctx.KeyPair()
		require.ErrorIs(t, err, ErrUnresolvedContext)
		_, err = (&Context{}).KeyPair()
		require.ErrorIs(t, err, ErrUnresolvedContext)
	})

	t.Run("logs", func(t *testing.T) {
		dir, _ := newTestDir(t, "ed25519", DefaultKeyLocation)
		var buf bytes.Buffer
		_, err := NewContext(dir, nil, NewLogger(logger.LevelDebug, &buf))
		require.NoError(t, err)
		require.Contains(t, buf.String(), "Key pair restored")
		require.Contains(t, buf.String(), "is absent")
	})
}

func TestInvalidConfig(t *testing.T) {
	cases := map[string]string{
		"syntax":        "node:\n  identity: [private_key\n",
		"unknown field": "node:\n  identity:\n    methd: private_key\n",
		"type":          "node:\n  identity:\n    private_key: [1, 2]\n",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			configFile := filepath.Join(dir, ConfigFileName)
			writeFile(t, configFile, []byte(src))
			_, err := NewContext(dir, nil, nil)
			require.ErrorIs(t, err, ErrInvalidConfig)
			var e *InvalidConfigError
			require.ErrorAs(t, err, &e)
			require.Equal(t, configFile, e.Location)
			require.Greater(t, e.Line, 0)
			require.Greater(t, e.Column, 0)
			require.NotEmpty(t, e.Message)
		})
	}
}

func TestConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		conf, err := ParseConfig([]byte("node:\n  identity:\n    method: private_key\n"), "test")
		require.NoError(t, err)
		require.Equal(t, DefaultConfig(), conf)

		conf, err = ParseConfig([]byte("node:\n  identity:\n    method: ~\n    private_key: ~\n"), "test")
		require.NoError(t, err)
		require.Equal(t, DefaultKeyAlgorithm, conf.Node.Identity.PrivateKey.Algorithm)
		require.Equal(t, MethodPrivateKey, conf.Node.Identity.Method)
	})

	t.Run("log level", func(t *testing.T) {
		conf, err := ParseConfig([]byte("node:\n  log_level: debug\n"), "test")
		require.NoError(t, err)
		require.Equal(t, logger.LevelDebug, conf.Node.LogLevel)

		for _, doc := range []string{"node:\n  log_level: ~\n", "node:\n  log_level: \"\"\n"} {
			conf, err = ParseConfig([]byte(doc), "test")
			require.NoError(t, err)
			require.Equal(t, DefaultLogLevel, conf.Node.LogLevel, doc)
		}

		conf, err = ParseConfig([]byte("node:\n  log_level: error\n"), "test")
		require.NoError(t, err)
		require.Equal(t, logger.LevelError, conf.Node.LogLevel)
	})

	t.Run("marshal", func(t *testing.T) {
		conf := DefaultConfig()
		conf.Node.Identity.PrivateKey.Location = "security/localnode_ed25519"
		ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
		data, err := conf.Marshal("abc", ts)
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(string(data), "# abc @ 2024-01-02T03:04:05Z\n"))

		decoded, err := ParseConfig(data, "test")
		require.NoError(t, err)
		require.Equal(t, conf, decoded)
	})
}

func TestGetPath(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "x")
	require.Equal(t, abs, GetPath(abs, "/base"))
	require.Equal(t, filepath.Join("base", "a", "b"), GetPath("a/b", "base"))
	require.Equal(t, "localnode_ed25519", LocalNodeKeyFile("ed25519"))

	t.Run("abs", func(t *testing.T) {
		require.Equal(t, abs, AbsPath(abs))
		wd, err := os.Getwd()
		require.NoError(t, err)
		require.Equal(t, filepath.Join(wd, "a", "b"), AbsPath("a/b"))
	})
}
