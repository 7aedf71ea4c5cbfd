package core

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/carillon-io/carillon-core/logger"
	"github.com/goccy/go-yaml"
)

const (
	ConfigFileName = "carillon.yaml"
	DirSecurity    = "security"

	MethodPrivateKey = "private_key"

	DefaultKeyAlgorithm = "ed25519"
	DefaultKeyLocation  = "security/id_ed25519"
	DefaultHTTPAddress  = "localhost:7878"
	DefaultLogLevel     = logger.LevelInfo
)

type Config struct {
	Node NodeConfig `yaml:"node"`
}

type NodeConfig struct {
	Identity IdentityConfig `yaml:"identity"`
	LogLevel logger.Level   `yaml:"log_level"`
	HTTP     HTTPConfig     `yaml:"http"`
}

type IdentityConfig struct {
	Method     string           `yaml:"method"`
	PrivateKey PrivateKeyConfig `yaml:"private_key"`
}

type PrivateKeyConfig struct {
	Algorithm string `yaml:"algorithm"`
	Location  string `yaml:"location"` // absolute or relative to the context directory
}

type HTTPConfig struct {
	Address string `yaml:"address"`
}

func DefaultConfig() *Config {
	return &Config{
		Node: NodeConfig{
			Identity: IdentityConfig{
				Method: MethodPrivateKey,
				PrivateKey: PrivateKeyConfig{
					Algorithm: DefaultKeyAlgorithm,
					Location:  DefaultKeyLocation,
				},
			},
			LogLevel: DefaultLogLevel,
			HTTP:     HTTPConfig{Address: DefaultHTTPAddress},
		},
	}
}

// restore defaults replaced by explicitly empty values
func (c *Config) setDefaults() {
	def := DefaultConfig()
	if c.Node.Identity.Method == "" {
		c.Node.Identity.Method = def.Node.Identity.Method
	}
	if c.Node.Identity.PrivateKey.Algorithm == "" {
		c.Node.Identity.PrivateKey.Algorithm = def.Node.Identity.PrivateKey.Algorithm
	}
	if c.Node.Identity.PrivateKey.Location == "" {
		c.Node.Identity.PrivateKey.Location = def.Node.Identity.PrivateKey.Location
	}
	if c.Node.LogLevel == 0 {
		c.Node.LogLevel = def.Node.LogLevel
	}
	if c.Node.HTTP.Address == "" {
		c.Node.HTTP.Address = def.Node.HTTP.Address
	}
}

// ParseConfig decodes YAML strictly. location is only used for error reporting.
func ParseConfig(data []byte, location string) (*Config, error) {
	conf := DefaultConfig()
	if err := yaml.UnmarshalWithOptions(data, conf, yaml.Strict()); err != nil {
		return nil, newInvalidConfigError(location, err)
	}
	conf.setDefaults()
	return conf, nil
}

func newInvalidConfigError(location string, err error) *InvalidConfigError {
	e := InvalidConfigError{
		Location: location,
		Message:  err.Error(),
		Err:      err,
	}
	var yerr yaml.Error
	if errors.As(err, &yerr) {
		e.Message = yerr.GetMessage()
		if tok := yerr.GetToken(); tok != nil && tok.Position != nil {
			e.Line = tok.Position.Line
			e.Column = tok.Position.Column
		}
	}
	return &e
}

// LoadConfig reads the file at path which must be a regular file
func LoadConfig(path string) (*Config, error) {
	if err := checkPath(path, false); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return ParseConfig(data, path)
}

// Marshal renders the configuration with a header comment naming the node address
func (c *Config) Marshal(address string, t time.Time) ([]byte, error) {
	body, err := yaml.MarshalWithOptions(c, yaml.Indent(2))
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s @ %s\n", address, t.Format(time.RFC3339))
	buf.Write(body)
	return buf.Bytes(), nil
}

// checkPath succeeds if path names a directory (dir is true) or a regular file
func checkPath(path string, dir bool) error {
	fi, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &PathError{Op: NotExist, Location: path}
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if dir && !fi.IsDir() || !dir && !fi.Mode().IsRegular() {
		return &PathError{Op: NotExist, Location: path}
	}
	return nil
}
