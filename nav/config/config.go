package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/alapierre/go-nav-client/nav"
	"github.com/alapierre/go-nav-client/nav/model"
	"github.com/alapierre/go-nav-client/nav/signature"
	"github.com/alapierre/go-nav-client/nav/util"
	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

var logger = logrus.WithField("component", "nav.config")

var envReference = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Config holds everything needed to sign requests for one technical user.
type Config struct {
	Env                nav.Environment     `yaml:"env"`
	User               string              `yaml:"user"`
	Password           string              `yaml:"password"`
	ExchangeKey        string              `yaml:"exchange_key"`
	SigningKey         string              `yaml:"signing_key"`
	SigningKeyFile     string              `yaml:"signing_key_file"`
	SigningKeyPassword string              `yaml:"signing_key_password"`
	RequestIDPrefix    string              `yaml:"request_id_prefix"`
	PayloadFormat      model.PayloadFormat `yaml:"payload_format"`
}

// FromEnv reads the NAV_* environment variables. Passwords are taken as is,
// surrounding whitespace included.
func FromEnv() (*Config, error) {
	cfg := &Config{
		User:               util.GetEnvOrDefault("NAV_USER", ""),
		Password:           os.Getenv("NAV_PASSWORD"),
		ExchangeKey:        util.GetEnvOrDefault("NAV_EXCHANGE_KEY", ""),
		SigningKey:         util.GetEnvOrDefault("NAV_SIGNING_KEY", ""),
		SigningKeyFile:     util.GetEnvOrDefault("NAV_SIGNING_KEY_FILE", ""),
		SigningKeyPassword: os.Getenv("NAV_SIGNING_KEY_PASSWORD"),
		RequestIDPrefix:    util.GetEnvOrDefault("NAV_REQUEST_ID_PREFIX", ""),
	}

	if err := cfg.Env.UnmarshalText([]byte(util.GetEnvOrDefault("NAV_ENV", "test"))); err != nil {
		return nil, err
	}
	if err := cfg.PayloadFormat.UnmarshalText([]byte(util.GetEnvOrDefault("NAV_PAYLOAD_FORMAT", "json"))); err != nil {
		return nil, err
	}

	logger.Debugf("configuration loaded from environment: %s", cfg)
	return cfg, nil
}

// Load reads a YAML file. Only braced ${VAR} references are expanded from the
// environment, any other $ is kept literally.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading config file")
	}

	var cfg Config
	if err := yaml.Unmarshal(expandEnv(data), &cfg); err != nil {
		return nil, errors.Wrap(err, "parsing config")
	}

	logger.Debugf("configuration loaded from %s: %s", path, &cfg)
	return &cfg, nil
}

func expandEnv(data []byte) []byte {
	return envReference.ReplaceAllFunc(data, func(ref []byte) []byte {
		return []byte(os.Getenv(string(ref[2 : len(ref)-1])))
	})
}

// Credentials resolves the signing key, reading SigningKeyFile when the key is not inline.
func (c *Config) Credentials() (signature.Credentials, error) {
	key := c.SigningKey
	if strings.TrimSpace(key) != "" && c.SigningKeyFile != "" {
		return signature.Credentials{}, errors.New("both signing_key and signing_key_file are set")
	}
	if c.SigningKeyFile != "" {
		b, err := os.ReadFile(c.SigningKeyFile)
		if err != nil {
			return signature.Credentials{}, errors.Wrap(err, "read signing key file")
		}
		key = string(b)
	}

	return signature.Credentials{
		User:               c.User,
		Password:           c.Password,
		ExchangeKey:        c.ExchangeKey,
		SigningKey:         key,
		SigningKeyPassword: c.SigningKeyPassword,
	}, nil
}

// NewBuilder creates a signature.Builder for this configuration. Options are
// applied after the ones derived from the configuration.
func (c *Config) NewBuilder(opts ...signature.Option) (*signature.Builder, error) {
	creds, err := c.Credentials()
	if err != nil {
		return nil, err
	}

	var all []signature.Option
	if c.RequestIDPrefix != "" {
		g, err := signature.NewRequestIDGenerator(c.RequestIDPrefix)
		if err != nil {
			return nil, errors.Wrap(err, "request_id_prefix")
		}
		all = append(all, signature.WithRequestIDGenerator(g))
	}
	all = append(all, opts...)

	return signature.NewBuilder(creds, all...)
}

// String never includes secrets.
func (c *Config) String() string {
	keySource := "none"
	switch {
	case c.SigningKeyFile != "":
		keySource = "file " + c.SigningKeyFile
	case c.SigningKey != "":
		keySource = "inline"
	}
	password := "unset"
	if c.Password != "" {
		password = "set"
	}
	return fmt.Sprintf("env=%s user=%s password=%s exchange_key=%s signing_key=%s payload=%s",
		c.Env, c.User, password, util.Mask(c.ExchangeKey), keySource, c.PayloadFormat)
}
