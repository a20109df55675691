// Package config loads the client configuration a Face is built from: the
// forwarder's transport URI, signing key material for command Interests,
// and a default Interest lifetime.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"
)

// TransportConfig names the forwarder this Face connects to.
type TransportConfig struct {
	// Uri is a "scheme://address" string: unix:///run/nfd.sock,
	// tcp://127.0.0.1:6363, ws://host:port/path, or quic://host:port.
	Uri string `yaml:"uri"`
}

// KeyConfig selects the command signer used for registerPrefix; it does
// not affect how produced Data is signed. If HmacKey is set it is used
// (KeyFile is then ignored); neither set means commands are signed by a
// TestSigner with 32 random bytes, which authenticates nothing but never
// fails.
type KeyConfig struct {
	// HmacKey, if set, is used directly as an HMAC-SHA256 key.
	HmacKey string `yaml:"hmac_key,omitempty"`
	// KeyFile, if set, names a PEM file holding an RSA or ECDSA private key.
	KeyFile string `yaml:"key_file,omitempty"`
}

// Config is the top-level client configuration schema.
type Config struct {
	Transport TransportConfig `yaml:"transport"`
	Key       KeyConfig       `yaml:"key"`
	// InterestLifetimeMs is a fallback Interest lifetime (milliseconds),
	// read through InterestLifetime; 0 means unset. face.NewFromConfig
	// does not apply it to the Face it builds.
	InterestLifetimeMs int `yaml:"interest_lifetime_ms,omitempty"`
}

// InterestLifetime returns the configured fallback, or def if unset.
func (c *Config) InterestLifetime(def time.Duration) time.Duration {
	if c.InterestLifetimeMs <= 0 {
		return def
	}
	return time.Duration(c.InterestLifetimeMs) * time.Millisecond
}

// Default returns the configuration a bare install expects: NFD's
// well-known Unix socket, no signing key configured.
func Default() *Config {
	return &Config{
		Transport: TransportConfig{Uri: "unix:///run/nfd/nfd.sock"},
	}
}

// Load reads and parses a YAML client configuration file.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.Transport.Uri == "" {
		return nil, fmt.Errorf("config %s: transport.uri is required", path)
	}
	return cfg, nil
}
