// Package config loads an optional YAML override file for the link's
// wire-mandated constants: modem parameters, cryptographic key
// material, and acquisition search tuning, via os.ReadFile plus
// yaml.Unmarshal into a nested, yaml-tagged struct.
package config

import (
	"encoding/hex"
	"os"

	"gopkg.in/yaml.v3"

	"aethersteg/internal/linkerr"
	"aethersteg/internal/modem"
)

// DefaultKeyHex and DefaultIVHex are the fixed demo AES-256-CTR key
// and IV both ends use absent a config override (key =
// "01234567890123456789012345678901"[:32], iv = "0123456789012345").
const (
	DefaultKeyHex = "3031323334353637383930313233343536373839303132333435363738393031"
	DefaultIVHex  = "30313233343536373839303132333435"
)

// Config mirrors modem.Params plus the crypto material and acquisition
// tuning, otherwise fixed as named constants. Every field is optional
// in the YAML file; zero values fall back to the wire defaults in
// ApplyParams.
type Config struct {
	Modem struct {
		F0              float64 `yaml:"f0"`
		F1              float64 `yaml:"f1"`
		BitDuration     float64 `yaml:"bit_duration"`
		PreambleSeconds float64 `yaml:"preamble_seconds"`
		Rep             int     `yaml:"rep"`
		Amplitude       float64 `yaml:"amplitude"`
		StegoStrength   float64 `yaml:"stego_strength"`
		CoverGain       float64 `yaml:"cover_gain"`
	} `yaml:"modem"`

	Crypto struct {
		KeyHex string `yaml:"key_hex"`
		IVHex  string `yaml:"iv_hex"`
	} `yaml:"crypto"`

	Acquisition struct {
		SearchSeconds     float64 `yaml:"search_seconds"`
		EarlyExitFraction float64 `yaml:"early_exit_fraction"`
	} `yaml:"acquisition"`
}

// LoadConfig reads and parses a YAML config file.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, linkerr.Wrap(linkerr.ConfigError, err, "reading config file %q", filename)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, linkerr.Wrap(linkerr.ConfigError, err, "parsing config file %q", filename)
	}
	return &cfg, nil
}

// KeyIV returns the AES-256-CTR key and IV: the config file's
// crypto.key_hex/iv_hex if set, otherwise the fixed demo values.
func (c *Config) KeyIV() (key, iv []byte, err error) {
	keyHex, ivHex := DefaultKeyHex, DefaultIVHex
	if c != nil {
		if c.Crypto.KeyHex != "" {
			keyHex = c.Crypto.KeyHex
		}
		if c.Crypto.IVHex != "" {
			ivHex = c.Crypto.IVHex
		}
	}

	key, err = hex.DecodeString(keyHex)
	if err != nil {
		return nil, nil, linkerr.Wrap(linkerr.ConfigError, err, "decoding crypto.key_hex")
	}
	iv, err = hex.DecodeString(ivHex)
	if err != nil {
		return nil, nil, linkerr.Wrap(linkerr.ConfigError, err, "decoding crypto.iv_hex")
	}
	return key, iv, nil
}

// ApplyParams overlays any non-zero fields in c onto base, returning
// the merged modem.Params. Fields left unset in the YAML file (zero
// value) keep base's wire default.
func (c *Config) ApplyParams(base modem.Params) modem.Params {
	if c == nil {
		return base
	}
	m := c.Modem
	if m.F0 != 0 {
		base.F0 = m.F0
	}
	if m.F1 != 0 {
		base.F1 = m.F1
	}
	if m.BitDuration != 0 {
		base.BitDuration = m.BitDuration
	}
	if m.PreambleSeconds != 0 {
		base.PreambleSeconds = m.PreambleSeconds
	}
	if m.Rep != 0 {
		base.Rep = m.Rep
	}
	if m.Amplitude != 0 {
		base.Amplitude = m.Amplitude
	}
	if m.StegoStrength != 0 {
		base.StegoStrength = m.StegoStrength
	}
	if m.CoverGain != 0 {
		base.CoverGain = m.CoverGain
	}

	a := c.Acquisition
	if a.SearchSeconds != 0 {
		base.SearchSeconds = a.SearchSeconds
	}
	if a.EarlyExitFraction != 0 {
		base.EarlyExitFraction = a.EarlyExitFraction
	}

	return base
}
