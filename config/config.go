// Package config loads the predictor's TOML configuration file.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"clone-predictor/predictor"
)

const (
	DefaultRPC          = "http://127.0.0.1:8545"
	DefaultRegistryRoot = "ignition/deployments"
)

// Config is the on-disk configuration:
//
//	[Network]
//	RPC = "http://127.0.0.1:8545"
//	ChainID = 31337
//
//	[Registry]
//	Root = "ignition/deployments"
//
//	[Contracts]
//	Factory = "0x..."
//	Implementation = "0x..."
type Config struct {
	Network   NetworkConfig
	Registry  RegistryConfig
	Contracts ContractsConfig
}

type NetworkConfig struct {
	RPC     string
	ChainID uint64 // 0 means ask the node
}

type RegistryConfig struct {
	Root string
}

// ContractsConfig pins addresses that would otherwise come from the registry.
type ContractsConfig struct {
	Factory        string
	Implementation string
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Network:  NetworkConfig{RPC: DefaultRPC},
		Registry: RegistryConfig{Root: DefaultRegistryRoot},
	}
}

// Load reads path over the defaults. Unknown keys are rejected so typos do
// not silently fall back to a default.
func Load(path string) (*Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file %s not found", path)
		}
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: unknown field %q", path, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that pinned contract addresses are well formed.
func (c *Config) Validate() error {
	if c.Contracts.Factory != "" {
		if _, err := predictor.ParseAddress(predictor.FieldFactory, c.Contracts.Factory); err != nil {
			return err
		}
	}
	if c.Contracts.Implementation != "" {
		if _, err := predictor.ParseAddress(predictor.FieldImplementation, c.Contracts.Implementation); err != nil {
			return err
		}
	}
	return nil
}
