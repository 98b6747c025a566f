// Package registry reads contract addresses recorded by hardhat-ignition
// deployments, laid out as <root>/chain-<id>/deployed_addresses.json.
package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ethereum/go-ethereum/common"

	"clone-predictor/predictor"
)

// Keys of the forwarder deployment module.
const (
	ForwarderKey        = "Forwarder#Forwarder"
	ForwarderFactoryKey = "Forwarder#ForwarderFactory"

	fileName = "deployed_addresses.json"
)

var (
	ErrRegistryNotFound    = errors.New("no deployment registry for chain, pass the factory explicitly")
	ErrContractNotDeployed = errors.New("contract not present in deployment registry")
)

// Registry holds the addresses deployed on a single chain.
type Registry struct {
	ChainID uint64
	Path    string

	entries map[string]string
}

// Path returns the registry file location for chainID below root.
func Path(root string, chainID uint64) string {
	return filepath.Join(root, fmt.Sprintf("chain-%d", chainID), fileName)
}

// Load reads the registry for chainID below root.
func Load(root string, chainID uint64) (*Registry, error) {
	path := Path(root, chainID)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w (chain %d, %s)", ErrRegistryNotFound, chainID, path)
		}
		return nil, err
	}
	entries := make(map[string]string)
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return &Registry{ChainID: chainID, Path: path, entries: entries}, nil
}

// Lookup returns the validated address stored under key.
func (r *Registry) Lookup(key string) (common.Address, error) {
	raw, ok := r.entries[key]
	if !ok || raw == "" {
		return common.Address{}, fmt.Errorf("%w: %s in %s", ErrContractNotDeployed, key, r.Path)
	}
	return predictor.ParseAddress(key, raw)
}

// Forwarder returns the master forwarder, the clone implementation.
func (r *Registry) Forwarder() (common.Address, error) {
	return r.Lookup(ForwarderKey)
}

// Factory returns the forwarder factory.
func (r *Registry) Factory() (common.Address, error) {
	return r.Lookup(ForwarderFactoryKey)
}

// Len returns the number of recorded contracts.
func (r *Registry) Len() int {
	return len(r.entries)
}
