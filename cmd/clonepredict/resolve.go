package main

import (
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"

	"clone-predictor/config"
	"clone-predictor/onchain"
	"clone-predictor/predictor"
	"clone-predictor/registry"
)

// resolver fills in contract addresses the user left out. Sources are tried
// in order: flag, config file, deployment registry, and for the
// implementation only, the factory itself.
type resolver struct {
	ctx *cli.Context
	cfg *config.Config

	client *ethclient.Client
	reg    *registry.Registry
}

func newResolver(ctx *cli.Context) (*resolver, error) {
	cfg := config.Default()
	if path := ctx.Path(configFlag.Name); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}
	if ctx.IsSet(rpcFlag.Name) {
		cfg.Network.RPC = ctx.String(rpcFlag.Name)
	}
	if ctx.IsSet(chainIDFlag.Name) {
		cfg.Network.ChainID = ctx.Uint64(chainIDFlag.Name)
	}
	if ctx.IsSet(registryFlag.Name) {
		cfg.Registry.Root = ctx.Path(registryFlag.Name)
	}
	return &resolver{ctx: ctx, cfg: cfg}, nil
}

func (r *resolver) Close() {
	if r.client != nil {
		r.client.Close()
	}
}

// dial connects to the configured node once.
func (r *resolver) dial() (*ethclient.Client, error) {
	if r.client != nil {
		return r.client, nil
	}
	client, err := onchain.Dial(r.ctx.Context, r.cfg.Network.RPC)
	if err != nil {
		return nil, err
	}
	log.Debug("Connected to node", "rpc", r.cfg.Network.RPC)
	r.client = client
	return client, nil
}

func (r *resolver) chainID() (uint64, error) {
	if r.cfg.Network.ChainID != 0 {
		return r.cfg.Network.ChainID, nil
	}
	client, err := r.dial()
	if err != nil {
		return 0, err
	}
	id, err := client.ChainID(r.ctx.Context)
	if err != nil {
		return 0, err
	}
	r.cfg.Network.ChainID = id.Uint64()
	return r.cfg.Network.ChainID, nil
}

func (r *resolver) registry() (*registry.Registry, error) {
	if r.reg != nil {
		return r.reg, nil
	}
	id, err := r.chainID()
	if err != nil {
		return nil, err
	}
	reg, err := registry.Load(r.cfg.Registry.Root, id)
	if err != nil {
		return nil, err
	}
	log.Debug("Loaded deployment registry", "path", reg.Path, "contracts", reg.Len())
	r.reg = reg
	return reg, nil
}

func (r *resolver) factory() (common.Address, error) {
	if r.ctx.IsSet(factoryFlag.Name) {
		return predictor.ParseAddress(predictor.FieldFactory, r.ctx.String(factoryFlag.Name))
	}
	if r.cfg.Contracts.Factory != "" {
		return predictor.ParseAddress(predictor.FieldFactory, r.cfg.Contracts.Factory)
	}
	reg, err := r.registry()
	if err != nil {
		return common.Address{}, err
	}
	return reg.Factory()
}

func (r *resolver) implementation(factory common.Address) (common.Address, error) {
	if r.ctx.IsSet(implementationFlag.Name) {
		return predictor.ParseAddress(predictor.FieldImplementation, r.ctx.String(implementationFlag.Name))
	}
	if r.cfg.Contracts.Implementation != "" {
		return predictor.ParseAddress(predictor.FieldImplementation, r.cfg.Contracts.Implementation)
	}
	if r.cfg.Network.ChainID != 0 {
		reg, err := r.registry()
		switch {
		case err == nil:
			impl, err := reg.Forwarder()
			if err == nil {
				return impl, nil
			}
			if !errors.Is(err, registry.ErrContractNotDeployed) {
				return common.Address{}, err
			}
		case !errors.Is(err, registry.ErrRegistryNotFound):
			return common.Address{}, err
		}
	}
	f, err := r.factoryCaller(factory)
	if err != nil {
		return common.Address{}, err
	}
	return f.ImplementationAddress(r.ctx.Context)
}

func (r *resolver) factoryCaller(factory common.Address) (*onchain.Factory, error) {
	client, err := r.dial()
	if err != nil {
		return nil, err
	}
	return onchain.NewFactory(client, factory)
}
