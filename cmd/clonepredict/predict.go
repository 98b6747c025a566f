package main

import (
	"fmt"

	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"

	"clone-predictor/onchain"
	"clone-predictor/predictor"
)

var (
	predictCommand = &cli.Command{
		Name:   "predict",
		Usage:  "Predict a clone address offline",
		Flags:  []cli.Flag{parentFlag, saltFlag, factoryFlag, implementationFlag},
		Action: predictOffline,
	}
	onchainCommand = &cli.Command{
		Name:   "onchain",
		Usage:  "Ask the deployed factory for a clone address",
		Flags:  []cli.Flag{parentFlag, saltFlag, factoryFlag},
		Action: predictOnchain,
	}
	verifyCommand = &cli.Command{
		Name:   "verify",
		Usage:  "Check the offline prediction against the deployed factory",
		Flags:  []cli.Flag{parentFlag, saltFlag, factoryFlag},
		Action: verify,
	}
	checksumCommand = &cli.Command{
		Name:      "checksum",
		Usage:     "Print addresses in EIP-55 checksum form",
		ArgsUsage: "<address> [<address>...]",
		Action:    checksum,
	}
)

// parentAndSalt validates the per-clone inputs shared by all commands.
func parentAndSalt(ctx *cli.Context) (predictor.Request, error) {
	var (
		req predictor.Request
		err error
	)
	if req.Parent, err = predictor.ParseAddress(predictor.FieldParent, ctx.String(parentFlag.Name)); err != nil {
		return req, err
	}
	if req.Salt, err = predictor.ParseSalt(ctx.String(saltFlag.Name)); err != nil {
		return req, err
	}
	return req, nil
}

func predictOffline(ctx *cli.Context) error {
	req, err := parentAndSalt(ctx)
	if err != nil {
		return err
	}
	r, err := newResolver(ctx)
	if err != nil {
		return err
	}
	defer r.Close()

	if req.Factory, err = r.factory(); err != nil {
		return err
	}
	if req.Implementation, err = r.implementation(req.Factory); err != nil {
		return err
	}
	log.Info("Using factory", "factory", req.Factory, "implementation", req.Implementation)

	p := predictor.Predict(req)
	log.Info("Predicted clone address offline", "parent", req.Parent, "salt", req.Salt,
		"address", p.Hex(), "finalSalt", p.FinalSalt, "bytecodeHash", p.BytecodeHash)
	fmt.Fprintln(ctx.App.Writer, p.Hex())
	return nil
}

func predictOnchain(ctx *cli.Context) error {
	req, err := parentAndSalt(ctx)
	if err != nil {
		return err
	}
	r, err := newResolver(ctx)
	if err != nil {
		return err
	}
	defer r.Close()

	factory, err := r.factory()
	if err != nil {
		return err
	}
	f, err := r.factoryCaller(factory)
	if err != nil {
		return err
	}
	addr, err := f.PredictCloneAddress(ctx.Context, req.Parent, req.Salt)
	if err != nil {
		return err
	}
	log.Info("Predicted clone address onchain", "factory", factory, "parent", req.Parent, "salt", req.Salt, "address", addr)
	fmt.Fprintln(ctx.App.Writer, predictor.ChecksumAddress(addr))
	return nil
}

func verify(ctx *cli.Context) error {
	req, err := parentAndSalt(ctx)
	if err != nil {
		return err
	}
	r, err := newResolver(ctx)
	if err != nil {
		return err
	}
	defer r.Close()

	factory, err := r.factory()
	if err != nil {
		return err
	}
	f, err := r.factoryCaller(factory)
	if err != nil {
		return err
	}
	res, err := onchain.CrossCheck(ctx.Context, f, req.Parent, req.Salt)
	if err != nil {
		return err
	}
	log.Info("Offline prediction matches factory", "factory", factory, "implementation", res.Request.Implementation,
		"parent", req.Parent, "salt", req.Salt, "address", res.Offline.Hex())
	fmt.Fprintln(ctx.App.Writer, res.Offline.Hex())
	return nil
}

func checksum(ctx *cli.Context) error {
	if ctx.NArg() == 0 {
		return fmt.Errorf("no address given")
	}
	for i, arg := range ctx.Args().Slice() {
		out, err := predictor.FormatChecksum(fmt.Sprintf("address #%d", i+1), arg)
		if err != nil {
			return err
		}
		fmt.Fprintln(ctx.App.Writer, out)
	}
	return nil
}
