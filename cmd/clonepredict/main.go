// clonepredict predicts the CREATE2 address of forwarder clones and checks
// the prediction against a deployed factory.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/ethereum/go-ethereum/log"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"

	"clone-predictor/config"
)

var (
	configFlag = &cli.PathFlag{
		Name:  "config",
		Usage: "TOML configuration file",
	}
	verbosityFlag = &cli.IntFlag{
		Name:  "verbosity",
		Usage: "Logging verbosity: 0=silent, 1=error, 2=warn, 3=info, 4=debug, 5=detail",
		Value: 3,
	}
	rpcFlag = &cli.StringFlag{
		Name:    "rpc",
		Usage:   "JSON-RPC endpoint of the node (default: " + config.DefaultRPC + ")",
		EnvVars: []string{"CLONEPREDICT_RPC"},
	}
	chainIDFlag = &cli.Uint64Flag{
		Name:  "chainid",
		Usage: "Chain ID used to locate the deployment registry (default: ask the node)",
	}
	registryFlag = &cli.PathFlag{
		Name:  "registry",
		Usage: "Root of the ignition deployment registry (default: " + config.DefaultRegistryRoot + ")",
	}
	factoryFlag = &cli.StringFlag{
		Name:  "factory",
		Usage: "ForwarderFactory address (default: from config or registry)",
	}
	implementationFlag = &cli.StringFlag{
		Name:    "implementation",
		Aliases: []string{"forwarder"},
		Usage:   "Master forwarder to clone (default: from config, registry or the factory)",
	}
	parentFlag = &cli.StringFlag{
		Name:     "parent",
		Usage:    "Parent address the clone flushes funds to",
		Required: true,
	}
	saltFlag = &cli.StringFlag{
		Name:     "salt",
		Usage:    "Clone salt, decimal or 0x-prefixed hex, below 2^256",
		Required: true,
	}
)

func newApp() *cli.App {
	return &cli.App{
		Name:  "clonepredict",
		Usage: "predict forwarder clone addresses deployed through CREATE2",
		Flags: []cli.Flag{
			configFlag,
			verbosityFlag,
			rpcFlag,
			chainIDFlag,
			registryFlag,
		},
		Before: setupLogging,
		Commands: []*cli.Command{
			predictCommand,
			onchainCommand,
			verifyCommand,
			checksumCommand,
			benchCommand,
		},
	}
}

func setupLogging(ctx *cli.Context) error {
	var (
		output   = io.Writer(os.Stderr)
		useColor = (isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())) && os.Getenv("TERM") != "dumb"
	)
	if useColor {
		output = colorable.NewColorableStderr()
	}
	level := log.FromLegacyLevel(ctx.Int(verbosityFlag.Name))
	log.SetDefault(log.NewLogger(log.NewTerminalHandlerWithLevel(output, level, useColor)))
	return nil
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
