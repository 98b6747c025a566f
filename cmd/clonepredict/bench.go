package main

import (
	"github.com/urfave/cli/v2"

	"clone-predictor/bench"
	"clone-predictor/predictor"
)

const (
	benchImplementation = "0xa84c57e9966df7df79bff42f35c68aae71796f64"
	benchFactory        = "0xfe15afcb5b9831b8af5fd984678250e95de8e312"
	benchParent         = "0x03917b5178B20Bfa1Bce09312AE4EB140b87869e"
)

var (
	iterationsFlag = &cli.IntFlag{
		Name:  "iterations",
		Usage: "Number of predictions to run",
		Value: bench.DefaultIterations,
	}
	workersFlag = &cli.IntFlag{
		Name:  "workers",
		Usage: "Concurrent workers (default: GOMAXPROCS)",
	}
	reportFlag = &cli.DurationFlag{
		Name:  "report",
		Usage: "Progress report interval, 0 disables",
		Value: bench.DefaultReportInterval,
	}

	benchCommand = &cli.Command{
		Name:  "bench",
		Usage: "Measure prediction throughput with random salts",
		Flags: []cli.Flag{
			iterationsFlag,
			workersFlag,
			reportFlag,
			&cli.StringFlag{Name: factoryFlag.Name, Usage: "Factory address", Value: benchFactory},
			&cli.StringFlag{Name: implementationFlag.Name, Usage: "Implementation address", Value: benchImplementation},
			&cli.StringFlag{Name: parentFlag.Name, Usage: "Parent address", Value: benchParent},
		},
		Action: runBench,
	}
)

func runBench(ctx *cli.Context) error {
	req, err := predictor.ParseRequest(
		ctx.String(implementationFlag.Name),
		ctx.String(factoryFlag.Name),
		ctx.String(parentFlag.Name),
		"0",
	)
	if err != nil {
		return err
	}
	res, err := bench.Run(ctx.Context, bench.Config{
		Iterations:     ctx.Int(iterationsFlag.Name),
		Workers:        ctx.Int(workersFlag.Name),
		ReportInterval: ctx.Duration(reportFlag.Name),
		Implementation: req.Implementation,
		Factory:        req.Factory,
		Parent:         req.Parent,
	})
	if err != nil {
		return err
	}
	res.Log()
	return nil
}
