// Package bench measures clone-address prediction throughput with random
// salts spread over a pool of workers.
package bench

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"
	"golang.org/x/sync/errgroup"

	"clone-predictor/predictor"
)

const (
	DefaultIterations     = 1_000_000
	DefaultReportInterval = 5 * time.Second
)

var errNoIterations = errors.New("iterations must be positive")

// Config describes one benchmark run.
type Config struct {
	Iterations     int
	Workers        int           // GOMAXPROCS when zero
	ReportInterval time.Duration // no progress logs when zero

	Implementation common.Address
	Factory        common.Address
	Parent         common.Address
}

type Result struct {
	TotalOperations int
	TotalDuration   time.Duration
	AverageTPS      float64
	MemoryUsage     runtime.MemStats
}

// Run predicts cfg.Iterations addresses and reports the achieved rate.
func Run(ctx context.Context, cfg Config) (*Result, error) {
	if cfg.Iterations <= 0 {
		return nil, errNoIterations
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	log.Info("Starting prediction benchmark", "iterations", cfg.Iterations, "workers", workers,
		"implementation", cfg.Implementation, "factory", cfg.Factory, "parent", cfg.Parent)

	var (
		claimed   atomic.Int64
		completed atomic.Int64
		total     = int64(cfg.Iterations)
		startTime = time.Now()
		stop      = make(chan struct{})
		stopped   = make(chan struct{})
	)
	go func() {
		defer close(stopped)
		report(stop, cfg.ReportInterval, startTime, total, &completed)
	}()

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			req := predictor.Request{
				Implementation: cfg.Implementation,
				Factory:        cfg.Factory,
				Parent:         cfg.Parent,
			}
			var word [32]byte
			for i := claimed.Add(1); i <= total; i = claimed.Add(1) {
				if err := gctx.Err(); err != nil {
					return err
				}
				if _, err := rand.Read(word[:]); err != nil {
					return fmt.Errorf("failed to generate salt (iteration %d): %w", i, err)
				}
				req.Salt = predictor.SaltFromBytes32(word)
				predictor.Predict(req)
				completed.Add(1)
			}
			return nil
		})
	}
	err := g.Wait()
	close(stop)
	<-stopped
	if err != nil {
		return nil, err
	}

	totalDuration := time.Since(startTime)
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return &Result{
		TotalOperations: cfg.Iterations,
		TotalDuration:   totalDuration,
		AverageTPS:      float64(cfg.Iterations) / totalDuration.Seconds(),
		MemoryUsage:     memStats,
	}, nil
}

func report(stop <-chan struct{}, interval time.Duration, startTime time.Time, total int64, completed *atomic.Int64) {
	if interval <= 0 {
		<-stop
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime, lastCount := startTime, int64(0)
	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			done := completed.Load()
			elapsed := now.Sub(startTime)

			var recentTPS float64
			if recent := now.Sub(lastTime).Seconds(); recent > 0 {
				recentTPS = float64(done-lastCount) / recent
			}
			log.Info("Benchmark progress", "done", done, "total", total,
				"progress", fmt.Sprintf("%.2f%%", float64(done)/float64(total)*100),
				"avgTPS", fmt.Sprintf("%.0f", float64(done)/elapsed.Seconds()),
				"recentTPS", fmt.Sprintf("%.0f", recentTPS),
				"elapsed", FormatDuration(elapsed))

			lastTime, lastCount = now, done
		}
	}
}

// Log writes the summary of a finished run.
func (r *Result) Log() {
	log.Info("Benchmark finished",
		"operations", r.TotalOperations,
		"elapsed", FormatDuration(r.TotalDuration),
		"tps", fmt.Sprintf("%.2f", r.AverageTPS),
		"perOp", fmt.Sprintf("%.2fµs", float64(r.TotalDuration.Nanoseconds())/float64(r.TotalOperations)/1000),
		"heapAlloc", common.StorageSize(r.MemoryUsage.HeapAlloc),
		"gcCycles", r.MemoryUsage.NumGC)
}

// FormatDuration renders d as seconds below a minute and as 1m2.3s above.
func FormatDuration(d time.Duration) string {
	seconds := d.Seconds()
	if seconds < 60 {
		return fmt.Sprintf("%.1fs", seconds)
	}
	minutes := int(seconds / 60)
	remainingSeconds := seconds - float64(minutes*60)
	return fmt.Sprintf("%dm%.1fs", minutes, remainingSeconds)
}
