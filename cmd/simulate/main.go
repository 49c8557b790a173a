package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spruked/dals/internal/simulate"
	"github.com/spruked/dals/pkg/logger"
)

// Default configuration constants.
const (
	defaultRate      = 2.0
	defaultBurstProb = 0.1
	defaultBurstSize = 15
	defaultWorkers   = 4
	defaultDuration  = 3 * time.Minute
	defaultTimeout   = 10 * time.Second
)

func main() {
	var (
		baseURL   = flag.String("url", "http://127.0.0.1:8003", "Base URL of the service")
		rate      = flag.Float64("rate", defaultRate, "Heartbeats per second")
		burstProb = flag.Float64("burst", defaultBurstProb, "Burst probability per tick")
		burstSize = flag.Int("burst-size", defaultBurstSize, "Heartbeats per burst")
		errorProb = flag.Float64("errors", 0, "Error injection probability per tick")
		duration  = flag.Duration("duration", defaultDuration, "Total run time; 0 runs until interrupted")
		workers   = flag.Int("workers", defaultWorkers, "Number of concurrent senders")
		timeout   = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		verbose   = flag.Bool("verbose", false, "Enable verbose logging")
		help      = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		simulate.ShowHelp()
		return
	}

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	config := &simulate.Config{
		BaseURL:          *baseURL,
		Rate:             *rate,
		BurstProbability: *burstProb,
		BurstSize:        *burstSize,
		ErrorProbability: *errorProb,
		Duration:         *duration,
		Workers:          *workers,
		Timeout:          *timeout,
		Verbose:          *verbose,
	}

	if err := simulate.Run(ctx, config); err != nil {
		os.Stderr.WriteString("simulation failed: " + err.Error() + "\n")
		return
	}
}
