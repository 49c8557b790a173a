package simulate

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/spruked/dals/pkg/logger"
)

// Run executes a simulation against a running service: a steady stream of
// module heartbeats with occasional bursts and fault injection, so dashboards
// and metrics can be exercised without any real subsystem attached.
func Run(ctx context.Context, config *Config) error {
	if err := config.validate(); err != nil {
		return err
	}

	stats := &Stats{StartTime: time.Now()}

	logger.Get().Info(ctx, "starting telemetry simulation",
		logger.String("baseURL", config.BaseURL),
		logger.Float64("rate", config.Rate),
		logger.Int("workers", config.Workers),
		logger.String("duration", config.Duration.String()),
	)

	client := newHTTPClient(config.Timeout)
	if err := client.checkHealth(ctx, config.BaseURL); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	if config.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, config.Duration)
		defer cancel()
	}

	beats := make(chan Beat, config.Workers*2)
	var wg sync.WaitGroup
	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for beat := range beats {
				if err := client.postHeartbeat(ctx, config.BaseURL, beat); err != nil {
					atomic.AddInt64(&stats.Failed, 1)
					if config.Verbose {
						logger.Get().Warn(ctx, "heartbeat failed",
							logger.String("module", beat.Module), logger.Error(err))
					}
					continue
				}
				atomic.AddInt64(&stats.Heartbeats, 1)
			}
		}()
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano())) //nolint:gosec // simulation traffic only
	ticker := time.NewTicker(time.Duration(float64(time.Second) / config.Rate))
	defer ticker.Stop()

loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case <-ticker.C:
			if rng.Float64() < config.BurstProbability {
				atomic.AddInt64(&stats.Bursts, 1)
				for i := 0; i < config.BurstSize; i++ {
					select {
					case beats <- nextBeat(rng):
					case <-ctx.Done():
						break loop
					}
				}
				continue
			}
			if rng.Float64() < config.ErrorProbability {
				module, message := nextError(rng)
				if err := client.postError(ctx, config.BaseURL, module, message); err == nil {
					atomic.AddInt64(&stats.ErrorsInjected, 1)
				}
				continue
			}
			select {
			case beats <- nextBeat(rng):
			case <-ctx.Done():
				break loop
			}
		}
	}

	close(beats)
	wg.Wait()

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(stats)
	return nil
}

// displayFinalStats prints the final simulation statistics.
func displayFinalStats(stats *Stats) {
	var beatsPerSecond float64
	if stats.Duration > 0 {
		beatsPerSecond = float64(stats.Heartbeats) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "simulation statistics",
		logger.Int64("heartbeats", stats.Heartbeats),
		logger.Int64("bursts", stats.Bursts),
		logger.Int64("errorsInjected", stats.ErrorsInjected),
		logger.Int64("failed", stats.Failed),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("heartbeatsPerSecond", beatsPerSecond),
	)
}
