package simulate

import "os"

// ShowHelp prints usage information for the simulation tool.
func ShowHelp() {
	os.Stdout.WriteString(`DALS Telemetry Simulator
========================

Generates realistic module activity against a running DALS instance:
steady heartbeats for caleon, certsig and prometheus, occasional
bursts, and optional fault injection.

Usage:
  go run cmd/simulate/main.go [options]

Options:
  -url string
        Base URL of the service (default "http://127.0.0.1:8003")
  -rate float
        Heartbeats per second (default 2)
  -burst float
        Burst probability per tick (default 0.1)
  -burst-size int
        Heartbeats per burst (default 15)
  -errors float
        Error injection probability per tick (default 0)
  -duration duration
        Total run time; 0 runs until interrupted (default 3m)
  -workers int
        Number of concurrent senders (default 4)
  -timeout duration
        HTTP request timeout (default 10s)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Basic simulation against a local instance
  go run cmd/simulate/main.go

  # Stress run with frequent bursts
  go run cmd/simulate/main.go -rate 20 -burst 0.3 -burst-size 30 -duration 2m

  # Include fault injection to exercise the degraded health rollup
  go run cmd/simulate/main.go -errors 0.02
`)
}
