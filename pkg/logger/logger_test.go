package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestLoggerInit(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := Sync(); err != nil {
			t.Errorf("failed to sync logger: %v", err)
		}
	}()

	if Get() == nil {
		t.Fatal("logger is nil after initialization")
	}

	if err := Init(WithFormat("json")); err != nil {
		t.Fatalf("failed to initialize json logger: %v", err)
	}
	if Get() == nil {
		t.Fatal("logger is nil after json initialization")
	}

	if err := Init(WithFormat("yaml")); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

// Basic logging test (slog-backed)
func TestLoggerBasic(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(WithOutput(&buf)); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	ctx := context.Background()
	log := Get()
	log.Info(ctx, "test message", String("k", "v"), Int("n", 1))
	log.Warn(ctx, "warn message")

	out := buf.String()
	if !strings.Contains(out, "test message") || !strings.Contains(out, "k=v") {
		t.Fatalf("unexpected text output: %s", out)
	}
}

func TestLoggerJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(WithFormat("json"), WithOutput(&buf)); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	Get().Info(context.Background(), "structured", Int64("count", 5))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%s)", err, buf.String())
	}
	if entry["msg"] != "structured" {
		t.Fatalf("unexpected msg: %v", entry["msg"])
	}
	if entry["count"] != float64(5) {
		t.Fatalf("unexpected count: %v", entry["count"])
	}
}

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(WithOutput(&buf)); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	if err := SetLevelString("error"); err != nil {
		t.Fatalf("failed to set level: %v", err)
	}
	Get().Info(context.Background(), "suppressed")
	if strings.Contains(buf.String(), "suppressed") {
		t.Fatal("info message emitted while level is error")
	}

	Get().Error(context.Background(), "kept")
	if !strings.Contains(buf.String(), "kept") {
		t.Fatal("error message missing")
	}

	if err := SetLevelString("nope"); err == nil {
		t.Fatal("expected error for unknown level")
	}
	if err := SetLevelString("info"); err != nil {
		t.Fatalf("failed to reset level: %v", err)
	}
}

func TestNamedLogger(t *testing.T) {
	var buf bytes.Buffer
	if err := Init(WithOutput(&buf)); err != nil {
		t.Fatalf("failed to initialize logger: %v", err)
	}

	named := Named("registry")
	if named == nil {
		t.Fatal("named logger is nil")
	}
	named.Info(context.Background(), "hello", String("k", "v"))
	if !strings.Contains(buf.String(), "hello") {
		t.Fatalf("named logger output missing: %s", buf.String())
	}
}
