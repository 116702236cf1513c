package otel_test

import (
	"context"
	"testing"

	"github.com/louisbranch/boxsync/internal/platform/otel"
)

func setupAndShutdown(t *testing.T, cfg otel.Config) {
	t.Helper()
	shutdown, err := otel.Setup(context.Background(), "box-importer", cfg)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestSetupNoopWhenEndpointEmpty(t *testing.T) {
	setupAndShutdown(t, otel.Config{})
}

func TestSetupNoopWhenExplicitlyDisabled(t *testing.T) {
	setupAndShutdown(t, otel.Config{Endpoint: "http://localhost:4318", Enabled: "FALSE"})
}

func TestSetupCreatesProviderWhenEndpointSet(t *testing.T) {
	// Non-routable address; nothing is exported because no span is recorded.
	setupAndShutdown(t, otel.Config{Endpoint: "http://192.0.2.1:4318"})
}
