package cmd

import (
	"context"
	"errors"
	"flag"
	"testing"
)

type testConfig struct {
	DBPath    string `env:"CMD_TEST_DB_PATH" envDefault:"data/boxes.db"`
	PackageID int64  `env:"CMD_TEST_PACKAGE_ID" envDefault:"1"`
}

func TestParseConfigReadsEnvAndFlags(t *testing.T) {
	t.Setenv("BOXSYNC_CMD_TEST_DB_PATH", "env.db")
	t.Setenv("BOXSYNC_CMD_TEST_PACKAGE_ID", "42")

	cfg := testConfig{}
	if err := ParseConfig(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "db path")
	fs.Int64Var(&cfg.PackageID, "package-id", cfg.PackageID, "package id")

	if err := ParseArgs(fs, []string{"-db-path", "flag.db"}); err != nil {
		t.Fatalf("parse args: %v", err)
	}
	if cfg.DBPath != "flag.db" {
		t.Fatalf("expected db path flag.db, got %q", cfg.DBPath)
	}
	if cfg.PackageID != 42 {
		t.Fatalf("expected package id 42, got %d", cfg.PackageID)
	}
}

func TestParseConfigFromArgsKeepsEnvWhenFlagAbsent(t *testing.T) {
	t.Setenv("BOXSYNC_CMD_TEST_DB_PATH", "configarg.db")

	cfg := testConfig{}
	fs := flag.NewFlagSet("configargs", flag.ContinueOnError)
	fs.Int64Var(&cfg.PackageID, "package-id", 0, "package id")

	if err := ParseConfigFromArgs(&cfg, fs, []string{"-package-id", "9"}); err != nil {
		t.Fatalf("parse config from args: %v", err)
	}
	if cfg.DBPath != "configarg.db" {
		t.Fatalf("expected db path configarg.db, got %q", cfg.DBPath)
	}
	if cfg.PackageID != 9 {
		t.Fatalf("expected package id 9, got %d", cfg.PackageID)
	}
}

func TestParseConfigRejectsNilTarget(t *testing.T) {
	if err := ParseConfig[testConfig](nil); err == nil {
		t.Fatal("expected error for nil config")
	}
}

func TestParseArgsRejectsNilParser(t *testing.T) {
	if err := ParseArgs(nil, []string{}); err == nil {
		t.Fatal("expected error for nil flag set")
	}
}

func TestRunWithTelemetryRejectsMissingInputs(t *testing.T) {
	if err := RunWithTelemetry(context.Background(), "", RunOptions{}, func(context.Context) error { return nil }); err == nil {
		t.Fatal("expected error for empty service name")
	}
	if err := RunWithTelemetry(context.Background(), ServiceBoxImporter, RunOptions{}, nil); err == nil {
		t.Fatal("expected error for nil run function")
	}
}

func TestRunWithTelemetryReturnsRunError(t *testing.T) {
	boom := errors.New("boom")
	called := false

	err := RunWithTelemetry(context.Background(), ServiceBoxImporter, RunOptions{}, func(context.Context) error {
		called = true
		return boom
	})

	if !called {
		t.Fatal("expected run function to be called")
	}
	if !errors.Is(err, boom) {
		t.Fatalf("expected run error, got %v", err)
	}
}
