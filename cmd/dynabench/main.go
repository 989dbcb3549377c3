/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/suparena/dynabench"
	"github.com/suparena/dynabench/config"
	"github.com/suparena/dynabench/datagen"
	_ "github.com/suparena/dynabench/datastore/ddb"
	"github.com/suparena/dynabench/registry"
	"github.com/suparena/dynabench/runner"
)

var (
	versionFlag = flag.Bool("version", false, "Show version information")
	vFlag       = flag.Bool("v", false, "Show version information (short)")

	configPath = flag.String("config", "", "Path to a YAML config file")
	driverName = flag.String("driver", "dynamodb", "Registered driver to run")
	workers    = flag.Int("workers", 4, "Concurrent workers")
	ops        = flag.Int("ops", 1000, "Total operations to issue")
	bulkSize   = flag.Int("bulk", 0, "Keys per bulk operation (0 disables bulk)")
	readRatio  = flag.Float64("read-ratio", 0.5, "Fraction of operations that are reads")
	keyCount   = flag.Int("keys", 1000, "Size of the key space")
	valueSize  = flag.Int("value-size", datagen.DefaultValueSize, "Generated value size in bytes")
)

func main() {
	flag.Parse()

	if *versionFlag || *vFlag {
		info := dynabench.GetVersionInfo()
		fmt.Printf("DynaBench version %s\n", info.Version)
		fmt.Printf("Git commit: %s\n", info.GitCommit)
		fmt.Printf("Build date: %s\n", info.BuildDate)
		fmt.Printf("Go version: %s\n", info.GoVersion)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Local development keeps connection settings in a .env file; its
	// absence is not an error.
	_ = godotenv.Load()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	cfg.ApplyEnv()
	cfg.Validate()

	driver, err := registry.New(*driverName, cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary, err := runner.Run(ctx, driver, datagen.NewRandomGenerator(*valueSize), runner.Options{
		Workers:   *workers,
		Ops:       *ops,
		BulkSize:  *bulkSize,
		ReadRatio: *readRatio,
		KeyCount:  *keyCount,
	})
	if err != nil {
		return err
	}
	return summary.WriteYAML(os.Stdout)
}
