package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/realenhance/structural-validator/internal/config"
	"github.com/realenhance/structural-validator/internal/detection"
	"github.com/realenhance/structural-validator/internal/fetch"
	"github.com/realenhance/structural-validator/internal/server"
	"github.com/realenhance/structural-validator/internal/validate"
)

// Version information - set by ldflags during build
var (
	Version   = "2.0.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("structural-validator %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("structural-validator - line-edge structural validation service")
			fmt.Println()
			fmt.Println("Usage: structural-validator [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  PORT=8000                 Listening port")
			fmt.Println("  LOG_LEVEL=info            Log level (trace..error)")
			fmt.Println("  VALIDATOR_CONFIG=<path>   YAML pipeline tuning file")
			return
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(level).
		With().
		Timestamp().
		Logger()

	log.Info().
		Str("version", Version).
		Str("commit", GitCommit).
		Msg("starting structural validator")

	// The resize bound exists for memory control; log the headroom once so
	// operators can see what the bound is working against.
	if vm, err := mem.VirtualMemory(); err == nil {
		log.Info().
			Uint64("total_mb", vm.Total/1024/1024).
			Uint64("available_mb", vm.Available/1024/1024).
			Msg("host memory")
	}

	fetcher := fetch.New(time.Duration(cfg.Pipeline.FetchTimeoutSeconds)*time.Second, log)
	validator := validate.New(fetcher, validate.Options{
		MaxDimension: cfg.Pipeline.MaxDimension,
		CannyLow:     cfg.Pipeline.CannyLow,
		CannyHigh:    cfg.Pipeline.CannyHigh,
		Hough: detection.HoughParams{
			VoteThreshold: cfg.Pipeline.VoteThreshold,
			MinLineLength: cfg.Pipeline.MinLineLength,
			MaxLineGap:    cfg.Pipeline.MaxLineGap,
		},
	}, log)

	srv := server.New(validator, cfg.Pipeline.DefaultSensitivity, Version, log)
	if err := srv.Run(cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
