package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/sibexico/memsim/mmu"
)

func main() {
	var (
		configPath = flag.String("config", "", "JSON config file (optional)")
		tracePath  = flag.String("trace", "", "memory reference trace file")
		frames     = flag.Int("frames", 0, "number of physical frames")
		policy     = flag.String("policy", "", "replacement policy: clock, lru or rand")
		debug      = flag.Bool("debug", false, "emit per-access trace lines")
		useMmap    = flag.Bool("mmap", false, "memory-map the trace file")
		seed       = flag.Int64("seed", 0, "RNG seed for the rand policy (0 = wall clock)")
	)
	flag.Parse()

	config, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "memsim: %v\n", err)
		os.Exit(1)
	}

	// Explicit flags override config file and environment
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "trace":
			config.TraceFile = *tracePath
		case "frames":
			config.Frames = *frames
		case "policy":
			config.Policy = *policy
		case "debug":
			config.Debug = *debug
		case "mmap":
			config.UseMmap = *useMmap
		case "seed":
			config.Seed = *seed
		}
	})

	if config.TraceFile == "" {
		fmt.Fprintln(os.Stderr, "memsim: no trace file (use -trace or MEMSIM_TRACE_FILE)")
		flag.Usage()
		os.Exit(2)
	}

	if err := config.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "memsim: invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(config.LogLevel),
	}))

	engine, err := buildEngine(config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "memsim: %v\n", err)
		os.Exit(1)
	}

	if config.Debug {
		engine.SetDebug()
	}

	logger.Debug("starting simulation",
		slog.String("policy", config.Policy),
		slog.Int("frames", config.Frames),
		slog.String("trace", config.TraceFile),
		slog.Bool("mmap", config.UseMmap),
	)

	start := time.Now()
	events, err := runTrace(engine, config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "memsim: %v\n", err)
		os.Exit(1)
	}
	elapsed := time.Since(start)

	faultRate := 0.0
	if events > 0 {
		faultRate = float64(engine.GetTotalPageFaults()) / float64(events)
	}

	fmt.Printf("total memory frames:  %d\n", config.Frames)
	fmt.Printf("events in trace:      %d\n", events)
	fmt.Printf("total disk reads:     %d\n", engine.GetTotalDiskReads())
	fmt.Printf("total disk writes:    %d\n", engine.GetTotalDiskWrites())
	fmt.Printf("page fault rate:      %.4f\n", faultRate)

	if config.EnableMetrics {
		engine.GetStats().LogStats(logger)
		logger.Info("simulation complete",
			slog.Uint64("events", events),
			slog.Duration("elapsed", elapsed),
		)
	}
}

// loadConfig reads the config file when given, otherwise the environment
func loadConfig(path string) (*mmu.Config, error) {
	if path != "" {
		return mmu.LoadConfigFromFile(path)
	}
	return mmu.LoadConfigFromEnv(), nil
}

// buildEngine constructs the engine selected by the configuration
// A non-zero seed pins the rand policy's victim sequence
func buildEngine(config *mmu.Config) (mmu.MMU, error) {
	if config.Policy == "rand" && config.Seed != 0 {
		return mmu.NewRandMMUWithSeed(config.Frames, config.Seed)
	}
	return mmu.NewMMU(config.Policy, config.Frames)
}

// accessSource is implemented by both trace readers
type accessSource interface {
	Next() (mmu.Access, error)
	Close() error
}

// runTrace feeds every access in the trace to the engine
func runTrace(engine mmu.MMU, config *mmu.Config) (uint64, error) {
	var source accessSource
	var err error
	if config.UseMmap {
		source, err = mmu.OpenTraceMmap(config.TraceFile, config.PageSize)
	} else {
		source, err = mmu.OpenTrace(config.TraceFile, config.PageSize)
	}
	if err != nil {
		return 0, err
	}
	defer source.Close()

	var events uint64
	for {
		access, err := source.Next()
		if err == io.EOF {
			return events, nil
		}
		if err != nil {
			return events, err
		}
		if access.Write {
			engine.WriteMemory(access.Page)
		} else {
			engine.ReadMemory(access.Page)
		}
		events++
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
