package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/harrison/organizer/internal/config"
	"github.com/harrison/organizer/internal/filelock"
	"github.com/harrison/organizer/internal/logger"
	"github.com/harrison/organizer/internal/organizer"
)

func addOrganizeFlags(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "Path to config file (default: .organizer/config.yaml)")
	cmd.Flags().Int("workers", 0, "Maximum number of concurrent copies (0 = 2x CPU count)")
	cmd.Flags().String("log-level", "", "Log level: trace, debug, info, warn, error")
	cmd.Flags().String("log-dir", "", "Directory for run log files (default: console only)")
	cmd.Flags().Int("seed-count", organizer.DefaultSeedCount, "Number of placeholder files to create in the source")
	cmd.Flags().Bool("keep-source", false, "Organize the existing source contents without cleaning or seeding it")
	cmd.Flags().String("report", "", "Write a YAML run report to this path")
}

// loadConfig resolves the configuration file and merges changed flags over it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	var cfg *config.Config
	var err error

	if configPath != "" {
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
	} else {
		cfg, err = config.LoadConfigFromDir(".")
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	workers, _ := cmd.Flags().GetInt("workers")
	logLevel, _ := cmd.Flags().GetString("log-level")
	logDir, _ := cmd.Flags().GetString("log-dir")
	seedCount, _ := cmd.Flags().GetInt("seed-count")
	keepSource, _ := cmd.Flags().GetBool("keep-source")
	reportPath, _ := cmd.Flags().GetString("report")

	// Only flags the user set override the file.
	var workersPtr, seedCountPtr *int
	var logLevelPtr, logDirPtr, reportPathPtr *string
	var keepSourcePtr *bool
	if cmd.Flags().Changed("workers") {
		workersPtr = &workers
	}
	if cmd.Flags().Changed("log-level") {
		logLevelPtr = &logLevel
	}
	if cmd.Flags().Changed("log-dir") {
		logDirPtr = &logDir
	}
	if cmd.Flags().Changed("seed-count") {
		seedCountPtr = &seedCount
	}
	if cmd.Flags().Changed("keep-source") {
		keepSourcePtr = &keepSource
	}
	if cmd.Flags().Changed("report") {
		reportPathPtr = &reportPath
	}

	cfg.MergeWithFlags(workersPtr, logLevelPtr, logDirPtr, seedCountPtr, keepSourcePtr, reportPathPtr)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// runOrganize implements the organize pass behind the root command
func runOrganize(cmd *cobra.Command, args []string) error {
	source, output := args[0], args[1]

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	consoleLog := logger.NewConsoleLogger(out, cfg.LogLevel)

	var fileLog *logger.FileLogger
	if cfg.LogDir != "" {
		fileLog, err = logger.NewFileLoggerWithLevel(cfg.LogDir, cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("failed to create file logger: %w", err)
		}
		defer fileLog.Close()
	}

	var log *logger.MultiLogger
	if fileLog != nil {
		log = logger.NewMultiLogger(consoleLog, fileLog)
	} else {
		log = logger.NewMultiLogger(consoleLog)
	}

	lock, err := filelock.AcquireDirLock(output)
	if err != nil {
		return fmt.Errorf("cannot organize into %s: %w", output, err)
	}
	defer lock.Unlock()

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	pipeline := organizer.NewPipeline(cfg.ExtensionSet(), log)
	if cfg.Workers > 0 {
		pipeline.Workers = cfg.Workers
	}
	pipeline.SeedCount = cfg.SeedCount
	pipeline.KeepSource = cfg.KeepSource
	attachProgress(pipeline, log, colorEnabled(out))

	log.LogDebug(fmt.Sprintf("Organizing %s into %s with %d workers", source, output, pipeline.Workers))
	report := pipeline.Run(ctx, source, output)

	if cfg.ReportPath != "" {
		if err := organizer.WriteReport(cfg.ReportPath, report); err != nil {
			log.LogError(fmt.Sprintf("Failed to write report: %v", err))
		} else {
			log.LogInfo(fmt.Sprintf("Report written to %s", cfg.ReportPath))
		}
	}

	printSummary(out, report, colorEnabled(out))
	if fileLog != nil {
		fmt.Fprintf(out, "Logs written to: %s\n", fileLog.RunFile())
	}

	return nil
}

// attachProgress feeds settled copies into a progress bar and logs it at
// every 10% step.
func attachProgress(p *organizer.Pipeline, log logger.Logger, enableColor bool) {
	bar := logger.NewProgressBar(0, 20, enableColor)
	bar.SetPrefix("Copy ")
	var mu sync.Mutex
	lastStep := 0

	p.OnScanned = func(total int) {
		bar.SetTotal(total)
	}
	p.OnOutcome = func(organizer.CopyOutcome) {
		perc := bar.Increment()
		mu.Lock()
		defer mu.Unlock()
		if step := perc / 10; step > lastStep {
			lastStep = step
			log.LogInfo(fmt.Sprintf("Progress %s", bar.Render()))
		}
	}
}

// colorEnabled reports whether w is a color-capable terminal.
func colorEnabled(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isTerminal(f)
}
