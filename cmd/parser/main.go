// Copyright (c) 2024 Michael D Henderson. All rights reserved.

// Package main implements the parser CLI: load the settings vocabulary,
// dispatch the command stream against it, and emit the resulting
// per-group line charts and graphic timelines as a single JSON
// document.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/animstream/parser/internal/cerrs"
	"github.com/animstream/parser/internal/dispatch"
	"github.com/animstream/parser/internal/emit"
	"github.com/animstream/parser/internal/rundb"
	"github.com/animstream/parser/internal/runsummary"
	"github.com/animstream/parser/internal/settings"
)

var logger *slog.Logger

func main() {
	var inputPath, settingsPath, outputPath, auditDBPath string
	var forceSummary bool

	logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	cmdRoot := &cobra.Command{
		Use:           "parser",
		Short:         "command-stream to animation compiler",
		Long:          `Compile a whitespace-delimited command stream and a settings vocabulary into per-group line charts and graphic timelines.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Root().PersistentFlags()
			logLevel, err := flags.GetString("log-level")
			if err != nil {
				return err
			}
			logSource, err := flags.GetBool("log-source")
			if err != nil {
				return err
			}
			debug, err := flags.GetBool("debug")
			if err != nil {
				return err
			}
			quiet, err := flags.GetBool("quiet")
			if err != nil {
				return err
			}
			if debug && quiet {
				return fmt.Errorf("--debug and --quiet are mutually exclusive")
			}
			var lvl slog.Level
			switch {
			case debug:
				lvl = slog.LevelDebug
			case quiet:
				lvl = slog.LevelError
			default:
				switch strings.ToLower(logLevel) {
				case "debug":
					lvl = slog.LevelDebug
				case "info":
					lvl = slog.LevelInfo
				case "warn", "warning":
					lvl = slog.LevelWarn
				case "error":
					lvl = slog.LevelError
				default:
					return fmt.Errorf("log-level: unknown value %q", logLevel)
				}
			}
			handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level:     lvl,
				AddSource: logSource || lvl == slog.LevelDebug,
			})
			logger = slog.New(handler)
			slog.SetDefault(logger)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), inputPath, settingsPath, outputPath, auditDBPath, forceSummary)
		},
	}

	cmdRoot.PersistentFlags().Bool("debug", false, "enable debug logging (same as --log-level=debug)")
	cmdRoot.PersistentFlags().Bool("quiet", false, "only log errors (same as --log-level=error)")
	cmdRoot.PersistentFlags().String("log-level", "error", "logging level (debug|info|warn|error)")
	cmdRoot.PersistentFlags().Bool("log-source", false, "add file and line numbers to log messages")
	cmdRoot.Flags().StringVar(&inputPath, "input", "./input.txt", "command stream to parse")
	cmdRoot.Flags().StringVar(&settingsPath, "settings", "./settings.json", "command vocabulary settings file")
	cmdRoot.Flags().StringVar(&outputPath, "output", "./output.json", "path to write the compiled JSON document")
	cmdRoot.Flags().StringVar(&auditDBPath, "audit-db", "", "optional sqlite database to append a per-run audit record to")
	cmdRoot.Flags().BoolVar(&forceSummary, "summary", false, "always print the post-run summary table, even off a terminal")

	cmdRoot.AddCommand(cmdVersion())

	if err := cmdRoot.Execute(); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, inputPath, settingsPath, outputPath, auditDBPath string, forceSummary bool) error {
	started := time.Now()
	runID := uuid.NewString()

	cfg, err := settings.Load(settingsPath)
	if err != nil {
		logger.Error("parser", "settings", settingsPath, "error", err)
		return err
	}

	input, err := os.ReadFile(inputPath)
	if err != nil {
		logger.Error("parser", "input", inputPath, "error", err)
		return fmt.Errorf("%w: %s: %v", cerrs.ErrReadInput, inputPath, err)
	}

	res, err := dispatch.Run(cfg, string(input))
	if err != nil {
		logger.Error("parser", "error", err)
		if auditDBPath != "" {
			recordRun(ctx, auditDBPath, runID, settingsPath, auditStats{}, started, err)
		}
		return err
	}

	groups := emit.Finalize(res)
	stats := summarize(groups, res.PatchCounts)

	out, err := os.Create(outputPath)
	if err != nil {
		logger.Error("parser", "output", outputPath, "error", err)
		return fmt.Errorf("%w: %s: %v", cerrs.ErrWriteOutput, outputPath, err)
	}
	writeErr := emit.Write(out, groups)
	closeErr := out.Close()
	if writeErr != nil {
		logger.Error("parser", "output", outputPath, "error", writeErr)
		return fmt.Errorf("%w: %s: %v", cerrs.ErrWriteOutput, outputPath, writeErr)
	}
	if closeErr != nil {
		logger.Error("parser", "output", outputPath, "error", closeErr)
		return fmt.Errorf("%w: %s: %v", cerrs.ErrWriteOutput, outputPath, closeErr)
	}

	elapsed := time.Since(started)
	logger.Info("parser", "groups", len(groups), "elapsed", elapsed.String())

	if forceSummary || runsummary.ShouldRender(os.Stdout) {
		runsummary.Render(os.Stdout, stats)
		runsummary.RenderDuration(os.Stdout, len(groups), elapsed.Milliseconds())
	}

	if auditDBPath != "" {
		recordRun(ctx, auditDBPath, runID, settingsPath, auditStatsFrom(groups, stats), started, nil)
	}

	return nil
}

func summarize(groups []emit.FinalizedGroup, patchCounts map[string]int) []runsummary.GroupStats {
	out := make([]runsummary.GroupStats, 0, len(groups))
	for _, g := range groups {
		stats := runsummary.GroupStats{
			GroupID:    g.GroupID,
			PatchCount: patchCounts[g.GroupID],
		}
		if g.Graphic != nil {
			stats.ElementCount = len(g.Graphic.Final.Elems)
			stats.TransitionCount = len(g.Graphic.Transitions)
		}
		if g.Chart != nil {
			stats.ChartLineCount = len(g.Chart)
			for _, l := range g.Chart {
				stats.ChartSampleCount += len(l.Data)
			}
		}
		out = append(out, stats)
	}
	return out
}

// auditStats is the small rollup recordRun needs; it never touches the
// already-finalized graphic/chart creators again.
type auditStats struct {
	GroupCount   int
	PatchCount   int
	ElementCount int
}

func auditStatsFrom(groups []emit.FinalizedGroup, stats []runsummary.GroupStats) auditStats {
	out := auditStats{GroupCount: len(groups)}
	for _, s := range stats {
		out.PatchCount += s.PatchCount
		out.ElementCount += s.ElementCount
	}
	return out
}

// recordRun appends one audit row. run calls it when the command stream
// fails to dispatch and when a run completes; a failure to load the
// settings, read the input or write the output returns before any row
// is written. The settings path is stored as the settings fingerprint.
func recordRun(ctx context.Context, path, runID, settingsPath string, stats auditStats, started time.Time, runErr error) {
	store, err := rundb.Open(path)
	if err != nil {
		logger.Error("parser", "audit-db", path, "error", err)
		return
	}
	defer store.Close()

	errText := ""
	if runErr != nil {
		errText = runErr.Error()
	}

	rec := rundb.Run{
		RunID:               runID,
		StartedAt:           started.UTC().Format(time.RFC3339),
		SettingsFingerprint: settingsPath,
		GroupCount:          stats.GroupCount,
		ElementCount:        stats.ElementCount,
		PatchCount:          stats.PatchCount,
		DurationMS:          time.Since(started).Milliseconds(),
		Err:                 errText,
	}
	if err := store.RecordRun(ctx, rec); err != nil {
		logger.Error("parser", "audit-db", path, "error", err)
	}
}
