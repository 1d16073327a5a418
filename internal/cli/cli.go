// Package cli wires the cobra command surface onto the dispatcher/feed
// core. Configuration here is flags plus a single environment fallback for
// the audit DSN, matching the teacher's "small number of explicit knobs"
// approach rather than a config file.
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lightsgoout/depthpricer/internal/audit"
	"github.com/lightsgoout/depthpricer/internal/dispatcher"
	"github.com/lightsgoout/depthpricer/internal/feed"
	"github.com/lightsgoout/depthpricer/internal/fixedpoint"
	"github.com/lightsgoout/depthpricer/internal/logging"
	"github.com/lightsgoout/depthpricer/internal/stats"
)

const auditDSNEnv = "DEPTHPRICER_AUDIT_DSN"

type options struct {
	precision  uint
	quiet      bool
	capacity   int
	auditDSN   string
	auditReset bool
	auditBatch int
	bench      bool
}

// Execute builds and runs the root command against args (normally
// os.Args[1:]).
func Execute(args []string) error {
	var opts options

	root := &cobra.Command{
		Use:           "depthpricer target_size",
		Short:         "Stream bid/ask execution pricing for a fixed target size",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, cmdArgs []string) error {
			targetSize, err := strconv.ParseUint(cmdArgs[0], 10, 64)
			if err != nil || targetSize == 0 {
				return fmt.Errorf("target_size must be a positive integer, got %q", cmdArgs[0])
			}
			return run(cmd, opts, targetSize)
		},
	}

	flags := root.Flags()
	flags.UintVar(&opts.precision, "precision", 4, "decimal fractional precision")
	flags.BoolVar(&opts.quiet, "quiet", false, "suppress bench/info logging")
	flags.IntVar(&opts.capacity, "capacity", 0, "order/level capacity hint (default: 4x target_size)")
	flags.StringVar(&opts.auditDSN, "audit-dsn", os.Getenv(auditDSNEnv), "optional Postgres DSN to mirror emitted report lines into")
	flags.BoolVar(&opts.auditReset, "audit-reset", false, "drop and recreate the audit schema on start")
	flags.IntVar(&opts.auditBatch, "audit-batch", 1000, "rows buffered before an audit flush")
	flags.BoolVar(&opts.bench, "bench", false, "record and report per-event dispatch latency")

	root.SetArgs(args)
	return root.Execute()
}

func run(cmd *cobra.Command, opts options, targetSize uint64) error {
	logger, err := logging.New(opts.quiet)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	capacity := opts.capacity
	if capacity <= 0 {
		capacity = int(targetSize) * 4
	}

	var sink *audit.Sink
	if opts.auditDSN != "" {
		sink, err = audit.Open(opts.auditDSN, opts.auditBatch)
		if err != nil {
			logger.Error("audit sink unavailable", zap.Error(err))
			return err
		}
		defer sink.Close() //nolint:errcheck

		if opts.auditReset {
			if err := sink.ResetSchema(); err != nil {
				logger.Error("audit schema reset failed", zap.Error(err))
				return err
			}
		}
	}

	disp := dispatcher.New(fixedpoint.Size(targetSize), capacity, capacity)

	var recorder *stats.Recorder
	if opts.bench {
		recorder = stats.NewRecorder(capacity)
	}

	out := bufio.NewWriterSize(cmd.OutOrStdout(), 64*1024)
	defer out.Flush()

	scanner := bufio.NewScanner(cmd.InOrStdin())
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" {
			continue
		}

		ev, err := feed.Decode(line, lineNo, opts.precision)
		if err != nil {
			logger.Error("input fault", zap.Int("line", lineNo), zap.Error(err))
			return err
		}

		begin := time.Now()
		report, err := disp.Apply(ev)
		if recorder != nil {
			recorder.Observe(time.Since(begin))
		}
		if err != nil {
			logger.Error("input fault", zap.Int("line", lineNo), zap.Error(err))
			return err
		}

		line, ok := feed.FormatReport(ev.Timestamp, report, opts.precision)
		if !ok {
			continue
		}

		if _, err := fmt.Fprintln(out, line); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		if sink != nil {
			rec := audit.Record{Timestamp: ev.Timestamp, Side: report.Side.WireByte(), Withdrawal: report.Withdrawal}
			if !report.Withdrawal {
				rec.Value = report.Value.Format(opts.precision)
			} else {
				rec.Value = "NA"
			}
			if err := sink.Record(rec); err != nil {
				logger.Error("audit write failed", zap.Error(err))
				return err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		logger.Error("input read failed", zap.Error(err))
		return err
	}

	if recorder != nil && !opts.quiet {
		summary := recorder.Summarize()
		logger.Info("bench summary",
			zap.Int("events", summary.Count),
			zap.Float64("mean_ns", summary.Mean),
			zap.Float64("stddev_ns", summary.StdDev),
		)
	}

	return nil
}
