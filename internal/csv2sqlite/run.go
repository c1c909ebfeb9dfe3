package csv2sqlite

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/ATechAdventurer/csv2sqlite/internal/convert"
	"github.com/ATechAdventurer/csv2sqlite/internal/csv2sqlite/config"
	"github.com/ATechAdventurer/csv2sqlite/internal/csv2sqlite/progress"
	"github.com/ATechAdventurer/csv2sqlite/internal/csv2sqlite/prompt"
	"github.com/ATechAdventurer/csv2sqlite/internal/csv2sqlite/styled"
	"github.com/ATechAdventurer/csv2sqlite/internal/log"
	"github.com/ATechAdventurer/csv2sqlite/internal/version"
	"github.com/google/uuid"
)

// ErrConversionFailed is returned by Run once the failure was already
// reported to the user.
var ErrConversionFailed = errors.New("conversion failed")

// Run runs the csv2sqlite CLI.
func Run(ctx context.Context) error {
	cfg := config.MustParse(os.Args)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Println(version.Banner())
	fmt.Println()

	logger := log.NewLogger(os.Stderr, cfg.Verbose).With(log.KV{
		"runId": uuid.NewString(),
	})

	if cfg.NeedsPrompt() {
		p := prompt.New()
		res, err := p.Collect(cfg)
		if closeErr := p.Close(); closeErr != nil {
			logger.DebugNs("prompt", "failed to restore terminal", log.KV{"error": closeErr.Error()})
		}
		if err != nil {
			return err
		}

		answered, ok := res.Value()
		if !ok {
			styled.DimmedColor().Println("Operation cancelled")
			return nil
		}
		cfg = answered
		fmt.Println()
	}

	return convertAndReport(ctx, cfg, logger, os.Stdout, os.Stderr)
}

// convertAndReport runs the conversion described by cfg and prints its
// single terminal message to out. Progress is rendered to progressOut.
func convertAndReport(
	ctx context.Context,
	cfg config.Config,
	logger log.Logger,
	out io.Writer,
	progressOut io.Writer,
) error {
	tracker := progress.New(progressOut)
	defer tracker.Finish()

	opts := cfg.Options()
	opts.Logger = logger
	opts.OnRowsCollected = tracker.Inserting
	opts.OnRowInserted = tracker.Inc
	opts.OnRowFailed = tracker.Fail

	logger.DebugNs("run", "starting conversion", log.KV{
		"source":    cfg.Source,
		"sink":      config.RedactSinkPath(cfg.Database),
		"table":     cfg.Table,
		"hasHeader": !cfg.NoHeader,
		"driver":    opts.Driver.Value,
	})

	tracker.Reading(fmt.Sprintf("Reading %s", filepath.Base(cfg.Source)))
	outcome, err := convert.Convert(ctx, cfg.Request(), opts)
	tracker.Finish()

	if err != nil {
		logger.ErrorNs("run", "conversion failed", log.KV{
			"source": cfg.Source,
			"sink":   config.RedactSinkPath(cfg.Database),
			"table":  cfg.Table,
			"error":  err.Error(),
		})
		styled.ErrorColor().Fprintf(out, "✖ %s: %s\n", ErrConversionFailed, err)
		return ErrConversionFailed
	}

	outcome.SinkPath = config.RedactSinkPath(outcome.SinkPath)
	styled.SuccessColor().Fprintf(out, "✔ %s\n", outcome.Summary())

	if outcome.Status == convert.StatusImported {
		fmt.Fprintln(out, styled.ColumnsTable(outcome.Table, outcome.Columns))
	}
	if outcome.RowsFailed > 0 {
		styled.DimmedColor().Fprintln(out, "Failed rows were logged to stderr")
	}

	return nil
}
