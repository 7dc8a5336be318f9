// Command fx_backfill fills in the EUR amount of financial records that were
// saved without one, resolving rates the same way the API does.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/adapters/cache"
	"github.com/SscSPs/bookkeeping_app/internal/adapters/ecb"
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
	"github.com/SscSPs/bookkeeping_app/internal/core/services"
	"github.com/SscSPs/bookkeeping_app/internal/platform/config"
	"github.com/SscSPs/bookkeeping_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/bookkeeping_app/internal/utils"
	"github.com/SscSPs/bookkeeping_app/pkg/database"
	"github.com/fatih/color"
	"golang.org/x/term"
)

type cliFlags struct {
	types   string
	force   bool
	dryRun  bool
	batch   int
	pause   time.Duration
	verbose bool
}

func parseFlags(args []string, defaultPause time.Duration) (cliFlags, error) {
	var f cliFlags
	fs := flag.NewFlagSet("fx_backfill", flag.ContinueOnError)
	fs.StringVar(&f.types, "type", "", "comma separated record kinds (invoice,bill,other_income); empty means all")
	fs.BoolVar(&f.force, "force", false, "recompute records that already have an EUR amount")
	fs.BoolVar(&f.dryRun, "dry-run", true, "compute conversions without saving them")
	fs.IntVar(&f.batch, "batch", 100, "records fetched per page")
	fs.DurationVar(&f.pause, "pause", defaultPause, "pause after each conversion that needed the upstream provider")
	fs.BoolVar(&f.verbose, "v", false, "print every record, not only failures")
	if err := fs.Parse(args); err != nil {
		return cliFlags{}, err
	}
	if f.batch < 1 {
		return cliFlags{}, fmt.Errorf("-batch must be at least 1, got %d", f.batch)
	}
	if f.pause < 0 {
		return cliFlags{}, fmt.Errorf("-pause must not be negative, got %s", f.pause)
	}
	return f, nil
}

func (f cliFlags) options() (domain.BackfillOptions, error) {
	opts := domain.BackfillOptions{
		Force:     f.force,
		DryRun:    f.dryRun,
		BatchSize: f.batch,
		Pause:     f.pause,
	}
	for _, raw := range strings.Split(f.types, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		kind := domain.RecordKind(strings.ToLower(raw))
		if !kind.IsValid() {
			return domain.BackfillOptions{}, fmt.Errorf("unknown record type %q", raw)
		}
		opts.Kinds = append(opts.Kinds, kind)
	}
	return opts, nil
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	flags, err := parseFlags(os.Args[1:], cfg.BackfillPause)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	opts, err := flags.options()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, cfg, opts, flags.verbose, logger))
}

func run(ctx context.Context, cfg *config.Config, opts domain.BackfillOptions, verbose bool, logger *slog.Logger) int {
	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, true)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		return 1
	}
	defer database.ClosePgxPool(dbPool)

	rateCache, err := cache.Open(ctx, cfg.RateCacheDriver, cfg.RedisURL)
	if err != nil {
		logger.Error("Failed to initialize rate cache", slog.String("error", err.Error()))
		return 1
	}
	var rateWrap func(portsrepo.ExchangeRateRepositoryFacade) portsrepo.ExchangeRateRepositoryFacade
	if rateCache != nil {
		defer rateCache.Close()
		rateWrap = func(next portsrepo.ExchangeRateRepositoryFacade) portsrepo.ExchangeRateRepositoryFacade {
			return cache.NewCachedExchangeRateRepository(next, rateCache, cfg.RateCacheTTL)
		}
	}

	ecbClient := ecb.NewClient(ecb.Config{
		BaseURL:        cfg.ECBBaseURL,
		TargetCurrency: cfg.ECBTargetCurrency,
		SingleTimeout:  cfg.ECBSingleTimeout,
		RangeTimeout:   cfg.ECBRangeTimeout,
	}, &http.Client{}, logger)

	container := services.NewServiceContainer(cfg, pgsql.NewRepositoryProvider(dbPool, rateWrap), ecbClient)

	started := time.Now()
	report, runErr := container.Backfill.RunBackfill(ctx, opts)

	color.NoColor = !term.IsTerminal(int(os.Stdout.Fd()))
	printReport(os.Stdout, report, cfg.ECBTargetCurrency, verbose, time.Since(started))

	if runErr != nil {
		logger.Error("Backfill aborted", slog.String("error", runErr.Error()))
		return 1
	}
	if report != nil && report.Failed > 0 {
		return 3
	}
	return 0
}

func printReport(w io.Writer, report *domain.BackfillReport, targetCurrency string, verbose bool, took time.Duration) {
	if report == nil {
		return
	}
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	faint := color.New(color.Faint).SprintFunc()

	for _, item := range report.Items {
		if !verbose && item.Outcome != domain.BackfillFailed {
			continue
		}
		outcome := string(item.Outcome)
		switch item.Outcome {
		case domain.BackfillConverted:
			outcome = green(outcome)
		case domain.BackfillSkipped:
			outcome = yellow(outcome)
		case domain.BackfillFailed:
			outcome = red(outcome)
		}
		fmt.Fprintf(w, "%-9s %s %-12s %s %s -> %s\n",
			outcome,
			faint(item.RecordID),
			item.Kind,
			domain.FormatDate(item.RecordDate),
			utils.FormatMinorUnits(item.AmountMinor, item.Currency),
			utils.FormatOptionalMinorUnits(item.AmountEURMinor, targetCurrency),
		)
	}

	mode := "applied"
	if report.DryRun {
		mode = yellow("dry run, nothing saved")
	}
	fmt.Fprintf(w, "\nScanned %d records in %s (%s)\n", report.Scanned, took.Round(time.Millisecond), mode)
	fmt.Fprintf(w, "  %s %d\n", green("converted:"), report.Converted)
	fmt.Fprintf(w, "  %s %d\n", yellow("skipped:  "), report.Skipped)
	fmt.Fprintf(w, "  %s %d\n", red("failed:   "), report.Failed)
}
