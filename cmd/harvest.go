package main

import (
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/heartland-harvester/internal/collector"
	"github.com/sells-group/heartland-harvester/internal/config"
	"github.com/sells-group/heartland-harvester/internal/fetcher"
	"github.com/sells-group/heartland-harvester/internal/harvest"
	"github.com/sells-group/heartland-harvester/internal/pdftext"
	"github.com/sells-group/heartland-harvester/internal/resilience"
	"github.com/sells-group/heartland-harvester/pkg/censys"
	"github.com/sells-group/heartland-harvester/pkg/serpapi"
)

var harvestCmd = &cobra.Command{
	Use:   "harvest",
	Short: "Run the enabled collectors and write deduplicated evidence",
	Long:  "Queries the enabled sources for Heartland Payroll mentions, deduplicates the evidence by (normalized company, source), and writes it to a CSV or XLSX file. Individual collector failures are logged, never fatal.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		start := time.Now()
		log := zap.L().With(zap.String("command", "harvest"))

		// Flags override config when set explicitly.
		if cmd.Flags().Changed("limit") {
			cfg.Harvest.Limit, _ = cmd.Flags().GetInt("limit")
		}
		if cmd.Flags().Changed("threads") {
			cfg.Harvest.Threads, _ = cmd.Flags().GetInt("threads")
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		format, _ := cmd.Flags().GetString("format")
		if format != harvest.FormatCSV && format != harvest.FormatXLSX {
			return eris.Errorf("unsupported --format %q (want csv or xlsx)", format)
		}

		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			out = defaultOutPath(format, start.UTC())
		}

		dryRun, _ := cmd.Flags().GetBool("dry-run")

		runner := harvest.NewRunner(harvest.Options{
			Limit:   cfg.Harvest.Limit,
			Threads: cfg.Harvest.Threads,
			DryRun:  dryRun,
		}, buildCollectors(cmd, cfg)...)

		items := runner.Run(ctx)

		if err := harvest.Export(out, format, items); err != nil {
			return eris.Wrap(err, "write output")
		}

		log.Info("harvest complete",
			zap.Int("records", len(items)),
			zap.String("out", out),
			zap.Duration("runtime", time.Since(start)),
		)

		return nil
	},
}

// buildCollectors assembles the selected collectors in invocation order.
// Collectors whose credentials are absent are constructed unavailable and
// skipped by the runner.
func buildCollectors(cmd *cobra.Command, cfg *config.Config) []collector.Collector {
	retry := resilience.DefaultRetryConfig()
	if cfg.Harvest.MaxAttempts > 0 {
		retry.MaxAttempts = cfg.Harvest.MaxAttempts
	}
	retry.OnRetry = resilience.RetryLogger("harvest", "fetch")

	httpFetcher := fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
		UserAgent:    cfg.Harvest.UserAgent,
		Timeout:      time.Duration(cfg.Harvest.TimeoutSecs) * time.Second,
		Retry:        retry,
		RateLimiters: fetcher.DefaultRateLimiters(),
	})

	var serpClient serpapi.Client
	if cfg.Serp.Key != "" {
		serpClient = serpapi.NewClient(cfg.Serp.Key, serpapi.WithDoer(httpFetcher))
	}

	var censysClient censys.Client
	if cfg.Censys.APIID != "" && cfg.Censys.Secret != "" {
		censysClient = censys.NewClient(cfg.Censys.APIID, cfg.Censys.Secret, censys.WithDoer(httpFetcher))
	}

	jobAds, _ := cmd.Flags().GetBool("job-ads")
	pdfs, _ := cmd.Flags().GetBool("pdfs")
	subdomains, _ := cmd.Flags().GetBool("subdomains")
	press, _ := cmd.Flags().GetBool("press")
	all, _ := cmd.Flags().GetBool("all")
	if !jobAds && !pdfs && !subdomains && !press && !all {
		all = true
	}

	keyword := strings.ToLower(cfg.Harvest.Keyword)

	var collectors []collector.Collector
	if jobAds || all {
		collectors = append(collectors, collector.NewJobAds(serpClient, cfg.Harvest.JobAdsQuery))
	}
	if pdfs || all {
		collectors = append(collectors, collector.NewPDFs(
			serpClient, httpFetcher, pdftext.NewExtractor(),
			cfg.Harvest.PDFQuery, keyword, cfg.Harvest.SnippetContext,
		))
	}
	if press || all {
		collectors = append(collectors, collector.NewPress(httpFetcher, cfg.Harvest.PressFeedURL, cfg.Harvest.PressQuery))
	}
	if subdomains || all {
		collectors = append(collectors, collector.NewSubdomains(censysClient, cfg.Harvest.CensysQuery))
	}
	return collectors
}

// defaultOutPath names the output file by run date when --out is not given.
func defaultOutPath(format string, now time.Time) string {
	return fmt.Sprintf("heartland_leads_%s.%s", now.Format("20060102"), format)
}

func init() {
	harvestCmd.Flags().Int("limit", 50, "maximum records per collector")
	harvestCmd.Flags().Int("threads", 5, "concurrent collector limit (hint only)")
	harvestCmd.Flags().String("out", "", "output file path (default heartland_leads_<YYYYMMDD>.<format>)")
	harvestCmd.Flags().String("format", "csv", "output format: csv or xlsx")
	harvestCmd.Flags().Bool("dry-run", false, "skip all network activity, still write the header row")
	harvestCmd.Flags().Bool("job-ads", false, "search job ads")
	harvestCmd.Flags().Bool("pdfs", false, "scan PDFs")
	harvestCmd.Flags().Bool("subdomains", false, "discover subdomains")
	harvestCmd.Flags().Bool("press", false, "parse press releases")
	harvestCmd.Flags().Bool("all", false, "run all collectors (default when none selected)")
	rootCmd.AddCommand(harvestCmd)
}
