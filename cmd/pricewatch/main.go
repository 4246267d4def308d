package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lfcamargo/pricewatch/config"
	"github.com/lfcamargo/pricewatch/extract"
	"github.com/lfcamargo/pricewatch/fetch"
	"github.com/lfcamargo/pricewatch/models"
	"github.com/lfcamargo/pricewatch/schedule"
	"github.com/lfcamargo/pricewatch/sink"
	"github.com/lfcamargo/pricewatch/storage"
)

func main() {
	defaultCfg := config.DefaultConfig()

	inputBucketDefault, _ := config.EnvString("PRICEWATCH_INPUT_BUCKET")
	inputKeyDefault, _ := config.EnvString("PRICEWATCH_INPUT_KEY")
	outputBucketDefault, _ := config.EnvString("PRICEWATCH_OUTPUT_BUCKET")
	outputPrefixDefault := defaultCfg.OutputPrefix
	if value, ok := config.EnvString("PRICEWATCH_OUTPUT_PREFIX"); ok {
		outputPrefixDefault = value
	}
	proxyDefault, _ := config.EnvString("PRICEWATCH_PROXY")
	workersDefault := defaultCfg.Workers
	if value, ok, err := config.EnvInt("PRICEWATCH_WORKERS"); err != nil {
		fmt.Fprintf(os.Stderr, "invalid PRICEWATCH_WORKERS: %v\n", err)
		os.Exit(1)
	} else if ok {
		workersDefault = value
	}
	headlessDefault := defaultCfg.Headless
	if value, ok, err := config.EnvBool("PRICEWATCH_HEADLESS"); err != nil {
		fmt.Fprintf(os.Stderr, "invalid PRICEWATCH_HEADLESS: %v\n", err)
		os.Exit(1)
	} else if ok {
		headlessDefault = value
	}

	mode := flag.String("mode", defaultCfg.Mode, "Work item interpretation: asin or search")
	baseURL := flag.String("base-url", defaultCfg.BaseURL, "Storefront base URL")
	inputBucket := flag.String("input-bucket", inputBucketDefault, "S3 bucket holding the work item list")
	inputKey := flag.String("input-key", inputKeyDefault, "S3 key of the work item list")
	localInput := flag.String("input-file", "", "Local JSON file holding the work item list")
	outputBucket := flag.String("output-bucket", outputBucketDefault, "S3 bucket for result batches")
	outputPrefix := flag.String("output-prefix", outputPrefixDefault, "Key prefix for result batches")
	localOutput := flag.String("output-dir", "", "Local directory for result batches")
	csvPath := flag.String("csv", "", "Optional CSV export path")
	workers := flag.Int("workers", workersDefault, "Number of concurrent fetch workers")
	engine := flag.String("engine", defaultCfg.Engine, "Fetch engine: http or browser")
	headless := flag.Bool("headless", headlessDefault, "Run the browser engine headless")
	proxy := flag.String("proxy", proxyDefault, "Proxy URL for outbound fetches")
	delayMin := flag.Duration("delay-min", defaultCfg.DelayMin, "Minimum pause before each fetch")
	delayMax := flag.Duration("delay-max", defaultCfg.DelayMax, "Maximum pause before each fetch")
	fetchTimeout := flag.Duration("fetch-timeout", defaultCfg.FetchTimeout, "Per-page fetch timeout")
	maxResults := flag.Int("max-results", defaultCfg.MaxResults, "Detail pages per search term")
	maxAttempts := flag.Int("max-attempts", defaultCfg.MaxAttempts, "Storage attempts before giving up")
	metricsAddr := flag.String("metrics-addr", "", "Prometheus metrics listen address (e.g. :9090)")
	verbose := flag.Bool("v", false, "Enable verbose logging")

	flag.Parse()

	logger, level := newLogger(*verbose)
	slog.SetDefault(logger)
	setLogLoggerLevel(level.Level())

	cfg := defaultCfg
	cfg.Mode = *mode
	cfg.BaseURL = *baseURL
	cfg.InputBucket = *inputBucket
	cfg.InputKey = *inputKey
	cfg.LocalInput = *localInput
	cfg.OutputBucket = *outputBucket
	cfg.OutputPrefix = *outputPrefix
	cfg.LocalOutput = *localOutput
	cfg.CSVPath = *csvPath
	cfg.Workers = *workers
	cfg.Engine = *engine
	cfg.Headless = *headless
	cfg.Proxy = *proxy
	cfg.DelayMin = *delayMin
	cfg.DelayMax = *delayMax
	cfg.FetchTimeout = *fetchTimeout
	cfg.MaxResults = *maxResults
	cfg.MaxAttempts = *maxAttempts
	cfg.MetricsAddr = *metricsAddr
	cfg.Verbose = *verbose

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		slog.Info("shutdown signal received, waiting for in-flight work to finish")
	}()

	metrics := fetch.NewMetrics()
	var metricsServer *http.Server
	if cfg.MetricsAddr != "" {
		metricsServer = &http.Server{
			Addr:    cfg.MetricsAddr,
			Handler: promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{}),
		}
		go func() {
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("metrics server failed", slog.Any("error", err))
			}
		}()
		slog.Info("metrics server enabled", slog.String("addr", cfg.MetricsAddr))
	}

	inputStore, outputStore, err := buildStores(ctx, cfg)
	if err != nil {
		slog.Error("initialising storage", slog.Any("error", err))
		os.Exit(1)
	}

	policy := storage.RetryPolicy{
		MaxAttempts: cfg.MaxAttempts,
		BackoffBase: cfg.BackoffBase,
		MaxBackoff:  cfg.BackoffMax,
		Jitter:      cfg.Jitter,
	}
	inputGateway := storage.NewGateway(inputStore, policy, logger, metrics)
	outputGateway := storage.NewGateway(outputStore, policy, logger, metrics)

	inputRef := cfg.InputKey
	if inputRef == "" {
		inputRef = cfg.LocalInput
	}
	items, err := inputGateway.LoadItems(ctx, inputRef)
	if err != nil {
		slog.Error("loading work items", slog.Any("error", err))
		os.Exit(1)
	}

	slog.Info("starting run",
		slog.String("mode", cfg.Mode),
		slog.String("engine", cfg.Engine),
		slog.Int("items", len(items)),
		slog.Int("workers", cfg.Workers),
	)

	assembler := extract.NewAssembler(extract.AmazonSpecs())
	runner, err := buildRunner(cfg, assembler)
	if err != nil {
		slog.Error("initialising runner", slog.Any("error", err))
		os.Exit(1)
	}

	results := sink.New(metrics)
	pool := schedule.NewPool(schedule.PoolOptions{
		Workers:        cfg.Workers,
		SessionFactory: sessionFactory(cfg),
		PacedOptions: fetch.PacedOptions{
			MinDelay:    cfg.DelayMin,
			MaxDelay:    cfg.DelayMax,
			Timeout:     cfg.FetchTimeout,
			ReadyMarker: cfg.ReadyMarker,
			Metrics:     metrics,
		},
		Runner:  runner,
		Sink:    results,
		Logger:  logger,
		Metrics: metrics,
	})

	summary, err := pool.Run(ctx, items)
	if err != nil {
		slog.Error("run failed", slog.Any("error", err))
		os.Exit(1)
	}

	outputRef := fmt.Sprintf("%samazon_pricing_%s.json",
		cfg.OutputPrefix, time.Now().UTC().Format("20060102T150405Z"))
	if err := outputGateway.SaveBatch(ctx, outputRef, results.Records()); err != nil {
		slog.Error("saving results", slog.Any("error", err))
		os.Exit(1)
	}
	if cfg.CSVPath != "" {
		if err := storage.WriteCSV(cfg.CSVPath, results.Records()); err != nil {
			slog.Error("writing CSV export", slog.Any("error", err))
			os.Exit(1)
		}
	}

	if metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("metrics server shutdown failed", slog.Any("error", err))
		}
		cancel()
	}

	printSummary(summary, outputRef)

	if summary.Systemic() {
		slog.Error("every item failed, inspect connectivity or blocking before rerunning")
		os.Exit(1)
	}
}

// buildStores wires the input and output backends. Output writes fan out
// to both S3 and the local directory when both are configured.
func buildStores(ctx context.Context, cfg *config.Config) (storage.Store, storage.Store, error) {
	var s3Client storage.S3API
	if cfg.HasS3Input() || cfg.HasS3Output() {
		client, err := storage.NewS3Client(ctx)
		if err != nil {
			return nil, nil, err
		}
		s3Client = client
	}

	var input storage.Store
	if cfg.HasS3Input() {
		input = storage.NewS3Store(s3Client, cfg.InputBucket)
	} else {
		input = storage.NewFileStore("")
	}

	var outputs []storage.Store
	if cfg.HasS3Output() {
		outputs = append(outputs, storage.NewS3Store(s3Client, cfg.OutputBucket))
	}
	if cfg.LocalOutput != "" {
		outputs = append(outputs, storage.NewFileStore(cfg.LocalOutput))
	}
	output, err := storage.NewMultiStore(outputs...)
	if err != nil {
		return nil, nil, err
	}
	return input, output, nil
}

func buildRunner(cfg *config.Config, assembler *extract.Assembler) (schedule.Runner, error) {
	switch cfg.Mode {
	case config.ModeSearch:
		return schedule.NewSearchRunner(assembler, cfg.BaseURL, cfg.MaxResults, cfg.DedupeMaxSize)
	default:
		return &schedule.DetailRunner{Assembler: assembler, BaseURL: cfg.BaseURL}, nil
	}
}

func sessionFactory(cfg *config.Config) schedule.SessionFactory {
	return func() (fetch.Session, error) {
		opts := fetch.SessionOptions{
			UserAgent:    cfg.PickUserAgent(),
			Proxy:        cfg.Proxy,
			Timeout:      cfg.FetchTimeout,
			ReadyTimeout: cfg.ReadyTimeout,
			Headless:     cfg.Headless,
		}
		if cfg.Engine == config.EngineBrowser {
			return fetch.NewBrowserSession(opts)
		}
		return fetch.NewHTTPSession(opts)
	}
}

func printSummary(summary models.RunSummary, outputRef string) {
	separator := "--------------------------------------------------"
	fmt.Println("\n" + separator)
	fmt.Println("Run complete")
	fmt.Printf("  Items:         %d\n", summary.Items)
	fmt.Printf("  Records:       %d\n", summary.Records)
	fmt.Printf("  Success:       %d\n", summary.Success)
	fmt.Printf("  Partial:       %d\n", summary.Partial)
	fmt.Printf("  Failed:        %d\n", summary.Total)
	fmt.Printf("  Duration:      %v\n", summary.Duration())
	fmt.Printf("  Output:        %s\n", outputRef)
	fmt.Println(separator)
}

func newLogger(verbose bool) (*slog.Logger, *slog.LevelVar) {
	level := &slog.LevelVar{}
	if verbose {
		level.Set(slog.LevelDebug)
	} else {
		level.Set(slog.LevelInfo)
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if isTerminal(os.Stdout) {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(handler), level
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
