package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/stoik/url-guard/internal/adapters/classifier"
	"github.com/stoik/url-guard/internal/adapters/signals"
	"github.com/stoik/url-guard/internal/adapters/storage"
	"github.com/stoik/url-guard/internal/application"
	"github.com/stoik/url-guard/internal/config"
	"github.com/stoik/url-guard/internal/domain"
	"github.com/stoik/url-guard/internal/domain/features"
	"github.com/stoik/url-guard/internal/domain/trust"
	"github.com/stoik/url-guard/internal/ports"
)

func main() {
	whoisFlag := flag.Bool("whois", false, "look up domain age via WHOIS (slower)")
	tlsFlag := flag.Bool("tls", false, "inspect the TLS certificate of https URLs (slower)")
	jsonFlag := flag.Bool("json", false, "print results as JSON")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: url-scan [-whois] [-tls] [-json] <url>...\n")
		fmt.Fprintf(os.Stderr, "       URLs are read from stdin, one per line, when none are given.\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}

	logger, err := cfg.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}

	urls := flag.Args()
	if len(urls) == 0 {
		urls = readURLs(os.Stdin)
	}
	if len(urls) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Trust tables
	tables := trust.DefaultTables()
	if cfg.TrustTablesFile != "" {
		tables, err = trust.LoadTables(cfg.TrustTablesFile)
		if err != nil {
			logger.WithError(err).Fatal("Failed to load trust tables")
		}
		logger.WithField("file", cfg.TrustTablesFile).Info("Trust tables loaded")
	}
	resolver := trust.NewResolver(tables)

	// Network-backed signal adapters
	var age ports.DomainAgeLookup = signals.NoopAgeLookup{}
	var certs ports.CertificateChecker = signals.NoopCertificateChecker{}
	opts := features.Options{
		EnableDomainAge: cfg.EnableDomainAge || *whoisFlag,
		EnableTLSCheck:  cfg.EnableTLSCheck || *tlsFlag,
	}
	if opts.EnableDomainAge {
		age = signals.NewWhoisAgeLookup(signals.WhoisConfig{
			Timeout:       cfg.WhoisTimeout,
			QueriesPerSec: cfg.WhoisRatePerSec,
		}, logger)
	}
	if opts.EnableTLSCheck {
		certs = signals.NewTLSChecker(cfg.TLSTimeout, logger)
	}
	extractor := features.NewExtractor(resolver, age, certs, logger)

	// Classifier; scans fail with ErrClassifierUnavailable without one
	var scaler ports.Scaler
	var model ports.Classifier
	if cfg.ModelFile != "" {
		m, err := classifier.LoadLogisticModel(cfg.ModelFile)
		if err != nil {
			logger.WithError(err).Fatal("Failed to load model")
		}
		scaler, model = m, m
		logger.WithField("file", cfg.ModelFile).Info("Model loaded")
	} else {
		logger.Warn("MODEL_FILE not set, no classifier available")
	}

	store := openStore(cfg, logger)

	service := application.NewScanService(extractor, scaler, model, store, logger, cfg.ScanConcurrency)

	results := service.ScanBatch(ctx, urls, opts)

	failed := false
	for i, r := range results {
		if r.Err != nil {
			failed = true
			logger.WithField("url", urls[i]).WithError(r.Err).Error("Scan failed")
			continue
		}
		if *jsonFlag {
			printJSON(r.Result)
		} else {
			printSummary(r.Result)
		}
	}
	if err := store.Close(); err != nil {
		logger.WithError(err).Warn("Failed to close store")
	}
	if failed {
		os.Exit(1)
	}
}

// openStore connects to PostgreSQL when DATABASE_URL is set and falls back to
// in-memory history otherwise
func openStore(cfg *config.Config, logger *logrus.Logger) ports.ScanStore {
	if cfg.DatabaseURL == "" {
		return storage.NewMemoryStore()
	}

	store, err := storage.NewPostgresStore(cfg.DatabaseURL)
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to database")
	}
	logger.Info("Connected to PostgreSQL")

	// Initialize database schema
	if err := store.InitSchema(); err != nil {
		logger.WithError(err).Fatal("Failed to initialize schema")
	}
	return store
}

func readURLs(f *os.File) []string {
	stat, err := f.Stat()
	if err != nil || stat.Mode()&os.ModeCharDevice != 0 {
		return nil
	}

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" && !strings.HasPrefix(line, "#") {
			urls = append(urls, line)
		}
	}
	return urls
}

func printSummary(result domain.ScanResult) {
	v := result.Verdict
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("URL: %s\n", result.URL)
	fmt.Printf("Prediction: %s (confidence %.2f%%)\n", v.Label, v.Confidence*100)
	fmt.Printf("Probability legitimate: %.2f%%\n", v.Probability*100)
	if v.Override != domain.OverrideNone {
		fmt.Printf("Override: %s\n", v.Override.Describe())
	}

	indicators := result.Explanation.Indicators()
	if len(indicators) > 0 {
		fmt.Println("Indicators:")
		for _, indicator := range indicators {
			fmt.Printf("  %s\n", indicator)
		}
	}
	fmt.Println(strings.Repeat("=", 60))
}

func printJSON(result domain.ScanResult) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to encode result: %v\n", err)
		return
	}
	fmt.Println(string(data))
}
