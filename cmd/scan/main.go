// Command scan performs a one-shot collection pass and writes ranked token
// and wallet reports to disk. It can run against the live provider or a
// JSON fixture file, which makes it useful for smoke-testing normalization
// without an API key.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"tokenradar/internal/config"
	"tokenradar/internal/domain"
	"tokenradar/internal/idhash"
	"tokenradar/internal/normalize"
	"tokenradar/internal/reporting"
	"tokenradar/internal/tracker"
	"tokenradar/internal/tracker/stub"
)

func main() {
	fixturePath := flag.String("fixture", "", "Path to a JSON fixture file instead of the live provider")
	outputDir := flag.String("output-dir", "reports", "Directory to write report files into")
	topN := flag.Int("top", 25, "Number of rows per report section (0 = no limit)")
	wallets := flag.String("wallets", "", "Comma-separated wallet addresses to include in the scan")
	tokenLimit := flag.Int("token-limit", 100, "Maximum tokens to fetch from the provider")
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	flag.Parse()

	logger := setupLogger(*verbose)
	defer logger.Sync()

	if err := run(context.Background(), logger, scanOptions{
		fixturePath: *fixturePath,
		outputDir:   *outputDir,
		topN:        *topN,
		wallets:     *wallets,
		tokenLimit:  *tokenLimit,
	}); err != nil {
		logger.Fatal("scan failed", zap.Error(err))
	}
}

type scanOptions struct {
	fixturePath string
	outputDir   string
	topN        int
	wallets     string
	tokenLimit  int
}

func run(ctx context.Context, logger *zap.Logger, opts scanOptions) error {
	addresses, err := parseWalletAddresses(opts.wallets)
	if err != nil {
		return err
	}

	client, err := buildClient(opts.fixturePath, logger)
	if err != nil {
		return err
	}

	now := time.Now()

	tokens, errCount := scanTokens(ctx, client, logger, opts.tokenLimit, now)
	wallets, walletErrs := scanWallets(ctx, client, logger, addresses, now)
	errCount += walletErrs

	logger.Info("scan complete",
		zap.Int("tokens", len(tokens)),
		zap.Int("wallets", len(wallets)),
		zap.Int("errors", errCount),
	)

	report := reporting.NewGenerator(opts.topN).Generate(tokens, wallets)
	if err := writeReports(opts.outputDir, report); err != nil {
		return err
	}
	logger.Info("reports written", zap.String("dir", opts.outputDir))
	return nil
}

func buildClient(fixturePath string, logger *zap.Logger) (tracker.Client, error) {
	if fixturePath != "" {
		client, err := loadFixture(fixturePath)
		if err != nil {
			return nil, fmt.Errorf("load fixture: %w", err)
		}
		logger.Info("using fixture data",
			zap.String("path", fixturePath),
			zap.Int("tokens", len(client.Tokens)),
			zap.Int("traders", len(client.Traders)),
		)
		return client, nil
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return tracker.NewHTTPClient(cfg.Tracker.BaseURL,
		tracker.WithAPIKey(cfg.Tracker.APIKey),
		tracker.WithTimeout(cfg.Tracker.RequestTimeout),
		tracker.WithMaxRetries(cfg.Tracker.MaxRetries),
		tracker.WithRetryDelay(cfg.Tracker.RetryDelay),
	), nil
}

// loadFixture reads a stub dataset from a JSON file. The file layout mirrors
// the stub client: tokens, per-mint risk, traders, per-address pnl and
// portfolios.
func loadFixture(path string) (*stub.Client, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	client := stub.NewClient()
	if err := json.Unmarshal(data, client); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return client, nil
}

func parseWalletAddresses(list string) ([]string, error) {
	if list == "" {
		return nil, nil
	}
	var addresses []string
	for _, raw := range strings.Split(list, ",") {
		address := strings.TrimSpace(raw)
		if address == "" {
			continue
		}
		if err := idhash.ValidateWalletAddress(address); err != nil {
			return nil, fmt.Errorf("wallet address %q: %w", address, err)
		}
		addresses = append(addresses, address)
	}
	return addresses, nil
}

func scanTokens(ctx context.Context, client tracker.Client, logger *zap.Logger, limit int, now time.Time) ([]*domain.Token, int) {
	raw, err := client.SearchTokens(ctx, tracker.SearchParams{
		Limit:     limit,
		SortBy:    "volume_24h",
		SortOrder: "desc",
	})
	if err != nil {
		logger.Error("token search failed", zap.Error(err))
		return nil, 1
	}

	var (
		tokens   []*domain.Token
		errCount int
	)
	for _, rt := range raw {
		risk, err := client.TokenRisk(ctx, rt.Mint)
		if err != nil {
			logger.Debug("risk fetch failed", zap.String("mint", rt.Mint), zap.Error(err))
			risk = nil
		}
		token, err := normalize.TokenAt(rt, risk, now)
		if err != nil {
			logger.Warn("token rejected", zap.String("mint", rt.Mint), zap.Error(err))
			errCount++
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens, errCount
}

// scanWallets normalizes the provider's top-trader leaderboard plus any
// operator-supplied addresses. Explicit addresses take precedence when both
// mention the same wallet.
func scanWallets(ctx context.Context, client tracker.Client, logger *zap.Logger, addresses []string, now time.Time) ([]*domain.Wallet, int) {
	byAddress := make(map[string]*domain.Wallet)
	errCount := 0

	traders, err := client.TopTraders(ctx, 1)
	if err != nil {
		logger.Error("top traders fetch failed", zap.Error(err))
		errCount++
	}
	for _, trader := range traders {
		pnl, err := client.WalletPnL(ctx, trader.Address)
		if err != nil {
			pnl = nil
		}
		portfolio, err := client.Wallet(ctx, trader.Address)
		if err != nil {
			portfolio = nil
		}
		wallet, err := normalize.WalletFromTopTraderAt(trader, pnl, portfolio, now)
		if err != nil {
			logger.Warn("trader rejected", zap.String("address", trader.Address), zap.Error(err))
			errCount++
			continue
		}
		byAddress[wallet.Address] = wallet
	}

	for _, address := range addresses {
		pnl, err := client.WalletPnL(ctx, address)
		if err != nil {
			logger.Warn("wallet pnl fetch failed", zap.String("address", address), zap.Error(err))
			errCount++
			continue
		}
		portfolio, err := client.Wallet(ctx, address)
		if err != nil {
			portfolio = nil
		}
		pnl.Address = address
		wallet, err := normalize.WalletFromPnLAt(*pnl, portfolio, now)
		if err != nil {
			logger.Warn("wallet rejected", zap.String("address", address), zap.Error(err))
			errCount++
			continue
		}
		byAddress[wallet.Address] = wallet
	}

	wallets := make([]*domain.Wallet, 0, len(byAddress))
	for _, w := range byAddress {
		wallets = append(wallets, w)
	}
	sort.Slice(wallets, func(i, j int) bool {
		return wallets[i].Address < wallets[j].Address
	})
	return wallets, errCount
}

func writeReports(dir string, report *reporting.Report) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	files := map[string]string{
		"report.md":   reporting.RenderMarkdown(report),
		"tokens.csv":  reporting.RenderTokensCSV(report),
		"wallets.csv": reporting.RenderWalletsCSV(report),
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	return nil
}

func setupLogger(verbose bool) *zap.Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	cfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, err := cfg.Build()
	if err != nil {
		logger = zap.NewNop()
	}
	return logger
}
