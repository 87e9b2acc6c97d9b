package reporting

import (
	"sort"
	"time"

	"tokenradar/internal/domain"
)

// Generator builds ranking reports from normalized entities.
type Generator struct {
	topN int
	now  func() time.Time // Injectable clock for deterministic output
}

// NewGenerator creates a report generator. topN limits each ranking; 0 means
// no limit.
func NewGenerator(topN int) *Generator {
	return &Generator{
		topN: topN,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// WithClock sets a custom clock function for deterministic output.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Generate ranks the batch: tokens by overall score DESC (mint ASC on ties),
// wallets by total PnL DESC (address ASC on ties).
func (g *Generator) Generate(tokens []*domain.Token, wallets []*domain.Wallet) *Report {
	report := &Report{
		GeneratedAt: g.now(),
		TokenCount:  len(tokens),
		WalletCount: len(wallets),
	}

	orderedTokens := make([]*domain.Token, len(tokens))
	copy(orderedTokens, tokens)
	sort.Slice(orderedTokens, func(i, j int) bool {
		si, sj := orderedTokens[i].Analytics.Scores.Overall, orderedTokens[j].Analytics.Scores.Overall
		if si != sj {
			return si > sj
		}
		return orderedTokens[i].MintAddress < orderedTokens[j].MintAddress
	})
	if g.topN > 0 && len(orderedTokens) > g.topN {
		orderedTokens = orderedTokens[:g.topN]
	}
	for i, t := range orderedTokens {
		report.Tokens = append(report.Tokens, TokenRow{
			Rank:            i + 1,
			MintAddress:     t.MintAddress,
			Symbol:          t.Symbol,
			Name:            t.Name,
			OverallScore:    t.Analytics.Scores.Overall,
			PriceUSD:        t.Market.Price.USD,
			MarketCap:       t.Market.MarketCap,
			LiquidityUSD:    t.Liquidity.TotalUSD,
			Volume24h:       t.Activity.Volume.H24,
			RiskScore:       t.Risk.Overall.Score,
			RiskLevel:       string(t.Risk.Overall.Level),
			PossibleRugpull: t.Risk.Flags.PossibleRugpull,
			Status:          string(t.System.Status),
		})
	}

	orderedWallets := make([]*domain.Wallet, len(wallets))
	copy(orderedWallets, wallets)
	sort.Slice(orderedWallets, func(i, j int) bool {
		pi, pj := orderedWallets[i].Performance.Pnl.TotalSol, orderedWallets[j].Performance.Pnl.TotalSol
		if pi != pj {
			return pi > pj
		}
		return orderedWallets[i].Address < orderedWallets[j].Address
	})
	if g.topN > 0 && len(orderedWallets) > g.topN {
		orderedWallets = orderedWallets[:g.topN]
	}
	for i, w := range orderedWallets {
		report.Wallets = append(report.Wallets, WalletRow{
			Rank:        i + 1,
			Address:     w.Address,
			Type:        string(w.Classification.Type),
			Tier:        string(w.Classification.Reputation.Tier),
			Pattern:     string(w.Classification.TradingPattern),
			TotalPnlSol: w.Performance.Pnl.TotalSol,
			ROI:         w.Performance.Returns.ROI,
			WinRate:     w.Performance.Trades.WinRate,
			TotalTrades: w.Performance.Trades.Total,
			Confidence:  w.Classification.ConfidenceScore,
		})
	}

	return report
}
