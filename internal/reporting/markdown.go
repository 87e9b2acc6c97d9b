package reporting

import (
	"fmt"
	"strings"
	"time"
)

// RenderMarkdown renders the report as a Markdown string.
func RenderMarkdown(r *Report) string {
	var sb strings.Builder

	sb.WriteString("# Token Radar Report\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", r.GeneratedAt.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("Tokens: %d | Wallets: %d\n\n", r.TokenCount, r.WalletCount))

	sb.WriteString("## Top Tokens\n\n")
	if len(r.Tokens) > 0 {
		sb.WriteString("| Rank | Symbol | Mint | Score | Price ($) | MCap ($) | Liquidity ($) | Vol 24h ($) | Risk | Level | Rugpull | Status |\n")
		sb.WriteString("|------|--------|------|-------|-----------|----------|---------------|-------------|------|-------|---------|--------|\n")
		for _, t := range r.Tokens {
			rugpull := ""
			if t.PossibleRugpull {
				rugpull = "YES"
			}
			sb.WriteString(fmt.Sprintf("| %d | %s | %s | %d | %.6f | %.0f | %.0f | %.0f | %.1f | %s | %s | %s |\n",
				t.Rank, t.Symbol, t.MintAddress, t.OverallScore,
				t.PriceUSD, t.MarketCap, t.LiquidityUSD, t.Volume24h,
				t.RiskScore, t.RiskLevel, rugpull, t.Status))
		}
	} else {
		sb.WriteString("No tokens in this batch.\n")
	}
	sb.WriteString("\n")

	sb.WriteString("## Top Wallets\n\n")
	if len(r.Wallets) > 0 {
		sb.WriteString("| Rank | Address | Type | Tier | Pattern | PnL (SOL) | ROI (%) | WinRate (%) | Trades | Confidence |\n")
		sb.WriteString("|------|---------|------|------|---------|-----------|---------|-------------|--------|------------|\n")
		for _, w := range r.Wallets {
			sb.WriteString(fmt.Sprintf("| %d | %s | %s | %s | %s | %.2f | %.2f | %.2f | %d | %.0f |\n",
				w.Rank, w.Address, w.Type, w.Tier, w.Pattern,
				w.TotalPnlSol, w.ROI, w.WinRate, w.TotalTrades, w.Confidence))
		}
	} else {
		sb.WriteString("No wallets in this batch.\n")
	}
	sb.WriteString("\n")

	return sb.String()
}
