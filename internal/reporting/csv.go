package reporting

import (
	"fmt"
	"strings"
)

// RenderTokensCSV renders the token ranking as a CSV string.
func RenderTokensCSV(r *Report) string {
	var sb strings.Builder

	sb.WriteString("rank,mint_address,symbol,overall_score,price_usd,market_cap,liquidity_usd,volume_24h,risk_score,risk_level,possible_rugpull,status\n")
	for _, t := range r.Tokens {
		sb.WriteString(fmt.Sprintf("%d,%s,%s,%d,%.8f,%.2f,%.2f,%.2f,%.2f,%s,%t,%s\n",
			t.Rank, t.MintAddress, t.Symbol, t.OverallScore,
			t.PriceUSD, t.MarketCap, t.LiquidityUSD, t.Volume24h,
			t.RiskScore, t.RiskLevel, t.PossibleRugpull, t.Status))
	}

	return sb.String()
}

// RenderWalletsCSV renders the wallet ranking as a CSV string.
func RenderWalletsCSV(r *Report) string {
	var sb strings.Builder

	sb.WriteString("rank,address,type,tier,pattern,total_pnl_sol,roi,win_rate,total_trades,confidence\n")
	for _, w := range r.Wallets {
		sb.WriteString(fmt.Sprintf("%d,%s,%s,%s,%s,%.4f,%.4f,%.4f,%d,%.0f\n",
			w.Rank, w.Address, w.Type, w.Tier, w.Pattern,
			w.TotalPnlSol, w.ROI, w.WinRate, w.TotalTrades, w.Confidence))
	}

	return sb.String()
}
