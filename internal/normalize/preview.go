package normalize

import "tokenradar/internal/domain"

// TokenPreview projects a full token down to the compact list shape. Every
// field is copied from the entity; nothing is recomputed, so previews can
// never drift from the records they summarize.
func TokenPreview(t *domain.Token) domain.TokenPreview {
	return domain.TokenPreview{
		MintAddress: t.MintAddress,
		Symbol:      t.Symbol,
		Name:        t.Name,
		Image:       t.Metadata.Image,

		Price:          t.Market.Price.USD,
		MarketCap:      t.Market.MarketCap,
		Liquidity:      t.Liquidity.Total,
		PriceChange24h: t.Market.PriceChange.H24,
		Volume24h:      t.Activity.Volume.H24,

		RiskLevel: t.Risk.Overall.Level,
		RiskScore: t.Risk.Overall.Score,

		SmartMoneyCount: t.Holders.SmartMoney.Count,
		OverallScore:    t.Analytics.Scores.Overall,

		Status:    t.System.Status,
		CreatedAt: t.Launch.CreatedAt,
	}
}

// WalletPreview projects a full wallet down to the compact list shape. The
// rank is supplied by the caller, which knows the wallet's position in
// whatever list is being built.
func WalletPreview(w *domain.Wallet, rank *int) domain.WalletPreview {
	return domain.WalletPreview{
		Address: w.Address,
		Type:    w.Classification.Type,
		Tier:    w.Classification.Reputation.Tier,

		TotalPnl:    w.Performance.Pnl.TotalSol,
		ROI:         w.Performance.Returns.ROI,
		WinRate:     w.Performance.Trades.WinRate,
		TotalTrades: w.Performance.Trades.Total,

		LastTradeAt:      w.History.Summary.LastTradeAt,
		TradesLast30Days: w.Performance.Recent.Trades,

		Rank: rank,

		IsActive:    w.System.IsActive,
		IsMonitored: w.System.IsMonitored,
	}
}
