// Package reporting renders ranking reports over a normalized batch.
package reporting

import "time"

// Report is a point-in-time ranking of normalized tokens and wallets.
type Report struct {
	GeneratedAt time.Time

	TokenCount  int
	WalletCount int

	Tokens  []TokenRow
	Wallets []WalletRow
}

// TokenRow is one ranked token line.
type TokenRow struct {
	Rank         int
	MintAddress  string
	Symbol       string
	Name         string
	OverallScore int

	PriceUSD     float64
	MarketCap    float64
	LiquidityUSD float64
	Volume24h    float64

	RiskScore       float64
	RiskLevel       string
	PossibleRugpull bool

	Status string
}

// WalletRow is one ranked wallet line.
type WalletRow struct {
	Rank    int
	Address string
	Type    string
	Tier    string
	Pattern string

	TotalPnlSol float64
	ROI         float64
	WinRate     float64
	TotalTrades int

	Confidence float64
}
