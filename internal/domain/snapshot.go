package domain

// TokenSnapshot is one compact per-tick observation of a token, appended by
// the collector. Corresponds to token_snapshots table in ClickHouse.
type TokenSnapshot struct {
	MintAddress  string  // token mint address
	TimestampMs  int64   // observation time, Unix milliseconds
	PriceUSD     float64 // price at observation
	MarketCap    float64 // market cap at observation
	LiquidityUSD float64 // total liquidity at observation
	Volume24h    float64 // trailing 24h volume
	HolderCount  int     // holder count at observation
	RiskScore    float64 // risk score at observation, 0-10
	OverallScore int     // composite analytics score, 0-100
	Status       string  // lifecycle status at observation
}
