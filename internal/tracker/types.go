package tracker

// Raw record types for the analytics provider's Data API. Every field beyond
// the core identifiers is optional on the wire; optional numerics are pointers
// so that absent and zero stay distinguishable for the normalizers.

// Token is one raw token record from the token search endpoint.
type Token struct {
	ID       string `json:"id"` // composite: poolAddress_mint
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Mint     string `json:"mint"`
	Image    string `json:"image,omitempty"`
	Decimals int    `json:"decimals"`

	HasSocials bool     `json:"hasSocials"`
	Socials    *Socials `json:"socials,omitempty"`

	PoolAddress string         `json:"poolAddress"`
	QuoteToken  string         `json:"quoteToken"`
	Market      string         `json:"market"` // "pumpfun", "raydium", ...
	Launchpad   *LaunchpadInfo `json:"launchpad,omitempty"`

	LiquidityUSD float64 `json:"liquidityUsd"`
	MarketCapUSD float64 `json:"marketCapUsd"`
	PriceUSD     float64 `json:"priceUsd"`

	Volume5m  *float64 `json:"volume_5m,omitempty"`
	Volume1h  *float64 `json:"volume_1h,omitempty"`
	Volume6h  *float64 `json:"volume_6h,omitempty"`
	Volume24h *float64 `json:"volume_24h,omitempty"`

	PriceChange5m  *float64 `json:"priceChange_5m,omitempty"`
	PriceChange1h  *float64 `json:"priceChange_1h,omitempty"`
	PriceChange6h  *float64 `json:"priceChange_6h,omitempty"`
	PriceChange24h *float64 `json:"priceChange_24h,omitempty"`

	Buys              int `json:"buys"`
	Sells             int `json:"sells"`
	TotalTransactions int `json:"totalTransactions"`

	Holders  int     `json:"holders"`
	Top10    float64 `json:"top10"`    // % held by top 10 holders
	Dev      float64 `json:"dev"`      // % held by developer
	Insiders float64 `json:"insiders"` // % held by insiders
	Snipers  float64 `json:"snipers"`  // % held by snipers

	LpBurn          float64 `json:"lpBurn"` // 0-100
	FreezeAuthority *string `json:"freezeAuthority"`
	MintAuthority   *string `json:"mintAuthority"`

	Deployer string `json:"deployer"`

	Status string `json:"status"` // "graduating" | "graduated" | "default"

	CreatedAt   int64 `json:"createdAt"`   // Unix milliseconds
	LastUpdated int64 `json:"lastUpdated"` // Unix milliseconds

	TokenDetails *TokenDetails `json:"tokenDetails,omitempty"`
	Fees         *Fees         `json:"fees,omitempty"`

	Jupiter  bool `json:"jupiter,omitempty"`
	Verified bool `json:"verified,omitempty"`
}

// Socials holds social link URLs.
type Socials struct {
	Twitter  string `json:"twitter,omitempty"`
	Telegram string `json:"telegram,omitempty"`
	Discord  string `json:"discord,omitempty"`
	Website  string `json:"website,omitempty"`
}

// LaunchpadInfo holds bonding-curve progress for launchpad tokens.
type LaunchpadInfo struct {
	CurvePercentage *float64 `json:"curvePercentage,omitempty"`
}

// TokenDetails holds creation metadata.
type TokenDetails struct {
	Creator string `json:"creator"`
	Tx      string `json:"tx"`
	Time    int64  `json:"time"` // Unix seconds
}

// Fees holds fee totals in SOL.
type Fees struct {
	Total        float64 `json:"total"`
	TotalTrading float64 `json:"totalTrading"`
	TotalTips    float64 `json:"totalTips"`
}

// RiskData is one raw risk assessment from the risk endpoint.
type RiskData struct {
	Mint string `json:"mint"`

	RiskScore float64 `json:"riskScore"` // 0-10, 10 = highest risk
	RiskLevel string  `json:"riskLevel"` // "low" | "medium" | "high" | "critical"

	Warnings        []string `json:"warnings"`
	Dangers         []string `json:"dangers"`
	LiquidityIssues []string `json:"liquidityIssues"`
	InsiderRisks    []string `json:"insiderRisks"`

	Analysis RiskAnalysis `json:"analysis"`

	Recommendation string `json:"recommendation"`
}

// RiskAnalysis holds the provider's qualitative labels.
type RiskAnalysis struct {
	SocialPresence     string `json:"socialPresence"`
	LiquidityRating    string `json:"liquidityRating"`
	HolderDistribution string `json:"holderDistribution"`
	ContractSafety     string `json:"contractSafety"`
}

// TopTrader is one raw wallet summary from the top-traders endpoint.
type TopTrader struct {
	Address string `json:"address"`

	TotalPnl    float64  `json:"totalPnl"` // SOL
	TotalPnlUSD *float64 `json:"totalPnlUsd,omitempty"`
	ROI         float64  `json:"roi"`     // percent
	WinRate     float64  `json:"winRate"` // percent, 0-100

	TotalTrades   int `json:"totalTrades"`
	WinningTrades int `json:"winningTrades"`
	LosingTrades  int `json:"losingTrades"`
	ActiveTokens  int `json:"activeTokens"`

	LastTradeAt  int64   `json:"lastTradeAt"`  // Unix milliseconds
	FirstTradeAt int64   `json:"firstTradeAt"` // Unix milliseconds
	ActiveDays   int     `json:"activeDays"`
	TradesPerDay float64 `json:"tradesPerDay"`

	BestTrade *BestTrade `json:"bestTrade,omitempty"`

	Rank *int `json:"rank,omitempty"`
}

// BestTrade is the top trader's best single position.
type BestTrade struct {
	Mint       string  `json:"mint"`
	Symbol     string  `json:"symbol"`
	ProfitSol  float64 `json:"profitSol"`
	Multiplier float64 `json:"multiplier"`
}

// WalletPnL is one raw wallet profit-and-loss breakdown from the PnL endpoint.
type WalletPnL struct {
	Address string `json:"address"`

	TotalRealizedPnl   float64 `json:"totalRealizedPnl"`   // SOL
	TotalUnrealizedPnl float64 `json:"totalUnrealizedPnl"` // SOL
	TotalPnl           float64 `json:"totalPnl"`           // SOL
	TotalInvested      float64 `json:"totalInvested"`      // SOL
	ROI                float64 `json:"roi"`                // percent

	Tokens []TokenPnL `json:"tokens"`

	Stats PnLStats `json:"stats"`

	FirstTradeAt *int64 `json:"firstTradeAt,omitempty"` // Unix milliseconds
	LastTradeAt  *int64 `json:"lastTradeAt,omitempty"`  // Unix milliseconds
	ActiveDays   *int   `json:"activeDays,omitempty"`
}

// PnLStats holds aggregate trade statistics.
type PnLStats struct {
	TotalTrades    int     `json:"totalTrades"`
	WinningTrades  int     `json:"winningTrades"`
	LosingTrades   int     `json:"losingTrades"`
	WinRate        float64 `json:"winRate"` // percent, 0-100
	AvgWinSol      float64 `json:"avgWinSol"`
	AvgLossSol     float64 `json:"avgLossSol"`
	ProfitFactor   float64 `json:"profitFactor"`
	LargestWinSol  float64 `json:"largestWinSol"`
	LargestLossSol float64 `json:"largestLossSol"`
}

// TokenPnL is one per-token position breakdown inside WalletPnL.
type TokenPnL struct {
	Mint   string `json:"mint"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`

	TotalInvestedSol float64 `json:"totalInvestedSol"`
	BuyCount         int     `json:"buyCount"`
	SellCount        int     `json:"sellCount"`

	RealizedPnl   float64 `json:"realizedPnl"`
	UnrealizedPnl float64 `json:"unrealizedPnl"`
	TotalPnl      float64 `json:"totalPnl"`
	ROI           float64 `json:"roi"`

	IsWinner   bool    `json:"isWinner"`
	Multiplier float64 `json:"multiplier"`

	FirstBuyAt        int64    `json:"firstBuyAt"` // Unix milliseconds
	LastSellAt        *int64   `json:"lastSellAt,omitempty"`
	HoldingPeriodDays float64  `json:"holdingPeriodDays"`
	AvgHoldTimeHours  *float64 `json:"avgHoldTimeHours,omitempty"`
}

// WalletInfo is one raw portfolio snapshot from the wallet endpoint.
type WalletInfo struct {
	Address string `json:"address"`

	SolBalance float64 `json:"solBalance"`

	Tokens        []TokenHolding `json:"tokens"`
	TokenCount    int            `json:"tokenCount"`
	TotalValueUSD float64        `json:"totalValueUsd"`

	LastUpdated int64 `json:"lastUpdated"` // Unix milliseconds
}

// TokenHolding is one current position inside WalletInfo.
type TokenHolding struct {
	Mint     string `json:"mint"`
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Decimals int    `json:"decimals"`

	Amount     float64 `json:"amount"`
	ValueUSD   float64 `json:"valueUsd"`
	PriceUSD   float64 `json:"priceUsd"`
	Percentage float64 `json:"percentage"`
}

// SearchParams are query parameters for the token search endpoint.
type SearchParams struct {
	Query     string
	Page      int
	Limit     int
	SortBy    string
	SortOrder string

	MinLiquidity *float64
	MaxMarketCap *float64
	MinHolders   *int
	Status       string
}

// TokenStatsUpdate is one real-time statistics frame from the datastream.
type TokenStatsUpdate struct {
	Mint      string `json:"mint"`
	Timestamp int64  `json:"timestamp"`

	Price         float64 `json:"price"`
	PriceChange5m float64 `json:"priceChange5m"`

	Volume5m  float64 `json:"volume5m"`
	Volume24h float64 `json:"volume24h"`

	Buys5m  int `json:"buys5m"`
	Sells5m int `json:"sells5m"`

	Liquidity float64 `json:"liquidity"`
	MarketCap float64 `json:"marketCap"`

	Holders int `json:"holders"`
}
