package domain

import "time"

// Token is the canonical representation of one tradable asset, keyed by mint
// address. It is assembled once per normalization pass from a raw provider
// record; re-normalization always produces a fresh value.
type Token struct {
	MintAddress string `json:"mintAddress"`
	Symbol      string `json:"symbol"`
	Name        string `json:"name"`
	Decimals    int    `json:"decimals"`

	Launch    TokenLaunch     `json:"launch"`
	Market    TokenMarket     `json:"market"`
	Liquidity TokenLiquidity  `json:"liquidity"`
	Holders   TokenHolders    `json:"holders"`
	Activity  TokenActivity   `json:"activity"`
	Security  TokenSecurity   `json:"security"`
	Risk      TokenRisk       `json:"risk"`
	Quality   TokenQuality    `json:"quality"`
	Analytics TokenAnalytics  `json:"analytics"`
	Metadata  TokenMetadata   `json:"metadata"`
	System    TokenSystemInfo `json:"system"`
}

// TokenLaunch captures creation context and the state at discovery.
type TokenLaunch struct {
	Launchpad          Launchpad `json:"launchpad"`
	CreatedAt          time.Time `json:"createdAt"`
	FirstPoolCreatedAt time.Time `json:"firstPoolCreatedAt"`

	Developer TokenDeveloper `json:"developer"`

	// Initial state captured at discovery.
	Initial TokenInitialState `json:"initial"`

	// Graduation is present only for bonding-curve launches.
	Graduation *TokenGraduation `json:"graduation,omitempty"`
}

// TokenDeveloper identifies the deploying wallet.
type TokenDeveloper struct {
	Address    string `json:"address"`
	IsVerified bool   `json:"isVerified"`
}

// TokenInitialState is the market snapshot at discovery time.
type TokenInitialState struct {
	Mcap        float64 `json:"mcap"`
	Liquidity   float64 `json:"liquidity"`
	HolderCount int     `json:"holderCount"`
	Price       float64 `json:"price"`
}

// TokenGraduation tracks bonding-curve completion.
type TokenGraduation struct {
	HasGraduated           bool       `json:"hasGraduated"`
	GraduatedAt            *time.Time `json:"graduatedAt,omitempty"`
	BondingCurvePercentage float64    `json:"bondingCurvePercentage"`
}

// TokenMarket holds current market data.
type TokenMarket struct {
	Price       TokenPrice       `json:"price"`
	MarketCap   float64          `json:"marketCap"`
	FDV         float64          `json:"fdv"`
	PriceChange TokenPriceChange `json:"priceChange"`
	Peak        TokenPeak        `json:"peak"`
	Pool        TokenPool        `json:"pool"`
}

// TokenPrice is the current price with source attribution.
type TokenPrice struct {
	USD         float64   `json:"usd"`
	LastUpdated time.Time `json:"lastUpdated"`
	Source      string    `json:"source"`
}

// TokenPriceChange holds multi-horizon price change percentages.
type TokenPriceChange struct {
	M5  float64 `json:"m5"`
	H1  float64 `json:"h1"`
	H6  float64 `json:"h6"`
	H24 float64 `json:"h24"`
}

// TokenPeak tracks the best observed price and mcap.
type TokenPeak struct {
	Price                float64   `json:"price"`
	PriceAt              time.Time `json:"priceAt"`
	Mcap                 float64   `json:"mcap"`
	McapAt               time.Time `json:"mcapAt"`
	MultiplierFromLaunch float64   `json:"multiplierFromLaunch"`
}

// TokenPool identifies the primary liquidity pool.
type TokenPool struct {
	Address    string `json:"address"`
	Dex        string `json:"dex"`
	QuoteToken string `json:"quoteToken"`
}

// TokenLiquidity holds liquidity totals and derived health metrics.
type TokenLiquidity struct {
	Total            float64               `json:"total"`
	TotalUSD         float64               `json:"totalUsd"`
	LpBurnPercentage float64               `json:"lpBurnPercentage"` // 0-100
	Metrics          TokenLiquidityMetrics `json:"metrics"`
}

// TokenLiquidityMetrics are derived liquidity health indicators.
type TokenLiquidityMetrics struct {
	IsHealthy            bool    `json:"isHealthy"`
	LiquidityToMcapRatio float64 `json:"liquidityToMcapRatio"`
	DominantDex          string  `json:"dominantDex"`
}

// TokenHolders holds holder counts, concentration and smart money presence.
type TokenHolders struct {
	Total         int                 `json:"total"`
	Concentration HolderConcentration `json:"concentration"`
	Distribution  HolderDistribution  `json:"distribution"`
	SmartMoney    SmartMoneyPresence  `json:"smartMoney"`
}

// HolderConcentration holds supply concentration percentages, each 0-100.
type HolderConcentration struct {
	Top10Percentage    float64 `json:"top10Percentage"`
	DevPercentage      float64 `json:"devPercentage"`
	InsidersPercentage float64 `json:"insidersPercentage"`
	SnipersPercentage  float64 `json:"snipersPercentage"`
}

// HolderDistribution buckets holders by position size.
type HolderDistribution struct {
	Whales        int `json:"whales"`
	MediumHolders int `json:"mediumHolders"`
	SmallHolders  int `json:"smallHolders"`
}

// SmartMoneyPresence summarizes high-reputation wallets holding the token.
type SmartMoneyPresence struct {
	Count           int      `json:"count"`
	TopSmartWallets []string `json:"topSmartWallets"`
	AvgWalletScore  float64  `json:"avgWalletScore"`
	TotalPercentage float64  `json:"totalPercentage"` // 0-100
	RecentActivity  string   `json:"recentActivity"`  // buying | selling | holding | mixed
}

// TokenActivity holds trading volume, transaction counts and pressure.
type TokenActivity struct {
	Volume       VolumeBreakdown   `json:"volume"`
	Transactions TransactionCounts `json:"transactions"`
	Pressure     BuySellPressure   `json:"pressure"`
	Fees         *FeeBreakdown     `json:"fees,omitempty"`
}

// VolumeBreakdown holds multi-horizon USD volume.
type VolumeBreakdown struct {
	M5  float64 `json:"m5"`
	H1  float64 `json:"h1"`
	H6  float64 `json:"h6"`
	H24 float64 `json:"h24"`
}

// TransactionCounts holds buy/sell transaction tallies.
type TransactionCounts struct {
	Total       int     `json:"total"`
	Buys        int     `json:"buys"`
	Sells       int     `json:"sells"`
	BuysVsSells float64 `json:"buysVsSells"` // buys/sells ratio, 1 when sells == 0
}

// BuySellPressure splits 24h volume by direction.
type BuySellPressure struct {
	BuyVolume24h  float64 `json:"buyVolume24h"`
	SellVolume24h float64 `json:"sellVolume24h"`
	BuyPressure   float64 `json:"buyPressure"` // 0-1, buy share of transactions
}

// FeeBreakdown holds fee totals in SOL when the provider reports them.
type FeeBreakdown struct {
	TotalFees    float64 `json:"totalFees"`
	TradingFees  float64 `json:"tradingFees"`
	PriorityFees float64 `json:"priorityFees"`
}

// TokenSecurity holds authority flags, LP burn and verification state.
type TokenSecurity struct {
	Authorities  TokenAuthorities  `json:"authorities"`
	LpBurn       LpBurnDetail      `json:"lpBurn"`
	Verification TokenVerification `json:"verification"`
}

// TokenAuthorities tracks mint/freeze authority state.
type TokenAuthorities struct {
	MintDisabled    bool    `json:"mintDisabled"`
	FreezeDisabled  bool    `json:"freezeDisabled"`
	MintAuthority   *string `json:"mintAuthority"`
	FreezeAuthority *string `json:"freezeAuthority"`
}

// LpBurnDetail tracks liquidity pool token destruction.
type LpBurnDetail struct {
	Percentage    float64 `json:"percentage"` // 0-100
	IsFullyBurned bool    `json:"isFullyBurned"`
}

// TokenVerification holds listing and metadata verification flags.
type TokenVerification struct {
	IsVerified      bool `json:"isVerified"`
	ListedOnJupiter bool `json:"listedOnJupiter"`
	HasMetadata     bool `json:"hasMetadata"`
}

// TokenRisk is the overall risk assessment, either provider-supplied or
// derived heuristically when the provider assessment is absent.
type TokenRisk struct {
	Overall         RiskOverall  `json:"overall"`
	Warnings        []string     `json:"warnings"`
	Dangers         []string     `json:"dangers"`
	LiquidityIssues []string     `json:"liquidityIssues"`
	InsiderRisks    []string     `json:"insiderRisks"`
	Analysis        RiskAnalysis `json:"analysis"`
	Flags           RiskFlags    `json:"flags"`
}

// RiskOverall is the bounded risk score with its derived level.
type RiskOverall struct {
	Score          float64   `json:"score"` // 0-10, 10 = highest risk
	Level          RiskLevel `json:"level"`
	Recommendation string    `json:"recommendation"`
}

// RiskAnalysis holds structured qualitative labels.
type RiskAnalysis struct {
	SocialPresence     string `json:"socialPresence"`     // none | low | medium | high
	LiquidityRating    string `json:"liquidityRating"`    // poor | fair | good | excellent
	HolderDistribution string `json:"holderDistribution"` // concerning | fair | healthy | excellent
	ContractSafety     string `json:"contractSafety"`     // unsafe | risky | safe | verified
}

// RiskFlags is the locally computed boolean red-flag set. Flags are always
// recomputed from raw facts, even when the provider assessment is passed
// through, so they cannot drift from the data.
type RiskFlags struct {
	DevHoldingTooHigh   bool `json:"devHoldingTooHigh"`
	Top10HoldingTooHigh bool `json:"top10HoldingTooHigh"`
	LiquidityTooLow     bool `json:"liquidityTooLow"`
	SuspiciousActivity  bool `json:"suspiciousActivity"`
	RecentDevDump       bool `json:"recentDevDump"`
	PossibleRugpull     bool `json:"possibleRugpull"`
}

// TokenQuality holds organic and composite quality metrics.
type TokenQuality struct {
	OrganicScore      *float64     `json:"organicScore,omitempty"` // 0-100, if provider supplies it
	OrganicScoreLabel string       `json:"organicScoreLabel,omitempty"`
	Quality           QualityScore `json:"quality"`
}

// QualityScore holds derived 0-100 quality sub-scores.
type QualityScore struct {
	OverallScore     int `json:"overallScore"`
	DataQuality      int `json:"dataQuality"`
	MarketQuality    int `json:"marketQuality"`
	CommunityQuality int `json:"communityQuality"`
	SocialPresence   int `json:"socialPresence"`
}

// TokenAnalytics holds derived 0-100 scores and pattern metadata.
type TokenAnalytics struct {
	Scores   AnalyticsScores `json:"scores"`
	Patterns PatternMatch    `json:"patterns"`
}

// AnalyticsScores are the derived component scores, each 0-100.
type AnalyticsScores struct {
	Overall    int `json:"overall"`
	Liquidity  int `json:"liquidity"`
	Holders    int `json:"holders"`
	Volume     int `json:"volume"`
	Safety     int `json:"safety"`
	SmartMoney int `json:"smartMoney"`
	Momentum   int `json:"momentum"`
}

// PatternMatch records similarity to historically successful tokens.
type PatternMatch struct {
	MatchesSuccessPattern bool     `json:"matchesSuccessPattern"`
	SimilarToTokens       []string `json:"similarToTokens"`
	ConfidenceScore       float64  `json:"confidenceScore"`
}

// TokenMetadata holds image, social links and external references.
type TokenMetadata struct {
	Image  string       `json:"image,omitempty"`
	Social SocialLinks  `json:"social"`
	Tags   []string     `json:"tags"`
	URLs   ExternalURLs `json:"urls"`
}

// SocialLinks holds known social presence URLs.
type SocialLinks struct {
	Twitter  string `json:"twitter,omitempty"`
	Telegram string `json:"telegram,omitempty"`
	Discord  string `json:"discord,omitempty"`
	Website  string `json:"website,omitempty"`
}

// ExternalURLs are reference links for the token.
type ExternalURLs struct {
	Tracker     string `json:"tracker,omitempty"`
	Solscan     string `json:"solscan,omitempty"`
	Dexscreener string `json:"dexscreener,omitempty"`
}

// TokenSystemInfo holds discovery and monitoring bookkeeping.
type TokenSystemInfo struct {
	FirstSeenAt   time.Time `json:"firstSeenAt"`
	DiscoveredVia string    `json:"discoveredVia"`

	LastUpdatedAt        time.Time `json:"lastUpdatedAt"`
	LastFullEnrichmentAt time.Time `json:"lastFullEnrichmentAt"`
	UpdateCount          int       `json:"updateCount"`

	DataCompleteness int         `json:"dataCompleteness"` // 0-100
	DataSources      []string    `json:"dataSources"`
	Status           TokenStatus `json:"status"`
	IsActive         bool        `json:"isActive"`
	IsMonitored      bool        `json:"isMonitored"`
	Priority         string      `json:"priority"` // low | medium | high | critical

	SnapshotCount int `json:"snapshotCount"`
}

// TokenPreview is a compact projection of Token for lists and ranking.
// All fields are copies of the full entity; nothing is recomputed.
type TokenPreview struct {
	MintAddress string `json:"mintAddress"`
	Symbol      string `json:"symbol"`
	Name        string `json:"name"`
	Image       string `json:"image,omitempty"`

	Price          float64 `json:"price"`
	MarketCap      float64 `json:"marketCap"`
	Liquidity      float64 `json:"liquidity"`
	PriceChange24h float64 `json:"priceChange24h"`
	Volume24h      float64 `json:"volume24h"`

	RiskLevel RiskLevel `json:"riskLevel"`
	RiskScore float64   `json:"riskScore"`

	SmartMoneyCount int `json:"smartMoneyCount"`
	OverallScore    int `json:"overallScore"`

	Status    TokenStatus `json:"status"`
	CreatedAt time.Time   `json:"createdAt"`
}
