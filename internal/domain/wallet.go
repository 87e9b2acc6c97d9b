package domain

import "time"

// Wallet is the canonical representation of one trading address, assembled
// from provider top-trader and PnL records.
type Wallet struct {
	Address string `json:"address"`

	Classification WalletClassification `json:"classification"`
	Performance    WalletPerformance    `json:"performance"`
	Timing         WalletTiming         `json:"timing"`
	Behavior       WalletBehavior       `json:"behavior"`
	Portfolio      WalletPortfolio      `json:"portfolio"`
	History        WalletHistory        `json:"history"`
	System         WalletSystemInfo     `json:"system"`
}

// WalletClassification holds type, traits, reputation and trading pattern.
type WalletClassification struct {
	Type            WalletType     `json:"type"`
	ConfidenceScore float64        `json:"confidenceScore"` // 0-100
	Traits          WalletTraits   `json:"traits"`
	Reputation      Reputation     `json:"reputation"`
	TradingPattern  TradingPattern `json:"tradingPattern"`
}

// WalletTraits are boolean behavioral markers.
type WalletTraits struct {
	IsEarlyEntrySpecialist bool `json:"isEarlyEntrySpecialist"`
	IsSwingTrader          bool `json:"isSwingTrader"`
	IsSniper               bool `json:"isSniper"`
	IsScalper              bool `json:"isScalper"`
	IsHodler               bool `json:"isHodler"`
	IsDeveloper            bool `json:"isDeveloper"`
	IsWhale                bool `json:"isWhale"`
}

// Reputation holds the tier-based reputation state.
type Reputation struct {
	Score         float64    `json:"score"` // 0-100
	Tier          TraderTier `json:"tier"`
	Rank          *int       `json:"rank,omitempty"` // global rank if known
	IsWhitelisted bool       `json:"isWhitelisted"`
	IsBlacklisted bool       `json:"isBlacklisted"`
}

// WalletPerformance holds trade statistics, PnL and returns.
type WalletPerformance struct {
	Trades      TradeStats        `json:"trades"`
	Pnl         PnlBreakdown      `json:"pnl"`
	Returns     ReturnStats       `json:"returns"`
	Consistency ConsistencyStats  `json:"consistency"`
	Recent      RecentPerformance `json:"recent"`
}

// TradeStats holds trade counts and win rate.
type TradeStats struct {
	Total     int     `json:"total"`
	Winning   int     `json:"winning"`
	Losing    int     `json:"losing"`
	Breakeven int     `json:"breakeven"`
	WinRate   float64 `json:"winRate"` // 0-100
}

// PnlBreakdown holds profit and loss in SOL and USD.
type PnlBreakdown struct {
	TotalSol         float64 `json:"totalSol"`
	TotalUsd         float64 `json:"totalUsd"`
	RealizedSol      float64 `json:"realizedSol"`
	UnrealizedSol    float64 `json:"unrealizedSol"`
	TotalInvestedSol float64 `json:"totalInvestedSol"`

	LargestWinSol  float64 `json:"largestWinSol"`
	LargestLossSol float64 `json:"largestLossSol"`
	AvgWinSol      float64 `json:"avgWinSol"`
	AvgLossSol     float64 `json:"avgLossSol"`
}

// ReturnStats holds return metrics.
type ReturnStats struct {
	ROI               float64 `json:"roi"` // percent
	ProfitFactor      float64 `json:"profitFactor"`
	AvgReturnPerTrade float64 `json:"avgReturnPerTrade"`
}

// ConsistencyStats holds streak counters.
type ConsistencyStats struct {
	ConsecutiveWins   int `json:"consecutiveWins"`
	ConsecutiveLosses int `json:"consecutiveLosses"`
	LongestWinStreak  int `json:"longestWinStreak"`
	LongestLossStreak int `json:"longestLossStreak"`
}

// RecentPerformance is the trailing-30-day subset.
type RecentPerformance struct {
	Trades  int     `json:"trades"`
	WinRate float64 `json:"winRate"`
	PnlSol  float64 `json:"pnlSol"`
	ROI     float64 `json:"roi"`
}

// WalletTiming holds entry/exit timing heuristics.
type WalletTiming struct {
	Entry EntryTiming `json:"entry"`
	Exit  ExitTiming  `json:"exit"`
	Speed SpeedTiming `json:"speed"`
}

// EntryTiming holds entry-side timing heuristics.
type EntryTiming struct {
	AvgTokenAgeAtEntry   float64 `json:"avgTokenAgeAtEntry"` // minutes from launch
	EarlyEntryRate       float64 `json:"earlyEntryRate"`
	AvgEntryMcap         float64 `json:"avgEntryMcap"`
	PreferredEntryWindow string  `json:"preferredEntryWindow"`
}

// ExitTiming holds exit-side timing heuristics.
type ExitTiming struct {
	AvgHoldTimeMinutes float64 `json:"avgHoldTimeMinutes"`
	AvgHoldTimeHours   float64 `json:"avgHoldTimeHours"`
	AvgExitMultiplier  float64 `json:"avgExitMultiplier"`
	TakesLossesQuickly bool    `json:"takesLossesQuickly"`
}

// SpeedTiming holds execution speed indicators.
type SpeedTiming struct {
	AvgTimeToEnter float64 `json:"avgTimeToEnter"` // seconds
	AvgTimeToExit  float64 `json:"avgTimeToExit"`
	IsLikelyBot    bool    `json:"isLikelyBot"`
}

// WalletBehavior holds position sizing, frequency and risk posture.
type WalletBehavior struct {
	Sizing    PositionSizing `json:"sizing"`
	Frequency TradeFrequency `json:"frequency"`
	Patterns  SocialPatterns `json:"patterns"`
	Risk      RiskPosture    `json:"risk"`
}

// PositionSizing holds typical position size metrics in SOL.
type PositionSizing struct {
	AvgBuySizeSol  float64 `json:"avgBuySizeSol"`
	AvgSellSizeSol float64 `json:"avgSellSizeSol"`
	MinPositionSol float64 `json:"minPositionSol"`
	MaxPositionSol float64 `json:"maxPositionSol"`
}

// TradeFrequency holds activity cadence metrics.
type TradeFrequency struct {
	TradesPerDay     float64 `json:"tradesPerDay"`
	IsActiveWeekends bool    `json:"isActiveWeekends"`
	TradingDays      int     `json:"tradingDays"`
}

// SocialPatterns holds detected copy-trading relationships.
type SocialPatterns struct {
	FollowsSmartMoney  bool     `json:"followsSmartMoney"`
	IsFollowedByOthers bool     `json:"isFollowedByOthers"`
	CopiesWallets      []string `json:"copiesWallets"`
	CopiedBy           []string `json:"copiedBy"`
}

// RiskPosture holds risk behavior labels and metrics.
type RiskPosture struct {
	AverageRiskLevel string  `json:"averageRiskLevel"` // conservative | moderate | aggressive | degen
	Diversification  float64 `json:"diversification"`  // 0-100
	UsesStopLosses   bool    `json:"usesStopLosses"`
}

// WalletPortfolio is the current holdings snapshot.
type WalletPortfolio struct {
	Current     PortfolioTotals      `json:"current"`
	Sol         SolBalance           `json:"sol"`
	TopHoldings []PortfolioHolding   `json:"topHoldings"`
	Composition PortfolioComposition `json:"composition"`
}

// PortfolioTotals holds aggregate portfolio value.
type PortfolioTotals struct {
	TotalValueSol float64 `json:"totalValueSol"`
	TotalValueUsd float64 `json:"totalValueUsd"`
	TokenCount    int     `json:"tokenCount"`
}

// SolBalance is the native balance with check time.
type SolBalance struct {
	Balance     float64   `json:"balance"`
	LastChecked time.Time `json:"lastChecked"`
}

// PortfolioHolding is one current token position.
type PortfolioHolding struct {
	Mint         string  `json:"mint"`
	Symbol       string  `json:"symbol"`
	Name         string  `json:"name"`
	Amount       float64 `json:"amount"`
	ValueUsd     float64 `json:"valueUsd"`
	Percentage   float64 `json:"percentage"` // share of portfolio, 0-100
	CurrentPrice float64 `json:"currentPrice"`
}

// PortfolioComposition counts positions by state.
type PortfolioComposition struct {
	ActivePositions int     `json:"activePositions"`
	AvgPositionSize float64 `json:"avgPositionSize"`
}

// WalletHistory summarizes past trading activity.
type WalletHistory struct {
	Summary          TradeSummary      `json:"summary"`
	SuccessfulTokens []SuccessfulToken `json:"successfulTokens"`
	FailedTokens     []FailedToken     `json:"failedTokens"`
}

// TradeSummary holds lifetime trade totals.
type TradeSummary struct {
	FirstTradeAt       time.Time `json:"firstTradeAt"`
	LastTradeAt        time.Time `json:"lastTradeAt"`
	TotalTrades        int       `json:"totalTrades"`
	TotalVolumeSol     float64   `json:"totalVolumeSol"`
	UniqueTokensTraded int       `json:"uniqueTokensTraded"`
}

// SuccessfulToken records a profitable position.
type SuccessfulToken struct {
	Mint              string     `json:"mint"`
	Symbol            string     `json:"symbol"`
	Multiplier        float64    `json:"multiplier"`
	ProfitSol         float64    `json:"profitSol"`
	HoldingPeriodDays float64    `json:"holdingPeriodDays"`
	EntryDate         time.Time  `json:"entryDate"`
	ExitDate          *time.Time `json:"exitDate,omitempty"`
}

// FailedToken records a losing position.
type FailedToken struct {
	Mint        string  `json:"mint"`
	Symbol      string  `json:"symbol"`
	LossSol     float64 `json:"lossSol"`
	LossPercent float64 `json:"lossPercent"`
}

// WalletSystemInfo holds discovery and monitoring bookkeeping.
type WalletSystemInfo struct {
	FirstSeenAt    time.Time `json:"firstSeenAt"`
	LastSeenAt     time.Time `json:"lastSeenAt"`
	LastAnalyzedAt time.Time `json:"lastAnalyzedAt"`
	DiscoveredVia  string    `json:"discoveredVia"` // top_traders | token_holder | manual | copy_trading

	IsMonitored        bool   `json:"isMonitored"`
	AlertsEnabled      bool   `json:"alertsEnabled"`
	CopyTradingEnabled bool   `json:"copyTradingEnabled"`
	Priority           string `json:"priority"`

	TransactionCount int `json:"transactionCount"`
	DataCompleteness int `json:"dataCompleteness"` // 0-100

	Status   WalletStatus `json:"status"`
	IsActive bool         `json:"isActive"`
	Tags     []string     `json:"tags"`
}

// WalletPreview is a compact projection of Wallet for lists and ranking.
// All fields are copies of the full entity; nothing is recomputed.
type WalletPreview struct {
	Address string     `json:"address"`
	Type    WalletType `json:"type"`
	Tier    TraderTier `json:"tier"`

	TotalPnl    float64 `json:"totalPnl"`
	ROI         float64 `json:"roi"`
	WinRate     float64 `json:"winRate"`
	TotalTrades int     `json:"totalTrades"`

	LastTradeAt      time.Time `json:"lastTradeAt"`
	TradesLast30Days int       `json:"tradesLast30Days"`

	Rank *int `json:"rank,omitempty"`

	IsActive    bool `json:"isActive"`
	IsMonitored bool `json:"isMonitored"`
}
