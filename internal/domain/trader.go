package domain

// WalletType classifies what kind of actor a wallet appears to be.
type WalletType string

const (
	WalletTypeUnknown        WalletType = "unknown"
	WalletTypePotentialSmart WalletType = "potential_smart"
	WalletTypeConfirmedSmart WalletType = "confirmed_smart"
	WalletTypeTopTrader      WalletType = "top_trader"
	WalletTypeBot            WalletType = "bot"
	WalletTypeWhale          WalletType = "whale"
	WalletTypeDeveloper      WalletType = "developer"
	WalletTypeExchange       WalletType = "exchange"
	WalletTypeSniper         WalletType = "sniper"
	WalletTypeInsider        WalletType = "insider"
	WalletTypeRetail         WalletType = "retail"
)

// String returns the string representation of WalletType.
func (t WalletType) String() string {
	return string(t)
}

// TraderTier is a discrete reputation rank derived from win rate and total PnL.
type TraderTier string

const (
	TierUnknown  TraderTier = "unknown"
	TierBronze   TraderTier = "bronze"
	TierSilver   TraderTier = "silver"
	TierGold     TraderTier = "gold"
	TierPlatinum TraderTier = "platinum"
	TierDiamond  TraderTier = "diamond"
)

// String returns the string representation of TraderTier.
func (t TraderTier) String() string {
	return string(t)
}

// Ord returns the ordinal position of the tier, Unknown lowest.
// Used for tier comparisons (e.g. whitelisting Gold and above).
func (t TraderTier) Ord() int {
	switch t {
	case TierBronze:
		return 1
	case TierSilver:
		return 2
	case TierGold:
		return 3
	case TierPlatinum:
		return 4
	case TierDiamond:
		return 5
	default:
		return 0
	}
}

// TierThreshold defines minimum win rate and total PnL for a tier.
type TierThreshold struct {
	Tier       TraderTier
	MinWinRate float64 // percent, 0-100
	MinPnl     float64 // SOL
}

// TierThresholds is the ordered classification table, highest tier first.
// Both conditions must hold for a tier to match; first match wins.
var TierThresholds = []TierThreshold{
	{Tier: TierDiamond, MinWinRate: 80, MinPnl: 500},
	{Tier: TierPlatinum, MinWinRate: 70, MinPnl: 100},
	{Tier: TierGold, MinWinRate: 60, MinPnl: 50},
	{Tier: TierSilver, MinWinRate: 50, MinPnl: 20},
	{Tier: TierBronze, MinWinRate: 40, MinPnl: 5},
}

// TradingPattern classifies a wallet's typical holding behavior.
type TradingPattern string

const (
	PatternScalper   TradingPattern = "scalper"    // very short holds (<1h)
	PatternDayTrader TradingPattern = "day_trader" // intraday (1-24h)
	PatternSwing     TradingPattern = "swing"      // multi-day (1-7 days)
	PatternPosition  TradingPattern = "position"   // long-term (>7 days)
	PatternHolder    TradingPattern = "holder"     // buy and hold
	PatternOneTrade  TradingPattern = "one_trade"  // single trade only
)

// String returns the string representation of TradingPattern.
func (p TradingPattern) String() string {
	return string(p)
}
