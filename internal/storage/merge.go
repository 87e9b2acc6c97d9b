package storage

import "tokenradar/internal/domain"

// MergeToken folds the stored version of a token into its freshly
// normalized replacement. Normalization always produces a first-sighting
// record; the store is the only layer that sees consecutive versions, so
// discovery time, update counters and peak tracking are reconciled here.
// Both backends (memory, postgres) apply the same rules.
func MergeToken(prev, next *domain.Token) {
	if prev == nil || next == nil {
		return
	}

	if prev.System.FirstSeenAt.Before(next.System.FirstSeenAt) {
		next.System.FirstSeenAt = prev.System.FirstSeenAt
	}
	next.System.UpdateCount = prev.System.UpdateCount + 1
	next.System.SnapshotCount = prev.System.SnapshotCount
	next.System.IsMonitored = prev.System.IsMonitored

	// Peak values only ratchet upward.
	if prev.Market.Peak.Price > next.Market.Peak.Price {
		next.Market.Peak.Price = prev.Market.Peak.Price
		next.Market.Peak.PriceAt = prev.Market.Peak.PriceAt
	}
	if prev.Market.Peak.Mcap > next.Market.Peak.Mcap {
		next.Market.Peak.Mcap = prev.Market.Peak.Mcap
		next.Market.Peak.McapAt = prev.Market.Peak.McapAt
	}
	// The launch snapshot is immutable once recorded; restore it before the
	// multiplier computation so the multiplier stays relative to the price at
	// discovery, not the refreshed record's current price.
	next.Launch.Initial = prev.Launch.Initial
	if prev.Launch.CreatedAt.Before(next.Launch.CreatedAt) {
		next.Launch.CreatedAt = prev.Launch.CreatedAt
	}
	if next.Launch.Initial.Price > 0 {
		next.Market.Peak.MultiplierFromLaunch = next.Market.Peak.Price / next.Launch.Initial.Price
	}
}

// MergeWallet folds the stored version of a wallet into its replacement,
// preserving discovery context and operator-controlled flags.
func MergeWallet(prev, next *domain.Wallet) {
	if prev == nil || next == nil {
		return
	}

	if prev.System.FirstSeenAt.Before(next.System.FirstSeenAt) {
		next.System.FirstSeenAt = prev.System.FirstSeenAt
	}
	next.System.DiscoveredVia = prev.System.DiscoveredVia

	// Operator switches survive refreshes.
	next.System.AlertsEnabled = prev.System.AlertsEnabled
	next.System.CopyTradingEnabled = prev.System.CopyTradingEnabled
	if len(prev.System.Tags) > 0 {
		next.System.Tags = prev.System.Tags
	}

	// A blacklist mark is sticky until an operator clears it.
	if prev.Classification.Reputation.IsBlacklisted {
		next.Classification.Reputation.IsBlacklisted = true
		next.Classification.Reputation.IsWhitelisted = false
		next.System.Status = domain.WalletStatusBlacklisted
	}
}
