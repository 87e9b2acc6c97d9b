package domain

// TokenStatus represents the lifecycle state of a token.
type TokenStatus string

const (
	TokenStatusActive     TokenStatus = "active"
	TokenStatusInactive   TokenStatus = "inactive"
	TokenStatusGraduated  TokenStatus = "graduated"  // moved from bonding curve to open market
	TokenStatusGraduating TokenStatus = "graduating" // bonding curve near completion
	TokenStatusRugged     TokenStatus = "rugged"
	TokenStatusSuspicious TokenStatus = "suspicious"
	TokenStatusDelisted   TokenStatus = "delisted"
)

// String returns the string representation of TokenStatus.
func (s TokenStatus) String() string {
	return string(s)
}

// IsValid checks if the status is a known value.
func (s TokenStatus) IsValid() bool {
	switch s {
	case TokenStatusActive, TokenStatusInactive, TokenStatusGraduated,
		TokenStatusGraduating, TokenStatusRugged, TokenStatusSuspicious, TokenStatusDelisted:
		return true
	}
	return false
}

// WalletStatus represents the lifecycle state of a tracked wallet.
type WalletStatus string

const (
	WalletStatusActive      WalletStatus = "active"
	WalletStatusInactive    WalletStatus = "inactive"
	WalletStatusBlacklisted WalletStatus = "blacklisted"
	WalletStatusWhitelisted WalletStatus = "whitelisted"
	WalletStatusMonitoring  WalletStatus = "monitoring"
)

// String returns the string representation of WalletStatus.
func (s WalletStatus) String() string {
	return string(s)
}

// IsValid checks if the status is a known value.
func (s WalletStatus) IsValid() bool {
	switch s {
	case WalletStatusActive, WalletStatusInactive, WalletStatusBlacklisted,
		WalletStatusWhitelisted, WalletStatusMonitoring:
		return true
	}
	return false
}
