package domain

// Launchpad identifies the venue a token launched on.
type Launchpad string

const (
	LaunchpadPumpFun  Launchpad = "pump.fun"
	LaunchpadMoonshot Launchpad = "moonshot"
	LaunchpadRaydium  Launchpad = "raydium"
	LaunchpadMeteora  Launchpad = "meteora"
	LaunchpadUnknown  Launchpad = "unknown"
)

// String returns the string representation of Launchpad.
func (l Launchpad) String() string {
	return string(l)
}

// IsValid checks if the launchpad is a known value.
func (l Launchpad) IsValid() bool {
	switch l {
	case LaunchpadPumpFun, LaunchpadMoonshot, LaunchpadRaydium, LaunchpadMeteora, LaunchpadUnknown:
		return true
	}
	return false
}
