// Package idhash provides Solana address validation for entity keys.
package idhash

import (
	"fmt"

	"filippo.io/edwards25519"
	"github.com/mr-tron/base58"
)

// ValidateAddress checks that an address is structurally valid: base58,
// decoding to exactly 32 bytes. This is the check applied to provider-supplied
// mint and wallet identifiers; mint accounts may be program derived, so no
// curve check is applied here.
func ValidateAddress(address string) error {
	if address == "" {
		return fmt.Errorf("empty address")
	}

	raw, err := base58.Decode(address)
	if err != nil {
		return fmt.Errorf("decode address: %w", err)
	}
	if len(raw) != 32 {
		return fmt.Errorf("address is %d bytes, want 32", len(raw))
	}
	return nil
}

// ValidateWalletAddress checks that an operator-supplied wallet address is
// structurally valid and a point on the ed25519 curve. Wallet keys are
// ed25519 public keys, unlike PDAs, so the curve check catches pool and
// program addresses pasted by mistake.
func ValidateWalletAddress(address string) error {
	if err := ValidateAddress(address); err != nil {
		return err
	}

	raw, _ := base58.Decode(address)
	if !isOnCurve(raw) {
		return fmt.Errorf("wallet address is not on the ed25519 curve")
	}
	return nil
}

func isOnCurve(point []byte) bool {
	if len(point) != 32 {
		return false
	}
	_, err := new(edwards25519.Point).SetBytes(point)
	return err == nil
}
