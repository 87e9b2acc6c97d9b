package idhash

import "testing"

func TestValidateAddress(t *testing.T) {
	cases := []struct {
		name    string
		address string
		wantErr bool
	}{
		{"wrapped sol mint", "So11111111111111111111111111111111111111112", false},
		{"usdc mint", "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v", false},
		{"system program", "11111111111111111111111111111111", false},
		{"empty", "", true},
		{"bad base58 alphabet", "0OIl0OIl0OIl0OIl0OIl0OIl0OIl0OIl", true},
		{"too short", "abc", true},
		{"too long", "So11111111111111111111111111111111111111112X", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateAddress(tc.address)
			if (err != nil) != tc.wantErr {
				t.Errorf("ValidateAddress(%q) err = %v, wantErr %v", tc.address, err, tc.wantErr)
			}
		})
	}
}

func TestValidateWalletAddress(t *testing.T) {
	// The system program key is the canonical on-curve example: 32 zero
	// bytes, a valid ed25519 point encoding.
	if err := ValidateWalletAddress("11111111111111111111111111111111"); err != nil {
		t.Errorf("system program address: %v", err)
	}

	if err := ValidateWalletAddress(""); err == nil {
		t.Error("empty address must fail")
	}
	if err := ValidateWalletAddress("abc"); err == nil {
		t.Error("short address must fail")
	}
}
