package utils

import "regexp"

var suiAddressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{64}$`)

// IsValidSuiAddress reports whether s is "0x" followed by exactly 64 hex characters.
func IsValidSuiAddress(s string) bool {
	return suiAddressPattern.MatchString(s)
}
