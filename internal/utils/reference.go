package utils

import (
	"fmt"
	"strings"
)

// NewReference builds a human-facing unique reference like "TXN-1A2B3C4D".
// The 4 random bytes give 2^32 possibilities per prefix; the database's
// unique constraint catches the rare collision.
func NewReference(prefix string) (string, error) {
	random, err := GenerateSecureRandomString(4)
	if err != nil {
		return "", fmt.Errorf("failed to generate reference: %w", err)
	}
	return prefix + "-" + strings.ToUpper(random), nil
}
