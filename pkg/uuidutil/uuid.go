// Package uuidutil generates random identifiers.
package uuidutil

import "github.com/google/uuid"

// ShortIDLen is the length of identifiers returned by ShortID.
const ShortIDLen = 8

// ShortID returns the first ShortIDLen hex characters of a random UUID.
// 32 bits of randomness; callers that need uniqueness must check for it.
func ShortID() string {
	return uuid.NewString()[:ShortIDLen]
}
