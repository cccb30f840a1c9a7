// Package id generates identifiers for generated contracts.
package id

import (
	"strings"

	"github.com/google/uuid"
)

// Short returns eight lowercase hex characters taken from a random UUID.
func Short() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// Name returns prefix followed by an underscore and a Short id, a valid
// contract name such as "contract_3f9a0c1d".
func Name(prefix string) string {
	return prefix + "_" + Short()
}
