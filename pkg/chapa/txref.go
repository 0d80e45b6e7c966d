package chapa

import (
	"strings"

	"github.com/google/uuid"
)

// NewTxRef generates a unique transaction reference like "woliso-1a2b3c4d".
// Chapa requires tx_ref to be unique per transaction.
func NewTxRef(prefix string) string {
	if prefix == "" {
		prefix = "woliso"
	}
	return prefix + "-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
