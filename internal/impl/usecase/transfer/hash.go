package impl_transfer

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	domain_transfer "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/domain/transfer"
	"github.com/google/uuid"
)

// IdempotencyKey identifies one commit of intent within an attempt. A retry of
// the same intent after a failed commit reuses the key; any edit produces a new one.
func IdempotencyKey(attemptID uuid.UUID, in domain_transfer.Intent) string {
	src := strings.TrimSpace(in.SourceNumber)
	dst := strings.TrimSpace(in.DestinationNumber)

	payload := fmt.Sprintf("%s|%s|%s|%s|%s", attemptID, src, dst, in.Amount.String(), in.Memo)

	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])
}
