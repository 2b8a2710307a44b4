package domain

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/gowebpki/jcs"
)

// seedModulus bounds generated seeds to six decimal digits so that the
// digit-group slicing in trait derivation, mutation and recombination always
// operates on a fixed-width value.
const seedModulus = 999999

// seedPreimage is the canonical input hashed by GenerateSeed. It is serialized
// with RFC 8785 (JCS) so the byte encoding is unambiguous and reproducible
// across implementations.
type seedPreimage struct {
	Actor       string `json:"actor"`
	TokenID     uint64 `json:"token_id"`
	BlockHeight uint64 `json:"block_height"`
}

// GenerateSeed derives a deterministic pseudo-random seed from the acting
// identity, a token identifier and the current block height. The preimage is
// canonicalized, hashed with SHA-256, and the first 8 bytes of the digest are
// interpreted as a big-endian integer reduced modulo seedModulus.
//
// The output is fully computable by anyone who can predict the block height
// and knows the actor and token id, so it must never be treated as
// unpredictable by an adversary. It exists for auditability and replay, not
// security.
func GenerateSeed(actor string, tokenID uint64, blockHeight uint64) (uint64, error) {
	raw, err := json.Marshal(seedPreimage{
		Actor:       actor,
		TokenID:     tokenID,
		BlockHeight: blockHeight,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to marshal seed preimage: %w", err)
	}

	canonical, err := jcs.Transform(raw)
	if err != nil {
		return 0, fmt.Errorf("failed to canonicalize seed preimage: %w", err)
	}

	digest := sha256.Sum256(canonical)
	return binary.BigEndian.Uint64(digest[:8]) % seedModulus, nil
}
