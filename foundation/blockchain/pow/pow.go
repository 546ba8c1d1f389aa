// Package pow implements the proof of work puzzle used to seal blocks.
package pow

import (
	"context"
	"crypto/sha256"

	"github.com/holiman/uint256"
)

// Difficulty is the number of leading zero bytes the digest of a solved
// puzzle must have. It is fixed for the life of the network.
const Difficulty = 2

// reportEvery controls how often a running search reports progress and
// checks for cancellation.
const reportEvery = 1 << 16

// EventHandler defines a function that is called to report progress.
type EventHandler func(v string, args ...any)

// ValidProof checks if the candidate proof solves the puzzle seeded with the
// previous block's proof. The guess is the 128 bit value with lastProof in
// the high 64 bits and candidate in the low 64 bits, rendered as lowercase
// hex with no leading zeros.
func ValidProof(lastProof uint64, candidate uint64) bool {
	guess := new(uint256.Int).SetUint64(lastProof)
	guess.Lsh(guess, 64)
	guess.Or(guess, new(uint256.Int).SetUint64(candidate))

	// Hex returns the value with a 0x prefix.
	hash := sha256.Sum256([]byte(guess.Hex()[2:]))

	return isHashSolved(hash)
}

// FindProof performs the brute force search for the first candidate, counting
// up from zero, that solves the puzzle for the specified previous proof. The
// search only stops early if the context is cancelled.
func FindProof(ctx context.Context, lastProof uint64, ev EventHandler) (uint64, error) {
	if ev == nil {
		ev = func(string, ...any) {}
	}

	ev("pow: FindProof: started: lastProof[%d]", lastProof)
	defer ev("pow: FindProof: completed: lastProof[%d]", lastProof)

	var candidate uint64
	for {
		if ValidProof(lastProof, candidate) {
			ev("pow: FindProof: SOLVED: proof[%d]", candidate)
			return candidate, nil
		}

		candidate++

		if candidate%reportEvery == 0 {
			ev("pow: FindProof: attempts[%d]", candidate)

			if err := ctx.Err(); err != nil {
				ev("pow: FindProof: CANCELLED")
				return 0, err
			}
		}
	}
}

// isHashSolved checks the digest has the required number of leading zero bytes.
func isHashSolved(hash [sha256.Size]byte) bool {
	for _, b := range hash[:Difficulty] {
		if b != 0 {
			return false
		}
	}

	return true
}
