package database

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// HashLength is the number of bytes in a block hash.
const HashLength = 32

// BlockHash is the SHA-256 digest of a block. It is marshaled as a lowercase
// hex string without a 0x prefix.
type BlockHash [HashLength]byte

// ZeroHash represents a hash code of zeros. It is the previous hash of the
// genesis block.
var ZeroHash BlockHash

// String returns the lowercase hex representation of the hash.
func (h BlockHash) String() string {
	return hex.EncodeToString(h[:])
}

// IsZero reports whether the hash is all zeros.
func (h BlockHash) IsZero() bool {
	return h == ZeroHash
}

// Equal compares two hashes byte for byte.
func (h BlockHash) Equal(other BlockHash) bool {
	return bytes.Equal(h[:], other[:])
}

// MarshalText implements the encoding.TextMarshaler interface.
func (h BlockHash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface. Only
// exactly 64 hex characters with no prefix are accepted.
func (h *BlockHash) UnmarshalText(text []byte) error {
	hash, err := ToBlockHash(string(text))
	if err != nil {
		return err
	}

	*h = hash
	return nil
}

// ToBlockHash parses the hex form of a block hash.
func ToBlockHash(s string) (BlockHash, error) {
	if len(s) != HashLength*2 {
		return BlockHash{}, fmt.Errorf("hash %q: invalid length %d, exp %d", s, len(s), HashLength*2)
	}

	b, err := hexutil.Decode("0x" + s)
	if err != nil {
		return BlockHash{}, fmt.Errorf("hash %q: %w", s, err)
	}

	var hash BlockHash
	copy(hash[:], b)

	return hash, nil
}
