package vocab

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Seed is the initial state of the bitwise hash.
const Seed uint32 = 1159241

// Hash names accepted by HashByName.
const (
	HashBitwise = "bitwise"
	HashXX      = "xxhash"
)

// HashFunc maps a token to a 31-bit value. The table reduces it modulo its bucket count.
type HashFunc func(token []byte) uint32

// BitwiseHash is the shift-xor hash used by the GloVe tools.
func BitwiseHash(token []byte) uint32 {
	h := Seed
	for _, c := range token {
		h ^= (h << 5) + uint32(c) + (h >> 2)
	}
	return h & 0x7fffffff
}

// XXHash folds the 64-bit xxhash digest of token into 31 bits.
func XXHash(token []byte) uint32 {
	d := xxhash.Sum64(token)
	return uint32(d^(d>>32)) & 0x7fffffff
}

// HashByName resolves a configured hash name.
func HashByName(name string) (HashFunc, error) {
	switch name {
	case "", HashBitwise:
		return BitwiseHash, nil
	case HashXX:
		return XXHash, nil
	default:
		return nil, fmt.Errorf("unknown hash %q (supported: %s, %s)", name, HashBitwise, HashXX)
	}
}
