package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// HashPermutation returns a stable hash of a permutation. Equal permutations
// hash equally regardless of how they were parsed or encoded.
func HashPermutation(p []int) string {
	var b strings.Builder
	b.WriteString("perm/")
	b.WriteString(strconv.Itoa(len(p)))
	for _, v := range p {
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(v))
	}
	return Hash([]byte(b.String()))
}
