package perm

import (
	"crypto/sha256"
	"encoding/binary"

	"golang.org/x/crypto/chacha20"
)

// FromKey derives a pseudo-random permutation of size n from key.
//
// The key is hashed with SHA-256 to a ChaCha20 key with an all-zero nonce.
// The keystream drives a Fisher-Yates shuffle using rejection sampling, so
// every permutation is equally likely and the same key always yields the same
// permutation. This is reproducible test and benchmark input, not a
// cryptographic primitive.
func FromKey(key []byte, n int) []int {
	p := Seq(n)
	if n < 2 {
		return p
	}
	ks := newKeystream(key)
	for i := n - 1; i > 0; i-- {
		j := ks.uniform(uint64(i + 1))
		p[i], p[j] = p[j], p[i]
	}
	return p
}

type keystream struct {
	c   *chacha20.Cipher
	buf [8]byte
}

func newKeystream(key []byte) *keystream {
	sum := sha256.Sum256(key)
	nonce := make([]byte, chacha20.NonceSize)
	c, err := chacha20.NewUnauthenticatedCipher(sum[:], nonce)
	if err != nil {
		// Key and nonce lengths are fixed above.
		panic(err)
	}
	return &keystream{c: c}
}

func (k *keystream) next() uint64 {
	clear(k.buf[:])
	k.c.XORKeyStream(k.buf[:], k.buf[:])
	return binary.LittleEndian.Uint64(k.buf[:])
}

// uniform returns a value in [0, bound) without modulo bias.
func (k *keystream) uniform(bound uint64) uint64 {
	limit := ^uint64(0) - (^uint64(0) % bound)
	for {
		v := k.next()
		if v < limit {
			return v % bound
		}
	}
}
