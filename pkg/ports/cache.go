package ports

import (
	"context"
	"encoding/binary"
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// DocumentCache stores rendered documents keyed by Key.
type DocumentCache interface {
	// Get returns the document stored under key.
	// Returns domain.ErrCacheMiss if the key is not present.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores doc under key, replacing any previous value.
	Put(ctx context.Context, key string, doc []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// keyContext separates cache keys from other BLAKE3 digests of the same bytes.
const keyContext = "eventgrid 2026 textgrid cache key"

// Key derives a cache key from an event log and the rendering parameters that
// shape its output. Parts are length-prefixed so that ("ab","c") and ("a","bc")
// produce different keys.
func Key(input []byte, params ...string) string {
	h := blake3.NewDeriveKey(keyContext)
	writePart(h, input)
	for _, p := range params {
		writePart(h, []byte(p))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Digest returns the hex BLAKE3 digest of a rendered document, used as ETag.
func Digest(doc []byte) string {
	sum := blake3.Sum256(doc)
	return hex.EncodeToString(sum[:])
}

func writePart(h *blake3.Hasher, p []byte) {
	var n [8]byte
	binary.LittleEndian.PutUint64(n[:], uint64(len(p)))
	_, _ = h.Write(n[:])
	_, _ = h.Write(p)
}
