// Package id mints the identifiers for ledger records. Strategies, trades
// and overlay positions all key on ULIDs, so primary keys sort by creation
// time and stay friendly to SQLite's b-tree.
package id

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	mu      sync.Mutex
	entropy io.Reader
)

func init() {
	// The monotonic reader wants a PRNG; seed it from crypto/rand so ids
	// are not guessable across runs.
	var seed int64
	_ = binary.Read(cryptorand.Reader, binary.LittleEndian, &seed)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	entropy = ulid.Monotonic(rand.New(rand.NewSource(seed)), 0)
}

// New returns a fresh ULID string. Ids minted within the same millisecond
// remain lexicographically increasing.
func New() string {
	mu.Lock()
	defer mu.Unlock()

	u, err := ulid.New(ulid.Timestamp(time.Now().UTC()), entropy)
	if err != nil {
		// Reachable only if the entropy source fails.
		panic(err)
	}
	return u.String()
}
