// Package id issues run identifiers.
package id

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"fmt"
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
	var seed int64
	_ = binary.Read(cryptoRand.Reader, binary.LittleEndian, &seed)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	entropy = ulid.Monotonic(rand.New(rand.NewSource(seed)), 0)
}

// NewRun returns a ULID for a run started now. IDs sort by start time, so
// report files named after them list in run order.
func NewRun() string {
	return NewRunAt(time.Now())
}

// NewRunAt returns a ULID stamped with t. IDs issued within the same
// millisecond are still strictly increasing.
func NewRunAt(t time.Time) string {
	mu.Lock()
	defer mu.Unlock()

	return ulid.MustNew(ulid.Timestamp(t.UTC()), entropy).String()
}

// RunTime recovers the start time stamped into a run ID.
func RunTime(runID string) (time.Time, error) {
	u, err := ulid.ParseStrict(runID)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse run id %q: %w", runID, err)
	}
	return ulid.Time(u.Time()).UTC(), nil
}
