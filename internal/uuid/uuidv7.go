// Package uuid generates UUIDv7 identifiers. They are time-ordered, so the
// canonical string form sorts by creation time and doubles as the pagination
// cursor throughout the API.
package uuid

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"sync"
	"time"

	googleuuid "github.com/google/uuid"
)

// Format (RFC 9562):
// - 48 bits: Unix timestamp in milliseconds
// - 4 bits: version (0111 = 7)
// - 12 bits: monotonic sequence within the same millisecond
// - 2 bits: variant (10)
// - 62 bits: random data
var (
	mu       sync.Mutex
	lastMill uint64
	lastSeq  uint16
)

// New generates a new UUIDv7 identifier.
//
// Identifiers minted by the same process within the same millisecond carry a
// strictly increasing sequence, so sorting by identifier never disagrees with
// creation order. The call never blocks and never fails.
func New() string {
	var id [16]byte

	millis, seq := nextTick()

	// Timestamp occupies the first 48 bits.
	binary.BigEndian.PutUint64(id[0:8], millis<<16)

	if _, err := rand.Read(id[8:]); err != nil {
		// crypto/rand failing is effectively unreachable; fall back to a
		// plain UUIDv4 rather than returning an error nobody can act on.
		return googleuuid.New().String()
	}

	// Version (0111) plus the 12-bit sequence.
	id[6] = 0x70 | byte(seq>>8)&0x0f
	id[7] = byte(seq)

	// Variant (10).
	id[8] = (id[8] & 0x3f) | 0x80

	return formatUUID(id)
}

// nextTick returns the current millisecond and a sequence number that is
// strictly increasing for identical milliseconds.
func nextTick() (uint64, uint16) {
	mu.Lock()
	defer mu.Unlock()

	millis := uint64(time.Now().UnixMilli())
	if millis == lastMill {
		lastSeq++
		if lastSeq > 0x0fff {
			// Sequence exhausted; borrow the next millisecond.
			millis++
			lastMill = millis
			lastSeq = 0
		}
	} else {
		lastMill = millis
		lastSeq = 0
	}
	return millis, lastSeq
}

// formatUUID formats a 16-byte array as a canonical UUID string.
func formatUUID(id [16]byte) string {
	return fmt.Sprintf("%08x-%04x-%04x-%04x-%012x",
		binary.BigEndian.Uint32(id[0:4]),
		binary.BigEndian.Uint16(id[4:6]),
		binary.BigEndian.Uint16(id[6:8]),
		binary.BigEndian.Uint16(id[8:10]),
		id[10:16],
	)
}

// Parse validates and canonicalizes a UUID string.
func Parse(s string) (string, error) {
	parsed, err := googleuuid.Parse(s)
	if err != nil {
		return "", err
	}
	return parsed.String(), nil
}

// IsValid checks if a string is a valid UUID.
func IsValid(s string) bool {
	_, err := googleuuid.Parse(s)
	return err == nil
}
