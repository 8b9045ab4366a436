package pipeline

import (
	"crypto/rand"
	"encoding/binary"
	"sync"
	"time"
)

// Job IDs are ULIDs: 26 Crockford Base32 characters, millisecond timestamp
// prefix, random tail. Generated locally so IDs sort by creation time.

const crockford = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

var idState struct {
	mu  sync.Mutex
	ms  uint64
	seq uint16
}

func generateULID() string {
	idState.mu.Lock()
	ms := uint64(time.Now().UnixMilli())
	if ms == idState.ms {
		idState.seq++
	} else {
		idState.ms = ms
		idState.seq = 0
	}
	seq := idState.seq
	idState.mu.Unlock()

	var b [16]byte
	binary.BigEndian.PutUint64(b[:8], ms<<16)
	rand.Read(b[6:])
	// The sequence counter keeps IDs distinct within one millisecond.
	binary.BigEndian.PutUint16(b[6:8], seq)
	return encodeBase32(b)
}

// encodeBase32 renders 128 bits as 26 big-endian 5-bit groups. The two
// missing bits pad the front, so the first character only carries the top
// three bits of the timestamp.
func encodeBase32(b [16]byte) string {
	var out [26]byte
	var acc uint64
	bits := 0
	pos := 25
	for i := 15; i >= 0; i-- {
		acc |= uint64(b[i]) << bits
		bits += 8
		for bits >= 5 && pos > 0 {
			out[pos] = crockford[acc&31]
			acc >>= 5
			bits -= 5
			pos--
		}
	}
	out[0] = crockford[acc&31]
	return string(out[:])
}
