package pipeline

import (
	"errors"
	"math/rand"
	"time"

	"github.com/transudeck/transudeck/internal/genai"
)

// MaxRetries bounds summarize attempts per chunk.
const MaxRetries = 3

const maxBackoff = 30 * time.Second

// IsRetryable reports whether err is a transient provider failure.
func IsRetryable(err error) bool {
	var re *genai.RetryableError
	return errors.As(err, &re)
}

// Backoff is exponential in the attempt number (0-indexed), capped, with up
// to 50% added jitter.
func Backoff(attempt int) time.Duration {
	d := min(time.Second<<uint(attempt), maxBackoff)
	return d + time.Duration(rand.Int63n(int64(d)/2))
}
