package signature

import (
	"fmt"
	"regexp"
	"sync/atomic"
	"time"
)

const (
	// DefaultRequestIDPrefix marks identifiers produced by this client.
	DefaultRequestIDPrefix = "RID"

	// MaxRequestIDLength is the longest requestId NAV accepts.
	MaxRequestIDLength = 30

	requestIDClockDigits = 20 // yyyyMMddHHmmss + microseconds
)

var requestIDPrefixRe = regexp.MustCompile(`^[+a-zA-Z0-9_]*$`)

// defaultRequestIDs is shared by every Builder created without WithRequestIDGenerator,
// so identifiers stay distinct across builders within one process.
var defaultRequestIDs = &RequestIDGenerator{prefix: DefaultRequestIDPrefix}

// RequestIDGenerator derives request identifiers from clock readings.
//
// Each identifier is the prefix followed by the UTC instant down to the
// microsecond. If a reading is not later than the previous one, the
// generator moves one microsecond past the last issued value, so two calls
// never yield the same identifier even within the same clock tick.
// Safe for concurrent use.
type RequestIDGenerator struct {
	prefix string
	last   atomic.Int64 // unix microseconds of the last issued identifier
}

// NewRequestIDGenerator validates prefix against NAV's requestId alphabet and length.
func NewRequestIDGenerator(prefix string) (*RequestIDGenerator, error) {
	if !requestIDPrefixRe.MatchString(prefix) {
		return nil, fmt.Errorf("request id prefix %q contains characters outside [+a-zA-Z0-9_]", prefix)
	}
	if len(prefix)+requestIDClockDigits > MaxRequestIDLength {
		return nil, fmt.Errorf("request id prefix %q too long, at most %d characters allowed",
			prefix, MaxRequestIDLength-requestIDClockDigits)
	}
	return &RequestIDGenerator{prefix: prefix}, nil
}

// Next returns a fresh identifier for the instant now.
func (g *RequestIDGenerator) Next(now time.Time) string {
	us := g.reserve(now.UnixMicro())
	t := time.UnixMicro(us).UTC()
	return fmt.Sprintf("%s%s%06d", g.prefix, t.Format("20060102150405"), t.Nanosecond()/int(time.Microsecond))
}

func (g *RequestIDGenerator) reserve(us int64) int64 {
	for {
		last := g.last.Load()
		next := us
		if next <= last {
			next = last + 1
		}
		if g.last.CompareAndSwap(last, next) {
			return next
		}
	}
}
