package ulid

import (
	"io"
	"math/rand"
	"regexp"
	"strconv"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	entropy     io.Reader
	entropyOnce sync.Once

	mu        sync.Mutex
	generator = DefaultGenerator
)

// DefaultEntropy returns a reader that generates monotonic ULID entropy.
// Two ids generated within the same millisecond still sort in creation order.
func DefaultEntropy() io.Reader {
	entropyOnce.Do(func() {
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))

		entropy = &ulid.LockedMonotonicReader{
			MonotonicReader: ulid.Monotonic(rng, 0),
		}
	})
	return entropy
}

// Crockford's Base32 (excludes I, L, O, and U). The alphabet has no "-",
// which keeps ids safe inside dash-delimited field identifiers.
var ulidRegex = regexp.MustCompile(`^[0123456789ABCDEFGHJKMNPQRSTVWXYZ]{26}$`)

// ValidID checks if the given id is a canonical ULID.
func ValidID(id string) bool {
	_, err := ulid.Parse(id)
	return err == nil && ulidRegex.MatchString(id)
}

// GenerateID generates a new id for a content block or a resource.
func GenerateID() string {
	mu.Lock()
	g := generator
	mu.Unlock()
	return g()
}

func DefaultGenerator() string {
	entropy := DefaultEntropy()
	ts := ulid.Timestamp(time.Now())
	return ulid.MustNew(ts, entropy).String()
}

func ResetGenerator() {
	mu.Lock()
	defer mu.Unlock()
	generator = DefaultGenerator
}

// MockGenerator makes GenerateID return mockValue on every call.
func MockGenerator(mockValue string) {
	mu.Lock()
	defer mu.Unlock()
	generator = func() string {
		return mockValue
	}
}

// SequenceGenerator makes GenerateID return start, start+1, ... as decimal
// strings, resembling the timestamp-derived ids of hand-written documents.
func SequenceGenerator(start int) {
	var (
		seqMu sync.Mutex
		next  = start
	)
	mu.Lock()
	defer mu.Unlock()
	generator = func() string {
		seqMu.Lock()
		defer seqMu.Unlock()
		id := strconv.Itoa(next)
		next++
		return id
	}
}
