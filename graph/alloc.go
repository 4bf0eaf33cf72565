package graph

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/engindearing/pbxgraph/debug"
)

// idWidth is the fixed identifier width of the dialect: 24 uppercase
// hex characters.
const idWidth = 24

const allocRetries = 64

// Allocator mints identifiers absent from its Registry. With a seed it
// is deterministic: the same seed over the same registry state yields
// the same identifier, so repeated regeneration runs produce identical
// output and minimal diffs. Without a seed it draws random identifiers.
//
// A seeded allocation that collides with an existing identifier falls
// back to a random one and records a Warning; it never reuses the
// colliding identifier.
type Allocator struct {
	reg *Registry

	mu       sync.Mutex
	warnings []Warning
}

// Warning records a seeded allocation that had to fall back to a random
// identifier.
type Warning struct {
	Seed string
	ID   string
}

func NewAllocator(reg *Registry) *Allocator {
	return &Allocator{reg: reg}
}

// Allocate returns a fresh identifier and inserts it into the Registry
// atomically: no two calls within one Document lifetime return the same
// value, even when called concurrently.
func (a *Allocator) Allocate(seed string) (string, error) {
	if seed != "" {
		id := SeededID(seed)
		if a.reg.Add(id) {
			return id, nil
		}
		if debug.Alloc() {
			debug.Logf("seed %q collided on %s, falling back to random", seed, id)
		}
		rid, err := a.random()
		if err != nil {
			return "", &IdentifierCollisionError{Seed: seed, Retries: allocRetries}
		}
		a.mu.Lock()
		a.warnings = append(a.warnings, Warning{Seed: seed, ID: rid})
		a.mu.Unlock()
		return rid, nil
	}
	id, err := a.random()
	if err != nil {
		return "", &IdentifierCollisionError{Retries: allocRetries}
	}
	return id, nil
}

func (a *Allocator) random() (string, error) {
	for range allocRetries {
		id := randomID()
		if a.reg.Add(id) {
			return id, nil
		}
	}
	return "", &IdentifierCollisionError{Retries: allocRetries}
}

// Warnings drains and returns the seeded-collision warnings recorded so
// far.
func (a *Allocator) Warnings() []Warning {
	a.mu.Lock()
	defer a.mu.Unlock()
	w := a.warnings
	a.warnings = nil
	return w
}

// SeededID is the deterministic digest of a seed string, truncated and
// cased to the dialect's identifier shape.
func SeededID(seed string) string {
	sum := md5.Sum([]byte(seed))
	return strings.ToUpper(hex.EncodeToString(sum[:]))[:idWidth]
}

func randomID() string {
	u := uuid.New()
	return strings.ToUpper(hex.EncodeToString(u[:]))[:idWidth]
}

// IsID reports whether a bare scalar has the identifier shape. The
// parser uses this to tell references apart from numbers and strings.
func IsID(s string) bool {
	if len(s) != idWidth {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= '0' && c <= '9') || (c >= 'A' && c <= 'F') {
			continue
		}
		return false
	}
	return true
}
