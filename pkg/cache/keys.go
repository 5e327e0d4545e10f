package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// SolveKeyOpts carries the scenario settings that change a solve's outcome.
// Two runs with equal board text and equal opts are interchangeable.
type SolveKeyOpts struct {
	Pattern string `json:"pattern"`
	Drop    string `json:"drop"`
	Hold    bool   `json:"hold"`
}

// Keyer derives cache keys for solve results.
type Keyer interface {
	// CountKey keys a solution-count result for a board.
	CountKey(board string, opts SolveKeyOpts) string

	// PossibleKey keys an accepted-order result for a board.
	PossibleKey(board string, opts SolveKeyOpts) string
}

// DefaultKeyer hashes the board text and opts into namespaced keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// CountKey generates a key for solution-count caching.
func (k *DefaultKeyer) CountKey(board string, opts SolveKeyOpts) string {
	return hashKey("count", board, opts)
}

// PossibleKey generates a key for accepted-order caching.
func (k *DefaultKeyer) PossibleKey(board string, opts SolveKeyOpts) string {
	return hashKey("possible", board, opts)
}

// ScopedKeyer wraps a Keyer with a prefix, giving callers sharing one
// backend separate namespaces.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to every generated
// key. A nil inner falls back to the default keyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// CountKey generates a prefixed solution-count key.
func (k *ScopedKeyer) CountKey(board string, opts SolveKeyOpts) string {
	return k.prefix + k.inner.CountKey(board, opts)
}

// PossibleKey generates a prefixed accepted-order key.
func (k *ScopedKeyer) PossibleKey(board string, opts SolveKeyOpts) string {
	return k.prefix + k.inner.PossibleKey(board, opts)
}

// hashKey builds a key of the form prefix:hash(parts...).
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash returns the SHA-256 of data as a 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
