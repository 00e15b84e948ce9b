package cuid2

import (
	"encoding/binary"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// Generator produces identifiers. It is safe for concurrent use; after
// initialization the only shared mutable state is its counter.
//
// Independent Generators share nothing, which makes them suitable for tests
// that need isolated state.
type Generator struct {
	source      EntropySource
	clock       func() time.Time
	randomBytes int
	salt        []byte

	mu    sync.Mutex
	ready atomic.Bool
	fp    Fingerprint

	counter Counter

	// observe, when set, receives every counter value taken by Generate.
	observe func(counter uint64)
}

// randomPool holds scratch buffers for the per-call random bytes, which
// would otherwise escape through the EntropySource interface.
var randomPool = sync.Pool{
	New: func() any { return new([MaxRandomBytes]byte) },
}

// Option configures a Generator.
type Option func(*Generator)

// WithEntropySource replaces the default CryptoSource.
func WithEntropySource(src EntropySource) Option {
	return func(g *Generator) {
		g.source = src
	}
}

// WithClock replaces time.Now as the timestamp source.
func WithClock(clock func() time.Time) Option {
	return func(g *Generator) {
		g.clock = clock
	}
}

// WithRandomBytes sets how many random bytes are mixed into each
// identifier. Values are clamped to [MinRandomBytes, MaxRandomBytes].
func WithRandomBytes(n int) Option {
	return func(g *Generator) {
		g.randomBytes = min(max(n, MinRandomBytes), MaxRandomBytes)
	}
}

// WithSalt mixes salt into the fingerprint.
func WithSalt(salt []byte) Option {
	return func(g *Generator) {
		g.salt = append([]byte(nil), salt...)
	}
}

// New creates a Generator. Initialization is deferred until Initialize or
// the first Generate call.
func New(opts ...Option) *Generator {
	g := &Generator{
		source:      CryptoSource{},
		clock:       time.Now,
		randomBytes: DefaultRandomBytes,
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Initialize computes the fingerprint and seeds the counter. It is safe to
// call more than once and from multiple goroutines: only the first
// successful call has an effect. A failed attempt is not cached and the
// next call tries again.
func (g *Generator) Initialize() error {
	if g.ready.Load() {
		return nil
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.ready.Load() {
		return nil
	}

	fp, err := NewFingerprint(g.source, g.salt)
	if err != nil {
		return fmt.Errorf("%w: fingerprint: %w", ErrInitializationFailed, err)
	}

	var seed [4]byte
	if err := fillFrom(g.source, seed[:]); err != nil {
		return fmt.Errorf("%w: counter seed: %w", ErrInitializationFailed, err)
	}

	g.fp = fp
	g.counter.Reset(uint64(binary.BigEndian.Uint32(seed[:])))
	g.ready.Store(true)

	return nil
}

// Fingerprint returns the generator's fingerprint, initializing it if
// needed.
func (g *Generator) Fingerprint() (Fingerprint, error) {
	if err := g.Initialize(); err != nil {
		return Fingerprint{}, err
	}
	return g.fp, nil
}

// Generate returns a new identifier. On failure it returns an empty string
// and an error wrapping ErrGenerationFailed and the underlying cause.
func (g *Generator) Generate() (string, error) {
	if err := g.Initialize(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	n := g.counter.Next()
	if g.observe != nil {
		g.observe(n)
	}

	buf := randomPool.Get().(*[MaxRandomBytes]byte)
	defer randomPool.Put(buf)

	random := buf[:g.randomBytes]
	if err := fillFrom(g.source, random); err != nil {
		return "", fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	digest := Mix(g.clock(), n, g.fp, random)
	return encodeDigest(&digest), nil
}
