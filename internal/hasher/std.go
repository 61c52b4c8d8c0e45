package hasher

import (
	"encoding/hex"
	"fmt"
	"hash"
)

// stdProvider covers every backend that hands out a hash.Hash: the crypto
// packages, x/crypto, hash/fnv, murmur3 and xxhash64.
type stdProvider struct {
	name string
	ctor func() (hash.Hash, error)
}

type stdHasher struct {
	h hash.Hash
}

func newStdProvider(name string, ctor func() (hash.Hash, error)) (Provider, error) {
	// Keyed constructors can fail; probe once so the failure surfaces at
	// resolution instead of in the middle of a scan.
	if _, err := ctor(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnsupportedAlgorithm, name, err)
	}
	return &stdProvider{name: name, ctor: ctor}, nil
}

func (p *stdProvider) Name() string { return p.name }

func (p *stdProvider) Hash(b []byte) string {
	h := p.New()
	h.Update(b)
	return h.Sum()
}

func (p *stdProvider) New() Hasher {
	h, err := p.ctor()
	if err != nil {
		panic(fmt.Sprintf("hasher: %s backend failed after successful probe: %v", p.name, err))
	}
	return &stdHasher{h: h}
}

func (h *stdHasher) Update(b []byte) {
	// hash.Hash.Write never returns an error.
	h.h.Write(b)
}

func (h *stdHasher) Sum() string {
	return hex.EncodeToString(h.h.Sum(nil))
}

// plain adapts an infallible constructor.
func plain[H hash.Hash](ctor func() H) func() (hash.Hash, error) {
	return func() (hash.Hash, error) { return ctor(), nil }
}

// unkeyed adapts the x/crypto blake2 constructors, which take an optional key.
func unkeyed(ctor func(key []byte) (hash.Hash, error)) func() (hash.Hash, error) {
	return func() (hash.Hash, error) { return ctor(nil) }
}
