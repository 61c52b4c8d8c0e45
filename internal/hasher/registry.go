package hasher

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
	"hash/fnv"
	"maps"
	"slices"

	"github.com/cespare/xxhash/v2"
	"github.com/spaolacci/murmur3"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/blake2s"
	"golang.org/x/crypto/sha3"
)

// DefaultAlgorithm is used when no algorithm is configured.
const DefaultAlgorithm = "md5"

type factory func(name string) (Provider, error)

func std(ctor func() (hash.Hash, error)) factory {
	return func(name string) (Provider, error) { return newStdProvider(name, ctor) }
}

func xxh3Family(wide bool) factory {
	return func(name string) (Provider, error) { return newXXH3Provider(name, wide) }
}

var registry = map[string]factory{
	// crypto
	"md5":        std(plain(md5.New)),
	"sha1":       std(plain(sha1.New)),
	"sha224":     std(plain(sha256.New224)),
	"sha256":     std(plain(sha256.New)),
	"sha384":     std(plain(sha512.New384)),
	"sha512":     std(plain(sha512.New)),
	"sha512_224": std(plain(sha512.New512_224)),
	"sha512_256": std(plain(sha512.New512_256)),

	// x/crypto
	"sha3_224":    std(plain(sha3.New224)),
	"sha3_256":    std(plain(sha3.New256)),
	"sha3_384":    std(plain(sha3.New384)),
	"sha3_512":    std(plain(sha3.New512)),
	"blake2b":     std(unkeyed(blake2b.New512)),
	"blake2b_256": std(unkeyed(blake2b.New256)),
	"blake2b_384": std(unkeyed(blake2b.New384)),
	"blake2s":     std(unkeyed(blake2s.New256)),

	// fnv
	"fnv1_32":   std(plain(fnv.New32)),
	"fnv1_64":   std(plain(fnv.New64)),
	"fnv1_128":  std(plain(fnv.New128)),
	"fnv1a_32":  std(plain(fnv.New32a)),
	"fnv1a_64":  std(plain(fnv.New64a)),
	"fnv1a_128": std(plain(fnv.New128a)),

	// murmur
	"murmur3_32":      std(plain(murmur3.New32)),
	"murmur3_64":      std(plain(murmur3.New64)),
	"murmur3_x64_128": std(plain(murmur3.New128)),
	"mmh3":            std(plain(murmur3.New32)),

	// xxhash
	"xxh64":    std(plain(xxhash.New)),
	"xxh3":     xxh3Family(false),
	"xxh3_64":  xxh3Family(false),
	"xxh3_128": xxh3Family(true),
}

// New resolves an algorithm name to a Provider.
func New(name string) (Provider, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, name)
	}
	return f(name)
}

// MustNew is New for algorithm names known at compile time.
func MustNew(name string) Provider {
	p, err := New(name)
	if err != nil {
		panic(err)
	}
	return p
}

// Supported reports whether name is in the registry.
func Supported(name string) bool {
	_, ok := registry[name]
	return ok
}

// Algorithms lists every registered algorithm name, sorted.
func Algorithms() []string {
	return slices.Sorted(maps.Keys(registry))
}
