package hasher

// Hasher accumulates bytes and produces one digest. It is not safe for
// concurrent use; each file scan gets its own.
type Hasher interface {
	Update(p []byte)
	Sum() string
}

// Provider is a resolved hash algorithm. Providers hold no per-scan state and
// can be shared freely; every call to New returns an independent Hasher.
type Provider interface {
	Name() string
	Hash(p []byte) string
	New() Hasher
}
