package hasher

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/zeebo/xxh3"
)

// xxh3Provider uses the one-shot xxh3 functions for whole hashes, which skip
// the streaming state entirely, and the streaming Hasher for everything else.
type xxh3Provider struct {
	name string
	wide bool
}

type xxh3Hasher struct {
	h    *xxh3.Hasher
	wide bool
}

func newXXH3Provider(name string, wide bool) (Provider, error) {
	return &xxh3Provider{name: name, wide: wide}, nil
}

func (p *xxh3Provider) Name() string { return p.name }

func (p *xxh3Provider) Hash(b []byte) string {
	if p.wide {
		sum := xxh3.Hash128(b).Bytes()
		return hex.EncodeToString(sum[:])
	}
	return encode64(xxh3.Hash(b))
}

func (p *xxh3Provider) New() Hasher {
	return &xxh3Hasher{h: xxh3.New(), wide: p.wide}
}

func (h *xxh3Hasher) Update(b []byte) {
	h.h.Write(b)
}

func (h *xxh3Hasher) Sum() string {
	if h.wide {
		sum := h.h.Sum128().Bytes()
		return hex.EncodeToString(sum[:])
	}
	return encode64(h.h.Sum64())
}

func encode64(v uint64) string {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	return hex.EncodeToString(buf[:])
}
