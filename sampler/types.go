package sampler

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"
)

// Sampler draws integers from exact discrete Laplace and discrete Gaussian
// distributions, backed by a deterministic keystream derived from a seed.
//
// The seed itself is drawn from crypto/rand.Reader when the caller has none
// to resume from. Checkpoint persists both the seed and the number of
// keystream bytes already consumed (Consumed); NewSamplerAt replays the
// same seed and discards that many bytes before resuming, so a resumed run
// never re-reads keystream output an earlier run already drew noise from —
// rebuilding a Sampler from the seed alone, with no offset, would silently
// replay the same bytes for newly added nodes whenever they share a level's
// privacy parameters with already-measured ones.
type Sampler struct {
	seed     []byte
	stream   cipher.Stream
	consumed uint64
}

// zeroReader is an io.Reader that always fills p with zero bytes. XOR-ing a
// keystream against zeros yields the keystream itself, turning any
// cipher.Stream into a deterministic byte source.
type zeroReader struct{}

func (zeroReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	return len(p), nil
}

// discardChunkSize bounds the buffer used to advance a freshly built stream
// past already-consumed bytes, so resuming a run that consumed a large
// offset does not allocate a buffer that large in one shot.
const discardChunkSize = 4096

// NewSampler builds a Sampler from an explicit seed (for resume) or, if seed
// is nil, from fresh cryptographically secure randomness. The stream starts
// at offset zero; use NewSamplerAt to resume one that already consumed
// keystream output.
func NewSampler(seed []byte) (*Sampler, error) {
	return NewSamplerAt(seed, 0)
}

// NewSamplerAt builds a Sampler from seed (or fresh randomness if seed is
// nil) and discards the first consumed bytes of its keystream, so the
// returned Sampler's next draw continues exactly where a checkpointed run
// left off.
func NewSamplerAt(seed []byte, consumed uint64) (*Sampler, error) {
	if seed == nil {
		seed = make([]byte, 32)
		if _, err := io.ReadFull(rand.Reader, seed); err != nil {
			return nil, fmt.Errorf("sampler: reading seed: %w", err)
		}
	}

	key := sha256.Sum256(seed)
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("sampler: deriving stream cipher: %w", err)
	}
	iv := make([]byte, aes.BlockSize)
	stream := cipher.NewCTR(block, iv)

	s := &Sampler{seed: append([]byte(nil), seed...), stream: stream}
	s.discard(consumed)
	s.consumed = consumed
	return s, nil
}

// discard advances the stream past n bytes without recording them as
// Consumed (callers set that explicitly once the full offset is applied).
func (s *Sampler) discard(n uint64) {
	buf := make([]byte, discardChunkSize)
	for n > 0 {
		chunk := uint64(len(buf))
		if n < chunk {
			chunk = n
		}
		s.stream.XORKeyStream(buf[:chunk], buf[:chunk])
		n -= chunk
	}
}

// Seed returns the seed this Sampler was constructed from, for persistence.
func (s *Sampler) Seed() []byte { return append([]byte(nil), s.seed...) }

// Consumed returns the number of keystream bytes this Sampler has handed
// out so far, for persistence alongside Seed so a resumed run can discard
// the same number of bytes before drawing again.
func (s *Sampler) Consumed() uint64 { return s.consumed }

// reader exposes the Sampler's deterministic keystream as an io.Reader
// suitable for crypto/rand.Int, which performs unbiased rejection sampling
// against whatever reader it is given. Every byte it yields is counted in
// Consumed.
func (s *Sampler) reader() io.Reader {
	return &countingReader{s: s, inner: &cipher.StreamReader{S: s.stream, R: zeroReader{}}}
}

// countingReader wraps the Sampler's keystream reader to track exactly how
// many bytes have been drawn, regardless of which call site (rand.Int may
// read a variable number of bytes depending on the requested bound) pulled
// them.
type countingReader struct {
	s     *Sampler
	inner io.Reader
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.inner.Read(p)
	c.s.consumed += uint64(n)
	return n, err
}
