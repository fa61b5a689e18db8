// Package digest computes content checksums of downloaded files.
package digest

import (
	"bytes"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"os"
	"strings"

	"github.com/aleister1102/mirrorcheck/internal/common"
)

// Algorithm names a supported hash function
type Algorithm string

const (
	MD5    Algorithm = "md5"
	SHA1   Algorithm = "sha1"
	SHA256 Algorithm = "sha256"
	SHA512 Algorithm = "sha512"
)

// ErrUnsupportedAlgorithm is returned for algorithm names outside the supported set
var ErrUnsupportedAlgorithm = errors.New("unsupported digest algorithm")

// ParseAlgorithm resolves a case-insensitive algorithm name. Empty means MD5.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch Algorithm(strings.ToLower(strings.TrimSpace(name))) {
	case "", MD5:
		return MD5, nil
	case SHA1:
		return SHA1, nil
	case SHA256:
		return SHA256, nil
	case SHA512:
		return SHA512, nil
	default:
		return "", fmt.Errorf("%w: '%s'", ErrUnsupportedAlgorithm, name)
	}
}

func (a Algorithm) newHash() hash.Hash {
	switch a {
	case SHA1:
		return sha1.New()
	case SHA256:
		return sha256.New()
	case SHA512:
		return sha512.New()
	default:
		return md5.New()
	}
}

// Digest is the checksum of one file's content at the time it was read.
type Digest struct {
	Algorithm Algorithm
	Sum       []byte
}

// Hex returns the lowercase hex encoding of the sum
func (d Digest) Hex() string {
	return hex.EncodeToString(d.Sum)
}

// String formats the digest as "<algorithm>:<hex>"
func (d Digest) String() string {
	return string(d.Algorithm) + ":" + d.Hex()
}

// IsZero reports whether no sum has been computed
func (d Digest) IsZero() bool {
	return len(d.Sum) == 0
}

// Equal reports whether both digests use the same algorithm and have the same sum.
func (d Digest) Equal(other Digest) bool {
	return d.Algorithm == other.Algorithm && !d.IsZero() && bytes.Equal(d.Sum, other.Sum)
}

// Calculator hashes files in fixed-size chunks drawn from a shared pool.
type Calculator struct {
	algorithm Algorithm
	pool      *common.ChunkPool
}

// NewCalculator creates a Calculator for algorithm reading chunkSize bytes at a time.
// A non-positive chunkSize falls back to the pool default.
func NewCalculator(algorithm Algorithm, chunkSize int) (*Calculator, error) {
	algo, err := ParseAlgorithm(string(algorithm))
	if err != nil {
		return nil, err
	}
	return &Calculator{
		algorithm: algo,
		pool:      common.NewChunkPool(chunkSize),
	}, nil
}

// Algorithm returns the hash function in use
func (c *Calculator) Algorithm() Algorithm {
	return c.algorithm
}

// Digest hashes the file at path.
func (c *Calculator) Digest(path string) (Digest, error) {
	f, err := os.Open(path)
	if err != nil {
		return Digest{}, common.WrapError(err, "failed to open file for digest")
	}
	defer func() { _ = f.Close() }()

	return c.DigestReader(f)
}

// DigestReader hashes everything readable from r.
func (c *Calculator) DigestReader(r io.Reader) (Digest, error) {
	h := c.algorithm.newHash()

	buf := c.pool.Get()
	defer c.pool.Put(buf)

	// wrappers hide WriterTo/ReaderFrom so reads always go through buf
	if _, err := io.CopyBuffer(struct{ io.Writer }{h}, struct{ io.Reader }{r}, *buf); err != nil {
		return Digest{}, common.WrapError(err, "failed to read content for digest")
	}

	return Digest{Algorithm: c.algorithm, Sum: h.Sum(nil)}, nil
}
