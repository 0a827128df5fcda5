package helpers

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
)

// SHA256 returns the hex encoded sha256 digest of input.
func SHA256(input []byte) string {
	sum := sha256.Sum256(input)
	return hex.EncodeToString(sum[:])
}

// SHA256Reader hashes everything read from r.
func SHA256Reader(r io.Reader) (string, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// ShortID truncates the digest of input to n characters. A non-positive n, or one
// longer than the digest, returns the full digest.
func ShortID(input []byte, n int) string {
	id := SHA256(input)
	if n > 0 && n < len(id) {
		return id[:n]
	}
	return id
}
