// Package fingerprint computes the SHA-256 digests that tie an issued
// certificate to the exact bytes of its rendered document.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// ChunkSize bounds the read buffer so memory stays constant for any document size.
const ChunkSize = 4096

// Size is the length of a hex digest.
const Size = sha256.Size * 2

// Document streams r through SHA-256 and returns the lowercase hex digest.
func Document(r io.Reader) (string, error) {
	h := sha256.New()
	buf := make([]byte, ChunkSize)
	if _, err := io.CopyBuffer(h, r, buf); err != nil {
		return "", fmt.Errorf("failed to read document: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// File hashes the document at path. An unreadable file yields an empty digest
// and the read error.
func File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open document: %w", err)
	}
	defer f.Close()

	return Document(f)
}

// Bytes hashes an in-memory buffer. Bytes(b) equals File(p) whenever p holds exactly b.
func Bytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Verify recomputes the digest of path and compares it with expected.
// A missing or unreadable file is reported as a failed verification; callers
// that must tell "cannot check" apart from "does not match" should call File.
func Verify(path string, expected string) bool {
	digest, err := File(path)
	if err != nil {
		slog.Warn("Fingerprint verify could not read document", "path", path, "error", err)
		return false
	}
	return digest == expected
}

// VerifyReader is Verify for a document that is not on the local disk.
func VerifyReader(r io.Reader, expected string) bool {
	digest, err := Document(r)
	if err != nil {
		return false
	}
	return digest == expected
}
