// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package audit computes file content hashes for traceability and
// optionally persists per-file processing records to a local SQLite trail.
package audit

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"time"
)

// FileRecord is the audit entry for one processed file: where it came from,
// where the result went, and the content digests tying the two together.
type FileRecord struct {
	SourcePath   string    `json:"source_path" yaml:"source_path"`
	ResultPath   string    `json:"result_path" yaml:"result_path"`
	Pages        int       `json:"pages" yaml:"pages"`
	SourceSHA256 string    `json:"source_sha256" yaml:"source_sha256"`
	ResultSHA256 string    `json:"result_sha256" yaml:"result_sha256"`
	ProcessedAt  time.Time `json:"processed_at" yaml:"processed_at"`
}

// HashFile returns the hex-encoded SHA-256 digest of the file contents at
// path. The file is streamed through the digest.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hashing %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
