// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package enumerate implements the folder processor: it discovers PDF files
// in configured folders and appends a page-number footer to every page of
// each one, writing results to a sibling results/ directory.
package enumerate

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pdiddy/pdf-enumerator/internal/audit"
	"github.com/pdiddy/pdf-enumerator/internal/overlay"
	"github.com/pdiddy/pdf-enumerator/pkg/types"
)

const (
	resultsDir   = "results"
	resultSuffix = "_enumerated"
	tempSuffix   = "_temp_enumerated"
)

// Recorder persists one audit entry per processed file. Implemented by
// audit.Store; a nil Recorder disables persistence.
type Recorder interface {
	Record(ctx context.Context, rec audit.FileRecord) error
}

// Processor walks a list of folders and enumerates every PDF found in them,
// one file at a time.
type Processor struct {
	// Folders are processed in order; each is scanned non-recursively.
	Folders []string

	// Overlay configures the footer drawn on the numbering layer.
	Overlay types.OverlayConfig

	// ContinueOnError keeps the batch going after a file fails instead of
	// aborting on the first error.
	ContinueOnError bool

	// Logger receives debug-level progress and hash lines. Defaults to
	// slog.Default.
	Logger *slog.Logger

	// Recorder, if set, receives one audit entry per processed file.
	Recorder Recorder
}

// BatchResult summarizes an enumeration run.
type BatchResult struct {
	Processed int
	Failed    int
}

// Total returns the total number of files attempted.
func (r BatchResult) Total() int {
	return r.Processed + r.Failed
}

// HasFailures reports whether any files failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// FindAllFiles returns the PDF files directly inside folder, sorted
// lexicographically for a deterministic processing order. The match is a
// non-recursive *.pdf glob.
func FindAllFiles(folder string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(folder, "*.pdf"))
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", folder, err)
	}
	sort.Strings(matches)
	return matches, nil
}

func (p *Processor) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}

// Run processes every folder in order, writing per-file status lines and a
// batch summary to w. By default the first failing file aborts the run;
// with ContinueOnError the failure is counted and the batch moves on. The
// summary line is written on every exit path, aborted runs included.
func (p *Processor) Run(ctx context.Context, w io.Writer) (BatchResult, error) {
	var result BatchResult

	for _, folder := range p.Folders {
		p.logger().Debug("start processing folder", "path", folder)

		files, err := FindAllFiles(folder)
		if err != nil {
			writeSummary(w, result)
			return result, err
		}

		for _, f := range files {
			rec, err := p.EnumerateFile(ctx, f)
			if err != nil {
				result.Failed++
				fmt.Fprintf(w, "failed:     %s (%v)\n", filepath.Base(f), err)
				if !p.ContinueOnError {
					writeSummary(w, result)
					return result, err
				}
				continue
			}
			result.Processed++
			fmt.Fprintf(w, "enumerated: %s (%d pages) -> %s\n", filepath.Base(f), rec.Pages, rec.ResultPath)
		}
	}

	writeSummary(w, result)
	return result, nil
}

func writeSummary(w io.Writer, r BatchResult) {
	fmt.Fprintf(w, "\nBatch summary: %d enumerated, %d failed (total: %d)\n",
		r.Processed, r.Failed, r.Total())
}

// EnumerateFile appends a page-number footer to every page of the PDF at
// path. The merged document goes to <dir>/results/<name>_enumerated.pdf;
// the temporary numbering document is deleted on every exit path. SHA-256
// digests of source and result are logged and returned.
func (p *Processor) EnumerateFile(ctx context.Context, path string) (audit.FileRecord, error) {
	var rec audit.FileRecord

	n, err := PageCount(path)
	if err != nil {
		return rec, err
	}

	dir := filepath.Dir(path)
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	tempPath := filepath.Join(dir, base+tempSuffix+".pdf")
	if err := overlay.Generate(tempPath, n, p.Overlay); err != nil {
		return rec, fmt.Errorf("generating numbering document: %w", err)
	}
	defer os.Remove(tempPath)

	merged, err := stampPages(path, tempPath)
	if err != nil {
		return rec, err
	}

	outDir := filepath.Join(dir, resultsDir)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return rec, fmt.Errorf("creating %s: %w", outDir, err)
	}

	resultPath := filepath.Join(outDir, base+resultSuffix+".pdf")
	if err := os.WriteFile(resultPath, merged, 0o644); err != nil {
		return rec, fmt.Errorf("writing %s: %w", resultPath, err)
	}

	sourceHash, err := audit.HashFile(path)
	if err != nil {
		return rec, err
	}
	resultHash, err := audit.HashFile(resultPath)
	if err != nil {
		return rec, err
	}

	p.logger().Debug("file enumerated",
		"path", path,
		"initial_hash", sourceHash,
		"result_hash", resultHash)

	rec = audit.FileRecord{
		SourcePath:   path,
		ResultPath:   resultPath,
		Pages:        n,
		SourceSHA256: sourceHash,
		ResultSHA256: resultHash,
		ProcessedAt:  time.Now().UTC(),
	}

	if p.Recorder != nil {
		if err := p.Recorder.Record(ctx, rec); err != nil {
			return rec, fmt.Errorf("recording audit entry: %w", err)
		}
	}
	return rec, nil
}
