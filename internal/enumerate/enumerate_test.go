// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package enumerate

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"codeberg.org/go-pdf/fpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdf-enumerator/internal/audit"
	"github.com/pdiddy/pdf-enumerator/pkg/types"
)

// makeFixturePDF writes a simple PDF with numPages labeled pages.
func makeFixturePDF(t *testing.T, path string, numPages int, label string) {
	t.Helper()
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Helvetica", "", 16)
	for i := 1; i <= numPages; i++ {
		pdf.AddPage()
		pdf.SetXY(20, 40)
		pdf.Cell(0, 10, fmt.Sprintf("%s - page %d", label, i))
	}
	require.NoError(t, pdf.OutputFileAndClose(path))
}

func TestFindAllFiles(t *testing.T) {
	dir := t.TempDir()
	makeFixturePDF(t, filepath.Join(dir, "b.pdf"), 1, "B")
	makeFixturePDF(t, filepath.Join(dir, "a.pdf"), 1, "A")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not a pdf"), 0o644))

	// A PDF in a subdirectory must not be picked up: the scan is non-recursive.
	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	makeFixturePDF(t, filepath.Join(sub, "c.pdf"), 1, "C")

	files, err := FindAllFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.pdf"), filepath.Join(dir, "b.pdf")}, files)

	// Idempotent on an unchanged folder.
	again, err := FindAllFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, files, again)
}

func TestFindAllFiles_EmptyFolder(t *testing.T) {
	files, err := FindAllFiles(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestEnumerateFile(t *testing.T) {
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "report.pdf")
	makeFixturePDF(t, srcPath, 3, "Report")

	sourceHashBefore, err := audit.HashFile(srcPath)
	require.NoError(t, err)

	p := &Processor{}
	rec, err := p.EnumerateFile(context.Background(), srcPath)
	require.NoError(t, err)

	resultPath := filepath.Join(dir, "results", "report_enumerated.pdf")
	assert.Equal(t, resultPath, rec.ResultPath)
	assert.Equal(t, srcPath, rec.SourcePath)
	assert.Equal(t, 3, rec.Pages)

	// The merged document preserves the page count.
	n, err := PageCount(resultPath)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	// The temporary numbering document is gone.
	assert.NoFileExists(t, filepath.Join(dir, "report_temp_enumerated.pdf"))

	// The source file is untouched; the result differs from it.
	sourceHashAfter, err := audit.HashFile(srcPath)
	require.NoError(t, err)
	assert.Equal(t, sourceHashBefore, sourceHashAfter)
	assert.Equal(t, sourceHashAfter, rec.SourceSHA256)
	assert.Len(t, rec.ResultSHA256, 64)
	assert.NotEqual(t, rec.SourceSHA256, rec.ResultSHA256)
}

func TestEnumerateFile_ResultLargerThanBlankOverlay(t *testing.T) {
	// Overlay semantics: original content survives under the numbering
	// layer, so the merged file carries both streams.
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "doc.pdf")
	makeFixturePDF(t, srcPath, 2, "Content that must survive the merge")

	p := &Processor{Overlay: types.OverlayConfig{Align: types.AlignRight, FontSize: 10}}
	rec, err := p.EnumerateFile(context.Background(), srcPath)
	require.NoError(t, err)

	src, err := os.ReadFile(srcPath)
	require.NoError(t, err)
	merged, err := os.ReadFile(rec.ResultPath)
	require.NoError(t, err)
	assert.Greater(t, len(merged), len(src)/2)
	assert.NotEqual(t, src, merged)
}

func TestEnumerateFile_InvalidPDF(t *testing.T) {
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "broken.pdf")
	require.NoError(t, os.WriteFile(srcPath, []byte("not a real pdf"), 0o644))

	p := &Processor{}
	_, err := p.EnumerateFile(context.Background(), srcPath)
	require.Error(t, err)

	// A failed read leaves no side effects behind.
	assert.NoDirExists(t, filepath.Join(dir, "results"))
	assert.NoFileExists(t, filepath.Join(dir, "broken_temp_enumerated.pdf"))
}

func TestRun_TwoFolders(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	makeFixturePDF(t, filepath.Join(first, "alpha.pdf"), 2, "Alpha")
	makeFixturePDF(t, filepath.Join(second, "beta.pdf"), 1, "Beta")

	p := &Processor{Folders: []string{first, second}}
	var out bytes.Buffer
	result, err := p.Run(context.Background(), &out)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Processed)
	assert.Equal(t, 0, result.Failed)
	assert.False(t, result.HasFailures())

	// Each folder gets its own results subdirectory.
	assert.FileExists(t, filepath.Join(first, "results", "alpha_enumerated.pdf"))
	assert.FileExists(t, filepath.Join(second, "results", "beta_enumerated.pdf"))

	assert.Contains(t, out.String(), "enumerated: alpha.pdf")
	assert.Contains(t, out.String(), "Batch summary: 2 enumerated, 0 failed (total: 2)")
}

func TestRun_EmptyFolder(t *testing.T) {
	dir := t.TempDir()

	p := &Processor{Folders: []string{dir}}
	var out bytes.Buffer
	result, err := p.Run(context.Background(), &out)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Total())
	assert.NoDirExists(t, filepath.Join(dir, "results"))
}

func TestRun_AbortsOnFirstError(t *testing.T) {
	dir := t.TempDir()
	// "broken.pdf" sorts before "good.pdf", so the default run never
	// reaches the valid file.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.pdf"), []byte("junk"), 0o644))
	makeFixturePDF(t, filepath.Join(dir, "good.pdf"), 1, "Good")

	p := &Processor{Folders: []string{dir}}
	var out bytes.Buffer
	result, err := p.Run(context.Background(), &out)
	require.Error(t, err)

	assert.Equal(t, 0, result.Processed)
	assert.Equal(t, 1, result.Failed)
	assert.NoFileExists(t, filepath.Join(dir, "results", "good_enumerated.pdf"))

	// Aborted runs still close with a summary line.
	assert.Contains(t, out.String(), "Batch summary: 0 enumerated, 1 failed (total: 1)")
}

func TestRun_ContinueOnError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.pdf"), []byte("junk"), 0o644))
	makeFixturePDF(t, filepath.Join(dir, "good.pdf"), 1, "Good")

	p := &Processor{Folders: []string{dir}, ContinueOnError: true}
	var out bytes.Buffer
	result, err := p.Run(context.Background(), &out)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Processed)
	assert.Equal(t, 1, result.Failed)
	assert.FileExists(t, filepath.Join(dir, "results", "good_enumerated.pdf"))
	assert.Contains(t, out.String(), "failed:     broken.pdf")
	assert.Contains(t, out.String(), "Batch summary: 1 enumerated, 1 failed (total: 2)")
}

// captureRecorder collects audit entries for inspection.
type captureRecorder struct {
	records []audit.FileRecord
}

func (c *captureRecorder) Record(_ context.Context, rec audit.FileRecord) error {
	c.records = append(c.records, rec)
	return nil
}

func TestRun_RecordsAuditEntries(t *testing.T) {
	dir := t.TempDir()
	makeFixturePDF(t, filepath.Join(dir, "report.pdf"), 2, "Report")

	rec := &captureRecorder{}
	p := &Processor{Folders: []string{dir}, Recorder: rec}
	var out bytes.Buffer
	_, err := p.Run(context.Background(), &out)
	require.NoError(t, err)

	require.Len(t, rec.records, 1)
	entry := rec.records[0]
	assert.Equal(t, 2, entry.Pages)
	assert.True(t, strings.HasSuffix(entry.ResultPath, "report_enumerated.pdf"))
	assert.Len(t, entry.SourceSHA256, 64)
	assert.False(t, entry.ProcessedAt.IsZero())
}
