// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package overlay

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdf-enumerator/pkg/types"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name      string
		pageCount int
		cfg       types.OverlayConfig
	}{
		{
			name:      "single page with defaults",
			pageCount: 1,
		},
		{
			name:      "multiple pages centered",
			pageCount: 5,
			cfg:       types.OverlayConfig{Align: types.AlignCenter, FontFamily: "Arial", FontSize: 12},
		},
		{
			name:      "right aligned custom font size",
			pageCount: 3,
			cfg:       types.OverlayConfig{Align: types.AlignRight, FontSize: 9},
		},
		{
			name:      "left aligned helvetica",
			pageCount: 2,
			cfg:       types.OverlayConfig{Align: types.AlignLeft, FontFamily: "Helvetica"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "numbering.pdf")

			require.NoError(t, Generate(path, tt.pageCount, tt.cfg))

			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Positive(t, info.Size())

			n, err := api.PageCountFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.pageCount, n)
		})
	}
}

// pageContent returns the decoded content stream of page pageNr.
func pageContent(t *testing.T, path string, pageNr int) string {
	t.Helper()
	ctx, err := api.ReadContextFile(path)
	require.NoError(t, err)
	r, err := pdfcpu.ExtractPageContent(ctx, pageNr)
	require.NoError(t, err)
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(data)
}

func TestGenerate_FooterLabels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "numbering.pdf")
	require.NoError(t, Generate(path, 3, types.OverlayConfig{}))

	// Each page shows exactly its own 1-based number. Text shown by the
	// footer cell appears as a parenthesized string in the content stream.
	for i := 1; i <= 3; i++ {
		content := pageContent(t, path, i)
		assert.Contains(t, content, fmt.Sprintf("(%d)", i), "page %d footer label", i)
		for j := 1; j <= 3; j++ {
			if j == i {
				continue
			}
			assert.NotContains(t, content, fmt.Sprintf("(%d)", j), "page %d must not carry label %d", i, j)
		}
	}
}

func TestGenerate_RejectsNonPositivePageCount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "numbering.pdf")

	for _, n := range []int{0, -1} {
		err := Generate(path, n, types.OverlayConfig{})
		require.Error(t, err)
		assert.NoFileExists(t, path)
	}
}

func TestGenerate_RejectsInvalidAlignment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "numbering.pdf")

	err := Generate(path, 1, types.OverlayConfig{Align: "X"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "alignment")
	assert.NoFileExists(t, path)
}
