// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package enumerate

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// stampDesc places each numbering page over the source page unscaled and
// unrotated, centered on the page.
const stampDesc = "position:c, scalefactor:1 abs, rotation:0"

// PageCount returns the number of pages in the PDF at path.
func PageCount(path string) (int, error) {
	n, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}
	return n, nil
}

// stampPages composites the numbering document at overlayPath onto the
// source document, numbering on top, and returns the merged document bytes.
// A bare filename (no page suffix) selects pdfcpu's multi-stamp mode, which
// pairs overlay page i with source page i, so page order and count carry
// through unchanged.
func stampPages(srcPath, overlayPath string) ([]byte, error) {
	wm, err := api.PDFWatermark(overlayPath, stampDesc, true, false, types.POINTS)
	if err != nil {
		return nil, fmt.Errorf("building numbering stamp: %w", err)
	}

	src, err := os.Open(srcPath)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	var buf bytes.Buffer
	if err := api.AddWatermarks(src, &buf, nil, wm, nil); err != nil {
		return nil, fmt.Errorf("merging numbering onto %s: %w", srcPath, err)
	}
	return buf.Bytes(), nil
}
