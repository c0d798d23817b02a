// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package overlay generates numbering documents: blank pages whose only
// content is a page-number footer, used as the stamp layer during the merge.
package overlay

import (
	"fmt"
	"strconv"

	"codeberg.org/go-pdf/fpdf"

	"github.com/pdiddy/pdf-enumerator/pkg/types"
)

// Footer geometry in mm: the cell sits footerOffsetY above the bottom edge.
const (
	footerOffsetY = -15
	footerCellH   = 10
)

// Generate writes a PDF with exactly pageCount blank pages to path. Every
// page carries a single footer cell containing its 1-based page number,
// aligned and typeset per cfg. The caller owns deletion of the produced
// file.
//
// pageCount must be positive: the PDF format has no representation for a
// document without pages.
func Generate(path string, pageCount int, cfg types.OverlayConfig) error {
	if pageCount < 1 {
		return fmt.Errorf("page count must be positive, got %d", pageCount)
	}
	cfg = withDefaults(cfg)
	if err := validate(cfg); err != nil {
		return err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetFont(cfg.FontFamily, "", cfg.FontSize)

	// The footer closure runs once per page during output, mirroring the
	// per-page footer hook of the layout library.
	pdf.SetFooterFunc(func() {
		pdf.SetY(footerOffsetY)
		pdf.CellFormat(0, footerCellH, strconv.Itoa(pdf.PageNo()), "", 0, string(cfg.Align), false, 0, "")
	})

	for i := 0; i < pageCount; i++ {
		pdf.AddPage()
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("writing numbering document %s: %w", path, err)
	}
	return nil
}

func withDefaults(cfg types.OverlayConfig) types.OverlayConfig {
	if cfg.Align == "" {
		cfg.Align = types.AlignCenter
	}
	if cfg.FontFamily == "" {
		cfg.FontFamily = "Arial"
	}
	if cfg.FontSize <= 0 {
		cfg.FontSize = 12
	}
	return cfg
}

func validate(cfg types.OverlayConfig) error {
	switch cfg.Align {
	case types.AlignLeft, types.AlignCenter, types.AlignRight:
		return nil
	}
	return fmt.Errorf("invalid footer alignment %q: must be L, C, or R", cfg.Align)
}
