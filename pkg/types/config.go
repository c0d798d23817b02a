// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Alignment selects the horizontal placement of the page-number footer.
type Alignment string

const (
	AlignLeft   Alignment = "L"
	AlignCenter Alignment = "C"
	AlignRight  Alignment = "R"
)

// OverlayConfig holds the footer settings for the numbering layer.
type OverlayConfig struct {
	// Align is the horizontal footer alignment: L, C, or R (default C).
	Align Alignment `json:"align" yaml:"align"`

	// FontFamily is the footer font family (default "Arial").
	FontFamily string `json:"font_family" yaml:"font_family"`

	// FontSize is the footer font size in points (default 12).
	FontSize float64 `json:"font_size" yaml:"font_size"`
}

// EnumerationConfig holds settings for an enumeration batch.
type EnumerationConfig struct {
	// Folders are the directories scanned (non-recursively) for *.pdf files,
	// processed in the order given.
	Folders []string `json:"folders" yaml:"folders"`

	Overlay OverlayConfig `json:"overlay" yaml:"overlay"`

	// ContinueOnError keeps the batch going after a file fails instead of
	// aborting on the first error.
	ContinueOnError bool `json:"continue_on_error" yaml:"continue_on_error"`
}

// AuditConfig holds settings for the audit trail store.
type AuditConfig struct {
	// DBPath is the SQLite database file. Empty disables persistence;
	// per-file hashes are then only logged.
	DBPath string `json:"db_path,omitempty" yaml:"db_path,omitempty"`

	// MaxRecords is the default number of records returned by queries and
	// exports (default 20).
	MaxRecords int `json:"max_records" yaml:"max_records"`
}
