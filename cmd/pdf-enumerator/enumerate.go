// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdf-enumerator/internal/audit"
	"github.com/pdiddy/pdf-enumerator/internal/enumerate"
	"github.com/pdiddy/pdf-enumerator/pkg/types"
)

var enumerateCmd = &cobra.Command{
	Use:   "enumerate [folders...]",
	Short: "Number the pages of every PDF in the given folders",
	Long: `Enumerate scans each folder (non-recursively) for *.pdf files and, for
each file, overlays a page-number footer onto every page. The merged
document is written to <folder>/results/<name>_enumerated.pdf; the source
file is left untouched.

Folders come from arguments, the "folders" config key, or
PDF_ENUMERATOR_FOLDERS. With --audit-db set, every processed file is also
recorded in a SQLite audit trail.`,
	RunE: runEnumerate,
}

func init() {
	enumerateCmd.Flags().String("align", "C", "footer alignment: L, C, or R")
	enumerateCmd.Flags().String("font-family", "Arial", "footer font family")
	enumerateCmd.Flags().Float64("font-size", 12, "footer font size in points")
	enumerateCmd.Flags().Bool("continue-on-error", false, "keep processing remaining files after a failure")
	enumerateCmd.Flags().String("audit-db", "", "SQLite audit trail database (empty disables persistence)")

	rootCmd.AddCommand(enumerateCmd)
}

func runEnumerate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg := enumerationConfig(cmd, args)
	if len(cfg.Folders) == 0 {
		return fmt.Errorf("no folders given: pass folder arguments or set the folders config key")
	}

	p := &enumerate.Processor{
		Folders:         cfg.Folders,
		Overlay:         cfg.Overlay,
		ContinueOnError: cfg.ContinueOnError,
		Logger:          slog.Default(),
	}

	if dbPath := auditConfig(cmd).DBPath; dbPath != "" {
		store, err := audit.NewStore(dbPath)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Begin(ctx, cfg.Folders); err != nil {
			return err
		}
		p.Recorder = store
	}

	result, err := p.Run(ctx, os.Stdout)
	if err != nil {
		return err
	}
	if result.HasFailures() {
		return fmt.Errorf("%d file(s) failed enumeration", result.Failed)
	}
	return nil
}

// enumerationConfig resolves the batch settings: flags win, then config
// file / environment, then defaults.
func enumerationConfig(cmd *cobra.Command, args []string) types.EnumerationConfig {
	folders := args
	if len(folders) == 0 {
		folders = viper.GetStringSlice("folders")
	}

	align, _ := cmd.Flags().GetString("align")
	if !cmd.Flags().Changed("align") && viper.IsSet("overlay.align") {
		align = viper.GetString("overlay.align")
	}
	fontFamily, _ := cmd.Flags().GetString("font-family")
	if !cmd.Flags().Changed("font-family") && viper.IsSet("overlay.font_family") {
		fontFamily = viper.GetString("overlay.font_family")
	}
	fontSize, _ := cmd.Flags().GetFloat64("font-size")
	if !cmd.Flags().Changed("font-size") && viper.IsSet("overlay.font_size") {
		fontSize = viper.GetFloat64("overlay.font_size")
	}
	continueOnError, _ := cmd.Flags().GetBool("continue-on-error")
	if !cmd.Flags().Changed("continue-on-error") && viper.IsSet("continue_on_error") {
		continueOnError = viper.GetBool("continue_on_error")
	}

	return types.EnumerationConfig{
		Folders: folders,
		Overlay: types.OverlayConfig{
			Align:      types.Alignment(align),
			FontFamily: fontFamily,
			FontSize:   fontSize,
		},
		ContinueOnError: continueOnError,
	}
}
