// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdf-enumerator/internal/audit"
	"github.com/pdiddy/pdf-enumerator/pkg/types"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Query and export the audit trail",
	Long: `Audit inspects the SQLite trail written by enumerate --audit-db. Use
subcommands to list recent file records or export them to YAML or JSON.`,
}

// --- list subcommand ---

var auditListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show recent audit records",
	RunE:  runAuditList,
}

func runAuditList(cmd *cobra.Command, args []string) error {
	cfg := auditConfig(cmd)
	if cfg.DBPath == "" {
		return fmt.Errorf("audit database required: pass --db or set audit.db_path")
	}

	store, err := audit.NewStore(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.Recent(context.Background(), cfg.MaxRecords)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("No audit records found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-20s  %-30s  %-5s  %-12s  %-12s\n",
		"Processed", "Source", "Pages", "Source hash", "Result hash")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 88))

	for _, r := range records {
		source := r.SourcePath
		if len(source) > 30 {
			source = "..." + source[len(source)-27:]
		}
		fmt.Fprintf(os.Stdout, "%-20s  %-30s  %-5d  %-12s  %-12s\n",
			r.ProcessedAt.Format("2006-01-02 15:04:05"), source, r.Pages,
			shortHash(r.SourceSHA256), shortHash(r.ResultSHA256))
	}

	fmt.Fprintf(os.Stdout, "\n%d record(s)\n", len(records))
	return nil
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}

// --- export subcommand ---

var auditExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export audit records to YAML or JSON",
	RunE:  runAuditExport,
}

func runAuditExport(cmd *cobra.Command, args []string) error {
	cfg := auditConfig(cmd)
	if cfg.DBPath == "" {
		return fmt.Errorf("audit database required: pass --db or set audit.db_path")
	}

	store, err := audit.NewStore(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	format, _ := cmd.Flags().GetString("format")
	out, _ := cmd.Flags().GetString("out")

	ctx := context.Background()
	switch format {
	case "yaml", "":
		if out == "" {
			out = "audit-export.yaml"
		}
		if err := store.ExportYAML(ctx, out, cfg.MaxRecords); err != nil {
			return err
		}
	case "json":
		if out == "" {
			out = "audit-export.json"
		}
		if err := store.ExportJSON(ctx, out, cfg.MaxRecords); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format %q: use yaml or json", format)
	}

	fmt.Println("Exported to", out)
	return nil
}

func init() {
	for _, c := range []*cobra.Command{auditListCmd, auditExportCmd} {
		c.Flags().String("db", "", "SQLite audit trail database")
		c.Flags().Int("limit", 0, "maximum number of records (default 20)")
	}
	auditExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	auditExportCmd.Flags().String("out", "", "output file (default audit-export.<format>)")

	auditCmd.AddCommand(auditListCmd, auditExportCmd)
	rootCmd.AddCommand(auditCmd)
}

// auditConfig resolves audit trail settings from flags with config-file
// fallbacks. Works for commands with or without the db/limit flags.
func auditConfig(cmd *cobra.Command) types.AuditConfig {
	dbPath, _ := cmd.Flags().GetString("db")
	if dbPath == "" {
		dbPath, _ = cmd.Flags().GetString("audit-db")
	}
	if dbPath == "" {
		dbPath = viper.GetString("audit.db_path")
	}

	limit, _ := cmd.Flags().GetInt("limit")
	if limit <= 0 {
		limit = viper.GetInt("audit.max_records")
	}
	if limit <= 0 {
		limit = 20
	}

	return types.AuditConfig{DBPath: dbPath, MaxRecords: limit}
}
