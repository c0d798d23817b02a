// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdf-enumerator/internal/enumerate"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [folders...]",
	Short: "List the PDF files an enumeration run would process",
	Long: `Inspect scans the given folders the same way enumerate does and prints
each discovered PDF with its page count, without writing anything.`,
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	folders := args
	if len(folders) == 0 {
		folders = viper.GetStringSlice("folders")
	}
	if len(folders) == 0 {
		return fmt.Errorf("no folders given: pass folder arguments or set the folders config key")
	}

	fmt.Fprintf(os.Stdout, "%-50s  %s\n", "File", "Pages")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 58))

	total := 0
	for _, folder := range folders {
		files, err := enumerate.FindAllFiles(folder)
		if err != nil {
			return err
		}
		for _, f := range files {
			n, err := enumerate.PageCount(f)
			if err != nil {
				fmt.Fprintf(os.Stdout, "%-50s  %v\n", truncatePath(f), err)
				continue
			}
			fmt.Fprintf(os.Stdout, "%-50s  %d\n", truncatePath(f), n)
			total++
		}
	}

	fmt.Fprintf(os.Stdout, "\n%d file(s)\n", total)
	return nil
}

func truncatePath(path string) string {
	if len(path) <= 50 {
		return path
	}
	base := filepath.Base(path)
	if len(base) >= 47 {
		return "..." + base[len(base)-47:]
	}
	return "..." + path[len(path)-47:]
}
