package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cloksy/cloksy-backend/internal/timesheet/archive"
	"github.com/cloksy/cloksy-backend/internal/timesheet/export"
	"github.com/cloksy/cloksy-backend/internal/timesheet/service"
)

var (
	exportOut     string
	exportScope   string
	exportArchive bool
)

var exportCmd = &cobra.Command{
	Use:   "export <name>",
	Short: "Write one of the weekly downloads to disk",
	Long: fmt.Sprintf(`Write one of the weekly downloads to disk. name is one of:
  %s
  %s
  %s
  %s`,
		export.ProjectSummaryCSVName, export.ProjectSummaryXLSXName,
		export.DepartmentBreakdownCSVName, export.DepartmentBreakdownXLSXName),
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output path (default: ./<name>)")
	exportCmd.Flags().StringVar(&exportScope, "scope", "", "only read this employee's logs (default: everyone)")
	exportCmd.Flags().BoolVar(&exportArchive, "archive", false, "also copy the file to the configured archive bucket")
}

func runExport(cmd *cobra.Command, args []string) error {
	name := args[0]
	out := exportOut
	if out == "" {
		out = filepath.Join(".", name)
	}

	e, err := openEnv(cmd.Context())
	if err != nil {
		return err
	}
	defer e.Close()

	var archiver service.Archiver
	if exportArchive {
		if !e.cfg.Archive.Enabled {
			return fmt.Errorf("--archive needs archive.enabled in the configuration")
		}
		a, err := archive.New(cmd.Context(), e.cfg.Archive)
		if err != nil {
			return err
		}
		archiver = a
	}

	file, err := newReportService(e, archiver).Export(cmd.Context(), service.ReportQuery{Scope: exportScope}, name)
	if err != nil {
		return err
	}

	if err := os.WriteFile(out, file.Data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}

	cmd.Printf("wrote %s (%d bytes)\n", out, len(file.Data))
	if file.ArchiveKey != "" {
		cmd.Printf("archived as %s\n", file.ArchiveKey)
	} else if archiver != nil {
		// Export only logs archive failures
		return fmt.Errorf("archiving %s failed, rerun with -v for details", name)
	}
	return nil
}
