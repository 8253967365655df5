package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/spf13/cobra"

	"github.com/cloksy/cloksy-backend/internal/timesheet/export"
	"github.com/cloksy/cloksy-backend/internal/timesheet/report"
	"github.com/cloksy/cloksy-backend/internal/timesheet/repository"
	"github.com/cloksy/cloksy-backend/internal/timesheet/service"
)

// hoursTolerance absorbs float noise between a stored CSV and a fresh sum
const hoursTolerance = 1e-9

var (
	reportEmployee string
	reportScope    string
	reportJSON     bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Weekly summary reports",
}

var reportWeeklyCmd = &cobra.Command{
	Use:   "weekly",
	Short: "Print the weekly summary",
	Args:  cobra.NoArgs,
	RunE:  runReportWeekly,
}

var reportVerifyCmd = &cobra.Command{
	Use:   "verify <project_summary.csv>",
	Short: "Compare a project summary CSV against the current window",
	Args:  cobra.ExactArgs(1),
	RunE:  runReportVerify,
}

func init() {
	for _, c := range []*cobra.Command{reportWeeklyCmd, reportVerifyCmd} {
		c.Flags().StringVar(&reportScope, "scope", "", "only read this employee's logs (default: everyone)")
	}
	reportWeeklyCmd.Flags().StringVar(&reportEmployee, "employee", report.AllEmployees, "employee breakdown filter")
	reportWeeklyCmd.Flags().BoolVar(&reportJSON, "json", false, "print the summary as JSON")

	reportCmd.AddCommand(reportWeeklyCmd)
	reportCmd.AddCommand(reportVerifyCmd)
}

func newReportService(e *env, archiver service.Archiver) *service.ReportService {
	return service.NewReportService(
		repository.NewTimeLogRepository(e.db),
		archiver,
		nil,
		e.log.WithComponent("reports"),
		e.cfg.Reports.Window,
	)
}

func runReportWeekly(cmd *cobra.Command, _ []string) error {
	e, err := openEnv(cmd.Context())
	if err != nil {
		return err
	}
	defer e.Close()

	summary, err := newReportService(e, nil).Weekly(cmd.Context(), service.ReportQuery{
		Scope:    reportScope,
		Employee: reportEmployee,
	})
	if err != nil {
		return err
	}

	if reportJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}

	fmt.Fprint(cmd.OutOrStdout(), renderSummary(summary))
	return nil
}

func runReportVerify(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	stored, err := export.ParseProjectTotalsCSV(data)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	e, err := openEnv(cmd.Context())
	if err != nil {
		return err
	}
	defer e.Close()

	summary, err := newReportService(e, nil).Weekly(cmd.Context(), service.ReportQuery{Scope: reportScope})
	if err != nil {
		return err
	}

	if diff := diffTotals(stored, summary.ProjectTotals); diff != "" {
		return fmt.Errorf("%s does not match the current window (-file +current):\n%s", args[0], diff)
	}
	cmd.Printf("%s matches %d project totals\n", args[0], len(stored))
	return nil
}

func diffTotals(stored, current []report.ProjectTotal) string {
	return cmp.Diff(stored, current,
		cmpopts.EquateEmpty(),
		cmpopts.EquateApprox(0, hoursTolerance),
	)
}
