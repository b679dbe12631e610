/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package reporter

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/unikorn-cloud/placeholder-conformance/pkg/contract"
)

const (
	verdictSheet   = "Verdicts"
	errorBgColor   = "FF5900"
	warningBgColor = "FFEB9C"
)

var xlsxHeaders = []any{
	"Case", "Case ID", "Contract", "Result", "Status", "Elapsed (ms)", "Violations",
}

// WriteXLSX writes one row per verdict followed by the summary.  Failing rows
// are highlighted red, rows with only warnings yellow.
func WriteXLSX(path string, verdicts []contract.Verdict, summary Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", verdictSheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	errorStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{errorBgColor}},
	})
	if err != nil {
		return fmt.Errorf("creating style: %w", err)
	}

	warningStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{warningBgColor}},
	})
	if err != nil {
		return fmt.Errorf("creating style: %w", err)
	}

	if err := f.SetSheetRow(verdictSheet, "A1", &xlsxHeaders); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, verdict := range verdicts {
		row := i + 2

		result := "PASS"
		if !verdict.Passed {
			result = "FAIL"
		}

		violations := make([]string, len(verdict.Violations))
		for j, violation := range verdict.Violations {
			violations[j] = violation.Error()
		}

		values := []any{
			i + 1,
			verdict.CaseID,
			verdict.Contract,
			result,
			verdict.StatusCode,
			float64(verdict.Elapsed.Microseconds()) / 1000,
			strings.Join(violations, "\n"),
		}

		first, _ := excelize.CoordinatesToCellName(1, row)
		last, _ := excelize.CoordinatesToCellName(len(values), row)

		if err := f.SetSheetRow(verdictSheet, first, &values); err != nil {
			return fmt.Errorf("writing row %d: %w", row, err)
		}

		switch {
		case !verdict.Passed:
			err = f.SetCellStyle(verdictSheet, first, last, errorStyle)
		case len(verdict.Violations) > 0:
			err = f.SetCellStyle(verdictSheet, first, last, warningStyle)
		}

		if err != nil {
			return fmt.Errorf("styling row %d: %w", row, err)
		}
	}

	summaryRow := len(verdicts) + 3

	lines := []string{
		"Summary",
		fmt.Sprintf("Total: %d", summary.Total),
		fmt.Sprintf("Passed: %d", summary.Passed),
		fmt.Sprintf("Failed: %d", summary.Failed),
		fmt.Sprintf("Warnings: %d", summary.Warnings),
	}

	for i, line := range lines {
		if err := f.SetCellValue(verdictSheet, fmt.Sprintf("A%d", summaryRow+i), line); err != nil {
			return fmt.Errorf("writing summary: %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving report: %w", err)
	}

	return nil
}
