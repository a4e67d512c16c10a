package service

import (
	"fmt"
	"time"

	"github.com/lshigami/Lectern/internal/model"
	"github.com/xuri/excelize/v2"
)

const ResultsSheet = "Sheet1"

var resultsHeader = []interface{}{"Result ID", "User ID", "Score", "Submitted At", "Answers"}

func renderResultsWorkbook(results []model.TestResult) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetRow(ResultsSheet, "A1", &resultsHeader); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	for i, r := range results {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []interface{}{r.ID, r.UserID, r.Score, r.CreatedAt.UTC().Format(time.RFC3339), string(r.Answers)}
		if err := f.SetSheetRow(ResultsSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write result %d: %w", r.ID, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
