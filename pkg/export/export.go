// Package export writes review scores to a spreadsheet.
package export

import (
	"github.com/dtnitsch/review-sentiment/models"
	"github.com/xuri/excelize/v2"
)

const defaultSheet = "Sheet1"

// Columns are the header cells of the exported sheet.
var Columns = []string{"Polarity", "Subjectivity"}

type Exporter struct {
	path  string
	sheet string
}

func New(path, sheet string) *Exporter {
	return &Exporter{path: path, sheet: sheet}
}

func (e *Exporter) Path() string {
	return e.path
}

// Write saves one row per review, unsupported reviews included with their
// raw scores, under a Polarity/Subjectivity header.
func (e *Exporter) Write(scored []models.ScoredReview) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = exportError("failed to close workbook", cerr)
		}
	}()

	if e.sheet != defaultSheet {
		if err := f.SetSheetName(defaultSheet, e.sheet); err != nil {
			return exportError("failed to name sheet "+e.sheet, err)
		}
	}

	if err := e.setRow(f, 1, []interface{}{Columns[0], Columns[1]}); err != nil {
		return err
	}
	for i, s := range scored {
		if err := e.setRow(f, i+2, []interface{}{s.Result.Polarity, s.Result.Subjectivity}); err != nil {
			return err
		}
	}

	if err := f.SaveAs(e.path); err != nil {
		return exportError("failed to save "+e.path, err)
	}
	return nil
}

func (e *Exporter) setRow(f *excelize.File, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return exportError("bad cell", err)
	}
	if err := f.SetSheetRow(e.sheet, cell, &values); err != nil {
		return exportError("failed to write row", err)
	}
	return nil
}

func exportError(msg string, err error) error {
	return models.NewAnalysisError(models.KindExportFailure, msg, err)
}
