package helper

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/arlearn/assessment-api/internal/service"
)

const historySheet = "History"

var historyHeaders = []string{"Date (UTC)", "Subject", "Subject ID", "Model ID", "Question ID", "Selected", "Correct", "Time spent (s)"}

// utf8BOM makes Excel open the CSV as UTF-8.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteHistoryCSV writes rows as CSV with a UTF-8 BOM
func WriteHistoryCSV(w io.Writer, rows []service.HistoryRow) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(historyHeaders); err != nil {
		return err
	}
	for _, r := range rows {
		if err := writer.Write(historyRecord(r)); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteHistoryXLSX writes rows as a single-sheet workbook using the excelize StreamWriter
func WriteHistoryXLSX(w io.Writer, rows []service.HistoryRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", historySheet); err != nil {
		return err
	}
	sw, err := f.NewStreamWriter(historySheet)
	if err != nil {
		return fmt.Errorf("failed to create stream writer: %w", err)
	}

	header := make([]interface{}, len(historyHeaders))
	for i, h := range historyHeaders {
		header[i] = h
	}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}

	for i, r := range rows {
		var spent interface{}
		if r.TimeSpent != nil {
			spent = *r.TimeSpent
		}
		row := []interface{}{
			r.CreatedAt.UTC().Format(time.RFC3339),
			SanitizeForExcel(r.SubjectName),
			r.SubjectID,
			r.ModelID,
			r.QuestionID,
			r.SelectedAnswer,
			yesNo(r.IsCorrect),
			spent,
		}
		if err := sw.SetRow(fmt.Sprintf("A%d", i+2), row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return err
	}
	return f.Write(w)
}

func historyRecord(r service.HistoryRow) []string {
	spent := ""
	if r.TimeSpent != nil {
		spent = strconv.Itoa(*r.TimeSpent)
	}
	return []string{
		r.CreatedAt.UTC().Format(time.RFC3339),
		SanitizeForExcel(r.SubjectName),
		SanitizeForExcel(r.SubjectID),
		SanitizeForExcel(r.ModelID),
		SanitizeForExcel(r.QuestionID),
		strconv.Itoa(r.SelectedAnswer),
		yesNo(r.IsCorrect),
		spent,
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// SanitizeForExcel neutralises cells that spreadsheet apps would run as formulas
func SanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	// = + - @ \t \r start a formula in Excel/LibreOffice
	if s[0] == '=' || s[0] == '+' || s[0] == '-' || s[0] == '@' || s[0] == '\t' || s[0] == '\r' {
		return "'" + s
	}
	return s
}
