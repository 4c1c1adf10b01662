package boq

// workbook.go is the cell grid adapter: it wraps the format-specific
// decoders into one uniform row/cell representation and applies the
// row-level visibility and emptiness filter at the decode boundary.
//
// Sheet selection differs per family: the xlsx family uses the workbook's
// currently-active sheet; the legacy .xls path takes the first sheet flagged
// visible, falling back to the first sheet (see workbook_xls.go).

import (
	"bytes"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// DecodeVisibleRows decodes workbook content, selects one sheet, and returns
// its visible, non-empty rows in ascending row order.
//
// ext is the declared file extension (with or without the leading dot,
// any case). maxRows, when positive, stops emission after that many rows
// have been kept; the bound counts survivors, not raw rows visited.
//
// Fails with ErrUnsupportedExtension before any decode attempt, or with
// ErrUnreadableWorkbook when the decoder rejects the bytes.
func DecodeVisibleRows(content []byte, ext string, maxRows int) (*SheetData, error) {
	switch normalizeExt(ext) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return decodeOOXML(content, maxRows)
	case ".xls":
		return decodeLegacyXLS(content, maxRows)
	default:
		return nil, unsupportedExtension(ext)
	}
}

// ExtFromFilename extracts the extension of an uploaded file name.
func ExtFromFilename(name string) string {
	return filepath.Ext(name)
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// decodeOOXML handles the XML-zip family via excelize, processing the
// workbook's active sheet.
func decodeOOXML(content []byte, maxRows int) (*SheetData, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, unreadable(err)
	}
	defer f.Close()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if sheet == "" {
		list := f.GetSheetList()
		if len(list) == 0 {
			return nil, unreadableMsg("workbook contains no sheets")
		}
		sheet = list[0]
	}

	raw, err := f.GetRows(sheet)
	if err != nil {
		return nil, unreadable(err)
	}

	data := &SheetData{SheetName: sheet}
	for i, rawRow := range raw {
		rowNum := i + 1

		if visible, err := f.GetRowVisible(sheet, rowNum); err == nil && !visible {
			continue
		}

		cells := make([]Cell, 0, len(rawRow))
		for j, rawVal := range rawRow {
			cells = append(cells, newCell(j+1, rowNum, parseCellValue(rawVal)))
		}
		if !keepRow(data, Row{RowIndex: rowNum, Cells: cells}) {
			continue
		}
		if maxRows > 0 && len(data.Rows) >= maxRows {
			break
		}
	}

	data.RowCount = len(data.Rows)
	return data, nil
}

// newCell builds a Cell from 1-based coordinates and a typed value.
func newCell(col, row int, value any) Cell {
	letter, _ := excelize.ColumnNumberToName(col)
	return Cell{
		Address:   letter + strconv.Itoa(row),
		ColIndex:  col,
		ColLetter: letter,
		RowIndex:  row,
		Value:     value,
	}
}

// keepRow appends the row unless every cell is nil or blank after trimming.
// Reports whether the row was kept.
func keepRow(data *SheetData, row Row) bool {
	for _, c := range row.Cells {
		if !isBlank(c.Value) {
			data.Rows = append(data.Rows, row)
			return true
		}
	}
	return false
}
