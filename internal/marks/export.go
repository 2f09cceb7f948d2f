package marks

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet that holds exported marks.
const SheetName = "Marks"

// Workbook renders a student's marks as XLSX bytes: a header row
// (Student ID, Student Name, Subject, Mark) followed by one row per entry.
func Workbook(s Student) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("xlsx sheet: %w", err)
	}

	name := ""
	if s.StudentName != nil {
		name = *s.StudentName
	}

	headers := []string{"Student ID", "Student Name", "Subject", "Mark"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(SheetName, cell, h); err != nil {
			return nil, fmt.Errorf("xlsx header: %w", err)
		}
	}

	for i, e := range s.Marks {
		row := i + 2
		values := []any{s.StudentID, name, e.Subject, e.Mark}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(SheetName, cell, v); err != nil {
				return nil, fmt.Errorf("xlsx row %d: %w", row, err)
			}
		}
	}

	_ = f.SetColWidth(SheetName, "A", "A", 14)
	_ = f.SetColWidth(SheetName, "B", "B", 28)
	_ = f.SetColWidth(SheetName, "C", "C", 36)
	_ = f.SetColWidth(SheetName, "D", "D", 10)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}
