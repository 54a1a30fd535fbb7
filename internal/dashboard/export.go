package dashboard

import (
	"fmt"
	"io"
	"time"

	"github.com/portfolio/backend/internal/model"
	"github.com/xuri/excelize/v2"
)

// ExportSheet is the sheet name written by ExportXLSX.
const ExportSheet = "Messages"

var exportHeaders = []string{"Name", "Email", "Message", "Date"}

// ExportXLSX writes messages as a spreadsheet to w, one row per message,
// dates rendered like the dashboard table.
func ExportXLSX(w io.Writer, messages []*model.ContactMessage, loc *time.Location) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ExportSheet); err != nil {
		return err
	}

	for i, header := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(ExportSheet, cell, header); err != nil {
			return err
		}
	}

	for i, m := range messages {
		row := i + 2
		values := []string{m.Name, m.Email, m.Message, FormatDateTime(m.CreatedAt, loc)}
		for col, v := range values {
			cell := fmt.Sprintf("%c%d", 'A'+col, row)
			if err := f.SetCellValue(ExportSheet, cell, v); err != nil {
				return err
			}
		}
	}

	return f.Write(w)
}
