package importer

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/KasumiMercury/primind-priority-board/internal/domain"
)

// XLSX reads the first worksheet. Cells are read raw so dates stay serial
// numbers and times stay day fractions.
type XLSX struct{}

func (XLSX) Read(ctx context.Context, r io.Reader) ([]domain.ImportRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUnsupportedFile, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.WarnContext(ctx, "failed to close workbook", slog.String("error", err.Error()))
		}
	}()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, nil
	}

	table, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}

	rows := rowsFromTable(table)

	slog.DebugContext(ctx, "workbook read",
		slog.String("sheet", sheet),
		slog.Int("row_count", len(rows)),
	)

	return rows, nil
}
