package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/KasumiMercury/primind-priority-board/internal/domain"
)

type CSV struct{}

// Read parses r line by line. A malformed line is returned as an empty row so
// the caller discards and counts it; the rest of the file still imports.
func (CSV) Read(ctx context.Context, r io.Reader) ([]domain.ImportRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var (
		table     [][]string
		malformed int
	)
	for {
		line, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				slog.WarnContext(ctx, "skipping malformed csv line",
					slog.Int("line", parseErr.StartLine),
					slog.String("error", parseErr.Err.Error()),
				)
				malformed++
				continue
			}
			return nil, fmt.Errorf("%w: %w", domain.ErrUnsupportedFile, err)
		}
		table = append(table, line)
	}

	rows := rowsFromTable(table)
	for range malformed {
		rows = append(rows, domain.ImportRow{})
	}
	return rows, nil
}
