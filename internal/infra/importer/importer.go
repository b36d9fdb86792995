package importer

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/KasumiMercury/primind-priority-board/internal/domain"
)

// Reader turns one uploaded file into raw rows.
type Reader interface {
	Read(ctx context.Context, r io.Reader) ([]domain.ImportRow, error)
}

// ForFile picks a reader from the file extension.
func ForFile(filename string) (Reader, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		return XLSX{}, nil
	case ".csv":
		return CSV{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFile, filename)
	}
}

// ReadFile reads every row of filename from r.
func ReadFile(ctx context.Context, filename string, r io.Reader) ([]domain.ImportRow, error) {
	reader, err := ForFile(filename)
	if err != nil {
		return nil, err
	}
	return reader.Read(ctx, r)
}

// rowsFromTable uses the first non-blank line as the header and drops blank lines.
func rowsFromTable(table [][]string) []domain.ImportRow {
	headerAt := -1
	for i, line := range table {
		if !blank(line) {
			headerAt = i
			break
		}
	}
	if headerAt < 0 {
		return nil
	}

	header := make([]string, len(table[headerAt]))
	for i, h := range table[headerAt] {
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	rows := make([]domain.ImportRow, 0, len(table)-headerAt-1)
	for _, line := range table[headerAt+1:] {
		if blank(line) {
			continue
		}
		row := make(domain.ImportRow, len(header))
		for i, cell := range line {
			if i >= len(header) || header[i] == "" {
				continue
			}
			row[header[i]] = strings.TrimSpace(cell)
		}
		rows = append(rows, row)
	}
	return rows
}

func blank(line []string) bool {
	for _, cell := range line {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
