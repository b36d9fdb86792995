package importer

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/KasumiMercury/primind-priority-board/internal/domain"
)

func TestForFile(t *testing.T) {
	tests := []struct {
		filename string
		wantErr  bool
	}{
		{filename: "passengers.xlsx"},
		{filename: "PASSENGERS.XLSX"},
		{filename: "passengers.csv"},
		{filename: "passengers.xls", wantErr: true},
		{filename: "passengers.txt", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			_, err := ForFile(tt.filename)
			if tt.wantErr && !errors.Is(err, domain.ErrUnsupportedFile) {
				t.Errorf("ForFile() error = %v, want %v", err, domain.ErrUnsupportedFile)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ForFile() error = %v", err)
			}
		})
	}
}

func TestCSV_Read(t *testing.T) {
	input := "\ufeff日期,车次,姓名,牌号\n\n2024-05-20,K100,张三,A1\n,,,\n5/21/2024, G20 ,王五,\n"

	rows, err := ReadFile(context.Background(), "list.csv", strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0]["日期"] != "2024-05-20" || rows[0]["牌号"] != "A1" {
		t.Errorf("row 0 = %v", rows[0])
	}
	if rows[1]["车次"] != "G20" {
		t.Errorf("row 1 trainNo = %q, want G20", rows[1]["车次"])
	}
}

func TestCSV_ReadSkipsMalformedLines(t *testing.T) {
	input := "车次,姓名\nK100,张三\nK1\"00,李四\nT231,王五\n"

	rows, err := ReadFile(context.Background(), "list.csv", strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	if rows[0]["车次"] != "K100" || rows[1]["车次"] != "T231" {
		t.Errorf("rows = %v", rows)
	}
	if len(rows[2]) != 0 {
		t.Errorf("malformed row = %v, want empty", rows[2])
	}
}

func TestXLSX_Read(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	_ = f.SetSheetRow(sheet, "A1", &[]any{"日期", "车次", "姓名", "开检时间"})
	_ = f.SetSheetRow(sheet, "A2", &[]any{45432, "K100", "张三", 0.4166666667})
	_ = f.SetSheetRow(sheet, "A3", &[]any{"2024-05-21", "G20", "王五", "12:00"})

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}

	rows, err := ReadFile(context.Background(), "list.xlsx", &buf)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0]["日期"] != "45432" {
		t.Errorf("date cell = %q, want raw serial 45432", rows[0]["日期"])
	}
	if rows[0]["车次"] != "K100" {
		t.Errorf("trainNo cell = %q, want K100", rows[0]["车次"])
	}
	if rows[1]["开检时间"] != "12:00" {
		t.Errorf("time cell = %q, want 12:00", rows[1]["开检时间"])
	}
}

func TestXLSX_ReadGarbage(t *testing.T) {
	_, err := XLSX{}.Read(context.Background(), strings.NewReader("not a zip"))
	if !errors.Is(err, domain.ErrUnsupportedFile) {
		t.Errorf("Read() error = %v, want %v", err, domain.ErrUnsupportedFile)
	}
}

func TestImportRow_Get(t *testing.T) {
	row := domain.ImportRow{"车次": "", "trainNo": " K100 "}
	if got := row.Get("车次", "trainNo"); got != "K100" {
		t.Errorf("Get() = %q, want K100", got)
	}
	if got := row.Get("missing"); got != "" {
		t.Errorf("Get(missing) = %q, want empty", got)
	}
}
