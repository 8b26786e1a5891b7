package sourcelist

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/haonguyen/perfume-catalog/internal/core/domain"
)

func TestLoadTextFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	content := strings.Join([]string{
		"# seed list",
		"https://cdn.example.com/sauvage.jpg",
		"",
		"  https://cdn.example.com/bleu.png  ",
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	urls, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := []string{
		"https://cdn.example.com/sauvage.jpg",
		"https://cdn.example.com/bleu.png",
	}
	if len(urls) != len(want) {
		t.Fatalf("Load() returned %d urls, want %d: %v", len(urls), len(want), urls)
	}
	for i := range want {
		if urls[i] != want[i] {
			t.Errorf("urls[%d] = %q, want %q", i, urls[i], want[i])
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.txt"))
	if err == nil {
		t.Fatal("Load() expected error for missing file")
	}
	if !domain.IsKind(err, domain.ErrValidation) {
		t.Fatalf("Load() error = %v, want validation kind", err)
	}
}

func TestLoadXLSXSkipsHeaderRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.xlsx")

	wb := excelize.NewFile()
	sheet := wb.GetSheetName(0)
	cells := map[string]string{
		"A1": "url",
		"A2": "https://cdn.example.com/sauvage.jpg",
		"A3": "",
		"A4": "https://cdn.example.com/no5.webp",
	}
	for ref, val := range cells {
		if err := wb.SetCellValue(sheet, ref, val); err != nil {
			t.Fatal(err)
		}
	}
	if err := wb.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	if err := wb.Close(); err != nil {
		t.Fatal(err)
	}

	urls, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(urls) != 2 {
		t.Fatalf("Load() returned %d urls, want 2: %v", len(urls), urls)
	}
	if urls[0] != "https://cdn.example.com/sauvage.jpg" {
		t.Errorf("urls[0] = %q", urls[0])
	}
	if urls[1] != "https://cdn.example.com/no5.webp" {
		t.Errorf("urls[1] = %q", urls[1])
	}
}
