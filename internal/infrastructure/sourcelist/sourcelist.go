package sourcelist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/haonguyen/perfume-catalog/internal/core/domain"
)

// Load reads a list of source URLs from a file. Plain text files hold
// one URL per line; .xlsx workbooks hold URLs in the first column of
// the first sheet. Blank lines and lines starting with '#' are skipped.
func Load(path string) ([]string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".xlsx" {
		return loadXLSX(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, domain.WrapError(domain.ErrValidation, "sourcelist.Load", err)
	}
	defer f.Close()
	return loadText(f)
}

func loadText(r io.Reader) ([]string, error) {
	var urls []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, domain.WrapError(domain.ErrValidation, "sourcelist.Load", err)
	}
	return urls, nil
}

func loadXLSX(path string) ([]string, error) {
	wb, err := excelize.OpenFile(path)
	if err != nil {
		return nil, domain.WrapError(domain.ErrValidation, "sourcelist.Load", err)
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, domain.WrapError(domain.ErrValidation, "sourcelist.Load",
			fmt.Errorf("workbook %s has no sheets", path))
	}
	rows, err := wb.GetRows(sheets[0])
	if err != nil {
		return nil, domain.WrapError(domain.ErrValidation, "sourcelist.Load", err)
	}

	var urls []string
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell := strings.TrimSpace(row[0])
		if cell == "" || strings.HasPrefix(cell, "#") {
			continue
		}
		// A header row like "url" or "source" is common in exported sheets.
		if !strings.Contains(cell, "://") {
			continue
		}
		urls = append(urls, cell)
	}
	return urls, nil
}
