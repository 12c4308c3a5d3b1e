// Package importer seeds the vegetable catalog from a spreadsheet.
package importer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/waxads/easy-grown/internal"
	"github.com/waxads/easy-grown/internal/storage"
	"github.com/xuri/excelize/v2"
)

// ErrNoNameColumn is returned when the header row has no "name" column.
var ErrNoNameColumn = errors.New("importer: header has no name column")

// ReadVegetables reads one sheet of an .xlsx workbook. The first row holds
// column names (name, harvest_time, water, sunlight, months, regions,
// image_url, description, steps, more_tips) in any order; unknown columns
// are ignored. Rows without a name are skipped. An empty sheet name means
// the first sheet.
func ReadVegetables(r io.Reader, sheet string) ([]internal.Vegetable, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("importer: open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New("importer: workbook has no sheets")
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("importer: read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return []internal.Vegetable{}, nil
	}

	header := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		header[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := header["name"]; !ok {
		return nil, ErrNoNameColumn
	}

	vegs := make([]internal.Vegetable, 0, len(rows)-1)
	for i, row := range rows[1:] {
		cell := func(col string) string {
			idx, ok := header[col]
			if !ok || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}
		if cell("name") == "" {
			continue
		}

		v := internal.Vegetable{
			Name:        cell("name"),
			HarvestTime: cell("harvest_time"),
			Sunlight:    cell("sunlight"),
			Months:      cell("months"),
			ImageURL:    cell("image_url"),
			Description: cell("description"),
		}
		lists := []struct {
			col string
			dst *[]string
		}{
			{"water", &v.Water},
			{"regions", &v.Regions},
			{"steps", &v.Steps},
			{"more_tips", &v.MoreTips},
		}
		for _, l := range lists {
			items, err := SplitCell(cell(l.col))
			if err != nil {
				// +2: one for the header, one for 1-based rows
				return nil, fmt.Errorf("importer: row %d column %s: %w", i+2, l.col, err)
			}
			*l.dst = items
		}
		vegs = append(vegs, v)
	}
	return vegs, nil
}

// SplitCell reads a list cell: a JSON array of strings, or items separated
// by semicolons.
func SplitCell(s string) ([]string, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "[") {
		var items []string
		if err := json.Unmarshal([]byte(s), &items); err != nil {
			return nil, fmt.Errorf("%w: not a JSON array of strings", internal.ErrInvalidInput)
		}
		return items, nil
	}
	items := []string{}
	for _, part := range strings.Split(s, ";") {
		if p := strings.TrimSpace(part); p != "" {
			items = append(items, p)
		}
	}
	return items, nil
}

// Import inserts vegs in order and returns how many were stored before the
// first failure.
func Import(ctx context.Context, repo storage.VegetableRepository, vegs []internal.Vegetable) (int, error) {
	for i := range vegs {
		if _, err := repo.CreateVegetable(ctx, &vegs[i]); err != nil {
			return i, fmt.Errorf("importer: insert %q: %w", vegs[i].Name, err)
		}
	}
	return len(vegs), nil
}
