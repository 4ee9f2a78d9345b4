package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"basket-kpis-go/internal/logger"
)

// The fixed metadata columns of the source format. Every other header column
// is a product category, decided once at load time.
var metaColumns = map[string]bool{
	"order_id":               true,
	"order_dow":              true,
	"order_hour_of_day":      true,
	"days_since_prior_order": true,
}

// Load reads the order table from path. CSV is the default; .xlsx/.xlsm
// sources are read from their first sheet. Any failure here is fatal for the
// caller: the service must not serve traffic without data.
func Load(path string) (*Table, error) {
	log := logger.New().WithComponent("dataset").WithField("path", path)

	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		rows, err = readExcel(path)
	default:
		rows, err = readCSV(path)
	}
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: source has no header row", path)
	}

	table, err := build(rows[0], rows[1:])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	log.WithField("orders", len(table.Orders)).
		WithField("categories", len(table.Categories)).
		Info("order table loaded")
	return table, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open source: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // ragged rows handled in build
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	return rows, nil
}

func readExcel(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open source: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s: workbook has no sheets", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	return rows, nil
}

// build turns the raw header+rows into a Table. Category cells that are
// empty or absent become zero here, exactly once, so the aggregations never
// re-check for missing data.
func build(header []string, rows [][]string) (*Table, error) {
	idIdx, dowIdx, hourIdx, priorIdx := -1, -1, -1, -1
	var categories []string
	var categoryIdx []int

	for i, h := range header {
		name := strings.TrimSpace(h)
		if !metaColumns[name] {
			categories = append(categories, name)
			categoryIdx = append(categoryIdx, i)
			continue
		}
		switch name {
		case "order_id":
			idIdx = i
		case "order_dow":
			dowIdx = i
		case "order_hour_of_day":
			hourIdx = i
		case "days_since_prior_order":
			priorIdx = i
		}
	}
	if idIdx == -1 || dowIdx == -1 || hourIdx == -1 {
		return nil, fmt.Errorf("header missing required columns order_id/order_dow/order_hour_of_day")
	}

	table := &Table{Categories: categories}
	for n, row := range rows {
		if blankRow(row) {
			continue
		}

		var o Order
		o.ID = cell(row, idIdx)

		dow, err := strconv.Atoi(strings.TrimSpace(cell(row, dowIdx)))
		if err != nil {
			return nil, fmt.Errorf("row %d: bad order_dow %q", n+2, cell(row, dowIdx))
		}
		o.DayOfWeek = dow

		hour, err := strconv.Atoi(strings.TrimSpace(cell(row, hourIdx)))
		if err != nil {
			return nil, fmt.Errorf("row %d: bad order_hour_of_day %q", n+2, cell(row, hourIdx))
		}
		o.HourOfDay = hour

		if priorIdx >= 0 {
			if s := strings.TrimSpace(cell(row, priorIdx)); s != "" {
				v, err := strconv.ParseFloat(s, 64)
				if err != nil {
					return nil, fmt.Errorf("row %d: bad days_since_prior_order %q", n+2, s)
				}
				o.DaysSincePrior = &v
			}
		}

		o.Items = make([]float64, len(categoryIdx))
		for c, idx := range categoryIdx {
			s := strings.TrimSpace(cell(row, idx))
			if s == "" {
				continue // null item count counts as zero
			}
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: bad count %q in column %s", n+2, s, categories[c])
			}
			o.Items[c] = v
		}

		table.Orders = append(table.Orders, o)
	}
	return table, nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
