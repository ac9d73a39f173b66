package places

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"airdist/internal/models"
)

func parseCoord(val string) (float64, error) {
	// Replace comma with dot for locales that use a decimal comma.
	val = strings.TrimSpace(strings.ReplaceAll(val, ",", "."))
	if val == "" {
		return 0, fmt.Errorf("empty")
	}
	return strconv.ParseFloat(val, 64)
}

// LoadExcel reads places from the first sheet of an xlsx workbook. The
// layout matches LoadCSV: first column is the place name, the columns
// labelled "Latitude" and "Longitude" hold degrees.
func LoadExcel(path string) ([]models.Place, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: sheet %q is empty", ErrMissingColumn, sheet)
	}

	header := rows[0]
	if err := checkHeader(header); err != nil {
		return nil, err
	}
	latCol, lonCol := columnIndex(header, "Latitude"), columnIndex(header, "Longitude")

	var result []models.Place
	seen := make(map[string]struct{})
	for i, row := range rows[1:] {
		if len(row) <= latCol || len(row) <= lonCol {
			return nil, fmt.Errorf("row %d: not enough columns", i+2)
		}

		lat, err := parseCoord(row[latCol])
		if err != nil {
			return nil, fmt.Errorf("row %d: bad latitude %q", i+2, row[latCol])
		}
		lon, err := parseCoord(row[lonCol])
		if err != nil {
			return nil, fmt.Errorf("row %d: bad longitude %q", i+2, row[lonCol])
		}

		name := row[0]
		if _, ok := seen[name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, name)
		}
		seen[name] = struct{}{}

		result = append(result, models.Place{
			Name: name,
			Loc:  models.Coordinate{Lat: lat, Lon: lon},
		})
	}
	return result, nil
}

func columnIndex(header []string, name string) int {
	for i, col := range header {
		if col == name {
			return i
		}
	}
	return -1
}

// ResultSheet is the sheet WriteResults produces.
const ResultSheet = "Distances"

// WriteResults exports every pair with its distance, followed by the
// average and the closest pair, to an xlsx workbook.
func WriteResults(path string, analysis *models.Analysis) error {
	f := excelize.NewFile()
	index, err := f.NewSheet(ResultSheet)
	if err != nil {
		return err
	}

	// Stream writer keeps large pair counts cheap.
	sw, err := f.NewStreamWriter(ResultSheet)
	if err != nil {
		return err
	}

	headers := []interface{}{"Place 1", "Place 2", "Distance (km)"}
	if err := sw.SetRow("A1", headers); err != nil {
		return err
	}

	for i, p := range analysis.Pairs {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{p.A.Name, p.B.Name, analysis.Distances[i]}
		if err := sw.SetRow(cell, row); err != nil {
			return err
		}
	}

	closest := analysis.Closest()
	avgCell, _ := excelize.CoordinatesToCellName(1, len(analysis.Pairs)+3)
	if err := sw.SetRow(avgCell, []interface{}{"Average distance (km)", analysis.Average}); err != nil {
		return err
	}
	closestCell, _ := excelize.CoordinatesToCellName(1, len(analysis.Pairs)+4)
	err = sw.SetRow(closestCell, []interface{}{
		"Closest pair", closest.A.Name, closest.B.Name, analysis.ClosestDistance(),
	})
	if err != nil {
		return err
	}

	if err := sw.Flush(); err != nil {
		return err
	}

	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}

	return f.SaveAs(path)
}
