package places

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jszwec/csvutil"

	"airdist/internal/models"
)

var (
	// ErrMissingColumn is returned when the input lacks a required column.
	ErrMissingColumn = errors.New("missing required column")
	// ErrDuplicateName is returned when two rows share a place name.
	ErrDuplicateName = errors.New("duplicate place name")
)

type placeRecord struct {
	Name      string  `csv:"Name"`
	Latitude  float64 `csv:"Latitude"`
	Longitude float64 `csv:"Longitude"`
}

// LoadCSV reads places from a CSV file. The first column holds the place
// name (its header label is free-form); the columns named exactly "Latitude"
// and "Longitude" hold coordinates in degrees. Row order is preserved.
func LoadCSV(path string) ([]models.Place, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open places file: %w", err)
	}
	defer f.Close()

	return readCSV(f)
}

func readCSV(r io.Reader) ([]models.Place, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	if err := checkHeader(header); err != nil {
		return nil, err
	}

	// The decoder keys on header names; the name column keeps whatever
	// label the file uses, so normalize it before decoding.
	header[0] = "Name"

	dec, err := csvutil.NewDecoder(cr, header...)
	if err != nil {
		return nil, fmt.Errorf("decode csv: %w", err)
	}

	var result []models.Place
	seen := make(map[string]struct{})
	for {
		var rec placeRecord
		if err := dec.Decode(&rec); errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, fmt.Errorf("decode csv: %w", err)
		}

		if _, ok := seen[rec.Name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, rec.Name)
		}
		seen[rec.Name] = struct{}{}

		result = append(result, models.Place{
			Name: rec.Name,
			Loc:  models.Coordinate{Lat: rec.Latitude, Lon: rec.Longitude},
		})
	}
	return result, nil
}

func checkHeader(header []string) error {
	if len(header) < 3 {
		return fmt.Errorf("%w: want a name column plus Latitude and Longitude", ErrMissingColumn)
	}
	for _, want := range []string{"Latitude", "Longitude"} {
		found := false
		for _, col := range header[1:] {
			if col == want {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%w: %s", ErrMissingColumn, want)
		}
	}
	return nil
}
