package seed

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"foodgram/internal/models"
)

// LoadIngredientsCSV parses a headerless "name,measurement_unit" CSV file
// into catalog entries. Blank lines and duplicate (name, unit) pairs are
// dropped; a row with anything but two fields is an error.
func LoadIngredientsCSV(path string) ([]models.Ingredient, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ingredient file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = 2

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse ingredient file: %w", err)
	}

	seen := make(map[string]struct{}, len(records))
	ingredients := make([]models.Ingredient, 0, len(records))
	for i, record := range records {
		name := strings.TrimSpace(record[0])
		unit := strings.TrimSpace(record[1])
		if name == "" || unit == "" {
			return nil, fmt.Errorf("row %d: name and measurement unit are required", i+1)
		}

		key := strings.ToLower(name) + "|" + strings.ToLower(unit)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		ingredients = append(ingredients, models.Ingredient{Name: name, MeasurementUnit: unit})
	}
	return ingredients, nil
}
